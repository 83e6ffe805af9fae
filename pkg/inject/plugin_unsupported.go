//go:build !((linux || darwin || freebsd) && cgo)

package inject

import (
	"errors"
	"fmt"
	"runtime"
)

func openPlugin(path string) (symbolLookup, error) {
	return nil, fmt.Errorf("opening %s: go plugins on %s: %w", path, runtime.GOOS, errors.ErrUnsupported)
}
