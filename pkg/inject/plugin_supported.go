//go:build (linux || darwin || freebsd) && cgo

package inject

import "plugin"

func openPlugin(path string) (symbolLookup, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, err
	}
	return func(name string) (any, error) {
		return p.Lookup(name)
	}, nil
}
