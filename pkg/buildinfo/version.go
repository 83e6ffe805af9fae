// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/depinject/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/depinject/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/depinject/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s", Version, Commit, Date, runtime.Version())
}

// Template returns the version template string for cobra.
func Template() string {
	return "{{.Name}} " + String() + "\n"
}

// UserAgent returns the User-Agent sent to repositories, e.g.
// "depinject/v1.2.0 (linux/amd64)". Some repository managers reject
// requests without one.
func UserAgent() string {
	return fmt.Sprintf("depinject/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}
