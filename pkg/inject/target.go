package inject

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

// Target is an execution environment that can load code from an
// additional local file.
//
// AppendSearchPath adds path after all existing entries. Implementations
// must never remove or reorder what is already there, and appending a path
// that is already present leaves the target unchanged.
type Target interface {
	AppendSearchPath(path string) error
}

var (
	errPathEmpty = errors.New("empty path")
	errNilTarget = errors.New("nil target")
)

// TargetFunc adapts an ordinary function to the [Target] interface.
type TargetFunc func(path string) error

// AppendSearchPath calls f(path).
func (f TargetFunc) AppendSearchPath(path string) error { return f(path) }

// SearchPath is an in-memory, ordered list of artifact paths, such as a
// classpath under construction. The zero value is ready to use and safe for
// concurrent use.
type SearchPath struct {
	mu    sync.Mutex
	paths []string
}

// AppendSearchPath appends path unless it is already listed. Empty paths
// are rejected.
func (s *SearchPath) AppendSearchPath(path string) error {
	if s == nil {
		return errNilTarget
	}
	if path == "" {
		return errPathEmpty
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.Contains(s.paths, path) {
		return nil
	}
	s.paths = append(s.paths, path)
	return nil
}

// Paths returns a copy of the entries in append order.
func (s *SearchPath) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.paths...)
}

// Len returns the number of entries.
func (s *SearchPath) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.paths)
}

// String joins the entries with the OS list separator, the format of a JVM
// classpath.
func (s *SearchPath) String() string {
	return strings.Join(s.Paths(), string(os.PathListSeparator))
}

// EnvTarget appends paths to a list-valued environment variable of the
// current process, such as CLASSPATH. Child processes started afterwards
// inherit the result.
type EnvTarget struct {
	name string
	mu   sync.Mutex
}

// NewEnvTarget returns a target for the environment variable name.
func NewEnvTarget(name string) *EnvTarget {
	return &EnvTarget{name: name}
}

// Name returns the environment variable name.
func (e *EnvTarget) Name() string { return e.name }

// Value returns the current value of the variable.
func (e *EnvTarget) Value() string { return os.Getenv(e.name) }

// AppendSearchPath appends path to the variable, separated from any
// existing value by the OS list separator. A path already in the variable
// is not added again.
func (e *EnvTarget) AppendSearchPath(path string) error {
	if e == nil {
		return errNilTarget
	}
	if e.name == "" {
		return errors.New("environment variable name is empty")
	}
	if path == "" {
		return errPathEmpty
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	value := path
	if cur, ok := os.LookupEnv(e.name); ok && cur != "" {
		if slices.Contains(filepath.SplitList(cur), path) {
			return nil
		}
		value = cur + string(os.PathListSeparator) + path
	}
	return os.Setenv(e.name, value)
}
