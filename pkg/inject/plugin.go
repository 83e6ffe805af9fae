package inject

import (
	"fmt"
	"slices"
	"sync"
)

// PluginTarget loads Go plugins (.so files built with -buildmode=plugin)
// into the running process. Each appended path is opened immediately;
// symbols are then looked up across loaded plugins in load order.
//
// Plugins cannot be unloaded, so the search path only grows. On platforms
// without plugin support every append fails with an error wrapping
// errors.ErrUnsupported.
type PluginTarget struct {
	mu      sync.Mutex
	paths   []string
	lookups []symbolLookup
}

type symbolLookup func(name string) (any, error)

// NewPluginTarget returns an empty PluginTarget.
func NewPluginTarget() *PluginTarget {
	return &PluginTarget{}
}

// AppendSearchPath opens the plugin at path. A path that is already loaded
// is not opened again.
func (p *PluginTarget) AppendSearchPath(path string) error {
	if p == nil {
		return errNilTarget
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if slices.Contains(p.paths, path) {
		return nil
	}

	lookup, err := openPlugin(path)
	if err != nil {
		return err
	}
	p.paths = append(p.paths, path)
	p.lookups = append(p.lookups, lookup)
	return nil
}

// Paths returns the loaded plugin paths in load order.
func (p *PluginTarget) Paths() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.paths...)
}

// Lookup returns the first exported symbol called name among the loaded
// plugins.
func (p *PluginTarget) Lookup(name string) (any, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, lookup := range p.lookups {
		if sym, err := lookup(name); err == nil {
			return sym, nil
		}
	}
	return nil, fmt.Errorf("symbol %s not found in %d loaded plugins", name, len(p.lookups))
}
