// Package observability provides hooks for metrics, tracing, and logging.
//
// The cache, the HTTP client and the injector report events to whatever
// hooks are registered here. Nothing is recorded by default.
//
// Each event category has an interface with a no-op default. Hooks are
// looked up on every event, so registering them later takes effect at once.
//
// [PrometheusHooks] is the bundled implementation; it records counters and
// histograms into a Prometheus registry that the mirror server exposes.
//
// # Usage
//
// Register hooks at application startup:
//
//	reg := prometheus.NewRegistry()
//	observability.Register(observability.NewPrometheusHooks(reg))
//
// Libraries call hooks to emit events:
//
//	observability.Cache().OnCacheMiss(ctx, dep.Name())
//	// ... download ...
//	observability.Cache().OnCacheSet(ctx, dep.Name(), size)
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from the artifact cache.
type CacheHooks interface {
	// OnCacheHit records that an artifact was already present on disk.
	OnCacheHit(ctx context.Context, artifact string)

	// OnCacheMiss records that an artifact had to be downloaded.
	OnCacheMiss(ctx context.Context, artifact string)

	// OnCacheSet records a completed download of size bytes.
	OnCacheSet(ctx context.Context, artifact string, size int64)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// Inject Hooks
// =============================================================================

// InjectHooks receives events from the injector.
type InjectHooks interface {
	// OnInjectStart records the start of resolving and attaching an artifact.
	OnInjectStart(ctx context.Context, artifact string)

	// OnInjectComplete records the outcome of an injection.
	OnInjectComplete(ctx context.Context, artifact string, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)        {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)       {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int64) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// NoopInjectHooks is a no-op implementation of InjectHooks.
type NoopInjectHooks struct{}

func (NoopInjectHooks) OnInjectStart(context.Context, string)                             {}
func (NoopInjectHooks) OnInjectComplete(context.Context, string, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

// hookSet is an immutable snapshot of the registered hooks. Readers load it
// without locking; writers copy, modify and swap it.
type hookSet struct {
	cache  CacheHooks
	http   HTTPHooks
	inject InjectHooks
}

var (
	current atomic.Pointer[hookSet]
	writeMu sync.Mutex
)

func init() { Reset() }

func update(fn func(*hookSet)) {
	writeMu.Lock()
	defer writeMu.Unlock()
	next := *current.Load()
	fn(&next)
	current.Store(&next)
}

// Register installs h for every hook interface it implements and reports
// how many it matched. A value implementing none of them changes nothing.
func Register(h any) int {
	n := 0
	update(func(s *hookSet) {
		if c, ok := h.(CacheHooks); ok {
			s.cache = c
			n++
		}
		if c, ok := h.(HTTPHooks); ok {
			s.http = c
			n++
		}
		if c, ok := h.(InjectHooks); ok {
			s.inject = c
			n++
		}
	})
	return n
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		update(func(s *hookSet) { s.cache = h })
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		update(func(s *hookSet) { s.http = h })
	}
}

// SetInjectHooks registers inject hooks. Nil is ignored.
func SetInjectHooks(h InjectHooks) {
	if h != nil {
		update(func(s *hookSet) { s.inject = h })
	}
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return current.Load().cache }

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks { return current.Load().http }

// Inject returns the registered inject hooks.
func Inject() InjectHooks { return current.Load().inject }

// Reset restores the no-op hooks.
func Reset() {
	writeMu.Lock()
	defer writeMu.Unlock()
	current.Store(&hookSet{
		cache:  NoopCacheHooks{},
		http:   NoopHTTPHooks{},
		inject: NoopInjectHooks{},
	})
}
