package inject

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depinject/pkg/cache"
	"github.com/matzehuels/depinject/pkg/dependency"
	"github.com/matzehuels/depinject/pkg/errors"
	"github.com/matzehuels/depinject/pkg/observability"
)

// Inject appends the local artifact at path to target's search path.
//
// Returns an INJECTION_FAILED error if target is nil, rejects the path, or
// panics. The error carries the artifact display name derived from the
// file name and wraps whatever target returned.
func Inject(path string, target Target) error {
	return inject(displayName(path), path, target)
}

func inject(name, path string, target Target) (err error) {
	if target == nil {
		return errors.New(errors.ErrCodeInjection, "unable to inject %s: no target", name).WithArtifact(name)
	}
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrap(errors.ErrCodeInjection, fmt.Errorf("target panicked: %v", r),
				"unable to inject %s", name).WithArtifact(name)
		}
	}()
	if err := target.AppendSearchPath(path); err != nil {
		return errors.Wrap(errors.ErrCodeInjection, err, "unable to inject %s", name).WithArtifact(name)
	}
	return nil
}

// Injector resolves dependencies through a cache store and attaches them
// to targets.
//
// Calls run synchronously on the caller's goroutine. The injector keeps no
// state between calls beyond its store, so it is safe to share.
type Injector struct {
	store  *cache.Store
	logger *log.Logger
}

// NewInjector creates an Injector.
// If store is nil, a store at [cache.DefaultRoot] with the default fetcher
// is used. If logger is nil, log.Default() is used.
func NewInjector(store *cache.Store, logger *log.Logger) *Injector {
	if logger == nil {
		logger = log.Default()
	}
	if store == nil {
		store = cache.NewStore("", nil, cache.WithLogger(logger))
	}
	return &Injector{store: store, logger: logger}
}

// Store returns the cache store backing the injector.
func (i *Injector) Store() *cache.Store { return i.store }

// InjectDependency makes dep local and appends it to target.
//
// The DOWNLOAD_FAILED or INJECTION_FAILED error from the failing step is
// returned unchanged.
func (i *Injector) InjectDependency(ctx context.Context, dep dependency.Dependency, target Target) error {
	name := dep.Name()
	hooks := observability.Inject()
	hooks.OnInjectStart(ctx, name)
	start := time.Now()

	err := i.injectDependency(ctx, dep, target)
	hooks.OnInjectComplete(ctx, name, time.Since(start), err)
	if err != nil {
		i.logger.Debug("injection failed", "artifact", name, "error", err)
		return err
	}
	i.logger.Debug("injected", "artifact", name, "duration", time.Since(start))
	return nil
}

func (i *Injector) injectDependency(ctx context.Context, dep dependency.Dependency, target Target) error {
	path, err := i.store.EnsureLocal(ctx, dep)
	if err != nil {
		return err
	}
	return inject(dep.Name(), path, target)
}

// InjectDependencies injects deps into target in order.
//
// It stops at the first failure and returns that error. Artifacts injected
// before the failure stay on the target; later ones are never attempted.
func (i *Injector) InjectDependencies(ctx context.Context, deps []dependency.Dependency, target Target) error {
	for _, dep := range deps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := i.InjectDependency(ctx, dep, target); err != nil {
			return err
		}
	}
	return nil
}

// InjectNotation parses a "group:artifact:version" notation and injects the
// resulting dependency. Options apply as in [dependency.Parse].
func (i *Injector) InjectNotation(ctx context.Context, notation string, target Target, opts ...dependency.Option) error {
	dep, err := dependency.Parse(notation, opts...)
	if err != nil {
		return err
	}
	return i.InjectDependency(ctx, dep, target)
}

// InjectCoordinates builds a dependency from its coordinates and injects it.
// Options apply as in [dependency.New].
func (i *Injector) InjectCoordinates(ctx context.Context, group, artifact, version string, target Target, opts ...dependency.Option) error {
	dep, err := dependency.New(group, artifact, version, opts...)
	if err != nil {
		return err
	}
	return i.InjectDependency(ctx, dep, target)
}

// displayName turns ".../lib-1.0.0.jar" into "lib-1.0.0".
func displayName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
