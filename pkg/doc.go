// Package pkg provides the libraries behind depinject, which fetches
// artifacts from Maven-layout repositories on demand and attaches them to a
// running program.
//
// # Overview
//
// A dependency is named by group, artifact and version plus the repository
// it comes from. depinject derives two things from that name: the download
// URL in the repository and a fixed path under a local cache directory. The
// first request for a dependency downloads it; every later request is served
// from the cache without touching the network.
//
// The pkg directory is organized as follows:
//
//   - [dependency] - Repository and Dependency values, notation parsing,
//     URL and cache path derivation
//   - [cache] - the on-disk artifact store ([cache.Store.EnsureLocal])
//   - [inject] - targets that accept local files and the [inject.Injector]
//     that resolves and attaches dependencies
//   - [integrations] - HTTP transport and the Maven metadata client
//   - [config] - the depinject.toml manifest
//   - [mirror] - an HTTP server that exposes the cache in repository layout
//   - [errors], [httputil], [observability], [buildinfo] - shared plumbing
//
// # Data Flow
//
//	"group:artifact:version"
//	         ↓
//	    [dependency] (parse, derive URL and cache path)
//	         ↓
//	    [cache] (cache hit, or download into the cache)
//	         ↓
//	    [inject] (append the local file to a target)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/depinject/pkg/cache"
//	    "github.com/matzehuels/depinject/pkg/inject"
//	)
//
//	store := cache.NewStore("", nil) // ".dependencies", default download client
//	injector := inject.NewInjector(store, nil)
//
//	var cp inject.SearchPath
//	if err := injector.InjectNotation(ctx, "org.apache.commons:commons-lang3:3.14.0", &cp); err != nil {
//	    return err
//	}
//	fmt.Println(cp.String())
//
// Errors returned by these packages carry a code from [errors]; use
// [errors.Is] to branch on DOWNLOAD_FAILED, INJECTION_FAILED and the rest.
//
// [dependency]: https://pkg.go.dev/github.com/matzehuels/depinject/pkg/dependency
// [cache]: https://pkg.go.dev/github.com/matzehuels/depinject/pkg/cache
// [cache.Store.EnsureLocal]: https://pkg.go.dev/github.com/matzehuels/depinject/pkg/cache#Store.EnsureLocal
// [inject]: https://pkg.go.dev/github.com/matzehuels/depinject/pkg/inject
// [inject.Injector]: https://pkg.go.dev/github.com/matzehuels/depinject/pkg/inject#Injector
// [integrations]: https://pkg.go.dev/github.com/matzehuels/depinject/pkg/integrations
// [config]: https://pkg.go.dev/github.com/matzehuels/depinject/pkg/config
// [mirror]: https://pkg.go.dev/github.com/matzehuels/depinject/pkg/mirror
// [errors]: https://pkg.go.dev/github.com/matzehuels/depinject/pkg/errors
// [errors.Is]: https://pkg.go.dev/github.com/matzehuels/depinject/pkg/errors#Is
// [httputil]: https://pkg.go.dev/github.com/matzehuels/depinject/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/depinject/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/depinject/pkg/buildinfo
package pkg
