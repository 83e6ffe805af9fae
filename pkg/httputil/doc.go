// Package httputil provides HTTP utilities for repository clients.
//
// # Overview
//
//   - [Cache]: file-based caching of decoded metadata responses
//   - [Retry]: retry with exponential backoff for transient failures
//
// # Caching
//
// [Cache] stores small decoded responses (version lists, POM summaries) under
// $XDG_CACHE_HOME/depinject or ~/.cache/depinject with a configurable TTL:
//
//	cache, err := httputil.NewCache("", time.Hour)
//	var versions []string
//	if ok, _ := cache.Get("maven:org.example:lib", &versions); !ok {
//	    versions = fetchFromRepository()
//	    _ = cache.Set("maven:org.example:lib", versions)
//	}
//
// Artifact binaries never go through this cache; see package cache.
//
// # Retry
//
// [Retry] re-runs a function while it returns a [RetryableError], doubling
// the delay after each attempt:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchMetadata(ctx)
//	})
//
// Only metadata lookups are retried. Artifact downloads are attempted once
// and report the first failure to the caller.
package httputil
