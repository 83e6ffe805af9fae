package integrations

import (
	"errors"
	"net/http"
	"time"

	"github.com/matzehuels/depinject/pkg/httputil"
)

const (
	// MetadataTimeout bounds small metadata requests (maven-metadata.xml, POMs).
	MetadataTimeout = 10 * time.Second

	// DownloadTimeout bounds a whole artifact download, body included.
	DownloadTimeout = 5 * time.Minute
)

var (
	// ErrNotFound is returned when an artifact or resource doesn't exist in the repository.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, non-2xx responses).
	ErrNetwork = errors.New("network error")
)

// NewHTTPClient creates an HTTP client with the given overall request timeout.
// A timeout of 0 means no timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// NewCache creates a metadata cache with the given TTL in the default cache directory.
// See [httputil.NewCache] for details on cache location and behavior.
func NewCache(ttl time.Duration) (*httputil.Cache, error) {
	return httputil.NewCache("", ttl)
}

// NewCacheWithNamespace is like [NewCache] but scopes all keys under namespace.
func NewCacheWithNamespace(namespace string, ttl time.Duration) (*httputil.Cache, error) {
	c, err := NewCache(ttl)
	if err != nil {
		return nil, err
	}
	return c.Namespace(namespace), nil
}
