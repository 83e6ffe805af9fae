package dependency

import (
	"strings"

	"github.com/matzehuels/depinject/pkg/errors"
)

// Repository is a named remote base location from which artifacts are
// fetched by convention-based path.
//
// Repository is an immutable, comparable value. The zero value is the
// absent repository and is rejected wherever a repository is required.
type Repository struct {
	baseURL string
}

// Well-known repositories.
var (
	// Central is the Maven Central repository.
	Central = Repository{baseURL: "https://repo1.maven.org/maven2/"}

	// Snapshots is the Sonatype OSS snapshot repository.
	Snapshots = Repository{baseURL: "https://oss.sonatype.org/content/repositories/snapshots/"}
)

// namedRepositories maps the names accepted by LookupRepository.
var namedRepositories = map[string]Repository{
	"central":   Central,
	"snapshots": Snapshots,
}

// NewRepository creates a Repository from a raw base URL.
// Returns an INVALID_CONFIGURATION error if baseURL is empty or blank.
// The URL itself is checked only when a download URL is derived from it.
func NewRepository(baseURL string) (Repository, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return Repository{}, errors.New(errors.ErrCodeInvalidConfiguration, "repository URL cannot be empty")
	}
	return Repository{baseURL: baseURL}, nil
}

// LookupRepository resolves a well-known repository name ("central",
// "snapshots") or, for anything else, treats the argument as a base URL.
func LookupRepository(nameOrURL string) (Repository, error) {
	if r, ok := namedRepositories[strings.ToLower(strings.TrimSpace(nameOrURL))]; ok {
		return r, nil
	}
	return NewRepository(nameOrURL)
}

// RepositoryNames returns the names accepted by LookupRepository.
func RepositoryNames() []string {
	return []string{"central", "snapshots"}
}

// URL returns the base URL exactly as it was supplied.
func (r Repository) URL() string { return r.baseURL }

// IsZero reports whether r is the absent repository.
func (r Repository) IsZero() bool { return r.baseURL == "" }

// String returns the base URL.
func (r Repository) String() string { return r.baseURL }

// normalizedURL returns the base URL with exactly one trailing slash.
func (r Repository) normalizedURL() string {
	return strings.TrimRight(r.baseURL, "/") + "/"
}
