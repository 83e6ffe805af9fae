package dependency

import (
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/depinject/pkg/errors"
)

// DefaultExtension is the packaging extension used when none is given.
const DefaultExtension = "jar"

// Separator separates the fields of the compact notation.
const Separator = ":"

// Dependency identifies one artifact by group, artifact, and version in a
// bound repository.
//
// Dependency is an immutable, comparable value: two descriptors with the
// same coordinates, repository, and extension are interchangeable and can be
// used directly as map keys. Construct it with [New] or [Parse]; the zero
// value is not a valid descriptor.
type Dependency struct {
	group      string
	artifact   string
	version    string
	repository Repository
	extension  string
}

// Option customizes a Dependency during construction.
type Option func(*options)

type options struct {
	repository Repository
	rawURL     *string
	extension  string
}

// WithRepository binds the dependency to r instead of [Central].
func WithRepository(r Repository) Option {
	return func(o *options) {
		o.repository = r
		o.rawURL = nil
	}
}

// WithRepositoryURL binds the dependency to the repository at baseURL.
// An empty baseURL makes construction fail with INVALID_CONFIGURATION.
func WithRepositoryURL(baseURL string) Option {
	return func(o *options) {
		o.rawURL = &baseURL
	}
}

// WithExtension sets the packaging extension (default "jar").
// A leading dot is ignored.
func WithExtension(ext string) Option {
	return func(o *options) {
		o.extension = strings.TrimPrefix(ext, ".")
	}
}

// New creates a Dependency from its coordinates.
//
// Returns INVALID_CONFIGURATION if any coordinate or the repository is
// absent, and MALFORMED_DESCRIPTOR if a coordinate contains path separators,
// parent references, whitespace, or control characters.
func New(group, artifact, version string, opts ...Option) (Dependency, error) {
	o := options{repository: Central, extension: DefaultExtension}
	for _, opt := range opts {
		opt(&o)
	}

	if o.rawURL != nil {
		r, err := NewRepository(*o.rawURL)
		if err != nil {
			return Dependency{}, err
		}
		o.repository = r
	}
	if o.repository.IsZero() {
		return Dependency{}, errors.New(errors.ErrCodeInvalidConfiguration, "repository cannot be empty")
	}

	for _, f := range []struct{ name, value string }{
		{"group", group},
		{"artifact", artifact},
		{"version", version},
		{"extension", o.extension},
	} {
		if err := errors.ValidateCoordinate(f.name, f.value); err != nil {
			return Dependency{}, err
		}
	}

	return Dependency{
		group:      group,
		artifact:   artifact,
		version:    version,
		repository: o.repository,
		extension:  o.extension,
	}, nil
}

// Parse creates a Dependency from the compact "group:artifact:version"
// notation. The notation must contain exactly two separators and three
// non-empty fields; anything else is a MALFORMED_DESCRIPTOR error.
func Parse(notation string, opts ...Option) (Dependency, error) {
	fields := strings.Split(notation, Separator)
	if len(fields) != 3 {
		return Dependency{}, errors.New(errors.ErrCodeMalformedDescriptor,
			"notation %q must have exactly group, artifact and version separated by %q", notation, Separator)
	}
	for _, f := range fields {
		if f == "" {
			return Dependency{}, errors.New(errors.ErrCodeMalformedDescriptor,
				"notation %q has an empty field", notation)
		}
	}
	return New(fields[0], fields[1], fields[2], opts...)
}

// MustParse is like [Parse] but panics on error.
// It is intended for package-level declarations and tests.
func MustParse(notation string, opts ...Option) Dependency {
	d, err := Parse(notation, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Group returns the dot-delimited group, e.g. "org.apache.commons".
func (d Dependency) Group() string { return d.group }

// Artifact returns the artifact id, e.g. "commons-lang3".
func (d Dependency) Artifact() string { return d.artifact }

// Version returns the version string, e.g. "3.14.0".
func (d Dependency) Version() string { return d.version }

// Repository returns the repository the dependency is fetched from.
func (d Dependency) Repository() Repository { return d.repository }

// Extension returns the packaging extension without a leading dot.
func (d Dependency) Extension() string { return d.extension }

// String returns the compact "group:artifact:version" notation.
func (d Dependency) String() string {
	return d.group + Separator + d.artifact + Separator + d.version
}

// Name returns the human-readable display name "artifact-version".
func (d Dependency) Name() string {
	return d.artifact + "-" + d.version
}

// FileName returns the artifact file name "artifact-version.ext".
func (d Dependency) FileName() string {
	return d.Name() + "." + d.extension
}

// IsSnapshot reports whether the version is a snapshot version.
func (d Dependency) IsSnapshot() bool {
	return strings.HasSuffix(d.version, "-SNAPSHOT")
}

// SemVer parses the version as a semantic version.
// Maven versions such as "33.0.0-jre" parse; qualifiers that are not valid
// semver return an error.
func (d Dependency) SemVer() (*semver.Version, error) {
	return semver.NewVersion(d.version)
}

// CacheRelativePath returns the artifact path relative to a cache root,
// using the OS path separator:
//
//	org/example/lib/1.0.0/lib-1.0.0.jar
func (d Dependency) CacheRelativePath() string {
	return filepath.Join(
		strings.ReplaceAll(d.group, ".", string(filepath.Separator)),
		d.artifact,
		d.version,
		d.FileName(),
	)
}

// CachePath returns the artifact path joined under root.
func (d Dependency) CachePath(root string) string {
	return filepath.Join(root, d.CacheRelativePath())
}

// RemotePath returns the artifact path relative to a repository base URL.
func (d Dependency) RemotePath() string {
	return strings.ReplaceAll(d.group, ".", "/") + "/" + d.artifact + "/" + d.version + "/" + d.FileName()
}

// DownloadURL returns the artifact URL in the bound repository.
// Returns MALFORMED_DESCRIPTOR if the composed string is not a valid
// absolute http(s) URL.
func (d Dependency) DownloadURL() (string, error) {
	u := d.repository.normalizedURL() + d.RemotePath()
	if err := errors.ValidateURL(u); err != nil {
		return "", errors.Wrap(errors.ErrCodeMalformedDescriptor, err, "invalid download URL for %s", d.Name()).WithArtifact(d.Name())
	}
	return u, nil
}

// ParsePath maps a repository-layout path back to a Dependency:
//
//	org/example/lib/1.0.0/lib-1.0.0.jar
//
// The extension is taken from the file name; opts may set the repository.
// Returns MALFORMED_DESCRIPTOR if p does not follow the layout.
func ParsePath(p string, opts ...Option) (Dependency, error) {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	if len(parts) < 4 {
		return Dependency{}, errors.New(errors.ErrCodeMalformedDescriptor, "%s does not follow the repository layout", p)
	}
	for _, part := range parts {
		if part == "" {
			return Dependency{}, errors.New(errors.ErrCodeMalformedDescriptor, "%s has an empty path segment", p)
		}
	}

	n := len(parts)
	file, version, artifact := parts[n-1], parts[n-2], parts[n-3]
	group := strings.Join(parts[:n-3], ".")

	ext, ok := strings.CutPrefix(file, artifact+"-"+version+".")
	if !ok || ext == "" {
		return Dependency{}, errors.New(errors.ErrCodeMalformedDescriptor, "file %s does not match %s-%s", file, artifact, version)
	}
	opts = append(opts[:len(opts):len(opts)], WithExtension(ext))
	return New(group, artifact, version, opts...)
}
