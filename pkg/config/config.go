// Package config loads depinject manifests.
//
// A manifest is a TOML file, depinject.toml by default, listing the
// artifacts a project needs together with cache settings and named
// repositories:
//
//	[cache]
//	dir = ".dependencies"
//	atomic = true
//	timeout = "2m"
//
//	[repositories]
//	internal = "https://maven.example.com/releases"
//
//	[[dependency]]
//	notation = "org.apache.commons:commons-lang3:3.14.0"
//
//	[[dependency]]
//	group = "com.example"
//	artifact = "client"
//	version = "1.4.2"
//	repository = "internal"
//	extension = "jar"
//
// Repository references name an entry of [repositories], a well-known name
// ("central", "snapshots"), or a URL. An omitted repository is central.
package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/depinject/pkg/dependency"
	"github.com/matzehuels/depinject/pkg/errors"
)

// DefaultFilename is the manifest looked up when no file is given.
const DefaultFilename = "depinject.toml"

// Manifest is the decoded form of a manifest file.
type Manifest struct {
	Cache        Cache             `toml:"cache"`
	Repositories map[string]string `toml:"repositories"`
	Dependencies []Dependency      `toml:"dependency"`
}

// Cache holds the [cache] table.
type Cache struct {
	Dir     string   `toml:"dir"`     // Cache root; empty means the default
	Atomic  bool     `toml:"atomic"`  // Download through a temporary file
	Timeout Duration `toml:"timeout"` // Per-download timeout; zero means the default
}

// Dependency is one [[dependency]] entry. Either Notation or all of Group,
// Artifact and Version must be set.
type Dependency struct {
	Notation   string `toml:"notation"`
	Group      string `toml:"group"`
	Artifact   string `toml:"artifact"`
	Version    string `toml:"version"`
	Repository string `toml:"repository"`
	Extension  string `toml:"extension"`
}

// Duration is a time.Duration written as a Go duration string ("90s", "5m").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	if v < 0 {
		return fmt.Errorf("negative duration %q", text)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	if err := errors.ValidateManifestFilename(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "manifest %s not found", path)
		}
		return nil, err
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes manifest content. Unknown keys are rejected so that typos
// do not silently drop settings.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(string(data), &m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "invalid manifest")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidManifest, "unknown keys: %s", strings.Join(keys, ", "))
	}
	for name, url := range m.Repositories {
		if strings.TrimSpace(url) == "" {
			return nil, errors.New(errors.ErrCodeInvalidConfiguration, "repository %q has an empty URL", name)
		}
	}
	return &m, nil
}

// Repository resolves a repository reference. Names declared in the
// manifest take precedence over the well-known names.
func (m *Manifest) Repository(ref string) (dependency.Repository, error) {
	if ref == "" {
		return dependency.Central, nil
	}
	if url, ok := m.Repositories[ref]; ok {
		return dependency.NewRepository(url)
	}
	return dependency.LookupRepository(ref)
}

// RepositoryNames returns the declared repository names in sorted order.
func (m *Manifest) RepositoryNames() []string {
	names := make([]string, 0, len(m.Repositories))
	for name := range m.Repositories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve converts the [[dependency]] entries into dependencies, in file
// order. The first invalid entry aborts with an error naming its position.
func (m *Manifest) Resolve() ([]dependency.Dependency, error) {
	deps := make([]dependency.Dependency, 0, len(m.Dependencies))
	for i, entry := range m.Dependencies {
		dep, err := m.resolve(entry)
		if err != nil {
			return nil, fmt.Errorf("dependency %d: %w", i+1, err)
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

func (m *Manifest) resolve(entry Dependency) (dependency.Dependency, error) {
	repo, err := m.Repository(entry.Repository)
	if err != nil {
		return dependency.Dependency{}, err
	}
	opts := []dependency.Option{dependency.WithRepository(repo)}
	if entry.Extension != "" {
		opts = append(opts, dependency.WithExtension(entry.Extension))
	}

	hasCoords := entry.Group != "" || entry.Artifact != "" || entry.Version != ""
	switch {
	case entry.Notation != "" && hasCoords:
		return dependency.Dependency{}, errors.New(errors.ErrCodeInvalidManifest,
			"set either notation or group/artifact/version, not both")
	case entry.Notation != "":
		return dependency.Parse(entry.Notation, opts...)
	default:
		return dependency.New(entry.Group, entry.Artifact, entry.Version, opts...)
	}
}
