package maven

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/depinject/pkg/dependency"
	"github.com/matzehuels/depinject/pkg/integrations"
)

// Metadata holds the version listing of one artifact from its
// maven-metadata.xml document.
type Metadata struct {
	GroupID     string   `json:"group_id"`
	ArtifactID  string   `json:"artifact_id"`
	Latest      string   `json:"latest,omitempty"`  // Newest version, snapshots included (may be empty)
	Release     string   `json:"release,omitempty"` // Newest release version (may be empty)
	Versions    []string `json:"versions"`          // As listed by the repository, oldest first
	LastUpdated string   `json:"last_updated,omitempty"`
	URL         string   `json:"url"` // URL of the metadata document
}

// SortedVersions returns the versions in ascending order. Versions that
// parse as semantic versions are ordered by precedence; the rest keep the
// repository's order and sort before them.
func (m *Metadata) SortedVersions() []string {
	return SortVersions(m.Versions)
}

// ArtifactInfo holds descriptive fields from an artifact's POM.
//
// Dependencies lists the compile-scope coordinates the POM declares. It is
// informational only; nothing in depinject resolves them.
type ArtifactInfo struct {
	GroupID      string   `json:"group_id"`
	ArtifactID   string   `json:"artifact_id"`
	Version      string   `json:"version"`
	Packaging    string   `json:"packaging,omitempty"`
	Name         string   `json:"name,omitempty"`
	Description  string   `json:"description,omitempty"`
	ProjectURL   string   `json:"project_url,omitempty"`
	Dependencies []string `json:"dependencies,omitempty"`
	URL          string   `json:"url"` // URL of the POM file
}

// Coordinate returns the "groupId:artifactId:version" notation.
func (a *ArtifactInfo) Coordinate() string {
	return a.GroupID + ":" + a.ArtifactID + ":" + a.Version
}

// Client reads repository metadata and POM files.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
}

// NewClient creates a repository metadata client with the specified cache TTL.
// Returns an error if the cache directory cannot be created.
func NewClient(cacheTTL time.Duration) (*Client, error) {
	cache, err := integrations.NewCacheWithNamespace("maven:", cacheTTL)
	if err != nil {
		return nil, err
	}
	return &Client{Client: integrations.NewClient(cache, nil)}, nil
}

// FetchMetadata retrieves the version listing for group:artifact in repo.
//
// If refresh is true, the cache is bypassed.
//
// Returns [integrations.ErrNotFound] if the repository has no metadata for
// the artifact and [integrations.ErrNetwork] for HTTP failures.
func (c *Client) FetchMetadata(ctx context.Context, repo dependency.Repository, coordinate string, refresh bool) (*Metadata, error) {
	groupID, artifactID, err := ParseCoordinate(coordinate)
	if err != nil {
		return nil, err
	}
	if repo.IsZero() {
		repo = dependency.Central
	}

	url := strings.TrimRight(repo.URL(), "/") + "/" +
		strings.ReplaceAll(groupID, ".", "/") + "/" + artifactID + "/maven-metadata.xml"

	var md Metadata
	err = c.Cached(ctx, "metadata:"+url, refresh, &md, func() error {
		var doc metadataDoc
		if err := c.GetXML(ctx, url, &doc); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: metadata for %s:%s", integrations.ErrNotFound, groupID, artifactID)
			}
			return err
		}
		md = Metadata{
			GroupID:     groupID,
			ArtifactID:  artifactID,
			Latest:      doc.Versioning.Latest,
			Release:     doc.Versioning.Release,
			Versions:    doc.Versioning.Versions,
			LastUpdated: doc.Versioning.LastUpdated,
			URL:         url,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &md, nil
}

// FetchArtifact retrieves the POM of dep from dep's repository.
//
// If refresh is true, the cache is bypassed.
//
// Returns [integrations.ErrNotFound] if the POM doesn't exist.
func (c *Client) FetchArtifact(ctx context.Context, dep dependency.Dependency, refresh bool) (*ArtifactInfo, error) {
	pomDep, err := dependency.New(dep.Group(), dep.Artifact(), dep.Version(),
		dependency.WithRepository(dep.Repository()),
		dependency.WithExtension("pom"))
	if err != nil {
		return nil, err
	}
	url, err := pomDep.DownloadURL()
	if err != nil {
		return nil, err
	}

	var info ArtifactInfo
	err = c.Cached(ctx, "pom:"+url, refresh, &info, func() error {
		var pom pomProject
		if err := c.GetXML(ctx, url, &pom); err != nil {
			if errors.Is(err, integrations.ErrNotFound) {
				return fmt.Errorf("%w: pom for %s", integrations.ErrNotFound, dep)
			}
			return err
		}
		info = ArtifactInfo{
			GroupID:      dep.Group(),
			ArtifactID:   dep.Artifact(),
			Version:      dep.Version(),
			Packaging:    pom.Packaging,
			Name:         strings.TrimSpace(pom.Name),
			Description:  strings.TrimSpace(pom.Description),
			ProjectURL:   strings.TrimSpace(pom.URL),
			Dependencies: extractDeps(&pom),
			URL:          url,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// SortVersions returns a sorted copy of versions. Semantic versions are
// ordered by precedence after all non-semantic versions, which keep their
// relative order.
func SortVersions(versions []string) []string {
	type entry struct {
		raw string
		sv  *semver.Version
	}
	entries := make([]entry, len(versions))
	for i, v := range versions {
		sv, err := semver.NewVersion(v)
		if err != nil {
			sv = nil
		}
		entries[i] = entry{raw: v, sv: sv}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i].sv, entries[j].sv
		switch {
		case a == nil && b == nil:
			return false
		case a == nil:
			return true
		case b == nil:
			return false
		default:
			return a.LessThan(b)
		}
	})
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.raw
	}
	return out
}

// ParseCoordinate splits a "groupId:artifactId" coordinate.
func ParseCoordinate(coord string) (groupID, artifactID string, err error) {
	parts := strings.Split(coord, ":")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid maven coordinate %q (expected groupId:artifactId)", coord)
	}
	return parts[0], parts[1], nil
}

func extractDeps(pom *pomProject) []string {
	var deps []string
	seen := make(map[string]bool)

	for _, dep := range pom.Dependencies {
		if dep.Scope == "test" || dep.Scope == "provided" || dep.Optional == "true" {
			continue
		}
		// Skip dependencies with unresolved properties
		if strings.HasPrefix(dep.GroupID, "${") || strings.HasPrefix(dep.ArtifactID, "${") {
			continue
		}
		coord := dep.GroupID + ":" + dep.ArtifactID
		if dep.Version != "" && !strings.HasPrefix(dep.Version, "${") {
			coord += ":" + dep.Version
		}
		if !seen[coord] {
			seen[coord] = true
			deps = append(deps, coord)
		}
	}
	return deps
}

type metadataDoc struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Versioning struct {
		Latest      string   `xml:"latest"`
		Release     string   `xml:"release"`
		Versions    []string `xml:"versions>version"`
		LastUpdated string   `xml:"lastUpdated"`
	} `xml:"versioning"`
}

type pomProject struct {
	GroupID      string          `xml:"groupId"`
	ArtifactID   string          `xml:"artifactId"`
	Version      string          `xml:"version"`
	Packaging    string          `xml:"packaging"`
	Name         string          `xml:"name"`
	Description  string          `xml:"description"`
	URL          string          `xml:"url"`
	Dependencies []pomDependency `xml:"dependencies>dependency"`
}

type pomDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
	Optional   string `xml:"optional"`
}
