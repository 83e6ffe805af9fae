package cache

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/matzehuels/depinject/pkg/dependency"
	"github.com/matzehuels/depinject/pkg/errors"
)

// Entry is one cached artifact.
type Entry struct {
	Dependency dependency.Dependency
	Path       string
	Size       int64
	ModTime    time.Time
}

// ParseCachePath maps a file path under root back to the dependency it
// caches. The returned dependency is bound to [dependency.Central] because
// the layout does not record the repository.
//
// Returns a MALFORMED_DESCRIPTOR error if path does not follow the
// {group}/{artifact}/{version}/{artifact}-{version}.{ext} layout.
func ParseCachePath(root, path string) (dependency.Dependency, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return dependency.Dependency{}, errors.Wrap(errors.ErrCodeMalformedDescriptor, err, "%s is not under %s", path, root)
	}
	return dependency.ParsePath(filepath.ToSlash(rel))
}

// Entries walks the cache and returns every artifact file, sorted by group,
// artifact, version, then extension. Versions compare by semantic-version
// precedence when both parse. Files outside the layout and in-progress
// atomic downloads are skipped. A missing root yields no entries.
func (s *Store) Entries() ([]Entry, error) {
	var entries []Entry
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == s.root {
				return filepath.SkipDir
			}
			return err
		}
		if !d.Type().IsRegular() || strings.Contains(d.Name(), partMarker) {
			return nil
		}
		dep, err := ParseCachePath(s.root, path)
		if err != nil {
			s.logger.Debug("skipping foreign file", "path", path)
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries = append(entries, Entry{
			Dependency: dep,
			Path:       path,
			Size:       info.Size(),
			ModTime:    info.ModTime(),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return lessDependency(entries[i].Dependency, entries[j].Dependency)
	})
	return entries, nil
}

// Remove deletes the cached file of dep and prunes directories left empty
// up to the root. Returns a NOT_FOUND error if dep is not cached.
func (s *Store) Remove(dep dependency.Dependency) error {
	path := s.Path(dep)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.ErrCodeNotFound, "%s is not cached", dep.Name()).WithArtifact(dep.Name())
		}
		return err
	}
	s.logger.Debug("removed", "artifact", dep.Name(), "path", path)

	root := filepath.Clean(s.root)
	for dir := filepath.Dir(path); dir != root && strings.HasPrefix(dir, root); dir = filepath.Dir(dir) {
		if os.Remove(dir) != nil {
			break
		}
	}
	return nil
}

// Clear deletes the whole cache root and returns how many artifact files
// it held.
func (s *Store) Clear() (int, error) {
	entries, err := s.Entries()
	if err != nil {
		return 0, err
	}
	if err := os.RemoveAll(s.root); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func lessDependency(a, b dependency.Dependency) bool {
	if a.Group() != b.Group() {
		return a.Group() < b.Group()
	}
	if a.Artifact() != b.Artifact() {
		return a.Artifact() < b.Artifact()
	}
	if a.Version() != b.Version() {
		av, aerr := a.SemVer()
		bv, berr := b.SemVer()
		if aerr == nil && berr == nil && !av.Equal(bv) {
			return av.LessThan(bv)
		}
		return a.Version() < b.Version()
	}
	return a.Extension() < b.Extension()
}
