package cache

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/depinject/pkg/dependency"
	"github.com/matzehuels/depinject/pkg/errors"
	"github.com/matzehuels/depinject/pkg/integrations"
	"github.com/matzehuels/depinject/pkg/observability"
)

// DefaultRoot is the cache root used when none is given, relative to the
// working directory.
const DefaultRoot = ".dependencies"

// partMarker separates a destination file name from the random suffix of
// its in-progress download in atomic mode.
const partMarker = ".part-"

// Fetcher streams the resource at url into w.
//
// [integrations.Client] implements Fetcher. Implementations must not retry
// on their own behalf once bytes have been written to w.
type Fetcher interface {
	Fetch(ctx context.Context, url string, w io.Writer) error
}

// FetcherFunc adapts an ordinary function to the [Fetcher] interface.
type FetcherFunc func(ctx context.Context, url string, w io.Writer) error

// Fetch calls f(ctx, url, w).
func (f FetcherFunc) Fetch(ctx context.Context, url string, w io.Writer) error {
	return f(ctx, url, w)
}

// Store maps dependencies to files under a root directory, downloading on
// a miss.
//
// A regular file at the dependency's cache path is the only completion
// marker: content is never checked, so a pre-seeded file of any size is a
// hit. Concurrent calls for the same dependency are not coordinated; with
// exclusive file creation the loser of a race reports DOWNLOAD_FAILED.
type Store struct {
	root    string
	fetcher Fetcher
	atomic  bool
	logger  *log.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithAtomicWrites makes the store download into a temporary sibling file
// and rename it into place only after the copy succeeds, so an interrupted
// download never leaves a file that a later call would treat as a hit.
func WithAtomicWrites() StoreOption {
	return func(s *Store) { s.atomic = true }
}

// WithLogger sets the logger for cache events. A nil logger is ignored.
func WithLogger(l *log.Logger) StoreOption {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates a Store rooted at root.
//
// An empty root means [DefaultRoot]. A nil fetcher means an
// [integrations.Client] with [integrations.DownloadTimeout].
// The root directory is created lazily on the first download.
func NewStore(root string, fetcher Fetcher, opts ...StoreOption) *Store {
	if root == "" {
		root = DefaultRoot
	}
	if fetcher == nil {
		fetcher = integrations.NewDownloadClient(integrations.DownloadTimeout)
	}
	s := &Store{root: root, fetcher: fetcher, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Root returns the cache root directory.
func (s *Store) Root() string { return s.root }

// Atomic reports whether the store writes through a temporary file.
func (s *Store) Atomic() bool { return s.atomic }

// Path returns where dep is (or would be) cached. It does not touch disk.
func (s *Store) Path(dep dependency.Dependency) string {
	return dep.CachePath(s.root)
}

// Contains reports whether dep is present in the cache.
func (s *Store) Contains(dep dependency.Dependency) bool {
	return isFile(s.Path(dep))
}

// EnsureLocal returns the local path of dep, downloading it first if it is
// not cached.
//
// A hit performs no network access. On a miss the parent directories are
// created, the artifact is streamed from dep's download URL into a newly
// created file, and its presence is verified afterwards. Every failure on
// the miss path is returned as a DOWNLOAD_FAILED error carrying dep's
// display name and the underlying cause.
func (s *Store) EnsureLocal(ctx context.Context, dep dependency.Dependency) (string, error) {
	dest := s.Path(dep)
	name := dep.Name()
	hooks := observability.Cache()

	if isFile(dest) {
		hooks.OnCacheHit(ctx, name)
		s.logger.Debug("cache hit", "artifact", name, "path", dest)
		return dest, nil
	}
	hooks.OnCacheMiss(ctx, name)

	url, err := dep.DownloadURL()
	if err != nil {
		return "", downloadError(dep, err)
	}
	s.logger.Debug("downloading", "artifact", name, "url", url)

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return "", downloadError(dep, err)
	}

	var size int64
	if s.atomic {
		size, err = s.downloadAtomic(ctx, url, dest)
	} else {
		size, err = s.download(ctx, url, dest)
	}
	if err != nil {
		return "", downloadError(dep, err)
	}

	if !isFile(dest) {
		return "", errors.New(errors.ErrCodeDownload, "unable to download %s: %s missing after download", name, dest).WithArtifact(name)
	}

	hooks.OnCacheSet(ctx, name, size)
	s.logger.Debug("cached", "artifact", name, "path", dest, "bytes", size)
	return dest, nil
}

// download streams url straight into a new file at dest. A failed copy
// removes the file it created.
func (s *Store) download(ctx context.Context, url, dest string) (int64, error) {
	return writeNew(dest, func(w io.Writer) error {
		return s.fetcher.Fetch(ctx, url, w)
	})
}

// downloadAtomic streams url into a temporary sibling of dest and renames
// it into place on success.
func (s *Store) downloadAtomic(ctx context.Context, url, dest string) (int64, error) {
	tmp := dest + partMarker + uuid.NewString()
	n, err := writeNew(tmp, func(w io.Writer) error {
		return s.fetcher.Fetch(ctx, url, w)
	})
	if err != nil {
		return 0, err
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return 0, err
	}
	return n, nil
}

// writeNew creates path exclusively, lets fill write into it, and closes it.
// The file is removed if fill or close fails.
func writeNew(path string, fill func(io.Writer) error) (int64, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return 0, err
	}
	cw := &countingWriter{w: f}

	err = fill(cw)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, err
	}
	return cw.n, nil
}

func downloadError(dep dependency.Dependency, cause error) error {
	name := dep.Name()
	return errors.Wrap(errors.ErrCodeDownload, cause, "unable to download %s", name).WithArtifact(name)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
