// Package cache materializes artifacts in a local directory tree.
//
// # Layout
//
// A [Store] keeps each artifact at the repository-style path of its
// dependency, below a root directory ([DefaultRoot] unless configured):
//
//	.dependencies/org/apache/commons/commons-lang3/3.14.0/commons-lang3-3.14.0.jar
//
// The tree is the whole state of the cache. There is no index or checksum
// file; a regular file at the expected path means the artifact is present.
//
// # Resolution
//
// [Store.EnsureLocal] returns the path of a cached artifact, or downloads it
// first through the store's [Fetcher]. Downloads are attempted once. Any
// failure is reported as a DOWNLOAD_FAILED error naming the artifact, and a
// partially written file is removed.
//
// With [WithAtomicWrites] the body is written to "<file>.part-<uuid>" and
// renamed into place when complete, which also protects against a process
// being killed mid-download.
//
// # Maintenance
//
// [Store.Entries] lists cached artifacts, [Store.Remove] deletes one, and
// [Store.Clear] deletes the whole root. [ParseCachePath] turns a file path
// back into its dependency.
package cache
