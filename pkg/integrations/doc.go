// Package integrations provides HTTP access to artifact repositories.
//
// # Overview
//
// The [Client] type is the shared transport used by the rest of depinject:
//
//   - [Client.Download] streams an artifact body into a writer, once, with
//     no retry. The artifact cache uses it (through [Client.Fetch]) on a miss.
//   - [Client.Get] and [Client.GetXML] decode small metadata documents and
//     retry transient failures.
//   - [Client.Cached] wraps a metadata fetch with the file cache from
//     [httputil].
//
// Status codes map to sentinel errors: 404 is [ErrNotFound], anything else
// that is not 200 is [ErrNetwork] (retryable for 429 and 5xx).
//
// Repository-specific clients live in subpackages:
//
//   - [maven]: maven-metadata.xml and POM lookups
//
// [httputil]: github.com/matzehuels/depinject/pkg/httputil
// [maven]: github.com/matzehuels/depinject/pkg/integrations/maven
package integrations
