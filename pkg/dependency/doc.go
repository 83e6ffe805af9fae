// Package dependency describes single artifacts and the repositories they
// are fetched from.
//
// # Overview
//
// A [Dependency] identifies one artifact by Maven-style coordinates (group,
// artifact, version) bound to a [Repository]. From those values it derives,
// without any I/O:
//
//   - the download URL: {base}/org/example/lib/1.0.0/lib-1.0.0.jar
//   - the cache path:   {root}/org/example/lib/1.0.0/lib-1.0.0.jar
//
// # Construction
//
// There is one construction path with optional arguments:
//
//	dep, err := dependency.New("org.example", "lib", "1.0.0")
//	dep, err := dependency.Parse("org.example:lib:1.0.0",
//	    dependency.WithRepository(dependency.Snapshots),
//	    dependency.WithExtension("so"))
//
// [Parse] accepts the compact "group:artifact:version" notation and rejects
// anything without exactly three non-empty fields.
//
// # Repositories
//
// Two repositories are predefined: [Central] (Maven Central) and
// [Snapshots] (Sonatype OSS snapshots). Any other base URL can be used via
// [NewRepository] or [WithRepositoryURL]. A trailing slash on the base URL
// is optional.
//
// # Errors
//
// Constructors return coded errors from [errors]: INVALID_CONFIGURATION for
// absent values and MALFORMED_DESCRIPTOR for bad notation or URLs.
//
// [errors]: github.com/matzehuels/depinject/pkg/errors
package dependency
