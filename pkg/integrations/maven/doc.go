// Package maven reads repository metadata and POM files from Maven-layout
// repositories.
//
// # Overview
//
// Artifact downloads go through the artifact cache; this package covers the
// read-only lookups around them: which versions a repository publishes and
// what a given POM declares.
//
// # Usage
//
//	client, err := maven.NewClient(24 * time.Hour)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	md, err := client.FetchMetadata(ctx, dependency.Central, "org.apache.commons:commons-lang3", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("release:", md.Release)
//
// # Coordinates
//
// [Client.FetchMetadata] takes "groupId:artifactId". [Client.FetchArtifact]
// takes a full dependency and requests the POM that sits next to its
// artifact ({artifact}-{version}.pom) in the same repository.
//
// # Caching
//
// Responses are cached on disk under the "maven:" namespace of the
// metadata cache. Pass refresh=true to bypass the cache.
//
// # Dependency Filtering
//
// [ArtifactInfo.Dependencies] keeps compile-scope entries only. Test,
// provided, and optional dependencies are filtered out. Entries with
// unresolved properties (${...}) are skipped.
package maven
