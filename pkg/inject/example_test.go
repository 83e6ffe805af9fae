package inject_test

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/depinject/pkg/cache"
	"github.com/matzehuels/depinject/pkg/dependency"
	"github.com/matzehuels/depinject/pkg/inject"
)

func ExampleInjector_InjectDependencies() {
	// A fetcher that pretends every artifact exists.
	fetcher := cache.FetcherFunc(func(ctx context.Context, url string, w io.Writer) error {
		_, err := io.WriteString(w, "jar")
		return err
	})
	root, _ := os.MkdirTemp("", "depinject-example")
	defer os.RemoveAll(root)
	store := cache.NewStore(root, fetcher)

	injector := inject.NewInjector(store, nil)

	var classpath inject.SearchPath
	deps := []dependency.Dependency{
		dependency.MustParse("org.apache.commons:commons-lang3:3.14.0"),
		dependency.MustParse("com.google.guava:guava:33.0.0-jre"),
	}
	if err := injector.InjectDependencies(context.Background(), deps, &classpath); err != nil {
		fmt.Println(err)
		return
	}
	for _, p := range classpath.Paths() {
		rel, _ := filepath.Rel(root, p)
		fmt.Println(filepath.ToSlash(rel))
	}
	// Output:
	// org/apache/commons/commons-lang3/3.14.0/commons-lang3-3.14.0.jar
	// com/google/guava/guava/33.0.0-jre/guava-33.0.0-jre.jar
}

func ExampleInject() {
	target := inject.TargetFunc(func(path string) error {
		fmt.Println("loading", path)
		return nil
	})
	if err := inject.Inject("lib-1.0.0.jar", target); err != nil {
		fmt.Println(err)
	}
	// Output:
	// loading lib-1.0.0.jar
}
