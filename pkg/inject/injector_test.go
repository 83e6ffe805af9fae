package inject

import (
	"context"
	stderrors "errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/depinject/pkg/cache"
	"github.com/matzehuels/depinject/pkg/dependency"
	"github.com/matzehuels/depinject/pkg/errors"
	"github.com/matzehuels/depinject/pkg/observability"
)

// recordingFetcher writes a fixed body and fails for artifacts listed in fail.
type recordingFetcher struct {
	urls []string
	fail map[string]bool
}

func (f *recordingFetcher) Fetch(ctx context.Context, url string, w io.Writer) error {
	f.urls = append(f.urls, url)
	for artifact := range f.fail {
		if strings.Contains(url, "/"+artifact+"/") {
			return stderrors.New("connection refused")
		}
	}
	_, err := io.WriteString(w, "jar")
	return err
}

func newTestInjector(t *testing.T, fail ...string) (*Injector, *recordingFetcher) {
	t.Helper()
	f := &recordingFetcher{fail: make(map[string]bool)}
	for _, a := range fail {
		f.fail[a] = true
	}
	store := cache.NewStore(t.TempDir(), f)
	return NewInjector(store, nil), f
}

func TestInject(t *testing.T) {
	var sp SearchPath
	path := filepath.Join("cache", "org", "example", "lib", "1.0.0", "lib-1.0.0.jar")

	if err := Inject(path, &sp); err != nil {
		t.Fatalf("Inject() error: %v", err)
	}
	if got := sp.Paths(); len(got) != 1 || got[0] != path {
		t.Errorf("Paths() = %v, want [%s]", got, path)
	}
}

func TestInjectNilTarget(t *testing.T) {
	err := Inject("lib-1.0.0.jar", nil)
	if !errors.Is(err, errors.ErrCodeInjection) {
		t.Fatalf("error = %v, want INJECTION_FAILED", err)
	}
	if got := errors.ArtifactName(err); got != "lib-1.0.0" {
		t.Errorf("ArtifactName() = %q, want lib-1.0.0", got)
	}
}

func TestInjectTargetError(t *testing.T) {
	cause := stderrors.ErrUnsupported
	target := TargetFunc(func(string) error { return cause })

	err := Inject("/tmp/lib-1.0.0.jar", target)
	if !errors.Is(err, errors.ErrCodeInjection) {
		t.Fatalf("error = %v, want INJECTION_FAILED", err)
	}
	if !stderrors.Is(err, cause) {
		t.Errorf("error does not wrap the target's error: %v", err)
	}
}

func TestInjectDependency(t *testing.T) {
	inj, f := newTestInjector(t)
	var sp SearchPath
	dep := dependency.MustParse("org.example:lib:1.0.0")

	if err := inj.InjectDependency(context.Background(), dep, &sp); err != nil {
		t.Fatalf("InjectDependency() error: %v", err)
	}
	want := dep.CachePath(inj.Store().Root())
	if got := sp.Paths(); len(got) != 1 || got[0] != want {
		t.Errorf("Paths() = %v, want [%s]", got, want)
	}
	if len(f.urls) != 1 {
		t.Errorf("fetches = %d, want 1", len(f.urls))
	}

	// A second injection of the same artifact is served from the cache and
	// leaves the target as it was.
	if err := inj.InjectDependency(context.Background(), dep, &sp); err != nil {
		t.Fatalf("second InjectDependency() error: %v", err)
	}
	if len(f.urls) != 1 {
		t.Errorf("fetches = %d after cache hit, want 1", len(f.urls))
	}
	if sp.Len() != 1 {
		t.Errorf("Len() = %d, want 1", sp.Len())
	}
}

func TestInjectDependenciesRepeatedArtifact(t *testing.T) {
	inj, f := newTestInjector(t)
	dep := dependency.MustParse("org.example:lib:1.0.0")
	other := dependency.MustParse("org.example:util:2.0")

	var sp SearchPath
	if err := inj.InjectDependencies(context.Background(), []dependency.Dependency{dep, other, dep}, &sp); err != nil {
		t.Fatalf("InjectDependencies() error: %v", err)
	}
	want := []string{dep.CachePath(inj.Store().Root()), other.CachePath(inj.Store().Root())}
	if got := sp.Paths(); len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Paths() = %v, want %v", got, want)
	}
	if len(f.urls) != 2 {
		t.Errorf("fetches = %d, want 2", len(f.urls))
	}
}

func TestInjectTypedNilTarget(t *testing.T) {
	var sp *SearchPath
	var env *EnvTarget
	var pt *PluginTarget
	var fn TargetFunc

	tests := []struct {
		name   string
		target Target
	}{
		{"search path", sp},
		{"env", env},
		{"plugin", pt},
		{"func", fn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Inject("/c/lib-1.0.jar", tt.target)
			if !errors.Is(err, errors.ErrCodeInjection) {
				t.Errorf("error = %v, want INJECTION_FAILED", err)
			}
			if got := errors.ArtifactName(err); got != "lib-1.0" {
				t.Errorf("ArtifactName() = %q, want lib-1.0", got)
			}
		})
	}
}

func TestInjectTargetPanics(t *testing.T) {
	target := TargetFunc(func(string) error { panic("boom") })

	err := Inject("/c/lib-1.0.jar", target)
	if !errors.Is(err, errors.ErrCodeInjection) {
		t.Fatalf("error = %v, want INJECTION_FAILED", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q does not mention the panic value", err)
	}
}

func TestInjectDependencyNameWithCompoundExtension(t *testing.T) {
	inj, _ := newTestInjector(t)
	dep := dependency.MustParse("org.example:lib:1.0", dependency.WithExtension("tar.gz"))
	reject := TargetFunc(func(string) error { return stderrors.New("read-only") })

	err := inj.InjectDependency(context.Background(), dep, reject)
	if !errors.Is(err, errors.ErrCodeInjection) {
		t.Fatalf("error = %v, want INJECTION_FAILED", err)
	}
	if got := errors.ArtifactName(err); got != "lib-1.0" {
		t.Errorf("ArtifactName() = %q, want lib-1.0", got)
	}
}

func TestInjectDependencyDownloadError(t *testing.T) {
	inj, _ := newTestInjector(t, "lib")
	var sp SearchPath

	err := inj.InjectDependency(context.Background(), dependency.MustParse("org.example:lib:1.0.0"), &sp)
	if !errors.Is(err, errors.ErrCodeDownload) {
		t.Fatalf("error = %v, want DOWNLOAD_FAILED", err)
	}
	if sp.Len() != 0 {
		t.Errorf("target received %v after failed download", sp.Paths())
	}
}

func TestInjectDependenciesStopsAtFirstFailure(t *testing.T) {
	inj, f := newTestInjector(t, "second")
	var sp SearchPath
	deps := []dependency.Dependency{
		dependency.MustParse("org.example:first:1.0.0"),
		dependency.MustParse("org.example:second:1.0.0"),
		dependency.MustParse("org.example:third:1.0.0"),
	}

	err := inj.InjectDependencies(context.Background(), deps, &sp)
	if !errors.Is(err, errors.ErrCodeDownload) {
		t.Fatalf("error = %v, want DOWNLOAD_FAILED", err)
	}
	if got := errors.ArtifactName(err); got != "second-1.0.0" {
		t.Errorf("ArtifactName() = %q, want second-1.0.0", got)
	}

	paths := sp.Paths()
	if len(paths) != 1 || filepath.Base(paths[0]) != "first-1.0.0.jar" {
		t.Errorf("Paths() = %v, want only first-1.0.0.jar", paths)
	}
	for _, u := range f.urls {
		if strings.Contains(u, "/third/") {
			t.Error("third dependency was attempted")
		}
	}
}

func TestInjectDependenciesCanceled(t *testing.T) {
	inj, f := newTestInjector(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := inj.InjectDependencies(ctx, []dependency.Dependency{dependency.MustParse("a:b:1")}, &SearchPath{})
	if !stderrors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
	if len(f.urls) != 0 {
		t.Error("fetch attempted after cancellation")
	}
}

func TestInjectNotation(t *testing.T) {
	inj, f := newTestInjector(t)
	var sp SearchPath
	ctx := context.Background()

	if err := inj.InjectNotation(ctx, "org.example:lib:1.0.0", &sp, dependency.WithRepositoryURL("https://repo.example.com/maven")); err != nil {
		t.Fatalf("InjectNotation() error: %v", err)
	}
	if want := "https://repo.example.com/maven/org/example/lib/1.0.0/lib-1.0.0.jar"; f.urls[0] != want {
		t.Errorf("url = %q, want %q", f.urls[0], want)
	}

	err := inj.InjectNotation(ctx, "org.example:lib", &sp)
	if !errors.Is(err, errors.ErrCodeMalformedDescriptor) {
		t.Errorf("error = %v, want MALFORMED_DESCRIPTOR", err)
	}
}

func TestInjectCoordinates(t *testing.T) {
	inj, _ := newTestInjector(t)
	var sp SearchPath
	ctx := context.Background()

	if err := inj.InjectCoordinates(ctx, "org.example", "lib", "1.0.0", &sp, dependency.WithExtension("zip")); err != nil {
		t.Fatalf("InjectCoordinates() error: %v", err)
	}
	if got := filepath.Base(sp.Paths()[0]); got != "lib-1.0.0.zip" {
		t.Errorf("file = %q, want lib-1.0.0.zip", got)
	}

	err := inj.InjectCoordinates(ctx, "", "lib", "1.0.0", &sp)
	if !errors.Is(err, errors.ErrCodeInvalidConfiguration) {
		t.Errorf("error = %v, want INVALID_CONFIGURATION", err)
	}
}

type recordingInjectHooks struct {
	observability.NoopInjectHooks
	started, completed []string
	errs               []error
}

func (h *recordingInjectHooks) OnInjectStart(_ context.Context, artifact string) {
	h.started = append(h.started, artifact)
}

func (h *recordingInjectHooks) OnInjectComplete(_ context.Context, artifact string, _ time.Duration, err error) {
	h.completed = append(h.completed, artifact)
	h.errs = append(h.errs, err)
}

func TestInjectDependencyHooks(t *testing.T) {
	hooks := &recordingInjectHooks{}
	observability.SetInjectHooks(hooks)
	t.Cleanup(observability.Reset)

	inj, _ := newTestInjector(t)
	if err := inj.InjectDependency(context.Background(), dependency.MustParse("org.example:lib:1.0.0"), nil); err == nil {
		t.Fatal("expected error for nil target")
	}

	if len(hooks.started) != 1 || hooks.started[0] != "lib-1.0.0" {
		t.Errorf("started = %v", hooks.started)
	}
	if len(hooks.completed) != 1 || !errors.Is(hooks.errs[0], errors.ErrCodeInjection) {
		t.Errorf("completed = %v errs = %v", hooks.completed, hooks.errs)
	}
}
