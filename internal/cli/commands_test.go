package cli

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/depinject/pkg/cache"
	"github.com/matzehuels/depinject/pkg/dependency"
	"github.com/matzehuels/depinject/pkg/errors"
)

func TestFetch(t *testing.T) {
	server, calls := newRepoServer(t)
	root := t.TempDir()
	args := []string{"--cache-dir", root, "--repo", server.URL + "/maven2", "fetch", "--paths", "org.example:lib:1.0.0", "org.example:util:2.1"}

	out, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{
		filepath.Join(root, "org", "example", "lib", "1.0.0", "lib-1.0.0.jar"),
		filepath.Join(root, "org", "example", "util", "2.1", "util-2.1.jar"),
	}
	if len(lines) != 2 || lines[0] != want[0] || lines[1] != want[1] {
		t.Errorf("fetch output = %q, want %q", lines, want)
	}
	if calls.Load() != 2 {
		t.Errorf("requests = %d, want 2", calls.Load())
	}

	if _, err := runCLI(t, args...); err != nil {
		t.Fatalf("second fetch: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("second fetch made requests; total = %d", calls.Load())
	}
}

func TestFetchFailure(t *testing.T) {
	server, _ := newRepoServer(t)
	root := t.TempDir()

	_, err := runCLI(t, "--cache-dir", root, "--repo", server.URL+"/maven2", "fetch", "org.example:missing:1.0.0")
	if !errors.Is(err, errors.ErrCodeDownload) {
		t.Fatalf("error = %v, want DOWNLOAD_FAILED", err)
	}
	if msg := FormatError(err); !strings.Contains(msg, "missing-1.0.0") || !strings.Contains(msg, "DOWNLOAD_FAILED") {
		t.Errorf("FormatError() = %q", msg)
	}
}

func TestFetchMalformedNotation(t *testing.T) {
	_, err := runCLI(t, "--cache-dir", t.TempDir(), "fetch", "org.example:lib")
	if !errors.Is(err, errors.ErrCodeMalformedDescriptor) {
		t.Errorf("error = %v, want MALFORMED_DESCRIPTOR", err)
	}
}

func TestFetchExtension(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Path
		w.Write([]byte("<project/>"))
	}))
	defer server.Close()

	if _, err := runCLI(t, "--cache-dir", t.TempDir(), "--repo", server.URL, "--ext", "pom", "fetch", "--paths", "a.b:c:1"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got != "/a/b/c/1/c-1.pom" {
		t.Errorf("request path = %q", got)
	}
}

func TestClasspath(t *testing.T) {
	server, _ := newRepoServer(t)
	root := t.TempDir()

	out, err := runCLI(t, "--cache-dir", root, "--repo", server.URL+"/maven2", "classpath", "org.example:a:1", "org.example:b:1")
	if err != nil {
		t.Fatalf("classpath: %v", err)
	}
	want := strings.Join([]string{
		dependency.MustParse("org.example:a:1").CachePath(root),
		dependency.MustParse("org.example:b:1").CachePath(root),
	}, string(os.PathListSeparator))
	if strings.TrimSpace(out) != want {
		t.Errorf("classpath = %q, want %q", strings.TrimSpace(out), want)
	}
}

func TestClasspathStopsAtFirstFailure(t *testing.T) {
	server, _ := newRepoServer(t)
	root := t.TempDir()

	out, err := runCLI(t, "--cache-dir", root, "--repo", server.URL+"/maven2", "classpath",
		"org.example:a:1", "org.example:missing:1", "org.example:c:1")
	if !errors.Is(err, errors.ErrCodeDownload) {
		t.Fatalf("error = %v, want DOWNLOAD_FAILED", err)
	}
	if out != "" {
		t.Errorf("classpath printed %q on failure", out)
	}
	if _, err := os.Stat(dependency.MustParse("org.example:c:1").CachePath(root)); !os.IsNotExist(err) {
		t.Error("third artifact was fetched after a failure")
	}
}

func TestExec(t *testing.T) {
	truePath, err := exec.LookPath("true")
	if err != nil {
		t.Skip("true(1) not available")
	}
	server, _ := newRepoServer(t)
	root := t.TempDir()
	const env = "DEPINJECT_TEST_EXEC_CP"
	t.Setenv(env, "")

	if _, err := runCLI(t, "--cache-dir", root, "--repo", server.URL+"/maven2", "exec", "--env", env, "org.example:a:1", "--", truePath); err != nil {
		t.Fatalf("exec: %v", err)
	}
	if got, want := os.Getenv(env), dependency.MustParse("org.example:a:1").CachePath(root); got != want {
		t.Errorf("%s = %q, want %q", env, got, want)
	}
}

func TestExecRequiresCommand(t *testing.T) {
	if _, err := runCLI(t, "exec", "org.example:a:1"); err == nil {
		t.Error("exec without -- should fail")
	}
}

func TestInstall(t *testing.T) {
	server, _ := newRepoServer(t)
	dir := t.TempDir()
	root := filepath.Join(dir, "jars")
	manifest := filepath.Join(dir, "depinject.toml")
	content := `
[cache]
dir = "` + filepath.ToSlash(root) + `"

[repositories]
local = "` + server.URL + `/maven2"

[[dependency]]
notation = "org.example:a:1.0"
repository = "local"

[[dependency]]
group = "org.example"
artifact = "b"
version = "2.0"
repository = "local"
`
	if err := os.WriteFile(manifest, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "install", "-f", manifest)
	if err != nil {
		t.Fatalf("install: %v", err)
	}
	for _, name := range []string{"a-1.0", "b-2.0"} {
		if !strings.Contains(out, name) {
			t.Errorf("install output missing %s:\n%s", name, out)
		}
	}
	if _, err := os.Stat(filepath.Join(root, "org", "example", "b", "2.0", "b-2.0.jar")); err != nil {
		t.Errorf("manifest cache dir not used: %v", err)
	}
	want := "depinject --cache-dir " + root + " --repo " + server.URL + "/maven2 classpath org.example:a:1.0 org.example:b:2.0"
	if !strings.Contains(out, want) {
		t.Errorf("install output missing suggestion %q:\n%s", want, out)
	}
}

func TestClasspathCommands(t *testing.T) {
	custom := dependency.WithRepositoryURL("https://repo.example.com/releases")
	deps := []dependency.Dependency{
		dependency.MustParse("org.example:a:1"),
		dependency.MustParse("org.example:b:1", custom),
		dependency.MustParse("org.example:c:1", dependency.WithExtension("zip")),
		dependency.MustParse("org.example:d:1"),
	}

	tests := []struct {
		name     string
		cacheDir string
		want     []string
	}{
		{
			name:     "default cache",
			cacheDir: cache.DefaultRoot,
			want: []string{
				"depinject classpath org.example:a:1 org.example:d:1",
				"depinject --repo https://repo.example.com/releases classpath org.example:b:1",
				"depinject --ext zip classpath org.example:c:1",
			},
		},
		{
			name:     "quoted cache dir",
			cacheDir: "/my jars",
			want: []string{
				"depinject --cache-dir '/my jars' classpath org.example:a:1 org.example:d:1",
				"depinject --cache-dir '/my jars' --repo https://repo.example.com/releases classpath org.example:b:1",
				"depinject --cache-dir '/my jars' --ext zip classpath org.example:c:1",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(io.Discard, LogInfo)
			c.cacheDir = tt.cacheDir
			got := c.classpathCommands(deps)
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("classpathCommands() =\n%s\nwant\n%s", strings.Join(got, "\n"), strings.Join(tt.want, "\n"))
			}
		})
	}
}

func TestInstallMissingManifest(t *testing.T) {
	_, err := runCLI(t, "install", "-f", filepath.Join(t.TempDir(), "depinject.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestInstallModel(t *testing.T) {
	deps := []dependency.Dependency{
		dependency.MustParse("org.example:a:1"),
		dependency.MustParse("org.example:b:1"),
		dependency.MustParse("org.example:c:1"),
	}
	cause := stderrors.New("boom")
	m := newInstallModel(context.Background(), deps, nil)

	next, _ := m.Update(installedMsg{index: 0, path: "/c/a-1.jar"})
	m = next.(installModel)
	if m.states[0] != stateDone || m.current != 1 {
		t.Fatalf("after first install: states = %v current = %d", m.states, m.current)
	}

	next, _ = m.Update(installedMsg{index: 1, err: cause})
	m = next.(installModel)
	if !m.done || m.err != cause {
		t.Fatalf("after failure: done = %v err = %v", m.done, m.err)
	}
	if m.states[1] != stateFailed || m.states[2] != stateSkipped {
		t.Errorf("states = %v, want [done failed skipped]", m.states)
	}

	view := m.View()
	for _, want := range []string{"a-1", "/c/a-1.jar", "boom", "skipped"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestInstallModelCompletes(t *testing.T) {
	deps := []dependency.Dependency{dependency.MustParse("org.example:a:1")}
	m := newInstallModel(context.Background(), deps, nil)

	next, cmd := m.Update(installedMsg{index: 0, path: "/c/a-1.jar"})
	m = next.(installModel)
	if !m.done || m.err != nil {
		t.Errorf("done = %v err = %v", m.done, m.err)
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}
