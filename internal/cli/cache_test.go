package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/depinject/pkg/dependency"
)

func seedCache(t *testing.T, root string, notations ...string) {
	t.Helper()
	for _, n := range notations {
		path := dependency.MustParse(n).CachePath(root)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("jar"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCachePath(t *testing.T) {
	root := t.TempDir()
	out, err := runCLI(t, "--cache-dir", root, "cache", "path")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != root {
		t.Errorf("cache path = %q, want %q", out, root)
	}
}

func TestCachePathMetadata(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	out, err := runCLI(t, "cache", "path", "--metadata")
	if err != nil {
		t.Fatalf("cache path --metadata: %v", err)
	}
	if want := filepath.Join(xdg, appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path --metadata = %q, want %q", out, want)
	}
}

func TestCacheList(t *testing.T) {
	root := t.TempDir()
	seedCache(t, root, "org.example:lib:1.10.0", "org.example:lib:1.2.0", "com.acme:tool:3.0")

	out, err := runCLI(t, "--cache-dir", root, "cache", "list")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	first := strings.Index(out, "com.acme:tool:3.0")
	older := strings.Index(out, "org.example:lib:1.2.0")
	newer := strings.Index(out, "org.example:lib:1.10.0")
	if first < 0 || older < 0 || newer < 0 {
		t.Fatalf("cache list output missing entries:\n%s", out)
	}
	if !(first < older && older < newer) {
		t.Errorf("cache list not sorted:\n%s", out)
	}
	if !strings.Contains(out, "3 artifacts") {
		t.Errorf("cache list summary missing:\n%s", out)
	}
}

func TestCacheListEmpty(t *testing.T) {
	out, err := runCLI(t, "--cache-dir", filepath.Join(t.TempDir(), "none"), "cache", "list")
	if err != nil {
		t.Fatalf("cache list: %v", err)
	}
	if !strings.Contains(out, "Cache is empty") {
		t.Errorf("output = %q", out)
	}
}

func TestCacheRemove(t *testing.T) {
	root := t.TempDir()
	seedCache(t, root, "org.example:lib:1.0.0")

	if _, err := runCLI(t, "--cache-dir", root, "cache", "rm", "org.example:lib:1.0.0"); err != nil {
		t.Fatalf("cache rm: %v", err)
	}
	if _, err := os.Stat(dependency.MustParse("org.example:lib:1.0.0").CachePath(root)); !os.IsNotExist(err) {
		t.Error("artifact still cached")
	}
	if _, err := runCLI(t, "--cache-dir", root, "cache", "rm", "org.example:lib:1.0.0"); err == nil {
		t.Error("removing a missing artifact should fail")
	}
}

func TestCacheClear(t *testing.T) {
	root := filepath.Join(t.TempDir(), "deps")
	seedCache(t, root, "org.example:lib:1.0.0", "org.example:lib:2.0.0")

	out, err := runCLI(t, "--cache-dir", root, "cache", "clear")
	if err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(out, "Cleared 2 cached artifacts") {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Error("cache root still exists")
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
