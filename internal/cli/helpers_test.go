package cli

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// captureOutput redirects user-facing output to a buffer for the duration
// of the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

// runCLI executes the root command with args and returns what it printed.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := captureOutput(t)
	var logs bytes.Buffer
	c := New(&logs, LogDebug)

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	t.Logf("logs:\n%s", logs.String())
	return out.String(), err
}

// newRepoServer serves a small body for every .jar under /maven2 and
// counts requests.
func newRepoServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if !strings.HasPrefix(r.URL.Path, "/maven2/") || !strings.HasSuffix(r.URL.Path, ".jar") || strings.Contains(r.URL.Path, "/missing/") {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "jar")
	}))
	t.Cleanup(server.Close)
	return server, &calls
}
