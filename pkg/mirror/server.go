// Package mirror serves a cache store over HTTP in repository layout.
//
// A build tool pointed at the mirror as its repository receives artifacts
// from the local cache; misses are fetched from the upstream repository
// through [cache.Store.EnsureLocal] and kept for later requests.
//
// Routes:
//
//	GET /maven2/{group...}/{artifact}/{version}/{artifact}-{version}.{ext}
//	GET /api/v1/artifacts   cached artifacts as JSON
//	GET /healthz            liveness
//	GET /metrics            Prometheus metrics, when a gatherer is set
//
// [cache.Store.EnsureLocal]: github.com/matzehuels/depinject/pkg/cache
package mirror

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/depinject/pkg/cache"
	"github.com/matzehuels/depinject/pkg/dependency"
	"github.com/matzehuels/depinject/pkg/errors"
	"github.com/matzehuels/depinject/pkg/integrations"
)

// RepositoryPrefix is the URL prefix under which artifacts are served.
const RepositoryPrefix = "/maven2"

// RequestIDHeader carries the per-request ID in responses.
const RequestIDHeader = "X-Request-ID"

const shutdownTimeout = 10 * time.Second

// Server is an HTTP front end for a cache store.
type Server struct {
	store    *cache.Store
	upstream dependency.Repository
	logger   *log.Logger
	gatherer prometheus.Gatherer
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithUpstream sets the repository misses are fetched from (default central).
func WithUpstream(r dependency.Repository) Option {
	return func(s *Server) { s.upstream = r }
}

// WithLogger sets the request logger. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics exposes g at /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// New creates a Server for store.
func New(store *cache.Store, opts ...Option) *Server {
	s := &Server{
		store:    store,
		upstream: dependency.Central,
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok\n"))
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Get("/api/v1/artifacts", s.listArtifacts)
	r.Get(RepositoryPrefix+"/*", s.serveArtifact)
	r.Head(RepositoryPrefix+"/*", s.serveArtifact)
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("mirror listening", "addr", addr, "root", s.store.Root(), "upstream", s.upstream.URL())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return err
		}
		return ctx.Err()
	}
}

func (s *Server) serveArtifact(w http.ResponseWriter, r *http.Request) {
	dep, err := dependency.ParsePath(chi.URLParam(r, "*"), dependency.WithRepository(s.upstream))
	if err != nil {
		http.Error(w, errors.UserMessage(err), http.StatusBadRequest)
		return
	}

	path, err := s.store.EnsureLocal(r.Context(), dep)
	if err != nil {
		s.logger.Warn("artifact unavailable", "artifact", dep.Name(), "error", err, "request_id", w.Header().Get(RequestIDHeader))
		http.Error(w, errors.UserMessage(err), statusFor(err))
		return
	}

	f, err := os.Open(path)
	if err != nil {
		http.Error(w, "cache read failed", http.StatusInternalServerError)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, "cache read failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType(dep.Extension()))
	http.ServeContent(w, r, dep.FileName(), info.ModTime(), f)
}

type artifactJSON struct {
	Coordinate string    `json:"coordinate"`
	Extension  string    `json:"extension"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	ModTime    time.Time `json:"mod_time"`
}

func (s *Server) listArtifacts(w http.ResponseWriter, r *http.Request) {
	entries, err := s.store.Entries()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	out := make([]artifactJSON, len(entries))
	for i, e := range entries {
		out[i] = artifactJSON{
			Coordinate: e.Dependency.String(),
			Extension:  e.Dependency.Extension(),
			Path:       RepositoryPrefix + "/" + e.Dependency.RemotePath(),
			Size:       e.Size,
			ModTime:    e.ModTime,
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func statusFor(err error) int {
	switch {
	case stderrors.Is(err, integrations.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeDownload):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func contentType(ext string) string {
	switch strings.ToLower(ext) {
	case "jar", "war", "ear", "aar":
		return "application/java-archive"
	case "pom", "xml":
		return "application/xml"
	case "zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}

// requestID tags each request with a UUID, reusing a valid incoming one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", ww.Header().Get(RequestIDHeader))
	})
}
