package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks implements CacheHooks, HTTPHooks, and InjectHooks by
// recording Prometheus metrics. Labels are kept low-cardinality: artifact
// names are not used as labels.
type PrometheusHooks struct {
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
	downloadedBytes  prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpErrors       prometheus.Counter
	httpDuration     prometheus.Histogram
	injections       *prometheus.CounterVec
	injectionSeconds prometheus.Histogram
}

// NewPrometheusHooks creates hooks whose metrics are registered with reg.
// It panics if the metrics are already registered with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "depinject_cache_hits_total",
			Help: "Number of artifacts found in the local cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "depinject_cache_misses_total",
			Help: "Number of artifacts that had to be downloaded.",
		}),
		downloadedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "depinject_downloaded_bytes_total",
			Help: "Total bytes written to the cache by downloads.",
		}),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depinject_http_requests_total",
				Help: "Number of HTTP responses by host and status code.",
			},
			[]string{"host", "code"},
		),
		httpErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "depinject_http_errors_total",
			Help: "Number of HTTP requests that failed without a response.",
		}),
		httpDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "depinject_http_request_duration_seconds",
			Help:    "Time taken by HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}),
		injections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "depinject_injections_total",
				Help: "Number of injections by result.",
			},
			[]string{"result"},
		),
		injectionSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "depinject_injection_duration_seconds",
			Help:    "Time taken to resolve and attach an artifact.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		h.cacheHits,
		h.cacheMisses,
		h.downloadedBytes,
		h.httpRequests,
		h.httpErrors,
		h.httpDuration,
		h.injections,
		h.injectionSeconds,
	)
	return h
}

func (h *PrometheusHooks) OnCacheHit(context.Context, string)  { h.cacheHits.Inc() }
func (h *PrometheusHooks) OnCacheMiss(context.Context, string) { h.cacheMisses.Inc() }

func (h *PrometheusHooks) OnCacheSet(_ context.Context, _ string, size int64) {
	if size > 0 {
		h.downloadedBytes.Add(float64(size))
	}
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, _, host, _ string, statusCode int, duration time.Duration) {
	h.httpRequests.WithLabelValues(host, strconv.Itoa(statusCode)).Inc()
	h.httpDuration.Observe(duration.Seconds())
}

func (h *PrometheusHooks) OnError(context.Context, string, string, string, error) {
	h.httpErrors.Inc()
}

func (h *PrometheusHooks) OnInjectStart(context.Context, string) {}

func (h *PrometheusHooks) OnInjectComplete(_ context.Context, _ string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	h.injections.WithLabelValues(result).Inc()
	h.injectionSeconds.Observe(duration.Seconds())
}

var (
	_ CacheHooks  = (*PrometheusHooks)(nil)
	_ HTTPHooks   = (*PrometheusHooks)(nil)
	_ InjectHooks = (*PrometheusHooks)(nil)
)
