// Package metrics provides Prometheus instrumentation.
//
// It pre-defines the standard HTTP metrics plus the store-level counters
// (orders placed, checkout validation failures, auth rejections) and gives
// you helpers to register your own.
//
// Wire it up once in internal/server:
//
//	r.Use(metrics.Middleware())
//	r.Get("/metrics", "metrics", metrics.Handler())
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "aushadhi"

func counter(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

func histogram(subsystem, name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets,
	}, labels)
}

// HTTP and infrastructure metrics.
var (
	// RequestDuration tracks request latency by method, path and status.
	RequestDuration = histogram("http", "request_duration_seconds",
		"Duration of HTTP requests in seconds.", prometheus.DefBuckets,
		"method", "path", "status")

	// RequestTotal counts all HTTP requests.
	RequestTotal = counter("http", "requests_total",
		"Total number of HTTP requests.", "method", "path", "status")

	// RequestInFlight tracks how many requests are currently being served.
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "http",
		Name: "requests_in_flight",
		Help: "Number of HTTP requests currently being served.",
	})

	// DBQueryDuration tracks ORM query latency.
	DBQueryDuration = histogram("db", "query_duration_seconds",
		"Duration of database queries in seconds.",
		[]float64{.001, .005, .01, .025, .05, .1, .5, 1}, "operation")

	// QueueJobsProcessed counts processed queue jobs, status "success" or "failed".
	QueueJobsProcessed = counter("queue", "jobs_processed_total",
		"Total queue jobs processed.", "status")

	// CacheHits and CacheMisses track catalog cache effectiveness per driver.
	CacheHits   = counter("cache", "hits_total", "Total cache hits.", "driver")
	CacheMisses = counter("cache", "misses_total", "Total cache misses.", "driver")
)

// Store metrics.
var (
	// OrdersPlaced counts orders created through checkout, by payment method.
	OrdersPlaced = counter("orders", "placed_total",
		"Total orders placed.", "payment_method")

	// CheckoutRejections counts checkout stage submissions that failed
	// validation. Stage is "delivery_info" or "payment".
	CheckoutRejections = counter("checkout", "rejections_total",
		"Checkout stage submissions rejected by validation.", "stage")

	// AuthRejections counts requests turned away before reaching a handler.
	// Reason is one of "no_token", "bad_token", "unknown_user", "forbidden".
	AuthRejections = counter("auth", "rejections_total",
		"Requests rejected by authentication or authorization.", "reason")
)

// DefaultRegistry is the process-wide Prometheus registry.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestDuration,
		RequestTotal,
		RequestInFlight,
		DBQueryDuration,
		QueueJobsProcessed,
		CacheHits,
		CacheMisses,
		OrdersPlaced,
		CheckoutRejections,
		AuthRejections,
	)
}

// Register adds a prometheus.Collector to the registry.
func Register(c prometheus.Collector) error {
	return DefaultRegistry.Register(c)
}

// MustRegister panics if registration fails.
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware records the duration histogram, total counter, and in-flight
// gauge for every request.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			path := r.URL.Path // raw path; normalize in high-cardinality APIs

			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			status := strconv.Itoa(sw.status)
			RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
			RequestTotal.WithLabelValues(r.Method, path, status).Inc()
		})
	}
}

// Handler exposes the Prometheus scrape endpoint. Mount it on GET /metrics.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}

// ObserveDBQuery records a DB query duration with a simple timer:
//
//	defer metrics.ObserveDBQuery("select", time.Now())
func ObserveDBQuery(operation string, start time.Time) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
