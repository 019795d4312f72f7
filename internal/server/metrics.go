package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/claude/liftrecap/internal/report"
)

// Metrics holds the Prometheus collectors for one Server. Each Server owns its
// registry so tests can build several side by side.
type Metrics struct {
	registry        *prometheus.Registry
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	recaps          *prometheus.CounterVec
	rows            *prometheus.CounterVec
	sessions        prometheus.Counter
}

// NewMetrics registers the liftrecap collectors plus Go runtime and process stats.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "liftrecap_http_requests_total",
			Help: "HTTP requests by route and status code.",
		}, []string{"route", "method", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "liftrecap_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		recaps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "liftrecap_recaps_total",
			Help: "Recaps generated by response format.",
		}, []string{"format"}),
		rows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "liftrecap_csv_rows_total",
			Help: "CSV rows read from uploads, by outcome.",
		}, []string{"outcome"}),
		sessions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "liftrecap_sessions_built_total",
			Help: "Workout sessions built from uploads.",
		}),
	}
	m.registry.MustRegister(
		m.requests, m.requestDuration, m.recaps, m.rows, m.sessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency keyed by the chi route
// pattern, so path parameters do not explode label cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(sw.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) observeRecap(format string, rep *report.Report) {
	m.recaps.WithLabelValues(format).Inc()
	m.rows.WithLabelValues("kept").Add(float64(rep.Ingest.RowsReceived - rep.Ingest.RowsDropped))
	m.rows.WithLabelValues("dropped").Add(float64(rep.Ingest.RowsDropped))
	m.sessions.Add(float64(rep.Ingest.SessionsBuilt))
}
