package worker

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the worker's Prometheus collectors.
type Metrics struct {
	FilesProcessed *prometheus.CounterVec
	FilesFailed    prometheus.Counter
	FilesUnmatched prometheus.Counter
	ItemsTotal     prometheus.Counter
	ErrorsTotal    *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics creates and registers the worker collectors on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FilesProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "orderguide",
				Subsystem: "worker",
				Name:      "files_processed_total",
				Help:      "Total number of files processed, by matched processor",
			},
			[]string{"processor"},
		),
		FilesFailed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "orderguide",
				Subsystem: "worker",
				Name:      "files_failed_total",
				Help:      "Total number of files that failed processing",
			},
		),
		FilesUnmatched: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "orderguide",
				Subsystem: "worker",
				Name:      "files_unmatched_total",
				Help:      "Total number of files no processor matched",
			},
		),
		ItemsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "orderguide",
				Subsystem: "worker",
				Name:      "items_total",
				Help:      "Total number of order guide items extracted",
			},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "orderguide",
				Subsystem: "worker",
				Name:      "errors_total",
				Help:      "Total number of recorded validation errors, by kind",
			},
			[]string{"kind"},
		),

		registry: prometheus.NewRegistry(),
	}

	m.registry.MustRegister(
		m.FilesProcessed,
		m.FilesFailed,
		m.FilesUnmatched,
		m.ItemsTotal,
		m.ErrorsTotal,
	)

	return m
}

// Handler returns the Prometheus exposition handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics and /health on addr. Blocks until the server stops.
func (m *Metrics) Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return http.ListenAndServe(addr, mux)
}
