package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the decode service. Each
// Metrics value owns its registry, so tests and the server never fight
// over global registration.
type Metrics struct {
	registry *prometheus.Registry

	ReportsDecoded *prometheus.CounterVec // labels: outcome={ok,error}
	DecodeWarnings prometheus.Counter
	DecodeDuration prometheus.Histogram

	HTTPRequests *prometheus.CounterVec // labels: handler, code

	ArchivedReports prometheus.Counter
	PrunedReports   prometheus.Counter
}

// NewMetrics creates and registers all service metrics on a fresh
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ReportsDecoded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "synack",
			Name:      "reports_decoded_total",
			Help:      "Decode attempts by outcome.",
		}, []string{"outcome"}),
		DecodeWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "synack",
			Name:      "decode_warnings_total",
			Help:      "Recoverable warnings accumulated across all decodes.",
		}),
		DecodeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "synack",
			Name:      "decode_duration_seconds",
			Help:      "Duration of a single report decode.",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "synack",
			Name:      "http_requests_total",
			Help:      "HTTP requests by handler and status code.",
		}, []string{"handler", "code"}),
		ArchivedReports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "synack",
			Name:      "archived_reports_total",
			Help:      "Reports written to the archive.",
		}),
		PrunedReports: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "synack",
			Name:      "pruned_reports_total",
			Help:      "Archived reports removed by the retention job.",
		}),
	}

	m.registry.MustRegister(
		m.ReportsDecoded,
		m.DecodeWarnings,
		m.DecodeDuration,
		m.HTTPRequests,
		m.ArchivedReports,
		m.PrunedReports,
	)
	return m
}

// Handler exposes the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
