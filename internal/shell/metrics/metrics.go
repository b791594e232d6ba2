// Package metrics exposes Prometheus metrics for the search service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for SearchRequests.
const (
	OutcomeSuccess  = "success"
	OutcomeEmpty    = "empty"
	OutcomeRejected = "rejected"
	OutcomeNotFound = "not_found"
)

// Metrics holds the service's collectors and the registry they live in.
type Metrics struct {
	registry *prometheus.Registry

	// Search requests by method and outcome
	SearchRequests *prometheus.CounterVec

	// Records returned per successful search
	SearchResults *prometheus.HistogramVec

	// Search latency by method
	SearchLatency *prometheus.HistogramVec

	// Number of records in the loaded table
	DatasetRecords prometheus.Gauge
}

// New creates a Metrics instance on its own registry, with the Go runtime
// and process collectors included.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		SearchRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "buscador_search_requests_total",
			Help: "Total search requests by method and outcome",
		}, []string{"method", "outcome"}),

		SearchResults: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "buscador_search_results",
			Help:    "Number of records returned per successful search",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
		}, []string{"method"}),

		SearchLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "buscador_search_duration_seconds",
			Help:    "Duration of search evaluation by method",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"method"}),

		DatasetRecords: f.NewGauge(prometheus.GaugeOpts{
			Name: "buscador_dataset_records",
			Help: "Number of beneficiary records loaded",
		}),
	}
}

// Registry returns the registry the collectors are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// IncrementSearch records a search request outcome.
func (m *Metrics) IncrementSearch(method, outcome string) {
	if m != nil {
		m.SearchRequests.WithLabelValues(method, outcome).Inc()
	}
}

// ObserveResults records the size of a returned page.
func (m *Metrics) ObserveResults(method string, n int) {
	if m != nil {
		m.SearchResults.WithLabelValues(method).Observe(float64(n))
	}
}

// ObserveLatency records how long a search took.
func (m *Metrics) ObserveLatency(method string, d time.Duration) {
	if m != nil {
		m.SearchLatency.WithLabelValues(method).Observe(d.Seconds())
	}
}

// SetDatasetRecords records the size of the loaded table.
func (m *Metrics) SetDatasetRecords(n int) {
	if m != nil {
		m.DatasetRecords.Set(float64(n))
	}
}
