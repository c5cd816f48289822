package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the monitoring
// service.
type Metrics struct {
	AggregationRequests prometheus.Counter
	SourceFetches       *prometheus.CounterVec   // labels: source={weather,tide,marine,pollution}, outcome={real,fallback}
	ProviderDuration    *prometheus.HistogramVec // labels: source
	AlertsGenerated     *prometheus.CounterVec   // labels: severity
	AlertsDeactivated   prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus
// registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.AggregationRequests,
		m.SourceFetches,
		m.ProviderDuration,
		m.AlertsGenerated,
		m.AlertsDeactivated,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		AggregationRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coastwatch",
			Name:      "aggregation_requests_total",
			Help:      "Total comprehensive data aggregations performed.",
		}),
		SourceFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coastwatch",
			Name:      "source_fetches_total",
			Help:      "Source adapter fetches by source and outcome.",
		}, []string{"source", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "coastwatch",
			Name:      "provider_request_duration_seconds",
			Help:      "External provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15},
		}, []string{"source"}),
		AlertsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "coastwatch",
			Name:      "alerts_generated_total",
			Help:      "Alerts created by the deriver, by severity.",
		}, []string{"severity"}),
		AlertsDeactivated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "coastwatch",
			Name:      "alerts_deactivated_total",
			Help:      "Alerts soft-deactivated through the API.",
		}),
	}
}
