package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// advisory pipeline.
type Metrics struct {
	MessagesConsumed   prometheus.Counter
	AdvisoriesProduced prometheus.Counter
	AlertsProduced     prometheus.Counter
	TransformErrors    prometheus.Counter
	PipelineRunning    prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Risk distribution across generated advisories.
	RiskLevels *prometheus.CounterVec // labels: level={Low,Moderate,High,Critical}

	// SMS gateway metrics.
	SMSRequests    *prometheus.CounterVec // labels: outcome={success,error,deduped}
	SMSAPIDuration prometheus.Histogram
	SMSEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agri_advisory",
			Name:      "messages_consumed_total",
			Help:      "Total advisory requests read from the source topic.",
		}),
		AdvisoriesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agri_advisory",
			Name:      "advisories_produced_total",
			Help:      "Total advisory bundles written to the sink topic.",
		}),
		AlertsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agri_advisory",
			Name:      "alerts_produced_total",
			Help:      "Total critical alerts written to the alert topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "agri_advisory",
			Name:      "transform_errors_total",
			Help:      "Total advisory generation failures.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "agri_advisory",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agri_advisory",
			Name:      "batch_size",
			Help:      "Number of requests per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agri_advisory",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		RiskLevels: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri_advisory",
			Name:      "risk_levels_total",
			Help:      "Generated advisories by computed risk level.",
		}, []string{"level"}),
		SMSRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "agri_advisory",
			Name:      "sms_requests_total",
			Help:      "SMS gateway requests by outcome.",
		}, []string{"outcome"}),
		SMSAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "agri_advisory",
			Name:      "sms_api_duration_seconds",
			Help:      "SMS gateway request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		SMSEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "agri_advisory",
			Name:      "sms_enabled",
			Help:      "1 when SMS alert dispatch is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.AdvisoriesProduced,
		m.AlertsProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.RiskLevels,
		m.SMSRequests,
		m.SMSAPIDuration,
		m.SMSEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agri_advisory", Name: "messages_consumed_total"}),
		AdvisoriesProduced:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agri_advisory", Name: "advisories_produced_total"}),
		AlertsProduced:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agri_advisory", Name: "alerts_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "agri_advisory", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "agri_advisory", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "agri_advisory", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "agri_advisory", Name: "batch_processing_duration_seconds"}),
		RiskLevels:              prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "agri_advisory", Name: "risk_levels_total"}, []string{"level"}),
		SMSRequests:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "agri_advisory", Name: "sms_requests_total"}, []string{"outcome"}),
		SMSAPIDuration:          prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "agri_advisory", Name: "sms_api_duration_seconds"}),
		SMSEnabled:              prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "agri_advisory", Name: "sms_enabled"}),
	}
}
