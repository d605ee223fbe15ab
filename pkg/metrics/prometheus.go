package metrics

import (
	"QuantAI/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	outcomes       *prometheus.CounterVec
	backendErrors  *prometheus.CounterVec
	backendLatency prometheus.Histogram
	eventsTotal    *prometheus.CounterVec
}

// New creates a recorder registered with the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered with reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		outcomes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantai_outcomes_total",
				Help: "Signal request outcomes by kind and market",
			},
			[]string{"kind", "market"},
		),
		backendErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantai_backend_errors_total",
				Help: "Backend failures by type",
			},
			[]string{"type"},
		),
		backendLatency: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "quantai_backend_duration_seconds",
				Help:    "Duration of backend generate calls in seconds",
				Buckets: []float64{0.5, 1, 2, 4, 8, 15, 30, 45, 60},
			},
		),
		eventsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quantai_events_published_total",
				Help: "Signal events published, by result",
			},
			[]string{"result"},
		),
	}
}

func (r *Recorder) RecordOutcome(kind models.OutcomeKind, market models.MarketType) {
	r.outcomes.WithLabelValues(string(kind), string(market)).Inc()
}

func (r *Recorder) RecordBackendError(kind string) {
	r.backendErrors.WithLabelValues(kind).Inc()
}

// RecordBackendLatency records backend latency in seconds.
func (r *Recorder) RecordBackendLatency(seconds float64) {
	r.backendLatency.Observe(seconds)
}

func (r *Recorder) RecordEventPublished(ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	r.eventsTotal.WithLabelValues(result).Inc()
}
