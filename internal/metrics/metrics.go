// Package metrics defines the prometheus collectors for BIN lookups.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Lookup outcomes, used as the "outcome" label value.
const (
	OutcomeSuccess   = "success"
	OutcomeTransport = "transport_error"
	OutcomeStatus    = "status_error"
	OutcomeDecode    = "decode_error"
)

// Metrics holds the lookup collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Lookups    *prometheus.CounterVec
	Duration   prometheus.Histogram
	Validation prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bincheck_lookups_total",
				Help: "Lookups sent to the BIN service, by outcome",
			},
			[]string{"outcome"},
		),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bincheck_lookup_duration_seconds",
			Help:    "Round-trip time of BIN service lookups",
			Buckets: prometheus.DefBuckets,
		}),
		Validation: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bincheck_validation_rejections_total",
			Help: "Submissions rejected locally for having fewer than 6 digits",
		}),
	}
	reg.MustRegister(m.Lookups, m.Duration, m.Validation)
	return m
}

// ObserveLookup records one finished lookup.
func (m *Metrics) ObserveLookup(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Lookups.WithLabelValues(outcome).Inc()
	m.Duration.Observe(d.Seconds())
}

// IncValidation records one locally rejected submission.
func (m *Metrics) IncValidation() {
	if m == nil {
		return
	}
	m.Validation.Inc()
}
