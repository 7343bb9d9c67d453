package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SchedulingMetrics records schedule materialization and packing verification
// outcomes.
type SchedulingMetrics struct {
	materializeDuration *prometheus.HistogramVec
	datesShifted        prometheus.Counter
	bagsCreated         prometheus.Counter
	itemsCreated        prometheus.Counter
	verifications       *prometheus.CounterVec
}

// NewSchedulingMetrics registers the scheduling metrics on the provided
// registerer. A nil registerer yields a no-op collector set.
func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	if reg == nil {
		return &SchedulingMetrics{}
	}
	materializeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_materialize_duration_seconds",
		Help:    "Duration of schedule materialization in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	datesShifted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_dates_shifted_total",
		Help: "Delivery dates moved off holidays during resolution.",
	})
	bagsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_bags_created_total",
		Help: "Bags persisted by schedule materialization.",
	})
	itemsCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schedule_items_created_total",
		Help: "Delivery items persisted by schedule materialization.",
	})
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "packing_verifications_total",
		Help: "Packing verification attempts by kind and outcome.",
	}, []string{"kind", "outcome"})
	reg.MustRegister(materializeDuration, datesShifted, bagsCreated, itemsCreated, verifications)
	return &SchedulingMetrics{
		materializeDuration: materializeDuration,
		datesShifted:        datesShifted,
		bagsCreated:         bagsCreated,
		itemsCreated:        itemsCreated,
		verifications:       verifications,
	}
}

// ObserveMaterialize records the duration of a create or edit materialization.
func (m *SchedulingMetrics) ObserveMaterialize(operation string, duration time.Duration) {
	if m == nil || m.materializeDuration == nil {
		return
	}
	m.materializeDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// AddShiftedDates counts holiday shifts applied during resolution.
func (m *SchedulingMetrics) AddShiftedDates(n int) {
	if m == nil || m.datesShifted == nil || n <= 0 {
		return
	}
	m.datesShifted.Add(float64(n))
}

// AddBagsCreated counts bags written during materialization.
func (m *SchedulingMetrics) AddBagsCreated(n int) {
	if m == nil || m.bagsCreated == nil || n <= 0 {
		return
	}
	m.bagsCreated.Add(float64(n))
}

// AddItemsCreated counts delivery items written during materialization.
func (m *SchedulingMetrics) AddItemsCreated(n int) {
	if m == nil || m.itemsCreated == nil || n <= 0 {
		return
	}
	m.itemsCreated.Add(float64(n))
}

// IncVerification counts one verification attempt.
func (m *SchedulingMetrics) IncVerification(kind, outcome string) {
	if m == nil || m.verifications == nil {
		return
	}
	m.verifications.WithLabelValues(kind, outcome).Inc()
}
