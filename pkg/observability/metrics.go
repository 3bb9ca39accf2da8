package observability

import (
	"errors"
	"strings"
	"time"

	"github.com/aretw0/weave/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for weave_plans_total.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Metrics groups the planner collectors.
type Metrics struct {
	plans    *prometheus.CounterVec
	failures *prometheus.CounterVec
	cache    *prometheus.CounterVec
	segments prometheus.Histogram
	wraps    prometheus.Histogram
	duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil registerer leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		plans: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weave_plans_total",
				Help: "Total number of plan requests by outcome",
			},
			[]string{"outcome"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weave_validation_failures_total",
				Help: "Documents rejected during validation, by offending field",
			},
			[]string{"field"},
		),
		cache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "weave_plan_cache_requests_total",
				Help: "Plan cache lookups by result",
			},
			[]string{"result"},
		),
		segments: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "weave_plan_segments",
			Help:    "Number of segments per planned document",
			Buckets: prometheus.ExponentialBuckets(16, 4, 7),
		}),
		wraps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "weave_plan_wraps",
			Help:    "Number of wraps (non-chaining steps) per plan",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "weave_plan_duration_seconds",
			Help:    "Time spent building a plan",
			Buckets: prometheus.DefBuckets,
		}),
	}
	if reg != nil {
		reg.MustRegister(m.plans, m.failures, m.cache, m.segments, m.wraps, m.duration)
	}
	return m
}

// ObservePlan records a successful plan.
func (m *Metrics) ObservePlan(segments, wraps int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.plans.WithLabelValues(OutcomeOK).Inc()
	m.segments.Observe(float64(segments))
	m.wraps.Observe(float64(wraps))
	m.duration.Observe(elapsed.Seconds())
}

// ObserveFailure records a failed plan. Validation errors are also counted
// by field.
func (m *Metrics) ObserveFailure(err error) {
	if m == nil || err == nil {
		return
	}
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		m.plans.WithLabelValues(OutcomeInvalid).Inc()
		m.failures.WithLabelValues(fieldLabel(verr.Field)).Inc()
	case errors.Is(err, domain.ErrInvalidDocument), errors.Is(err, domain.ErrInvalidWidth):
		m.plans.WithLabelValues(OutcomeInvalid).Inc()
		m.failures.WithLabelValues("document").Inc()
	default:
		m.plans.WithLabelValues(OutcomeError).Inc()
	}
}

// ObserveCache records a cache lookup.
func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cache.WithLabelValues(result).Inc()
}

// fieldLabel drops element indexes so "line_segments[12]" counts as "line_segments".
func fieldLabel(field string) string {
	if i := strings.IndexByte(field, '['); i >= 0 {
		return field[:i]
	}
	return field
}
