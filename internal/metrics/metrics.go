// Package metrics holds the Prometheus collectors of the budget engine.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"mesa-budget/internal/core/domain"
)

const namespace = "mesa_budget"

// Metrics groups every collector. A nil *Metrics is valid and records
// nothing, so callers never need to guard their calls.
type Metrics struct {
	spendIngested *prometheus.CounterVec
	spendAmount   prometheus.Counter
	transitions   *prometheus.CounterVec
	sweepRuns     *prometheus.CounterVec
	sweepFailures *prometheus.CounterVec
	sweepDuration *prometheus.HistogramVec
	consumed      *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		spendIngested: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spend_events_total",
			Help:      "Spend events seen by the ingestion pipeline, by result.",
		}, []string{"result"}),
		spendAmount: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "spend_amount_total",
			Help:      "Sum of accepted spend amounts in minor units.",
		}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_transitions_total",
			Help:      "Status changes applied by the engine.",
		}, []string{"entity", "to", "reason"}),
		sweepRuns: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_runs_total",
			Help:      "Completed runs of periodic jobs.",
		}, []string{"job"}),
		sweepFailures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_entity_failures_total",
			Help:      "Entities a periodic job failed to process.",
		}, []string{"job"}),
		sweepDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Wall time of periodic job runs.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),
		consumed: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consumer_messages_total",
			Help:      "Spend messages handled by the Kafka consumer, by outcome.",
		}, []string{"outcome"}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests processed.",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// SpendAccepted counts an ingested spend.
func (m *Metrics) SpendAccepted(amount int64) {
	if m == nil {
		return
	}
	m.spendIngested.WithLabelValues("accepted").Inc()
	m.spendAmount.Add(float64(amount))
}

// SpendRejected counts a spend refused by validation.
func (m *Metrics) SpendRejected() {
	if m == nil {
		return
	}
	m.spendIngested.WithLabelValues("rejected").Inc()
}

// SpendDuplicate counts a redelivered spend that was already in the ledger.
func (m *Metrics) SpendDuplicate() {
	if m == nil {
		return
	}
	m.spendIngested.WithLabelValues("duplicate").Inc()
}

// SpendFailed counts a spend that failed for store reasons.
func (m *Metrics) SpendFailed() {
	if m == nil {
		return
	}
	m.spendIngested.WithLabelValues("failed").Inc()
}

// Transition counts an applied state change.
func (m *Metrics) Transition(t domain.Transition) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(string(t.Entity), string(t.To.Status), string(t.To.Reason)).Inc()
}

// Sweep records a finished periodic job.
func (m *Metrics) Sweep(job string, failed int, took time.Duration) {
	if m == nil {
		return
	}
	m.sweepRuns.WithLabelValues(job).Inc()
	m.sweepFailures.WithLabelValues(job).Add(float64(failed))
	m.sweepDuration.WithLabelValues(job).Observe(took.Seconds())
}

// Consumed counts a Kafka message outcome: ingested, duplicate, skipped or
// retried.
func (m *Metrics) Consumed(outcome string) {
	if m == nil {
		return
	}
	m.consumed.WithLabelValues(outcome).Inc()
}

// HTTP returns a chi middleware recording request counts and latencies.
// Labels use the matched route pattern to keep cardinality low.
func (m *Metrics) HTTP(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		labels := prometheus.Labels{
			"method": r.Method,
			"route":  route,
			"status": strconv.Itoa(status),
		}
		m.httpRequests.With(labels).Inc()
		m.httpDuration.With(labels).Observe(time.Since(start).Seconds())
	})
}
