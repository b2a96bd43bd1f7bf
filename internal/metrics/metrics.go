// Package metrics exposes survey outcomes to Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-surveyform/pkg/questions"
	"github.com/goliatone/go-surveyform/pkg/survey"
)

const namespace = "surveyform"

// Fetch results.
const (
	ResultSuccess   = "success"
	ResultCancelled = "cancelled"
	ResultStatus    = "bad_status"
	ResultPayload   = "bad_payload"
	ResultError     = "error"
)

// Metrics owns a private registry so tests and multiple servers do not share
// global state.
type Metrics struct {
	registry *prometheus.Registry

	submissions   *prometheus.CounterVec
	rejections    prometheus.Counter
	rejectedField prometheus.Histogram
	fetches       *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

var _ survey.Recorder = (*Metrics)(nil)

// New registers the survey collectors together with the Go and process
// collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		// Labels: topic
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "form",
				Name:      "submissions_total",
				Help:      "Accepted form submissions by survey topic",
			},
			[]string{"topic"},
		),
		rejections: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "form",
				Name:      "rejections_total",
				Help:      "Submissions rejected by validation",
			},
		),
		rejectedField: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "form",
				Name:      "rejected_fields",
				Help:      "Number of failing fields per rejected submission",
				Buckets:   prometheus.LinearBuckets(1, 1, 8),
			},
		),
		// Labels: topic, result
		fetches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "questions",
				Name:      "fetches_total",
				Help:      "Question bank fetches by topic and result",
			},
			[]string{"topic", "result"},
		),
		fetchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "questions",
				Name:      "fetch_duration_seconds",
				Help:      "Duration of question bank fetches in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"topic"},
		),
	}
}

// SubmitAccepted implements survey.Recorder.
func (m *Metrics) SubmitAccepted(topic string) {
	m.submissions.WithLabelValues(topic).Inc()
}

// SubmitRejected implements survey.Recorder.
func (m *Metrics) SubmitRejected(fields int) {
	m.rejections.Inc()
	m.rejectedField.Observe(float64(fields))
}

// FetchCompleted implements survey.Recorder.
func (m *Metrics) FetchCompleted(topic string, elapsed time.Duration, err error) {
	m.fetches.WithLabelValues(topic, Result(err)).Inc()
	m.fetchDuration.WithLabelValues(topic).Observe(elapsed.Seconds())
}

// WatchSessions exports fn as the live session gauge.
func (m *Metrics) WatchSessions(fn func() int) {
	if fn == nil {
		return
	}
	promauto.With(m.registry).NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "sessions",
			Name:      "active",
			Help:      "Live survey sessions",
		},
		func() float64 { return float64(fn()) },
	)
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Result classifies a fetch error for the result label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultSuccess
	case errors.Is(err, context.Canceled):
		return ResultCancelled
	case errors.Is(err, questions.ErrUnexpectedStatus):
		return ResultStatus
	case errors.Is(err, questions.ErrInvalidPayload):
		return ResultPayload
	default:
		return ResultError
	}
}
