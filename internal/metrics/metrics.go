// Package metrics holds the Prometheus metrics for the profile service.
package metrics

import (
	"context"

	"github.com/JonMunkholm/profiles/internal/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	RecordsCommitted   *prometheus.CounterVec
	RecordsDeleted     prometheus.Counter
	SubmitsRejected    prometheus.Counter
	ValidationFailures *prometheus.CounterVec
	CountryFetches     *prometheus.CounterVec

	factory promauto.Factory
}

// New creates the metrics and registers them with reg.
// A nil reg creates unregistered metrics.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RecordsCommitted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "profiles_records_committed_total",
			Help: "Records committed by form submits, by operation (create, update)",
		}, []string{"op"}),
		RecordsDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "profiles_records_deleted_total",
			Help: "Records deleted from the table",
		}),
		SubmitsRejected: f.NewCounter(prometheus.CounterOpts{
			Name: "profiles_submits_rejected_total",
			Help: "Form submits blocked by validation errors",
		}),
		ValidationFailures: f.NewCounterVec(prometheus.CounterOpts{
			Name: "profiles_validation_failures_total",
			Help: "Field validation failures on submit, by field",
		}, []string{"field"}),
		CountryFetches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "profiles_country_fetches_total",
			Help: "Country list fetches, by outcome (ok, error)",
		}, []string{"outcome"}),
		factory: f,
	}
}

// ObserveSubmit records the outcome of a form submit.
func (m *Metrics) ObserveSubmit(res core.SubmitResult) {
	if !res.Valid {
		m.SubmitsRejected.Inc()
		for _, field := range res.Errors.Failed() {
			m.ValidationFailures.WithLabelValues(field).Inc()
		}
		return
	}
	op := "create"
	if res.Updated {
		op = "update"
	}
	m.RecordsCommitted.WithLabelValues(op).Inc()
}

// IncrementRecordsDeleted increments the deleted counter by 1.
func (m *Metrics) IncrementRecordsDeleted() {
	m.RecordsDeleted.Inc()
}

// TrackSessions exposes fn as the live-session gauge.
func (m *Metrics) TrackSessions(fn func() int) {
	m.factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "profiles_sessions_active",
		Help: "Sessions currently held in memory",
	}, func() float64 { return float64(fn()) })
}

// InstrumentProvider wraps p so every fetch is counted by outcome.
func (m *Metrics) InstrumentProvider(p core.CountryProvider) core.CountryProvider {
	return &instrumentedProvider{next: p, fetches: m.CountryFetches}
}

type instrumentedProvider struct {
	next    core.CountryProvider
	fetches *prometheus.CounterVec
}

func (p *instrumentedProvider) FetchCountries(ctx context.Context) ([]string, error) {
	names, err := p.next.FetchCountries(ctx)
	if err != nil {
		p.fetches.WithLabelValues("error").Inc()
		return nil, err
	}
	p.fetches.WithLabelValues("ok").Inc()
	return names, nil
}
