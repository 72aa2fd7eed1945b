package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/JonMunkholm/profiles/internal/core"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSubmit(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveSubmit(core.SubmitResult{Valid: true})
	m.ObserveSubmit(core.SubmitResult{Valid: true, Updated: true})
	m.ObserveSubmit(core.SubmitResult{Errors: core.ErrorMap{
		core.FieldEmail:       core.MsgInvalidEmail,
		core.FieldPhoneNumber: core.MsgPhoneTooShort,
		core.FieldName:        "",
	}})

	if got := testutil.ToFloat64(m.RecordsCommitted.WithLabelValues("create")); got != 1 {
		t.Errorf("create = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.RecordsCommitted.WithLabelValues("update")); got != 1 {
		t.Errorf("update = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.SubmitsRejected); got != 1 {
		t.Errorf("rejected = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ValidationFailures.WithLabelValues(core.FieldEmail)); got != 1 {
		t.Errorf("email failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ValidationFailures.WithLabelValues(core.FieldName)); got != 0 {
		t.Errorf("name failures = %v, want 0", got)
	}
}

type fakeProvider struct{ err error }

func (p fakeProvider) FetchCountries(context.Context) ([]string, error) {
	if p.err != nil {
		return nil, p.err
	}
	return []string{"Nepal"}, nil
}

func TestInstrumentProvider(t *testing.T) {
	m := New(prometheus.NewRegistry())

	ok := m.InstrumentProvider(fakeProvider{})
	bad := m.InstrumentProvider(fakeProvider{err: errors.New("down")})

	if _, err := ok.FetchCountries(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := bad.FetchCountries(context.Background()); err == nil {
		t.Fatal("expected error")
	}

	if got := testutil.ToFloat64(m.CountryFetches.WithLabelValues("ok")); got != 1 {
		t.Errorf("ok = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.CountryFetches.WithLabelValues("error")); got != 1 {
		t.Errorf("error = %v, want 1", got)
	}
}

func TestTrackSessions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.TrackSessions(func() int { return 3 })

	got, err := testutil.GatherAndCount(reg, "profiles_sessions_active")
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("gauge series = %d, want 1", got)
	}
}
