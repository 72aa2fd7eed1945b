package core

import (
	"errors"
	"testing"
	"time"
)

func TestSessionManager_OpenGetClose(t *testing.T) {
	m := NewSessionManager(&stubProvider{names: []string{"Nepal"}}, time.Minute)

	s := m.Open()
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}

	got, err := m.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get() = %v, %v", got, err)
	}

	if !m.Close(s.ID) {
		t.Error("Close reported missing session")
	}
	if _, err := m.Get(s.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Get after Close err = %v, want ErrSessionNotFound", err)
	}
	if s.Context().Err() == nil {
		t.Error("session context not cancelled on close")
	}
	if !s.Form.Closed() {
		t.Error("form not closed with session")
	}
}

func TestSessionManager_SweepExpiresIdleSessions(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewSessionManager(nil, 10*time.Minute)
	m.now = func() time.Time { return now }

	idle := m.Open()
	active := m.Open()
	img := NewImage("a.png", []byte("\x89PNG\r\n\x1a\n"))
	idle.Images.Acquire(img)

	now = now.Add(8 * time.Minute)
	if _, err := m.Get(active.ID); err != nil {
		t.Fatal(err)
	}

	now = now.Add(5 * time.Minute)
	if n := m.Sweep(); n != 1 {
		t.Fatalf("Sweep() = %d, want 1", n)
	}
	if _, err := m.Get(idle.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("idle session survived sweep")
	}
	if _, err := m.Get(active.ID); err != nil {
		t.Errorf("active session swept: %v", err)
	}
	if idle.Images.Len() != 0 {
		t.Errorf("image handles not released on expiry")
	}
}

func TestSessionManager_CloseAll(t *testing.T) {
	m := NewSessionManager(nil, time.Minute)
	a, b := m.Open(), m.Open()

	m.CloseAll()

	if m.Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Len())
	}
	if a.Context().Err() == nil || b.Context().Err() == nil {
		t.Error("sessions not cancelled")
	}
}

func TestSession_CountryFetchCancelledOnClose(t *testing.T) {
	p := &stubProvider{names: []string{"Nepal"}, wait: make(chan struct{})}
	m := NewSessionManager(p, time.Minute)
	s := m.Open()

	m.Close(s.ID)
	close(p.wait)

	// Either the fetch saw the cancelled context or the closed form; in both
	// cases nothing is applied.
	time.Sleep(20 * time.Millisecond)
	if len(s.Form.Countries()) != 0 {
		t.Errorf("closed session received countries")
	}
}

func TestSession_Paging(t *testing.T) {
	m := NewSessionManager(nil, time.Minute)
	s := m.Open()
	for i := 0; i < 12; i++ {
		s.Store.Append(namedRecord("x"))
	}

	s.NextPage()
	s.NextPage()
	if s.NextPage() {
		t.Error("NextPage past the end should be a no-op")
	}
	page := s.CurrentPage()
	if page.Number != 3 || len(page.Records) != 2 {
		t.Errorf("page %d with %d rows, want 3 with 2", page.Number, len(page.Records))
	}

	s.SetPage(2)
	rec, err := s.RecordAtRow(0)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := s.Store.Get(5)
	if rec.ID != want.ID {
		t.Errorf("RecordAtRow(0) on page 2 = index %d, want 5", s.Store.IndexOf(rec.ID))
	}
}

func TestNavigation_TakeOnce(t *testing.T) {
	n := NewNavigation()
	records := []Record{namedRecord("a"), namedRecord("b")}

	token := n.Stash(records)
	records[0].Name = "mutated"

	got, err := n.Take(token)
	if err != nil {
		t.Fatalf("Take error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "b" {
		t.Errorf("Take() = %+v, want snapshot in order", got)
	}

	if _, err := n.Take(token); !errors.Is(err, ErrNoNavigationState) {
		t.Errorf("second Take err = %v, want ErrNoNavigationState", err)
	}
	if _, err := n.Take(""); !errors.Is(err, ErrNoNavigationState) {
		t.Errorf("empty token err = %v, want ErrNoNavigationState", err)
	}
}

func TestNavigation_BoundsPending(t *testing.T) {
	n := NewNavigation()
	first := n.Stash(nil)
	for i := 0; i < maxPendingNavigations; i++ {
		n.Stash(nil)
	}
	if _, err := n.Take(first); !errors.Is(err, ErrNoNavigationState) {
		t.Errorf("oldest token should have been evicted")
	}
}

func TestImage_Displayable(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), true},
		{"html named png", []byte("<html><script>alert(1)</script></html>"), false},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`), false},
		{"plain bytes", []byte{1, 2, 3}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewImage("x.png", tt.data).Displayable(); got != tt.want {
				t.Errorf("Displayable = %v, want %v", got, tt.want)
			}
		})
	}

	var none *Image
	if none.Displayable() {
		t.Error("nil image reported displayable")
	}
}

func TestImageRegistry(t *testing.T) {
	r := NewImageRegistry()
	img := NewImage("a.png", []byte("\x89PNG\r\n\x1a\n"))

	h := r.Acquire(img)
	if h == "" {
		t.Fatal("empty handle")
	}
	if again := r.Acquire(img); again != h {
		t.Errorf("re-acquire issued a new handle")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if got, ok := r.Lookup(h); !ok || got != img {
		t.Errorf("Lookup failed")
	}
	if img.ContentType != "image/png" {
		t.Errorf("ContentType = %q, want image/png", img.ContentType)
	}

	r.Release(img)
	if _, ok := r.Lookup(h); ok {
		t.Error("released handle still resolves")
	}
	if r.Acquire(nil) != "" {
		t.Error("nil image should have no handle")
	}
}
