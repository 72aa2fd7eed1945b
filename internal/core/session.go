package core

// session.go ties together the state of one browser page: its record store,
// form, pager, image handles and navigation state.
//
// Sessions live in memory only. The SessionManager expires idle sessions on
// a ticker; closing a session cancels its pending country fetch, marks its
// form closed and releases every image handle it issued.

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for an unknown or expired session id.
var ErrSessionNotFound = errors.New("session not found")

// DefaultSessionTTL is how long an idle session is kept.
const DefaultSessionTTL = 30 * time.Minute

// Session is the state behind one page.
type Session struct {
	ID     string
	Store  *RecordStore
	Form   *Form
	Images *ImageRegistry
	Nav    *Navigation

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	pager    Pager
	lastSeen time.Time
}

func newSession(now time.Time) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	store := NewRecordStore()
	images := NewImageRegistry()
	return &Session{
		ID:       uuid.New().String(),
		Store:    store,
		Form:     NewForm(store, images),
		Images:   images,
		Nav:      NewNavigation(),
		ctx:      ctx,
		cancel:   cancel,
		pager:    NewPager(),
		lastSeen: now,
	}
}

// Context is cancelled when the session closes.
func (s *Session) Context() context.Context {
	return s.ctx
}

// CurrentPage returns the visible table page.
func (s *Session) CurrentPage() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return PageOf(s.Store, &s.pager)
}

// NextPage advances the table. No-op on the last page.
func (s *Session) NextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.Next(s.Store.Len())
}

// PrevPage goes back one table page. No-op on page 1.
func (s *Session) PrevPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.Prev()
}

// SetPage jumps to page, clamped to the available pages.
func (s *Session) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pager.Set(page, s.Store.Len())
}

// RecordAtRow resolves a visible row of the current page to its record.
func (s *Session) RecordAtRow(row int) (Record, error) {
	s.mu.Lock()
	index := s.pager.GlobalIndex(row)
	s.mu.Unlock()
	return s.Store.Get(index)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) close() {
	s.cancel()
	s.Form.Close()
	s.Images.ReleaseAll()
	s.Nav.Clear()
}

// SessionManager creates, looks up and expires sessions.
type SessionManager struct {
	provider CountryProvider
	ttl      time.Duration
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates a manager whose sessions load countries from
// provider on creation. provider may be nil.
func NewSessionManager(provider CountryProvider, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{
		provider: provider,
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Open creates a session and starts its country fetch.
func (m *SessionManager) Open() *Session {
	s := newSession(m.now())

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	s.Form.LoadCountries(s.ctx, m.provider)
	slog.Debug("session opened", "session_id", s.ID)
	return s
}

// Get returns the session with id and marks it active.
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch(m.now())
	return s, nil
}

// Close ends the session with id. Reports whether it existed.
func (m *SessionManager) Close(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.close()
		slog.Debug("session closed", "session_id", id)
	}
	return ok
}

// Sweep closes every session idle for longer than the TTL and returns how
// many were closed.
func (m *SessionManager) Sweep() int {
	cutoff := m.now().Add(-m.ttl)

	var expired []*Session
	m.mu.Lock()
	for id, s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	return len(expired)
}

// CloseAll ends every session.
func (m *SessionManager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		s.close()
	}
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// StartSweeper expires idle sessions every interval until ctx is cancelled.
func (m *SessionManager) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	slog.Info("session sweeper started", "interval", interval, "ttl", m.ttl)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				slog.Info("expired idle sessions", "count", n, "remaining", m.Len())
			}
		}
	}
}
