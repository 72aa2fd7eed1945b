package core

// navigation.go carries records from the table screen to the profile screen.
//
// The table stashes a snapshot and receives a one-shot token; the profile
// screen takes the snapshot with that token. A token works once, and a load
// without a (valid) token finds nothing, so a direct or repeated visit shows
// the empty state.

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrNoNavigationState is returned when a token carries no records.
var ErrNoNavigationState = errors.New("no navigation state")

// maxPendingNavigations bounds tokens stashed but never taken.
const maxPendingNavigations = 16

// Navigation holds pending navigation payloads for one session.
type Navigation struct {
	mu      sync.Mutex
	pending map[string][]Record
	order   []string
}

// NewNavigation creates an empty navigation state.
func NewNavigation() *Navigation {
	return &Navigation{pending: make(map[string][]Record)}
}

// Stash stores a copy of records and returns the token to take them with.
func (n *Navigation) Stash(records []Record) string {
	snapshot := make([]Record, len(records))
	copy(snapshot, records)
	token := uuid.New().String()

	n.mu.Lock()
	defer n.mu.Unlock()

	n.pending[token] = snapshot
	n.order = append(n.order, token)
	for len(n.order) > maxPendingNavigations {
		delete(n.pending, n.order[0])
		n.order = n.order[1:]
	}
	return token
}

// Take returns and forgets the records stashed under token.
func (n *Navigation) Take(token string) ([]Record, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	records, ok := n.pending[token]
	if !ok {
		return nil, ErrNoNavigationState
	}
	delete(n.pending, token)
	for i, t := range n.order {
		if t == token {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
	return records, nil
}

// Clear drops every pending payload.
func (n *Navigation) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = make(map[string][]Record)
	n.order = nil
}
