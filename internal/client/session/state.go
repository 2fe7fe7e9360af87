// Package session holds the desk client's authentication state: the
// in-memory access token, the identity it belongs to, and the persisted
// identity hint used to decide whether a silent refresh is worth trying at
// startup.
//
// A State is owned by the composition root and handed to the request
// pipeline and the auth service; nothing here is a package-level singleton.
package session

import (
	"context"
	"sync"
)

// Snapshot is a consistent copy of the State fields.
type Snapshot struct {
	Token         string
	Username      string
	Authenticated bool
}

// State is safe for concurrent use. Invariant: an empty token always means
// Authenticated is false.
type State struct {
	mu            sync.RWMutex
	token         string
	username      string
	authenticated bool

	hints HintStore
}

// NewState returns an empty State. hints may be nil, in which case nothing
// is persisted.
func NewState(hints HintStore) *State {
	if hints == nil {
		hints = NopHints{}
	}
	return &State{hints: hints}
}

// Token returns the current access token and whether one is present.
func (s *State) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

// SetToken replaces the access token and keeps the identity. Setting an
// empty token drops the authenticated flag.
func (s *State) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.authenticated = token != ""
}

// Install sets token and identity together and persists username as the
// identity hint. The in-memory state is updated even if persisting fails;
// the persistence error is returned.
func (s *State) Install(ctx context.Context, token, username string) error {
	s.mu.Lock()
	s.token = token
	s.username = username
	s.authenticated = token != ""
	s.mu.Unlock()

	return s.hints.Save(ctx, username)
}

// Clear removes the token, the identity and the persisted hint.
func (s *State) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.username = ""
	s.authenticated = false
	s.mu.Unlock()

	return s.hints.Delete(ctx)
}

func (s *State) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *State) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Token: s.token, Username: s.username, Authenticated: s.authenticated}
}

// Hints exposes the underlying hint store.
func (s *State) Hints() HintStore {
	return s.hints
}
