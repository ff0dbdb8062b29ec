package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/ArsemaYemiru/ak-storefront/internal/domain"
	"github.com/ArsemaYemiru/ak-storefront/internal/persist"
)

// AuthStore holds the session identity and bearer token. It performs no
// validation of either; the CMS adjudicates token validity on every
// authenticated request.
type AuthStore struct {
	mu    sync.RWMutex
	state domain.Session
	ps    persist.Store
	key   string
}

func NewAuthStore(ctx context.Context, ps persist.Store, key string) *AuthStore {
	return &AuthStore{
		state: RestoreSession(ctx, ps, key),
		ps:    ps,
		key:   key,
	}
}

// SetAuth replaces user and token together.
func (s *AuthStore) SetAuth(ctx context.Context, user *domain.User, token string) {
	s.mu.Lock()
	s.state = domain.Session{User: user, Token: token}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	saveState(ctx, s.ps, s.key, snap)
}

// Logout clears user and token together and drops the durable slot; there
// is nothing worth keeping for a signed-out session.
func (s *AuthStore) Logout(ctx context.Context) {
	s.mu.Lock()
	s.state = domain.Session{}
	s.mu.Unlock()

	if err := s.ps.Delete(ctx, s.key); err != nil {
		log.Printf("delete session state failed: %v", err) // best effort, memory already cleared
	}
}

func (s *AuthStore) Snapshot() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *AuthStore) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authenticated()
}

func (s *AuthStore) snapshotLocked() domain.Session {
	snap := s.state
	if snap.User != nil {
		user := *snap.User
		snap.User = &user
	}
	return snap
}

// RestoreSession loads the persisted session for key. Anything short of a
// well-formed user+token pair degrades to the signed-out default.
func RestoreSession(ctx context.Context, ps persist.Store, key string) domain.Session {
	data, err := ps.Load(ctx, key)
	if errors.Is(err, persist.ErrNotFound) {
		return domain.Session{}
	}
	if err != nil {
		log.Printf("session restore failed, starting signed out: %v", err)
		return domain.Session{}
	}

	var session domain.Session
	if err := json.Unmarshal(data, &session); err != nil {
		log.Printf("discarding unreadable session state: %v", err)
		return domain.Session{}
	}

	// User and token travel together; a half-present pair is stale data.
	if !session.Authenticated() {
		return domain.Session{}
	}

	return session
}
