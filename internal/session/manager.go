package session

import (
	"context"
	"sync"
	"time"

	"github.com/ArsemaYemiru/ak-storefront/internal/persist"
	"github.com/ArsemaYemiru/ak-storefront/internal/store"
)

const (
	// DefaultIdleTTL is how long a session's stores stay resident after the
	// last request touched them.
	DefaultIdleTTL = 30 * time.Minute

	// CleanupInterval is how often the background janitor runs.
	CleanupInterval = time.Minute
)

// Stores is the per-session pair of state containers handed to handlers.
type Stores struct {
	Cart *store.CartStore
	Auth *store.AuthStore
}

type entry struct {
	stores   *Stores
	lastSeen time.Time
}

// Manager owns the resident store pairs, one per browsing session. Eviction
// only frees memory: the durable slots keep the state and the next request
// for that session restores it.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ps       persist.Store
	idleTTL  time.Duration

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewManager(ps persist.Store) *Manager {
	m := &Manager{
		sessions:    make(map[string]*entry),
		ps:          ps,
		idleTTL:     DefaultIdleTTL,
		stopCleanup: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupLoop()

	return m
}

// Get returns the store pair for sessionID, materializing it from the
// persisted slots on first touch. Materialization performs blocking loads,
// so it runs outside the lock; a concurrent first touch for the same
// session keeps the pair that lands in the map first.
func (m *Manager) Get(ctx context.Context, sessionID string) *Stores {
	m.mu.Lock()
	if e, ok := m.sessions[sessionID]; ok {
		e.lastSeen = time.Now()
		stores := e.stores
		m.mu.Unlock()
		return stores
	}
	m.mu.Unlock()

	stores := &Stores{
		Cart: store.NewCartStore(ctx, m.ps, persist.CartKey(sessionID)),
		Auth: store.NewAuthStore(ctx, m.ps, persist.AuthKey(sessionID)),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.sessions[sessionID]; ok {
		e.lastSeen = time.Now()
		return e.stores
	}
	m.sessions[sessionID] = &entry{stores: stores, lastSeen: time.Now()}

	return stores
}

// Len reports how many sessions are resident.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *Manager) cleanupLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.evictIdle()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *Manager) evictIdle() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.idleTTL)
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

// Close stops the janitor and waits for it to finish.
func (m *Manager) Close() error {
	close(m.stopCleanup)
	m.wg.Wait()
	return nil
}
