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

// CartStore is the authoritative cart for one browsing session. Every
// mutation goes through a pure transition function, then the new state is
// mirrored to the durable slot and announced to subscribers. Persistence is
// best-effort: a failed write never rolls back the in-memory state.
type CartStore struct {
	mu      sync.RWMutex
	state   domain.Cart
	ps      persist.Store
	key     string
	subs    map[int]func(domain.Cart)
	nextSub int
}

// NewCartStore seeds the store from the persisted slot. A missing slot means
// a fresh cart; an unreadable one is discarded rather than surfaced.
func NewCartStore(ctx context.Context, ps persist.Store, key string) *CartStore {
	return &CartStore{
		state: RestoreCart(ctx, ps, key),
		ps:    ps,
		key:   key,
		subs:  make(map[int]func(domain.Cart)),
	}
}

// AddItem merges the item into the cart: an existing line with the same ID
// gains the added quantity, anything else is appended in insertion order.
// After the call exactly one line exists for that ID.
func (s *CartStore) AddItem(ctx context.Context, item domain.CartItem) {
	s.apply(ctx, func(c domain.Cart) domain.Cart {
		return addItem(c, item)
	})
}

// RemoveItem deletes the line with that ID. Removing an absent ID is a
// no-op, not an error.
func (s *CartStore) RemoveItem(ctx context.Context, id string) {
	s.apply(ctx, func(c domain.Cart) domain.Cart {
		return removeItem(c, id)
	})
}

// UpdateQuantity sets the line's quantity to max(1, quantity). Decrementing
// from 1 clamps at 1 instead of removing the item. Unknown IDs are a no-op.
func (s *CartStore) UpdateQuantity(ctx context.Context, id string, quantity int) {
	s.apply(ctx, func(c domain.Cart) domain.Cart {
		return updateQuantity(c, id, quantity)
	})
}

// Clear empties the cart. The checkout flow calls this only after the CMS
// confirmed the order.
func (s *CartStore) Clear(ctx context.Context) {
	s.apply(ctx, func(domain.Cart) domain.Cart {
		return domain.Cart{}
	})
}

// Total returns the current sum of price * quantity. Pure read.
func (s *CartStore) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Total()
}

// Count returns the badge count, the sum of all quantities.
func (s *CartStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Count()
}

// Snapshot returns a copy of the current state. Callers never see the
// internal slice.
func (s *CartStore) Snapshot() domain.Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Subscribe registers fn to receive a snapshot after every mutation. The
// returned func cancels the subscription.
func (s *CartStore) Subscribe(fn func(domain.Cart)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *CartStore) apply(ctx context.Context, fn func(domain.Cart) domain.Cart) {
	s.mu.Lock()
	s.state = fn(s.state)
	snap := s.state.Clone()
	subs := make([]func(domain.Cart), 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	saveState(ctx, s.ps, s.key, snap)
	for _, sub := range subs {
		sub(snap)
	}
}

// RestoreCart loads the persisted cart for key. Absent, unreadable or
// invariant-breaking state degrades to an empty cart; this never fails.
func RestoreCart(ctx context.Context, ps persist.Store, key string) domain.Cart {
	data, err := ps.Load(ctx, key)
	if errors.Is(err, persist.ErrNotFound) {
		return domain.Cart{}
	}
	if err != nil {
		log.Printf("cart restore failed, starting empty: %v", err)
		return domain.Cart{}
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		log.Printf("discarding unreadable cart state: %v", err)
		return domain.Cart{}
	}

	return sanitizeCart(cart)
}

func saveState(ctx context.Context, ps persist.Store, key string, state any) {
	data, err := json.Marshal(state)
	if err != nil {
		log.Printf("marshal state failed: %v", err)
		return
	}
	if err := ps.Save(ctx, key, data); err != nil {
		log.Printf("persist state failed: %v", err) // best effort, memory already updated
	}
}

// Transition functions are pure: current cart in, next cart out. All the
// business rules live here, with no lock or storage in sight.

func addItem(c domain.Cart, item domain.CartItem) domain.Cart {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	next := c.Clone()
	for i := range next.Items {
		if next.Items[i].ID == item.ID {
			next.Items[i].Quantity += item.Quantity
			return next
		}
	}

	next.Items = append(next.Items, item)
	return next
}

func removeItem(c domain.Cart, id string) domain.Cart {
	next := domain.Cart{}
	for _, item := range c.Items {
		if item.ID != id {
			next.Items = append(next.Items, item)
		}
	}
	return next
}

func updateQuantity(c domain.Cart, id string, quantity int) domain.Cart {
	next := c.Clone()
	for i := range next.Items {
		if next.Items[i].ID == id {
			next.Items[i].Quantity = max(1, quantity)
			break
		}
	}
	return next
}

// sanitizeCart rebuilds restored state through addItem so stale data from
// older app versions cannot smuggle in duplicate IDs or zero quantities.
func sanitizeCart(c domain.Cart) domain.Cart {
	var out domain.Cart
	for _, item := range c.Items {
		if item.ID == "" {
			continue
		}
		out = addItem(out, item)
	}
	return out
}
