package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/ArsemaYemiru/ak-storefront/internal/persist"
	"github.com/ArsemaYemiru/ak-storefront/internal/session"
	"github.com/ArsemaYemiru/ak-storefront/internal/store"
	"github.com/go-chi/chi/v5"
)

type memPersist struct {
	m     sync.RWMutex
	slots map[string][]byte
}

func (p *memPersist) Load(_ context.Context, key string) ([]byte, error) {
	p.m.RLock()
	defer p.m.RUnlock()
	data, ok := p.slots[key]
	if !ok {
		return nil, persist.ErrNotFound
	}
	return data, nil
}

func (p *memPersist) Save(_ context.Context, key string, data []byte) error {
	p.m.Lock()
	defer p.m.Unlock()
	p.slots[key] = data
	return nil
}

func (p *memPersist) Delete(_ context.Context, key string) error {
	p.m.Lock()
	defer p.m.Unlock()
	delete(p.slots, key)
	return nil
}

func newTestStores() *session.Stores {
	ps := &memPersist{slots: map[string][]byte{}}
	ctx := context.Background()
	return &session.Stores{
		Cart: store.NewCartStore(ctx, ps, persist.CartKey("test")),
		Auth: store.NewAuthStore(ctx, ps, persist.AuthKey("test")),
	}
}

// withStores injects a fixed store pair the way SessionMiddleware does.
func withStores(stores *session.Stores) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), storesKey, stores)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newCartRouter(stores *session.Stores) *chi.Mux {
	h := NewCartHandler()
	r := chi.NewRouter()
	r.Use(withStores(stores))
	r.Get("/cart", h.GetCart)
	r.Get("/cart/summary", h.GetSummary)
	r.Post("/cart/items", h.AddItem)
	r.Put("/cart/items/{product_id}", h.UpdateQuantity)
	r.Delete("/cart/items/{product_id}", h.RemoveItem)
	r.Delete("/cart", h.ClearCart)
	return r
}
