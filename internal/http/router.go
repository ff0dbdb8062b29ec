package http

import (
	"net/http"
	"time"

	"github.com/ArsemaYemiru/ak-storefront/internal/checkout"
	"github.com/ArsemaYemiru/ak-storefront/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// CMSClient is everything the handlers collectively need from the CMS.
type CMSClient interface {
	AuthClient
	CatalogClient
	OrdersClient
}

// NewRouter wires the storefront API.
func NewRouter(
	manager *session.Manager,
	client CMSClient,
	checkoutService *checkout.Service,
	requestTimeout time.Duration) *chi.Mux {

	cartHandler := NewCartHandler()
	authHandler := NewAuthHandler(client)
	catalogHandler := NewCatalogHandler(client)
	checkoutHandler := NewCheckoutHandler(checkoutService)
	ordersHandler := NewOrdersHandler(client)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(SessionMiddleware(manager))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Get("/summary", cartHandler.GetSummary)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.List)
			r.Get("/{id}", catalogHandler.Get)
		})
		r.Get("/categories", catalogHandler.Categories)
		r.Get("/new-arrivals", catalogHandler.NewArrivals)

		r.Post("/checkout", checkoutHandler.Submit)
		r.Get("/orders", ordersHandler.List)
	})

	return r
}
