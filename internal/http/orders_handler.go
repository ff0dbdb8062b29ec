package http

import (
	"context"
	"net/http"

	"github.com/ArsemaYemiru/ak-storefront/internal/domain"
)

// OrdersClient is the slice of the CMS the history handler needs.
type OrdersClient interface {
	Orders(ctx context.Context, token string) ([]domain.Order, error)
}

type OrdersHandler struct {
	client OrdersClient
}

func NewOrdersHandler(client OrdersClient) *OrdersHandler {
	return &OrdersHandler{client: client}
}

type OrdersResponse struct {
	Orders []domain.Order `json:"orders"`
}

// List returns the signed-in user's order history; the CMS scopes the query
// to the bearer token's owner.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	stores := storesFromContext(r.Context())
	if stores == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session not initialized")
		return
	}

	snap := stores.Auth.Snapshot()
	if !snap.Authenticated() {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "log in to view orders")
		return
	}

	orders, err := h.client.Orders(r.Context(), snap.Token)
	if err != nil {
		handleCMSError(w, err)
		return
	}

	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, OrdersResponse{Orders: orders})
}
