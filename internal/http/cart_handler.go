package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/ArsemaYemiru/ak-storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct{}

func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

type AddItemRequestDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    any     `json:"price"`
	Image    *string `json:"image"`
	Quantity int     `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

type CartSummaryResponse struct {
	Count int     `json:"count"`
	Total float64 `json:"total"`
}

func cartResponse(cart domain.Cart) CartResponse {
	items := cart.Items
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponse{
		Items: items,
		Total: cart.Total(),
		Count: cart.Count(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	stores := storesFromContext(r.Context())
	if stores == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session not initialized")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(stores.Cart.Snapshot()))
}

// GetSummary serves the header badge: item count and total only.
func (h *CartHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	stores := storesFromContext(r.Context())
	if stores == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session not initialized")
		return
	}

	respondJSON(w, http.StatusOK, CartSummaryResponse{
		Count: stores.Cart.Count(),
		Total: stores.Cart.Total(),
	})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	stores := storesFromContext(r.Context())
	if stores == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session not initialized")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "id must not be empty")
		return
	}
	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	// The catalog can hand us prices as strings; invalid ones coerce to 0
	// but are worth flagging.
	price, err := domain.ParsePrice(req.Price)
	if err != nil {
		log.Printf("add to cart for product %s: %v, coerced to 0", req.ID, err)
	}

	stores.Cart.AddItem(r.Context(), domain.CartItem{
		ID:       req.ID,
		Name:     req.Name,
		Price:    price,
		Image:    req.Image,
		Quantity: req.Quantity,
	})

	respondJSON(w, http.StatusCreated, cartResponse(stores.Cart.Snapshot()))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	stores := storesFromContext(r.Context())
	if stores == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session not initialized")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	// Quantity below 1 clamps at 1 inside the store rather than erroring;
	// the cart page's decrement button relies on that.
	stores.Cart.UpdateQuantity(r.Context(), productID, req.Quantity)

	respondJSON(w, http.StatusOK, cartResponse(stores.Cart.Snapshot()))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	stores := storesFromContext(r.Context())
	if stores == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session not initialized")
		return
	}

	productID := chi.URLParam(r, "product_id")
	if productID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must not be empty")
		return
	}

	stores.Cart.RemoveItem(r.Context(), productID)

	respondJSON(w, http.StatusOK, cartResponse(stores.Cart.Snapshot()))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	stores := storesFromContext(r.Context())
	if stores == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session not initialized")
		return
	}

	stores.Cart.Clear(r.Context())

	respondJSON(w, http.StatusOK, cartResponse(stores.Cart.Snapshot()))
}
