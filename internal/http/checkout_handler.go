package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ArsemaYemiru/ak-storefront/internal/checkout"
	"github.com/ArsemaYemiru/ak-storefront/internal/domain"
)

type CheckoutHandler struct {
	service *checkout.Service
}

func NewCheckoutHandler(service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

type CheckoutRequestDTO struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	stores := storesFromContext(r.Context())
	if stores == nil {
		respondError(w, http.StatusInternalServerError, "no_session", "session not initialized")
		return
	}

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Name == "" || req.Phone == "" || req.Address == "" || req.City == "" {
		respondError(w, http.StatusBadRequest, "invalid_request", "name, phone, address and city are required")
		return
	}

	details := domain.DeliveryDetails{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
	}

	order, err := h.service.Submit(r.Context(), stores.Cart, stores.Auth.Snapshot(), details)
	if errors.Is(err, checkout.ErrEmptyCart) {
		respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		return
	}
	if errors.Is(err, checkout.ErrNotAuthenticated) {
		respondError(w, http.StatusUnauthorized, "unauthenticated", "log in to place an order")
		return
	}
	if err != nil {
		handleCMSError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}
