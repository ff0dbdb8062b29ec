package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ArsemaYemiru/ak-storefront/internal/cms"
	"github.com/ArsemaYemiru/ak-storefront/internal/domain"
	"github.com/go-chi/chi/v5"
)

// CatalogClient is the slice of the CMS the catalog handlers need.
type CatalogClient interface {
	Products(ctx context.Context) ([]domain.Product, error)
	Product(ctx context.Context, id string) (*domain.Product, error)
	Categories(ctx context.Context) ([]domain.Category, error)
	NewArrivals(ctx context.Context, limit int) ([]domain.Product, error)
}

type CatalogHandler struct {
	client CatalogClient
}

func NewCatalogHandler(client CatalogClient) *CatalogHandler {
	return &CatalogHandler{client: client}
}

type ProductsResponse struct {
	Products []domain.Product `json:"products"`
}

type CategoriesResponse struct {
	Categories []domain.Category `json:"categories"`
}

// List serves the shop page: full catalog with optional ?search= and
// ?category= filters applied the way the shop page filters client-side.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.client.Products(r.Context())
	if err != nil {
		handleCMSError(w, err)
		return
	}

	search := strings.ToLower(r.URL.Query().Get("search"))
	category := r.URL.Query().Get("category")

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if category != "" && category != "All" && p.Category != category {
			continue
		}
		filtered = append(filtered, p)
	}

	respondJSON(w, http.StatusOK, ProductsResponse{Products: filtered})
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "id must not be empty")
		return
	}

	product, err := h.client.Product(r.Context(), id)
	if errors.Is(err, cms.ErrProductNotFound) {
		respondError(w, http.StatusNotFound, "not_found", "product not found")
		return
	}
	if err != nil {
		handleCMSError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.client.Categories(r.Context())
	if err != nil {
		handleCMSError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, CategoriesResponse{Categories: categories})
}

func (h *CatalogHandler) NewArrivals(w http.ResponseWriter, r *http.Request) {
	limit := 8
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	products, err := h.client.NewArrivals(r.Context(), limit)
	if err != nil {
		handleCMSError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ProductsResponse{Products: products})
}
