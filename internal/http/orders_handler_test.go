package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ArsemaYemiru/ak-storefront/internal/domain"
	"github.com/ArsemaYemiru/ak-storefront/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockOrdersHistory struct {
	orders    []domain.Order
	lastToken string
	err       error
}

func (m *mockOrdersHistory) Orders(_ context.Context, token string) ([]domain.Order, error) {
	m.lastToken = token
	if m.err != nil {
		return nil, m.err
	}
	return m.orders, nil
}

func newOrdersRouter(stores *session.Stores, client OrdersClient) *chi.Mux {
	h := NewOrdersHandler(client)
	r := chi.NewRouter()
	r.Use(withStores(stores))
	r.Get("/orders", h.List)
	return r
}

func TestOrders_RequiresAuth(t *testing.T) {
	router := newOrdersRouter(newTestStores(), &mockOrdersHistory{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/orders", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestOrders_ListsHistoryWithSessionToken(t *testing.T) {
	stores := newTestStores()
	stores.Auth.SetAuth(context.Background(), &domain.User{ID: 7}, "jwt-token")

	client := &mockOrdersHistory{orders: []domain.Order{
		{ID: 42, Total: 350, Status: domain.OrderStatusPending},
	}}
	router := newOrdersRouter(stores, client)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/orders", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "jwt-token", client.lastToken)

	var response OrdersResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&response))
	require.Len(t, response.Orders, 1)
	assert.Equal(t, int64(42), response.Orders[0].ID)
}

func TestOrders_EmptyHistoryIsAnArray(t *testing.T) {
	stores := newTestStores()
	stores.Auth.SetAuth(context.Background(), &domain.User{ID: 7}, "jwt-token")
	router := newOrdersRouter(stores, &mockOrdersHistory{})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/orders", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"orders":[]`)
}
