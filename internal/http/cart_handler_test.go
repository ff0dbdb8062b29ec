package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func postItem(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("POST", "/cart/items", bytes.NewReader([]byte(body)))
	router.ServeHTTP(recorder, request)
	return recorder
}

func TestAddItem_Success(t *testing.T) {
	router := newCartRouter(newTestStores())

	recorder := postItem(t, router, `{"id":"1","name":"Gold Ring","price":24999,"quantity":2}`)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response CartResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response.Items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(response.Items))
	}
	if response.Total != 49998 {
		t.Errorf("Expected total 49998, got %f", response.Total)
	}
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	router := newCartRouter(newTestStores())

	postItem(t, router, `{"id":"1","name":"Gold Ring","price":100,"quantity":2}`)
	recorder := postItem(t, router, `{"id":"1","name":"Gold Ring","price":100,"quantity":3}`)

	var response CartResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(response.Items) != 1 {
		t.Fatalf("Expected 1 merged item, got %d", len(response.Items))
	}
	if response.Items[0].Quantity != 5 {
		t.Errorf("Expected quantity 5, got %d", response.Items[0].Quantity)
	}
}

func TestAddItem_StringPriceIsCoerced(t *testing.T) {
	router := newCartRouter(newTestStores())

	recorder := postItem(t, router, `{"id":"1","name":"Gold Ring","price":"199.99","quantity":1}`)

	var response CartResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if response.Total != 199.99 {
		t.Errorf("Expected total 199.99, got %f", response.Total)
	}
}

func TestAddItem_InvalidPriceCoercesToZero(t *testing.T) {
	router := newCartRouter(newTestStores())

	recorder := postItem(t, router, `{"id":"1","name":"Gold Ring","price":"free","quantity":1}`)

	if recorder.Code != http.StatusCreated {
		t.Errorf("Expected status code %d, got %d", http.StatusCreated, recorder.Code)
	}

	var response CartResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Total != 0 {
		t.Errorf("Expected total 0, got %f", response.Total)
	}
}

func TestAddItem_MissingID(t *testing.T) {
	router := newCartRouter(newTestStores())

	recorder := postItem(t, router, `{"name":"Gold Ring","price":100,"quantity":1}`)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "invalid_product_id" {
		t.Errorf("Expected error code 'invalid_product_id', got '%s'", response.Code)
	}
}

func TestAddItem_ZeroQuantityRejected(t *testing.T) {
	router := newCartRouter(newTestStores())

	recorder := postItem(t, router, `{"id":"1","name":"Gold Ring","price":100,"quantity":0}`)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "invalid_quantity" {
		t.Errorf("Expected error code 'invalid_quantity', got '%s'", response.Code)
	}
}

func TestAddItem_InvalidBody(t *testing.T) {
	router := newCartRouter(newTestStores())

	recorder := postItem(t, router, `{not json`)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}
}

func TestUpdateQuantity_ClampsAtOne(t *testing.T) {
	router := newCartRouter(newTestStores())
	postItem(t, router, `{"id":"1","name":"Gold Ring","price":100,"quantity":3}`)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("PUT", "/cart/items/1", bytes.NewReader([]byte(`{"quantity":0}`)))
	router.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response CartResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 1 {
		t.Fatalf("Clamping must not remove the item, got %d items", len(response.Items))
	}
	if response.Items[0].Quantity != 1 {
		t.Errorf("Expected quantity clamped to 1, got %d", response.Items[0].Quantity)
	}
}

func TestRemoveItem_Idempotent(t *testing.T) {
	router := newCartRouter(newTestStores())
	postItem(t, router, `{"id":"1","name":"Gold Ring","price":100,"quantity":1}`)

	for i := 0; i < 2; i++ {
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest("DELETE", "/cart/items/1", nil)
		router.ServeHTTP(recorder, request)

		if recorder.Code != http.StatusOK {
			t.Errorf("Call %d: expected status code %d, got %d", i+1, http.StatusOK, recorder.Code)
		}
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/cart", nil))

	var response CartResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 0 {
		t.Errorf("Expected empty cart, got %d items", len(response.Items))
	}
}

func TestClearCart(t *testing.T) {
	router := newCartRouter(newTestStores())
	postItem(t, router, `{"id":"1","price":100,"quantity":1}`)
	postItem(t, router, `{"id":"2","price":50,"quantity":2}`)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("DELETE", "/cart", nil))

	var response CartResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response.Items) != 0 || response.Total != 0 {
		t.Errorf("Expected empty cart with zero total, got %d items / %f", len(response.Items), response.Total)
	}
}

func TestGetSummary(t *testing.T) {
	router := newCartRouter(newTestStores())
	postItem(t, router, `{"id":"1","price":100,"quantity":2}`)
	postItem(t, router, `{"id":"2","price":50,"quantity":3}`)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/cart/summary", nil))

	var response CartSummaryResponse
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Count != 5 {
		t.Errorf("Expected badge count 5, got %d", response.Count)
	}
	if response.Total != 350 {
		t.Errorf("Expected total 350, got %f", response.Total)
	}
}

func TestGetCart_EmptyCartHasItemsArray(t *testing.T) {
	router := newCartRouter(newTestStores())

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/cart", nil))

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}
	// items must serialize as [] rather than null for the frontend
	if body := recorder.Body.String(); !bytes.Contains([]byte(body), []byte(`"items":[]`)) {
		t.Errorf("Expected empty items array in body, got %s", body)
	}
}
