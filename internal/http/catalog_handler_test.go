package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ashikwekenneth/Akawo-App/internal/catalog"
	"github.com/ashikwekenneth/Akawo-App/internal/domain"
)

func newTestCatalogHandler(svc catalog.Service) *CatalogHandler {
	return NewCatalogHandler(catalog.NewEngine(svc), svc, 5*time.Second)
}

func TestCatalogSearch_NoFilters(t *testing.T) {
	handler := newTestCatalogHandler(testCatalog())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/products", nil)

	handler.Search(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response catalog.Results
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.TotalItems != 2 {
		t.Errorf("Expected 2 products, got %d", response.TotalItems)
	}
}

func TestCatalogSearch_QueryParams(t *testing.T) {
	handler := newTestCatalogHandler(testCatalog())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/products?on_sale=true&sort=price_low", nil)

	handler.Search(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response catalog.Results
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.TotalItems != 1 {
		t.Fatalf("Expected 1 on-sale product, got %d", response.TotalItems)
	}
	if response.Products[0].ID != "p2" {
		t.Errorf("Expected product 'p2', got '%s'", response.Products[0].ID)
	}
}

func TestCatalogSearch_BadPriceParam(t *testing.T) {
	handler := newTestCatalogHandler(testCatalog())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/products?min_price=abc", nil)

	handler.Search(recorder, request)

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status code %d, got %d", http.StatusBadRequest, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "invalid_request" {
		t.Errorf("Expected error code 'invalid_request', got '%s'", response.Code)
	}
}

func TestCatalogSearch_Unavailable(t *testing.T) {
	handler := newTestCatalogHandler(failingCatalog{})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/products", nil)

	handler.Search(recorder, request)

	if recorder.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status code %d, got %d", http.StatusServiceUnavailable, recorder.Code)
	}

	var response ErrorResponse
	json.NewDecoder(recorder.Body).Decode(&response)
	if response.Code != "catalog_unavailable" {
		t.Errorf("Expected error code 'catalog_unavailable', got '%s'", response.Code)
	}
}

func TestCatalogGetProduct_Success(t *testing.T) {
	handler := newTestCatalogHandler(testCatalog())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/products/p1", nil)
	request = withURLParam(request, "id", "p1")

	handler.GetProduct(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response domain.Product
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.Name != "Wireless Mouse" {
		t.Errorf("Expected 'Wireless Mouse', got '%s'", response.Name)
	}
}

func TestCatalogGetProduct_NotFound(t *testing.T) {
	handler := newTestCatalogHandler(testCatalog())

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/products/missing", nil)
	request = withURLParam(request, "id", "missing")

	handler.GetProduct(recorder, request)

	if recorder.Code != http.StatusNotFound {
		t.Errorf("Expected status code %d, got %d", http.StatusNotFound, recorder.Code)
	}
}

func TestCatalogListCategories(t *testing.T) {
	svc := catalog.NewStaticService(nil, []domain.Category{
		{ID: "electronics", Name: "Electronics"},
	}, 0)
	handler := newTestCatalogHandler(svc)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest("GET", "/categories", nil)

	handler.ListCategories(recorder, request)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status code %d, got %d", http.StatusOK, recorder.Code)
	}

	var response []domain.Category
	if err := json.NewDecoder(recorder.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(response) != 1 || response[0].ID != "electronics" {
		t.Errorf("Expected the electronics category, got %+v", response)
	}
}
