package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type mockCategoryRepository struct {
	categories []*domain.Category
	nextID     int64
}

func (m *mockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	for _, existing := range m.categories {
		if existing.Name == category.Name {
			return repository.ErrCategoryAlreadyExists
		}
	}
	category.ID = m.nextID
	m.nextID++
	m.categories = append(m.categories, category)
	return nil
}

func (m *mockCategoryRepository) List(ctx context.Context, skip, limit int) ([]*domain.Category, error) {
	if skip > len(m.categories) {
		skip = len(m.categories)
	}
	end := skip + limit
	if end > len(m.categories) {
		end = len(m.categories)
	}
	return m.categories[skip:end], nil
}

func (m *mockCategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	for _, category := range m.categories {
		if category.ID == id {
			return category, nil
		}
	}
	return nil, repository.ErrCategoryNotFound
}

type mockProductRepository struct {
	categories *mockCategoryRepository
	products   []*domain.Product
	nextID     int64
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	category, err := m.categories.FindByID(ctx, product.CategoryID)
	if err != nil {
		return &repository.InvalidReferenceError{Reference: "category"}
	}
	product.ID = m.nextID
	m.nextID++
	product.Category = category
	m.products = append(m.products, product)
	return nil
}

func (m *mockProductRepository) List(ctx context.Context, skip, limit int) ([]*domain.Product, error) {
	if skip > len(m.products) {
		skip = len(m.products)
	}
	end := skip + limit
	if end > len(m.products) {
		end = len(m.products)
	}
	return m.products[skip:end], nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	for _, product := range m.products {
		if product.ID == id {
			return product, nil
		}
	}
	return nil, repository.ErrProductNotFound
}

func newCatalogTestRouter() *chi.Mux {
	logger := zap.NewNop()
	categoryRepo := &mockCategoryRepository{nextID: 1}
	productRepo := &mockProductRepository{categories: categoryRepo, nextID: 1}
	catalogService := service.NewCatalogService(categoryRepo, productRepo)
	handler := NewCatalogHandler(catalogService, logger)

	router := chi.NewRouter()
	handler.RegisterRoutes(router)

	return router
}

func TestCreateCategory(t *testing.T) {
	router := newCatalogTestRouter()

	w := doJSON(router, "POST", "/categories", map[string]string{"name": "drinks"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var response CategoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if response.Name != "drinks" || response.ID == 0 {
		t.Errorf("unexpected category %+v", response)
	}
}

func TestCreateCategoryDuplicateNameRejected(t *testing.T) {
	router := newCatalogTestRouter()

	if w := doJSON(router, "POST", "/categories", map[string]string{"name": "drinks"}); w.Code != http.StatusCreated {
		t.Fatalf("first create should succeed, got %d", w.Code)
	}

	w := doJSON(router, "POST", "/categories", map[string]string{"name": "drinks"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a duplicate name, got %d", w.Code)
	}
}

func TestCreateProductNestsCategory(t *testing.T) {
	router := newCatalogTestRouter()

	created := doJSON(router, "POST", "/categories", map[string]string{"name": "drinks"})
	var category CategoryResponse
	if err := json.Unmarshal(created.Body.Bytes(), &category); err != nil {
		t.Fatalf("invalid category body: %v", err)
	}

	w := doJSON(router, "POST", "/products", map[string]any{
		"name":        "espresso",
		"price":       2.50,
		"category_id": category.ID,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var product ProductResponse
	if err := json.Unmarshal(w.Body.Bytes(), &product); err != nil {
		t.Fatalf("invalid product body: %v", err)
	}
	if product.CategoryID != category.ID {
		t.Errorf("expected category_id %d, got %d", category.ID, product.CategoryID)
	}
	if product.Category == nil || product.Category.Name != "drinks" {
		t.Errorf("expected nested category drinks, got %+v", product.Category)
	}
}

func TestCreateProductUnknownCategoryRejected(t *testing.T) {
	router := newCatalogTestRouter()

	w := doJSON(router, "POST", "/products", map[string]any{
		"name":        "espresso",
		"price":       2.50,
		"category_id": 99,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown category, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreateProductRejectsMissingPrice(t *testing.T) {
	router := newCatalogTestRouter()

	doJSON(router, "POST", "/categories", map[string]string{"name": "drinks"})

	w := doJSON(router, "POST", "/products", map[string]any{
		"name":        "espresso",
		"category_id": 1,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an omitted price, got %d: %s", w.Code, w.Body.String())
	}

	var response middleware.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid error body: %v", err)
	}
	if response.Error.Details == nil {
		t.Error("expected validation details naming the price field")
	}
}

func TestCreateProductAcceptsExplicitZeroPrice(t *testing.T) {
	router := newCatalogTestRouter()

	doJSON(router, "POST", "/categories", map[string]string{"name": "drinks"})

	w := doJSON(router, "POST", "/products", map[string]any{
		"name":        "sample",
		"price":       0,
		"category_id": 1,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for an explicit zero price, got %d: %s", w.Code, w.Body.String())
	}

	var product ProductResponse
	if err := json.Unmarshal(w.Body.Bytes(), &product); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if product.Price != 0 {
		t.Errorf("expected price 0, got %v", product.Price)
	}
}

func TestCreateProductRejectsNegativePrice(t *testing.T) {
	router := newCatalogTestRouter()

	w := doJSON(router, "POST", "/products", map[string]any{
		"name":        "espresso",
		"price":       -1.0,
		"category_id": 1,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a negative price, got %d", w.Code)
	}
}

func TestListProductsWindow(t *testing.T) {
	router := newCatalogTestRouter()

	doJSON(router, "POST", "/categories", map[string]string{"name": "drinks"})
	for _, name := range []string{"espresso", "latte", "mocha"} {
		doJSON(router, "POST", "/products", map[string]any{
			"name":        name,
			"price":       3.0,
			"category_id": 1,
		})
	}

	req := httptest.NewRequest("GET", "/products?skip=1&limit=1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var products []ProductResponse
	if err := json.Unmarshal(w.Body.Bytes(), &products); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(products) != 1 || products[0].Name != "latte" {
		t.Errorf("expected the second product latte, got %+v", products)
	}
}
