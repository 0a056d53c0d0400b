package transport

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/middleware"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CategoryCreateRequest represents the category creation payload
type CategoryCreateRequest struct {
	Name string `json:"name" validate:"required"`
}

// ProductCreateRequest represents the product creation payload. Price is a
// pointer so an omitted price fails validation while an explicit 0 passes.
type ProductCreateRequest struct {
	Name       string   `json:"name" validate:"required"`
	Price      *float64 `json:"price" validate:"required,gte=0"`
	CategoryID int64    `json:"category_id" validate:"required"`
}

// CategoryResponse represents category data in responses
type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ProductResponse represents product data in responses, with the owning
// category nested.
type ProductResponse struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Price      float64           `json:"price"`
	CategoryID int64             `json:"category_id"`
	Category   *CategoryResponse `json:"category"`
}

func newCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{ID: category.ID, Name: category.Name}
}

func newProductResponse(product *domain.Product) ProductResponse {
	response := ProductResponse{
		ID:         product.ID,
		Name:       product.Name,
		Price:      product.Price,
		CategoryID: product.CategoryID,
	}
	if product.Category != nil {
		category := newCategoryResponse(product.Category)
		response.Category = &category
	}
	return response
}

// CatalogHandler handles HTTP requests for categories and products
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Post("/categories", h.CreateCategory)
	r.Get("/categories", h.ListCategories)
	r.Post("/products", h.CreateProduct)
	r.Get("/products", h.ListProducts)
}

// CreateCategory handles category creation
func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CategoryCreateRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Category validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	category, err := h.catalogService.CreateCategory(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryAlreadyExists) {
			middleware.RespondWithError(w, http.StatusBadRequest, "category already exists")
			return
		}

		h.logger.Error("Failed to create category", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create category")
		return
	}

	h.logger.Info("Category created", zap.Int64("category_id", category.ID), zap.String("name", category.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, newCategoryResponse(category))
}

// ListCategories handles listing categories within a skip/limit window
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := listWindow(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	categories, err := h.catalogService.ListCategories(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("Failed to list categories", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, newCategoryResponse(category))
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}

// CreateProduct handles product creation
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductCreateRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.catalogService.CreateProduct(r.Context(), req.Name, *req.Price, req.CategoryID)
	if err != nil {
		var refErr *repository.InvalidReferenceError
		if errors.As(err, &refErr) {
			middleware.RespondWithError(w, http.StatusBadRequest, refErr.Error())
			return
		}

		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID), zap.String("name", product.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, newProductResponse(product))
}

// ListProducts handles listing products within a skip/limit window
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := listWindow(r)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.catalogService.ListProducts(r.Context(), skip, limit)
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	response := make([]ProductResponse, 0, len(products))
	for _, product := range products {
		response = append(response, newProductResponse(product))
	}

	middleware.RespondWithJSON(w, http.StatusOK, response)
}
