package service

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository"
)

// CatalogService defines the interface for category and product logic
type CatalogService interface {
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	ListCategories(ctx context.Context, skip, limit int) ([]*domain.Category, error)
	CreateProduct(ctx context.Context, name string, price float64, categoryID int64) (*domain.Product, error)
	ListProducts(ctx context.Context, skip, limit int) ([]*domain.Product, error)
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// CreateCategory creates a new category.
func (s *catalogService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	category := &domain.Category{Name: name}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		if err == repository.ErrCategoryAlreadyExists {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return category, nil
}

// ListCategories retrieves categories within the skip/limit window.
func (s *catalogService) ListCategories(ctx context.Context, skip, limit int) ([]*domain.Category, error) {
	categories, err := s.categoryRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateProduct creates a new product in the given category. A nonexistent
// category surfaces as a repository.InvalidReferenceError.
func (s *catalogService) CreateProduct(ctx context.Context, name string, price float64, categoryID int64) (*domain.Product, error) {
	product := &domain.Product{
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// ListProducts retrieves products within the skip/limit window.
func (s *catalogService) ListProducts(ctx context.Context, skip, limit int) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
