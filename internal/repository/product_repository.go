package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	List(ctx context.Context, skip, limit int) ([]*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Create inserts a new product, then reloads it with its category so the
// returned entity matches what reads produce. A missing category surfaces
// as an InvalidReferenceError from the foreign key constraint.
func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, price, category_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, product.Name, product.Price, product.CategoryID).Scan(&product.ID)
	if err != nil {
		if refErr := invalidReference(err); refErr != nil {
			return refErr
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	reloaded, err := r.FindByID(ctx, product.ID)
	if err != nil {
		return fmt.Errorf("failed to reload created product: %w", err)
	}
	*product = *reloaded

	return nil
}

// List retrieves products with their categories in creation order within
// the skip/limit window.
func (r *productRepository) List(ctx context.Context, skip, limit int) ([]*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.price, p.category_id, c.id, c.name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		ORDER BY p.id ASC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// FindByID retrieves a product with its category by ID.
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT p.id, p.name, p.price, p.category_id, c.id, c.name
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`

	product, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	product := &domain.Product{Category: &domain.Category{}}
	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.CategoryID,
		&product.Category.ID,
		&product.Category.Name,
	)
	if err != nil {
		return nil, err
	}
	return product, nil
}
