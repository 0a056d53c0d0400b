package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// InvalidReferenceError indicates a create referenced a row that does not
// exist, surfaced from a foreign key violation.
type InvalidReferenceError struct {
	Reference string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("referenced %s does not exist", e.Reference)
}

// fkReferences maps foreign key constraint names to the entity a caller
// referenced. Must match the constraint names in migrations/.
var fkReferences = map[string]string{
	"products_category_id_fkey":   "category",
	"orders_user_id_fkey":         "user",
	"order_items_order_id_fkey":   "order",
	"order_items_product_id_fkey": "product",
}

// isUniqueViolation reports whether err is a unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// invalidReference converts a foreign key violation into an
// InvalidReferenceError naming the missing entity, or returns nil if err is
// not a foreign key violation.
func invalidReference(err error) *InvalidReferenceError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgForeignKeyViolation {
		return nil
	}

	ref, ok := fkReferences[pgErr.ConstraintName]
	if !ok {
		ref = "row"
	}
	return &InvalidReferenceError{Reference: ref}
}
