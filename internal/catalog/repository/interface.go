package repository

import (
	"context"

	"github.com/google/uuid"
)

// Product is the database model for a solar panel catalog entry.
// Prices are stored in integer cents.
type Product struct {
	ID             uuid.UUID `db:"id"`
	Type           string    `db:"type"`
	Watt           int       `db:"watt"`
	BasePriceCents int64     `db:"base_price_cents"`
	SubsidyCents   int64     `db:"subsidy_cents"`
}

// Repository defines catalog storage operations.
type Repository interface {
	// Create inserts a product. A duplicate (type, watt) pair fails with a
	// conflict error.
	Create(ctx context.Context, p Product) error

	// List returns every product, ordered by type then wattage.
	List(ctx context.Context) ([]Product, error)

	// GetByID returns a product or a not-found error.
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// Update rewrites a product's pricing fields. The (type, watt) identity
	// is immutable.
	Update(ctx context.Context, p Product) error

	// Delete removes a product. Products referenced by existing quote items
	// fail with a conflict error so historical quotes stay intact.
	Delete(ctx context.Context, id uuid.UUID) error
}
