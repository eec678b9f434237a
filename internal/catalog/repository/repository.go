package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"solarxp_backend/platform/apperr"
)

const (
	duplicateProductMsg = "Product already exists!"
	productNotFoundMsg  = "Product not found!"
	productInUseMsg     = "Cannot delete: Product used in existing quotes."
)

// PgxRepository is the PostgreSQL implementation of Repository.
type PgxRepository struct {
	pool *pgxpool.Pool
}

var _ Repository = (*PgxRepository)(nil)

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *PgxRepository {
	return &PgxRepository{pool: pool}
}

func (r *PgxRepository) Create(ctx context.Context, p Product) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO solar_products (id, type, watt, base_price_cents, subsidy_cents)
		VALUES ($1, $2, $3, $4, $5)
	`, p.ID, p.Type, p.Watt, p.BasePriceCents, p.SubsidyCents)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperr.Conflict(duplicateProductMsg)
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *PgxRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, type, watt, base_price_cents, subsidy_cents
		FROM solar_products
		ORDER BY type, watt
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Type, &p.Watt, &p.BasePriceCents, &p.SubsidyCents); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}
	return products, nil
}

func (r *PgxRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	var p Product
	err := r.pool.QueryRow(ctx, `
		SELECT id, type, watt, base_price_cents, subsidy_cents
		FROM solar_products
		WHERE id = $1
	`, id).Scan(&p.ID, &p.Type, &p.Watt, &p.BasePriceCents, &p.SubsidyCents)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(productNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return &p, nil
}

func (r *PgxRepository) Update(ctx context.Context, p Product) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE solar_products
		SET base_price_cents = $2, subsidy_cents = $3
		WHERE id = $1
	`, p.ID, p.BasePriceCents, p.SubsidyCents)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMsg)
	}
	return nil
}

func (r *PgxRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var inUse bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM quote_items WHERE product_id = $1)
	`, id).Scan(&inUse)
	if err != nil {
		return fmt.Errorf("failed to check product references: %w", err)
	}
	if inUse {
		return apperr.Conflict(productInUseMsg)
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM solar_products WHERE id = $1`, id)
	if err != nil {
		// The reference check above races with concurrent submissions; the
		// foreign key is the authority.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperr.Conflict(productInUseMsg)
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(productNotFoundMsg)
	}
	return nil
}
