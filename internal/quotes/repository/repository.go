package repository

import (
	"context"
	"errors"
	"fmt"

	"solarxp_backend/internal/quotes/domain"
	"solarxp_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	headerNotFoundMsg = "Request not found!"
	noItemsMsg        = "No items found!"
	itemNotFoundMsg   = "Item not found!"
	orderNotFoundMsg  = "Order not found!"
)

// PgxRepository is the postgres implementation of Repository.
type PgxRepository struct {
	pool *pgxpool.Pool
}

// New creates a new quotes repository.
func New(pool *pgxpool.Pool) *PgxRepository {
	return &PgxRepository{pool: pool}
}

var _ Repository = (*PgxRepository)(nil)

// FindProducts resolves selected types × watts against the catalog.
func (r *PgxRepository) FindProducts(ctx context.Context, types []string, watts []int) ([]Product, error) {
	query := `
		SELECT id, type, watt, base_price_cents, subsidy_cents
		FROM solar_products
		WHERE type = ANY($1) AND watt = ANY($2)`

	rows, err := r.pool.Query(ctx, query, types, watts)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
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

// CreateHeaderWithItems inserts a quote header and its line items in a single
// transaction. Either everything persists or nothing does.
func (r *PgxRepository) CreateHeaderWithItems(ctx context.Context, header Header, items []Item) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	headerQuery := `
		INSERT INTO quote_headers (id, user_id, mobile, address_line1, address_line2, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := tx.Exec(ctx, headerQuery,
		header.ID, header.UserID, header.Mobile,
		header.AddressLine1, header.AddressLine2, header.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to insert quote header: %w", err)
	}

	itemQuery := `
		INSERT INTO quote_items (id, header_id, product_id, calculated_price_cents, is_approved, status)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, item := range items {
		if _, err := tx.Exec(ctx, itemQuery,
			item.ID, item.HeaderID, item.ProductID,
			item.CalculatedPriceCents, item.IsApproved, item.Status,
		); err != nil {
			return fmt.Errorf("failed to insert quote item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// ListHeaders returns headers (optionally scoped to a user and filtered by
// approval state) with their customer and items, newest first.
func (r *PgxRepository) ListHeaders(ctx context.Context, params ListHeadersParams) ([]HeaderView, error) {
	var userParam interface{}
	if params.UserID != nil {
		userParam = *params.UserID
	}

	query := `
		SELECT h.id, h.user_id, h.mobile, h.address_line1, h.address_line2, h.created_at,
			u.name, u.surname
		FROM quote_headers h
		LEFT JOIN users u ON u.id = h.user_id
		WHERE ($1::uuid IS NULL OR h.user_id = $1)
			AND ($2::text <> 'Pending' OR EXISTS (
				SELECT 1 FROM quote_items i WHERE i.header_id = h.id AND NOT i.is_approved))
			AND ($2::text <> 'Approved' OR (
				EXISTS (SELECT 1 FROM quote_items i WHERE i.header_id = h.id)
				AND NOT EXISTS (SELECT 1 FROM quote_items i WHERE i.header_id = h.id AND NOT i.is_approved)))
		ORDER BY h.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userParam, string(params.Approval))
	if err != nil {
		return nil, fmt.Errorf("failed to list quote headers: %w", err)
	}
	defer rows.Close()

	var headers []HeaderView
	var headerIDs []uuid.UUID
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		var h HeaderView
		if err := rows.Scan(
			&h.ID, &h.UserID, &h.Mobile, &h.AddressLine1, &h.AddressLine2, &h.CreatedAt,
			&h.CustomerName, &h.CustomerSurname,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quote header: %w", err)
		}
		index[h.ID] = len(headers)
		headers = append(headers, h)
		headerIDs = append(headerIDs, h.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quote headers: %w", err)
	}

	if len(headers) == 0 {
		return headers, nil
	}

	itemQuery := `
		SELECT i.id, i.header_id, i.product_id, i.calculated_price_cents, i.is_approved, i.status,
			p.type, p.watt
		FROM quote_items i
		JOIN solar_products p ON p.id = i.product_id
		WHERE i.header_id = ANY($1)
		ORDER BY i.id`

	itemRows, err := r.pool.Query(ctx, itemQuery, headerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query quote items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var it ItemView
		if err := itemRows.Scan(
			&it.ID, &it.HeaderID, &it.ProductID, &it.CalculatedPriceCents, &it.IsApproved, &it.Status,
			&it.ProductType, &it.ProductWatt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan quote item: %w", err)
		}
		if i, ok := index[it.HeaderID]; ok {
			headers[i].Items = append(headers[i].Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quote items: %w", err)
	}

	return headers, nil
}

// ApproveHeaderItems bulk-approves every item under the header. The header
// row is locked first so a concurrent PlaceOrder can never observe a
// half-approved sibling set. Items already Ordered are left untouched.
func (r *PgxRepository) ApproveHeaderItems(ctx context.Context, headerID uuid.UUID) (uuid.UUID, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var userID uuid.UUID
	err = tx.QueryRow(ctx,
		`SELECT user_id FROM quote_headers WHERE id = $1 FOR UPDATE`, headerID,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, apperr.NotFound(headerNotFoundMsg)
		}
		return uuid.Nil, fmt.Errorf("failed to load quote header: %w", err)
	}

	var itemCount int
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM quote_items WHERE header_id = $1`, headerID,
	).Scan(&itemCount); err != nil {
		return uuid.Nil, fmt.Errorf("failed to count quote items: %w", err)
	}
	if itemCount == 0 {
		return uuid.Nil, apperr.NotFound(noItemsMsg)
	}

	if _, err := tx.Exec(ctx, `
		UPDATE quote_items
		SET is_approved = TRUE, status = $2
		WHERE header_id = $1 AND status <> $3`,
		headerID, domain.StatusApproved, domain.StatusOrdered,
	); err != nil {
		return uuid.Nil, fmt.Errorf("failed to approve quote items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

// PlaceOrder runs the guarded order transaction. The item row is locked for
// the duration, so two concurrent orders for the same item serialize and
// exactly one succeeds.
func (r *PgxRepository) PlaceOrder(ctx context.Context, order Order) (PlaceOrderResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return PlaceOrderResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		isApproved bool
		status     domain.ItemStatus
		userID     uuid.UUID
	)
	err = tx.QueryRow(ctx, `
		SELECT i.is_approved, i.status, h.user_id
		FROM quote_items i
		JOIN quote_headers h ON h.id = i.header_id
		WHERE i.id = $1
		FOR UPDATE OF i`, order.ItemID,
	).Scan(&isApproved, &status, &userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return PlaceOrderResult{}, apperr.NotFound(itemNotFoundMsg)
		}
		return PlaceOrderResult{}, fmt.Errorf("failed to load quote item: %w", err)
	}

	if err := domain.CheckOrderable(isApproved, status); err != nil {
		return PlaceOrderResult{}, err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO client_orders (id, item_id, order_status, order_date)
		VALUES ($1, $2, $3, $4)`,
		order.ID, order.ItemID, order.Status, order.OrderDate,
	); err != nil {
		return PlaceOrderResult{}, fmt.Errorf("failed to insert order: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`UPDATE quote_items SET status = $2 WHERE id = $1`,
		order.ItemID, domain.StatusOrdered,
	); err != nil {
		return PlaceOrderResult{}, fmt.Errorf("failed to mark item ordered: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return PlaceOrderResult{}, err
	}
	return PlaceOrderResult{OrderID: order.ID, UserID: userID}, nil
}

// ListOrders returns all placed orders with product and customer, newest first.
func (r *PgxRepository) ListOrders(ctx context.Context) ([]OrderView, error) {
	query := `
		SELECT o.id, o.item_id, o.order_status, o.order_date,
			p.type, p.watt, i.calculated_price_cents,
			u.name, u.surname, h.mobile, h.address_line2
		FROM client_orders o
		JOIN quote_items i ON i.id = o.item_id
		JOIN solar_products p ON p.id = i.product_id
		JOIN quote_headers h ON h.id = i.header_id
		LEFT JOIN users u ON u.id = h.user_id
		ORDER BY o.order_date DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []OrderView
	for rows.Next() {
		var o OrderView
		if err := rows.Scan(
			&o.ID, &o.ItemID, &o.Status, &o.OrderDate,
			&o.ProductType, &o.ProductWatt, &o.PriceCents,
			&o.CustomerName, &o.CustomerSurname, &o.Mobile, &o.Address,
		); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus transitions an order under a row lock, enforcing the
// fulfilment state machine.
func (r *PgxRepository) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, next domain.OrderStatus) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current domain.OrderStatus
	err = tx.QueryRow(ctx,
		`SELECT order_status FROM client_orders WHERE id = $1 FOR UPDATE`, orderID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound(orderNotFoundMsg)
		}
		return fmt.Errorf("failed to load order: %w", err)
	}

	if !current.CanTransitionTo(next) {
		return apperr.Conflict(fmt.Sprintf("cannot move order from %s to %s", current, next))
	}

	if _, err := tx.Exec(ctx,
		`UPDATE client_orders SET order_status = $2 WHERE id = $1`, orderID, next,
	); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return tx.Commit(ctx)
}
