package repository

import (
	"context"
	"time"

	"solarxp_backend/internal/quotes/domain"

	"github.com/google/uuid"
)

// Header is the database model for a quote header.
type Header struct {
	ID           uuid.UUID `db:"id"`
	UserID       uuid.UUID `db:"user_id"`
	Mobile       string    `db:"mobile"`
	AddressLine1 string    `db:"address_line1"`
	AddressLine2 string    `db:"address_line2"`
	CreatedAt    time.Time `db:"created_at"`
}

// Item is the database model for a quote line item. CalculatedPriceCents is
// frozen at submission time and never recomputed from the product.
type Item struct {
	ID                   uuid.UUID         `db:"id"`
	HeaderID             uuid.UUID         `db:"header_id"`
	ProductID            uuid.UUID         `db:"product_id"`
	CalculatedPriceCents int64             `db:"calculated_price_cents"`
	IsApproved           bool              `db:"is_approved"`
	Status               domain.ItemStatus `db:"status"`
}

// Product is the catalog projection the quote flow needs for pricing.
type Product struct {
	ID             uuid.UUID
	Type           string
	Watt           int
	BasePriceCents int64
	SubsidyCents   int64
}

// ItemView is an item joined with its product for display.
type ItemView struct {
	Item
	ProductType string
	ProductWatt int
}

// HeaderView is a header joined with its customer and items.
type HeaderView struct {
	Header
	CustomerName    *string
	CustomerSurname *string
	Items           []ItemView
}

// Order is the database model for a placed client order.
type Order struct {
	ID        uuid.UUID          `db:"id"`
	ItemID    uuid.UUID          `db:"item_id"`
	Status    domain.OrderStatus `db:"order_status"`
	OrderDate time.Time          `db:"order_date"`
}

// OrderView is an order joined with its item, product, and customer.
type OrderView struct {
	Order
	ProductType     string
	ProductWatt     int
	PriceCents      int64
	CustomerName    *string
	CustomerSurname *string
	Mobile          string
	Address         string
}

// ApprovalFilter selects headers by the approval state of their items.
type ApprovalFilter string

const (
	// FilterAll returns every header.
	FilterAll ApprovalFilter = ""
	// FilterPending returns headers with at least one unapproved item.
	FilterPending ApprovalFilter = "Pending"
	// FilterApproved returns non-empty headers whose items are all approved.
	// A header with a mix of approved and pending items shows under Pending
	// only; the two filters are intentionally not complementary.
	FilterApproved ApprovalFilter = "Approved"
)

// ListHeadersParams filters the header listing.
type ListHeadersParams struct {
	UserID   *uuid.UUID
	Approval ApprovalFilter
}

// PlaceOrderResult reports the outcome of the order transaction.
type PlaceOrderResult struct {
	OrderID uuid.UUID
	// UserID owns the quote the item belongs to; the caller invalidates
	// that user's quote cache after commit.
	UserID uuid.UUID
}

// Repository defines quote lifecycle storage operations. Each mutating
// method runs as a single transaction; partial writes are never visible.
type Repository interface {
	// FindProducts resolves the cross product of types × watts against the
	// catalog, returning only combinations that exist.
	FindProducts(ctx context.Context, types []string, watts []int) ([]Product, error)

	// CreateHeaderWithItems inserts a header and its items atomically.
	CreateHeaderWithItems(ctx context.Context, header Header, items []Item) error

	// ListHeaders returns headers with customer and items, newest first.
	ListHeaders(ctx context.Context, params ListHeadersParams) ([]HeaderView, error)

	// ApproveHeaderItems marks every non-Ordered item under the header as
	// approved in one atomic write and returns the owning user id.
	// Items already Ordered keep their status. Fails with a not-found error
	// if the header is missing or has no items.
	ApproveHeaderItems(ctx context.Context, headerID uuid.UUID) (uuid.UUID, error)

	// PlaceOrder locks the item, enforces the approval and idempotency
	// guards, inserts the order, and advances the item to Ordered, all in
	// one transaction. Concurrent calls for the same item serialize; the
	// loser observes Ordered and gets a conflict error.
	PlaceOrder(ctx context.Context, order Order) (PlaceOrderResult, error)

	// ListOrders returns all orders with product and customer, newest first.
	ListOrders(ctx context.Context) ([]OrderView, error)

	// UpdateOrderStatus transitions an order's fulfilment status, enforcing
	// the order status state machine under a row lock.
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, next domain.OrderStatus) error
}
