package domain

import "solarxp_backend/platform/apperr"

// ItemStatus is the lifecycle state of a quote item. The legal progression
// is Pending → Approved → Ordered; a status never moves backwards.
type ItemStatus string

const (
	// StatusPending means the item awaits admin price approval.
	StatusPending ItemStatus = "Pending"
	// StatusApproved means the admin approved the price; the customer may order.
	StatusApproved ItemStatus = "Approved"
	// StatusOrdered means the customer placed an order. Terminal.
	StatusOrdered ItemStatus = "Ordered"
)

// ParseItemStatus validates a raw status value at the boundary.
func ParseItemStatus(raw string) (ItemStatus, error) {
	switch ItemStatus(raw) {
	case StatusPending, StatusApproved, StatusOrdered:
		return ItemStatus(raw), nil
	default:
		return "", apperr.BadRequest("unknown quote item status: " + raw)
	}
}

func (s ItemStatus) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusApproved:
		return 1
	case StatusOrdered:
		return 2
	default:
		return -1
	}
}

// CanAdvanceTo reports whether moving to next is a forward transition.
// Staying in place is allowed (approval is idempotent); regressing is not.
func (s ItemStatus) CanAdvanceTo(next ItemStatus) bool {
	if s.rank() < 0 || next.rank() < 0 {
		return false
	}
	return next.rank() >= s.rank()
}

// CheckOrderable enforces the PlaceOrder guards for a quote item:
// the price must be approved and the item must not already be ordered.
func CheckOrderable(isApproved bool, status ItemStatus) error {
	if status == StatusOrdered {
		return apperr.Conflict("Already ordered!")
	}
	if !isApproved {
		return apperr.Precondition("Price not approved yet!")
	}
	return nil
}

// OrderStatus is the coarser fulfilment lifecycle of a placed order,
// separate from the quote item lifecycle.
type OrderStatus string

const (
	OrderPlaced     OrderStatus = "Placed"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// ParseOrderStatus validates a raw order status value at the boundary.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	switch OrderStatus(raw) {
	case OrderPlaced, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return OrderStatus(raw), nil
	default:
		return "", apperr.BadRequest("unknown order status: " + raw)
	}
}

func (s OrderStatus) fulfilmentRank() int {
	switch s {
	case OrderPlaced:
		return 0
	case OrderProcessing:
		return 1
	case OrderShipped:
		return 2
	case OrderDelivered:
		return 3
	default:
		return -1
	}
}

// Terminal reports whether no further transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

// CanTransitionTo reports whether an order may move from s to next.
// Fulfilment only moves forward (Placed → Processing → Shipped → Delivered);
// cancellation is allowed from any state before delivery.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	if next == OrderCancelled {
		return true
	}
	return next.fulfilmentRank() > s.fulfilmentRank()
}
