// Package transport defines the plain-data request/response shapes for the
// quote lifecycle. No framework or storage types cross this boundary.
package transport

import "github.com/google/uuid"

// SubmitQuoteRequest is a customer's quote submission: contact details plus
// the selected panel types and wattages. The backend resolves the cross
// product of the two selections against the catalog.
type SubmitQuoteRequest struct {
	Mobile       string   `json:"mobile" validate:"required"`
	AddressLine1 string   `json:"addressLine1" validate:"required"`
	AddressLine2 string   `json:"addressLine2" validate:"required"`
	Types        []string `json:"types"`
	Watts        []int    `json:"watts"`
}

// SubmitQuoteResponse reports the created quote header.
type SubmitQuoteResponse struct {
	HeaderID uuid.UUID `json:"headerId"`
	Message  string    `json:"message"`
}

// AdminRequestItemResponse is one line item in the admin request view.
type AdminRequestItemResponse struct {
	ItemID      uuid.UUID `json:"itemId"`
	ProductName string    `json:"productName"`
	Price       string    `json:"price"`
	IsApproved  bool      `json:"isApproved"`
	Status      string    `json:"status"`
}

// AdminRequestResponse is one quote header in the admin request view.
type AdminRequestResponse struct {
	HeaderID     uuid.UUID                  `json:"headerId"`
	CustomerName string                     `json:"customerName"`
	Mobile       string                     `json:"mobile"`
	Address      string                     `json:"address"`
	Date         string                     `json:"date"`
	TotalAmount  string                     `json:"totalAmount"`
	Items        []AdminRequestItemResponse `json:"items"`
}

// UserQuoteItemResponse is one line item in the customer dashboard view.
// Price shows the placeholder until the admin approves the item.
type UserQuoteItemResponse struct {
	ItemID  uuid.UUID `json:"itemId"`
	Product string    `json:"product"`
	Price   string    `json:"price"`
	Status  string    `json:"status"`
	CanBuy  bool      `json:"canBuy"`
}

// UserQuoteResponse is one quote header in the customer dashboard view.
type UserQuoteResponse struct {
	HeaderID uuid.UUID               `json:"headerId"`
	Date     string                  `json:"date"`
	Address  string                  `json:"address"`
	Items    []UserQuoteItemResponse `json:"items"`
}

// PlaceOrderResponse reports the created order.
type PlaceOrderResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	Message string    `json:"message"`
}

// AdminOrderResponse is one placed order in the admin fulfilment view.
type AdminOrderResponse struct {
	OrderID      uuid.UUID `json:"orderId"`
	CustomerName string    `json:"customerName"`
	Mobile       string    `json:"mobile"`
	Address      string    `json:"address"`
	ModelName    string    `json:"modelName"`
	Amount       string    `json:"amount"`
	Status       string    `json:"status"`
	Date         string    `json:"date"`
}

// UpdateOrderStatusRequest moves an order to a new fulfilment status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
