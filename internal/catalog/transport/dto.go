// Package transport defines the request/response shapes for the catalog.
package transport

import "github.com/google/uuid"

// CreateProductRequest adds a panel model to the catalog. Prices are in
// integer cents.
type CreateProductRequest struct {
	Type           string `json:"type" validate:"required"`
	Watt           int    `json:"watt" validate:"required,gt=0"`
	BasePriceCents int64  `json:"basePriceCents" validate:"gte=0"`
	SubsidyCents   int64  `json:"subsidyCents" validate:"gte=0"`
}

// UpdateProductRequest rewrites a product's pricing. Type and wattage are
// immutable once created.
type UpdateProductRequest struct {
	BasePriceCents int64 `json:"basePriceCents" validate:"gte=0"`
	SubsidyCents   int64 `json:"subsidyCents" validate:"gte=0"`
}

// ProductResponse is one catalog entry.
type ProductResponse struct {
	ID             uuid.UUID `json:"id"`
	Type           string    `json:"type"`
	Watt           int       `json:"watt"`
	BasePriceCents int64     `json:"basePriceCents"`
	SubsidyCents   int64     `json:"subsidyCents"`
}
