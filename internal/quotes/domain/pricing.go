// Package domain holds the pure business rules of the quote lifecycle:
// price calculation and the item/order status state machines. Nothing in
// this package touches storage, caches, or transport.
package domain

// LocationChargePerWattCents is the fixed installation surcharge of ₹20 per
// watt of panel capacity. Business constant, set by operations; it is applied
// once at submission time and frozen into the item's calculated price.
const LocationChargePerWattCents int64 = 20_00

// FinalPriceCents computes the quoted price for a product:
// base price plus the per-watt location surcharge, minus subsidy.
// The result is deterministic for a given product. No clamping is applied;
// non-negativity follows from the catalog rule that a subsidy never exceeds
// the base price.
func FinalPriceCents(basePriceCents int64, watt int, subsidyCents int64) int64 {
	locationCharge := int64(watt) * LocationChargePerWattCents
	return basePriceCents + locationCharge - subsidyCents
}
