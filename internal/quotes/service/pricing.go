package service

import "github.com/shopspring/decimal"

// quantityScale is the number of decimal places the quantity column stores.
const quantityScale = 3

// lineTotalCents computes quantity × unit price entirely in decimal space,
// rounded half-up to whole cents. No binary floats touch the money path, so
// summing line totals is exact at any scale.
func lineTotalCents(unitPriceCents int64, quantity decimal.Decimal) int64 {
	return decimal.NewFromInt(unitPriceCents).Mul(quantity).Round(0).IntPart()
}
