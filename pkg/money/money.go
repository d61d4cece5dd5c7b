// Package money holds fixed-precision helpers for prices and totals.
// Values are shopspring decimals rounded half-to-even at two places.
package money

import (
	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places kept for stored amounts.
const Scale = 2

var (
	hundred = decimal.NewFromInt(100)
	zero    = decimal.Zero
)

// Round applies banker's rounding to Scale places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(Scale)
}

// LineTotal returns quantity x unitPrice x (1 - discountPct/100), rounded.
func LineTotal(quantity int, unitPrice, discountPct decimal.Decimal) decimal.Decimal {
	factor := hundred.Sub(discountPct).Shift(-2)
	return Round(unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Mul(factor))
}

// Sum adds the given amounts. The result is rounded.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Round(total)
}

// Parse reads a decimal amount from its string form.
func Parse(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// IsPositive reports whether d > 0.
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(zero)
}

// InPercentRange reports whether d lies within [0, 100].
func InPercentRange(d decimal.Decimal) bool {
	return !d.LessThan(zero) && !d.GreaterThan(hundred)
}
