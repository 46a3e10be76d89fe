// Package money holds the fixed-point helpers shared by the ledger core.
// All monetary amounts carry exactly two fraction digits; float64 is never
// used for debit/credit fields so balance checks compare exactly.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// ReconcileTolerance is the residual allowed when grouping offsetting lines.
var ReconcileTolerance = decimal.New(1, -2) // 0.01

// Parse converts a decimal string into a two-digit monetary amount.
// More than two fraction digits is an error, not a silent rounding.
func Parse(input string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(input)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if value.Exponent() < -2 {
		return decimal.Zero, ErrInvalidAmount
	}
	return value.Round(2), nil
}

// Quantize rounds to two fraction digits, half away from zero.
func Quantize(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}

// Format renders an amount with exactly two fraction digits.
func Format(value decimal.Decimal) string {
	return value.StringFixed(2)
}

// WithinTolerance reports whether the residual of a reconciliation group is
// close enough to zero.
func WithinTolerance(residual decimal.Decimal) bool {
	return residual.Abs().LessThanOrEqual(ReconcileTolerance)
}
