// Package types provides common value types.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors.
type Money = decimal.Decimal

// MoneyScale is the number of fractional digits used when rendering Money.
const MoneyScale = 2

// NewMoneyFromString creates a Money value from a string.
// This is the preferred method for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns zero Money value.
func Zero() Money {
	return decimal.Zero
}

// Extend returns price multiplied by a whole quantity.
func Extend(price Money, quantity int) Money {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// FormatMoney renders m with MoneyScale fractional digits.
func FormatMoney(m Money) string {
	return m.StringFixed(MoneyScale)
}
