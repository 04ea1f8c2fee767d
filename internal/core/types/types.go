// Package types provides common domain value types.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors on prices and totals.
type Money = decimal.Decimal

// NewMoneyFromString creates a Money value from a string.
// This is the preferred constructor for monetary values.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ZeroMoney returns zero Money value.
func ZeroMoney() Money {
	return decimal.Zero
}

// Quantity is a count of whole LPG cylinders.
//
// Cylinders are never fractional, so a plain integer matches Postgres BIGINT
// semantics exactly and keeps ledger arithmetic trivially exact.
type Quantity int64

func (q Quantity) Int64() int64 { return int64(q) }

func (q Quantity) IsZero() bool { return q == 0 }

func (q Quantity) IsPositive() bool { return q > 0 }

func (q Quantity) IsNegative() bool { return q < 0 }

func (q Quantity) Neg() Quantity { return -q }

func (q Quantity) Abs() Quantity {
	if q < 0 {
		return -q
	}
	return q
}

// Mul multiplies the quantity by a unit price, returning a Money total.
func (q Quantity) Mul(unitPrice Money) Money {
	return unitPrice.Mul(decimal.NewFromInt(int64(q)))
}
