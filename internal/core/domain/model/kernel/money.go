package kernel

import (
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MinorUnitExponent is the number of decimal places represented by one minor unit.
const MinorUnitExponent = 2

// Money is an amount in minor currency units (cents). Arithmetic stays in
// integers; Decimal renders the amount for presentation only.
type Money struct {
	minor int64
}

// NewMoney rejects negative amounts. Zero is a valid price.
func NewMoney(minor int64) (Money, error) {
	if minor < 0 {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", minor, 0, "unbounded")
	}
	return Money{minor: minor}, nil
}

func (m Money) Minor() int64 {
	return m.minor
}

// Times multiplies by a quantity, e.g. unit price by line quantity.
func (m Money) Times(qty int) Money {
	return Money{minor: m.minor * int64(qty)}
}

func (m Money) Add(other Money) Money {
	return Money{minor: m.minor + other.minor}
}

// Decimal returns the amount in major units, e.g. 1999 -> 19.99.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.minor, -MinorUnitExponent)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(MinorUnitExponent)
}
