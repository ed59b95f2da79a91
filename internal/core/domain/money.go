package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of decimal places carried by a Money value.
// Amounts are stored in fils: 1.000 of the major unit is 1000 minor units.
const MoneyScale = 3

// Money is a monetary amount in integer minor units. All ledger arithmetic
// happens on this type; decimal conversion exists only for the parse/display
// boundary. The zero value is zero money.
type Money int64

// NewMoney builds a Money from a count of minor units.
func NewMoney(minorUnits int64) Money {
	return Money(minorUnits)
}

// MoneyFromDecimal converts a decimal amount in major units into Money.
// It fails if the value carries more precision than MoneyScale allows,
// rather than rounding silently.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	shifted := d.Shift(MoneyScale)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than %d decimal places", d.String(), MoneyScale)
	}
	if !shifted.BigInt().IsInt64() {
		return 0, fmt.Errorf("amount %s overflows minor units", d.String())
	}
	return Money(shifted.IntPart()), nil
}

// ParseMoney parses a decimal string ("1234.500") into Money.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return MoneyFromDecimal(d)
}

// MinorUnits returns the raw minor-unit count.
func (m Money) MinorUnits() int64 {
	return int64(m)
}

// Decimal returns the amount in major units as a decimal.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -MoneyScale)
}

// String formats the amount in major units with full minor-unit precision.
func (m Money) String() string {
	return m.Decimal().StringFixed(MoneyScale)
}

func (m Money) Add(other Money) Money { return m + other }

func (m Money) Sub(other Money) Money { return m - other }

func (m Money) Neg() Money { return -m }

func (m Money) IsZero() bool { return m == 0 }

func (m Money) IsPositive() bool { return m > 0 }

func (m Money) IsNegative() bool { return m < 0 }

// Cmp returns -1, 0 or 1 comparing m against other.
func (m Money) Cmp(other Money) int {
	switch {
	case m < other:
		return -1
	case m > other:
		return 1
	default:
		return 0
	}
}

// MinMoney returns the smaller of two amounts.
func MinMoney(a, b Money) Money {
	if a < b {
		return a
	}
	return b
}

// PercentOf returns part/whole as a percentage with two decimal places,
// and zero when whole is zero. Settlement and petty-cash summaries share
// this single implementation.
func PercentOf(part, whole Money) decimal.Decimal {
	if whole == 0 {
		return decimal.Zero
	}
	return part.Decimal().Div(whole.Decimal()).Mul(decimal.NewFromInt(100)).Round(2)
}
