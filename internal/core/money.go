package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in integer cents. All summation happens in cents so
// that totals never accumulate floating-point error.
type Money struct {
	Cents int64
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ParseAmount converts a decimal string to Money with half-up rounding on
// the third decimal place. Negative amounts are rejected.
//
// Examples:
//
//	ParseAmount("12.34") -> 1234 cents
//	ParseAmount("12.345") -> 1235 cents (rounds up)
//	ParseAmount("-1")    -> error
func ParseAmount(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	cents := d.Round(2).Shift(2)
	if !cents.IsInteger() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: cents.IntPart()}, nil
}

// String formats the amount with exactly two fractional digits.
func (m Money) String() string {
	sign := ""
	cents := m.Cents
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// SumAmounts adds a list of amounts in cents.
func SumAmounts(amounts []Money) Money {
	var total int64
	for _, a := range amounts {
		total += a.Cents
	}
	return Money{Cents: total}
}
