package ast

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is an exact quantity of money: a big-integer-backed decimal value
// plus a currency tag. Values are parsed straight from source text into
// decimals, never through a float, so repeated summation of small ledger
// entries cannot drift.
//
// No currency conversion ever happens; arithmetic between amounts assumes
// matching currencies without enforcing it at the type level.
type Amount struct {
	Value    decimal.Decimal
	Currency string
}

// NewAmount parses a decimal literal into an exact Amount.
func NewAmount(value, currency string) (Amount, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid amount value %q: %w", value, err)
	}
	return Amount{Value: d, Currency: currency}, nil
}

// MustNewAmount parses a decimal literal and panics on error.
// Use only in tests or with known-valid input.
func MustNewAmount(value, currency string) Amount {
	a, err := NewAmount(value, currency)
	if err != nil {
		panic(err)
	}
	return a
}

// Neg returns the amount with its value negated.
func (a Amount) Neg() Amount {
	return Amount{Value: a.Value.Neg(), Currency: a.Currency}
}

// Equal reports exact equality: same currency and numerically equal value.
// "100", "100.0" and "100.00" are all equal.
func (a Amount) Equal(other Amount) bool {
	return a.Currency == other.Currency && a.Value.Equal(other.Value)
}

func (a Amount) String() string {
	return a.Value.String() + " " + a.Currency
}
