package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

func NewMoney(amount decimal.Decimal, cur currency.Unit) Money {
	return Money{Amount: amount, Currency: cur}.Normalize()
}

// MinorUnitScale returns the number of decimal places the currency is settled in,
// e.g. 2 for USD and 0 for JPY.
func MinorUnitScale(cur currency.Unit) int32 {
	scale, _ := currency.Standard.Rounding(cur)
	return int32(scale)
}

// Normalize rounds the amount half away from zero to the currency's minor unit.
func (m Money) Normalize() Money {
	return Money{
		Amount:   m.Amount.Round(MinorUnitScale(m.Currency)),
		Currency: m.Currency,
	}
}

// Mul multiplies by an integer quantity. The result is exact.
func (m Money) Mul(qty int64) Money {
	return Money{
		Amount:   m.Amount.Mul(decimal.NewFromInt(qty)),
		Currency: m.Currency,
	}
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("currency mismatch: %s != %s", m.Currency, other.Currency)
	}

	return Money{
		Amount:   m.Amount.Add(other.Amount),
		Currency: m.Currency,
	}, nil
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return m.Amount.StringFixed(MinorUnitScale(m.Currency)) + " " + m.Currency.String()
}

func Zero(cur currency.Unit) Money {
	return Money{Amount: decimal.Zero, Currency: cur}
}
