package domain

import (
	"errors"
	"fmt"
)

// Money is an amount in minor units of a currency.
type Money struct {
	Cents    int64
	Currency string
}

func NewMoney(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, errors.New("amount cannot be negative")
	}
	if currency == "" {
		return Money{}, errors.New("currency is required")
	}
	return Money{Cents: cents, Currency: currency}, nil
}

// Dollars returns the amount in major units, the way the gateway's JSON
// API expects it.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100
}

// Format renders the amount as a plain en-US decimal with two places and
// no thousands separator, e.g. "1234.50".
func (m Money) Format() string {
	return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100)
}
