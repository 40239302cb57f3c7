package money

import (
	"errors"
	"fmt"
	"math"

	"ordersvc/internal/service/models/currency"
)

var (
	ErrInvalidAmount     = errors.New("money amount must be a finite number")
	ErrCurrencyMismatch  = errors.New("cannot combine money in different currencies")
	ErrInvalidMultiplier = errors.New("multiplier must be a finite number")
)

// Money is an amount in a single currency, kept rounded to two decimal
// places after construction and after every arithmetic operation.
type Money struct {
	Amount   float64           `json:"amount"`
	Currency currency.Currency `json:"currency"`
}

func New(amount float64, cur currency.Currency) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, ErrInvalidAmount
	}

	return Money{Amount: round(amount), Currency: cur}, nil
}

// Parse builds Money from a raw amount and currency code.
func Parse(amount float64, code string) (Money, error) {
	cur, err := currency.ParseCurrency(code)
	if err != nil {
		return Money{}, err
	}

	return New(amount, cur)
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s and %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}

	return Money{Amount: round(m.Amount + other.Amount), Currency: m.Currency}, nil
}

func (m Money) Multiply(multiplier float64) (Money, error) {
	if math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		return Money{}, ErrInvalidMultiplier
	}

	return Money{Amount: round(m.Amount * multiplier), Currency: m.Currency}, nil
}

func (m Money) Equals(other Money) bool {
	return m.Currency == other.Currency && m.Amount == other.Amount
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}
