package currency

import (
	"database/sql/driver"
	"errors"
	"strings"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
)

var ErrInvalidCurrency = errors.New("currency must be one of USD, EUR, GBP or JPY")

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Value() (driver.Value, error) {
	return c.String(), nil
}

func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case CurrencyUSD:
		return CurrencyUSD, nil
	case CurrencyEUR:
		return CurrencyEUR, nil
	case CurrencyGBP:
		return CurrencyGBP, nil
	case CurrencyJPY:
		return CurrencyJPY, nil
	default:
		return "", ErrInvalidCurrency
	}
}
