package pricing

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/viper"

	"ordersvc/internal/service/models/apperrors"
	"ordersvc/internal/service/models/money"
	"ordersvc/internal/service/models/sku"
)

// Price is the raw configuration shape of one price table entry.
type Price struct {
	Amount   float64 `mapstructure:"amount"`
	Currency string  `mapstructure:"currency"`
}

// StaticPricingService quotes unit prices from a fixed table keyed by
// SKU. Price lookup is a pure external collaborator of the order flow;
// an unknown SKU is an infra failure, not a validation one.
type StaticPricingService struct {
	mu    sync.RWMutex
	table map[sku.SKU]money.Money
}

// New builds a pricing service from raw price entries. Keys are
// normalized through the SKU rules.
func New(prices map[string]Price) (*StaticPricingService, error) {
	table := make(map[sku.SKU]money.Money, len(prices))
	for raw, price := range prices {
		s, err := sku.New(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid sku %q in price table: %w", raw, err)
		}

		m, err := money.Parse(price.Amount, price.Currency)
		if err != nil {
			return nil, fmt.Errorf("invalid price for sku %q: %w", raw, err)
		}

		table[s] = m
	}

	return &StaticPricingService{table: table}, nil
}

// MustNewFromConfig builds the service from the pricing.prices config
// section.
func MustNewFromConfig() *StaticPricingService {
	prices := make(map[string]Price)
	if err := viper.UnmarshalKey("pricing.prices", &prices); err != nil {
		panic("error while reading price table: " + err.Error())
	}

	svc, err := New(prices)
	if err != nil {
		panic(err)
	}

	return svc
}

// Quote returns the configured unit price for the SKU.
func (s *StaticPricingService) Quote(_ context.Context, item sku.SKU) (money.Money, error) {
	s.mu.RLock()
	price, ok := s.table[item]
	s.mu.RUnlock()

	if !ok {
		return money.Money{}, apperrors.Infra(fmt.Sprintf("price not configured for sku %s", item), nil)
	}

	return price, nil
}

// SetPrice adds or replaces a price table entry.
func (s *StaticPricingService) SetPrice(item sku.SKU, price money.Money) {
	s.mu.Lock()
	s.table[item] = price
	s.mu.Unlock()
}
