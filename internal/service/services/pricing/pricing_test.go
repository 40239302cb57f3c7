package pricing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordersvc/internal/service/models/apperrors"
	"ordersvc/internal/service/models/currency"
	"ordersvc/internal/service/models/money"
	"ordersvc/internal/service/models/sku"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		prices      map[string]Price
		expectError bool
	}{
		{
			name: "valid table",
			prices: map[string]Price{
				"SKU-ABC": {Amount: 10, Currency: "USD"},
				"sku-xyz": {Amount: 25, Currency: "usd"},
			},
		},
		{
			name:   "empty table is allowed",
			prices: map[string]Price{},
		},
		{
			name: "invalid sku key",
			prices: map[string]Price{
				"not a sku": {Amount: 10, Currency: "USD"},
			},
			expectError: true,
		},
		{
			name: "invalid currency",
			prices: map[string]Price{
				"SKU-ABC": {Amount: 10, Currency: "BTC"},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.prices)
			if tt.expectError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestQuote(t *testing.T) {
	t.Parallel()

	svc, err := New(map[string]Price{
		"SKU-ABC": {Amount: 10, Currency: "USD"},
	})
	require.NoError(t, err)

	abc, err := sku.New("SKU-ABC")
	require.NoError(t, err)

	price, err := svc.Quote(context.Background(), abc)
	require.NoError(t, err)
	assert.Equal(t, 10.0, price.Amount)
	assert.Equal(t, currency.CurrencyUSD, price.Currency)

	unknown, err := sku.New("SKU-NOPE")
	require.NoError(t, err)

	_, err = svc.Quote(context.Background(), unknown)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindInfra, apperrors.KindOf(err))
}

func TestSetPrice(t *testing.T) {
	t.Parallel()

	svc, err := New(nil)
	require.NoError(t, err)

	s, err := sku.New("SKU-NEW")
	require.NoError(t, err)
	price, err := money.New(3.5, currency.CurrencyEUR)
	require.NoError(t, err)

	svc.SetPrice(s, price)

	got, err := svc.Quote(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, got.Equals(price))
}
