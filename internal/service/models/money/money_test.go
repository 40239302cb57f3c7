package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordersvc/internal/service/models/currency"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		amount      float64
		expected    float64
		expectError bool
	}{
		{
			name:     "keeps two decimal amount",
			amount:   10.25,
			expected: 10.25,
		},
		{
			name:     "rounds to two decimal places",
			amount:   10.005,
			expected: 10.01,
		},
		{
			name:     "rounds repeating fraction",
			amount:   1.0 / 3.0,
			expected: 0.33,
		},
		{
			name:     "accepts zero",
			amount:   0,
			expected: 0,
		},
		{
			name:     "accepts negative amount",
			amount:   -4.999,
			expected: -5,
		},
		{
			name:        "rejects NaN",
			amount:      math.NaN(),
			expectError: true,
		},
		{
			name:        "rejects positive infinity",
			amount:      math.Inf(1),
			expectError: true,
		},
		{
			name:        "rejects negative infinity",
			amount:      math.Inf(-1),
			expectError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := New(tt.amount, currency.CurrencyUSD)
			if tt.expectError {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.Amount)
			assert.Equal(t, currency.CurrencyUSD, m.Currency)
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	m, err := Parse(25, "usd")
	require.NoError(t, err)
	assert.Equal(t, 25.0, m.Amount)
	assert.Equal(t, currency.CurrencyUSD, m.Currency)

	_, err = Parse(25, "BTC")
	require.ErrorIs(t, err, currency.ErrInvalidCurrency)
}

func TestAdd(t *testing.T) {
	t.Parallel()

	usd10, err := New(10.10, currency.CurrencyUSD)
	require.NoError(t, err)
	usd5, err := New(5.05, currency.CurrencyUSD)
	require.NoError(t, err)
	eur5, err := New(5, currency.CurrencyEUR)
	require.NoError(t, err)

	sum, err := usd10.Add(usd5)
	require.NoError(t, err)
	assert.Equal(t, 15.15, sum.Amount)
	assert.Equal(t, currency.CurrencyUSD, sum.Currency)

	_, err = usd10.Add(eur5)
	require.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMultiply(t *testing.T) {
	t.Parallel()

	price, err := New(10.10, currency.CurrencyUSD)
	require.NoError(t, err)

	total, err := price.Multiply(3)
	require.NoError(t, err)
	assert.Equal(t, 30.3, total.Amount)

	_, err = price.Multiply(math.NaN())
	require.ErrorIs(t, err, ErrInvalidMultiplier)
}

func TestEquals(t *testing.T) {
	t.Parallel()

	a, err := New(10, currency.CurrencyUSD)
	require.NoError(t, err)
	b, err := New(10, currency.CurrencyUSD)
	require.NoError(t, err)
	c, err := New(10, currency.CurrencyEUR)
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
}
