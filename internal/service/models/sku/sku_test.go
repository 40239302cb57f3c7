package sku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		expected    SKU
		expectError bool
	}{
		{
			name:     "keeps canonical value",
			input:    "SKU-ABC",
			expected: "SKU-ABC",
		},
		{
			name:     "uppercases lowercase input",
			input:    "sku-abc",
			expected: "SKU-ABC",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "  SKU_1  ",
			expected: "SKU_1",
		},
		{
			name:     "accepts digits dashes and underscores",
			input:    "A1_B2-C3",
			expected: "A1_B2-C3",
		},
		{
			name:        "rejects empty string",
			input:       "",
			expectError: true,
		},
		{
			name:        "rejects whitespace only",
			input:       "   ",
			expectError: true,
		},
		{
			name:        "rejects inner spaces",
			input:       "SKU ABC",
			expectError: true,
		},
		{
			name:        "rejects punctuation",
			input:       "SKU.ABC!",
			expectError: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := New(tt.input)
			if tt.expectError {
				require.ErrorIs(t, err, ErrInvalidSKU)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
		})
	}
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValid("sku-xyz"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("not a sku"))
}
