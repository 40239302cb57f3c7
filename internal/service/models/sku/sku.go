package sku

import (
	"errors"
	"regexp"
	"strings"
)

var ErrInvalidSKU = errors.New("sku must be a non-empty string of letters, numbers, dashes or underscores")

var skuPattern = regexp.MustCompile(`^[A-Z0-9_-]+$`)

// SKU is a normalized product identifier. Values are trimmed and
// uppercased on construction.
type SKU string

func New(value string) (SKU, error) {
	prepared := strings.ToUpper(strings.TrimSpace(value))
	if prepared == "" || !skuPattern.MatchString(prepared) {
		return "", ErrInvalidSKU
	}

	return SKU(prepared), nil
}

// IsValid reports whether the raw value would normalize to a valid SKU.
func IsValid(value string) bool {
	_, err := New(value)
	return err == nil
}

func (s SKU) String() string {
	return string(s)
}
