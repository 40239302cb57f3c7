package quantity

import "errors"

var ErrInvalidQuantity = errors.New("quantity must be a positive integer greater than zero")

// Quantity is a strictly positive item count.
type Quantity int

func New(value int) (Quantity, error) {
	if value <= 0 {
		return 0, ErrInvalidQuantity
	}

	return Quantity(value), nil
}

func (q Quantity) Int() int {
	return int(q)
}

func (q Quantity) Add(other Quantity) Quantity {
	return q + other
}
