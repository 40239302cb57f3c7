package orderitem

import (
	"ordersvc/internal/service/models/money"
	"ordersvc/internal/service/models/quantity"
	"ordersvc/internal/service/models/sku"
)

// OrderItem is an immutable line item within an order. Quantity changes
// produce a new value rather than mutating in place.
type OrderItem struct {
	SKU       sku.SKU           `json:"sku"`
	Quantity  quantity.Quantity `json:"quantity"`
	UnitPrice money.Money       `json:"unitPrice"`
}

func New(s sku.SKU, qty quantity.Quantity, unitPrice money.Money) OrderItem {
	return OrderItem{
		SKU:       s,
		Quantity:  qty,
		UnitPrice: unitPrice,
	}
}

// AddQuantity returns a copy of the item with the extra quantity merged in.
func (i OrderItem) AddQuantity(extra quantity.Quantity) OrderItem {
	return OrderItem{
		SKU:       i.SKU,
		Quantity:  i.Quantity.Add(extra),
		UnitPrice: i.UnitPrice,
	}
}

// Total is the line total, unit price times quantity.
func (i OrderItem) Total() (money.Money, error) {
	return i.UnitPrice.Multiply(float64(i.Quantity.Int()))
}
