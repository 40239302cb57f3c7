package order

import (
	"errors"
	"math"
	"strings"
	"time"

	"ordersvc/internal/service/models/currency"
	"ordersvc/internal/service/models/event"
	"ordersvc/internal/service/models/money"
	"ordersvc/internal/service/models/orderitem"
	"ordersvc/internal/service/models/quantity"
	"ordersvc/internal/service/models/sku"
)

var (
	ErrInvalidOrderID    = errors.New("order id must be a non-empty string")
	ErrInvalidCustomerID = errors.New("customer id must be a non-empty string")
)

// Order is the aggregate root for a customer order. It owns its line
// items, keyed by SKU (one line item per SKU, quantities merge), and
// accumulates domain events as a side effect of every state mutation.
//
// An Order instance is not safe for concurrent use; callers must not
// share one instance across concurrent operations.
type Order struct {
	id         string
	customerID string
	createdAt  time.Time

	items    map[sku.SKU]orderitem.OrderItem
	skuOrder []sku.SKU

	events []event.Event
}

// New creates an order, validates both identifiers and records the
// creation event followed by a totals recalculation event.
func New(id, customerID string, createdAt time.Time, items ...orderitem.OrderItem) (*Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidOrderID
	}

	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}

	o := newOrder(id, customerID, createdAt, items)

	o.record(event.OrderCreated{OrderID: id, CustomerID: customerID, At: createdAt})
	o.recalculateTotals(createdAt)

	return o, nil
}

// Restore rebuilds an order from persisted state without recording any
// domain events. Used by repositories only.
func Restore(id, customerID string, createdAt time.Time, items []orderitem.OrderItem) (*Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrInvalidOrderID
	}

	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, ErrInvalidCustomerID
	}

	return newOrder(id, customerID, createdAt, items), nil
}

func newOrder(id, customerID string, createdAt time.Time, items []orderitem.OrderItem) *Order {
	o := &Order{
		id:         id,
		customerID: customerID,
		createdAt:  createdAt,
		items:      make(map[sku.SKU]orderitem.OrderItem, len(items)),
	}

	for _, item := range items {
		o.put(item)
	}

	return o
}

func (o *Order) ID() string           { return o.id }
func (o *Order) CustomerID() string   { return o.customerID }
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// AddItem merges the quantity into an existing line item for the same
// SKU or inserts a new one. It records an item-added event carrying the
// delta passed in, then a totals-recalculated event, both stamped with
// the caller's timestamp.
func (o *Order) AddItem(s sku.SKU, qty quantity.Quantity, unitPrice money.Money, at time.Time) {
	if existing, ok := o.items[s]; ok {
		o.items[s] = existing.AddQuantity(qty)
	} else {
		o.put(orderitem.New(s, qty, unitPrice))
	}

	o.record(event.ItemAdded{
		OrderID:   o.id,
		SKU:       s,
		Quantity:  qty,
		UnitPrice: unitPrice,
		At:        at,
	})
	o.recalculateTotals(at)
}

// Items returns the line items in insertion order.
func (o *Order) Items() []orderitem.OrderItem {
	items := make([]orderitem.OrderItem, 0, len(o.skuOrder))
	for _, s := range o.skuOrder {
		items = append(items, o.items[s])
	}

	return items
}

// TotalsByCurrency recomputes order totals from the current line items,
// summing unit price times quantity per currency and rounding each
// currency bucket to two decimal places.
func (o *Order) TotalsByCurrency() map[currency.Currency]float64 {
	totals := make(map[currency.Currency]float64)
	for _, s := range o.skuOrder {
		item := o.items[s]
		cur := item.UnitPrice.Currency
		totals[cur] = round2(totals[cur] + item.UnitPrice.Amount*float64(item.Quantity.Int()))
	}

	return totals
}

// PullDomainEvents returns every event recorded since construction or
// since the previous pull, then clears the buffer.
func (o *Order) PullDomainEvents() []event.Event {
	events := o.events
	o.events = nil

	return events
}

func (o *Order) put(item orderitem.OrderItem) {
	if _, ok := o.items[item.SKU]; !ok {
		o.skuOrder = append(o.skuOrder, item.SKU)
	}
	o.items[item.SKU] = item
}

func (o *Order) record(e event.Event) {
	o.events = append(o.events, e)
}

func (o *Order) recalculateTotals(at time.Time) {
	o.record(event.TotalsRecalculated{
		OrderID: o.id,
		Totals:  o.TotalsByCurrency(),
		At:      at,
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
