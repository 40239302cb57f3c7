package event

import (
	"time"

	"ordersvc/internal/service/models/currency"
	"ordersvc/internal/service/models/money"
	"ordersvc/internal/service/models/quantity"
	"ordersvc/internal/service/models/sku"
)

const AggregateTypeOrder = "order"

const (
	NameOrderCreated       = "order.created"
	NameOrderItemAdded     = "order.item_added"
	NameTotalsRecalculated = "order.totals_recalculated"
)

// Event is a domain event recorded by an aggregate. The set of
// implementations is closed: OrderCreated, ItemAdded and
// TotalsRecalculated. The discriminant returned by Name is fixed at
// construction time.
type Event interface {
	Name() string
	AggregateType() string
	AggregateID() string
	OccurredOn() time.Time
}

// OrderCreated is recorded once when an order aggregate is created.
type OrderCreated struct {
	OrderID    string
	CustomerID string
	At         time.Time
}

func (e OrderCreated) Name() string          { return NameOrderCreated }
func (e OrderCreated) AggregateType() string { return AggregateTypeOrder }
func (e OrderCreated) AggregateID() string   { return e.OrderID }
func (e OrderCreated) OccurredOn() time.Time { return e.At }

// ItemAdded carries the delta that was added, not the merged line item.
type ItemAdded struct {
	OrderID   string
	SKU       sku.SKU
	Quantity  quantity.Quantity
	UnitPrice money.Money
	At        time.Time
}

func (e ItemAdded) Name() string          { return NameOrderItemAdded }
func (e ItemAdded) AggregateType() string { return AggregateTypeOrder }
func (e ItemAdded) AggregateID() string   { return e.OrderID }
func (e ItemAdded) OccurredOn() time.Time { return e.At }

// TotalsRecalculated carries the order totals per currency after a mutation.
type TotalsRecalculated struct {
	OrderID string
	Totals  map[currency.Currency]float64
	At      time.Time
}

func (e TotalsRecalculated) Name() string          { return NameTotalsRecalculated }
func (e TotalsRecalculated) AggregateType() string { return AggregateTypeOrder }
func (e TotalsRecalculated) AggregateID() string   { return e.OrderID }
func (e TotalsRecalculated) OccurredOn() time.Time { return e.At }
