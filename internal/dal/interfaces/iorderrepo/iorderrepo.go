package iorderrepo

import (
	"context"

	"ordersvc/internal/service/models/order"
)

// IOrderRepository persists and retrieves an order aggregate's full
// state. FindByID returns (nil, nil) when no order exists for the id.
type IOrderRepository interface {
	// Save writes the aggregate's current state, replacing any
	// previously stored line items.
	Save(ctx context.Context, o *order.Order) error

	// FindByID loads the aggregate with its line items.
	FindByID(ctx context.Context, id string) (*order.Order, error)
}
