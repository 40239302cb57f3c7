package inmemory

import (
	"context"
	"sync"
	"time"

	"ordersvc/internal/service/models/order"
	"ordersvc/internal/service/models/orderitem"
)

type snapshot struct {
	customerID string
	createdAt  time.Time
	items      []orderitem.OrderItem
}

// InMemoryOrderRepository keeps order state in process memory. It is
// used by the memory storage driver and by tests; events written on
// this path are not durable.
type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]snapshot
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{
		orders: make(map[string]snapshot),
	}
}

func (r *InMemoryOrderRepository) Save(_ context.Context, o *order.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[o.ID()] = snapshot{
		customerID: o.CustomerID(),
		createdAt:  o.CreatedAt(),
		items:      o.Items(),
	}

	return nil
}

func (r *InMemoryOrderRepository) FindByID(_ context.Context, id string) (*order.Order, error) {
	r.mu.RLock()
	snap, ok := r.orders[id]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	return order.Restore(id, snap.customerID, snap.createdAt, snap.items)
}

// Len reports the number of stored orders. Testing helper.
func (r *InMemoryOrderRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.orders)
}
