package ordersvc

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"

	"ordersvc/internal/dal/interfaces/iorderrepo"
	"ordersvc/internal/dal/uow"
	"ordersvc/internal/service/models/apperrors"
	"ordersvc/internal/service/models/money"
	"ordersvc/internal/service/models/order"
	"ordersvc/internal/service/models/quantity"
	"ordersvc/internal/service/models/sku"
)

const defaultIDGenerationAttempts = 5

// pricingService quotes a unit price per SKU.
type pricingService interface {
	Quote(ctx context.Context, item sku.SKU) (money.Money, error)
}

// OrderService implements the order use cases. Every state change runs
// through the unit of work so the aggregate write and the outbox append
// commit atomically.
type OrderService struct {
	work       uow.UnitOfWork
	pricing    pricingService
	idAttempts int
	now        func() time.Time
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	idAttempts := viper.GetInt("order.id_generation_attempts")
	if idAttempts <= 0 {
		idAttempts = defaultIDGenerationAttempts
	}

	s := &OrderService{
		idAttempts: idAttempts,
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.work == nil || s.pricing == nil {
		panic("ordersvc: unit of work and pricing service are required")
	}

	return s
}

// WithUnitOfWork sets the unit of work for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWork(work uow.UnitOfWork) option {
	return func(s *OrderService) {
		s.work = work
	}
}

// WithPricingService sets the pricing service for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPricingService(pricing pricingService) option {
	return func(s *OrderService) {
		s.pricing = pricing
	}
}

// WithClock overrides the time source. Testing helper.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithClock(now func() time.Time) option {
	return func(s *OrderService) {
		s.now = now
	}
}

// CreateOrderItem is one requested line item.
type CreateOrderItem struct {
	SKU      string
	Quantity int
}

// CreateOrderParams is the input of CreateOrder. OrderID is optional;
// when empty a unique identifier is generated.
type CreateOrderParams struct {
	OrderID    string
	CustomerID string
	Items      []CreateOrderItem
}

// CreateOrder creates an order with its items, persists it and appends
// the recorded domain events to the outbox in one transaction.
func (s *OrderService) CreateOrder(ctx context.Context, params CreateOrderParams) (string, error) {
	if err := validateCreate(params); err != nil {
		return "", err
	}

	var orderID string

	err := s.work.Do(ctx, func(ctx context.Context, r uow.Repositories) error {
		id := strings.TrimSpace(params.OrderID)
		if id != "" {
			existing, err := r.Orders.FindByID(ctx, id)
			if err != nil {
				return err
			}
			if existing != nil {
				return apperrors.Conflict("order already exists")
			}
		} else {
			generated, err := s.generateUniqueOrderID(ctx, r.Orders)
			if err != nil {
				return err
			}
			id = generated
		}

		o, err := order.New(id, strings.TrimSpace(params.CustomerID), s.now())
		if err != nil {
			return apperrors.Validation(err.Error())
		}

		for _, item := range params.Items {
			if err := s.addItem(ctx, o, item.SKU, item.Quantity); err != nil {
				return err
			}
		}

		if err := r.Orders.Save(ctx, o); err != nil {
			return err
		}

		if err := r.Outbox.Append(ctx, o.PullDomainEvents()); err != nil {
			return err
		}

		orderID = o.ID()

		return nil
	})
	if err != nil {
		return "", err
	}

	slog.Info("Order created", "order_id", orderID, "customer_id", strings.TrimSpace(params.CustomerID))

	return orderID, nil
}

// AddItemParams is the input of AddItem.
type AddItemParams struct {
	OrderID  string
	SKU      string
	Quantity int
}

// AddItem merges an item into an existing order and appends the
// recorded events to the outbox in the same transaction as the state
// write.
func (s *OrderService) AddItem(ctx context.Context, params AddItemParams) error {
	if err := validateAddItem(params); err != nil {
		return err
	}

	err := s.work.Do(ctx, func(ctx context.Context, r uow.Repositories) error {
		o, err := r.Orders.FindByID(ctx, strings.TrimSpace(params.OrderID))
		if err != nil {
			return err
		}
		if o == nil {
			return apperrors.NotFound("order not found")
		}

		if err := s.addItem(ctx, o, params.SKU, params.Quantity); err != nil {
			return err
		}

		if err := r.Orders.Save(ctx, o); err != nil {
			return err
		}

		return r.Outbox.Append(ctx, o.PullDomainEvents())
	})
	if err != nil {
		return err
	}

	slog.Info("Order item added", "order_id", params.OrderID, "sku", params.SKU, "quantity", params.Quantity)

	return nil
}

// GetOrder loads one order with its items.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.Validation("orderId is required")
	}

	var found *order.Order

	err := s.work.Do(ctx, func(ctx context.Context, r uow.Repositories) error {
		o, err := r.Orders.FindByID(ctx, id)
		if err != nil {
			return err
		}
		found = o

		return nil
	})
	if err != nil {
		return nil, err
	}

	if found == nil {
		return nil, apperrors.NotFound("order not found")
	}

	return found, nil
}

// addItem normalizes one requested item, quotes its price and merges it
// into the aggregate.
func (s *OrderService) addItem(ctx context.Context, o *order.Order, rawSKU string, rawQuantity int) error {
	item, err := sku.New(rawSKU)
	if err != nil {
		return apperrors.Validationf("invalid sku %s", rawSKU)
	}

	qty, err := quantity.New(rawQuantity)
	if err != nil {
		return apperrors.Validationf("invalid quantity for sku %s", item)
	}

	price, err := s.pricing.Quote(ctx, item)
	if err != nil {
		return err
	}

	o.AddItem(item, qty, price, s.now())

	return nil
}

// generateUniqueOrderID draws candidate identifiers until one is free,
// giving up after the configured attempt count.
func (s *OrderService) generateUniqueOrderID(ctx context.Context, orders iorderrepo.IOrderRepository) (string, error) {
	for attempt := 0; attempt < s.idAttempts; attempt++ {
		candidate := uuid.New().String()

		existing, err := orders.FindByID(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}

	return "", apperrors.Conflict("unable to generate a unique order id")
}

func validateCreate(params CreateOrderParams) error {
	if strings.TrimSpace(params.CustomerID) == "" {
		return apperrors.Validation("customerId is required")
	}

	if len(params.Items) == 0 {
		return apperrors.Validation("at least one item is required")
	}

	for _, item := range params.Items {
		if !sku.IsValid(item.SKU) {
			return apperrors.Validationf("invalid sku %s", item.SKU)
		}

		if item.Quantity <= 0 {
			return apperrors.Validationf("invalid quantity for sku %s", item.SKU)
		}
	}

	return nil
}

func validateAddItem(params AddItemParams) error {
	if strings.TrimSpace(params.OrderID) == "" {
		return apperrors.Validation("orderId is required")
	}

	if !sku.IsValid(params.SKU) {
		return apperrors.Validation("invalid sku")
	}

	if params.Quantity <= 0 {
		return apperrors.Validation("invalid quantity")
	}

	return nil
}
