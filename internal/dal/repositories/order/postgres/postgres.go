package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"ordersvc/internal/dal/postgres"
	"ordersvc/internal/service/models/money"
	"ordersvc/internal/service/models/order"
	"ordersvc/internal/service/models/orderitem"
	"ordersvc/internal/service/models/quantity"
	"ordersvc/internal/service/models/sku"
)

// OrderDal represents the order row shape.
type OrderDal struct {
	Id         string
	CustomerId string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OrderItemDal represents the order_items row shape.
type OrderItemDal struct {
	Id        uuid.UUID
	OrderId   string
	Sku       string
	Quantity  int
	UnitPrice float64
	Currency  string
	CreatedAt time.Time
}

// ToModel converts an item row to the service layer line item.
func (d *OrderItemDal) ToModel() (orderitem.OrderItem, error) {
	s, err := sku.New(d.Sku)
	if err != nil {
		return orderitem.OrderItem{}, err
	}

	qty, err := quantity.New(d.Quantity)
	if err != nil {
		return orderitem.OrderItem{}, err
	}

	price, err := money.Parse(d.UnitPrice, d.Currency)
	if err != nil {
		return orderitem.OrderItem{}, err
	}

	return orderitem.New(s, qty, price), nil
}

type PostgresOrderRepository struct {
	conn postgres.Querier
}

func NewPostgresOrderRepository(conn postgres.Querier) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
	}
}

// Save upserts the order row and replaces its line items. Both writes go
// through the repository's connection, so inside a unit of work they
// share the caller's transaction.
func (r *PostgresOrderRepository) Save(ctx context.Context, o *order.Order) error {
	now := time.Now().UTC()

	query, args, err := sq.Insert("orders").
		Columns("id", "customer_id", "created_at", "updated_at").
		Values(o.ID(), o.CustomerID(), o.CreatedAt(), now).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			customer_id = EXCLUDED.customer_id,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build order upsert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to upsert order: %w", err)
	}

	query, args, err = sq.Delete("order_items").
		Where(sq.Eq{"order_id": o.ID()}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build order items delete query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete order items: %w", err)
	}

	items := o.Items()
	if len(items) == 0 {
		return nil
	}

	insert := sq.Insert("order_items").
		Columns("id", "order_id", "sku", "quantity", "unit_price", "currency", "created_at").
		PlaceholderFormat(sq.Dollar)
	for _, item := range items {
		insert = insert.Values(
			uuid.New(),
			o.ID(),
			item.SKU.String(),
			item.Quantity.Int(),
			item.UnitPrice.Amount,
			item.UnitPrice.Currency,
			now,
		)
	}

	query, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build order items insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert order items: %w", err)
	}

	return nil
}

// FindByID loads the aggregate with its line items, or (nil, nil) when
// the order does not exist.
func (r *PostgresOrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	query, args, err := sq.Select("id", "customer_id", "created_at", "updated_at").
		From("orders").
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order: %w", err)
	}
	defer rows.Close()

	var dal OrderDal
	found := false
	for rows.Next() {
		if err := rows.Scan(&dal.Id, &dal.CustomerId, &dal.CreatedAt, &dal.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		found = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	rows.Close()

	if !found {
		return nil, nil
	}

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}

	model, err := order.Restore(dal.Id, dal.CustomerId, dal.CreatedAt, items)
	if err != nil {
		return nil, fmt.Errorf("failed to restore order from row: %w", err)
	}

	return model, nil
}

func (r *PostgresOrderRepository) findItems(ctx context.Context, orderID string) ([]orderitem.OrderItem, error) {
	query, args, err := sq.Select("id", "order_id", "sku", "quantity", "unit_price", "currency", "created_at").
		From("order_items").
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("created_at ASC", "sku ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build order items select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.Sku,
			&dal.Quantity,
			&dal.UnitPrice,
			&dal.Currency,
			&dal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}

		item, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order item dal to model: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return items, nil
}
