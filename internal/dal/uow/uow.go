package uow

import (
	"context"
	"fmt"

	"ordersvc/internal/dal/interfaces/iorderrepo"
	"ordersvc/internal/dal/interfaces/ioutboxrepo"
	"ordersvc/internal/dal/postgres"
	orderrepo "ordersvc/internal/dal/repositories/order/postgres"
	outboxrepo "ordersvc/internal/dal/repositories/outbox/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories are the data access objects handed to a unit of work
// callback. Every repository is bound to the same transactional
// connection, which is what makes the aggregate write and the outbox
// append one atomic operation from the database's point of view.
type Repositories struct {
	Orders iorderrepo.IOrderRepository
	Outbox ioutboxrepo.IOutboxRepository
}

// UnitOfWork runs a callback against transaction-scoped repositories.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error
}

type pgUnitOfWork struct {
	pool *pgxpool.Pool
}

// NewPgUnitOfWork creates a PostgreSQL-backed unit of work.
func NewPgUnitOfWork(client *postgres.Client) UnitOfWork {
	return &pgUnitOfWork{pool: client.Pool()}
}

// Do begins a transaction, invokes fn with repositories bound to it,
// commits on success and rolls back on any failure. The connection is
// released in every outcome.
func (u *pgUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	// Rollback after a successful commit is a no-op; this also releases
	// the connection when fn panics.
	defer tx.Rollback(ctx)

	repos := Repositories{
		Orders: orderrepo.NewPostgresOrderRepository(tx),
		Outbox: outboxrepo.NewOutboxRepository(tx),
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type memoryUnitOfWork struct {
	repos Repositories
}

// NewMemoryUnitOfWork wraps fixed repositories without transactional
// semantics. Used with the memory storage driver and in tests.
func NewMemoryUnitOfWork(orders iorderrepo.IOrderRepository, outbox ioutboxrepo.IOutboxRepository) UnitOfWork {
	return &memoryUnitOfWork{
		repos: Repositories{Orders: orders, Outbox: outbox},
	}
}

func (u *memoryUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	return fn(ctx, u.repos)
}
