package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"ordersvc/internal/dal/postgres"
	"ordersvc/internal/service/models/event"
	"ordersvc/internal/service/models/outbox"
)

// OutboxRepository implements the outbox event sink and the dispatcher's
// claim operations for PostgreSQL. It never opens its own transaction;
// the connection it is constructed with decides the atomicity scope.
type OutboxRepository struct {
	conn postgres.Querier
}

// NewOutboxRepository creates a new outbox repository.
func NewOutboxRepository(conn postgres.Querier) *OutboxRepository {
	return &OutboxRepository{
		conn: conn,
	}
}

// Append inserts one outbox row per event, in call order. Zero events
// is an idempotent no-op.
func (r *OutboxRepository) Append(ctx context.Context, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}

	now := time.Now().UTC()

	insert := sq.Insert("outbox").
		Columns("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at").
		PlaceholderFormat(sq.Dollar)
	for _, e := range events {
		msg, err := encodeEvent(e, now)
		if err != nil {
			return err
		}

		insert = insert.Values(
			msg.ID,
			msg.AggregateType,
			msg.AggregateID,
			msg.EventType,
			msg.Payload,
			msg.CreatedAt,
		)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build outbox insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to insert outbox messages: %w", err)
	}

	return nil
}

// ClaimPending selects up to limit undelivered rows in insertion order.
// Ordering by the serial position column keeps rows appended in one
// transaction in their append order; their created_at values are
// identical. FOR UPDATE SKIP LOCKED excludes rows claimed by a
// concurrent dispatcher instead of blocking on them, so replicas
// partition the backlog without contending.
func (r *OutboxRepository) ClaimPending(ctx context.Context, limit int) ([]outbox.Message, error) {
	query, args, err := sq.Select("id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at").
		From("outbox").
		Where(sq.Eq{"published_at": nil}).
		OrderBy("position ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build outbox claim query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to claim outbox messages: %w", err)
	}
	defer rows.Close()

	var messages []outbox.Message
	for rows.Next() {
		var msg outbox.Message
		err := rows.Scan(
			&msg.ID,
			&msg.AggregateType,
			&msg.AggregateID,
			&msg.EventType,
			&msg.Payload,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan outbox message: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outbox messages: %w", err)
	}

	return messages, nil
}

// MarkPublished sets the delivery timestamp on a claimed row.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id uuid.UUID, publishedAt time.Time) error {
	query, args, err := sq.Update("outbox").
		Set("published_at", publishedAt).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build outbox update query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark outbox message published: %w", err)
	}

	return nil
}
