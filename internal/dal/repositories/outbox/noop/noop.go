package noop

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ordersvc/internal/service/models/event"
	"ordersvc/internal/service/models/outbox"
)

// NoopOutboxRepository discards events. Paired with the in-memory order
// repository: only persisted state needs crash-safe event delivery, so
// the memory driver carries no outbox.
type NoopOutboxRepository struct{}

func NewNoopOutboxRepository() *NoopOutboxRepository {
	return &NoopOutboxRepository{}
}

func (*NoopOutboxRepository) Append(context.Context, []event.Event) error {
	return nil
}

func (*NoopOutboxRepository) ClaimPending(context.Context, int) ([]outbox.Message, error) {
	return nil, nil
}

func (*NoopOutboxRepository) MarkPublished(context.Context, uuid.UUID, time.Time) error {
	return nil
}
