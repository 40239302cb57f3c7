package ioutboxrepo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ordersvc/internal/service/models/event"
	"ordersvc/internal/service/models/outbox"
)

// IOutboxRepository defines the outbox write and delivery operations.
// Implementations are bound to a single transactional connection by the
// unit of work, which is what makes Append atomic with the aggregate
// write and a claim-deliver-mark cycle atomic per batch.
type IOutboxRepository interface {
	// Append inserts one outbox row per event. Appending zero events
	// is a no-op.
	Append(ctx context.Context, events []event.Event) error

	// ClaimPending claims up to limit undelivered rows in insertion
	// order, skipping rows locked by concurrent claimants.
	ClaimPending(ctx context.Context, limit int) ([]outbox.Message, error)

	// MarkPublished sets the delivery timestamp on a claimed row.
	MarkPublished(ctx context.Context, id uuid.UUID, publishedAt time.Time) error
}
