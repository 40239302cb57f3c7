package outbox

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single outbox record. Rows are append-only: after
// creation only PublishedAt is ever set, and a nil PublishedAt marks the
// message as undelivered.
type Message struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
	PublishedAt   *time.Time
}
