package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordersvc/internal/service/models/event"
)

// capturingQuerier records the SQL handed to it so tests can assert on
// the generated queries without a live database.
type capturingQuerier struct {
	execSQL   []string
	execArgs  [][]any
	querySQL  string
	queryArgs []any
}

func (q *capturingQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.execSQL = append(q.execSQL, sql)
	q.execArgs = append(q.execArgs, args)

	return pgconn.CommandTag{}, nil
}

func (q *capturingQuerier) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.querySQL = sql
	q.queryArgs = args

	return emptyRows{}, nil
}

func (q *capturingQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

type emptyRows struct{}

func (emptyRows) Close()                                       {}
func (emptyRows) Err() error                                   { return nil }
func (emptyRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (emptyRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (emptyRows) Next() bool                                   { return false }
func (emptyRows) Scan(...any) error                            { return nil }
func (emptyRows) Values() ([]any, error)                       { return nil, nil }
func (emptyRows) RawValues() [][]byte                          { return nil }
func (emptyRows) Conn() *pgx.Conn                              { return nil }

func TestClaimPendingQueryShape(t *testing.T) {
	t.Parallel()

	conn := &capturingQuerier{}
	repo := NewOutboxRepository(conn)

	_, err := repo.ClaimPending(context.Background(), 50)
	require.NoError(t, err)

	assert.Contains(t, conn.querySQL, "published_at IS NULL")
	assert.Contains(t, conn.querySQL, "ORDER BY position ASC", "claim order must use the serial position, created_at ties within a batch")
	assert.Contains(t, conn.querySQL, "LIMIT 50")
	assert.Contains(t, conn.querySQL, "FOR UPDATE SKIP LOCKED")
}

func TestAppendInsertsInCallOrder(t *testing.T) {
	t.Parallel()

	conn := &capturingQuerier{}
	repo := NewOutboxRepository(conn)

	at := time.Date(2026, time.August, 28, 10, 0, 0, 0, time.UTC)
	err := repo.Append(context.Background(), []event.Event{
		event.OrderCreated{OrderID: "ORDER-001", CustomerID: "CUSTOMER-123", At: at},
		event.TotalsRecalculated{OrderID: "ORDER-001", At: at},
	})
	require.NoError(t, err)

	require.Len(t, conn.execSQL, 1)
	assert.Contains(t, conn.execSQL[0], "INSERT INTO outbox")

	// Six columns per row; event_type is the fourth.
	args := conn.execArgs[0]
	require.Len(t, args, 12)
	assert.Equal(t, event.NameOrderCreated, args[3])
	assert.Equal(t, event.NameTotalsRecalculated, args[9])
}

func TestAppendZeroEventsIsNoOp(t *testing.T) {
	t.Parallel()

	conn := &capturingQuerier{}
	repo := NewOutboxRepository(conn)

	require.NoError(t, repo.Append(context.Background(), nil))
	assert.Empty(t, conn.execSQL)
	assert.Empty(t, conn.querySQL)
}
