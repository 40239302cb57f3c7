package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/viper"

	"ordersvc/internal/dal/uow"
	"ordersvc/internal/service/models/outbox"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultBatchSize    = 50
)

// Processor delivers one outbox message. A non-nil return causes the
// whole containing batch to be rolled back and retried on a later
// drain cycle, so processors must be idempotent or consumers must
// deduplicate by outbox message id.
type Processor func(ctx context.Context, msg outbox.Message) error

// Worker polls the outbox table and delivers undelivered messages.
//
// Each batch runs in its own transaction: rows are claimed with a
// locking read that skips rows held by concurrent workers, delivered
// one by one, marked published, and committed together. Multiple
// worker replicas can therefore run against the same table without
// coordinating outside the database.
type Worker struct {
	work         uow.UnitOfWork
	processor    Processor
	pollInterval time.Duration
	batchSize    int

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	done    chan struct{}
}

// NewWorker creates a new outbox worker. Non-positive configuration
// values fall back to the defaults (batch 50, interval 5s).
func NewWorker(work uow.UnitOfWork, processor Processor) *Worker {
	pollIntervalSeconds := viper.GetInt("outbox.poll_interval_seconds")
	pollInterval := time.Duration(pollIntervalSeconds) * time.Second
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}

	batchSize := viper.GetInt("outbox.batch_size")
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &Worker{
		work:         work,
		processor:    processor,
		pollInterval: pollInterval,
		batchSize:    batchSize,
	}
}

// Start transitions the worker to running and triggers an immediate
// drain cycle. Calling Start on a running worker is a no-op.
func (w *Worker) Start(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}

	w.running = true
	w.stopCh = make(chan struct{})
	w.done = make(chan struct{})

	go w.run(ctx)
}

// Stop prevents future drain cycles and waits for an in-flight batch
// to either commit or roll back. Calling Stop on a stopped worker is a
// no-op.
func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}

	w.running = false
	close(w.stopCh)
	done := w.done
	w.mu.Unlock()

	<-done
}

// run is the single drain loop goroutine; one goroutine per worker
// means drain cycles never overlap.
func (w *Worker) run(ctx context.Context) {
	defer close(w.done)

	slog.Info("Outbox worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		w.drain(ctx)

		timer := time.NewTimer(w.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Info("Outbox worker shutting down")

			return
		case <-w.stopCh:
			timer.Stop()
			slog.Info("Outbox worker stopped")

			return
		case <-timer.C:
		}
	}
}

// drain claims and processes batches until a batch comes back empty or
// a batch fails; failures are retried on the next cycle.
func (w *Worker) drain(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		default:
		}

		processed, err := w.processBatch(ctx)
		if err != nil {
			slog.Error("Outbox batch failed, will retry", "error", err)

			return
		}

		if processed == 0 {
			return
		}

		slog.Info("Outbox batch delivered", "count", processed)
	}
}

// processBatch claims, delivers and marks one batch inside a single
// transaction. Any delivery error rolls back the batch so none of its
// rows are marked published.
func (w *Worker) processBatch(ctx context.Context) (int, error) {
	var processed int

	err := w.work.Do(ctx, func(ctx context.Context, r uow.Repositories) error {
		messages, err := r.Outbox.ClaimPending(ctx, w.batchSize)
		if err != nil {
			return err
		}

		for _, msg := range messages {
			if err := w.processor(ctx, msg); err != nil {
				return fmt.Errorf("failed to deliver outbox message %s: %w", msg.ID, err)
			}

			if err := r.Outbox.MarkPublished(ctx, msg.ID, time.Now().UTC()); err != nil {
				return err
			}
		}

		processed = len(messages)

		return nil
	})
	if err != nil {
		return 0, err
	}

	return processed, nil
}
