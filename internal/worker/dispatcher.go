package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/polvex/pharmatrack/internal/adapter/audit"
	"github.com/polvex/pharmatrack/internal/domain/model"
	"github.com/polvex/pharmatrack/internal/domain/repository"
)

// AuditDispatcher persists audit events and forwards them to the external
// collector off the request path. Emit never blocks; when the queue is full
// the event is dropped with a warning.
type AuditDispatcher struct {
	repo     repository.AuditRepository
	notifier audit.Notifier
	workers  int
	logger   *slog.Logger

	jobs   chan model.AuditEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewAuditDispatcher constructs the dispatcher worker pool.
func NewAuditDispatcher(repo repository.AuditRepository, notifier audit.Notifier, queueSize, workers int, logger *slog.Logger) *AuditDispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &AuditDispatcher{
		repo:     repo,
		notifier: notifier,
		workers:  workers,
		logger:   logger,
		jobs:     make(chan model.AuditEvent, queueSize),
	}
}

// Emit queues an event for background delivery.
func (d *AuditDispatcher) Emit(event model.AuditEvent) {
	select {
	case d.jobs <- event:
	default:
		d.logger.Warn("audit queue full, event dropped",
			slog.String("action", event.Action),
			slog.Int64("entity_id", event.EntityID))
	}
}

// Start launches background delivery workers.
func (d *AuditDispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop drains queued events and waits for workers to finish.
func (d *AuditDispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *AuditDispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain()
			return
		case event, ok := <-d.jobs:
			if !ok {
				return
			}
			d.handle(event)
		}
	}
}

// drain flushes whatever is still queued at shutdown.
func (d *AuditDispatcher) drain() {
	for {
		select {
		case event := <-d.jobs:
			d.handle(event)
		default:
			return
		}
	}
}

func (d *AuditDispatcher) handle(event model.AuditEvent) {
	ctx := context.Background()
	if err := d.repo.Append(ctx, event); err != nil {
		d.logger.Error("audit append failed",
			slog.String("action", event.Action),
			slog.String("error", err.Error()))
	}
	if err := d.notifier.Notify(ctx, event); err != nil {
		d.logger.Error("audit notify failed",
			slog.String("action", event.Action),
			slog.String("error", err.Error()))
	}
}
