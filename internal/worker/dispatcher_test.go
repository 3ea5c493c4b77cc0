package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/polvex/pharmatrack/internal/domain/model"
	testhelpers "github.com/polvex/pharmatrack/internal/test"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestAuditDispatcherDeliversEvents(t *testing.T) {
	repo := &testhelpers.AuditRepositoryStub{}
	notifier := &testhelpers.NotifierStub{}
	dispatcher := NewAuditDispatcher(repo, notifier, 8, 2, testLogger())

	dispatcher.Start(context.Background())
	defer dispatcher.Stop()

	for i := 0; i < 5; i++ {
		dispatcher.Emit(model.AuditEvent{Action: "order_created", EntityType: "order", EntityID: int64(i + 1)})
	}

	waitFor(t, func() bool { return len(repo.Recorded()) == 5 && len(notifier.Delivered()) == 5 })
}

func TestAuditDispatcherDrainsQueueOnStop(t *testing.T) {
	repo := &testhelpers.AuditRepositoryStub{}
	notifier := &testhelpers.NotifierStub{}
	dispatcher := NewAuditDispatcher(repo, notifier, 8, 1, testLogger())

	// Queue before any worker runs; Stop must still flush.
	for i := 0; i < 3; i++ {
		dispatcher.Emit(model.AuditEvent{Action: "status_changed", EntityType: "order", EntityID: int64(i + 1)})
	}
	dispatcher.Start(context.Background())
	dispatcher.Stop()

	if got := len(repo.Recorded()); got != 3 {
		t.Fatalf("expected 3 persisted events, got %d", got)
	}
}

func TestAuditDispatcherDropsWhenQueueFull(t *testing.T) {
	repo := &testhelpers.AuditRepositoryStub{}
	notifier := &testhelpers.NotifierStub{}
	dispatcher := NewAuditDispatcher(repo, notifier, 1, 1, testLogger())

	dispatcher.Emit(model.AuditEvent{Action: "order_created", EntityID: 1})
	dispatcher.Emit(model.AuditEvent{Action: "order_created", EntityID: 2})

	dispatcher.Start(context.Background())
	dispatcher.Stop()

	if got := len(repo.Recorded()); got != 1 {
		t.Fatalf("expected the overflow event to be dropped, got %d persisted", got)
	}
}

func TestAuditDispatcherSurvivesFailures(t *testing.T) {
	repo := &testhelpers.AuditRepositoryStub{Err: errors.New("db down")}
	notifier := &testhelpers.NotifierStub{Err: errors.New("collector down")}
	dispatcher := NewAuditDispatcher(repo, notifier, 4, 1, testLogger())

	dispatcher.Start(context.Background())
	dispatcher.Emit(model.AuditEvent{Action: "order_created", EntityID: 1})
	dispatcher.Stop()
}

func TestAuditDispatcherDefaults(t *testing.T) {
	dispatcher := NewAuditDispatcher(&testhelpers.AuditRepositoryStub{}, &testhelpers.NotifierStub{}, 0, 0, testLogger())
	if dispatcher.workers != 1 {
		t.Fatalf("expected one worker by default, got %d", dispatcher.workers)
	}
	if cap(dispatcher.jobs) != 1 {
		t.Fatalf("expected queue capacity 1, got %d", cap(dispatcher.jobs))
	}
}
