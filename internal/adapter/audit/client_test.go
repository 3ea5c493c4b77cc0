package audit

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/polvex/pharmatrack/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestNewHTTPNotifierValidatesURL(t *testing.T) {
	if _, err := NewHTTPNotifier("://bad-url", testLogger()); err == nil {
		t.Fatal("expected error for invalid url")
	}
	if _, err := NewHTTPNotifier("/relative", testLogger()); err == nil {
		t.Fatal("expected error for relative url")
	}
}

func TestHTTPNotifierPostsEvent(t *testing.T) {
	var got payload
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	notifier, err := NewHTTPNotifier(server.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create notifier: %v", err)
	}

	ts := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	err = notifier.Notify(context.Background(), model.AuditEvent{
		Action:      "order_paid",
		EntityType:  "order",
		EntityID:    10,
		Description: "settled by payment ref-1",
		ActorID:     5,
		Timestamp:   ts,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if path != "/api/audit/events" {
		t.Fatalf("unexpected path %q", path)
	}
	if got.Action != "order_paid" || got.EntityType != "order" || got.EntityID != 10 || got.ActorID != 5 {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if !got.Timestamp.Equal(ts) {
		t.Fatalf("unexpected timestamp: %v", got.Timestamp)
	}
}

func TestHTTPNotifierReportsServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier, err := NewHTTPNotifier(server.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create notifier: %v", err)
	}
	if err := notifier.Notify(context.Background(), model.AuditEvent{Action: "order_created"}); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestHTTPNotifierRespectsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Drain the body so the server watches the connection and cancels
		// r.Context() when the client gives up; otherwise Close deadlocks.
		io.Copy(io.Discard, r.Body)
		<-r.Context().Done()
	}))
	defer server.Close()

	notifier, err := NewHTTPNotifier(server.URL, testLogger())
	if err != nil {
		t.Fatalf("failed to create notifier: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := notifier.Notify(ctx, model.AuditEvent{Action: "order_created"}); err == nil {
		t.Fatal("expected context deadline error")
	}
}

func TestNopNotifier(t *testing.T) {
	if err := (NopNotifier{}).Notify(context.Background(), model.AuditEvent{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
