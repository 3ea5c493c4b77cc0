package audit

import (
	"testing"

	"github.com/polvex/pharmatrack/internal/config"
)

func TestNewNotifierUsesConfig(t *testing.T) {
	notifier, err := newNotifier(notifierParams{
		Config: &config.Config{AuditWebhookAddress: "http://example.com"},
		Logger: testLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := notifier.(*HTTPNotifier); !ok {
		t.Fatalf("expected HTTP notifier, got %T", notifier)
	}
}

func TestNewNotifierFallsBackToNop(t *testing.T) {
	notifier, err := newNotifier(notifierParams{
		Config: &config.Config{},
		Logger: testLogger(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := notifier.(NopNotifier); !ok {
		t.Fatalf("expected nop notifier, got %T", notifier)
	}
}

func TestNewNotifierRejectsBadURL(t *testing.T) {
	if _, err := newNotifier(notifierParams{
		Config: &config.Config{AuditWebhookAddress: "://bad"},
		Logger: testLogger(),
	}); err == nil {
		t.Fatal("expected error for invalid webhook address")
	}
}
