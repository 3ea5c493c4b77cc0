package audit

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polvex/pharmatrack/internal/config"
)

// Module exposes the audit notifier implementation to fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newNotifier(p notifierParams) (Notifier, error) {
	if p.Config.AuditWebhookAddress == "" {
		return NopNotifier{}, nil
	}
	return NewHTTPNotifier(p.Config.AuditWebhookAddress, p.Logger)
}
