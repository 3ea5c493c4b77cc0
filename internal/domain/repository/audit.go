package repository

import (
	"context"

	"github.com/polvex/pharmatrack/internal/domain/model"
)

// AuditRepository appends transition events to the compliance trail.
type AuditRepository interface {
	Append(ctx context.Context, event model.AuditEvent) error
}
