package usecase

import "github.com/polvex/pharmatrack/internal/domain/model"

// AuditEmitter receives committed transition events. Emission must never block
// or fail the originating command.
type AuditEmitter interface {
	Emit(event model.AuditEvent)
}

// NopEmitter discards events.
type NopEmitter struct{}

func (NopEmitter) Emit(model.AuditEvent) {}
