package repository

import (
	"context"

	"github.com/polvex/pharmatrack/internal/domain/model"
)

// PatientRepository describes persistence operations for patients.
type PatientRepository interface {
	Create(ctx context.Context, fullName, ward string) (*model.Patient, error)
	GetByID(ctx context.Context, id int64) (*model.Patient, error)
}
