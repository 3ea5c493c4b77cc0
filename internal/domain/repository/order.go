package repository

import (
	"context"

	"github.com/polvex/pharmatrack/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. Status and
// remarks updates are conditional on the previously observed value; a stale
// expectation surfaces as ErrConcurrencyConflict.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context) ([]model.Order, error)
	ListByPatient(ctx context.Context, patientID int64) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID int64, from, to model.OrderStatus) error
	UpdateRemarks(ctx context.Context, orderID int64, from, to model.OrderRemarks, requirePaid bool) error
	Refund(ctx context.Context, orderID int64, reason string, actorID int64) error
}
