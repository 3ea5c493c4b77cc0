package repository

import (
	"context"

	"github.com/polvex/pharmatrack/internal/domain/model"
)

// PaymentRepository persists settlement records. CreateCombined commits the
// payment row, every referenced order's for_payment->paid transition, and the
// batch allocations for their line items as one transaction; any failure rolls
// back the whole set.
type PaymentRepository interface {
	CreateCombined(ctx context.Context, payment *model.Payment) (*model.Payment, error)
	GetByOrder(ctx context.Context, orderID int64) (*model.Payment, error)
}
