package repository

import (
	"context"

	"github.com/polvex/pharmatrack/internal/domain/model"
)

// BatchRepository manages expiry-dated stock lots. Deduction and restoration
// happen inside payment/refund transactions, not through this interface.
type BatchRepository interface {
	Create(ctx context.Context, batch *model.ProductBatch) (*model.ProductBatch, error)
	ListByProduct(ctx context.Context, productID int64) ([]model.ProductBatch, error)
}
