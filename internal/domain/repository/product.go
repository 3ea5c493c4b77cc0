package repository

import (
	"context"

	"github.com/polvex/pharmatrack/internal/domain/model"
)

// ProductRepository describes persistence operations for sellable items.
type ProductRepository interface {
	Create(ctx context.Context, name string, unitPrice float64) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
}
