package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	domainErrors "github.com/polvex/pharmatrack/internal/domain/errors"
	"github.com/polvex/pharmatrack/internal/domain/model"
	"github.com/polvex/pharmatrack/internal/domain/repository"
)

// BatchView pairs a stock batch with its status derived at read time.
type BatchView struct {
	model.ProductBatch
	Status model.BatchStatus
}

// InventoryUseCase manages the product catalog and batch stock receipt.
// Deduction and restoration are owned by the payment/refund transactions.
type InventoryUseCase struct {
	batches  repository.BatchRepository
	products repository.ProductRepository
	window   time.Duration
	audit    AuditEmitter
}

// NewInventoryUseCase constructs InventoryUseCase. window is the near-expiry
// classification threshold.
func NewInventoryUseCase(batches repository.BatchRepository, products repository.ProductRepository, window time.Duration, audit AuditEmitter) *InventoryUseCase {
	return &InventoryUseCase{batches: batches, products: products, window: window, audit: audit}
}

// CreateProduct registers a sellable item with its current list price.
func (u *InventoryUseCase) CreateProduct(ctx context.Context, actor model.Actor, name string, unitPrice float64) (*model.Product, error) {
	if actor.Role != model.RolePharmacist {
		return nil, domainErrors.ErrInvalidTransition
	}
	name = strings.TrimSpace(name)
	if name == "" || unitPrice <= 0 {
		return nil, domainErrors.ErrValidation
	}
	return u.products.Create(ctx, name, unitPrice)
}

// Products lists the catalog.
func (u *InventoryUseCase) Products(ctx context.Context) ([]model.Product, error) {
	return u.products.List(ctx)
}

// ReceiveBatch records delivered stock as a new expiry-dated batch.
func (u *InventoryUseCase) ReceiveBatch(ctx context.Context, actor model.Actor, productID int64, quantity int, manufactured, expiry time.Time) (*model.ProductBatch, error) {
	if actor.Role != model.RolePharmacist {
		return nil, domainErrors.ErrInvalidTransition
	}
	if quantity <= 0 || !expiry.After(manufactured) {
		return nil, domainErrors.ErrValidation
	}
	if _, err := u.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	batch, err := u.batches.Create(ctx, &model.ProductBatch{
		ProductID:       productID,
		Quantity:        quantity,
		ManufactureDate: manufactured,
		ExpiryDate:      expiry,
	})
	if err != nil {
		return nil, err
	}

	u.audit.Emit(model.AuditEvent{
		Action:      "batch_received",
		EntityType:  "product_batch",
		EntityID:    batch.ID,
		Description: fmt.Sprintf("%d units of product %d, expires %s", quantity, productID, expiry.Format("2006-01-02")),
		ActorID:     actor.ID,
		Timestamp:   time.Now(),
	})

	return batch, nil
}

// ProductBatches lists a product's batches with statuses derived against the
// configured expiring window.
func (u *InventoryUseCase) ProductBatches(ctx context.Context, productID int64) ([]BatchView, error) {
	if _, err := u.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	batches, err := u.batches.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	views := make([]BatchView, 0, len(batches))
	for _, b := range batches {
		views = append(views, BatchView{ProductBatch: b, Status: model.ComputeBatchStatus(b, now, u.window)})
	}
	return views, nil
}
