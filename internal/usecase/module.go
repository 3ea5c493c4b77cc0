package usecase

import (
	"go.uber.org/fx"

	"github.com/polvex/pharmatrack/internal/config"
	"github.com/polvex/pharmatrack/internal/domain/repository"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewOrderUseCase,
	NewPaymentUseCase,
	newInventoryUseCase,
)

type inventoryParams struct {
	fx.In

	Batches  repository.BatchRepository
	Products repository.ProductRepository
	Config   *config.Config
	Audit    AuditEmitter
}

func newInventoryUseCase(p inventoryParams) *InventoryUseCase {
	return NewInventoryUseCase(p.Batches, p.Products, p.Config.ExpiringWindow(), p.Audit)
}
