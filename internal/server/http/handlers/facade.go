package handlers

import (
	"context"
	"time"

	"github.com/polvex/pharmatrack/internal/domain/model"
	"github.com/polvex/pharmatrack/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string, role model.Role) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (model.Actor, error)
}

// OrderFacade encapsulates order lifecycle operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, actor model.Actor, patientID int64, kind model.OrderKind, items []usecase.NewOrderItem) (*model.Order, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
	Orders(ctx context.Context) ([]model.Order, error)
	PatientOrders(ctx context.Context, patientID int64) ([]model.Order, error)
	ChangeStatus(ctx context.Context, actor model.Actor, orderID int64, target model.OrderStatus) (*model.Order, error)
	ChangeRemarks(ctx context.Context, actor model.Actor, orderID int64, target model.OrderRemarks) (*model.Order, error)
	RefundOrder(ctx context.Context, actor model.Actor, orderID int64, reason string) (*model.Order, error)
	AddPatient(ctx context.Context, fullName, ward string) (*model.Patient, error)
}

// PaymentFacade provides settlement operations.
type PaymentFacade interface {
	SettlePayment(ctx context.Context, actor model.Actor, orderIDs []int64, tendered float64, discount model.DiscountType, customPercent float64) (*model.Payment, error)
	OrderPayment(ctx context.Context, orderID int64) (*model.Payment, error)
}

// InventoryFacade provides catalog and stock operations.
type InventoryFacade interface {
	AddProduct(ctx context.Context, actor model.Actor, name string, unitPrice float64) (*model.Product, error)
	Products(ctx context.Context) ([]model.Product, error)
	ReceiveBatch(ctx context.Context, actor model.Actor, productID int64, quantity int, manufactured, expiry time.Time) (*model.ProductBatch, error)
	ProductBatches(ctx context.Context, productID int64) ([]usecase.BatchView, error)
}

// PharmacyFacade aggregates the full set of operations used across handlers.
type PharmacyFacade interface {
	AuthFacade
	OrderFacade
	PaymentFacade
	InventoryFacade
}
