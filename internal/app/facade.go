package app

import (
	"context"
	"time"

	"github.com/polvex/pharmatrack/internal/domain/model"
	"github.com/polvex/pharmatrack/internal/usecase"
)

// PharmacyFacade aggregates the use cases behind one application surface.
type PharmacyFacade struct {
	auth      *usecase.AuthUseCase
	orders    *usecase.OrderUseCase
	payments  *usecase.PaymentUseCase
	inventory *usecase.InventoryUseCase
}

func NewPharmacyFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, payments *usecase.PaymentUseCase, inventory *usecase.InventoryUseCase) *PharmacyFacade {
	return &PharmacyFacade{auth: auth, orders: orders, payments: payments, inventory: inventory}
}

func (f *PharmacyFacade) Register(ctx context.Context, login, password string, role model.Role) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, role)
	return token, err
}

func (f *PharmacyFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *PharmacyFacade) ParseToken(token string) (model.Actor, error) {
	return f.auth.ParseToken(token)
}

func (f *PharmacyFacade) CreateOrder(ctx context.Context, actor model.Actor, patientID int64, kind model.OrderKind, items []usecase.NewOrderItem) (*model.Order, error) {
	return f.orders.Create(ctx, actor, patientID, kind, items)
}

func (f *PharmacyFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *PharmacyFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

func (f *PharmacyFacade) PatientOrders(ctx context.Context, patientID int64) ([]model.Order, error) {
	return f.orders.ListByPatient(ctx, patientID)
}

func (f *PharmacyFacade) ChangeStatus(ctx context.Context, actor model.Actor, orderID int64, target model.OrderStatus) (*model.Order, error) {
	return f.orders.TransitionStatus(ctx, actor, orderID, target)
}

func (f *PharmacyFacade) ChangeRemarks(ctx context.Context, actor model.Actor, orderID int64, target model.OrderRemarks) (*model.Order, error) {
	return f.orders.TransitionRemarks(ctx, actor, orderID, target)
}

func (f *PharmacyFacade) RefundOrder(ctx context.Context, actor model.Actor, orderID int64, reason string) (*model.Order, error) {
	return f.orders.Refund(ctx, actor, orderID, reason)
}

func (f *PharmacyFacade) SettlePayment(ctx context.Context, actor model.Actor, orderIDs []int64, tendered float64, discount model.DiscountType, customPercent float64) (*model.Payment, error) {
	return f.payments.Submit(ctx, actor, orderIDs, tendered, discount, customPercent)
}

func (f *PharmacyFacade) OrderPayment(ctx context.Context, orderID int64) (*model.Payment, error) {
	return f.payments.ByOrder(ctx, orderID)
}

func (f *PharmacyFacade) AddProduct(ctx context.Context, actor model.Actor, name string, unitPrice float64) (*model.Product, error) {
	return f.inventory.CreateProduct(ctx, actor, name, unitPrice)
}

func (f *PharmacyFacade) Products(ctx context.Context) ([]model.Product, error) {
	return f.inventory.Products(ctx)
}

func (f *PharmacyFacade) ReceiveBatch(ctx context.Context, actor model.Actor, productID int64, quantity int, manufactured, expiry time.Time) (*model.ProductBatch, error) {
	return f.inventory.ReceiveBatch(ctx, actor, productID, quantity, manufactured, expiry)
}

func (f *PharmacyFacade) ProductBatches(ctx context.Context, productID int64) ([]usecase.BatchView, error) {
	return f.inventory.ProductBatches(ctx, productID)
}

func (f *PharmacyFacade) AddPatient(ctx context.Context, fullName, ward string) (*model.Patient, error) {
	return f.orders.RegisterPatient(ctx, fullName, ward)
}
