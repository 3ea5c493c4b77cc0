package test

import (
	"context"
	"time"

	domainErrors "github.com/polvex/pharmatrack/internal/domain/errors"
	"github.com/polvex/pharmatrack/internal/domain/model"
	"github.com/polvex/pharmatrack/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateOrderFn   func(context.Context, model.Actor, int64, model.OrderKind, []usecase.NewOrderItem) (*model.Order, error)
	OrderFn         func(context.Context, int64) (*model.Order, error)
	OrdersFn        func(context.Context) ([]model.Order, error)
	PatientOrdersFn func(context.Context, int64) ([]model.Order, error)
	ChangeStatusFn  func(context.Context, model.Actor, int64, model.OrderStatus) (*model.Order, error)
	ChangeRemarksFn func(context.Context, model.Actor, int64, model.OrderRemarks) (*model.Order, error)
	RefundOrderFn   func(context.Context, model.Actor, int64, string) (*model.Order, error)
	AddPatientFn    func(context.Context, string, string) (*model.Patient, error)
}

func (s OrderFacadeStub) CreateOrder(ctx context.Context, actor model.Actor, patientID int64, kind model.OrderKind, items []usecase.NewOrderItem) (*model.Order, error) {
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, actor, patientID, kind, items)
	}
	status, remarks := model.InitialState(kind)
	return &model.Order{ID: 1, PatientID: patientID, Kind: kind, Status: status, Remarks: remarks}, nil
}

func (s OrderFacadeStub) Order(ctx context.Context, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return &model.Order{ID: id, Kind: model.OrderKindRegular, Status: model.OrderStatusPending, Remarks: model.RemarksPreparing}, nil
}

func (s OrderFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return []model.Order{{ID: 1}}, nil
}

func (s OrderFacadeStub) PatientOrders(ctx context.Context, patientID int64) ([]model.Order, error) {
	if s.PatientOrdersFn != nil {
		return s.PatientOrdersFn(ctx, patientID)
	}
	return []model.Order{{ID: 1, PatientID: patientID}}, nil
}

func (s OrderFacadeStub) ChangeStatus(ctx context.Context, actor model.Actor, orderID int64, target model.OrderStatus) (*model.Order, error) {
	if s.ChangeStatusFn != nil {
		return s.ChangeStatusFn(ctx, actor, orderID, target)
	}
	return &model.Order{ID: orderID, Status: target}, nil
}

func (s OrderFacadeStub) ChangeRemarks(ctx context.Context, actor model.Actor, orderID int64, target model.OrderRemarks) (*model.Order, error) {
	if s.ChangeRemarksFn != nil {
		return s.ChangeRemarksFn(ctx, actor, orderID, target)
	}
	return &model.Order{ID: orderID, Remarks: target}, nil
}

func (s OrderFacadeStub) RefundOrder(ctx context.Context, actor model.Actor, orderID int64, reason string) (*model.Order, error) {
	if s.RefundOrderFn != nil {
		return s.RefundOrderFn(ctx, actor, orderID, reason)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusRefunded, RefundReason: &reason}, nil
}

func (s OrderFacadeStub) AddPatient(ctx context.Context, fullName, ward string) (*model.Patient, error) {
	if s.AddPatientFn != nil {
		return s.AddPatientFn(ctx, fullName, ward)
	}
	return &model.Patient{ID: 1, FullName: fullName, Ward: ward}, nil
}

// PaymentFacadeStub simulates settlement operations.
type PaymentFacadeStub struct {
	SettleFn  func(context.Context, model.Actor, []int64, float64, model.DiscountType, float64) (*model.Payment, error)
	ByOrderFn func(context.Context, int64) (*model.Payment, error)
	Payment   *model.Payment
}

func (s PaymentFacadeStub) SettlePayment(ctx context.Context, actor model.Actor, orderIDs []int64, tendered float64, discount model.DiscountType, customPercent float64) (*model.Payment, error) {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, actor, orderIDs, tendered, discount, customPercent)
	}
	if s.Payment != nil {
		return s.Payment, nil
	}
	return &model.Payment{ID: 1, Reference: "ref", OrderIDs: orderIDs, AmountPaid: tendered, DiscountType: discount, ProcessedAt: time.Unix(0, 0)}, nil
}

func (s PaymentFacadeStub) OrderPayment(ctx context.Context, orderID int64) (*model.Payment, error) {
	if s.ByOrderFn != nil {
		return s.ByOrderFn(ctx, orderID)
	}
	if s.Payment != nil {
		return s.Payment, nil
	}
	return nil, domainErrors.ErrNotFound
}

// InventoryFacadeStub simulates catalog and stock operations.
type InventoryFacadeStub struct {
	AddProductFn     func(context.Context, model.Actor, string, float64) (*model.Product, error)
	ProductsFn       func(context.Context) ([]model.Product, error)
	ReceiveBatchFn   func(context.Context, model.Actor, int64, int, time.Time, time.Time) (*model.ProductBatch, error)
	ProductBatchesFn func(context.Context, int64) ([]usecase.BatchView, error)
}

func (s InventoryFacadeStub) AddProduct(ctx context.Context, actor model.Actor, name string, unitPrice float64) (*model.Product, error) {
	if s.AddProductFn != nil {
		return s.AddProductFn(ctx, actor, name, unitPrice)
	}
	return &model.Product{ID: 1, Name: name, UnitPrice: unitPrice}, nil
}

func (s InventoryFacadeStub) Products(ctx context.Context) ([]model.Product, error) {
	if s.ProductsFn != nil {
		return s.ProductsFn(ctx)
	}
	return []model.Product{{ID: 1, Name: "Paracetamol", UnitPrice: 10}}, nil
}

func (s InventoryFacadeStub) ReceiveBatch(ctx context.Context, actor model.Actor, productID int64, quantity int, manufactured, expiry time.Time) (*model.ProductBatch, error) {
	if s.ReceiveBatchFn != nil {
		return s.ReceiveBatchFn(ctx, actor, productID, quantity, manufactured, expiry)
	}
	return &model.ProductBatch{ID: 1, ProductID: productID, Quantity: quantity, ManufactureDate: manufactured, ExpiryDate: expiry}, nil
}

func (s InventoryFacadeStub) ProductBatches(ctx context.Context, productID int64) ([]usecase.BatchView, error) {
	if s.ProductBatchesFn != nil {
		return s.ProductBatchesFn(ctx, productID)
	}
	return []usecase.BatchView{}, nil
}

// PharmacyFacadeStub aggregates facade dependencies for HTTP layer tests.
type PharmacyFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	PaymentFacadeStub
	InventoryFacadeStub
}
