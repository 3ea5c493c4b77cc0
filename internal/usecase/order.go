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

// minRefundReasonLen is the shortest acceptable refund justification.
const minRefundReasonLen = 5

type statusEdge struct {
	From model.OrderStatus
	To   model.OrderStatus
}

type remarksEdge struct {
	From model.OrderRemarks
	To   model.OrderRemarks
}

// Legal status transitions for billed orders (regular, emergency, walk-in) and
// the role allowed to trigger each edge. for_payment->paid is listed for the
// payment coordinator's role check; it is never walked directly.
var billingStatusEdges = map[statusEdge]model.Role{
	{model.OrderStatusPending, model.OrderStatusForPayment}: model.RolePharmacist,
	{model.OrderStatusPending, model.OrderStatusCanceled}:   model.RoleNurse,
	{model.OrderStatusForPayment, model.OrderStatusPaid}:    model.RoleCashier,
	{model.OrderStatusPaid, model.OrderStatusRefunded}:      model.RoleCashier,
	{model.OrderStatusCanceled, model.OrderStatusArchived}:  model.RolePharmacist,
}

// Med-tech requests run on a parallel approval axis; declined is terminal.
var medtechStatusEdges = map[statusEdge]model.Role{
	{model.OrderStatusPendingApproval, model.OrderStatusApproved}: model.RoleManager,
	{model.OrderStatusPendingApproval, model.OrderStatusDeclined}: model.RoleManager,
}

var billingRemarksEdges = map[remarksEdge]model.Role{
	{model.RemarksPreparing, model.RemarksPrepared}: model.RolePharmacist,
	{model.RemarksPrepared, model.RemarksDispensed}: model.RolePharmacist,
}

var medtechRemarksEdges = map[remarksEdge]model.Role{
	{model.RemarksProcessing, model.RemarksReady}: model.RoleMedtech,
	{model.RemarksReady, model.RemarksReleased}:   model.RoleMedtech,
}

var orderCreatorRole = map[model.OrderKind]model.Role{
	model.OrderKindRegular:   model.RoleNurse,
	model.OrderKindEmergency: model.RoleNurse,
	model.OrderKindWalkIn:    model.RoleCashier,
	model.OrderKindMedtech:   model.RoleMedtech,
}

func statusEdges(kind model.OrderKind) map[statusEdge]model.Role {
	if kind == model.OrderKindMedtech {
		return medtechStatusEdges
	}
	return billingStatusEdges
}

func remarksEdges(kind model.OrderKind) map[remarksEdge]model.Role {
	if kind == model.OrderKindMedtech {
		return medtechRemarksEdges
	}
	return billingRemarksEdges
}

// NewOrderItem is a requested line item; the unit price is copied from the
// product catalog at creation time.
type NewOrderItem struct {
	ProductID int64
	Quantity  int
}

// OrderUseCase owns the order lifecycle: creation, status/remarks transitions,
// and refunds. Every transition commit is conditioned on the status/remarks
// read beforehand, so a raced order surfaces ErrConcurrencyConflict instead of
// being overwritten.
type OrderUseCase struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	patients repository.PatientRepository
	audit    AuditEmitter
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, products repository.ProductRepository, patients repository.PatientRepository, audit AuditEmitter) *OrderUseCase {
	return &OrderUseCase{orders: orders, products: products, patients: patients, audit: audit}
}

// Create registers a new order in the initial state its kind dictates.
func (u *OrderUseCase) Create(ctx context.Context, actor model.Actor, patientID int64, kind model.OrderKind, items []NewOrderItem) (*model.Order, error) {
	if !model.ValidKind(kind) || len(items) == 0 {
		return nil, domainErrors.ErrValidation
	}
	if orderCreatorRole[kind] != actor.Role {
		return nil, domainErrors.ErrInvalidTransition
	}

	if _, err := u.patients.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	orderItems := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, domainErrors.ErrValidation
		}
		product, err := u.products.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		orderItems = append(orderItems, model.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.UnitPrice,
		})
	}

	status, remarks := model.InitialState(kind)
	order := &model.Order{
		PatientID: patientID,
		Kind:      kind,
		Status:    status,
		Remarks:   remarks,
		Items:     orderItems,
		CreatedBy: actor.ID,
	}

	created, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	u.audit.Emit(model.AuditEvent{
		Action:      "order_created",
		EntityType:  "order",
		EntityID:    created.ID,
		Description: fmt.Sprintf("%s order created at %s", created.Kind, created.Status),
		ActorID:     actor.ID,
		Timestamp:   time.Now(),
	})

	return created, nil
}

// Get fetches one order with its line items.
func (u *OrderUseCase) Get(ctx context.Context, id int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// List returns all orders, newest first.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}

// ListByPatient returns one patient's orders, newest first.
func (u *OrderUseCase) ListByPatient(ctx context.Context, patientID int64) ([]model.Order, error) {
	return u.orders.ListByPatient(ctx, patientID)
}

// TransitionStatus moves an order along the status graph. Payment and refund
// edges carry extra obligations and go through SubmitPayment/Refund instead.
func (u *OrderUseCase) TransitionStatus(ctx context.Context, actor model.Actor, orderID int64, target model.OrderStatus) (*model.Order, error) {
	if target == model.OrderStatusPaid || target == model.OrderStatusRefunded {
		return nil, domainErrors.ErrInvalidTransition
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	role, ok := statusEdges(order.Kind)[statusEdge{From: order.Status, To: target}]
	if !ok || role != actor.Role {
		return nil, domainErrors.ErrInvalidTransition
	}

	if err := u.orders.UpdateStatus(ctx, orderID, order.Status, target); err != nil {
		return nil, err
	}

	u.audit.Emit(model.AuditEvent{
		Action:      "status_changed",
		EntityType:  "order",
		EntityID:    orderID,
		Description: fmt.Sprintf("status %s -> %s", order.Status, target),
		ActorID:     actor.ID,
		Timestamp:   time.Now(),
	})

	order.Status = target
	return order, nil
}

// TransitionRemarks moves an order along the preparation axis. Dispensing is
// gated on settlement: the conditional update requires status == paid, and a
// gate rejection mutates nothing.
func (u *OrderUseCase) TransitionRemarks(ctx context.Context, actor model.Actor, orderID int64, target model.OrderRemarks) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Kind == model.OrderKindWalkIn {
		return nil, domainErrors.ErrInvalidTransition
	}

	role, ok := remarksEdges(order.Kind)[remarksEdge{From: order.Remarks, To: target}]
	if !ok || role != actor.Role {
		return nil, domainErrors.ErrInvalidTransition
	}

	requirePaid := target == model.RemarksDispensed
	if err := u.orders.UpdateRemarks(ctx, orderID, order.Remarks, target, requirePaid); err != nil {
		return nil, err
	}

	u.audit.Emit(model.AuditEvent{
		Action:      "remarks_changed",
		EntityType:  "order",
		EntityID:    orderID,
		Description: fmt.Sprintf("remarks %s -> %s", order.Remarks, target),
		ActorID:     actor.ID,
		Timestamp:   time.Now(),
	})

	order.Remarks = target
	return order, nil
}

// Refund reverses a paid order: the status flips to refunded and the exact
// batch quantities deducted at payment time are restored, in one transaction.
func (u *OrderUseCase) Refund(ctx context.Context, actor model.Actor, orderID int64, reason string) (*model.Order, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < minRefundReasonLen {
		return nil, domainErrors.ErrValidation
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	role, ok := statusEdges(order.Kind)[statusEdge{From: order.Status, To: model.OrderStatusRefunded}]
	if !ok || role != actor.Role {
		return nil, domainErrors.ErrInvalidTransition
	}

	if err := u.orders.Refund(ctx, orderID, reason, actor.ID); err != nil {
		return nil, err
	}

	u.audit.Emit(model.AuditEvent{
		Action:      "order_refunded",
		EntityType:  "order",
		EntityID:    orderID,
		Description: fmt.Sprintf("refunded: %s", reason),
		ActorID:     actor.ID,
		Timestamp:   time.Now(),
	})

	order.Status = model.OrderStatusRefunded
	order.RefundReason = &reason
	order.RefundedBy = &actor.ID
	return order, nil
}

// RegisterPatient adds a patient record orders can be charged to.
func (u *OrderUseCase) RegisterPatient(ctx context.Context, fullName, ward string) (*model.Patient, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return nil, domainErrors.ErrValidation
	}
	return u.patients.Create(ctx, fullName, ward)
}

// IsTerminalStatus reports whether no edge leaves the given status.
func IsTerminalStatus(kind model.OrderKind, status model.OrderStatus) bool {
	for edge := range statusEdges(kind) {
		if edge.From == status {
			return false
		}
	}
	return true
}
