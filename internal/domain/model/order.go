package model

import "time"

// OrderKind describes how an order entered the pharmacy.
type OrderKind string

const (
	OrderKindRegular   OrderKind = "REGULAR"
	OrderKindEmergency OrderKind = "EMERGENCY"
	OrderKindWalkIn    OrderKind = "WALK_IN"
	OrderKindMedtech   OrderKind = "MEDTECH_REQUEST"
)

// OrderStatus describes the payment/disposition lifecycle. Med-tech requests use
// the approval subset; all other kinds use the billing subset.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusForPayment OrderStatus = "for_payment"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusCanceled   OrderStatus = "canceled"
	OrderStatusRefunded   OrderStatus = "refunded"
	OrderStatusArchived   OrderStatus = "archived"

	OrderStatusPendingApproval OrderStatus = "pending_for_approval"
	OrderStatusApproved        OrderStatus = "approved"
	OrderStatusDeclined        OrderStatus = "declined"
)

// OrderRemarks is the preparation/dispensing sub-state, tracked on its own axis.
// Walk-in sales settle at the counter and carry no remarks.
type OrderRemarks string

const (
	RemarksNone      OrderRemarks = ""
	RemarksPreparing OrderRemarks = "preparing"
	RemarksPrepared  OrderRemarks = "prepared"
	RemarksDispensed OrderRemarks = "dispensed"

	RemarksProcessing OrderRemarks = "processing"
	RemarksReady      OrderRemarks = "ready"
	RemarksReleased   OrderRemarks = "released"
)

// OrderItem is a line item with the unit price copied at order time.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int
	UnitPrice float64
}

// Order describes a pharmacy request through its whole lifecycle.
type Order struct {
	ID          int64
	PatientID   int64
	Kind        OrderKind
	Status      OrderStatus
	Remarks     OrderRemarks
	Items       []OrderItem
	CreatedBy   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
	PreparedAt  *time.Time
	DispensedAt *time.Time
	PaidAt      *time.Time
	RefundedAt  *time.Time

	RefundReason *string
	RefundedBy   *int64
}

// Subtotal returns the VAT-inclusive total owed for the order, fixed at order time.
func (o *Order) Subtotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += float64(item.Quantity) * item.UnitPrice
	}
	return sum
}

// InitialState returns the status/remarks a freshly created order starts in.
// Emergency orders are dispensed before settlement is guaranteed, so they skip
// the pending confirmation step.
func InitialState(kind OrderKind) (OrderStatus, OrderRemarks) {
	switch kind {
	case OrderKindEmergency:
		return OrderStatusForPayment, RemarksPreparing
	case OrderKindWalkIn:
		return OrderStatusForPayment, RemarksNone
	case OrderKindMedtech:
		return OrderStatusPendingApproval, RemarksProcessing
	default:
		return OrderStatusPending, RemarksPreparing
	}
}

// ValidKind reports whether the kind belongs to the declared set.
func ValidKind(kind OrderKind) bool {
	switch kind {
	case OrderKindRegular, OrderKindEmergency, OrderKindWalkIn, OrderKindMedtech:
		return true
	}
	return false
}
