package dto

import "time"

// OrderItemRequest is one requested line item.
type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest describes a new order payload.
type CreateOrderRequest struct {
	PatientID int64              `json:"patientId"`
	Kind      string             `json:"kind"`
	Items     []OrderItemRequest `json:"items"`
}

// StatusRequest moves an order to a target status. The payment fields are
// consulted only when the target is "paid".
type StatusRequest struct {
	Status          string  `json:"status"`
	AmountPaid      float64 `json:"amountPaid,omitempty"`
	DiscountType    string  `json:"discountType,omitempty"`
	DiscountPercent float64 `json:"discountPercent,omitempty"`
}

// RemarksRequest moves an order along the preparation axis.
type RemarksRequest struct {
	Remarks string `json:"remarks"`
}

// RefundRequest reverses a paid order.
type RefundRequest struct {
	Reason string `json:"reason"`
}

// OrderItemResponse is one order line.
type OrderItemResponse struct {
	ProductID int64   `json:"productId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// OrderResponse represents an order in API responses.
type OrderResponse struct {
	ID           int64               `json:"id"`
	PatientID    int64               `json:"patientId"`
	Kind         string              `json:"kind"`
	Status       string              `json:"status"`
	Remarks      string              `json:"remarks"`
	Items        []OrderItemResponse `json:"items,omitempty"`
	Subtotal     float64             `json:"subtotal"`
	CreatedAt    time.Time           `json:"createdAt"`
	PreparedAt   *time.Time          `json:"preparedAt,omitempty"`
	DispensedAt  *time.Time          `json:"dispensedAt,omitempty"`
	PaidAt       *time.Time          `json:"paidAt,omitempty"`
	RefundedAt   *time.Time          `json:"refundedAt,omitempty"`
	RefundReason *string             `json:"refundReason,omitempty"`
}
