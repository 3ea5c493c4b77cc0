package dto

import "time"

// SubmitPaymentRequest settles one or more orders in a single payment.
// discountAmount is accepted for contract compatibility but recomputed
// server-side; the client-sent value is never trusted.
type SubmitPaymentRequest struct {
	OrderIDs        []int64 `json:"orderIds"`
	AmountPaid      float64 `json:"amountPaid"`
	DiscountType    string  `json:"discountType"`
	DiscountPercent float64 `json:"discountPercent,omitempty"`
	DiscountAmount  float64 `json:"discountAmount,omitempty"`
}

// SubmitPaymentResponse reports the outcome of a combined settlement.
type SubmitPaymentResponse struct {
	Reference       string    `json:"reference"`
	OrderIDs        []int64   `json:"orderIds"`
	TotalAmountPaid float64   `json:"totalAmountPaid"`
	PaymentsCreated int       `json:"paymentsCreated"`
	DiscountType    string    `json:"discountType"`
	DiscountPercent float64   `json:"discountPercent"`
	DiscountAmount  float64   `json:"discountAmount"`
	VATAmount       float64   `json:"vatAmount"`
	TotalDue        float64   `json:"totalDue"`
	Change          float64   `json:"change"`
	ProcessedAt     time.Time `json:"processedAt"`
}
