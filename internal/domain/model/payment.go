package model

import "time"

// DiscountType selects the discount rule applied at settlement.
type DiscountType string

const (
	DiscountNone   DiscountType = "NONE"
	DiscountPWD    DiscountType = "PWD"
	DiscountSenior DiscountType = "SENIOR"
	DiscountCustom DiscountType = "CUSTOM"
)

// VATExempt reports whether the discount type removes VAT entirely.
// PWD and senior-citizen discounts are statutory: fixed rate, VAT-exempt.
func (d DiscountType) VATExempt() bool {
	return d == DiscountPWD || d == DiscountSenior
}

// ValidDiscountType reports whether the value belongs to the declared set.
func ValidDiscountType(d DiscountType) bool {
	switch d {
	case DiscountNone, DiscountPWD, DiscountSenior, DiscountCustom:
		return true
	}
	return false
}

// Payment is an immutable settlement record covering one or more orders of a
// single patient.
type Payment struct {
	ID              int64
	Reference       string
	OrderIDs        []int64
	AmountPaid      float64
	DiscountType    DiscountType
	DiscountPercent float64
	DiscountAmount  float64
	VATAmount       float64
	TotalDue        float64
	Change          float64
	ProcessedBy     int64
	ProcessedAt     time.Time
}
