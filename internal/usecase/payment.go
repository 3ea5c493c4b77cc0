package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polvex/pharmatrack/internal/domain/errors"
	"github.com/polvex/pharmatrack/internal/domain/model"
	"github.com/polvex/pharmatrack/internal/domain/repository"
)

const (
	// VATRate is the value-added tax rate embedded in all listed prices.
	VATRate = 0.12
	// exemptDiscountRate is the statutory PWD/senior-citizen discount.
	exemptDiscountRate = 0.20
)

// Breakdown is the settlement math for one or many combined orders.
type Breakdown struct {
	Subtotal        float64
	VATExclusive    float64
	VATAmount       float64
	DiscountPercent float64
	DiscountAmount  float64
	TotalDue        float64
	Change          float64
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Calculate computes VAT, discount, total due, and change for a VAT-inclusive
// subtotal. PWD/SENIOR discounts are fully VAT-exempt and apply their fixed
// rate to the VAT-exclusive amount; CUSTOM discounts apply to the inclusive
// subtotal and leave VAT untouched. No side effect occurs on failure.
func Calculate(subtotal, tendered float64, discount model.DiscountType, customPercent float64) (*Breakdown, error) {
	if subtotal <= 0 || !model.ValidDiscountType(discount) {
		return nil, domainErrors.ErrValidation
	}
	if discount == model.DiscountCustom && (customPercent <= 0 || customPercent > 100) {
		return nil, domainErrors.ErrValidation
	}

	vatExclusive := round2(subtotal / (1 + VATRate))
	exempt := discount.VATExempt()

	var rate float64
	switch {
	case discount == model.DiscountCustom:
		rate = customPercent / 100
	case exempt:
		rate = exemptDiscountRate
	}

	base := subtotal
	if exempt {
		base = vatExclusive
	}
	discountAmount := round2(base * rate)

	var vatAmount float64
	if !exempt {
		vatAmount = round2(vatExclusive * VATRate)
	}

	var totalDue float64
	if exempt {
		totalDue = round2(vatExclusive - discountAmount)
	} else {
		totalDue = round2(subtotal - discountAmount)
	}

	if tendered < totalDue {
		return nil, domainErrors.ErrInsufficientPayment
	}

	return &Breakdown{
		Subtotal:        round2(subtotal),
		VATExclusive:    vatExclusive,
		VATAmount:       vatAmount,
		DiscountPercent: round2(rate * 100),
		DiscountAmount:  discountAmount,
		TotalDue:        totalDue,
		Change:          round2(tendered - totalDue),
	}, nil
}

// PaymentUseCase groups one patient's for_payment orders into a single atomic
// settlement: one Payment record, every order marked paid, and stock deducted
// from batches, all in one transaction.
type PaymentUseCase struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	audit    AuditEmitter
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(orders repository.OrderRepository, payments repository.PaymentRepository, audit AuditEmitter) *PaymentUseCase {
	return &PaymentUseCase{orders: orders, payments: payments, audit: audit}
}

// Submit settles the selected orders. The pre-checks here are advisory; the
// storage commit re-validates every order's status conditionally, so a raced
// order aborts the whole set with ErrConcurrencyConflict.
func (u *PaymentUseCase) Submit(ctx context.Context, actor model.Actor, orderIDs []int64, tendered float64, discount model.DiscountType, customPercent float64) (*model.Payment, error) {
	if len(orderIDs) == 0 {
		return nil, domainErrors.ErrValidation
	}
	if actor.Role != model.RoleCashier {
		return nil, domainErrors.ErrInvalidTransition
	}

	seen := make(map[int64]struct{}, len(orderIDs))
	var subtotal float64
	var patientID int64
	for i, id := range orderIDs {
		if _, dup := seen[id]; dup {
			return nil, domainErrors.ErrValidation
		}
		seen[id] = struct{}{}

		order, err := u.orders.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if order.Status != model.OrderStatusForPayment {
			return nil, domainErrors.ErrInvalidTransition
		}
		if i == 0 {
			patientID = order.PatientID
		} else if order.PatientID != patientID {
			return nil, domainErrors.ErrValidation
		}
		subtotal += order.Subtotal()
	}

	breakdown, err := Calculate(subtotal, tendered, discount, customPercent)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		Reference:       uuid.NewString(),
		OrderIDs:        orderIDs,
		AmountPaid:      round2(tendered),
		DiscountType:    discount,
		DiscountPercent: breakdown.DiscountPercent,
		DiscountAmount:  breakdown.DiscountAmount,
		VATAmount:       breakdown.VATAmount,
		TotalDue:        breakdown.TotalDue,
		Change:          breakdown.Change,
		ProcessedBy:     actor.ID,
	}

	created, err := u.payments.CreateCombined(ctx, payment)
	if err != nil {
		return nil, err
	}

	for _, id := range orderIDs {
		u.audit.Emit(model.AuditEvent{
			Action:      "order_paid",
			EntityType:  "order",
			EntityID:    id,
			Description: fmt.Sprintf("settled by payment %s", created.Reference),
			ActorID:     actor.ID,
			Timestamp:   time.Now(),
		})
	}
	u.audit.Emit(model.AuditEvent{
		Action:      "payment_created",
		EntityType:  "payment",
		EntityID:    created.ID,
		Description: fmt.Sprintf("%s payment of %.2f for %d order(s)", created.DiscountType, created.TotalDue, len(orderIDs)),
		ActorID:     actor.ID,
		Timestamp:   time.Now(),
	})

	return created, nil
}

// ByOrder returns the payment that settled the given order.
func (u *PaymentUseCase) ByOrder(ctx context.Context, orderID int64) (*model.Payment, error) {
	return u.payments.GetByOrder(ctx, orderID)
}
