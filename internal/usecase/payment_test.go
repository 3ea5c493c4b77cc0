package usecase_test

import (
	"context"
	"errors"
	. "github.com/polvex/pharmatrack/internal/usecase"
	"testing"

	domainErrors "github.com/polvex/pharmatrack/internal/domain/errors"
	"github.com/polvex/pharmatrack/internal/domain/model"
	testhelpers "github.com/polvex/pharmatrack/internal/test"
)

func TestCalculateNoDiscount(t *testing.T) {
	b, err := Calculate(1120, 1200, model.DiscountNone, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.VATExclusive != 1000 {
		t.Fatalf("expected VAT-exclusive 1000, got %v", b.VATExclusive)
	}
	if b.VATAmount != 120 {
		t.Fatalf("expected VAT 120, got %v", b.VATAmount)
	}
	if b.DiscountAmount != 0 || b.DiscountPercent != 0 {
		t.Fatalf("expected no discount, got %+v", b)
	}
	if b.TotalDue != 1120 {
		t.Fatalf("expected total 1120, got %v", b.TotalDue)
	}
	if b.Change != 80 {
		t.Fatalf("expected change 80, got %v", b.Change)
	}
}

func TestCalculateExemptDiscounts(t *testing.T) {
	for _, discount := range []model.DiscountType{model.DiscountPWD, model.DiscountSenior} {
		b, err := Calculate(1120, 800, discount, 0)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", discount, err)
		}
		if b.VATAmount != 0 {
			t.Fatalf("%s: expected zero VAT, got %v", discount, b.VATAmount)
		}
		if b.DiscountAmount != 200 {
			t.Fatalf("%s: expected discount 200, got %v", discount, b.DiscountAmount)
		}
		if b.DiscountPercent != 20 {
			t.Fatalf("%s: expected 20 percent, got %v", discount, b.DiscountPercent)
		}
		if b.TotalDue != 800 {
			t.Fatalf("%s: expected total 800, got %v", discount, b.TotalDue)
		}
		if b.Change != 0 {
			t.Fatalf("%s: expected no change, got %v", discount, b.Change)
		}
	}
}

func TestCalculateCustomDiscountKeepsVAT(t *testing.T) {
	b, err := Calculate(1120, 1008, model.DiscountCustom, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.DiscountAmount != 112 {
		t.Fatalf("expected discount 112, got %v", b.DiscountAmount)
	}
	if b.VATAmount != 120 {
		t.Fatalf("expected VAT 120, got %v", b.VATAmount)
	}
	if b.TotalDue != 1008 {
		t.Fatalf("expected total 1008, got %v", b.TotalDue)
	}
}

func TestCalculateValidation(t *testing.T) {
	cases := []struct {
		name     string
		subtotal float64
		tendered float64
		discount model.DiscountType
		percent  float64
		want     error
	}{
		{"zero subtotal", 0, 100, model.DiscountNone, 0, domainErrors.ErrValidation},
		{"unknown discount", 100, 100, model.DiscountType("LOYALTY"), 0, domainErrors.ErrValidation},
		{"custom percent zero", 100, 100, model.DiscountCustom, 0, domainErrors.ErrValidation},
		{"custom percent above cap", 100, 100, model.DiscountCustom, 101, domainErrors.ErrValidation},
		{"short tender", 1120, 1000, model.DiscountNone, 0, domainErrors.ErrInsufficientPayment},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Calculate(tc.subtotal, tc.tendered, tc.discount, tc.percent); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestCalculateExactTenderAccepted(t *testing.T) {
	b, err := Calculate(1120, 1120, model.DiscountNone, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.Change != 0 {
		t.Fatalf("expected zero change, got %v", b.Change)
	}
}

func TestCalculateDiscountMonotonicity(t *testing.T) {
	prev := 0.0
	for percent := 1.0; percent <= 100; percent++ {
		b, err := Calculate(1120, 1200, model.DiscountCustom, percent)
		if err != nil {
			t.Fatalf("percent %v: unexpected error: %v", percent, err)
		}
		if percent > 1 && b.DiscountAmount < prev {
			t.Fatalf("discount shrank at %v percent: %v < %v", percent, b.DiscountAmount, prev)
		}
		prev = b.DiscountAmount
	}
}

func paymentFixtures() (*testhelpers.OrderRepositoryStub, *testhelpers.PaymentRepositoryStub, *testhelpers.EmitterStub, *PaymentUseCase) {
	orders := &testhelpers.OrderRepositoryStub{Orders: []model.Order{
		{ID: 1, PatientID: 7, Kind: model.OrderKindRegular, Status: model.OrderStatusForPayment,
			Items: []model.OrderItem{{ProductID: 1, Quantity: 2, UnitPrice: 280}}},
		{ID: 2, PatientID: 7, Kind: model.OrderKindRegular, Status: model.OrderStatusForPayment,
			Items: []model.OrderItem{{ProductID: 2, Quantity: 1, UnitPrice: 560}}},
		{ID: 3, PatientID: 8, Kind: model.OrderKindRegular, Status: model.OrderStatusForPayment,
			Items: []model.OrderItem{{ProductID: 1, Quantity: 1, UnitPrice: 100}}},
		{ID: 4, PatientID: 7, Kind: model.OrderKindRegular, Status: model.OrderStatusPending,
			Items: []model.OrderItem{{ProductID: 1, Quantity: 1, UnitPrice: 100}}},
	}}
	payments := &testhelpers.PaymentRepositoryStub{}
	emitter := &testhelpers.EmitterStub{}
	uc := NewPaymentUseCase(orders, payments, emitter)
	return orders, payments, emitter, uc
}

func TestPaymentSubmitCombinesOrders(t *testing.T) {
	_, payments, emitter, uc := paymentFixtures()
	cashier := model.Actor{ID: 5, Role: model.RoleCashier}

	// Orders 1 and 2 total 1120 VAT-inclusive.
	payment, err := uc.Submit(context.Background(), cashier, []int64{1, 2}, 1200, model.DiscountNone, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.Reference == "" {
		t.Fatal("expected payment reference")
	}
	if payment.TotalDue != 1120 || payment.Change != 80 || payment.VATAmount != 120 {
		t.Fatalf("unexpected breakdown: %+v", payment)
	}
	if len(payments.Created) != 1 {
		t.Fatalf("expected one payment record, got %d", len(payments.Created))
	}
	if len(payments.Created[0].OrderIDs) != 2 {
		t.Fatalf("expected both orders linked, got %v", payments.Created[0].OrderIDs)
	}
	// One event per order plus the payment event.
	if len(emitter.Events) != 3 {
		t.Fatalf("expected 3 audit events, got %d", len(emitter.Events))
	}
}

func TestPaymentSubmitValidation(t *testing.T) {
	_, _, _, uc := paymentFixtures()
	cashier := model.Actor{ID: 5, Role: model.RoleCashier}

	if _, err := uc.Submit(context.Background(), cashier, nil, 100, model.DiscountNone, 0); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for empty set, got %v", err)
	}
	if _, err := uc.Submit(context.Background(), cashier, []int64{1, 1}, 1200, model.DiscountNone, 0); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for duplicates, got %v", err)
	}
	if _, err := uc.Submit(context.Background(), cashier, []int64{1, 3}, 1200, model.DiscountNone, 0); !errors.Is(err, domainErrors.ErrValidation) {
		t.Fatalf("expected validation error for mixed patients, got %v", err)
	}
	nurse := model.Actor{ID: 2, Role: model.RoleNurse}
	if _, err := uc.Submit(context.Background(), nurse, []int64{1}, 1200, model.DiscountNone, 0); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected role rejection, got %v", err)
	}
	if _, err := uc.Submit(context.Background(), cashier, []int64{4}, 1200, model.DiscountNone, 0); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected status rejection for pending order, got %v", err)
	}
	if _, err := uc.Submit(context.Background(), cashier, []int64{99}, 1200, model.DiscountNone, 0); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPaymentSubmitShortTenderLeavesNoTrace(t *testing.T) {
	_, payments, emitter, uc := paymentFixtures()
	cashier := model.Actor{ID: 5, Role: model.RoleCashier}

	if _, err := uc.Submit(context.Background(), cashier, []int64{1, 2}, 1000, model.DiscountNone, 0); !errors.Is(err, domainErrors.ErrInsufficientPayment) {
		t.Fatalf("expected insufficient payment, got %v", err)
	}
	if len(payments.Created) != 0 {
		t.Fatal("no payment should be recorded on short tender")
	}
	if len(emitter.Events) != 0 {
		t.Fatal("no audit events should be emitted on failure")
	}
}

func TestPaymentSubmitStorageConflictPropagates(t *testing.T) {
	orders, payments, emitter, uc := paymentFixtures()
	_ = orders
	payments.Err = domainErrors.ErrConcurrencyConflict
	cashier := model.Actor{ID: 5, Role: model.RoleCashier}

	if _, err := uc.Submit(context.Background(), cashier, []int64{1}, 1200, model.DiscountNone, 0); !errors.Is(err, domainErrors.ErrConcurrencyConflict) {
		t.Fatalf("expected conflict passthrough, got %v", err)
	}
	if len(emitter.Events) != 0 {
		t.Fatal("no audit events should be emitted when the commit fails")
	}
}

func TestPaymentByOrder(t *testing.T) {
	_, payments, _, uc := paymentFixtures()
	payments.Payment = &model.Payment{ID: 9, Reference: "ref-9", OrderIDs: []int64{1}}

	payment, err := uc.ByOrder(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payment.ID != 9 {
		t.Fatalf("unexpected payment: %+v", payment)
	}
}
