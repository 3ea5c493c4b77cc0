package model

import (
	"sort"
	"time"

	domainErrors "github.com/polvex/pharmatrack/internal/domain/errors"
)

// BatchStatus is derived from quantity and expiry relative to now; it is never
// stored.
type BatchStatus string

const (
	BatchStatusActive   BatchStatus = "Active"
	BatchStatusExpiring BatchStatus = "Expiring"
	BatchStatusExpired  BatchStatus = "Expired"
	BatchStatusConsumed BatchStatus = "Consumed"
)

// ProductBatch is an expiry-dated stock lot of a single product.
type ProductBatch struct {
	ID              int64
	ProductID       int64
	Quantity        int
	ManufactureDate time.Time
	ExpiryDate      time.Time
	CreatedAt       time.Time
}

// ComputeBatchStatus derives the batch status at the given instant. A consumed
// batch stays consumed even when also past expiry.
func ComputeBatchStatus(b ProductBatch, now time.Time, expiringWindow time.Duration) BatchStatus {
	if b.Quantity == 0 {
		return BatchStatusConsumed
	}
	if !b.ExpiryDate.After(now) {
		return BatchStatusExpired
	}
	if b.ExpiryDate.Sub(now) <= expiringWindow {
		return BatchStatusExpiring
	}
	return BatchStatusActive
}

// BatchDebit records a quantity taken from one batch for one order, so a refund
// can return stock to exactly the batches it came from.
type BatchDebit struct {
	BatchID  int64
	Quantity int
}

// PlanAllocation selects batches first-expiring-first-out and returns the debits
// that satisfy the requested quantity. Expired and empty batches are never
// eligible. The plan is all-or-nothing: a shortfall returns ErrInsufficientStock
// and no debit.
func PlanAllocation(batches []ProductBatch, quantity int, now time.Time) ([]BatchDebit, error) {
	if quantity <= 0 {
		return nil, domainErrors.ErrValidation
	}

	eligible := make([]ProductBatch, 0, len(batches))
	available := 0
	for _, b := range batches {
		if b.Quantity <= 0 || !b.ExpiryDate.After(now) {
			continue
		}
		eligible = append(eligible, b)
		available += b.Quantity
	}
	if available < quantity {
		return nil, domainErrors.ErrInsufficientStock
	}

	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].ExpiryDate.Before(eligible[j].ExpiryDate)
	})

	debits := make([]BatchDebit, 0, len(eligible))
	remaining := quantity
	for _, b := range eligible {
		take := b.Quantity
		if take > remaining {
			take = remaining
		}
		debits = append(debits, BatchDebit{BatchID: b.ID, Quantity: take})
		remaining -= take
		if remaining == 0 {
			break
		}
	}
	return debits, nil
}
