package model

import "time"

// Product is a sellable pharmacy item with its current list price.
type Product struct {
	ID        int64
	Name      string
	UnitPrice float64
	CreatedAt time.Time
}
