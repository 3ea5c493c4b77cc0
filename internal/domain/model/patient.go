package model

import "time"

// Patient is the person or walk-in customer an order is charged to.
type Patient struct {
	ID        int64
	FullName  string
	Ward      string
	CreatedAt time.Time
}
