package model

import "time"

// AuditEvent describes one committed transition for the compliance trail.
// Delivery is fire-and-forget and never affects the originating command.
type AuditEvent struct {
	Action      string
	EntityType  string
	EntityID    int64
	Description string
	ActorID     int64
	Timestamp   time.Time
}
