package domain

import "time"

// AuditEntry records one security-relevant action: block/unblock, privacy
// change, follow-request transition, or a 2FA event.
type AuditEntry struct {
	ID        string
	ActorID   string
	EventType string
	Success   bool
	Metadata  map[string]string
	CreatedAt time.Time
}
