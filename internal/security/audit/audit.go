// Package audit records security-relevant actions: who did what, whether it
// succeeded, and enough metadata to reconstruct the decision later.
package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/hearthsocial/hearth/internal/security/domain"
	"github.com/hearthsocial/hearth/internal/security/store"
	"github.com/hearthsocial/hearth/pkg/idx"
	"github.com/hearthsocial/hearth/pkg/slogx"
)

// Event types, one per auditable action. Grep-able and stable; dashboards
// filter on these strings.
const (
	EventBlockCreated       = "block.created"
	EventBlockRemoved       = "block.removed"
	EventPrivacyUpdated     = "privacy.updated"
	EventFollowCreated      = "follow.created"
	EventFollowRemoved      = "follow.removed"
	EventFollowRequested    = "follow.requested"
	EventFollowResolved     = "follow.request_resolved"
	EventTwoFactorSetup     = "2fa.setup_started"
	EventTwoFactorEnabled   = "2fa.enabled"
	EventTwoFactorVerified  = "2fa.verified"
	EventBackupCodeUsed     = "2fa.backup_code_used"
	EventCodesRegenerated   = "2fa.codes_regenerated"
	EventTwoFactorDisabled  = "2fa.disabled"
	EventTwoFactorIntegrity = "2fa.integrity_failure"
)

type Event struct {
	ActorID  string
	Type     string
	Success  bool
	Metadata map[string]string
}

// Sink accepts audit events. Recording is best-effort by contract: a sink
// must never fail the action it is describing, only log its own trouble.
type Sink interface {
	Record(ctx context.Context, e Event)
}

// Recorder persists events through the store's audit log.
type Recorder struct {
	Store store.Store
}

func NewRecorder(s store.Store) *Recorder {
	return &Recorder{Store: s}
}

func (r *Recorder) Record(ctx context.Context, e Event) {
	entry := domain.AuditEntry{
		ID:        idx.New().String(),
		ActorID:   e.ActorID,
		EventType: e.Type,
		Success:   e.Success,
		Metadata:  e.Metadata,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.Store.AuditLog().CreateAuditEntry(ctx, entry); err != nil {
		// The action already happened; all we can do is make the gap visible.
		slogx.FromContext(ctx).Error("audit_record_failed",
			slog.String("event_type", e.Type),
			slog.String("actor_id", e.ActorID),
			slog.Any("err", err),
		)
	}
}

// Nop discards events. For tests that don't assert on the audit trail.
type Nop struct{}

func (Nop) Record(ctx context.Context, e Event) {}
