package domain

import "time"

// BlockRecord is directional: it lives on the blocker's side only.
// Enforcement is symmetric regardless; see BlockStatus.CanInteract.
type BlockRecord struct {
	ID        string
	BlockerID string
	BlockedID string
	Reason    string // optional, empty when the blocker gave none
	CreatedAt time.Time
}

// BlockedAccount is one row of a block list, joined with the blocked
// account's display data.
type BlockedAccount struct {
	AccountID   string
	Username    string
	DisplayName string
	AvatarURL   string
	Reason      string
	BlockedAt   time.Time
}

type BlockedPage struct {
	Items    []BlockedAccount
	Total    int
	Page     int
	PageSize int
}

// BlockStatus describes the relationship between a viewer and a target from
// the viewer's perspective.
type BlockStatus struct {
	IsBlocked   bool // viewer has blocked target
	IsBlockedBy bool // target has blocked viewer
	CanInteract bool // neither direction blocked, or viewer == target
}
