package securitysdk

import (
	"time"

	"github.com/hearthsocial/hearth/pkg/jwtx"
)

// ============================================================================
// Wire Envelopes
// ============================================================================

// ErrorResponse is the error envelope the security service puts on the
// wire. The SDK decodes it and hands callers an APIError; use that instead
// of this type.
type ErrorResponse struct {
	// Error is the stable machine code (e.g., "BLOCKED", "2FA_REQUIRED")
	Error string `json:"error"`

	// ErrorDescription is prose for humans. Never branch on it.
	ErrorDescription string `json:"error_description"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is the body served by /livez and /readyz. Only readyz
// fills in Checks.
type HealthResponse struct {
	// Status is "ok" while the service considers itself healthy
	Status string `json:"status"`

	// Uptime is time since process start, as a Go duration string
	Uptime string `json:"uptime,omitempty"`

	// Version is the build stamp
	Version string `json:"version,omitempty"`

	// Checks is the per-dependency readiness breakdown
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports each dependency the service cannot serve without.
type HealthChecks struct {
	// Database is the store ping result
	Database string `json:"database"`

	// Keys reports whether token verification keys are loaded
	Keys string `json:"keys"`
}

// ============================================================================
// JWKS Types
// ============================================================================

// JWKSResponse is the public key set served at /.well-known/jwks.json.
type JWKSResponse jwtx.JWKS

// ============================================================================
// Block Types
// ============================================================================

// BlockRequest creates a block against another account.
type BlockRequest struct {
	// TargetID is the account to block
	TargetID string `json:"target_id"`

	// Reason is an optional private note visible only to the blocker
	Reason string `json:"reason,omitempty"`
}

// BlockRecordResponse is the stored block returned after creation.
// Storage is directional (the block lives on the blocker's side) but
// enforcement cuts both ways.
type BlockRecordResponse struct {
	ID        string    `json:"id"`
	BlockerID string    `json:"blocker_id"`
	BlockedID string    `json:"blocked_id"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// BlockedAccountEntry is one row of a block list, joined with the blocked
// account's display data.
type BlockedAccountEntry struct {
	AccountID   string    `json:"account_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Reason      string    `json:"reason,omitempty"`
	BlockedAt   time.Time `json:"blocked_at"`
}

// BlockListResponse is a page of the caller's block list, newest first.
type BlockListResponse struct {
	Blocks   []BlockedAccountEntry `json:"blocks"`
	Total    int                   `json:"total"`
	Page     int                   `json:"page"`
	PageSize int                   `json:"page_size"`
}

// BlockStatusResponse describes the block relationship between the caller
// and a target, from the caller's perspective.
type BlockStatusResponse struct {
	// Blocked is true when the caller has blocked the target
	Blocked bool `json:"blocked"`

	// BlockedBy is true when the target has blocked the caller
	BlockedBy bool `json:"blocked_by"`

	// CanInteract is true when neither direction is blocked
	CanInteract bool `json:"can_interact"`
}

// ============================================================================
// Privacy Types
// ============================================================================

// PrivacySettingsResponse is an account's current privacy configuration.
type PrivacySettingsResponse struct {
	// IsPrivate gates profile visibility to approved followers
	IsPrivate bool `json:"is_private"`

	// AllowFollowRequests permits strangers to request a follow
	AllowFollowRequests bool `json:"allow_follow_requests"`

	// ShowOnlineStatus exposes presence to other accounts
	ShowOnlineStatus bool `json:"show_online_status"`

	// DMPolicy is who may open a direct message thread: "everyone", "followers", "none"
	DMPolicy string `json:"dm_policy" example:"everyone"`
}

// PrivacyUpdateRequest is a partial privacy update. Omitted fields are left
// untouched.
type PrivacyUpdateRequest struct {
	IsPrivate           *bool   `json:"is_private,omitempty"`
	AllowFollowRequests *bool   `json:"allow_follow_requests,omitempty"`
	ShowOnlineStatus    *bool   `json:"show_online_status,omitempty"`
	DMPolicy            *string `json:"dm_policy,omitempty" example:"followers"`
}

// ============================================================================
// Follow Types
// ============================================================================

// Follow result values returned by POST /v1/follows.
const (
	// FollowResultDirect means the follow edge was created immediately
	FollowResultDirect = "direct_follow"

	// FollowResultRequested means a request is waiting on the target's approval
	FollowResultRequested = "follow_request"
)

// FollowCreateRequest starts following an account, or requests to if the
// target is private.
type FollowCreateRequest struct {
	TargetID string `json:"target_id"`
}

// FollowResponse tells the caller whether the follow completed instantly or
// is pending approval.
type FollowResponse struct {
	Result string `json:"result" example:"direct_follow"`
}

// Follow request resolution actions.
const (
	FollowActionApprove = "approve"
	FollowActionReject  = "reject"
)

// FollowResolveRequest approves or rejects a pending follow request.
type FollowResolveRequest struct {
	Action string `json:"action" example:"approve"`
}

// FollowRequestEntry is one row of the caller's follow request inbox,
// joined with the requester's display data.
type FollowRequestEntry struct {
	RequestID   string    `json:"request_id"`
	RequesterID string    `json:"requester_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Status      string    `json:"status" example:"pending"`
	RequestedAt time.Time `json:"requested_at"`
}

// FollowRequestListResponse is a page of follow requests, newest first.
type FollowRequestListResponse struct {
	Requests []FollowRequestEntry `json:"requests"`
	Total    int                  `json:"total"`
	Page     int                  `json:"page"`
	PageSize int                  `json:"page_size"`
}

// ============================================================================
// Access Check Types
// ============================================================================

// ContentScope is the visibility rule attached to a piece of content.
type ContentScope struct {
	// Level is one of "public", "only_me", "followers", "select_users"
	Level string `json:"level" example:"followers"`

	// SelectedUserIDs is only meaningful when Level is "select_users"
	SelectedUserIDs []string `json:"selected_user_ids,omitempty"`
}

// ContentRef is the slice of a post the security service needs for an
// access decision. A nil Scope is treated as public.
type ContentRef struct {
	ID      string        `json:"id"`
	OwnerID string        `json:"owner_id"`
	Scope   *ContentScope `json:"scope,omitempty"`
}

// ProfileAccessRequest asks whether the caller may view a profile.
type ProfileAccessRequest struct {
	TargetID string `json:"target_id"`
}

// ContentAccessRequest asks whether the caller may view a piece of content.
type ContentAccessRequest struct {
	Content ContentRef `json:"content"`
}

// MessageAccessRequest asks whether the caller may open a direct message
// thread with the recipient.
type MessageAccessRequest struct {
	RecipientID string `json:"recipient_id"`
}

// InteractionAccessRequest asks whether the caller may interact with the
// target at all (like, reply, mention).
type InteractionAccessRequest struct {
	TargetID string `json:"target_id"`
}

// AccessDecision is the outcome of an access check. A denial is a valid
// answer, not an HTTP error: Allowed is false and Code carries the stable
// machine code explaining why.
type AccessDecision struct {
	Allowed bool   `json:"allowed"`
	Code    string `json:"code,omitempty" example:"BLOCKED"`
}

// FilterContentRequest asks the service to strip items the caller must not
// see from a candidate feed. Order of the survivors is preserved.
type FilterContentRequest struct {
	Items []ContentRef `json:"items"`
}

// FilterContentResponse carries the items the caller may see.
type FilterContentResponse struct {
	Items []ContentRef `json:"items"`
}

// ============================================================================
// Two-Factor Types
// ============================================================================

// TwoFactorSetupResponse represents a fresh TOTP enrollment offer. Nothing
// is persisted until enable proves possession of the secret; abandoning
// setup leaves the account untouched.
type TwoFactorSetupResponse struct {
	Secret          string `json:"secret" example:"JBSWY3DPEHPK3PXP"`
	ProvisioningURI string `json:"provisioning_uri" example:"otpauth://totp/Hearth:user?secret=JBSWY3DPEHPK3PXP&issuer=Hearth"`
	Issuer          string `json:"issuer"`
	Account         string `json:"account"`
}

// TwoFactorEnableRequest completes enrollment by proving the authenticator
// app holds the secret from setup.
type TwoFactorEnableRequest struct {
	Secret string `json:"secret"`
	Code   string `json:"code" example:"123456"`
}

// BackupCodesResponse carries freshly generated backup codes. This is the
// only time the plaintext codes are visible; the service stores hashes.
type BackupCodesResponse struct {
	BackupCodes []string `json:"backup_codes"`
}

// TwoFactorVerifyRequest checks a TOTP code against the enrolled secret.
type TwoFactorVerifyRequest struct {
	Code string `json:"code" example:"123456"`
}

// TwoFactorVerifyResponse reports whether the presented code was accepted.
// A wrong code is a normal false result, not an error.
type TwoFactorVerifyResponse struct {
	Valid bool `json:"valid"`
}

// BackupCodeVerifyRequest spends a single-use backup code.
type BackupCodeVerifyRequest struct {
	Code string `json:"code" example:"A1B2C3D4"`
}

// TwoFactorRegenerateRequest replaces all backup codes. Requires a valid
// TOTP code; the old codes stop working immediately.
type TwoFactorRegenerateRequest struct {
	Code string `json:"code" example:"123456"`
}

// TwoFactorDisableRequest turns off two-factor authentication. Requires the
// account password and a valid TOTP code.
type TwoFactorDisableRequest struct {
	Password string `json:"password"`
	Code     string `json:"code" example:"123456"`
}

// TwoFactorStatusResponse is an account's current two-factor state.
type TwoFactorStatusResponse struct {
	Enabled              bool       `json:"enabled"`
	EnabledAt            *time.Time `json:"enabled_at,omitempty"`
	LastUsedAt           *time.Time `json:"last_used_at,omitempty"`
	BackupCodesRemaining int        `json:"backup_codes_remaining"`
}
