package store

import (
	"context"
	"errors"
	"time"

	"github.com/hearthsocial/hearth/internal/security/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today,
// postgres later) implement this. Sub-repositories keep the surface tidy and
// make it obvious which tables an operation touches.
type Store interface {
	Accounts() Accounts
	Blocks() Blocks
	Follows() Follows
	FollowRequests() FollowRequests
	TwoFactor() TwoFactor
	BackupCodes() BackupCodes
	AuditLog() AuditLog

	ApplyMigrations() error

	// Tx opens a read/write transaction whose repositories all share it.
	// Every Tx must end in exactly one Commit or Rollback.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing when fn returns
	// nil and rolling back otherwise. Preferred over Tx for most callers.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping reports whether the backing database is reachable.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repositories, plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns an account with its privacy settings.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByUsername looks an account up by its unique username.
	GetAccountByUsername(ctx context.Context, username string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by app via ULID).
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdatePrivacy applies a partial settings update in one statement.
	// Nil patch fields keep their current value. ErrNotFound if the account
	// does not exist.
	UpdatePrivacy(ctx context.Context, accountID string, patch domain.PrivacyPatch) error
}

type Blocks interface {
	// CreateBlock inserts a directional block record. ErrAlreadyExists when
	// an active record for the (blocker, blocked) pair is present; the
	// unique pair index makes this safe under concurrent inserts.
	CreateBlock(ctx context.Context, b domain.BlockRecord) error

	// DeleteBlock removes the record for the pair. ErrNotFound when absent.
	DeleteBlock(ctx context.Context, blockerID, blockedID string) error

	// IsBlocked reports whether blockerID holds a record against blockedID.
	// Directional.
	IsBlocked(ctx context.Context, blockerID, blockedID string) (bool, error)

	// AnyBetween reports whether a block exists in either direction.
	AnyBetween(ctx context.Context, a, b string) (bool, error)

	// ListBlocked returns the blocker's list newest-first, joined with the
	// blocked accounts' display data.
	ListBlocked(ctx context.Context, blockerID string, limit, offset int) ([]domain.BlockedAccount, error)

	// CountBlocked returns the total number of records on the blocker's list.
	CountBlocked(ctx context.Context, blockerID string) (int, error)

	// ListBlockedEitherDirection returns every account id that shares a
	// block edge with accountID, regardless of who created it.
	ListBlockedEitherDirection(ctx context.Context, accountID string) ([]string, error)
}

type Follows interface {
	// CreateFollow adds a follower->followee edge if absent. Inserting an
	// existing edge is a no-op, not an error.
	CreateFollow(ctx context.Context, followerID, followeeID string) error

	// DeleteFollow removes the edge. ErrNotFound when absent.
	DeleteFollow(ctx context.Context, followerID, followeeID string) error

	// IsFollowing reports whether the follower->followee edge exists.
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)

	// ListFollowingIDs returns every account id that followerID follows.
	ListFollowingIDs(ctx context.Context, followerID string) ([]string, error)
}

type FollowRequests interface {
	// CreateFollowRequest inserts a pending request. ErrAlreadyExists when
	// a pending request for the (requester, target) pair is present.
	CreateFollowRequest(ctx context.Context, r domain.FollowRequest) error

	// GetPendingRequest fetches the pending request from requesterID to
	// targetID. ErrNotFound when none is pending.
	GetPendingRequest(ctx context.Context, targetID, requesterID string) (domain.FollowRequest, error)

	// DeleteFollowRequest removes a request by id. Resolution is terminal;
	// approved and rejected requests do not linger.
	DeleteFollowRequest(ctx context.Context, id string) error

	// ListRequestsForTarget returns the target's request inbox newest-first,
	// joined with requester display data. Empty status means no filter.
	ListRequestsForTarget(ctx context.Context, targetID string, status domain.FollowRequestStatus, limit, offset int) ([]domain.FollowRequestEntry, error)

	// CountRequestsForTarget counts inbox rows under the same filter.
	CountRequestsForTarget(ctx context.Context, targetID string, status domain.FollowRequestStatus) (int, error)
}

type TwoFactor interface {
	// GetTwoFactorState returns the account's enrollment row. ErrNotFound
	// when the account has never enabled two-factor.
	GetTwoFactorState(ctx context.Context, accountID string) (domain.TwoFactorState, error)

	// EnableTwoFactor stores the encrypted secret and flips the account to
	// enabled, but only if it is not enabled already: ErrAlreadyExists when
	// a concurrent request won the race.
	EnableTwoFactor(ctx context.Context, accountID string, encryptedSecret []byte, enabledAt time.Time) error

	// DisableTwoFactor deletes the enrollment row, wiping the secret and
	// timestamps. ErrNotFound when there was nothing to disable.
	DisableTwoFactor(ctx context.Context, accountID string) error

	// TouchLastUsed stamps last_used_at after a successful verification.
	TouchLastUsed(ctx context.Context, accountID string, usedAt time.Time) error
}

type BackupCodes interface {
	// CreateBackupCode stores one code fingerprint for an account.
	CreateBackupCode(ctx context.Context, c domain.BackupCode) error

	// ConsumeBackupCode atomically marks the matching unused code as used.
	// Returns true when exactly one code flipped; false when the hash does
	// not match any unused code. Two concurrent calls with the same code
	// cannot both return true.
	ConsumeBackupCode(ctx context.Context, accountID, codeHash string, usedAt time.Time) (bool, error)

	// DeleteAllBackupCodes removes every code for the account, used or not.
	DeleteAllBackupCodes(ctx context.Context, accountID string) error

	// CountUnusedBackupCodes returns how many codes remain spendable.
	CountUnusedBackupCodes(ctx context.Context, accountID string) (int, error)
}

type AuditLog interface {
	// CreateAuditEntry appends one security event.
	CreateAuditEntry(ctx context.Context, e domain.AuditEntry) error

	// ListAuditEntries returns an actor's events newest-first.
	ListAuditEntries(ctx context.Context, actorID string, limit, offset int) ([]domain.AuditEntry, error)

	// DeleteAuditEntriesBefore prunes events older than cutoff, returning
	// how many rows went. Housekeeping only.
	DeleteAuditEntriesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
