package domain

import "time"

// TwoFactorState holds an account's TOTP enrollment. EncryptedSecret is
// non-nil iff Enabled; the plaintext secret exists only transiently during
// verification and once in the setup response.
type TwoFactorState struct {
	AccountID       string
	Enabled         bool
	EncryptedSecret []byte
	EnabledAt       *time.Time
	LastUsedAt      *time.Time
}

// BackupCode is a single-use recovery credential. Only the hash is stored;
// Used flips false to true exactly once and never back.
type BackupCode struct {
	ID        string
	AccountID string
	CodeHash  string
	Used      bool
	UsedAt    *time.Time
	CreatedAt time.Time
}

// TwoFactorEnrollment is returned by setup: the secret and otpauth:// URI
// the client renders as a QR code. Nothing here is persisted until the
// client proves possession by completing setup with a valid code.
type TwoFactorEnrollment struct {
	Secret          string // base32
	ProvisioningURI string
	Issuer          string
	Account         string
}

type TwoFactorStatus struct {
	Enabled               bool
	EnabledAt             *time.Time
	LastUsedAt            *time.Time
	UnusedBackupCodeCount int
}
