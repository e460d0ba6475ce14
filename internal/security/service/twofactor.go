package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/hearthsocial/hearth/internal/security/audit"
	"github.com/hearthsocial/hearth/internal/security/domain"
	"github.com/hearthsocial/hearth/internal/security/store"
	"github.com/hearthsocial/hearth/pkg/cryptox"
	"github.com/hearthsocial/hearth/pkg/idx"
	"github.com/hearthsocial/hearth/pkg/slogx"
)

const (
	totpPeriod     = 30 // seconds per TOTP step
	totpSkew       = 1  // steps accepted either side of now, for clock drift
	totpSecretSize = 20 // bytes of secret entropy (RFC 4226 minimum is 16)

	backupCodeCount = 10
)

var (
	ErrInvalidTOTPCode     = errors.New("invalid TOTP code")
	ErrTwoFactorNotEnabled = errors.New("two-factor auth not enabled for this account")
	ErrTwoFactorEnabled    = errors.New("two-factor auth already enabled for this account")
	ErrInvalidCredentials  = errors.New("invalid credentials")

	// ErrIntegrity means a stored secret failed authenticated decryption.
	// Callers must surface this as a server fault and page on it; it cannot
	// be caused by user input.
	ErrIntegrity = errors.New("two-factor state failed integrity check")
)

// TwoFactorService owns TOTP enrollment, verification and backup codes.
// Secrets are encrypted at rest and decrypted only for the duration of a
// verification.
type TwoFactorService struct {
	Store  store.Store
	Audit  audit.Sink
	Issuer string // issuer label in provisioning URIs (e.g. "Hearth")

	// Now supplies the verification clock. Nil means time.Now; tests pin it
	// to exercise the acceptance window.
	Now func() time.Time
}

func (s *TwoFactorService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

func (s *TwoFactorService) record(ctx context.Context, e audit.Event) {
	if s.Audit != nil {
		s.Audit.Record(ctx, e)
	}
}

// BeginSetup generates a fresh TOTP secret and provisioning URI for the
// account. Nothing is persisted: the client must prove possession via
// CompleteSetup before the enrollment becomes real, so an abandoned setup
// leaves no state behind.
func (s *TwoFactorService) BeginSetup(ctx context.Context, accountID string) (domain.TwoFactorEnrollment, error) {
	log := slogx.FromContext(ctx)

	// 1. The account must exist; its username labels the authenticator entry.
	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TwoFactorEnrollment{}, ErrAccountNotFound
		}
		return domain.TwoFactorEnrollment{}, fmt.Errorf("failed to fetch account: %w", err)
	}

	// 2. Refuse while an enrollment is active. Disable first, then re-enroll.
	state, err := s.Store.TwoFactor().GetTwoFactorState(ctx, accountID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return domain.TwoFactorEnrollment{}, fmt.Errorf("failed to fetch two-factor state: %w", err)
	}
	if err == nil && state.Enabled {
		return domain.TwoFactorEnrollment{}, ErrTwoFactorEnabled
	}

	// 3. Generate the secret and otpauth:// URI.
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: account.Username,
		Period:      totpPeriod,
		SecretSize:  totpSecretSize,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		log.Error("failed to generate TOTP key", slog.Any("error", err))
		return domain.TwoFactorEnrollment{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	s.record(ctx, audit.Event{
		ActorID: accountID,
		Type:    audit.EventTwoFactorSetup,
		Success: true,
	})

	return domain.TwoFactorEnrollment{
		Secret:          key.Secret(),
		ProvisioningURI: key.URL(),
		Issuer:          s.Issuer,
		Account:         account.Username,
	}, nil
}

// CompleteSetup turns a BeginSetup enrollment into an active one. The client
// echoes the secret back together with a current code from its authenticator;
// a valid code proves the secret was captured. On success the secret is
// stored encrypted and ten fresh backup codes are returned in plaintext, the
// only time they are ever visible.
func (s *TwoFactorService) CompleteSetup(ctx context.Context, accountID, secret, code string) ([]string, error) {
	log := slogx.FromContext(ctx)

	// 1. Refuse while an enrollment is active.
	state, err := s.Store.TwoFactor().GetTwoFactorState(ctx, accountID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to fetch two-factor state: %w", err)
	}
	if err == nil && state.Enabled {
		return nil, ErrTwoFactorEnabled
	}

	// 2. The submitted code must match the submitted secret.
	valid, err := s.validateAgainstSecret(secret, code)
	if err != nil {
		return nil, err
	}
	if !valid {
		log.Warn("two-factor setup code rejected", slog.String("account_id", accountID))
		return nil, ErrInvalidTOTPCode
	}

	// 3. Encrypt the secret for storage.
	encrypted, err := cryptox.EncryptSecret([]byte(secret))
	if err != nil {
		log.Error("failed to encrypt TOTP secret", slog.Any("error", err))
		return nil, fmt.Errorf("failed to encrypt secret: %w", err)
	}

	// 4. Mint the backup codes up front so the transaction only writes.
	codes, err := generateBackupCodes()
	if err != nil {
		return nil, err
	}

	// 5. Enable and store codes atomically. The conditional enable loses to
	// a concurrent CompleteSetup, so a double submit cannot overwrite an
	// active secret.
	enabledAt := s.now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.TwoFactor().EnableTwoFactor(ctx, accountID, encrypted, enabledAt); err != nil {
			return err
		}
		if err := tx.BackupCodes().DeleteAllBackupCodes(ctx, accountID); err != nil {
			return err
		}
		return storeBackupCodes(ctx, tx, accountID, codes, enabledAt)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, ErrTwoFactorEnabled
		}
		log.Error("failed to enable two-factor auth", slog.Any("error", err))
		return nil, err
	}

	s.record(ctx, audit.Event{
		ActorID: accountID,
		Type:    audit.EventTwoFactorEnabled,
		Success: true,
	})

	log.Info("two-factor auth enabled", slog.String("account_id", accountID))
	return codes, nil
}

// Verify checks a TOTP code against the account's enrolled secret. A wrong
// code is (false, nil), not an error; ErrTwoFactorNotEnabled and ErrIntegrity
// are the only expected failures.
func (s *TwoFactorService) Verify(ctx context.Context, accountID, code string) (bool, error) {
	log := slogx.FromContext(ctx)

	valid, err := s.validateCode(ctx, accountID, code)
	if err != nil {
		return false, err
	}
	if !valid {
		log.Warn("two-factor code rejected", slog.String("account_id", accountID))
		s.record(ctx, audit.Event{
			ActorID: accountID,
			Type:    audit.EventTwoFactorVerified,
			Success: false,
		})
		return false, nil
	}

	// Best effort stamp; verification already succeeded.
	if err := s.Store.TwoFactor().TouchLastUsed(ctx, accountID, s.now()); err != nil {
		log.Error("failed to stamp last_used_at", slog.Any("error", err))
	}

	s.record(ctx, audit.Event{
		ActorID: accountID,
		Type:    audit.EventTwoFactorVerified,
		Success: true,
	})
	return true, nil
}

// VerifyBackupCode spends a single-use backup code. Consumption is a single
// conditional update, so the same code presented twice, even concurrently,
// succeeds at most once.
func (s *TwoFactorService) VerifyBackupCode(ctx context.Context, accountID, code string) (bool, error) {
	log := slogx.FromContext(ctx)

	// 1. Backup codes only exist under an active enrollment.
	state, err := s.Store.TwoFactor().GetTwoFactorState(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrTwoFactorNotEnabled
		}
		return false, fmt.Errorf("failed to fetch two-factor state: %w", err)
	}
	if !state.Enabled {
		return false, ErrTwoFactorNotEnabled
	}

	// 2. Normalise: codes are displayed uppercase, users retype them from
	// paper.
	normalized := strings.ToUpper(strings.TrimSpace(code))

	// 3. Atomically flip the matching unused code.
	consumed, err := s.Store.BackupCodes().ConsumeBackupCode(ctx, accountID, cryptox.FingerprintCode(normalized), s.now())
	if err != nil {
		log.Error("failed to consume backup code", slog.Any("error", err))
		return false, err
	}

	if !consumed {
		log.Warn("backup code rejected", slog.String("account_id", accountID))
	}
	s.record(ctx, audit.Event{
		ActorID: accountID,
		Type:    audit.EventBackupCodeUsed,
		Success: consumed,
	})
	return consumed, nil
}

// RegenerateBackupCodes replaces the full code set after re-verifying a
// current TOTP code. Every old code, spent or not, dies with the swap.
func (s *TwoFactorService) RegenerateBackupCodes(ctx context.Context, accountID, code string) ([]string, error) {
	log := slogx.FromContext(ctx)

	// 1. Regeneration rides on a fresh verification, never a cached one.
	valid, err := s.validateCode(ctx, accountID, code)
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, ErrInvalidTOTPCode
	}

	// 2. Mint replacements.
	codes, err := generateBackupCodes()
	if err != nil {
		return nil, err
	}

	// 3. Swap the sets atomically.
	createdAt := s.now()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.BackupCodes().DeleteAllBackupCodes(ctx, accountID); err != nil {
			return err
		}
		return storeBackupCodes(ctx, tx, accountID, codes, createdAt)
	})
	if err != nil {
		log.Error("failed to regenerate backup codes", slog.Any("error", err))
		return nil, err
	}

	s.record(ctx, audit.Event{
		ActorID: accountID,
		Type:    audit.EventCodesRegenerated,
		Success: true,
	})

	log.Info("backup codes regenerated", slog.String("account_id", accountID))
	return codes, nil
}

// Disable tears down the enrollment. It demands the account password AND a
// current TOTP code so neither a stolen session nor a stolen phone suffices
// on its own. Both checks fail with the same sentinel.
func (s *TwoFactorService) Disable(ctx context.Context, accountID, password, code string) error {
	log := slogx.FromContext(ctx)

	// 1. Re-prove the password.
	account, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("failed to fetch account: %w", err)
	}
	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		log.Warn("two-factor disable rejected: bad password", slog.String("account_id", accountID))
		return ErrInvalidCredentials
	}

	// 2. Re-prove the authenticator.
	valid, err := s.validateCode(ctx, accountID, code)
	if err != nil {
		return err
	}
	if !valid {
		log.Warn("two-factor disable rejected: bad code", slog.String("account_id", accountID))
		return ErrInvalidCredentials
	}

	// 3. Wipe the enrollment and every backup code together.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.TwoFactor().DisableTwoFactor(ctx, accountID); err != nil {
			return err
		}
		return tx.BackupCodes().DeleteAllBackupCodes(ctx, accountID)
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTwoFactorNotEnabled
		}
		log.Error("failed to disable two-factor auth", slog.Any("error", err))
		return err
	}

	s.record(ctx, audit.Event{
		ActorID: accountID,
		Type:    audit.EventTwoFactorDisabled,
		Success: true,
	})

	log.Info("two-factor auth disabled", slog.String("account_id", accountID))
	return nil
}

// Status reports whether two-factor is on and how many backup codes remain.
// Never-enrolled accounts get a zero status, not an error.
func (s *TwoFactorService) Status(ctx context.Context, accountID string) (domain.TwoFactorStatus, error) {
	state, err := s.Store.TwoFactor().GetTwoFactorState(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TwoFactorStatus{Enabled: false}, nil
		}
		return domain.TwoFactorStatus{}, fmt.Errorf("failed to fetch two-factor state: %w", err)
	}

	unused, err := s.Store.BackupCodes().CountUnusedBackupCodes(ctx, accountID)
	if err != nil {
		return domain.TwoFactorStatus{}, fmt.Errorf("failed to count backup codes: %w", err)
	}

	return domain.TwoFactorStatus{
		Enabled:               state.Enabled,
		EnabledAt:             state.EnabledAt,
		LastUsedAt:            state.LastUsedAt,
		UnusedBackupCodeCount: unused,
	}, nil
}

// validateCode loads the account's enrollment, decrypts the secret and checks
// the code against the current acceptance window.
func (s *TwoFactorService) validateCode(ctx context.Context, accountID, code string) (bool, error) {
	log := slogx.FromContext(ctx)

	state, err := s.Store.TwoFactor().GetTwoFactorState(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrTwoFactorNotEnabled
		}
		return false, fmt.Errorf("failed to fetch two-factor state: %w", err)
	}
	if !state.Enabled {
		return false, ErrTwoFactorNotEnabled
	}

	secret, err := cryptox.DecryptSecret(state.EncryptedSecret)
	if err != nil {
		// Auth tag failure: the ciphertext or the master key changed
		// underneath us. This is an operational incident, not user error.
		log.Error("stored TOTP secret failed decryption",
			slog.String("account_id", accountID),
			slog.Any("error", err),
		)
		s.record(ctx, audit.Event{
			ActorID: accountID,
			Type:    audit.EventTwoFactorIntegrity,
			Success: false,
		})
		return false, ErrIntegrity
	}

	return s.validateAgainstSecret(string(secret), code)
}

// validateAgainstSecret runs the raw TOTP check at the service clock. The
// skew setting accepts the previous and next step alongside the current one.
func (s *TwoFactorService) validateAgainstSecret(secret, code string) (bool, error) {
	valid, err := totp.ValidateCustom(code, secret, s.now(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		// ValidateCustom only errors on malformed input such as a bad
		// secret encoding; treat that as a plain rejection.
		return false, nil
	}
	return valid, nil
}

// generateBackupCodes mints a full plaintext set.
func generateBackupCodes() ([]string, error) {
	codes := make([]string, backupCodeCount)
	for i := range backupCodeCount {
		code, err := cryptox.GenerateBackupCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate backup code: %w", err)
		}
		codes[i] = code
	}
	return codes, nil
}

// storeBackupCodes persists fingerprints for a freshly minted set.
func storeBackupCodes(ctx context.Context, tx store.Tx, accountID string, codes []string, createdAt time.Time) error {
	for _, code := range codes {
		err := tx.BackupCodes().CreateBackupCode(ctx, domain.BackupCode{
			ID:        idx.New().String(),
			AccountID: accountID,
			CodeHash:  cryptox.FingerprintCode(code),
			Used:      false,
			CreatedAt: createdAt,
		})
		if err != nil {
			return fmt.Errorf("failed to store backup code: %w", err)
		}
	}
	return nil
}
