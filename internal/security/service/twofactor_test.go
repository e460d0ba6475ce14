package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"

	"github.com/hearthsocial/hearth/internal/security/domain"
	"github.com/hearthsocial/hearth/internal/security/store"
)

var backupCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// enrollAt walks an account through the full setup handshake with the
// service clock pinned to at, returning the secret and plaintext backup
// codes.
func enrollAt(t *testing.T, ctx context.Context, svc *TwoFactorService, accountID string, at time.Time) (string, []string) {
	t.Helper()

	svc.Now = func() time.Time { return at }

	enrollment, err := svc.BeginSetup(ctx, accountID)
	require.NoError(t, err)

	code, err := totp.GenerateCode(enrollment.Secret, at)
	require.NoError(t, err)

	codes, err := svc.CompleteSetup(ctx, accountID, enrollment.Secret, code)
	require.NoError(t, err)
	require.Len(t, codes, backupCodeCount)

	return enrollment.Secret, codes
}

func TestBeginSetupPersistsNothing(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTwoFactorService(st)

	account := seedAccount(t, ctx, st, "account", domain.DefaultPrivacySettings())

	enrollment, err := svc.BeginSetup(ctx, account.ID)
	require.NoError(t, err)

	// 20 bytes of entropy come out as 32 base32 characters.
	require.Len(t, enrollment.Secret, 32)
	require.Contains(t, enrollment.ProvisioningURI, "otpauth://totp/")
	require.Contains(t, enrollment.ProvisioningURI, "Hearth")
	require.Contains(t, enrollment.ProvisioningURI, account.Username)

	// Abandoning setup leaves no trace.
	_, err = st.TwoFactor().GetTwoFactorState(ctx, account.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	status, err := svc.Status(ctx, account.ID)
	require.NoError(t, err)
	require.False(t, status.Enabled)

	// A second setup simply mints a fresh secret.
	again, err := svc.BeginSetup(ctx, account.ID)
	require.NoError(t, err)
	require.NotEqual(t, enrollment.Secret, again.Secret)

	t.Run("unknown account", func(t *testing.T) {
		_, err := svc.BeginSetup(ctx, "missing")
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestCompleteSetup(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTwoFactorService(st)

	account := seedAccount(t, ctx, st, "account", domain.DefaultPrivacySettings())
	base := time.Date(2025, 3, 9, 10, 0, 15, 0, time.UTC)
	svc.Now = func() time.Time { return base }

	enrollment, err := svc.BeginSetup(ctx, account.ID)
	require.NoError(t, err)

	t.Run("wrong code leaves the account untouched", func(t *testing.T) {
		_, err := svc.CompleteSetup(ctx, account.ID, enrollment.Secret, "000000")
		require.ErrorIs(t, err, ErrInvalidTOTPCode)

		status, err := svc.Status(ctx, account.ID)
		require.NoError(t, err)
		require.False(t, status.Enabled)
	})

	code, err := totp.GenerateCode(enrollment.Secret, base)
	require.NoError(t, err)

	codes, err := svc.CompleteSetup(ctx, account.ID, enrollment.Secret, code)
	require.NoError(t, err)

	t.Run("issues ten well-formed backup codes", func(t *testing.T) {
		require.Len(t, codes, 10)
		seen := make(map[string]bool)
		for _, c := range codes {
			require.Regexp(t, backupCodePattern, c)
			require.False(t, seen[c], "duplicate backup code issued")
			seen[c] = true
		}
	})

	t.Run("status reflects the enrollment", func(t *testing.T) {
		status, err := svc.Status(ctx, account.ID)
		require.NoError(t, err)
		require.True(t, status.Enabled)
		require.NotNil(t, status.EnabledAt)
		require.Equal(t, 10, status.UnusedBackupCodeCount)
	})

	t.Run("secret is stored encrypted, not in the clear", func(t *testing.T) {
		state, err := st.TwoFactor().GetTwoFactorState(ctx, account.ID)
		require.NoError(t, err)
		require.NotEmpty(t, state.EncryptedSecret)
		require.NotContains(t, string(state.EncryptedSecret), enrollment.Secret)
	})

	t.Run("second enrollment refused while enabled", func(t *testing.T) {
		_, err := svc.BeginSetup(ctx, account.ID)
		require.ErrorIs(t, err, ErrTwoFactorEnabled)

		_, err = svc.CompleteSetup(ctx, account.ID, enrollment.Secret, code)
		require.ErrorIs(t, err, ErrTwoFactorEnabled)
	})
}

func TestVerifyAcceptanceWindow(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTwoFactorService(st)

	account := seedAccount(t, ctx, st, "account", domain.DefaultPrivacySettings())
	base := time.Date(2025, 3, 9, 10, 0, 15, 0, time.UTC)
	secret, _ := enrollAt(t, ctx, svc, account.ID, base)

	code, err := totp.GenerateCode(secret, base)
	require.NoError(t, err)

	check := base
	svc.Now = func() time.Time { return check }

	cases := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{"same instant", 0, true},
		{"25s later", 25 * time.Second, true},
		{"25s earlier", -25 * time.Second, true},
		{"90s later", 90 * time.Second, false},
		{"90s earlier", -90 * time.Second, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			check = base.Add(tc.offset)
			ok, err := svc.Verify(ctx, account.ID, code)
			require.NoError(t, err)
			require.Equal(t, tc.want, ok)
		})
	}

	t.Run("one-digit mutation rejected", func(t *testing.T) {
		check = base
		b := []byte(code)
		b[0] = '0' + (b[0]-'0'+1)%10

		ok, err := svc.Verify(ctx, account.ID, string(b))
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("success stamps last_used_at", func(t *testing.T) {
		check = base
		ok, err := svc.Verify(ctx, account.ID, code)
		require.NoError(t, err)
		require.True(t, ok)

		status, err := svc.Status(ctx, account.ID)
		require.NoError(t, err)
		require.NotNil(t, status.LastUsedAt)
	})
}

func TestVerifyRequiresEnrollment(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTwoFactorService(st)

	account := seedAccount(t, ctx, st, "account", domain.DefaultPrivacySettings())

	_, err := svc.Verify(ctx, account.ID, "123456")
	require.ErrorIs(t, err, ErrTwoFactorNotEnabled)
}

func TestBackupCodeSingleUse(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTwoFactorService(st)

	account := seedAccount(t, ctx, st, "account", domain.DefaultPrivacySettings())
	_, codes := enrollAt(t, ctx, svc, account.ID, time.Date(2025, 3, 9, 10, 0, 15, 0, time.UTC))

	t.Run("valid exactly once", func(t *testing.T) {
		ok, err := svc.VerifyBackupCode(ctx, account.ID, codes[0])
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = svc.VerifyBackupCode(ctx, account.ID, codes[0])
		require.NoError(t, err)
		require.False(t, ok)

		status, err := svc.Status(ctx, account.ID)
		require.NoError(t, err)
		require.Equal(t, 9, status.UnusedBackupCodeCount)
	})

	t.Run("input is normalized", func(t *testing.T) {
		ok, err := svc.VerifyBackupCode(ctx, account.ID, "  "+strings.ToLower(codes[1])+" ")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("unknown code", func(t *testing.T) {
		ok, err := svc.VerifyBackupCode(ctx, account.ID, "WRONG123")
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("no enrollment", func(t *testing.T) {
		other := seedAccount(t, ctx, st, "other", domain.DefaultPrivacySettings())
		_, err := svc.VerifyBackupCode(ctx, other.ID, codes[2])
		require.ErrorIs(t, err, ErrTwoFactorNotEnabled)
	})
}

// Two concurrent spends of the same code must not both succeed; consumption
// is one conditional update, not a read followed by a write.
func TestBackupCodeConcurrentSpend(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTwoFactorService(st)

	account := seedAccount(t, ctx, st, "account", domain.DefaultPrivacySettings())
	_, codes := enrollAt(t, ctx, svc, account.ID, time.Date(2025, 3, 9, 10, 0, 15, 0, time.UTC))

	var wg sync.WaitGroup
	var succeeded atomic.Int32
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := svc.VerifyBackupCode(ctx, account.ID, codes[0])
			if err == nil && ok {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), succeeded.Load())

	status, err := svc.Status(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, 9, status.UnusedBackupCodeCount)
}

func TestRegenerateBackupCodes(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTwoFactorService(st)

	account := seedAccount(t, ctx, st, "account", domain.DefaultPrivacySettings())
	base := time.Date(2025, 3, 9, 10, 0, 15, 0, time.UTC)
	secret, oldCodes := enrollAt(t, ctx, svc, account.ID, base)

	t.Run("requires a valid code", func(t *testing.T) {
		_, err := svc.RegenerateBackupCodes(ctx, account.ID, "000000")
		require.ErrorIs(t, err, ErrInvalidTOTPCode)
	})

	code, err := totp.GenerateCode(secret, base)
	require.NoError(t, err)

	newCodes, err := svc.RegenerateBackupCodes(ctx, account.ID, code)
	require.NoError(t, err)
	require.Len(t, newCodes, 10)

	t.Run("old codes die with the swap", func(t *testing.T) {
		ok, err := svc.VerifyBackupCode(ctx, account.ID, oldCodes[0])
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("new codes spend", func(t *testing.T) {
		ok, err := svc.VerifyBackupCode(ctx, account.ID, newCodes[0])
		require.NoError(t, err)
		require.True(t, ok)
	})
}

func TestDisable(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTwoFactorService(st)

	account := seedAccount(t, ctx, st, "account", domain.DefaultPrivacySettings())
	base := time.Date(2025, 3, 9, 10, 0, 15, 0, time.UTC)
	secret, _ := enrollAt(t, ctx, svc, account.ID, base)

	code, err := totp.GenerateCode(secret, base)
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		err := svc.Disable(ctx, account.ID, "not-the-password", code)
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong code", func(t *testing.T) {
		err := svc.Disable(ctx, account.ID, testPassword, "000000")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("password and code together succeed", func(t *testing.T) {
		require.NoError(t, svc.Disable(ctx, account.ID, testPassword, code))

		status, err := svc.Status(ctx, account.ID)
		require.NoError(t, err)
		require.False(t, status.Enabled)
		require.Equal(t, 0, status.UnusedBackupCodeCount)

		_, err = svc.Verify(ctx, account.ID, code)
		require.ErrorIs(t, err, ErrTwoFactorNotEnabled)
	})

	t.Run("disable without enrollment", func(t *testing.T) {
		err := svc.Disable(ctx, account.ID, testPassword, code)
		require.ErrorIs(t, err, ErrTwoFactorNotEnabled)
	})
}

func TestStatusNeverEnrolled(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTwoFactorService(st)

	account := seedAccount(t, ctx, st, "account", domain.DefaultPrivacySettings())

	status, err := svc.Status(ctx, account.ID)
	require.NoError(t, err)
	require.Equal(t, domain.TwoFactorStatus{}, status)
}

// A secret that fails its auth tag check must surface as an integrity error,
// never as a quiet "wrong code".
func TestVerifyIntegrityFailure(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTwoFactorService(st)

	account := seedAccount(t, ctx, st, "account", domain.DefaultPrivacySettings())

	// Plant an undecryptable blob through the store directly.
	require.NoError(t, st.TwoFactor().EnableTwoFactor(ctx, account.ID, []byte("garbage-not-a-gcm-blob"), time.Now().UTC()))

	_, err := svc.Verify(ctx, account.ID, "123456")
	require.ErrorIs(t, err, ErrIntegrity)
	require.False(t, errors.Is(err, ErrInvalidTOTPCode))
}
