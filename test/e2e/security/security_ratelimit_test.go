package security_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hearthsocial/hearth/pkg/httpx"
	"github.com/hearthsocial/hearth/pkg/securitysdk"
)

// TestTwoFactorRateLimit verifies the per-account attempt budget on the
// code-verifying two-factor endpoints: five attempts per window, shared
// across enable, verify and backup code verification.
func TestTwoFactorRateLimit(t *testing.T) {
	// TestMain relaxed this profile for the rest of the suite. Put the
	// production budget back before building the rig; routers bind the
	// profile at construction time.
	relaxed := httpx.TwoFactorLimit
	httpx.TwoFactorLimit = httpx.RateLimitConfig{
		RequestsPerWindow: 5,
		Window:            15 * time.Minute,
		Burst:             5,
	}
	t.Cleanup(func() { httpx.TwoFactorLimit = relaxed })

	ts := setupSecurityService(t)

	alice := ts.createAccount(t, "alice")
	session := ts.login(t, alice)

	// Enrollment's enable call is the first spend from the shared budget
	secret, _ := enableTwoFactor(t, session)

	// Four wrong guesses burn attempts two through five
	for attempt := 2; attempt <= 5; attempt++ {
		resp, err := session.TwoFactorVerify(t.Context(), "000000")
		require.NoError(t, err, "attempt %d is still within budget", attempt)
		require.False(t, resp.Valid)
	}

	// The sixth attempt is throttled even though the code is right
	_, err := session.TwoFactorVerify(t.Context(), totpCode(t, secret))
	require.Error(t, err)

	var rateLimited *securitysdk.RateLimitedError
	require.ErrorAs(t, err, &rateLimited)
	require.GreaterOrEqual(t, rateLimited.RetryAfter, 1)

	t.Logf("Throttled after 5 attempts, retry after %ds", rateLimited.RetryAfter)

	// Backup code verification draws from the same bucket, so it is
	// throttled too, not just the endpoint that tripped the limit
	_, err = session.VerifyBackupCode(t.Context(), "A1B2C3D4")
	require.ErrorAs(t, err, &rateLimited)

	// The budget is per account. A different caller on the same IP gets
	// through the limiter and fails on the merits instead.
	bob := ts.createAccount(t, "bob")
	bobSession := ts.login(t, bob)

	_, err = bobSession.TwoFactorVerify(t.Context(), "123456")
	assertCode(t, err, securitysdk.ErrorCodeTwoFactorNotEnabled,
		"Unenrolled account behind its own bucket")
}
