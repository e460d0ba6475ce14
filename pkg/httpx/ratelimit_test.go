package httpx_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hearthsocial/hearth/pkg/httpx"
)

// okHandler is the terminal handler behind every middleware under test.
var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

// requestFrom builds a GET request originating from the given address.
func requestFrom(addr string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/2fa/verify", nil)
	req.RemoteAddr = addr
	return req
}

// authenticatedRequest builds a request carrying an account ID in its
// context, the way AuthnMiddleware leaves it for downstream handlers.
func authenticatedRequest(accountID, addr string) *http.Request {
	req := requestFrom(addr)
	ctx := context.WithValue(req.Context(), httpx.CtxKeyAccountID, accountID)
	return req.WithContext(ctx)
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("splits host from RemoteAddr", func(t *testing.T) {
		require.Equal(t, "10.0.0.7", httpx.IPKeyExtractor(requestFrom("10.0.0.7:5501")))
	})

	t.Run("portless RemoteAddr passes through", func(t *testing.T) {
		require.Equal(t, "10.0.0.7", httpx.IPKeyExtractor(requestFrom("10.0.0.7")))
	})

	t.Run("first X-Forwarded-For hop wins", func(t *testing.T) {
		req := requestFrom("10.0.0.7:5501")
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 198.51.100.2, 10.0.0.7")
		require.Equal(t, "203.0.113.9", httpx.IPKeyExtractor(req))
	})

	t.Run("X-Real-IP used when X-Forwarded-For absent", func(t *testing.T) {
		req := requestFrom("10.0.0.7:5501")
		req.Header.Set("X-Real-IP", "203.0.113.4")
		require.Equal(t, "203.0.113.4", httpx.IPKeyExtractor(req))
	})
}

func TestAccountIDKeyExtractor(t *testing.T) {
	t.Run("reads the authenticated account", func(t *testing.T) {
		req := authenticatedRequest("01J8ZC3VJ4Q0AZX1T5W8QK2M3N", "10.0.0.7:5501")
		require.Equal(t, "01J8ZC3VJ4Q0AZX1T5W8QK2M3N", httpx.AccountIDKeyExtractor(req))
	})

	t.Run("empty without authentication", func(t *testing.T) {
		require.Empty(t, httpx.AccountIDKeyExtractor(requestFrom("10.0.0.7:5501")))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("exhausts the two-factor budget on the sixth attempt", func(t *testing.T) {
		// Same shape as TwoFactorLimit, asserted against directly so a
		// RATELIMIT_* override in the environment cannot skew the test.
		config := httpx.RateLimitConfig{
			RequestsPerWindow: 5,
			Window:            15 * time.Minute,
			Burst:             5,
		}
		limited := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler)

		for i := range 5 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, requestFrom("10.0.0.7:5501"))
			require.Equal(t, http.StatusOK, rec.Code, "attempt %d is inside the budget", i+1)
		}

		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, requestFrom("10.0.0.7:5501"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)

		// With 5 per 15 minutes the next token is three minutes away.
		retryAfter, err := strconv.Atoi(rec.Header().Get("Retry-After"))
		require.NoError(t, err)
		require.Greater(t, retryAfter, 60)
	})

	t.Run("keys are throttled independently", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}
		limited := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler)

		for range 2 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, requestFrom("10.0.0.7:5501"))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, requestFrom("10.0.0.7:5501"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)

		// A neighbour on another address still has a full budget.
		rec = httptest.NewRecorder()
		limited.ServeHTTP(rec, requestFrom("10.0.0.8:5501"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("burst caps simultaneous spend below the window total", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 60, Window: time.Minute, Burst: 3}
		limited := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler)

		for i := range 3 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, requestFrom("10.0.0.7:5501"))
			require.Equal(t, http.StatusOK, rec.Code, "burst request %d", i+1)
		}

		// The 60/min refill has not produced a fourth token yet.
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, requestFrom("10.0.0.7:5501"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("budget refills as the window slides", func(t *testing.T) {
		config := httpx.RateLimitConfig{
			RequestsPerWindow: 2,
			Window:            200 * time.Millisecond,
			Burst:             2,
		}
		limited := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler)

		for range 2 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, requestFrom("10.0.0.7:5501"))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, requestFrom("10.0.0.7:5501"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)

		// One token refills every 100ms at this rate.
		time.Sleep(250 * time.Millisecond)

		rec = httptest.NewRecorder()
		limited.ServeHTTP(rec, requestFrom("10.0.0.7:5501"))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unextractable key fails open", func(t *testing.T) {
		config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		noKey := func(*http.Request) string { return "" }
		limited := httpx.RateLimitMiddleware(config, noKey)(okHandler)

		// Dropping traffic we cannot attribute would be an outage, not
		// a limit; three requests against a budget of one all pass.
		for range 3 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, requestFrom("10.0.0.7:5501"))
			require.Equal(t, http.StatusOK, rec.Code)
		}
	})
}

// TestRateLimitByAccount pins the keying behaviour the two-factor endpoints
// depend on: each account burns its own budget, and unauthenticated traffic
// degrades to per-address limiting instead of one shared anonymous bucket.
func TestRateLimitByAccount(t *testing.T) {
	config := httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}

	t.Run("accounts behind one NAT do not collide", func(t *testing.T) {
		limited := httpx.RateLimitByAccount(config)(okHandler)

		for range 2 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, authenticatedRequest("account-alice", "10.0.0.7:5501"))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, authenticatedRequest("account-alice", "10.0.0.7:5501"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code, "alice's budget is spent")

		rec = httptest.NewRecorder()
		limited.ServeHTTP(rec, authenticatedRequest("account-bob", "10.0.0.7:5501"))
		require.Equal(t, http.StatusOK, rec.Code, "bob shares the address but not the budget")
	})

	t.Run("rotating addresses does not stretch the budget", func(t *testing.T) {
		limited := httpx.RateLimitByAccount(config)(okHandler)

		// Two attempts from one address, a third from another. The key
		// is the account, so the third attempt finds an empty bucket.
		for range 2 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, authenticatedRequest("account-mallory", "10.0.0.7:5501"))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, authenticatedRequest("account-mallory", "198.51.100.23:5501"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("unauthenticated requests limit by address", func(t *testing.T) {
		limited := httpx.RateLimitByAccount(config)(okHandler)

		for range 2 {
			rec := httptest.NewRecorder()
			limited.ServeHTTP(rec, requestFrom("10.0.0.9:5501"))
			require.Equal(t, http.StatusOK, rec.Code)
		}

		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, requestFrom("10.0.0.9:5501"))
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}

// TestRateLimitResponseContract covers the pieces securitysdk parses out of
// a 429: the Retry-After header and the error envelope.
func TestRateLimitResponseContract(t *testing.T) {
	config := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
	limited := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler)

	rec := httptest.NewRecorder()
	limited.ServeHTTP(rec, requestFrom("10.0.0.7:5501"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	limited.ServeHTTP(rec, requestFrom("10.0.0.7:5501"))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	retryAfter, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err, "Retry-After must be whole seconds")
	require.GreaterOrEqual(t, retryAfter, 1)
	require.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
	require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))

	var envelope map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Equal(t, "rate_limit_exceeded", envelope["error"])
	require.NotEmpty(t, envelope["error_description"])
}

func TestRateLimitProfiles(t *testing.T) {
	profiles := map[string]httpx.RateLimitConfig{
		"strict":    httpx.StrictLimit,
		"moderate":  httpx.ModerateLimit,
		"lenient":   httpx.LenientLimit,
		"public":    httpx.PublicLimit,
		"twofactor": httpx.TwoFactorLimit,
	}

	for name, config := range profiles {
		t.Run(name, func(t *testing.T) {
			require.Greater(t, config.RequestsPerWindow, 0)
			require.Greater(t, config.Window, time.Duration(0))
			require.Greater(t, config.Burst, 0)
		})
	}

	// The general-purpose tiers escalate: strict, moderate, lenient, public.
	require.Less(t, httpx.StrictLimit.RequestsPerWindow, httpx.ModerateLimit.RequestsPerWindow)
	require.Less(t, httpx.ModerateLimit.RequestsPerWindow, httpx.LenientLimit.RequestsPerWindow)
	require.Less(t, httpx.LenientLimit.RequestsPerWindow, httpx.PublicLimit.RequestsPerWindow)

	// The two-factor budget is 5 attempts per 15 minutes. A 6-digit code
	// has a million values; at this rate an online guesser needs years.
	require.Equal(t, 5, httpx.TwoFactorLimit.RequestsPerWindow)
	require.Equal(t, 15*time.Minute, httpx.TwoFactorLimit.Window)
	require.Equal(t, 5, httpx.TwoFactorLimit.Burst)

	perSecond := func(c httpx.RateLimitConfig) float64 {
		return float64(c.RequestsPerWindow) / c.Window.Seconds()
	}
	for name, config := range profiles {
		if name == "twofactor" {
			continue
		}
		require.Less(t, perSecond(httpx.TwoFactorLimit), perSecond(config),
			"twofactor must refill slower than %s", name)
	}
}

func TestParseRateLimitFromEnv(t *testing.T) {
	defaults := httpx.RateLimitConfig{
		RequestsPerWindow: 10,
		Window:            time.Minute,
		Burst:             10,
	}

	t.Run("defaults survive an empty environment", func(t *testing.T) {
		require.Equal(t, defaults, httpx.ParseRateLimitFromEnv("E2ETEST", defaults))
	})

	t.Run("each field overrides independently", func(t *testing.T) {
		t.Setenv("RATELIMIT_E2ETEST_REQUESTS", "3")
		config := httpx.ParseRateLimitFromEnv("E2ETEST", defaults)
		require.Equal(t, 3, config.RequestsPerWindow)
		require.Equal(t, defaults.Window, config.Window)
		require.Equal(t, defaults.Burst, config.Burst)

		t.Setenv("RATELIMIT_E2ETEST_WINDOW_SEC", "900")
		t.Setenv("RATELIMIT_E2ETEST_BURST", "7")
		config = httpx.ParseRateLimitFromEnv("E2ETEST", defaults)
		require.Equal(t, 3, config.RequestsPerWindow)
		require.Equal(t, 900*time.Second, config.Window)
		require.Equal(t, 7, config.Burst)
	})

	t.Run("garbage and non-positive values are ignored", func(t *testing.T) {
		t.Setenv("RATELIMIT_E2ETEST_REQUESTS", "many")
		t.Setenv("RATELIMIT_E2ETEST_WINDOW_SEC", "-60")
		t.Setenv("RATELIMIT_E2ETEST_BURST", "0")

		require.Equal(t, defaults, httpx.ParseRateLimitFromEnv("E2ETEST", defaults))
	})
}

func BenchmarkRateLimitMiddleware(b *testing.B) {
	config := httpx.RateLimitConfig{
		RequestsPerWindow: 1 << 20, // never the bottleneck
		Window:            time.Minute,
		Burst:             1 << 10,
	}
	limited := httpx.RateLimitByAccount(config)(okHandler)
	req := authenticatedRequest("01J8ZC3VJ4Q0AZX1T5W8QK2M3N", "10.0.0.7:5501")

	for b.Loop() {
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
	}
}

// BenchmarkRateLimitKeyChurn exercises the limiter map with a new key per
// request, the worst case for the sync.Map and the cleanup heuristic.
func BenchmarkRateLimitKeyChurn(b *testing.B) {
	config := httpx.RateLimitConfig{
		RequestsPerWindow: 1 << 20,
		Window:            time.Minute,
		Burst:             1 << 10,
	}
	limited := httpx.RateLimitMiddleware(config, httpx.IPKeyExtractor)(okHandler)

	for i := 0; b.Loop(); i++ {
		req := requestFrom(fmt.Sprintf("10.%d.%d.%d:5501", i%200, (i/200)%200, (i/40000)%200))
		rec := httptest.NewRecorder()
		limited.ServeHTTP(rec, req)
	}
}
