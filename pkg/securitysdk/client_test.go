package securitysdk

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSessionScopeChecks(t *testing.T) {
	t.Parallel()

	client := NewSDKClient("https://security.example.com")
	session := client.SessionFromToken("token-abc", "blocks:read blocks:write twofactor:manage")

	t.Run("parses granted scopes", func(t *testing.T) {
		require.True(t, session.HasScope("blocks:read"))
		require.True(t, session.HasScope("twofactor:manage"))
		require.False(t, session.HasScope("follows:write"))
		require.ElementsMatch(t,
			[]string{"blocks:read", "blocks:write", "twofactor:manage"},
			session.Scopes(),
		)
	})

	t.Run("missing scope is reported by name", func(t *testing.T) {
		err := session.checkScopes("follows:write", "blocks:read")
		require.Error(t, err)
		require.Contains(t, err.Error(), "follows:write")
		require.NotContains(t, err.Error(), "blocks:read")
	})

	t.Run("no required scopes passes", func(t *testing.T) {
		require.NoError(t, session.checkScopes())
	})

	t.Run("disabled client-side checking", func(t *testing.T) {
		relaxed := NewSDKClient("https://security.example.com")
		relaxed.CheckScopes = false
		s := relaxed.SessionFromToken("token-abc", "")
		require.NoError(t, s.checkScopes("anything:at-all"))
	})
}

func TestIsCode(t *testing.T) {
	t.Parallel()

	apiErr := NewAPIError(http.StatusForbidden, ErrorCodeBlocked, "a block exists between these accounts")
	require.True(t, IsCode(apiErr, ErrorCodeBlocked))
	require.False(t, IsCode(apiErr, ErrorCodeContentHidden))

	// Wrapped errors still match
	wrapped := fmt.Errorf("check failed: %w", apiErr)
	require.True(t, IsCode(wrapped, ErrorCodeBlocked))

	// Unrelated errors never match
	require.False(t, IsCode(fmt.Errorf("plain failure"), ErrorCodeBlocked))
	require.False(t, IsCode(nil, ErrorCodeBlocked))
}

func TestParseErrorResponse(t *testing.T) {
	t.Parallel()

	t.Run("success is nil", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusOK}
		require.NoError(t, parseErrorResponse(resp, nil))
	})

	t.Run("standard envelope", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusBadRequest}
		body := []byte(`{"error":"SELF_ACTION","error_description":"you cannot block yourself"}`)

		err := parseErrorResponse(resp, body)
		require.Error(t, err)

		apiErr, ok := err.(*APIError)
		require.True(t, ok)
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		require.Equal(t, ErrorCodeSelfAction, apiErr.Code)
		require.Equal(t, "you cannot block yourself", apiErr.Message)
	})

	t.Run("rate limited reads the Retry-After header", func(t *testing.T) {
		resp := &http.Response{
			StatusCode: http.StatusTooManyRequests,
			Header:     http.Header{"Retry-After": []string{"42"}},
		}
		body := []byte(`{"error":"rate_limit_exceeded","error_description":"Too many requests. Please try again later."}`)

		err := parseErrorResponse(resp, body)
		rl, ok := err.(*RateLimitedError)
		require.True(t, ok)
		require.Equal(t, 42, rl.RetryAfter)
	})

	t.Run("rate limited without a header still types correctly", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}

		err := parseErrorResponse(resp, nil)
		rl, ok := err.(*RateLimitedError)
		require.True(t, ok)
		require.Equal(t, 0, rl.RetryAfter)
	})

	t.Run("unparseable body falls back to status", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusBadGateway}
		err := parseErrorResponse(resp, []byte("<html>upstream sad</html>"))

		apiErr, ok := err.(*APIError)
		require.True(t, ok)
		require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
		require.Equal(t, ErrorCodeServerError, apiErr.Code)
	})
}
