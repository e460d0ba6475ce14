package securitysdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/hearthsocial/hearth/pkg/httpx"
)

// ============================================================================
// Stable Machine Codes
// ============================================================================

// Every denial and domain failure carries one of these codes so clients can
// branch on behavior without parsing prose messages. Codes are part of the
// public API surface and must never be renamed once shipped.
const (
	// Validation and malformed input
	ErrorCodeInvalidRequest = "INVALID_REQUEST"
	ErrorCodeInvalidToken   = "INVALID_TOKEN"

	// Domain conflicts (HTTP 400)
	ErrorCodeSelfAction            = "SELF_ACTION"
	ErrorCodeAlreadyBlocked        = "ALREADY_BLOCKED"
	ErrorCodeNotBlocked            = "NOT_BLOCKED"
	ErrorCodeAlreadyFollowing      = "ALREADY_FOLLOWING"
	ErrorCodeNotFollowing          = "NOT_FOLLOWING"
	ErrorCodeDuplicateRequest      = "DUPLICATE_REQUEST"
	ErrorCodeRequestsDisabled      = "REQUESTS_DISABLED"
	ErrorCodeInvalidPrivacySetting = "INVALID_PRIVACY_SETTING"

	// Missing resources (HTTP 404)
	ErrorCodeAccountNotFound = "ACCOUNT_NOT_FOUND"
	ErrorCodeRequestNotFound = "REQUEST_NOT_FOUND"

	// Authorization denials (HTTP 403)
	ErrorCodeBlocked           = "BLOCKED"
	ErrorCodeContentHidden     = "CONTENT_HIDDEN"
	ErrorCodeProfilePrivate    = "PROFILE_PRIVATE"
	ErrorCodeMessagesClosed    = "MESSAGES_CLOSED"
	ErrorCodeTwoFactorRequired = "2FA_REQUIRED"

	// Bad credentials (HTTP 400, never reveal which part was wrong)
	ErrorCodeInvalidTwoFactor   = "INVALID_2FA_TOKEN"
	ErrorCodeInvalidCredentials = "INVALID_CREDENTIALS"

	// Two-factor state mismatches (HTTP 400)
	ErrorCodeTwoFactorNotEnabled = "2FA_NOT_ENABLED"
	ErrorCodeTwoFactorEnabled    = "2FA_ALREADY_ENABLED"

	// Server faults (HTTP 500)
	ErrorCodeIntegrity   = "INTEGRITY_ERROR"
	ErrorCodeGuardError  = "GUARD_ERROR"
	ErrorCodeServerError = "SERVER_ERROR"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is the error envelope the security service speaks. It implements
// the error interface and is used both by the server (to write HTTP
// responses) and by the SDK client (to represent parsed errors).
type APIError struct {
	// StatusCode picks the HTTP status; it never goes on the wire itself
	StatusCode int `json:"-"`

	// Code is the stable machine-readable code (e.g., "BLOCKED", "2FA_REQUIRED")
	Code string `json:"error"`

	// Message is prose for humans; clients branch on Code
	Message string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// WriteError writes this APIError to an HTTP response writer.
// This is used by HTTP handlers to return consistent error responses.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Message,
	})
}

// NewAPIError creates an APIError with the given status code, machine code,
// and description. Prefer the predefined errors where one fits.
func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// IsCode reports whether err is (or wraps) an APIError carrying the given
// machine code. This is the intended way for clients to branch on failures.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == code
	}
	return false
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned when the request body is malformed or is
	// missing required parameters.
	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "the request is malformed or missing required parameters",
	}

	// ErrMethodNotAllowed rejects verbs a route does not serve.
	ErrMethodNotAllowed = &APIError{
		StatusCode: http.StatusMethodNotAllowed,
		Code:       ErrorCodeInvalidRequest,
		Message:    "method not allowed",
	}

	// ErrInvalidToken is returned when the access token is missing, expired,
	// or malformed.
	ErrInvalidToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidToken,
		Message:    "the access token is missing, expired, or malformed",
	}

	// ErrServerError is returned when the service encountered an unexpected
	// condition that prevented it from fulfilling the request.
	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}

	// ErrIntegrity is returned when stored security material failed
	// cryptographic verification. This is a page-the-oncall condition, never
	// a retry-it-later one.
	ErrIntegrity = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeIntegrity,
		Message:    "stored security data failed integrity verification",
	}
)

// ============================================================================
// Error Parsing
// ============================================================================

// RateLimitedError is returned when the service throttles a caller.
// Two-factor endpoints enforce a hard per-account budget; clients should
// back off for RetryAfter seconds rather than hammering the endpoint.
type RateLimitedError struct {
	RetryAfter int `json:"retry_after"`
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limited: retry after %d seconds", e.RetryAfter)
}

// parseErrorResponse maps a response onto the typed errors above. Success
// statuses map to nil.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// Rate limiting carries the retry hint in the Retry-After header
	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &RateLimitedError{RetryAfter: retryAfter}
	}

	// Try parsing as the standard error envelope
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       errResp.Error,
			Message:    errResp.ErrorDescription,
		}
	}

	// An unparseable body still surfaces as an APIError with the status text
	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
