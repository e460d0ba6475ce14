package securitysdk

import (
	"fmt"
	"strings"
)

// Session represents an authenticated caller of the security service.
// Sessions are cheap value holders around an access token; create one per
// token via SDKClient.SessionFromToken.
type Session struct {
	client      *SDKClient
	accessToken string
	scopes      map[string]bool // Granted scopes for fast lookup
}

// parseScopes splits a space-delimited scope string into a lookup set.
func parseScopes(scopeStr string) map[string]bool {
	if scopeStr == "" {
		return make(map[string]bool)
	}

	parts := strings.Fields(scopeStr)
	scopes := make(map[string]bool, len(parts))
	for _, scope := range parts {
		scopes[scope] = true
	}
	return scopes
}

// AccessToken returns the session's access token.
func (s *Session) AccessToken() string {
	return s.accessToken
}

// Scopes returns a copy of the granted scopes as a slice.
func (s *Session) Scopes() []string {
	scopes := make([]string, 0, len(s.scopes))
	for scope := range s.scopes {
		scopes = append(scopes, scope)
	}
	return scopes
}

// HasScope reports whether the token was granted scope.
func (s *Session) HasScope(scope string) bool {
	return s.scopes[scope]
}

// checkScopes fails fast when client-side checking is on and the token's
// grant is missing any of the required scopes.
func (s *Session) checkScopes(required ...string) error {
	if !s.client.CheckScopes || len(required) == 0 {
		return nil
	}

	var missing []string
	for _, scope := range required {
		if !s.scopes[scope] {
			missing = append(missing, scope)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required scope(s): %s", strings.Join(missing, ", "))
	}

	return nil
}
