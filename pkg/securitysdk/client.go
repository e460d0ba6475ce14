package securitysdk

import (
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the Hearth security service.
// It provides access to unauthenticated operations (health, JWKS) and can
// create authenticated Sessions from an access token.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client

	// CheckScopes makes Sessions verify required scopes locally before a
	// request goes out, turning a guaranteed 403 into an immediate error
	// that names the missing scopes. Turn it off to exercise server-side
	// enforcement in tests. On by default.
	CheckScopes bool
}

// NewSDKClient creates a new security service client with scope checking enabled.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		CheckScopes: true,
	}
}

// SessionFromToken creates an authenticated session from an access token
// minted by the identity service. The scope string is the space-delimited
// list of scopes granted to the token; pass the value from the identity
// service's token response so client-side scope checks line up with what
// the server will enforce.
//
// Token refresh stays with the identity service's own SDK. When the token
// expires, create a new Session from the refreshed token.
func (c *SDKClient) SessionFromToken(accessToken, scope string) *Session {
	return &Session{
		client:      c,
		accessToken: accessToken,
		scopes:      parseScopes(scope),
	}
}
