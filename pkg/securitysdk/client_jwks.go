package securitysdk

import (
	"context"
	"net/http"
)

// GetJWKS fetches the verification keys the service is currently trusting.
// The set mirrors the identity service's published keys; callers verifying
// tokens themselves should poll this rather than cache one response
// forever.
func (c *SDKClient) GetJWKS(ctx context.Context) (*JWKSResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/.well-known/jwks.json", nil)
	if err != nil {
		return nil, err
	}

	var jwks JWKSResponse
	if err := decodeJSON(resp, &jwks, http.StatusOK); err != nil {
		return nil, err
	}

	return &jwks, nil
}
