package http

import (
	"net/http"

	"github.com/hearthsocial/hearth/pkg/httpx"
	"github.com/hearthsocial/hearth/pkg/jwtx"
	"github.com/hearthsocial/hearth/pkg/securitysdk"
)

// JWKSHandler exposes the JSON Web Key Set this service trusts. In dev mode
// these are the locally minted keys; in production they mirror the identity
// service's published set.
//
//	@Summary		Get JWKS
//	@Description	The public key set access tokens are verified against.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	securitysdk.JWKSResponse	"The JSON Web Key Set"
//	@Router			/.well-known/jwks.json [get].
func JWKSHandler(keys *jwtx.KeySet) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, securitysdk.JWKSResponse(keys.PublicJWKS()))
	}
}
