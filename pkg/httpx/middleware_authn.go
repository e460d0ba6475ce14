package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/hearthsocial/hearth/pkg/jwtx"
	"github.com/hearthsocial/hearth/pkg/slogx"
)

// AuthnMiddleware authenticates requests by bearer access token. On success
// the account ID, granted scopes and full claims are injected into the
// request context for handlers and the rate limiter; on failure the
// response is a bare RFC 6750 401 with no body.
func AuthnMiddleware(v jwtx.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok {
				writeBearerError(w, "missing bearer token")
				return
			}

			// Verify covers signature, key identity, expiry, issuer and
			// audience in one pass.
			claims, err := v.Verify(strings.TrimSpace(raw))
			if err != nil {
				slogx.FromContext(ctx).Warn("jwt verify failed", "err", err)
				writeBearerError(w, "token verification failed")
				return
			}

			next.ServeHTTP(w, r.WithContext(contextWithAuth(ctx, claims)))
		})
	}
}

func contextWithAuth(ctx context.Context, c jwtx.Claims) context.Context {
	ctx = context.WithValue(ctx, CtxKeyAccountID, c.Subject)
	ctx = context.WithValue(ctx, CtxKeyScopes, c.Scopes)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// writeBearerError answers 401 with the RFC 6750 invalid_token challenge.
// The description separates a missing token from a rejected one; the body
// stays empty so nothing about the token's state leaks.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	w.WriteHeader(http.StatusUnauthorized)
}
