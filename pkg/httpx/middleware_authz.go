package httpx

import (
	"net/http"
	"slices"
	"strings"
)

// RequireAnyScope admits requests whose token carries at least one of the
// listed scopes. Routes here register exactly one scope each; the variadic
// form exists for guard endpoints that accept equivalent grants.
func RequireAnyScope(required ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := scopesFromCtx(r.Context())
			for _, want := range required {
				if slices.Contains(have, want) {
					next.ServeHTTP(w, r)
					return
				}
			}

			writeBearerScopeError(w, required...)
		})
	}
}

// writeBearerScopeError answers 403 with the RFC 6750 insufficient_scope
// challenge, naming the scopes that would have been accepted.
func writeBearerScopeError(w http.ResponseWriter, required ...string) {
	w.Header().Set("WWW-Authenticate",
		`Bearer error="insufficient_scope", scope="`+strings.Join(required, " ")+`"`)
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte("insufficient_scope"))
}
