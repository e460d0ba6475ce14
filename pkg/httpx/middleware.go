package httpx

import "net/http"

// Middleware wraps a handler with cross-cutting behavior.
type Middleware func(http.Handler) http.Handler

// Chain nests mws around h with the first listed outermost: Chain(h, a, b)
// serves a(b(h)). Request-scoped setup like logging therefore belongs at
// the front of the list.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
