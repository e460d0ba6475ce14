package http

import (
	"log/slog"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/hearthsocial/hearth/api/security" // swagger docs
	"github.com/hearthsocial/hearth/internal/security/guard"
	"github.com/hearthsocial/hearth/internal/security/service"
	"github.com/hearthsocial/hearth/internal/security/store"
	"github.com/hearthsocial/hearth/pkg/httpx"
	"github.com/hearthsocial/hearth/pkg/jwtx"
	"github.com/hearthsocial/hearth/pkg/slogx"
)

// Router handles all routing for the security service.
type Router struct {
	Mux *http.ServeMux

	middlewares  []httpx.Middleware
	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	issuer       string
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	BlockService      *service.BlockService
	VisibilityService *service.VisibilityService
	FollowService     *service.FollowService
	TwoFactorService  *service.TwoFactorService
	Guards            *guard.Chains
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	issuer, buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		issuer:       issuer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerBlocks()
	r.registerPrivacy()
	r.registerFollows()
	r.registerAccess()
	r.registerTwoFactor()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP wraps the mux in the global middleware chain on every request.
//
//	@title			Hearth Security Service API
//	@version		0.1.0
//	@description	Access control core for the Hearth platform: blocks, per-post visibility, follow approvals, and TOTP two-factor authentication.
//	@description
//	@description				Access tokens are issued by the identity service, signed with EdDSA (Ed25519), and verified here against its JWKS.
//
//	@contact.name				Hearth Social Team
//	@contact.url				https://github.com/hearthsocial/hearth
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Identity-service access token, sent as "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerBlocks() {
	h := &BlocksHandler{BlockService: r.BlockService}

	// Writes get a moderate per-account limit; nobody blocks 20 accounts a
	// minute by hand.
	r.Mux.Handle("POST /v1/blocks",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("blocks:write"),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("DELETE /v1/blocks/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("blocks:write"),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	// Reads are cheap and paginated
	r.Mux.Handle("GET /v1/blocks",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("blocks:read"),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /v1/blocks/{id}/status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("blocks:read"),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerPrivacy() {
	h := &PrivacyHandler{VisibilityService: r.VisibilityService}

	r.Mux.Handle("GET /v1/privacy",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("privacy:read"),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("PATCH /v1/privacy",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("privacy:write"),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerFollows() {
	h := &FollowsHandler{FollowService: r.FollowService}

	r.Mux.Handle("POST /v1/follows",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("follows:write"),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("DELETE /v1/follows/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("follows:write"),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /v1/follow-requests",
		httpx.Chain(http.HandlerFunc(h.HandleListRequests),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("follows:read"),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /v1/follow-requests/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleResolve),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("follows:write"),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerAccess() {
	h := &AccessHandler{
		Guards:            r.Guards,
		VisibilityService: r.VisibilityService,
	}

	// Access checks sit on the hot path of every feed render and profile
	// view in the platform, so they get the lenient budget.
	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("access:check"),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("POST /v1/access/profile", secured(h.HandleProfile))
	r.Mux.Handle("POST /v1/access/content", secured(h.HandleContent))
	r.Mux.Handle("POST /v1/access/message", secured(h.HandleMessage))
	r.Mux.Handle("POST /v1/access/interaction", secured(h.HandleInteraction))
	r.Mux.Handle("POST /v1/visibility/filter", secured(h.HandleFilter))
}

func (r *Router) registerTwoFactor() {
	h := &TwoFactorHandler{TwoFactorService: r.TwoFactorService}

	// Setup only mints a candidate secret, nothing is verified yet
	r.Mux.Handle("POST /v1/2fa/setup",
		httpx.Chain(http.HandlerFunc(h.HandleSetup),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("twofactor:manage"),
			httpx.RateLimitByAccount(httpx.ModerateLimit),
		),
	)

	// Everything that verifies a code shares ONE limiter instance, so the
	// five-attempts-per-15-minutes budget holds across endpoints. Spreading
	// guesses over enable/verify/disable must not multiply the allowance.
	codeAttemptLimit := httpx.RateLimitByAccount(httpx.TwoFactorLimit)
	verifying := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("twofactor:manage"),
			codeAttemptLimit,
		)
	}

	r.Mux.Handle("POST /v1/2fa/enable", verifying(h.HandleEnable))
	r.Mux.Handle("POST /v1/2fa/verify", verifying(h.HandleVerify))
	r.Mux.Handle("POST /v1/2fa/backup-codes/verify", verifying(h.HandleVerifyBackupCode))
	r.Mux.Handle("POST /v1/2fa/backup-codes", verifying(h.HandleRegenerateBackupCodes))
	r.Mux.Handle("DELETE /v1/2fa", verifying(h.HandleDisable))

	// Status is a plain read
	r.Mux.Handle("GET /v1/2fa/status",
		httpx.Chain(http.HandlerFunc(h.HandleStatus),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAnyScope("twofactor:manage"),
			httpx.RateLimitByAccount(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	// Public key discovery for services verifying our audience locally
	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.keys),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
