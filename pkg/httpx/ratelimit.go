package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/hearthsocial/hearth/pkg/slogx"
)

// RateLimitConfig describes a token-bucket budget: RequestsPerWindow spread
// evenly over Window, with at most Burst spent back to back.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Shared limiter profiles, tightest to loosest. Routes pick a profile at
// registration; tests and staging override them via RATELIMIT_* variables.
var (
	// StrictLimit guards credential-shaped endpoints.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit covers authenticated mutations.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}

	// LenientLimit covers authenticated reads.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100}

	// PublicLimit covers unauthenticated system endpoints.
	PublicLimit = RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}

	// TwoFactorLimit is the attempt budget on code-verifying two-factor
	// endpoints: five per fifteen minutes, shared across TOTP and backup
	// code checks so an attacker cannot sum the budgets.
	TwoFactorLimit = RateLimitConfig{RequestsPerWindow: 5, Window: 15 * time.Minute, Burst: 5}
)

func init() {
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
	PublicLimit = ParseRateLimitFromEnv("PUBLIC", PublicLimit)
	TwoFactorLimit = ParseRateLimitFromEnv("TWOFACTOR", TwoFactorLimit)
}

// ParseRateLimitFromEnv overlays RATELIMIT_<prefix>_REQUESTS, _WINDOW_SEC
// and _BURST onto def. Unset, unparseable or non-positive values keep the
// default; a misconfigured environment must never zero out a limit.
func ParseRateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	config := def
	if n, ok := envPositiveInt("RATELIMIT_" + prefix + "_REQUESTS"); ok {
		config.RequestsPerWindow = n
	}
	if n, ok := envPositiveInt("RATELIMIT_" + prefix + "_WINDOW_SEC"); ok {
		config.Window = time.Duration(n) * time.Second
	}
	if n, ok := envPositiveInt("RATELIMIT_" + prefix + "_BURST"); ok {
		config.Burst = n
	}
	return config
}

func envPositiveInt(name string) (int, bool) {
	val := os.Getenv(name)
	if val == "" {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// KeyExtractor derives the bucket key for a request. An empty key means
// the request cannot be attributed and is exempted from limiting.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor keys by client address: the first X-Forwarded-For hop
// when a proxy set one, then X-Real-IP, then the connection's RemoteAddr.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

// AccountIDKeyExtractor keys by the authenticated account, read from the
// context where AuthnMiddleware put it. Empty for anonymous requests.
func AccountIDKeyExtractor(r *http.Request) string {
	if accountID, ok := r.Context().Value(CtxKeyAccountID).(string); ok {
		return accountID
	}
	return ""
}

// sweepInterval bounds how often a limiter pool scans for idle buckets.
const sweepInterval = 5 * time.Minute

// limiterPool lazily creates one token bucket per key and discards buckets
// that have refilled completely, which only idle keys do.
type limiterPool struct {
	buckets sync.Map // key string -> *rate.Limiter
	limit   rate.Limit
	burst   int

	mu        sync.Mutex
	nextSweep time.Time
}

func newLimiterPool(config RateLimitConfig) *limiterPool {
	return &limiterPool{
		limit:     rate.Limit(float64(config.RequestsPerWindow) / config.Window.Seconds()),
		burst:     config.Burst,
		nextSweep: time.Now().Add(sweepInterval),
	}
}

func (p *limiterPool) get(key string) *rate.Limiter {
	if bucket, ok := p.buckets.Load(key); ok {
		return bucket.(*rate.Limiter)
	}
	bucket, _ := p.buckets.LoadOrStore(key, rate.NewLimiter(p.limit, p.burst))
	p.sweep()
	return bucket.(*rate.Limiter)
}

// sweep drops full buckets so one-off keys cannot grow the map forever. A
// full bucket has not been drawn from for at least a whole window.
func (p *limiterPool) sweep() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Now().Before(p.nextSweep) {
		return
	}
	p.nextSweep = time.Now().Add(sweepInterval)

	p.buckets.Range(func(key, value any) bool {
		if value.(*rate.Limiter).Tokens() >= float64(p.burst) {
			p.buckets.Delete(key)
		}
		return true
	})
}

// RateLimitMiddleware enforces config per extracted key. Throttled requests
// get a 429 carrying Retry-After, X-RateLimit-Limit and X-RateLimit-Window
// plus the standard error envelope; securitysdk surfaces the combination
// as a RateLimitedError.
func RateLimitMiddleware(config RateLimitConfig, extractor KeyExtractor) Middleware {
	pool := newLimiterPool(config)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := extractor(r)
			if key == "" {
				// Unattributable traffic passes; dropping it would turn
				// an extractor bug into an outage.
				log.Warn("rate limit: unable to extract key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			bucket := pool.get(key)
			if bucket.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			// Peek at the wait for the next token without consuming it.
			reservation := bucket.Reserve()
			delay := reservation.Delay()
			reservation.Cancel()
			retryAfter := max(int(delay.Seconds()), 1)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", config.Window.String())

			log.Warn("rate limit exceeded",
				"key", key,
				"endpoint", r.URL.Path,
				"retry_after", retryAfter,
			)

			WriteJSON(w, http.StatusTooManyRequests, map[string]string{
				"error":             "rate_limit_exceeded",
				"error_description": "Too many requests. Please try again later.",
			})
		})
	}
}

// RateLimitByIP limits by client address. Used on the unauthenticated
// system routes.
func RateLimitByIP(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, IPKeyExtractor)
}

// RateLimitByAccount limits by the authenticated account, falling back to
// the client address for anonymous requests. Keying on the account alone
// means rotating source addresses does not stretch the budget.
func RateLimitByAccount(config RateLimitConfig) Middleware {
	extractor := func(r *http.Request) string {
		if id := AccountIDKeyExtractor(r); id != "" {
			return id
		}
		return IPKeyExtractor(r)
	}
	return RateLimitMiddleware(config, extractor)
}
