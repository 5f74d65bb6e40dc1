package httpx

import (
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/gemterm/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig is a token bucket expressed as N requests per window.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

// Profiles. Each can be overridden with RATELIMIT_<NAME>_REQUESTS,
// RATELIMIT_<NAME>_WINDOW_SEC and RATELIMIT_<NAME>_BURST.
var (
	// StrictLimit guards invite redemption against code guessing.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit covers calls that fan out to upstream providers
	// (search, analysis).
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 30, Window: time.Minute, Burst: 10}

	// LenientLimit covers session-scoped reads and watchlist edits.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 120, Window: time.Minute, Burst: 60}

	// PublicLimit covers probes and docs.
	PublicLimit = RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
)

func init() {
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
	PublicLimit = ParseRateLimitFromEnv("PUBLIC", PublicLimit)
}

// ParseRateLimitFromEnv overlays RATELIMIT_<prefix>_* values on def.
// Non-positive or unparsable values are ignored.
func ParseRateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	cfg := def
	if n, ok := positiveEnvInt("RATELIMIT_" + prefix + "_REQUESTS"); ok {
		cfg.RequestsPerWindow = n
	}
	if n, ok := positiveEnvInt("RATELIMIT_" + prefix + "_WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnvInt("RATELIMIT_" + prefix + "_BURST"); ok {
		cfg.Burst = n
	}
	return cfg
}

func positiveEnvInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// KeyExtractor buckets requests for rate limiting. An empty key bypasses the limiter.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor honours X-Forwarded-For and X-Real-IP before RemoteAddr.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// SessionKeyExtractor keys on the authenticated session, if any.
func SessionKeyExtractor(r *http.Request) string {
	if p, ok := PrincipalFromContext(r.Context()); ok {
		return p.SessionID
	}
	return ""
}

type limiterSet struct {
	limiters sync.Map // key -> *rate.Limiter
	rate     rate.Limit
	burst    int

	mu          sync.Mutex
	lastCleanup time.Time
}

func (ls *limiterSet) get(key string) *rate.Limiter {
	if l, ok := ls.limiters.Load(key); ok {
		return l.(*rate.Limiter)
	}
	actual, _ := ls.limiters.LoadOrStore(key, rate.NewLimiter(ls.rate, ls.burst))
	ls.sweep()
	return actual.(*rate.Limiter)
}

// sweep drops idle limiters (full buckets) at most every five minutes.
func (ls *limiterSet) sweep() {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if time.Since(ls.lastCleanup) < 5*time.Minute {
		return
	}
	ls.lastCleanup = time.Now()

	ls.limiters.Range(func(k, v any) bool {
		if v.(*rate.Limiter).Tokens() >= float64(ls.burst) {
			ls.limiters.Delete(k)
		}
		return true
	})
}

// RateLimitMiddleware enforces cfg per key. Rejected requests get a 429 with
// Retry-After and X-RateLimit-* headers.
func RateLimitMiddleware(cfg RateLimitConfig, keyFn KeyExtractor) Middleware {
	ls := &limiterSet{
		rate:        rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:       cfg.Burst,
		lastCleanup: time.Now(),
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			l := ls.get(key)
			if l.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			res := l.Reserve()
			retryAfter := max(int(res.Delay().Seconds()), 1)
			res.Cancel()

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", key,
				"endpoint", r.URL.Path,
				"retry_after", retryAfter,
			)
			WriteError(w, http.StatusTooManyRequests, "rate_limit_exceeded", "Too many requests. Please try again later.")
		})
	}
}

func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitBySession limits per session, falling back to the client IP.
func RateLimitBySession(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, func(r *http.Request) string {
		if k := SessionKeyExtractor(r); k != "" {
			return "s:" + k
		}
		return "ip:" + IPKeyExtractor(r)
	})
}
