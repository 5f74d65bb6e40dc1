package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aussiebroadwan/gemterm/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func hit(h http.Handler, remote string, mutate func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestIPKeyExtractor(t *testing.T) {
	t.Run("extracts from RemoteAddr", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
	})

	t.Run("prefers X-Forwarded-For", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
		require.Equal(t, "203.0.113.1", httpx.IPKeyExtractor(req))
	})

	t.Run("uses X-Real-IP if X-Forwarded-For absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "192.168.1.1:12345"
		req.Header.Set("X-Real-IP", "203.0.113.2")
		require.Equal(t, "203.0.113.2", httpx.IPKeyExtractor(req))
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("blocks requests over limit", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3})(okHandler)

		for i := range 3 {
			require.Equal(t, http.StatusOK, hit(h, "192.168.1.1:1", nil).Code, "request %d", i+1)
		}

		rec := hit(h, "192.168.1.1:1", nil)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))
		require.Contains(t, rec.Body.String(), "rate_limit_exceeded")
	})

	t.Run("different keys are tracked separately", func(t *testing.T) {
		h := httpx.RateLimitByIP(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1})(okHandler)

		require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1", nil).Code)
		require.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1", nil).Code)
		require.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1", nil).Code)
	})

	t.Run("empty key bypasses limiter", func(t *testing.T) {
		cfg := httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1}
		h := httpx.RateLimitMiddleware(cfg, func(*http.Request) string { return "" })(okHandler)

		for range 3 {
			require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1", nil).Code)
		}
	})
}

func TestRateLimitBySession(t *testing.T) {
	h := httpx.RateLimitBySession(httpx.RateLimitConfig{RequestsPerWindow: 1, Window: time.Minute, Burst: 1})(okHandler)

	as := func(sid string) func(*http.Request) {
		return func(r *http.Request) {
			*r = *r.WithContext(httpx.WithPrincipal(r.Context(), httpx.Principal{SessionID: sid}))
		}
	}

	// Two sessions behind the same NAT get their own buckets.
	require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1", as("a")).Code)
	require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1", as("b")).Code)
	require.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1", as("a")).Code)
}

func TestParseRateLimitFromEnv(t *testing.T) {
	t.Setenv("RATELIMIT_TEST_REQUESTS", "42")
	t.Setenv("RATELIMIT_TEST_WINDOW_SEC", "10")
	t.Setenv("RATELIMIT_TEST_BURST", "-1")

	cfg := httpx.ParseRateLimitFromEnv("TEST", httpx.StrictLimit)
	require.Equal(t, 42, cfg.RequestsPerWindow)
	require.Equal(t, 10*time.Second, cfg.Window)
	require.Equal(t, httpx.StrictLimit.Burst, cfg.Burst)
}

func TestRateLimitProfilesOrdered(t *testing.T) {
	require.Less(t, httpx.StrictLimit.RequestsPerWindow, httpx.ModerateLimit.RequestsPerWindow)
	require.Less(t, httpx.ModerateLimit.RequestsPerWindow, httpx.LenientLimit.RequestsPerWindow)
	require.Less(t, httpx.LenientLimit.RequestsPerWindow, httpx.PublicLimit.RequestsPerWindow)
}
