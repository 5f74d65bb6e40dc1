package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/gemterm/pkg/slogx"
)

// Authenticator resolves a bearer token into a live Principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Principal, error)
}

type AuthenticatorFunc func(ctx context.Context, token string) (Principal, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, token string) (Principal, error) {
	return f(ctx, token)
}

// BearerToken extracts the token from the Authorization header. Websocket
// clients can't set headers from browsers, so the access_token query
// parameter is accepted as a fallback.
func BearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if raw, ok := strings.CutPrefix(authz, "Bearer "); ok {
		return strings.TrimSpace(raw)
	}
	return strings.TrimSpace(r.URL.Query().Get("access_token"))
}

func AuthnMiddleware(a Authenticator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := BearerToken(r)
			if raw == "" {
				writeBearerError(w, "missing bearer token")
				return
			}

			p, err := a.Authenticate(ctx, raw)
			if err != nil {
				log.Warn("session authentication failed", "error", err)
				writeBearerError(w, "session invalid or expired")
				return
			}

			ctx = slogx.WithSession(WithPrincipal(ctx, p), p.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects callers whose session lacks the admin flag.
func RequireAdmin() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFromContext(r.Context())
			if !ok || !p.Admin {
				WriteError(w, http.StatusForbidden, "forbidden", "admin session required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RFC 6750 error response for bearer auth.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, "invalid_token", desc)
}
