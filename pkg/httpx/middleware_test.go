package httpx_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/gemterm/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestChainOrder(t *testing.T) {
	var trail []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trail = append(trail, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler, mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner"}, trail)
}

func TestAuthnMiddleware(t *testing.T) {
	auth := httpx.AuthenticatorFunc(func(_ context.Context, token string) (httpx.Principal, error) {
		if token == "good" {
			return httpx.Principal{SessionID: "s1", Identity: "a@b.c"}, nil
		}
		return httpx.Principal{}, errors.New("nope")
	})

	var seen httpx.Principal
	h := httpx.AuthnMiddleware(auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = httpx.PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.True(t, strings.HasPrefix(rec.Header().Get("WWW-Authenticate"), "Bearer "))
	})

	t.Run("rejected token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("header token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "a@b.c", seen.Identity)
	})

	t.Run("query token for websockets", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?access_token=good", nil))
		require.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	h := httpx.RequireAdmin()(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)

	req = req.WithContext(httpx.WithPrincipal(req.Context(), httpx.Principal{Admin: true}))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
