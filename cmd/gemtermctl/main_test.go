package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/gemterm/pkg/termsdk"
)

// fakeServer answers the admin endpoints gemtermctl calls.
type fakeServer struct {
	mu      sync.Mutex
	issued  []termsdk.IssueCodeRequest
	revoked []string
	logins  int
}

func (f *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	expiry := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seven := 7

	write := func(w http.ResponseWriter, status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(v)
	}
	authed := func(w http.ResponseWriter, r *http.Request) bool {
		if r.Header.Get("Authorization") != "Bearer tok-admin" {
			write(w, http.StatusUnauthorized, map[string]string{"error": "invalid_token"})
			return false
		}
		return true
	}

	mux.HandleFunc("POST /v1/session", func(w http.ResponseWriter, r *http.Request) {
		var req termsdk.LoginRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.logins++
		f.mu.Unlock()
		if req.Code != "MASTER" {
			write(w, http.StatusUnauthorized, map[string]string{"error": "invalid_code", "error_description": "invite code is invalid"})
			return
		}
		write(w, http.StatusOK, termsdk.LoginResponse{
			AccessToken: "tok-admin",
			TokenType:   "Bearer",
			ExpiresAt:   expiry.Unix(),
			Session:     termsdk.SessionInfo{ID: "sid", Identity: req.Identity, IsAdmin: true, ExpiryDate: expiry},
		})
	})
	mux.HandleFunc("GET /v1/session", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		write(w, http.StatusOK, termsdk.SessionInfo{ID: "sid", Identity: "admin@gem.io", IsAdmin: true, ExpiryDate: expiry})
	})
	mux.HandleFunc("GET /v1/admin/codes", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		write(w, http.StatusOK, termsdk.ListCodesResponse{Codes: []termsdk.InviteCode{
			{Code: "GEM-TIMED00001", CreatedAt: created, DurationDays: &seven, ExpiresAt: &expiry},
			{Code: "GEM-LIFE000001", CreatedAt: created, IsUsed: true, UsedBy: "vip@gem.io", ManualBound: true},
		}})
	})
	mux.HandleFunc("POST /v1/admin/codes", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		var req termsdk.IssueCodeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.mu.Lock()
		f.issued = append(f.issued, req)
		n := len(f.issued)
		f.mu.Unlock()
		write(w, http.StatusCreated, termsdk.InviteCode{Code: "GEM-NEW" + strings.Repeat("0", n), CreatedAt: created})
	})
	mux.HandleFunc("DELETE /v1/admin/codes/{code}", func(w http.ResponseWriter, r *http.Request) {
		if !authed(w, r) {
			return
		}
		f.mu.Lock()
		f.revoked = append(f.revoked, r.PathValue("code"))
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", srv.URL}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func newFake(t *testing.T) (*fakeServer, *httptest.Server) {
	t.Helper()
	f := &fakeServer{}
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return f, srv
}

func TestCodesListWithLogin(t *testing.T) {
	f, srv := newFake(t)

	out, err := run(t, srv, "--identity", "admin@gem.io", "--code", "MASTER", "codes", "list")
	require.NoError(t, err)
	require.Contains(t, out, "GEM-TIMED00001")
	require.Contains(t, out, "7d")
	require.Contains(t, out, "2026-01-01")
	require.Contains(t, out, "lifetime")
	require.Contains(t, out, "vip@gem.io (manual)")
	require.Equal(t, 1, f.logins)
}

func TestCodesListWithToken(t *testing.T) {
	f, srv := newFake(t)

	out, err := run(t, srv, "--token", "tok-admin", "--json", "codes", "list")
	require.NoError(t, err)
	require.Zero(t, f.logins)

	var codes []termsdk.InviteCode
	require.NoError(t, json.Unmarshal([]byte(out), &codes))
	require.Len(t, codes, 2)
}

func TestCodesIssue(t *testing.T) {
	f, srv := newFake(t)

	out, err := run(t, srv, "--token", "tok-admin", "codes", "issue", "--days", "30", "--count", "3")
	require.NoError(t, err)
	require.Contains(t, out, "GEM-NEW000")
	require.Len(t, f.issued, 3)
	for _, req := range f.issued {
		require.Equal(t, 30, req.DurationDays)
		require.False(t, req.Lifetime)
	}
}

func TestCodesIssueRequiresOneDuration(t *testing.T) {
	f, srv := newFake(t)

	_, err := run(t, srv, "--token", "tok-admin", "codes", "issue")
	require.Error(t, err)

	_, err = run(t, srv, "--token", "tok-admin", "codes", "issue", "--days", "3", "--lifetime")
	require.Error(t, err)
	require.Empty(t, f.issued)
}

func TestCodesRevoke(t *testing.T) {
	f, srv := newFake(t)

	out, err := run(t, srv, "--token", "tok-admin", "codes", "revoke", "GEM-A", "GEM-B")
	require.NoError(t, err)
	require.Equal(t, []string{"GEM-A", "GEM-B"}, f.revoked)
	require.Contains(t, out, "revoked GEM-B")
}

func TestLoginFailureIsReported(t *testing.T) {
	_, srv := newFake(t)

	_, err := run(t, srv, "--identity", "admin@gem.io", "--code", "WRONG", "login")
	require.ErrorContains(t, err, "invalid_code")
}

func TestCommandsNeedCredentials(t *testing.T) {
	t.Setenv("GEMTERM_TOKEN", "")
	t.Setenv("GEMTERM_IDENTITY", "")
	t.Setenv("GEMTERM_CODE", "")
	_, srv := newFake(t)

	_, err := run(t, srv, "codes", "list")
	require.ErrorContains(t, err, "--token")
}
