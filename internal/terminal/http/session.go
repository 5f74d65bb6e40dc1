package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/gemterm/internal/terminal/service"
	"github.com/aussiebroadwan/gemterm/pkg/httpx"
	"github.com/aussiebroadwan/gemterm/pkg/slogx"
	"github.com/aussiebroadwan/gemterm/pkg/termsdk"
)

type SessionHandler struct {
	Entitlements *service.EntitlementService
	Sessions     *service.SessionService
}

// HandleCreate godoc
//
//	@Summary		Login Endpoint
//	@Description	Redeem an invite code for an identity and start a session.
//	@Description	The first redemption binds the code to the identity; the same identity may log in again with it.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		termsdk.LoginRequest	true	"identity and invite code"
//	@Success		200		{object}	termsdk.LoginResponse	"access_token, token_type, expires_at, session"
//	@Failure		400		{object}	termsdk.APIError		"malformed_identity, invalid_request"
//	@Failure		401		{object}	termsdk.APIError		"invalid_code, code_expired"
//	@Failure		403		{object}	termsdk.APIError		"code_already_bound"
//	@Failure		429		{object}	termsdk.APIError		"rate_limit_exceeded"
//	@Router			/v1/session [post].
func (h *SessionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req termsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		termsdk.ErrInvalidJSON.WriteError(w)
		return
	}

	sess, err := h.Entitlements.Redeem(ctx, req.Identity, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMalformedIdentity):
			termsdk.ErrMalformedIdentity.WriteError(w)
		case errors.Is(err, service.ErrInvalidCode):
			termsdk.ErrInvalidCode.WriteError(w)
		case errors.Is(err, service.ErrCodeExpired):
			termsdk.ErrCodeExpired.WriteError(w)
		case errors.Is(err, service.ErrCodeAlreadyBound):
			termsdk.ErrCodeAlreadyBound.WriteError(w)
		default:
			log.Error("failed to redeem invite code", "error", err)
			termsdk.ErrServerError.WriteError(w)
		}
		return
	}

	issued, err := h.Sessions.Issue(ctx, sess)
	if err != nil {
		termsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, termsdk.LoginResponse{
		AccessToken: issued.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   issued.Session.ExpiryDate.Unix(),
		Session:     sessionInfo(issued.Session),
	})
}

// HandleGet godoc
//
//	@Summary		Current Session
//	@Description	Returns the caller's session.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	termsdk.SessionInfo	"id, identity, isAdmin, expiryDate"
//	@Failure		401	{object}	termsdk.APIError	"invalid_token"
//	@Security		BearerAuth
//	@Router			/v1/session [get].
func (h *SessionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())
	httpx.WriteJSON(w, http.StatusOK, termsdk.SessionInfo{
		ID:         p.SessionID,
		Identity:   p.Identity,
		IsAdmin:    p.Admin,
		ExpiryDate: p.ExpiresAt,
	})
}

// HandleDelete godoc
//
//	@Summary		Logout
//	@Description	Ends the caller's session and its live terminal. The token stops working immediately.
//	@Tags			Session
//	@Success		204
//	@Failure		401	{object}	termsdk.APIError	"invalid_token"
//	@Security		BearerAuth
//	@Router			/v1/session [delete].
func (h *SessionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := httpx.PrincipalFromContext(ctx)

	if err := h.Sessions.Logout(ctx, p.SessionID); err != nil {
		termsdk.ErrServerError.WriteError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
