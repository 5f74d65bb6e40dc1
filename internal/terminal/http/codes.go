package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/internal/terminal/service"
	"github.com/aussiebroadwan/gemterm/pkg/httpx"
	"github.com/aussiebroadwan/gemterm/pkg/slogx"
	"github.com/aussiebroadwan/gemterm/pkg/termsdk"
)

// CodesHandler serves the admin invite-code ledger.
type CodesHandler struct {
	Entitlements *service.EntitlementService
}

// HandleList godoc
//
//	@Summary		List Invite Codes
//	@Description	Returns every ledger entry, newest first. Admin only.
//	@Tags			Admin
//	@Produce		json
//	@Success		200	{object}	termsdk.ListCodesResponse	"codes"
//	@Failure		401	{object}	termsdk.APIError			"invalid_token"
//	@Failure		403	{object}	termsdk.APIError			"forbidden"
//	@Security		BearerAuth
//	@Router			/v1/admin/codes [get].
func (h *CodesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	codes, err := h.Entitlements.ListCodes(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to list invite codes", "error", err)
		termsdk.ErrServerError.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, termsdk.ListCodesResponse{Codes: inviteCodes(codes)})
}

// HandleIssue godoc
//
//	@Summary		Issue Invite Code
//	@Description	Mints a new GEM- code valid for durationDays (at least 1), or forever when lifetime is set. Admin only.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			request	body		termsdk.IssueCodeRequest	true	"duration"
//	@Success		201		{object}	termsdk.InviteCode			"the new code"
//	@Failure		400		{object}	termsdk.APIError			"invalid_duration"
//	@Failure		403		{object}	termsdk.APIError			"forbidden"
//	@Security		BearerAuth
//	@Router			/v1/admin/codes [post].
func (h *CodesHandler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req termsdk.IssueCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		termsdk.ErrInvalidJSON.WriteError(w)
		return
	}

	d := domain.DaysDuration(req.DurationDays)
	if req.Lifetime {
		d = domain.LifetimeDuration()
	}

	code, err := h.Entitlements.IssueCode(ctx, d)
	if err != nil {
		if errors.Is(err, service.ErrInvalidDuration) {
			termsdk.ErrInvalidDuration.WriteError(w)
			return
		}
		termsdk.ErrServerError.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, inviteCode(code))
}

// HandleRevoke godoc
//
//	@Summary		Revoke Invite Code
//	@Description	Deletes the code from the ledger. Sessions already granted from it stay valid. Admin only.
//	@Tags			Admin
//	@Param			code	path	string	true	"invite code"
//	@Success		204
//	@Failure		403	{object}	termsdk.APIError	"forbidden"
//	@Security		BearerAuth
//	@Router			/v1/admin/codes/{code} [delete].
func (h *CodesHandler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	if err := h.Entitlements.Revoke(r.Context(), r.PathValue("code")); err != nil {
		termsdk.ErrServerError.WriteError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleBind godoc
//
//	@Summary		Bind Invite Code
//	@Description	Force-binds the code to an identity regardless of its state. Admin only.
//	@Tags			Admin
//	@Accept			json
//	@Produce		json
//	@Param			code	path		string					true	"invite code"
//	@Param			request	body		termsdk.BindCodeRequest	true	"identity"
//	@Success		200		{object}	termsdk.InviteCode		"the bound code"
//	@Failure		400		{object}	termsdk.APIError		"malformed_identity"
//	@Failure		404		{object}	termsdk.APIError		"not_found"
//	@Security		BearerAuth
//	@Router			/v1/admin/codes/{code}/bind [post].
func (h *CodesHandler) HandleBind(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req termsdk.BindCodeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		termsdk.ErrInvalidJSON.WriteError(w)
		return
	}

	code, err := h.Entitlements.ManualBind(ctx, r.PathValue("code"), req.Identity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMalformedIdentity):
			termsdk.ErrMalformedIdentity.WriteError(w)
		case errors.Is(err, service.ErrInvalidCode):
			termsdk.ErrCodeNotFound.WriteError(w)
		default:
			termsdk.ErrServerError.WriteError(w)
		}
		return
	}
	httpx.WriteJSON(w, http.StatusOK, inviteCode(code))
}

// HandleUnbind godoc
//
//	@Summary		Unbind Invite Code
//	@Description	Returns the code to the unused state; the next identity to redeem it claims it. Admin only.
//	@Tags			Admin
//	@Param			code	path	string	true	"invite code"
//	@Success		204
//	@Failure		404	{object}	termsdk.APIError	"not_found"
//	@Security		BearerAuth
//	@Router			/v1/admin/codes/{code}/bind [delete].
func (h *CodesHandler) HandleUnbind(w http.ResponseWriter, r *http.Request) {
	if err := h.Entitlements.Unbind(r.Context(), r.PathValue("code")); err != nil {
		if errors.Is(err, service.ErrInvalidCode) {
			termsdk.ErrCodeNotFound.WriteError(w)
			return
		}
		slogx.FromContext(r.Context()).Error("failed to unbind invite code", "error", err)
		termsdk.ErrServerError.WriteError(w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
