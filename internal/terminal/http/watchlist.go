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

type WatchlistHandler struct {
	Watchlists *service.WatchlistService
}

// HandleList godoc
//
//	@Summary		Watchlist
//	@Description	Returns the caller's watched token snapshots.
//	@Tags			Watchlist
//	@Produce		json
//	@Success		200	{object}	termsdk.WatchlistResponse	"tokens"
//	@Security		BearerAuth
//	@Router			/v1/watchlist [get].
func (h *WatchlistHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := httpx.PrincipalFromContext(ctx)

	tokens, err := h.list(w, r, p.Identity)
	if err != nil {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, struct {
		Tokens []domain.Token `json:"tokens"`
	}{tokens})
}

// HandleToggle godoc
//
//	@Summary		Toggle Watchlist Entry
//	@Description	Adds the token if it is not watched, otherwise removes it. Tokens are keyed by id.
//	@Tags			Watchlist
//	@Accept			json
//	@Produce		json
//	@Param			request	body		termsdk.ToggleWatchlistRequest	true	"token"
//	@Success		200		{object}	termsdk.ToggleWatchlistResponse	"watched, tokens"
//	@Failure		400		{object}	termsdk.APIError				"invalid_request"
//	@Security		BearerAuth
//	@Router			/v1/watchlist/toggle [post].
func (h *WatchlistHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, _ := httpx.PrincipalFromContext(ctx)

	var req termsdk.ToggleWatchlistRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		termsdk.ErrInvalidJSON.WriteError(w)
		return
	}

	watched, err := h.Watchlists.Toggle(ctx, p.Identity, tokenFromWire(req.Token))
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			termsdk.NewAPIError(http.StatusBadRequest, termsdk.ErrorCodeInvalidRequest, "token.id is required").WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("failed to toggle watchlist", "error", err)
		termsdk.ErrServerError.WriteError(w)
		return
	}

	tokens, err := h.list(w, r, p.Identity)
	if err != nil {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, struct {
		Watched bool           `json:"watched"`
		Tokens  []domain.Token `json:"tokens"`
	}{watched, tokens})
}

func (h *WatchlistHandler) list(w http.ResponseWriter, r *http.Request, identity string) ([]domain.Token, error) {
	tokens, err := h.Watchlists.List(r.Context(), identity)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to list watchlist", "error", err)
		termsdk.ErrServerError.WriteError(w)
		return nil, err
	}
	if tokens == nil {
		tokens = []domain.Token{}
	}
	return tokens, nil
}
