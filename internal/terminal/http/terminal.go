package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/internal/terminal/refresh"
	"github.com/aussiebroadwan/gemterm/pkg/httpx"
	"github.com/aussiebroadwan/gemterm/pkg/slogx"
	"github.com/aussiebroadwan/gemterm/pkg/termsdk"
)

// TerminalHandler drives the caller's refresh coordinator. Every mutation
// answers with the snapshot taken right after it was applied.
type TerminalHandler struct {
	Terminals *refresh.Registry
}

// coordinator resolves the session's coordinator, writing the error response
// itself when it can't.
func (h *TerminalHandler) coordinator(w http.ResponseWriter, r *http.Request) (*refresh.Coordinator, bool) {
	p, _ := httpx.PrincipalFromContext(r.Context())
	c, err := h.Terminals.Get(p.SessionID)
	if err != nil {
		if errors.Is(err, refresh.ErrClosed) {
			termsdk.ErrSessionClosed.WriteError(w)
			return nil, false
		}
		slogx.FromContext(r.Context()).Error("failed to open terminal", "error", err)
		termsdk.ErrServerError.WriteError(w)
		return nil, false
	}
	return c, true
}

func writeCoordinatorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, refresh.ErrUnsupportedChain):
		termsdk.ErrUnsupportedChain.WriteError(w)
	case errors.Is(err, refresh.ErrInvalidView):
		termsdk.ErrInvalidView.WriteError(w)
	case errors.Is(err, refresh.ErrInvalidToken):
		termsdk.ErrInvalidRequest.WriteError(w)
	case errors.Is(err, refresh.ErrTokenNotListed):
		termsdk.ErrTokenNotListed.WriteError(w)
	case errors.Is(err, refresh.ErrClosed):
		termsdk.ErrSessionClosed.WriteError(w)
	default:
		termsdk.ErrServerError.WriteError(w)
	}
}

// HandleGet godoc
//
//	@Summary		Terminal Snapshot
//	@Description	Returns the caller's terminal state. The first call starts the terminal: the active chain is fetched and then polled every interval.
//	@Tags			Terminal
//	@Produce		json
//	@Success		200	{object}	termsdk.Terminal	"snapshot"
//	@Failure		401	{object}	termsdk.APIError	"invalid_token"
//	@Security		BearerAuth
//	@Router			/v1/terminal [get].
func (h *TerminalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	c, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c.Snapshot())
}

// HandleSetChain godoc
//
//	@Summary		Switch Chain
//	@Description	Switches the active chain. The chain is fetched immediately unless a search is active, and the poll interval restarts.
//	@Tags			Terminal
//	@Accept			json
//	@Produce		json
//	@Param			request	body		termsdk.ChainRequest	true	"chain"
//	@Success		200		{object}	termsdk.Terminal		"snapshot"
//	@Failure		400		{object}	termsdk.APIError		"unsupported_chain"
//	@Security		BearerAuth
//	@Router			/v1/terminal/chain [put].
func (h *TerminalHandler) HandleSetChain(w http.ResponseWriter, r *http.Request) {
	var req termsdk.ChainRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		termsdk.ErrInvalidJSON.WriteError(w)
		return
	}
	c, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	if err := c.SetChain(domain.Chain(req.Chain)); err != nil {
		writeCoordinatorError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c.Snapshot())
}

// HandleSearch godoc
//
//	@Summary		Set Search Query
//	@Description	Records the search text. A query of two or more characters is fetched once it has been unchanged for the debounce window, and suppresses chain polling while set.
//	@Tags			Terminal
//	@Accept			json
//	@Produce		json
//	@Param			request	body		termsdk.SearchRequest	true	"query"
//	@Success		200		{object}	termsdk.Terminal		"snapshot"
//	@Security		BearerAuth
//	@Router			/v1/terminal/search [put].
func (h *TerminalHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req termsdk.SearchRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		termsdk.ErrInvalidJSON.WriteError(w)
		return
	}
	c, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	if err := c.SetQuery(req.Query); err != nil {
		writeCoordinatorError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c.Snapshot())
}

// HandleSelect godoc
//
//	@Summary		Select Token
//	@Description	Selects a token by id from the displayed list, or the given token snapshot, and starts its analysis.
//	@Tags			Terminal
//	@Accept			json
//	@Produce		json
//	@Param			request	body		termsdk.SelectRequest	true	"tokenId or token"
//	@Success		200		{object}	termsdk.Terminal		"snapshot"
//	@Failure		400		{object}	termsdk.APIError		"invalid_request"
//	@Failure		404		{object}	termsdk.APIError		"token_not_listed"
//	@Security		BearerAuth
//	@Router			/v1/terminal/select [post].
func (h *TerminalHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req termsdk.SelectRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		termsdk.ErrInvalidJSON.WriteError(w)
		return
	}
	if req.Token == nil && req.TokenID == "" {
		termsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	c, ok := h.coordinator(w, r)
	if !ok {
		return
	}

	var err error
	if req.Token != nil {
		err = c.Select(tokenFromWire(*req.Token))
	} else {
		err = c.SelectByID(req.TokenID)
	}
	if err != nil {
		writeCoordinatorError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c.Snapshot())
}

// HandleSetView godoc
//
//	@Summary		Switch View
//	@Description	Records which dashboard view the client shows.
//	@Tags			Terminal
//	@Accept			json
//	@Produce		json
//	@Param			request	body		termsdk.ViewRequest	true	"view"
//	@Success		200		{object}	termsdk.Terminal	"snapshot"
//	@Failure		400		{object}	termsdk.APIError	"invalid_view"
//	@Security		BearerAuth
//	@Router			/v1/terminal/view [put].
func (h *TerminalHandler) HandleSetView(w http.ResponseWriter, r *http.Request) {
	var req termsdk.ViewRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		termsdk.ErrInvalidJSON.WriteError(w)
		return
	}
	c, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	if err := c.SetView(domain.View(req.View)); err != nil {
		writeCoordinatorError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, c.Snapshot())
}
