package termsdk

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Session is an authenticated caller. It is safe for concurrent use.
type Session struct {
	client      *Client
	accessToken string
	info        SessionInfo
}

func (s *Session) AccessToken() string { return s.accessToken }

// Info is the session as returned at login.
func (s *Session) Info() SessionInfo { return s.info }

// Expired reports whether the session's expiry has passed.
func (s *Session) Expired() bool { return !time.Now().Before(s.info.ExpiryDate) }

func (s *Session) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	return s.client.doRequest(ctx, method, path, s.accessToken, body)
}

// GetSession re-reads the session from the server.
func (s *Session) GetSession(ctx context.Context) (*SessionInfo, error) {
	return call[SessionInfo](ctx, s.client, http.MethodGet, "/v1/session", s.accessToken, nil, http.StatusOK)
}

// Logout ends the session server-side; the token stops working.
func (s *Session) Logout(ctx context.Context) error {
	resp, err := s.do(ctx, http.MethodDelete, "/v1/session", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ============================================================================
// Admin: invite codes
// ============================================================================

func (s *Session) ListCodes(ctx context.Context) ([]InviteCode, error) {
	resp, err := call[ListCodesResponse](ctx, s.client, http.MethodGet, "/v1/admin/codes", s.accessToken, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return resp.Codes, nil
}

func (s *Session) IssueCode(ctx context.Context, req IssueCodeRequest) (*InviteCode, error) {
	return call[InviteCode](ctx, s.client, http.MethodPost, "/v1/admin/codes", s.accessToken, req, http.StatusCreated)
}

// RevokeCode deletes code from the ledger. Revoking an unknown code is not
// an error.
func (s *Session) RevokeCode(ctx context.Context, code string) error {
	resp, err := s.do(ctx, http.MethodDelete, "/v1/admin/codes/"+url.PathEscape(code), nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// BindCode force-binds code to identity.
func (s *Session) BindCode(ctx context.Context, code, identity string) (*InviteCode, error) {
	return call[InviteCode](ctx, s.client, http.MethodPost, "/v1/admin/codes/"+url.PathEscape(code)+"/bind",
		s.accessToken, BindCodeRequest{Identity: identity}, http.StatusOK)
}

// UnbindCode returns code to the unused state.
func (s *Session) UnbindCode(ctx context.Context, code string) error {
	resp, err := s.do(ctx, http.MethodDelete, "/v1/admin/codes/"+url.PathEscape(code)+"/bind", nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// ============================================================================
// Terminal
// ============================================================================

func (s *Session) Terminal(ctx context.Context) (*Terminal, error) {
	return call[Terminal](ctx, s.client, http.MethodGet, "/v1/terminal", s.accessToken, nil, http.StatusOK)
}

func (s *Session) SetChain(ctx context.Context, chain string) (*Terminal, error) {
	return call[Terminal](ctx, s.client, http.MethodPut, "/v1/terminal/chain", s.accessToken,
		ChainRequest{Chain: chain}, http.StatusOK)
}

// Search sets the search text. The fetch happens once the text has been
// stable for the server's debounce window; use Stream or poll Terminal to
// observe the result.
func (s *Session) Search(ctx context.Context, query string) (*Terminal, error) {
	return call[Terminal](ctx, s.client, http.MethodPut, "/v1/terminal/search", s.accessToken,
		SearchRequest{Query: query}, http.StatusOK)
}

func (s *Session) SelectToken(ctx context.Context, tokenID string) (*Terminal, error) {
	return call[Terminal](ctx, s.client, http.MethodPost, "/v1/terminal/select", s.accessToken,
		SelectRequest{TokenID: tokenID}, http.StatusOK)
}

func (s *Session) SetView(ctx context.Context, view string) (*Terminal, error) {
	return call[Terminal](ctx, s.client, http.MethodPut, "/v1/terminal/view", s.accessToken,
		ViewRequest{View: view}, http.StatusOK)
}

// ============================================================================
// Watchlist
// ============================================================================

func (s *Session) Watchlist(ctx context.Context) ([]Token, error) {
	resp, err := call[WatchlistResponse](ctx, s.client, http.MethodGet, "/v1/watchlist", s.accessToken, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return resp.Tokens, nil
}

func (s *Session) ToggleWatchlist(ctx context.Context, t Token) (*ToggleWatchlistResponse, error) {
	return call[ToggleWatchlistResponse](ctx, s.client, http.MethodPost, "/v1/watchlist/toggle", s.accessToken,
		ToggleWatchlistRequest{Token: t}, http.StatusOK)
}

// ============================================================================
// Market
// ============================================================================

func (s *Session) SearchTokens(ctx context.Context, query string) ([]Token, error) {
	return s.tokens(ctx, "/v1/market/search?q="+url.QueryEscape(query))
}

func (s *Session) Gems(ctx context.Context, chain string) ([]Token, error) {
	return s.tokens(ctx, "/v1/market/gems?chain="+url.QueryEscape(chain))
}

func (s *Session) Mainstream(ctx context.Context) ([]Token, error) {
	return s.tokens(ctx, "/v1/market/mainstream")
}

func (s *Session) tokens(ctx context.Context, path string) ([]Token, error) {
	resp, err := call[TokensResponse](ctx, s.client, http.MethodGet, path, s.accessToken, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return resp.Tokens, nil
}

func (s *Session) Whales(ctx context.Context, chain string) (*WhalesResponse, error) {
	return call[WhalesResponse](ctx, s.client, http.MethodGet, "/v1/market/whales?chain="+url.QueryEscape(chain),
		s.accessToken, nil, http.StatusOK)
}

func (s *Session) News(ctx context.Context) ([]NewsItem, error) {
	resp, err := call[NewsResponse](ctx, s.client, http.MethodGet, "/v1/market/news", s.accessToken, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Analyze runs a one-shot analysis outside the terminal's selection.
func (s *Session) Analyze(ctx context.Context, t Token) (*AnalysisResponse, error) {
	return call[AnalysisResponse](ctx, s.client, http.MethodPost, "/v1/analysis", s.accessToken,
		AnalysisRequest{Token: t}, http.StatusOK)
}
