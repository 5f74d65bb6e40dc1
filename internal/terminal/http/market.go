package http

import (
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"

	"github.com/aussiebroadwan/gemterm/internal/terminal/analysis"
	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/internal/terminal/market"
	"github.com/aussiebroadwan/gemterm/pkg/httpx"
	"github.com/aussiebroadwan/gemterm/pkg/termsdk"
)

// MarketHandler exposes the provider feeds directly for the views that are
// not driven by the terminal (discovery, mainstream, whale, news). Provider
// failures always come back as empty lists.
type MarketHandler struct {
	Feed     *market.Feed
	Analyzer analysis.Provider

	rngOnce sync.Once
	rngMu   sync.Mutex
	rng     *rand.Rand
}

type tokensBody struct {
	Tokens []domain.Token `json:"tokens"`
}

// chainParam defaults to solana when absent.
func chainParam(r *http.Request) (domain.Chain, bool) {
	raw := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("chain")))
	if raw == "" {
		return domain.ChainSolana, true
	}
	c := domain.Chain(raw)
	return c, c.Supported()
}

// HandleSearch godoc
//
//	@Summary		Search Tokens
//	@Description	Free-text or address search, deduplicated by token address, at most 20 results.
//	@Tags			Market
//	@Produce		json
//	@Param			q	query		string					true	"query"
//	@Success		200	{object}	termsdk.TokensResponse	"tokens"
//	@Security		BearerAuth
//	@Router			/v1/market/search [get].
func (h *MarketHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	tokens := h.Feed.Search(r.Context(), r.URL.Query().Get("q"))
	httpx.WriteJSON(w, http.StatusOK, tokensBody{Tokens: tokens})
}

// HandleGems godoc
//
//	@Summary		Latest Gems
//	@Description	Latest tokens on a chain, at most 20.
//	@Tags			Market
//	@Produce		json
//	@Param			chain	query		string					false	"solana (default), ethereum, base, polygon"
//	@Success		200		{object}	termsdk.TokensResponse	"tokens"
//	@Failure		400		{object}	termsdk.APIError		"unsupported_chain"
//	@Security		BearerAuth
//	@Router			/v1/market/gems [get].
func (h *MarketHandler) HandleGems(w http.ResponseWriter, r *http.Request) {
	chain, ok := chainParam(r)
	if !ok {
		termsdk.ErrUnsupportedChain.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, tokensBody{Tokens: h.Feed.Gems(r.Context(), chain)})
}

// HandleMainstream godoc
//
//	@Summary		Mainstream Coins
//	@Description	Best-liquidity pair for each well-known symbol.
//	@Tags			Market
//	@Produce		json
//	@Success		200	{object}	termsdk.TokensResponse	"tokens"
//	@Security		BearerAuth
//	@Router			/v1/market/mainstream [get].
func (h *MarketHandler) HandleMainstream(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, tokensBody{Tokens: h.Feed.Mainstream(r.Context())})
}

// HandleWhales godoc
//
//	@Summary		Whale Movements
//	@Description	Large transfers on a chain. Entries with simulated=true are generated, not observed on chain.
//	@Tags			Market
//	@Produce		json
//	@Param			chain	query		string					false	"solana (default), ethereum, base, polygon"
//	@Success		200		{object}	termsdk.WhalesResponse	"chain, movements"
//	@Failure		400		{object}	termsdk.APIError		"unsupported_chain"
//	@Security		BearerAuth
//	@Router			/v1/market/whales [get].
func (h *MarketHandler) HandleWhales(w http.ResponseWriter, r *http.Request) {
	chain, ok := chainParam(r)
	if !ok {
		termsdk.ErrUnsupportedChain.WriteError(w)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, struct {
		Chain     domain.Chain           `json:"chain"`
		Movements []domain.WhaleMovement `json:"movements"`
	}{chain, h.Feed.WhaleMovements(r.Context(), chain)})
}

// HandleNews godoc
//
//	@Summary		Market News
//	@Description	Curated headlines.
//	@Tags			Market
//	@Produce		json
//	@Success		200	{object}	termsdk.NewsResponse	"items"
//	@Security		BearerAuth
//	@Router			/v1/market/news [get].
func (h *MarketHandler) HandleNews(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, struct {
		Items []domain.NewsItem `json:"items"`
	}{h.Feed.GlobalNews(r.Context())})
}

// HandleAnalyze godoc
//
//	@Summary		Analyze Token
//	@Description	One-shot analysis and price estimate for a token outside the terminal selection (mainstream detail view).
//	@Description	Provider failures yield the fixed fallback analysis (fallback=true).
//	@Tags			Analysis
//	@Accept			json
//	@Produce		json
//	@Param			request	body		termsdk.AnalysisRequest		true	"token"
//	@Success		200		{object}	termsdk.AnalysisResponse	"analysis, prediction"
//	@Failure		400		{object}	termsdk.APIError			"invalid_request"
//	@Security		BearerAuth
//	@Router			/v1/analysis [post].
func (h *MarketHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req termsdk.AnalysisRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		termsdk.ErrInvalidJSON.WriteError(w)
		return
	}
	if strings.TrimSpace(req.Token.Symbol) == "" {
		termsdk.NewAPIError(http.StatusBadRequest, termsdk.ErrorCodeInvalidRequest, "token.symbol is required").WriteError(w)
		return
	}

	t := tokenFromWire(req.Token)
	a, err := h.Analyzer.AnalyzeToken(ctx, t)
	if err != nil {
		// Only a cancelled request gets here; the client is gone.
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct {
		Analysis   domain.AIAnalysis `json:"analysis"`
		Prediction domain.Prediction `json:"prediction"`
	}{a, h.predict(t)})
}

func (h *MarketHandler) predict(t domain.Token) domain.Prediction {
	h.rngOnce.Do(func() {
		h.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	})
	h.rngMu.Lock()
	defer h.rngMu.Unlock()
	return analysis.Predict(t, h.rng)
}
