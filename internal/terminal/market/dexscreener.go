package market

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/internal/terminal/telemetry"
	"github.com/aussiebroadwan/gemterm/pkg/slogx"
)

const (
	DefaultDexScreenerURL = "https://api.dexscreener.com"
	DefaultDexScreenerRPS = 5

	providerName = "dexscreener"
)

// MainstreamSymbols are the well-known assets shown on the mainstream board.
var MainstreamSymbols = []string{"BTC", "ETH", "SOL", "DOGE", "BNB", "USDT", "PEPE", "XRP"}

// DexScreener talks to the public DexScreener search API.
type DexScreener struct {
	BaseURL string
	HTTP    *http.Client
	Limiter *rate.Limiter
	Metrics *telemetry.Metrics
}

// NewDexScreener builds a client with an outbound limit of rps requests per
// second. A non-positive rps disables limiting.
func NewDexScreener(baseURL string, rps float64, m *telemetry.Metrics) *DexScreener {
	if baseURL == "" {
		baseURL = DefaultDexScreenerURL
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), max(1, int(rps)))
	}
	return &DexScreener{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
		Limiter: limiter,
		Metrics: m,
	}
}

type dexSearchResponse struct {
	Pairs []dexPair `json:"pairs"`
}

type dexPair struct {
	ChainID     string `json:"chainId"`
	PairAddress string `json:"pairAddress"`
	BaseToken   struct {
		Address string `json:"address"`
		Name    string `json:"name"`
		Symbol  string `json:"symbol"`
	} `json:"baseToken"`
	PriceUSD    string `json:"priceUsd"`
	PriceChange struct {
		H24 float64 `json:"h24"`
	} `json:"priceChange"`
	Volume struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
	FDV       float64 `json:"fdv"`
	Liquidity struct {
		USD float64 `json:"usd"`
	} `json:"liquidity"`
	Info *struct {
		ImageURL string `json:"imageUrl"`
	} `json:"info"`
}

func (p dexPair) token() domain.Token {
	price, _ := strconv.ParseFloat(p.PriceUSD, 64)
	name := p.BaseToken.Name
	if name == "" {
		name = p.BaseToken.Symbol
	}
	t := domain.Token{
		ID:             p.PairAddress,
		Address:        p.BaseToken.Address,
		Name:           name,
		Symbol:         p.BaseToken.Symbol,
		Chain:          normalizeChain(p.ChainID),
		Price:          price,
		PriceChange24h: p.PriceChange.H24,
		Volume24h:      p.Volume.H24,
		MarketCap:      p.FDV,
		Liquidity:      p.Liquidity.USD,
	}
	if p.Info != nil {
		t.ImageURL = p.Info.ImageURL
	}
	return t
}

// normalizeChain maps DexScreener's short chain ids onto ours.
func normalizeChain(id string) domain.Chain {
	if id == "eth" {
		return domain.ChainEthereum
	}
	return domain.Chain(id)
}

// chainQuery is the search term used to list a chain's pairs.
func chainQuery(c domain.Chain) string {
	if c == domain.ChainEthereum {
		return "eth"
	}
	return string(c)
}

func (d *DexScreener) search(ctx context.Context, op, query string) (pairs []dexPair, err error) {
	start := time.Now()
	defer func() {
		d.Metrics.ProviderCall(providerName, op, time.Since(start).Seconds(), err)
	}()

	if err := d.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit wait: %v", ErrProviderUnavailable, err)
	}

	u := d.BaseURL + "/latest/dex/search?q=" + url.QueryEscape(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: dexscreener status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var body dexSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrProviderUnavailable, err)
	}
	return body.Pairs, nil
}

// SearchTokens runs a free-text or address search. Results are deduplicated
// by base token address and capped at MaxResults. A blank query returns
// nothing without calling upstream.
func (d *DexScreener) SearchTokens(ctx context.Context, query string) ([]domain.Token, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	pairs, err := d.search(ctx, "search", query)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(pairs))
	out := make([]domain.Token, 0, min(len(pairs), MaxResults))
	for _, p := range pairs {
		addr := p.BaseToken.Address
		if addr == "" {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, p.token())
		if len(out) >= MaxResults {
			break
		}
	}
	return out, nil
}

// FetchLatestGems lists up to MaxResults pairs trading on chain.
func (d *DexScreener) FetchLatestGems(ctx context.Context, chain domain.Chain) ([]domain.Token, error) {
	if !chain.Supported() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedChain, chain)
	}

	pairs, err := d.search(ctx, "gems", chainQuery(chain))
	if err != nil {
		return nil, err
	}

	out := make([]domain.Token, 0, MaxResults)
	for _, p := range pairs {
		if normalizeChain(p.ChainID) != chain || p.BaseToken.Address == "" {
			continue
		}
		out = append(out, p.token())
		if len(out) >= MaxResults {
			break
		}
	}
	return out, nil
}

// FetchMainstreamCoins searches every MainstreamSymbols entry concurrently
// and keeps the deepest-liquidity pair whose symbol matches. A failing
// symbol is skipped; the call fails only if every symbol failed.
func (d *DexScreener) FetchMainstreamCoins(ctx context.Context) ([]domain.Token, error) {
	logger := slogx.FromContext(ctx)

	picks := make([]*domain.Token, len(MainstreamSymbols))
	failed := make([]error, len(MainstreamSymbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, sym := range MainstreamSymbols {
		g.Go(func() error {
			tokens, err := d.SearchTokens(gctx, sym)
			if err != nil {
				failed[i] = err
				return nil
			}
			picks[i] = pickMainstream(sym, tokens)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]domain.Token, 0, len(MainstreamSymbols))
	var errCount int
	for i, p := range picks {
		if failed[i] != nil {
			errCount++
			logger.Warn("mainstream lookup failed",
				slog.String("symbol", MainstreamSymbols[i]),
				slog.Any("error", failed[i]),
			)
			continue
		}
		if p != nil {
			out = append(out, *p)
		}
	}
	if errCount == len(MainstreamSymbols) {
		return nil, fmt.Errorf("%w: every mainstream lookup failed", ErrProviderUnavailable)
	}
	return out, nil
}

func pickMainstream(symbol string, tokens []domain.Token) *domain.Token {
	if len(tokens) == 0 {
		return nil
	}
	var best *domain.Token
	for i := range tokens {
		if !strings.EqualFold(tokens[i].Symbol, symbol) {
			continue
		}
		if best == nil || tokens[i].Liquidity > best.Liquidity {
			best = &tokens[i]
		}
	}
	if best == nil {
		best = &tokens[0]
	}
	t := *best
	return &t
}

// SymbolPrice returns the USD price of the deepest-liquidity pair for symbol.
func (d *DexScreener) SymbolPrice(ctx context.Context, symbol string) (float64, error) {
	tokens, err := d.SearchTokens(ctx, symbol)
	if err != nil {
		return 0, err
	}
	p := pickMainstream(symbol, tokens)
	if p == nil || p.Price <= 0 {
		return 0, fmt.Errorf("%w: no priced pair for %s", ErrProviderUnavailable, symbol)
	}
	return p.Price, nil
}
