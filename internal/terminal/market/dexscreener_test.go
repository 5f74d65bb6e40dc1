package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
)

type fakePair struct {
	chain, pair, addr, name, symbol, price string
	liquidity                              float64
}

func (p fakePair) json() map[string]any {
	return map[string]any{
		"chainId":     p.chain,
		"pairAddress": p.pair,
		"baseToken":   map[string]any{"address": p.addr, "name": p.name, "symbol": p.symbol},
		"priceUsd":    p.price,
		"priceChange": map[string]any{"h24": 4.5},
		"volume":      map[string]any{"h24": 1000.0},
		"fdv":         250000.0,
		"liquidity":   map[string]any{"usd": p.liquidity},
		"info":        map[string]any{"imageUrl": "https://img.example/" + p.symbol + ".png"},
	}
}

// dexServer answers searches from a query -> pairs table and records queries.
type dexServer struct {
	mu      sync.Mutex
	queries []string
	pairs   map[string][]fakePair
	status  int
}

func (s *dexServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/latest/dex/search" {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query().Get("q")

	s.mu.Lock()
	s.queries = append(s.queries, q)
	status := s.status
	pairs := s.pairs[q]
	s.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	out := make([]map[string]any, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, p.json())
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"schemaVersion": "1.0.0", "pairs": out})
}

func newDexClient(t *testing.T, srv *dexServer) *DexScreener {
	t.Helper()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return NewDexScreener(ts.URL, 0, nil)
}

func TestSearchTokens(t *testing.T) {
	t.Parallel()

	srv := &dexServer{pairs: map[string][]fakePair{
		"bonk": {
			{chain: "solana", pair: "P1", addr: "A1", name: "Bonk", symbol: "BONK", price: "0.000021", liquidity: 10},
			{chain: "solana", pair: "P2", addr: "A1", name: "Bonk", symbol: "BONK", price: "0.000022", liquidity: 20},
			{chain: "eth", pair: "P3", addr: "A2", name: "", symbol: "BONK", price: "bad", liquidity: 5},
			{chain: "solana", pair: "P4", addr: "", name: "Ghost", symbol: "GST", price: "1"},
		},
	}}
	c := newDexClient(t, srv)

	tokens, err := c.SearchTokens(context.Background(), "  bonk ")
	require.NoError(t, err)
	require.Len(t, tokens, 2)

	require.Equal(t, "P1", tokens[0].ID)
	require.Equal(t, "A1", tokens[0].Address)
	require.Equal(t, domain.ChainSolana, tokens[0].Chain)
	require.InDelta(t, 0.000021, tokens[0].Price, 1e-12)
	require.InDelta(t, 4.5, tokens[0].PriceChange24h, 1e-9)
	require.InDelta(t, 250000, tokens[0].MarketCap, 1e-9)
	require.Equal(t, "https://img.example/BONK.png", tokens[0].ImageURL)

	require.Equal(t, domain.ChainEthereum, tokens[1].Chain, "eth chain id is normalised")
	require.Equal(t, "BONK", tokens[1].Name, "missing name falls back to symbol")
	require.Zero(t, tokens[1].Price, "unparsable price reads as zero")

	require.Equal(t, []string{"bonk"}, srv.queries)
}

func TestSearchTokensCapsResults(t *testing.T) {
	t.Parallel()

	var pairs []fakePair
	for i := range 30 {
		pairs = append(pairs, fakePair{chain: "base", pair: fmt.Sprintf("P%d", i), addr: fmt.Sprintf("A%d", i), symbol: "X", price: "1"})
	}
	c := newDexClient(t, &dexServer{pairs: map[string][]fakePair{"x": pairs}})

	tokens, err := c.SearchTokens(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, tokens, MaxResults)
}

func TestSearchTokensBlankQuerySkipsUpstream(t *testing.T) {
	t.Parallel()

	srv := &dexServer{}
	c := newDexClient(t, srv)

	tokens, err := c.SearchTokens(context.Background(), "   ")
	require.NoError(t, err)
	require.Empty(t, tokens)
	require.Empty(t, srv.queries)
}

func TestSearchTokensUpstreamFailure(t *testing.T) {
	t.Parallel()

	c := newDexClient(t, &dexServer{status: http.StatusBadGateway})

	_, err := c.SearchTokens(context.Background(), "sol")
	require.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestSearchTokensMalformedBody(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	t.Cleanup(ts.Close)

	_, err := NewDexScreener(ts.URL, 0, nil).SearchTokens(context.Background(), "sol")
	require.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestFetchLatestGems(t *testing.T) {
	t.Parallel()

	srv := &dexServer{pairs: map[string][]fakePair{
		"eth": {
			{chain: "eth", pair: "E1", addr: "EA1", symbol: "PEPE", price: "0.00001"},
			{chain: "bsc", pair: "B1", addr: "BA1", symbol: "ETHX", price: "2"},
			{chain: "ethereum", pair: "E2", addr: "EA2", symbol: "MOG", price: "0.000002"},
		},
		"solana": {
			{chain: "solana", pair: "S1", addr: "SA1", symbol: "WIF", price: "2.5"},
		},
	}}
	c := newDexClient(t, srv)

	eth, err := c.FetchLatestGems(context.Background(), domain.ChainEthereum)
	require.NoError(t, err)
	require.Len(t, eth, 2)
	for _, tok := range eth {
		require.Equal(t, domain.ChainEthereum, tok.Chain)
	}

	sol, err := c.FetchLatestGems(context.Background(), domain.ChainSolana)
	require.NoError(t, err)
	require.Len(t, sol, 1)
	require.Equal(t, "WIF", sol[0].Symbol)

	require.Equal(t, []string{"eth", "solana"}, srv.queries)
}

func TestFetchLatestGemsUnsupportedChain(t *testing.T) {
	t.Parallel()

	srv := &dexServer{}
	c := newDexClient(t, srv)

	_, err := c.FetchLatestGems(context.Background(), domain.Chain("bsc"))
	require.ErrorIs(t, err, ErrUnsupportedChain)
	require.Empty(t, srv.queries)
}

func TestFetchMainstreamCoins(t *testing.T) {
	t.Parallel()

	pairs := map[string][]fakePair{}
	for _, sym := range MainstreamSymbols {
		pairs[sym] = []fakePair{
			{chain: "solana", pair: sym + "-wrapped", addr: "W" + sym, symbol: "W" + sym, price: "1", liquidity: 1e9},
			{chain: "ethereum", pair: sym + "-thin", addr: "T" + sym, symbol: sym, price: "1", liquidity: 10},
			{chain: "base", pair: sym + "-deep", addr: "D" + sym, symbol: strings.ToLower(sym), price: "1", liquidity: 1e6},
		}
	}
	// XRP only has an unrelated pair, so the first result is kept.
	pairs["XRP"] = []fakePair{{chain: "solana", pair: "XRP-first", addr: "F", symbol: "FXRP", price: "1"}}
	// PEPE has nothing at all.
	delete(pairs, "PEPE")

	c := newDexClient(t, &dexServer{pairs: pairs})

	coins, err := c.FetchMainstreamCoins(context.Background())
	require.NoError(t, err)
	require.Len(t, coins, len(MainstreamSymbols)-1)

	require.Equal(t, "BTC-deep", coins[0].ID, "highest liquidity matching symbol wins")
	require.Equal(t, "XRP-first", coins[len(coins)-1].ID)
}

func TestFetchMainstreamCoinsAllFailing(t *testing.T) {
	t.Parallel()

	c := newDexClient(t, &dexServer{status: http.StatusInternalServerError})

	_, err := c.FetchMainstreamCoins(context.Background())
	require.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestOutboundLimiterHonoursContext(t *testing.T) {
	t.Parallel()

	c := newDexClient(t, &dexServer{})
	c.Limiter.SetLimit(0.001)
	c.Limiter.SetBurst(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.SearchTokens(ctx, "sol")
	require.ErrorIs(t, err, ErrProviderUnavailable)
}

func TestSymbolPrice(t *testing.T) {
	t.Parallel()

	srv := &dexServer{pairs: map[string][]fakePair{
		"SOL": {
			{chain: "solana", pair: "p1", addr: "wsol-thin", name: "Wrapped SOL", symbol: "SOL", price: "149.1", liquidity: 10},
			{chain: "solana", pair: "p2", addr: "wsol", name: "Wrapped SOL", symbol: "SOL", price: "150.25", liquidity: 9_000_000},
		},
	}}
	d := newDexClient(t, srv)

	price, err := d.SymbolPrice(context.Background(), "SOL")
	require.NoError(t, err)
	require.InDelta(t, 150.25, price, 1e-9)

	_, err = d.SymbolPrice(context.Background(), "NOPE")
	require.ErrorIs(t, err, ErrProviderUnavailable)
}
