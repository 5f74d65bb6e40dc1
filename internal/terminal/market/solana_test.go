package market

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
)

const catalogueYAML = `
wallets:
  - address: whaleA
    label: Exchange hot wallet
  - address: whaleB
    label: Market maker
    chain: solana
  - address: ethWhale
    label: ETH fund
    chain: ethereum
`

type fakeLedger struct {
	sigs map[string][]string
	txs  map[string]LedgerTx
	fail map[string]bool
}

func (l *fakeLedger) RecentSignatures(_ context.Context, address string, limit int) ([]string, error) {
	if l.fail[address] {
		return nil, errors.New("rpc timeout")
	}
	s := l.sigs[address]
	if len(s) > limit {
		s = s[:limit]
	}
	return s, nil
}

func (l *fakeLedger) Transaction(_ context.Context, sig string) (LedgerTx, error) {
	tx, ok := l.txs[sig]
	if !ok {
		return LedgerTx{}, errTxUnavailable
	}
	return tx, nil
}

func TestParseWalletCatalogue(t *testing.T) {
	t.Parallel()

	cat, err := ParseWalletCatalogue([]byte(catalogueYAML))
	require.NoError(t, err)
	require.Len(t, cat.Wallets, 3)
	require.Equal(t, domain.ChainSolana, cat.Wallets[0].Chain, "chain defaults to solana")
	require.Len(t, cat.ForChain(domain.ChainSolana), 2)

	label, ok := cat.Label("whaleB")
	require.True(t, ok)
	require.Equal(t, "Market maker", label)

	_, ok = cat.Label("nobody")
	require.False(t, ok)
}

func TestParseWalletCatalogueRejects(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"bad yaml":   "wallets: [",
		"no address": "wallets:\n  - label: x\n",
		"bad chain":  "wallets:\n  - address: a\n    chain: tron\n",
		"duplicate":  "wallets:\n  - address: a\n  - address: a\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseWalletCatalogue([]byte(doc))
			require.ErrorIs(t, err, ErrInvalidCatalogue)
		})
	}
}

func TestLoadWalletCatalogue(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wallets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogueYAML), 0o600))

	cat, err := LoadWalletCatalogue(path)
	require.NoError(t, err)
	require.Len(t, cat.Wallets, 3)

	_, err = LoadWalletCatalogue(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestSolanaWhaleSource(t *testing.T) {
	t.Parallel()

	cat, err := ParseWalletCatalogue([]byte(catalogueYAML))
	require.NoError(t, err)

	t0 := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ledger := &fakeLedger{
		sigs: map[string][]string{
			"whaleA": {"sig1", "sig2", "sig3"},
			"whaleB": {"sig1", "sig4"},
		},
		txs: map[string]LedgerTx{
			// whaleA receives 5000 SOL from whaleB.
			"sig1": {Signature: "sig1", BlockTime: t0, Deltas: map[string]int64{
				"whaleA": 5_000 * lamportsPerSOL,
				"whaleB": -5_000*lamportsPerSOL - 5000,
			}},
			// Dust, below the threshold.
			"sig2": {Signature: "sig2", BlockTime: t0.Add(time.Minute), Deltas: map[string]int64{
				"whaleA":  -3 * lamportsPerSOL,
				"someone": 3 * lamportsPerSOL,
			}},
			// whaleB sends 2500 SOL to an unknown wallet.
			"sig4": {Signature: "sig4", BlockTime: t0.Add(2 * time.Minute), Deltas: map[string]int64{
				"whaleB":  -2_500 * lamportsPerSOL,
				"unknown": 2_500 * lamportsPerSOL,
			}},
		},
	}

	src := NewSolanaWhaleSource(ledger, cat, nil)
	src.SOLPrice = func(context.Context) (float64, error) { return 150, nil }

	moves, err := src.FetchWhaleMovements(context.Background(), domain.ChainSolana)
	require.NoError(t, err)
	require.Len(t, moves, 2)

	// Newest first.
	out := moves[0]
	require.Equal(t, "sig4", out.TxHash)
	require.Equal(t, domain.MovementOutflow, out.Type)
	require.Equal(t, "whaleB", out.From)
	require.Equal(t, "Market maker", out.FromLabel)
	require.Equal(t, "unknown", out.To)
	require.Equal(t, unknownWalletLabel, out.ToLabel)
	require.InDelta(t, 2500, out.Amount, 1e-9)
	require.InDelta(t, 375_000, out.ValueUSD, 1e-6)
	require.False(t, out.Simulated)

	in := moves[1]
	require.Equal(t, "sig1", in.TxHash)
	require.Equal(t, domain.MovementInflow, in.Type)
	require.Equal(t, "whaleB", in.From)
	require.Equal(t, "Market maker", in.FromLabel)
	require.Equal(t, "whaleA", in.To)
	require.Equal(t, "Exchange hot wallet", in.ToLabel)
}

func TestSolanaWhaleSourceErrors(t *testing.T) {
	t.Parallel()

	cat, err := ParseWalletCatalogue([]byte(catalogueYAML))
	require.NoError(t, err)

	src := NewSolanaWhaleSource(&fakeLedger{fail: map[string]bool{"whaleA": true, "whaleB": true}}, cat, nil)

	_, err = src.FetchWhaleMovements(context.Background(), domain.ChainSolana)
	require.ErrorIs(t, err, ErrProviderUnavailable)

	_, err = src.FetchWhaleMovements(context.Background(), domain.ChainBase)
	require.ErrorIs(t, err, ErrUnsupportedChain)

	partial := NewSolanaWhaleSource(&fakeLedger{fail: map[string]bool{"whaleA": true}}, cat, nil)
	moves, err := partial.FetchWhaleMovements(context.Background(), domain.ChainSolana)
	require.NoError(t, err)
	require.Empty(t, moves)
}
