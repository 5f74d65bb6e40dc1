package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/blocto/solana-go-sdk/client"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/internal/terminal/telemetry"
	"github.com/aussiebroadwan/gemterm/pkg/slogx"
)

const (
	lamportsPerSOL = 1_000_000_000

	defaultSignaturesPerWallet = 5
	defaultMinLamports         = 1_000 * lamportsPerSOL
	unknownWalletLabel         = "Unknown wallet"
)

// LedgerTx is the slice of a confirmed transaction the whale feed needs.
type LedgerTx struct {
	Signature string
	BlockTime time.Time
	// Deltas maps account address to its lamport balance change.
	Deltas map[string]int64
}

// Ledger reads transactions for an address.
type Ledger interface {
	RecentSignatures(ctx context.Context, address string, limit int) ([]string, error)
	Transaction(ctx context.Context, signature string) (LedgerTx, error)
}

var errTxUnavailable = errors.New("market: transaction unavailable")

// RPCLedger reads the chain through a Solana JSON-RPC endpoint.
type RPCLedger struct {
	Client *client.Client
}

func NewRPCLedger(endpoint string) *RPCLedger {
	return &RPCLedger{Client: client.NewClient(endpoint)}
}

func (l *RPCLedger) RecentSignatures(ctx context.Context, address string, limit int) ([]string, error) {
	sigs, err := l.Client.GetSignaturesForAddressWithConfig(ctx, address, client.GetSignaturesForAddressConfig{
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(sigs))
	for _, s := range sigs {
		if s.Err != nil {
			continue
		}
		out = append(out, s.Signature)
	}
	return out, nil
}

func (l *RPCLedger) Transaction(ctx context.Context, signature string) (LedgerTx, error) {
	tx, err := l.Client.GetTransaction(ctx, signature)
	if err != nil {
		return LedgerTx{}, err
	}
	if tx == nil || tx.Meta == nil || tx.Meta.Err != nil {
		return LedgerTx{}, errTxUnavailable
	}

	out := LedgerTx{Signature: signature, Deltas: map[string]int64{}}
	if tx.BlockTime != nil {
		out.BlockTime = time.Unix(*tx.BlockTime, 0).UTC()
	}
	pre, post := tx.Meta.PreBalances, tx.Meta.PostBalances
	for i, acc := range tx.Transaction.Message.Accounts {
		if i >= len(pre) || i >= len(post) {
			break
		}
		if d := post[i] - pre[i]; d != 0 {
			out.Deltas[acc.ToBase58()] = d
		}
	}
	return out, nil
}

// SolanaWhaleSource reports large SOL balance changes of catalogued wallets.
type SolanaWhaleSource struct {
	Ledger    Ledger
	Catalogue WalletCatalogue
	// SOLPrice values movements in USD; nil leaves ValueUSD at zero.
	SOLPrice func(ctx context.Context) (float64, error)
	Metrics  *telemetry.Metrics

	SignaturesPerWallet int
	MinLamports         int64
}

func NewSolanaWhaleSource(ledger Ledger, cat WalletCatalogue, m *telemetry.Metrics) *SolanaWhaleSource {
	return &SolanaWhaleSource{
		Ledger:              ledger,
		Catalogue:           cat,
		Metrics:             m,
		SignaturesPerWallet: defaultSignaturesPerWallet,
		MinLamports:         defaultMinLamports,
	}
}

func (s *SolanaWhaleSource) FetchWhaleMovements(ctx context.Context, chain domain.Chain) (out []domain.WhaleMovement, err error) {
	if chain != domain.ChainSolana {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedChain, chain)
	}

	start := time.Now()
	defer func() {
		s.Metrics.ProviderCall("solana", "whales", time.Since(start).Seconds(), err)
	}()

	logger := slogx.FromContext(ctx)

	var price float64
	if s.SOLPrice != nil {
		if p, perr := s.SOLPrice(ctx); perr == nil {
			price = p
		} else {
			logger.Warn("sol price lookup failed", slog.Any("error", perr))
		}
	}

	wallets := s.Catalogue.ForChain(domain.ChainSolana)
	seen := map[string]struct{}{}
	var lookups, failures int

	for _, w := range wallets {
		sigs, serr := s.Ledger.RecentSignatures(ctx, w.Address, s.SignaturesPerWallet)
		lookups++
		if serr != nil {
			failures++
			logger.Warn("solana signature lookup failed",
				slog.String("wallet", w.Address),
				slog.Any("error", serr),
			)
			continue
		}

		for _, sig := range sigs {
			if _, dup := seen[sig]; dup {
				continue
			}
			seen[sig] = struct{}{}

			tx, terr := s.Ledger.Transaction(ctx, sig)
			if terr != nil {
				continue
			}
			mv, ok := s.movement(w, tx, price)
			if ok {
				out = append(out, mv)
			}
		}
	}

	if lookups > 0 && failures == lookups {
		return nil, fmt.Errorf("%w: solana rpc", ErrProviderUnavailable)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	if len(out) > simulatedMovements {
		out = out[:simulatedMovements]
	}
	return out, nil
}

func (s *SolanaWhaleSource) movement(w Wallet, tx LedgerTx, price float64) (domain.WhaleMovement, bool) {
	delta, ok := tx.Deltas[w.Address]
	if !ok {
		return domain.WhaleMovement{}, false
	}
	if abs64(delta) < s.MinLamports {
		return domain.WhaleMovement{}, false
	}

	// The counterparty is the account whose balance moved the most in the
	// opposite direction.
	var counterparty string
	var best int64
	for addr, d := range tx.Deltas {
		if addr == w.Address || (d > 0) == (delta > 0) {
			continue
		}
		if abs64(d) > best || (abs64(d) == best && addr < counterparty) {
			best = abs64(d)
			counterparty = addr
		}
	}
	cpLabel, known := s.Catalogue.Label(counterparty)
	if !known {
		cpLabel = unknownWalletLabel
	}

	amount := float64(abs64(delta)) / lamportsPerSOL
	mv := domain.WhaleMovement{
		ID:        "sol-" + tx.Signature,
		Token:     "SOL",
		TokenName: "Solana",
		TokenIcon: whaleAssets[2].icon,
		Amount:    amount,
		ValueUSD:  math.Round(amount*price*100) / 100,
		Time:      tx.BlockTime,
		TxHash:    tx.Signature,
		Status:    "CONFIRMED",
	}
	if delta > 0 {
		mv.Type = domain.MovementInflow
		mv.From, mv.FromLabel = counterparty, cpLabel
		mv.To, mv.ToLabel = w.Address, w.Label
	} else {
		mv.Type = domain.MovementOutflow
		mv.From, mv.FromLabel = w.Address, w.Label
		mv.To, mv.ToLabel = counterparty, cpLabel
	}
	return mv, true
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
