package market

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/pkg/idx"
)

const simulatedMovements = 15

type whaleAsset struct {
	symbol, name, icon string
}

var whaleAssets = []whaleAsset{
	{"BTC", "Bitcoin", "https://cryptologos.cc/logos/bitcoin-btc-logo.png"},
	{"ETH", "Ethereum", "https://cryptologos.cc/logos/ethereum-eth-logo.png"},
	{"SOL", "Solana", "https://cryptologos.cc/logos/solana-sol-logo.png"},
	{"DOGE", "Dogecoin", "https://cryptologos.cc/logos/dogecoin-doge-logo.png"},
	{"USDC", "USD Coin", "https://cryptologos.cc/logos/usd-coin-usdc-logo.png"},
}

var whaleEntities = []string{
	"Binance tagged wallet",
	"MicroStrategy custody account",
	"Coinbase cold wallet",
	"Grayscale trust vault",
	"Jump Trading tagged address",
	"Kraken consolidation wallet",
	"OKX exchange wallet",
	"Unknown whale address",
}

var movementTypes = []domain.MovementType{
	domain.MovementBuy,
	domain.MovementSell,
	domain.MovementInflow,
	domain.MovementOutflow,
	domain.MovementTransfer,
}

// SimulatedWhaleSource fabricates large transfers. Every movement it returns
// has Simulated set.
type SimulatedWhaleSource struct {
	Now func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulatedWhaleSource seeds the generator; pass nil for a random seed.
func NewSimulatedWhaleSource(rng *rand.Rand) *SimulatedWhaleSource {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &SimulatedWhaleSource{Now: time.Now, rng: rng}
}

func (s *SimulatedWhaleSource) FetchWhaleMovements(_ context.Context, _ domain.Chain) ([]domain.WhaleMovement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now().UTC()
	out := make([]domain.WhaleMovement, 0, simulatedMovements)
	for i := range simulatedMovements {
		asset := whaleAssets[s.rng.IntN(len(whaleAssets))]
		from := s.rng.IntN(len(whaleEntities))
		to := s.rng.IntN(len(whaleEntities) - 1)
		if to >= from {
			to++
		}
		at := now.Add(-time.Duration(i) * 150 * time.Second)

		out = append(out, domain.WhaleMovement{
			ID:        idx.Prefixed("tx", at),
			Token:     asset.symbol,
			TokenName: asset.name,
			TokenIcon: asset.icon,
			Amount:    s.rng.Float64()*8000 + 200,
			ValueUSD:  s.rng.Float64()*20_000_000 + 1_000_000,
			Type:      movementTypes[s.rng.IntN(len(movementTypes))],
			From:      s.hex(40),
			FromLabel: whaleEntities[from],
			To:        s.hex(40),
			ToLabel:   whaleEntities[to],
			Time:      at,
			TxHash:    s.hex(64),
			Status:    "CONFIRMED",
			Simulated: true,
		})
	}
	return out, nil
}

func (s *SimulatedWhaleSource) hex(n int) string {
	const digits = "0123456789abcdef"
	var b strings.Builder
	b.Grow(n + 2)
	b.WriteString("0x")
	for range n {
		b.WriteByte(digits[s.rng.IntN(len(digits))])
	}
	return b.String()
}

// ChainWhales routes a chain to a dedicated source, falling back to Default.
type ChainWhales struct {
	Default WhaleSource
	ByChain map[domain.Chain]WhaleSource
}

func (c ChainWhales) FetchWhaleMovements(ctx context.Context, chain domain.Chain) ([]domain.WhaleMovement, error) {
	if !chain.Supported() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedChain, chain)
	}
	if src, ok := c.ByChain[chain]; ok && src != nil {
		return src.FetchWhaleMovements(ctx, chain)
	}
	if c.Default == nil {
		return nil, nil
	}
	return c.Default.FetchWhaleMovements(ctx, chain)
}
