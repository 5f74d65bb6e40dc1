package market

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
)

var (
	ErrProviderUnavailable = errors.New("market: provider unavailable")
	ErrUnsupportedChain    = errors.New("market: unsupported chain")
)

// MaxResults bounds every token list returned by a provider.
const MaxResults = 20

// Provider serves token listings. Implementations return errors wrapping
// ErrProviderUnavailable on network or decode failures; callers decide how
// to degrade.
type Provider interface {
	SearchTokens(ctx context.Context, query string) ([]domain.Token, error)
	FetchLatestGems(ctx context.Context, chain domain.Chain) ([]domain.Token, error)
	FetchMainstreamCoins(ctx context.Context) ([]domain.Token, error)
}

type WhaleSource interface {
	FetchWhaleMovements(ctx context.Context, chain domain.Chain) ([]domain.WhaleMovement, error)
}

type NewsSource interface {
	FetchGlobalNews(ctx context.Context) ([]domain.NewsItem, error)
}
