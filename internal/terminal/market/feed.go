package market

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/pkg/slogx"
)

// Feed is the read side handed to HTTP handlers. Provider failures are
// logged and degraded to empty lists; it never returns an error.
type Feed struct {
	Tokens Provider
	Whales WhaleSource
	News   NewsSource
}

func (f *Feed) Search(ctx context.Context, query string) []domain.Token {
	out, err := f.Tokens.SearchTokens(ctx, query)
	return orEmpty(ctx, "search", out, err)
}

func (f *Feed) Gems(ctx context.Context, chain domain.Chain) []domain.Token {
	out, err := f.Tokens.FetchLatestGems(ctx, chain)
	return orEmpty(ctx, "gems", out, err)
}

func (f *Feed) Mainstream(ctx context.Context) []domain.Token {
	out, err := f.Tokens.FetchMainstreamCoins(ctx)
	return orEmpty(ctx, "mainstream", out, err)
}

func (f *Feed) WhaleMovements(ctx context.Context, chain domain.Chain) []domain.WhaleMovement {
	if f.Whales == nil {
		return []domain.WhaleMovement{}
	}
	out, err := f.Whales.FetchWhaleMovements(ctx, chain)
	return orEmpty(ctx, "whales", out, err)
}

func (f *Feed) GlobalNews(ctx context.Context) []domain.NewsItem {
	if f.News == nil {
		return []domain.NewsItem{}
	}
	out, err := f.News.FetchGlobalNews(ctx)
	return orEmpty(ctx, "news", out, err)
}

func orEmpty[T any](ctx context.Context, op string, out []T, err error) []T {
	if err != nil {
		slogx.FromContext(ctx).Warn("market provider failed",
			slog.String("op", op),
			slog.Any("error", err),
		)
		return []T{}
	}
	if out == nil {
		return []T{}
	}
	return out
}
