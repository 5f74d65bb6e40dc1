package market

import (
	"context"
	"strconv"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
)

// StaticNews serves a short curated headline list stamped relative to now.
type StaticNews struct {
	Now func() time.Time
}

type headline struct {
	title, source string
	sentiment     domain.Sentiment
	age           time.Duration
}

var headlines = []headline{
	{"BlackRock IBIT adds another 5,000 BTC as Wall Street sentiment stays bullish", "Global Finance", domain.SentimentBullish, 5 * time.Minute},
	{"Solana active addresses pass 2 million while the meme sector stays hot", "Labs Network", domain.SentimentBullish, 15 * time.Minute},
	{"Ethereum upgrade proposal approved, Layer 2 fees expected to fall further", "ETH Hub", domain.SentimentBullish, 25 * time.Minute},
}

func (s StaticNews) FetchGlobalNews(context.Context) ([]domain.NewsItem, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	t := now().UTC()

	out := make([]domain.NewsItem, len(headlines))
	for i, h := range headlines {
		out[i] = domain.NewsItem{
			ID:        strconv.Itoa(i + 1),
			Title:     h.title,
			Source:    h.source,
			Sentiment: h.sentiment,
			URL:       "#",
			Time:      t.Add(-h.age),
		}
	}
	return out, nil
}
