package market

import (
	"math/rand/v2"
	"strings"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/pkg/idx"
)

const maxAlerts = 15

var alertTemplates = []string{
	"Significant whale accumulation detected at support.",
	"Top 10 holders increased their positions by 15% in the last hour.",
	"Smart money wallets with a profitable history are entering.",
	"Liquidity locked for 1 year with heavy buy pressure.",
	"Multiple CEX inflow patterns observed from major liquidity providers.",
}

var alertTypes = []domain.AlertType{
	domain.AlertWhaleInflow,
	domain.AlertSmartMoneyBuy,
	domain.AlertLiquidityAdd,
}

// GenerateAlerts derives a synthetic alert feed from the first tokens of a
// listing. Scores fall in [70, 99]; alerts are spaced one minute apart
// going back from now. A nil rng uses the global source.
func GenerateAlerts(tokens []domain.Token, now time.Time, rng *rand.Rand) []domain.Alert {
	intN := rand.IntN
	if rng != nil {
		intN = rng.IntN
	}

	n := min(len(tokens), maxAlerts)
	out := make([]domain.Alert, 0, n)
	for i := range n {
		at := now.Add(-time.Duration(i) * time.Minute).UTC()
		out = append(out, domain.Alert{
			ID:          idx.Prefixed("alert", at),
			Timestamp:   at,
			Token:       tokens[i],
			Type:        alertTypes[i%len(alertTypes)],
			Score:       70 + intN(30),
			Description: alertTemplates[i%len(alertTemplates)],
		})
	}
	return out
}

// ChartSymbol is the charting widget symbol for a token.
func ChartSymbol(t domain.Token) string {
	sym := strings.ToUpper(strings.TrimSpace(t.Symbol))
	if sym == "" {
		return ""
	}
	return "BINANCE:" + sym + "USDT"
}
