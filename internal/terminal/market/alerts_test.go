package market

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
)

func TestGenerateAlerts(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	var tokens []domain.Token
	for i := range 18 {
		tokens = append(tokens, domain.Token{ID: fmt.Sprintf("T%d", i), Symbol: "TK"})
	}

	alerts := GenerateAlerts(tokens, now, rand.New(rand.NewPCG(7, 7)))
	require.Len(t, alerts, 15)

	want := []domain.AlertType{domain.AlertWhaleInflow, domain.AlertSmartMoneyBuy, domain.AlertLiquidityAdd}
	for i, a := range alerts {
		require.Equal(t, tokens[i].ID, a.Token.ID)
		require.Equal(t, want[i%3], a.Type)
		require.GreaterOrEqual(t, a.Score, 70)
		require.LessOrEqual(t, a.Score, 99)
		require.Equal(t, now.Add(-time.Duration(i)*time.Minute), a.Timestamp)
		require.Equal(t, alertTemplates[i%len(alertTemplates)], a.Description)
		require.True(t, strings.HasPrefix(a.ID, "alert-"))
	}
}

func TestGenerateAlertsShortAndEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, GenerateAlerts(nil, time.Now(), nil))
	require.Len(t, GenerateAlerts([]domain.Token{{ID: "a"}, {ID: "b"}}, time.Now(), nil), 2)
}

func TestChartSymbol(t *testing.T) {
	t.Parallel()

	require.Equal(t, "BINANCE:SOLUSDT", ChartSymbol(domain.Token{Symbol: "sol"}))
	require.Equal(t, "BINANCE:WIFUSDT", ChartSymbol(domain.Token{Symbol: " WIF "}))
	require.Empty(t, ChartSymbol(domain.Token{}))
}
