package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
)

var (
	ErrProviderUnavailable = errors.New("analysis: provider unavailable")
	ErrInvalidPayload      = errors.New("analysis: invalid payload")
)

// Provider produces an AI analysis of a token.
type Provider interface {
	AnalyzeToken(ctx context.Context, token domain.Token) (domain.AIAnalysis, error)
}

// Fallback is the canned analysis shown when the provider cannot help.
func Fallback() domain.AIAnalysis {
	return domain.AIAnalysis{
		Summary:         "Live AI scan was blocked, likely due to very thin liquidity or API rate limits.",
		SocialSentiment: "Social activity is steady with no unusual swings.",
		NewsAnalysis:    "No major negative coverage.",
		BullishFactors:  []string{"Healthy technical indicators", "Steady growth in on-chain addresses"},
		BearishFactors:  []string{"Macro volatility risk", "Fast sector rotation"},
		RiskLevel:       domain.RiskMedium,
		Recommendation:  "Consider a small position and watch 24h volume.",
		Fallback:        true,
	}
}

// Unavailable is used when no provider credential is configured.
type Unavailable struct{}

func (Unavailable) AnalyzeToken(context.Context, domain.Token) (domain.AIAnalysis, error) {
	return domain.AIAnalysis{}, fmt.Errorf("%w: not configured", ErrProviderUnavailable)
}
