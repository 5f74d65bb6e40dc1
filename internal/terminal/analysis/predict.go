package analysis

import (
	"math/rand/v2"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
)

const (
	predictionConfidence = 88
	predictionTimeframe  = "72h"
)

// Predict draws a price target in [-10%, +20%) of the current price. A nil
// rng uses the global source.
func Predict(t domain.Token, rng *rand.Rand) domain.Prediction {
	f := rand.Float64
	if rng != nil {
		f = rng.Float64
	}
	factor := f()*0.3 - 0.1
	return domain.Prediction{
		Predicted:     t.Price * (1 + factor),
		Current:       t.Price,
		ChangePercent: factor * 100,
		Confidence:    predictionConfidence,
		Timeframe:     predictionTimeframe,
	}
}
