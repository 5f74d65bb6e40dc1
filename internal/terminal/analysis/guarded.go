package analysis

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/pkg/slogx"
)

// Guarded treats the wrapped provider's output as untrusted. Provider errors
// and payloads that fail Validate become Fallback(). The only error it
// returns is the caller's own context error.
type Guarded struct {
	Provider Provider
	Timeout  time.Duration
}

func (g *Guarded) AnalyzeToken(ctx context.Context, t domain.Token) (domain.AIAnalysis, error) {
	callCtx := ctx
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	a, err := g.Provider.AnalyzeToken(callCtx, t)
	if err == nil {
		err = Validate(a)
	}
	if err == nil {
		return a, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return domain.AIAnalysis{}, ctxErr
	}
	slogx.FromContext(ctx).Warn("token analysis degraded to fallback",
		slog.String("symbol", t.Symbol),
		slog.String("chain", string(t.Chain)),
		slog.Any("error", err),
	)
	return Fallback(), nil
}
