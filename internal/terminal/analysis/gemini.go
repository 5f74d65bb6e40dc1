package analysis

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
	"github.com/aussiebroadwan/gemterm/internal/terminal/telemetry"
)

const (
	DefaultModel = "gemini-2.5-flash"

	defaultSourceTitle = "Source"
)

// Gemini asks a Gemini model for a grounded, structured token analysis.
type Gemini struct {
	Client  *genai.Client
	Model   string
	Metrics *telemetry.Metrics
}

// GeminiConfig configures NewGemini. BaseURL is only set in tests.
type GeminiConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
}

func NewGemini(ctx context.Context, cfg GeminiConfig, m *telemetry.Metrics) (*Gemini, error) {
	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	return &Gemini{Client: client, Model: model, Metrics: m}, nil
}

func prompt(t domain.Token) string {
	var b strings.Builder
	b.WriteString("Act as a senior crypto quant analyst and on-chain data specialist. ")
	fmt.Fprintf(&b, "Analyse the token %s (%s).\n", t.Name, t.Symbol)
	fmt.Fprintf(&b, "Token address: %s\nNetwork: %s\n\n", t.Address, t.Chain)
	b.WriteString("Requirements:\n")
	b.WriteString("1. Use Google Search for the latest coverage on X, Telegram, CoinTelegraph and major financial media.\n")
	b.WriteString("2. Look for recent large transfers, institutional accumulation or major project updates.\n")
	b.WriteString("3. Assess current social sentiment and whether it leans bullish or bearish.\n")
	b.WriteString("4. Weigh short and long term bullish and bearish drivers.\n\n")
	b.WriteString("Respond with a single JSON object and nothing else, containing: summary, socialSentiment, ")
	b.WriteString("newsAnalysis, bullishFactors (list), bearishFactors (list), ")
	b.WriteString("riskLevel (one of very_low, medium, high, extreme), recommendation.")
	return b.String()
}

// AnalyzeToken calls the model. Transport failures wrap ErrProviderUnavailable
// and unusable responses wrap ErrInvalidPayload.
//
// Search grounding cannot be combined with a JSON response schema on most
// models, so the shape is requested in the prompt and checked by Decode.
func (g *Gemini) AnalyzeToken(ctx context.Context, t domain.Token) (a domain.AIAnalysis, err error) {
	start := time.Now()
	defer func() {
		g.Metrics.ProviderCall("gemini", "analyze", time.Since(start).Seconds(), err)
	}()

	resp, err := g.Client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt(t)), &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return domain.AIAnalysis{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	a, err = Decode(resp.Text())
	if err != nil {
		return domain.AIAnalysis{}, err
	}
	a.GroundingURLs = citations(resp)
	return a, nil
}

// citations collects web grounding sources from the first candidate.
func citations(resp *genai.GenerateContentResponse) []domain.GroundingURL {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil
	}
	md := resp.Candidates[0].GroundingMetadata
	if md == nil {
		return nil
	}

	var out []domain.GroundingURL
	for _, chunk := range md.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := strings.TrimSpace(chunk.Web.Title)
		if title == "" {
			title = defaultSourceTitle
		}
		out = append(out, domain.GroundingURL{Title: title, URI: chunk.Web.URI})
	}
	return out
}
