package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/gemterm/internal/terminal/domain"
)

// riskLabels maps every accepted spelling onto a RiskLevel. The localized
// labels are what the model was originally prompted to emit.
var riskLabels = map[string]domain.RiskLevel{
	"very_low": domain.RiskVeryLow,
	"very low": domain.RiskVeryLow,
	"verylow":  domain.RiskVeryLow,
	"low":      domain.RiskVeryLow,
	"medium":   domain.RiskMedium,
	"moderate": domain.RiskMedium,
	"high":     domain.RiskHigh,
	"extreme":  domain.RiskExtreme,
	"极低":       domain.RiskVeryLow,
	"中等":       domain.RiskMedium,
	"高":        domain.RiskHigh,
	"极端":       domain.RiskExtreme,
}

// ParseRiskLevel normalises a provider risk label.
func ParseRiskLevel(s string) (domain.RiskLevel, bool) {
	r, ok := riskLabels[strings.ToLower(strings.TrimSpace(s))]
	return r, ok
}

type rawAnalysis struct {
	Summary         *string   `json:"summary"`
	SocialSentiment *string   `json:"socialSentiment"`
	NewsAnalysis    *string   `json:"newsAnalysis"`
	BullishFactors  *[]string `json:"bullishFactors"`
	BearishFactors  *[]string `json:"bearishFactors"`
	RiskLevel       *string   `json:"riskLevel"`
	Recommendation  *string   `json:"recommendation"`
}

// Decode parses and validates a model response. Every field is required and
// the risk label must be recognised.
func Decode(text string) (domain.AIAnalysis, error) {
	text = stripFences(text)
	if text == "" {
		return domain.AIAnalysis{}, fmt.Errorf("%w: empty response", ErrInvalidPayload)
	}

	var raw rawAnalysis
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return domain.AIAnalysis{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	missing := func(name string) error {
		return fmt.Errorf("%w: missing %s", ErrInvalidPayload, name)
	}
	switch {
	case blank(raw.Summary):
		return domain.AIAnalysis{}, missing("summary")
	case blank(raw.SocialSentiment):
		return domain.AIAnalysis{}, missing("socialSentiment")
	case blank(raw.NewsAnalysis):
		return domain.AIAnalysis{}, missing("newsAnalysis")
	case blank(raw.Recommendation):
		return domain.AIAnalysis{}, missing("recommendation")
	case raw.BullishFactors == nil:
		return domain.AIAnalysis{}, missing("bullishFactors")
	case raw.BearishFactors == nil:
		return domain.AIAnalysis{}, missing("bearishFactors")
	case raw.RiskLevel == nil:
		return domain.AIAnalysis{}, missing("riskLevel")
	}

	risk, ok := ParseRiskLevel(*raw.RiskLevel)
	if !ok {
		return domain.AIAnalysis{}, fmt.Errorf("%w: unknown risk level %q", ErrInvalidPayload, *raw.RiskLevel)
	}

	return domain.AIAnalysis{
		Summary:         strings.TrimSpace(*raw.Summary),
		SocialSentiment: strings.TrimSpace(*raw.SocialSentiment),
		NewsAnalysis:    strings.TrimSpace(*raw.NewsAnalysis),
		BullishFactors:  compact(*raw.BullishFactors),
		BearishFactors:  compact(*raw.BearishFactors),
		RiskLevel:       risk,
		Recommendation:  strings.TrimSpace(*raw.Recommendation),
	}, nil
}

// Validate checks an already-decoded analysis.
func Validate(a domain.AIAnalysis) error {
	switch {
	case strings.TrimSpace(a.Summary) == "",
		strings.TrimSpace(a.SocialSentiment) == "",
		strings.TrimSpace(a.NewsAnalysis) == "",
		strings.TrimSpace(a.Recommendation) == "":
		return fmt.Errorf("%w: missing text field", ErrInvalidPayload)
	case a.BullishFactors == nil || a.BearishFactors == nil:
		return fmt.Errorf("%w: missing factor list", ErrInvalidPayload)
	case !a.RiskLevel.Valid():
		return fmt.Errorf("%w: risk level %q", ErrInvalidPayload, a.RiskLevel)
	}
	for _, g := range a.GroundingURLs {
		if g.URI == "" {
			return fmt.Errorf("%w: citation without uri", ErrInvalidPayload)
		}
	}
	return nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// stripFences removes a markdown code fence some models wrap JSON in.
// stripFences removes markdown code fences and any prose around the JSON
// object.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
		s = strings.TrimSpace(s)
	}
	if i, j := strings.IndexByte(s, '{'), strings.LastIndexByte(s, '}'); i >= 0 && j > i {
		return s[i : j+1]
	}
	return s
}
