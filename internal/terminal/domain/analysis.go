package domain

type RiskLevel string

const (
	RiskVeryLow RiskLevel = "very_low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskExtreme RiskLevel = "extreme"
)

func (r RiskLevel) Valid() bool {
	switch r {
	case RiskVeryLow, RiskMedium, RiskHigh, RiskExtreme:
		return true
	}
	return false
}

type GroundingURL struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type AIAnalysis struct {
	Summary         string         `json:"summary"`
	SocialSentiment string         `json:"socialSentiment"`
	NewsAnalysis    string         `json:"newsAnalysis"`
	BullishFactors  []string       `json:"bullishFactors"`
	BearishFactors  []string       `json:"bearishFactors"`
	RiskLevel       RiskLevel      `json:"riskLevel"`
	Recommendation  string         `json:"recommendation"`
	GroundingURLs   []GroundingURL `json:"groundingUrls,omitempty"`

	// Fallback is set when the provider failed or returned an unusable payload.
	Fallback bool `json:"fallback,omitempty"`
}

type Prediction struct {
	Predicted     float64 `json:"predicted"`
	Current       float64 `json:"current"`
	ChangePercent float64 `json:"changePercent"`
	Confidence    int     `json:"confidence"`
	Timeframe     string  `json:"timeframe"`
}
