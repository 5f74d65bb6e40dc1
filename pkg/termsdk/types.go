package termsdk

import "time"

// ============================================================================
// Health
// ============================================================================

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`

	// Analysis is "ok" when a generative provider is configured and
	// "fallback" when every analysis is the fixed default.
	Analysis string `json:"analysis,omitempty"`
}

// ============================================================================
// Sessions
// ============================================================================

type LoginRequest struct {
	Identity string `json:"identity"`
	Code     string `json:"code"`
}

// LoginResponse is returned by POST /v1/session.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	ExpiresAt   int64       `json:"expires_at"`
	Session     SessionInfo `json:"session"`
}

type SessionInfo struct {
	ID         string    `json:"id"`
	Identity   string    `json:"identity"`
	IsAdmin    bool      `json:"isAdmin"`
	ExpiryDate time.Time `json:"expiryDate"`
}

// ============================================================================
// Invite codes
// ============================================================================

type InviteCode struct {
	Code         string     `json:"code"`
	CreatedAt    time.Time  `json:"createdAt"`
	DurationDays *int       `json:"durationDays"`
	ExpiresAt    *time.Time `json:"expiresAt"`
	IsUsed       bool       `json:"isUsed"`
	UsedBy       string     `json:"usedBy,omitempty"`
	ManualBound  bool       `json:"manualBound,omitempty"`
}

// IssueCodeRequest asks for a new code. Lifetime wins over DurationDays.
type IssueCodeRequest struct {
	DurationDays int  `json:"durationDays,omitempty" minimum:"1" maximum:"36500"`
	Lifetime     bool `json:"lifetime,omitempty"`
}

type BindCodeRequest struct {
	Identity string `json:"identity"`
}

type ListCodesResponse struct {
	Codes []InviteCode `json:"codes"`
}

// ============================================================================
// Market data
// ============================================================================

type Token struct {
	ID             string  `json:"id"`
	Address        string  `json:"address"`
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
	Chain          string  `json:"chain"`
	Price          float64 `json:"price"`
	PriceChange24h float64 `json:"priceChange24h"`
	Volume24h      float64 `json:"volume24h"`
	MarketCap      float64 `json:"marketCap"`
	Liquidity      float64 `json:"liquidity"`
	ImageURL       string  `json:"imageUrl,omitempty"`
}

type Alert struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Token       Token     `json:"token"`
	Type        string    `json:"type"`
	Score       int       `json:"score"`
	Description string    `json:"description"`
}

type WhaleMovement struct {
	ID        string    `json:"id"`
	Token     string    `json:"token"`
	TokenName string    `json:"tokenName"`
	TokenIcon string    `json:"tokenIcon,omitempty"`
	Amount    float64   `json:"amount"`
	ValueUSD  float64   `json:"valueUsd"`
	Type      string    `json:"type"`
	From      string    `json:"from"`
	FromLabel string    `json:"fromLabel"`
	To        string    `json:"to"`
	ToLabel   string    `json:"toLabel"`
	Time      time.Time `json:"time"`
	TxHash    string    `json:"txHash"`
	Status    string    `json:"status"`
	Simulated bool      `json:"simulated"`
}

type NewsItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Sentiment string    `json:"sentiment"`
	URL       string    `json:"url"`
	Time      time.Time `json:"time"`
}

type TokensResponse struct {
	Tokens []Token `json:"tokens"`
}

type WhalesResponse struct {
	Chain     string          `json:"chain"`
	Movements []WhaleMovement `json:"movements"`
}

type NewsResponse struct {
	Items []NewsItem `json:"items"`
}

// ============================================================================
// Analysis
// ============================================================================

type GroundingURL struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type Analysis struct {
	Summary         string         `json:"summary"`
	SocialSentiment string         `json:"socialSentiment"`
	NewsAnalysis    string         `json:"newsAnalysis"`
	BullishFactors  []string       `json:"bullishFactors"`
	BearishFactors  []string       `json:"bearishFactors"`
	RiskLevel       string         `json:"riskLevel"`
	Recommendation  string         `json:"recommendation"`
	GroundingURLs   []GroundingURL `json:"groundingUrls,omitempty"`
	Fallback        bool           `json:"fallback,omitempty"`
}

type Prediction struct {
	Predicted     float64 `json:"predicted"`
	Current       float64 `json:"current"`
	ChangePercent float64 `json:"changePercent"`
	Confidence    int     `json:"confidence"`
	Timeframe     string  `json:"timeframe"`
}

type AnalysisRequest struct {
	Token Token `json:"token"`
}

type AnalysisResponse struct {
	Analysis   Analysis   `json:"analysis"`
	Prediction Prediction `json:"prediction"`
}

// ============================================================================
// Terminal
// ============================================================================

// Terminal is one snapshot of a session's terminal state.
type Terminal struct {
	Version         uint64      `json:"version"`
	ActiveChain     string      `json:"activeChain"`
	SearchQuery     string      `json:"searchQuery"`
	View            string      `json:"view"`
	DisplayedTokens []Token     `json:"displayedTokens"`
	Alerts          []Alert     `json:"alerts"`
	SelectedToken   *Token      `json:"selectedToken,omitempty"`
	ChartSymbol     string      `json:"chartSymbol,omitempty"`
	Analysis        *Analysis   `json:"analysis,omitempty"`
	Prediction      *Prediction `json:"prediction,omitempty"`
	AnalysisLoading bool        `json:"analysisLoading"`
	IsBusy          bool        `json:"isBusy"`
}

type ChainRequest struct {
	Chain string `json:"chain"`
}

type SearchRequest struct {
	Query string `json:"query"`
}

// SelectRequest picks a token by id from the displayed list, or any token
// when Token is set (e.g. from the watchlist).
type SelectRequest struct {
	TokenID string `json:"tokenId,omitempty"`
	Token   *Token `json:"token,omitempty"`
}

type ViewRequest struct {
	View string `json:"view"`
}

// ============================================================================
// Watchlist
// ============================================================================

type WatchlistResponse struct {
	Tokens []Token `json:"tokens"`
}

type ToggleWatchlistRequest struct {
	Token Token `json:"token"`
}

type ToggleWatchlistResponse struct {
	Watched bool    `json:"watched"`
	Tokens  []Token `json:"tokens"`
}
