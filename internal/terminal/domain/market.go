package domain

import (
	"slices"
	"time"
)

type Chain string

const (
	ChainSolana   Chain = "solana"
	ChainEthereum Chain = "ethereum"
	ChainBase     Chain = "base"
	ChainPolygon  Chain = "polygon"
)

// SupportedChains lists the chains the terminal can poll.
var SupportedChains = []Chain{ChainSolana, ChainEthereum, ChainBase, ChainPolygon}

func (c Chain) Supported() bool {
	return slices.Contains(SupportedChains, c)
}

// Token is an immutable market snapshot. ID is the pair address and is the
// watchlist key.
type Token struct {
	ID             string  `json:"id"`
	Address        string  `json:"address"`
	Name           string  `json:"name"`
	Symbol         string  `json:"symbol"`
	Chain          Chain   `json:"chain"`
	Price          float64 `json:"price"`
	PriceChange24h float64 `json:"priceChange24h"`
	Volume24h      float64 `json:"volume24h"`
	MarketCap      float64 `json:"marketCap"`
	Liquidity      float64 `json:"liquidity"`
	ImageURL       string  `json:"imageUrl,omitempty"`
}

type AlertType string

const (
	AlertWhaleInflow   AlertType = "WHALE_INFLOW"
	AlertSmartMoneyBuy AlertType = "SMART_MONEY_BUY"
	AlertLiquidityAdd  AlertType = "LIQUIDITY_ADD"
)

// Alert is derived from a token list and never persisted.
type Alert struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Token       Token     `json:"token"`
	Type        AlertType `json:"type"`
	Score       int       `json:"score"`
	Description string    `json:"description"`
}

type MovementType string

const (
	MovementBuy      MovementType = "BUY"
	MovementSell     MovementType = "SELL"
	MovementTransfer MovementType = "TRANSFER"
	MovementInflow   MovementType = "INFLOW"
	MovementOutflow  MovementType = "OUTFLOW"
)

type WhaleMovement struct {
	ID        string       `json:"id"`
	Token     string       `json:"token"`
	TokenName string       `json:"tokenName"`
	TokenIcon string       `json:"tokenIcon,omitempty"`
	Amount    float64      `json:"amount"`
	ValueUSD  float64      `json:"valueUsd"`
	Type      MovementType `json:"type"`
	From      string       `json:"from"`
	FromLabel string       `json:"fromLabel"`
	To        string       `json:"to"`
	ToLabel   string       `json:"toLabel"`
	Time      time.Time    `json:"time"`
	TxHash    string       `json:"txHash"`
	Status    string       `json:"status"`

	// Simulated marks randomly generated movements.
	Simulated bool `json:"simulated"`
}

type Sentiment string

const (
	SentimentBullish Sentiment = "BULLISH"
	SentimentBearish Sentiment = "BEARISH"
	SentimentNeutral Sentiment = "NEUTRAL"
)

type NewsItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Source    string    `json:"source"`
	Sentiment Sentiment `json:"sentiment"`
	URL       string    `json:"url"`
	Time      time.Time `json:"time"`
}
