package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asset is a single portfolio holding. Value and Allocation are derived
// fields: they are recomputed from Price and Balance on every feed tick
// and never updated independently.
type Asset struct {
	ID         string  `json:"id"`
	Symbol     string  `json:"symbol"`
	Name       string  `json:"name"`
	Logo       string  `json:"logo"`
	Balance    float64 `json:"balance"`
	Price      float64 `json:"price"`
	Change24h  float64 `json:"change24h"`
	Value      float64 `json:"value"`
	Allocation float64 `json:"allocation"`
}

// PricePoint is one entry of the trailing portfolio-value window.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// Candle is a one-minute OHLCV bar for the trading chart.
type Candle struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    float64   `json:"volume"`
}

// BookLevel is a single order-book price level. Cumulative is the running
// sum of quantities from the best price outward.
type BookLevel struct {
	Price      float64 `json:"price"`
	Quantity   float64 `json:"quantity"`
	Cumulative float64 `json:"cumulative"`
}

type OrderBook struct {
	Bids   []BookLevel `json:"bids"`
	Asks   []BookLevel `json:"asks"`
	Spread float64     `json:"spread"`
}

// Trade is a synthetic fill shown in the recent-trades panel.
type Trade struct {
	ID        uuid.UUID `json:"id"`
	Price     float64   `json:"price"`
	Quantity  float64   `json:"quantity"`
	Side      string    `json:"side"`
	Total     float64   `json:"total"`
	Timestamp time.Time `json:"timestamp"`
}

type TradingPair struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change24h"`
	Volume    float64 `json:"volume"`
}

// Token is a discovery-page listing.
type Token struct {
	ID          string  `json:"id"`
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Logo        string  `json:"logo"`
	Price       float64 `json:"price"`
	Change24h   float64 `json:"change24h"`
	Volume24h   float64 `json:"volume24h"`
	MarketCap   float64 `json:"marketCap"`
	Category    string  `json:"category"`
	Trending    bool    `json:"trending"`
	New         bool    `json:"new"`
	Description string  `json:"description"`
}

// Transaction is a historical (seeded) portfolio transaction.
type Transaction struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Token     string    `json:"token"`
	TokenName string    `json:"tokenName"`
	Amount    float64   `json:"amount"`
	Price     float64   `json:"price"`
	Total     float64   `json:"total"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

type EconomicEvent struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Impact     string  `json:"impact"`
	AIScore    float64 `json:"aiScore"`
	Prediction string  `json:"prediction"`
	Category   string  `json:"category"`
}

type SocialPost struct {
	ID         string    `json:"id"`
	Platform   string    `json:"platform"`
	Username   string    `json:"username"`
	Content    string    `json:"content"`
	Timestamp  time.Time `json:"timestamp"`
	Engagement int       `json:"engagement"`
	Sentiment  string    `json:"sentiment"`
	Verified   bool      `json:"verified"`
}

type WhaleTransaction struct {
	ID        string    `json:"id"`
	Wallet    string    `json:"wallet"`
	Action    string    `json:"action"`
	Token     string    `json:"token"`
	Amount    float64   `json:"amount"`
	USDValue  float64   `json:"usdValue"`
	Timestamp time.Time `json:"timestamp"`
	Exchange  string    `json:"exchange"`
}

type MarketSentiment struct {
	FearGreedIndex     int    `json:"fearGreedIndex"`
	FearGreedLabel     string `json:"fearGreedLabel"`
	SocialSentiment    string `json:"socialSentiment"`
	SocialScore        int    `json:"socialScore"`
	WhaleActivity      string `json:"whaleActivity"`
	TechnicalIndicator string `json:"technicalIndicator"`
	OverallSentiment   string `json:"overallSentiment"`
}

// OrderTicket is the fully-derived trading form state returned to the view.
// Absent fields are null in JSON rather than zero so the client can tell
// "unset" from "0".
type OrderTicket struct {
	Pair   string           `json:"pair"`
	Side   string           `json:"side"`
	Kind   string           `json:"type"`
	Amount *decimal.Decimal `json:"amount"`
	Price  *decimal.Decimal `json:"price"`
	Total  *decimal.Decimal `json:"total"`
	Fee    *decimal.Decimal `json:"fee"`
	Valid  bool             `json:"valid"`
}

// Order is a submitted ticket frozen with the effective price and a
// timestamp. Nothing is executed or stored; the order only travels back to
// the caller.
type Order struct {
	ID        uuid.UUID       `json:"id"`
	Pair      string          `json:"pair"`
	Side      string          `json:"side"`
	Kind      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Price     decimal.Decimal `json:"price"`
	Total     decimal.Decimal `json:"total"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PriceUpdate is the compact payload published to redis per asset tick.
type PriceUpdate struct {
	Symbol string  `json:"s"`
	Price  float64 `json:"p"`
}
