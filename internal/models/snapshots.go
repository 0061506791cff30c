package models

import "time"

// PortfolioSnapshot is the immutable state published by the portfolio feed
// after each tick. Slices are fresh copies; subscribers may keep them.
type PortfolioSnapshot struct {
	Seq              uint64       `json:"seq"`
	Assets           []Asset      `json:"assets"`
	TotalValue       float64      `json:"totalValue"`
	Change24hPercent float64      `json:"change24hPercent"`
	Change24hDollar  float64      `json:"change24hDollar"`
	History          []PricePoint `json:"history"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// TradingSnapshot is the per-pair state published by a trading session.
type TradingSnapshot struct {
	Seq       uint64    `json:"seq"`
	Pair      string    `json:"pair"`
	Price     float64   `json:"price"`
	Change24h float64   `json:"change24h"`
	Candles   []Candle  `json:"candles"`
	Book      OrderBook `json:"book"`
	Trades    []Trade   `json:"trades"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TokenStats summarizes the discovery universe for the page header.
type TokenStats struct {
	Trending   int `json:"trending"`
	New        int `json:"new"`
	TopGainers int `json:"topGainers"`
}
