// Package seed provides the sample data set every view starts from. All of
// it lives in process memory; the feeds perturb copies of it and nothing
// is ever persisted.
package seed

import (
	"time"

	"github.com/pulseboard/market-feed/internal/models"
)

// Assets returns the seeded portfolio holdings. Value and Allocation are
// left zero; the feed recomputes them before first publish.
func Assets() []models.Asset {
	return []models.Asset{
		{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Logo: "🟡", Balance: 1.8745, Price: 43250.80, Change24h: 2.1},
		{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", Logo: "⬢", Balance: 12.456, Price: 2840.90, Change24h: 5.7},
		{ID: "binancecoin", Symbol: "BNB", Name: "BNB", Logo: "🟨", Balance: 28.34, Price: 320.45, Change24h: -1.2},
		{ID: "solana", Symbol: "SOL", Name: "Solana", Logo: "🌅", Balance: 15.67, Price: 145.60, Change24h: 8.9},
		{ID: "cardano", Symbol: "ADA", Name: "Cardano", Logo: "🔷", Balance: 3240.12, Price: 0.315, Change24h: -3.4},
	}
}

var historyValues = []float64{
	95420.30, 97234.50, 94567.80, 98345.60, 101234.70, 99876.40,
	103456.20, 105678.90, 107890.30, 104567.80, 108234.50, 110456.70,
	112678.90, 115234.60, 118456.80, 120678.30, 123456.70, 125678.90,
	127234.50, 124567.80, 126789.30, 128345.60, 125678.20, 127890.40,
	129456.70, 126789.90, 128234.50, 125890.30, 127456.80, 127840.50,
}

// PortfolioHistory returns the trailing 30-day portfolio value window,
// stamped backwards from now so the chart always ends at the present.
func PortfolioHistory(now time.Time) []models.PricePoint {
	points := make([]models.PricePoint, 0, len(historyValues))
	for i, v := range historyValues {
		points = append(points, models.PricePoint{
			Timestamp: now.AddDate(0, 0, i-len(historyValues)+1),
			Value:     v,
		})
	}
	return points
}

func Transactions(now time.Time) []models.Transaction {
	return []models.Transaction{
		{ID: "1", Type: "buy", Token: "SOL", TokenName: "Solana", Amount: 2.5, Price: 145.60, Total: 364.00, Timestamp: now.Add(-90 * time.Minute), Status: "completed"},
		{ID: "2", Type: "sell", Token: "BNB", TokenName: "BNB", Amount: 1.2, Price: 320.45, Total: 384.54, Timestamp: now.Add(-165 * time.Minute), Status: "completed"},
		{ID: "3", Type: "buy", Token: "ETH", TokenName: "Ethereum", Amount: 0.5, Price: 2840.90, Total: 1420.45, Timestamp: now.Add(-19*time.Hour - 15*time.Minute), Status: "completed"},
		{ID: "4", Type: "sell", Token: "ADA", TokenName: "Cardano", Amount: 1000, Price: 0.315, Total: 315.00, Timestamp: now.Add(-21*time.Hour - 40*time.Minute), Status: "completed"},
		{ID: "5", Type: "buy", Token: "BTC", TokenName: "Bitcoin", Amount: 0.0234, Price: 43250.80, Total: 1012.07, Timestamp: now.Add(-48*time.Hour - 30*time.Minute), Status: "completed"},
	}
}

func Tokens() []models.Token {
	return []models.Token{
		{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Logo: "🟡", Price: 43250.80, Change24h: 2.1, Volume24h: 15234567890, MarketCap: 847623456789, Category: "Layer 1", Trending: true, Description: "The first and largest cryptocurrency by market cap"},
		{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", Logo: "⬢", Price: 2840.90, Change24h: 5.7, Volume24h: 8934567890, MarketCap: 341234567890, Category: "Layer 1", Trending: true, Description: "Smart contract platform and decentralized ecosystem"},
		{ID: "arbitrum", Symbol: "ARB", Name: "Arbitrum", Logo: "🔵", Price: 1.45, Change24h: 12.3, Volume24h: 234567890, MarketCap: 2345678901, Category: "Layer 2", Trending: true, New: true, Description: "Ethereum Layer 2 scaling solution"},
		{ID: "polygon", Symbol: "MATIC", Name: "Polygon", Logo: "🟣", Price: 0.85, Change24h: -2.4, Volume24h: 456789012, MarketCap: 8234567890, Category: "Layer 2", Description: "Ethereum scaling and infrastructure development"},
		{ID: "chainlink", Symbol: "LINK", Name: "Chainlink", Logo: "🔗", Price: 14.67, Change24h: 8.9, Volume24h: 567890123, MarketCap: 8234567890, Category: "Oracle", Trending: true, Description: "Decentralized oracle network"},
		{ID: "uniswap", Symbol: "UNI", Name: "Uniswap", Logo: "🦄", Price: 7.23, Change24h: -1.8, Volume24h: 345678901, MarketCap: 4345678901, Category: "DeFi", Description: "Decentralized cryptocurrency exchange"},
		{ID: "aave", Symbol: "AAVE", Name: "Aave", Logo: "👻", Price: 82.45, Change24h: 15.2, Volume24h: 123456789, MarketCap: 1234567890, Category: "DeFi", Trending: true, Description: "Decentralized lending and borrowing protocol"},
		{ID: "optimism", Symbol: "OP", Name: "Optimism", Logo: "🔴", Price: 3.21, Change24h: 6.4, Volume24h: 234567890, MarketCap: 3456789012, Category: "Layer 2", Trending: true, New: true, Description: "Ethereum Layer 2 optimistic rollup"},
		{ID: "solana", Symbol: "SOL", Name: "Solana", Logo: "🌅", Price: 145.60, Change24h: -3.2, Volume24h: 1234567890, MarketCap: 62345678901, Category: "Layer 1", Description: "High-performance blockchain platform"},
		{ID: "avalanche", Symbol: "AVAX", Name: "Avalanche", Logo: "🏔️", Price: 34.78, Change24h: 4.6, Volume24h: 456789012, MarketCap: 12345678901, Category: "Layer 1", Description: "Platform for decentralized applications and custom blockchains"},
		{ID: "immutable", Symbol: "IMX", Name: "Immutable X", Logo: "🎮", Price: 1.87, Change24h: 23.4, Volume24h: 89012345, MarketCap: 1890123456, Category: "Gaming", Trending: true, New: true, Description: "NFT scaling solution for gaming"},
		{ID: "apecoin", Symbol: "APE", Name: "ApeCoin", Logo: "🐒", Price: 2.34, Change24h: -8.7, Volume24h: 123456789, MarketCap: 890123456, Category: "Gaming", Description: "Token for APE ecosystem and metaverse projects"},
		{ID: "render", Symbol: "RNDR", Name: "Render Token", Logo: "🎨", Price: 8.92, Change24h: 18.6, Volume24h: 234567890, MarketCap: 3456789012, Category: "AI", Trending: true, New: true, Description: "Distributed GPU rendering network"},
		{ID: "ocean", Symbol: "OCEAN", Name: "Ocean Protocol", Logo: "🌊", Price: 0.67, Change24h: 11.2, Volume24h: 67890123, MarketCap: 456789012, Category: "AI", Trending: true, Description: "Decentralized data exchange protocol"},
		{ID: "fetch", Symbol: "FET", Name: "Fetch.ai", Logo: "🤖", Price: 1.23, Change24h: 9.8, Volume24h: 45678901, MarketCap: 234567890, Category: "AI", Trending: true, Description: "Autonomous economic agents platform"},
		{ID: "filecoin", Symbol: "FIL", Name: "Filecoin", Logo: "📁", Price: 5.67, Change24h: -4.3, Volume24h: 345678901, MarketCap: 2345678901, Category: "Storage", Description: "Decentralized storage network"},
	}
}

func TradingPairs() []models.TradingPair {
	return []models.TradingPair{
		{Symbol: "BTCUSDT", Price: 43250.80, Change24h: 2.1, Volume: 1523456789},
		{Symbol: "ETHUSDT", Price: 2840.90, Change24h: 5.7, Volume: 893456789},
		{Symbol: "BNBUSDT", Price: 320.45, Change24h: -1.2, Volume: 234567890},
		{Symbol: "SOLUSDT", Price: 145.60, Change24h: 8.9, Volume: 123456789},
		{Symbol: "ADAUSDT", Price: 0.315, Change24h: -3.4, Volume: 87654321},
	}
}

func EconomicEvents() []models.EconomicEvent {
	return []models.EconomicEvent{
		{ID: "1", Title: "Federal Reserve Interest Rate Decision", Date: "2024-02-14", Time: "14:00", Impact: "high", AIScore: 8.5, Prediction: "Likely to maintain current rates, potentially bullish for crypto", Category: "monetary-policy"},
		{ID: "2", Title: "US Consumer Price Index (CPI)", Date: "2024-02-15", Time: "08:30", Impact: "high", AIScore: 7.8, Prediction: "Lower than expected inflation could boost risk assets", Category: "inflation"},
		{ID: "3", Title: "Bitcoin ETF Decision Deadline", Date: "2024-02-16", Time: "16:00", Impact: "very-high", AIScore: 9.2, Prediction: "Approval would be extremely bullish for Bitcoin", Category: "regulatory"},
		{ID: "4", Title: "Ethereum Shanghai Upgrade Completion", Date: "2024-02-18", Time: "12:00", Impact: "high", AIScore: 8.1, Prediction: "Could reduce staking selling pressure, bullish for ETH", Category: "technical"},
	}
}

func SocialFeed(now time.Time) []models.SocialPost {
	return []models.SocialPost{
		{ID: "1", Platform: "twitter", Username: "@whale_tracker", Content: "🚨 WHALE ALERT: 2,500 BTC moved from unknown wallet to Coinbase. Possible selling pressure incoming.", Timestamp: now.Add(-15 * time.Minute), Engagement: 1248, Sentiment: "bearish", Verified: true},
		{ID: "2", Platform: "twitter", Username: "@crypto_analyst_pro", Content: "ETH breaking out of the ascending triangle pattern. Target $3,200 if we hold above $2,800 support.", Timestamp: now.Add(-30 * time.Minute), Engagement: 892, Sentiment: "bullish", Verified: true},
		{ID: "3", Platform: "twitter", Username: "@defi_updates", Content: "New DeFi protocol launched on Arbitrum with 2000% APY. DYOR but looks promising for early adopters.", Timestamp: now.Add(-45 * time.Minute), Engagement: 456, Sentiment: "neutral"},
		{ID: "4", Platform: "twitter", Username: "@market_maker_mm", Content: "Market sentiment extremely greedy right now. Fear & Greed Index at 82. Time to be cautious?", Timestamp: now.Add(-75 * time.Minute), Engagement: 678, Sentiment: "bearish", Verified: true},
	}
}

func WhaleTransactions(now time.Time) []models.WhaleTransaction {
	return []models.WhaleTransaction{
		{ID: "1", Wallet: "0x1234...abcd", Action: "bought", Token: "BTC", Amount: 156.7, USDValue: 6789234.56, Timestamp: now.Add(-40 * time.Minute), Exchange: "Binance"},
		{ID: "2", Wallet: "0x5678...efgh", Action: "sold", Token: "ETH", Amount: 2340.5, USDValue: 6654832.45, Timestamp: now.Add(-65 * time.Minute), Exchange: "Coinbase Pro"},
		{ID: "3", Wallet: "0x9012...ijkl", Action: "transferred", Token: "USDT", Amount: 10000000, USDValue: 10000000, Timestamp: now.Add(-90 * time.Minute), Exchange: "Cold Storage"},
	}
}

func Sentiment() models.MarketSentiment {
	return models.MarketSentiment{
		FearGreedIndex:     82,
		FearGreedLabel:     "Extreme Greed",
		SocialSentiment:    "Bullish",
		SocialScore:        76,
		WhaleActivity:      "High Buying",
		TechnicalIndicator: "Bullish",
		OverallSentiment:   "Bullish",
	}
}
