package service

import (
	"github.com/pulseboard/market-feed/internal/feed"
	"github.com/pulseboard/market-feed/internal/models"
)

// PortfolioService exposes the portfolio view: the live feed snapshot,
// its trailing history and the seeded transaction log.
type PortfolioService struct {
	feed         *feed.Feed
	transactions []models.Transaction
}

func NewPortfolioService(f *feed.Feed, transactions []models.Transaction) *PortfolioService {
	return &PortfolioService{
		feed:         f,
		transactions: transactions,
	}
}

func (s *PortfolioService) Snapshot() models.PortfolioSnapshot {
	return s.feed.Snapshot()
}

func (s *PortfolioService) History() []models.PricePoint {
	return s.feed.Snapshot().History
}

// Transactions returns the transaction log, newest first, capped at limit
// when limit > 0.
func (s *PortfolioService) Transactions(limit int) []models.Transaction {
	out := append([]models.Transaction(nil), s.transactions...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// InsightsService serves the static calendar/social pages. The data is
// seeded once at startup; only the timestamps are anchored to boot time.
type InsightsService struct {
	events    []models.EconomicEvent
	posts     []models.SocialPost
	whales    []models.WhaleTransaction
	sentiment models.MarketSentiment
}

func NewInsightsService(events []models.EconomicEvent, posts []models.SocialPost, whales []models.WhaleTransaction, sentiment models.MarketSentiment) *InsightsService {
	return &InsightsService{
		events:    events,
		posts:     posts,
		whales:    whales,
		sentiment: sentiment,
	}
}

func (s *InsightsService) Events() []models.EconomicEvent {
	return append([]models.EconomicEvent(nil), s.events...)
}

func (s *InsightsService) SocialFeed() []models.SocialPost {
	return append([]models.SocialPost(nil), s.posts...)
}

func (s *InsightsService) WhaleActivity() []models.WhaleTransaction {
	return append([]models.WhaleTransaction(nil), s.whales...)
}

func (s *InsightsService) Sentiment() models.MarketSentiment {
	return s.sentiment
}
