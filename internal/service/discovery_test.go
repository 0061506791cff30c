package service_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pulseboard/market-feed/internal/config"
	"github.com/pulseboard/market-feed/internal/models"
	"github.com/pulseboard/market-feed/internal/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func discoveryTokens() []models.Token {
	return []models.Token{
		{ID: "1", Symbol: "PEPE", Name: "Pepe", Price: 0.0000012, Change24h: 15.2, Volume24h: 850, MarketCap: 500, Category: "meme", Trending: true},
		{ID: "2", Symbol: "ARB", Name: "Arbitrum", Price: 1.25, Change24h: -2.1, Volume24h: 1200, MarketCap: 1600, Category: "defi"},
		{ID: "3", Symbol: "WIF", Name: "dogwifhat", Price: 2.85, Change24h: 8.7, Volume24h: 640, MarketCap: 2800, Category: "meme", New: true},
		{ID: "4", Symbol: "TIA", Name: "Celestia", Price: 9.8, Change24h: 5.4, Volume24h: 430, MarketCap: 4100, Category: "infrastructure"},
	}
}

func newDiscovery() *service.DiscoveryService {
	cfg := config.FeedConfig{TickInterval: time.Hour}
	return service.NewDiscoveryService(cfg, testLogger(), discoveryTokens())
}

func TestDiscoveryTokens(t *testing.T) {
	d := newDiscovery()

	t.Run("search_matches_name_and_symbol", func(t *testing.T) {
		got := d.Tokens(service.TokenQuery{Search: "arb"})
		if len(got) != 1 || got[0].Symbol != "ARB" {
			t.Fatalf("Expected only ARB for search %q, got %v", "arb", got)
		}

		got = d.Tokens(service.TokenQuery{Search: "WIF"})
		if len(got) != 1 || got[0].Symbol != "WIF" {
			t.Fatalf("Expected only WIF for symbol search, got %v", got)
		}
	})

	t.Run("category_filter_is_case_insensitive", func(t *testing.T) {
		got := d.Tokens(service.TokenQuery{Category: "MEME"})
		if len(got) != 2 {
			t.Fatalf("Expected 2 meme tokens, got %d", len(got))
		}
	})

	t.Run("all_category_means_no_filter", func(t *testing.T) {
		if got := d.Tokens(service.TokenQuery{Category: "all"}); len(got) != 4 {
			t.Errorf("Expected all 4 tokens, got %d", len(got))
		}
	})

	t.Run("default_order_puts_trending_first_then_biggest_movers", func(t *testing.T) {
		got := d.Tokens(service.TokenQuery{})
		if got[0].Symbol != "PEPE" {
			t.Errorf("Expected trending PEPE first, got %s", got[0].Symbol)
		}
		if got[1].Symbol != "WIF" {
			t.Errorf("Expected biggest mover WIF second, got %s", got[1].Symbol)
		}
	})

	t.Run("explicit_sorts_are_descending", func(t *testing.T) {
		byVolume := d.Tokens(service.TokenQuery{Sort: service.SortVolume})
		for i := 1; i < len(byVolume); i++ {
			if byVolume[i].Volume24h > byVolume[i-1].Volume24h {
				t.Fatalf("Volume sort not descending at %d", i)
			}
		}

		byPrice := d.Tokens(service.TokenQuery{Sort: service.SortPrice})
		if byPrice[0].Symbol != "TIA" {
			t.Errorf("Expected TIA first by price, got %s", byPrice[0].Symbol)
		}
	})
}

func TestDiscoveryCategories(t *testing.T) {
	got := newDiscovery().Categories()

	if len(got) != 4 {
		t.Fatalf("Expected 4 categories, got %v", got)
	}
	if got[0] != "all" {
		t.Errorf("Expected %q first, got %q", "all", got[0])
	}
}

func TestDiscoveryStats(t *testing.T) {
	stats := newDiscovery().Stats()

	if stats.Trending != 1 {
		t.Errorf("Expected 1 trending token, got %d", stats.Trending)
	}
	if stats.New != 1 {
		t.Errorf("Expected 1 new listing, got %d", stats.New)
	}
	if stats.TopGainers != 2 {
		t.Errorf("Expected 2 tokens up more than 5%%, got %d", stats.TopGainers)
	}
}
