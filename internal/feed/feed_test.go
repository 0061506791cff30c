package feed_test

import (
	"context"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pulseboard/market-feed/internal/config"
	"github.com/pulseboard/market-feed/internal/feed"
	"github.com/pulseboard/market-feed/internal/models"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testAssets() []models.Asset {
	return []models.Asset{
		{ID: "1", Symbol: "BTC", Balance: 2, Price: 100, Change24h: 4},
		{ID: "2", Symbol: "ETH", Balance: 10, Price: 30, Change24h: -2},
	}
}

func TestPerturb(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("stays_within_volatility_band", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			got := feed.Perturb(rng, 100, 0.05)
			if got < 95 || got > 105 {
				t.Fatalf("Perturb(100, 0.05) = %v, want within [95, 105]", got)
			}
		}
	})

	t.Run("preserves_sign_of_negative_values", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			got := feed.Perturb(rng, -50, 0.1)
			if got >= 0 {
				t.Fatalf("Perturb(-50, 0.1) = %v, want negative", got)
			}
			if got < -55 || got > -45 {
				t.Fatalf("Perturb(-50, 0.1) = %v, want within [-55, -45]", got)
			}
		}
	})

	t.Run("zero_volatility_is_identity", func(t *testing.T) {
		if got := feed.Perturb(rng, 123.45, 0); got != 123.45 {
			t.Errorf("Perturb(123.45, 0) = %v, want 123.45", got)
		}
	})
}

func TestRecompute(t *testing.T) {
	t.Run("derives_values_and_total", func(t *testing.T) {
		assets := testAssets()
		total := feed.Recompute(assets)

		if total != 500 {
			t.Errorf("Expected total 500, got %v", total)
		}
		if assets[0].Value != 200 {
			t.Errorf("Expected BTC value 200, got %v", assets[0].Value)
		}
		if assets[1].Value != 300 {
			t.Errorf("Expected ETH value 300, got %v", assets[1].Value)
		}
	})

	t.Run("allocations_sum_to_one_hundred", func(t *testing.T) {
		assets := testAssets()
		feed.Recompute(assets)

		var sum float64
		for _, a := range assets {
			sum += a.Allocation
		}
		if math.Abs(sum-100) > 1e-6 {
			t.Errorf("Expected allocations to sum to 100, got %v", sum)
		}
	})

	t.Run("repeated_calls_do_not_drift", func(t *testing.T) {
		assets := testAssets()
		first := feed.Recompute(assets)
		second := feed.Recompute(assets)

		if first != second {
			t.Errorf("Expected stable total, got %v then %v", first, second)
		}
	})

	t.Run("worthless_portfolio_gets_zero_allocations", func(t *testing.T) {
		assets := []models.Asset{
			{Symbol: "BTC", Balance: 0, Price: 100},
			{Symbol: "ETH", Balance: 0, Price: 30},
		}
		total := feed.Recompute(assets)

		if total != 0 {
			t.Errorf("Expected total 0, got %v", total)
		}
		for _, a := range assets {
			if a.Allocation != 0 {
				t.Errorf("Expected zero allocation for %s, got %v", a.Symbol, a.Allocation)
			}
		}
	})
}

func TestWeightedChange(t *testing.T) {
	assets := testAssets()
	total := feed.Recompute(assets)

	// 200*4 + 300*(-2) = 200, over total 500.
	got := feed.WeightedChange(assets, total)
	if math.Abs(got-0.4) > 1e-9 {
		t.Errorf("Expected weighted change 0.4, got %v", got)
	}

	if got := feed.WeightedChange(nil, 0); got != 0 {
		t.Errorf("Expected 0 for empty portfolio, got %v", got)
	}
}

func TestFeedSnapshot(t *testing.T) {
	cfg := config.FeedConfig{
		TickInterval:    time.Hour,
		PriceVolatility: 0.005,
		ChangeDrift:     0.25,
		HistoryWindow:   5,
	}

	t.Run("seed_aggregates_are_recomputed", func(t *testing.T) {
		f := feed.New(cfg, testLogger(), testAssets(), nil)
		snap := f.Snapshot()

		if snap.TotalValue != 500 {
			t.Errorf("Expected seeded total 500, got %v", snap.TotalValue)
		}
		if snap.Seq != 0 {
			t.Errorf("Expected seq 0 before any tick, got %d", snap.Seq)
		}
	})

	t.Run("seed_history_is_trimmed_to_window", func(t *testing.T) {
		history := make([]models.PricePoint, 12)
		for i := range history {
			history[i] = models.PricePoint{Value: float64(i)}
		}

		f := feed.New(cfg, testLogger(), testAssets(), history)
		snap := f.Snapshot()

		if len(snap.History) != 5 {
			t.Fatalf("Expected history trimmed to 5 points, got %d", len(snap.History))
		}
		if snap.History[0].Value != 7 {
			t.Errorf("Expected oldest surviving point 7, got %v", snap.History[0].Value)
		}
	})

	t.Run("snapshot_is_a_copy", func(t *testing.T) {
		f := feed.New(cfg, testLogger(), testAssets(), nil)

		snap := f.Snapshot()
		snap.Assets[0].Price = -1

		if got := f.Snapshot().Assets[0].Price; got == -1 {
			t.Error("Mutating a snapshot leaked into feed state")
		}
	})
}

func TestFeedTicks(t *testing.T) {
	cfg := config.FeedConfig{
		TickInterval:    5 * time.Millisecond,
		PriceVolatility: 0.005,
		ChangeDrift:     0.25,
		HistoryWindow:   5,
	}

	t.Run("subscribers_receive_snapshots_with_growing_seq", func(t *testing.T) {
		f := feed.New(cfg, testLogger(), testAssets(), nil)

		snaps := make(chan models.PortfolioSnapshot, 64)
		f.Subscribe(feed.SubscriberFunc(func(s models.PortfolioSnapshot) {
			select {
			case snaps <- s:
			default:
			}
		}))

		f.Start(context.Background())
		defer f.Stop()

		var prev uint64
		for i := 0; i < 3; i++ {
			select {
			case snap := <-snaps:
				if snap.Seq <= prev && i > 0 {
					t.Fatalf("Expected seq to grow, got %d after %d", snap.Seq, prev)
				}
				prev = snap.Seq
				if len(snap.History) > cfg.HistoryWindow {
					t.Fatalf("History exceeded window: %d > %d", len(snap.History), cfg.HistoryWindow)
				}
			case <-time.After(time.Second):
				t.Fatal("Timed out waiting for a feed snapshot")
			}
		}
	})

	t.Run("stop_halts_publishing", func(t *testing.T) {
		f := feed.New(cfg, testLogger(), testAssets(), nil)

		var published atomic.Int64
		f.Subscribe(feed.SubscriberFunc(func(models.PortfolioSnapshot) {
			published.Add(1)
		}))

		f.Start(context.Background())

		deadline := time.After(time.Second)
		for published.Load() == 0 {
			select {
			case <-deadline:
				t.Fatal("Timed out waiting for the first tick")
			case <-time.After(time.Millisecond):
			}
		}

		f.Stop()
		after := published.Load()
		seq := f.Snapshot().Seq

		time.Sleep(10 * cfg.TickInterval)

		if got := published.Load(); got != after {
			t.Errorf("Expected no publishes after Stop, got %d more", got-after)
		}
		if got := f.Snapshot().Seq; got != seq {
			t.Errorf("Expected seq frozen at %d after Stop, got %d", seq, got)
		}
	})

	t.Run("stop_and_start_are_idempotent", func(t *testing.T) {
		f := feed.New(cfg, testLogger(), testAssets(), nil)

		f.Stop() // never started, must not block

		f.Start(context.Background())
		f.Start(context.Background())
		f.Stop()
		f.Stop()
	})
}
