package feed

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/pulseboard/market-feed/internal/config"
	"github.com/pulseboard/market-feed/internal/models"
)

// Subscriber receives a snapshot after every tick. Callbacks run on the
// feed's own goroutine and must not block for long.
type Subscriber interface {
	OnPortfolioUpdate(models.PortfolioSnapshot)
}

// SubscriberFunc adapts a plain function to the Subscriber interface.
type SubscriberFunc func(models.PortfolioSnapshot)

func (f SubscriberFunc) OnPortfolioUpdate(s models.PortfolioSnapshot) { f(s) }

// Feed owns the simulated portfolio state for one view. All mutation
// happens on a single goroutine started by Start, so ticks can never
// overlap; a tick that outlasts the period makes the ticker drop beats
// rather than queue them.
type Feed struct {
	cfg config.FeedConfig
	log *slog.Logger
	rng *rand.Rand

	mu      sync.RWMutex
	assets  []models.Asset
	total   float64
	history []models.PricePoint
	seq     uint64

	subMu   sync.Mutex
	subs    map[int]Subscriber
	nextSub int

	started bool
	stop    chan struct{}
	done    chan struct{}
}

// New seeds a feed with the given holdings and trailing history. Derived
// fields on the seed assets are recomputed immediately, so callers only
// need to supply symbol, balance, price and 24h change.
func New(cfg config.FeedConfig, log *slog.Logger, assets []models.Asset, history []models.PricePoint) *Feed {
	f := &Feed{
		cfg:     cfg,
		log:     log,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		assets:  append([]models.Asset(nil), assets...),
		history: append([]models.PricePoint(nil), history...),
		subs:    make(map[int]Subscriber),
	}

	f.total = Recompute(f.assets)
	f.trimHistory()

	return f
}

// Start launches the tick loop. It is a no-op if the feed is already
// running. The loop stops when ctx is cancelled or Stop is called.
func (f *Feed) Start(ctx context.Context) {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return
	}
	f.started = true
	f.stop = make(chan struct{})
	f.done = make(chan struct{})
	f.mu.Unlock()

	f.log.Info("portfolio feed started", "interval", f.cfg.TickInterval, "assets", len(f.assets))
	go f.run(ctx)
}

// Stop cancels the tick loop and blocks until it has exited. After Stop
// returns no further snapshots are published. Safe to call more than once.
func (f *Feed) Stop() {
	f.mu.Lock()
	if !f.started {
		f.mu.Unlock()
		return
	}
	f.started = false
	stop, done := f.stop, f.done
	f.mu.Unlock()

	close(stop)
	<-done
	f.log.Info("portfolio feed stopped")
}

// Snapshot returns a copy of the current state without waiting for a tick.
func (f *Feed) Snapshot() models.PortfolioSnapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snapshotLocked(time.Now())
}

// Subscribe registers a snapshot observer and returns its cancel func.
func (f *Feed) Subscribe(s Subscriber) (cancel func()) {
	f.subMu.Lock()
	defer f.subMu.Unlock()

	id := f.nextSub
	f.nextSub++
	f.subs[id] = s

	return func() {
		f.subMu.Lock()
		defer f.subMu.Unlock()
		delete(f.subs, id)
	}
}

func (f *Feed) run(ctx context.Context) {
	defer close(f.done)

	ticker := time.NewTicker(f.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-f.stop:
			return
		case now := <-ticker.C:
			f.publish(f.tick(now))
		}
	}
}

// tick advances every asset by one random shock and rederives the
// aggregates. Prices take a multiplicative shock; the 24h change drifts
// additively, matching how the two quantities move in the reference data.
func (f *Feed) tick(now time.Time) models.PortfolioSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.assets {
		f.assets[i].Price = Perturb(f.rng, f.assets[i].Price, f.cfg.PriceVolatility)
		f.assets[i].Change24h += (f.rng.Float64()*2 - 1) * f.cfg.ChangeDrift
	}

	f.total = Recompute(f.assets)
	f.history = append(f.history, models.PricePoint{Timestamp: now, Value: f.total})
	f.trimHistory()
	f.seq++

	return f.snapshotLocked(now)
}

func (f *Feed) trimHistory() {
	if f.cfg.HistoryWindow > 0 && len(f.history) > f.cfg.HistoryWindow {
		f.history = f.history[len(f.history)-f.cfg.HistoryWindow:]
	}
}

func (f *Feed) snapshotLocked(now time.Time) models.PortfolioSnapshot {
	pct := WeightedChange(f.assets, f.total)

	return models.PortfolioSnapshot{
		Seq:              f.seq,
		Assets:           append([]models.Asset(nil), f.assets...),
		TotalValue:       f.total,
		Change24hPercent: pct,
		Change24hDollar:  f.total * pct / 100,
		History:          append([]models.PricePoint(nil), f.history...),
		UpdatedAt:        now,
	}
}

func (f *Feed) publish(snap models.PortfolioSnapshot) {
	f.subMu.Lock()
	subs := make([]Subscriber, 0, len(f.subs))
	for _, s := range f.subs {
		subs = append(subs, s)
	}
	f.subMu.Unlock()

	for _, s := range subs {
		s.OnPortfolioUpdate(snap)
	}
}
