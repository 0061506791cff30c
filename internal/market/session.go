// Package market drives the trading view: one Session per trading pair
// ticks on a fast interval, advancing the price, the candle chart, the
// synthesized order book and the recent-trades tape.
package market

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pulseboard/market-feed/internal/config"
	"github.com/pulseboard/market-feed/internal/feed"
	"github.com/pulseboard/market-feed/internal/models"
	"github.com/pulseboard/market-feed/internal/orderbook"
	"github.com/pulseboard/market-feed/internal/ticket"
)

// Subscriber receives a trading snapshot after every session tick.
type Subscriber interface {
	OnTradingUpdate(models.TradingSnapshot)
}

type SubscriberFunc func(models.TradingSnapshot)

func (f SubscriberFunc) OnTradingUpdate(s models.TradingSnapshot) { f(s) }

// Session owns the simulated state for one pair. Like the portfolio feed,
// a single goroutine performs all mutation, so ticks never overlap and a
// slow tick drops beats instead of queueing them.
type Session struct {
	cfg  config.MarketConfig
	book config.BookConfig
	log  *slog.Logger
	rng  *rand.Rand

	mu        sync.RWMutex
	pair      string
	price     float64
	change24h float64
	candles   []models.Candle
	orderBook models.OrderBook
	trades    []models.Trade
	seq       uint64

	subMu   sync.Mutex
	subs    map[int]Subscriber
	nextSub int

	started bool
	stop    chan struct{}
	done    chan struct{}
}

// NewSession seeds a session from a pair listing: a backward random walk
// of one-minute candles ending at the listed price, an initial book and a
// full trades tape.
func NewSession(cfg config.MarketConfig, book config.BookConfig, log *slog.Logger, pair models.TradingPair) *Session {
	s := &Session{
		cfg:       cfg,
		book:      book,
		log:       log,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		pair:      pair.Symbol,
		price:     pair.Price,
		change24h: pair.Change24h,
		subs:      make(map[int]Subscriber),
	}

	s.seedCandles(time.Now())
	s.orderBook = orderbook.Synthesize(s.rng, s.price, s.book)
	s.trades = s.synthesizeTrades(s.price, cfg.TradeWindow, time.Now())

	return s
}

// seedCandles walks the price forward over CandleWindow one-minute bars so
// the chart opens with history; the walk's final close becomes the live
// price.
func (s *Session) seedCandles(now time.Time) {
	s.candles = make([]models.Candle, 0, s.cfg.CandleWindow)
	price := s.price

	for i := s.cfg.CandleWindow - 1; i >= 0; i-- {
		open := price
		close := price * (1 + (s.rng.Float64()-0.5)*0.02)
		high := maxF(open, close) * (1 + s.rng.Float64()*0.01)
		low := minF(open, close) * (1 - s.rng.Float64()*0.01)

		s.candles = append(s.candles, models.Candle{
			Timestamp: now.Add(-time.Duration(i) * time.Minute),
			Open:      open,
			High:      high,
			Low:       low,
			Close:     close,
			Volume:    s.rng.Float64()*100 + 50,
		})
		price = close
	}

	s.price = price
}

func (s *Session) Pair() string { return s.pair }

// Price returns the live reference price used for market-order math.
func (s *Session) Price() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.price
}

func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.mu.Unlock()

	s.log.Info("trading session started", "pair", s.pair, "interval", s.cfg.TickInterval)
	go s.run(ctx)
}

// Stop cancels the tick loop and blocks until it has exited; no snapshot
// is published afterwards. Safe to call more than once.
func (s *Session) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	stop, done := s.stop, s.done
	s.mu.Unlock()

	close(stop)
	<-done
	s.log.Info("trading session stopped", "pair", s.pair)
}

func (s *Session) Snapshot() models.TradingSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked(time.Now())
}

// OrderBook resynthesizes depth at the current price on demand, the same
// way a tick does.
func (s *Session) OrderBook() models.OrderBook {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderBook = orderbook.Synthesize(s.rng, s.price, s.book)
	return s.orderBook
}

func (s *Session) Trades() []models.Trade {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Trade(nil), s.trades...)
}

func (s *Session) Subscribe(sub Subscriber) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = sub

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case now := <-ticker.C:
			s.publish(s.tick(now))
		}
	}
}

func (s *Session) tick(now time.Time) models.TradingSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevClose := s.price
	s.price = feed.Perturb(s.rng, s.price, s.cfg.PriceVolatility)
	s.change24h += (s.rng.Float64()*2 - 1) * s.cfg.ChangeDrift

	s.candles = append(s.candles, models.Candle{
		Timestamp: now,
		Open:      prevClose,
		High:      s.price * (1 + s.rng.Float64()*0.005),
		Low:       s.price * (1 - s.rng.Float64()*0.005),
		Close:     s.price,
		Volume:    s.rng.Float64()*100 + 50,
	})
	if len(s.candles) > s.cfg.CandleWindow {
		s.candles = s.candles[len(s.candles)-s.cfg.CandleWindow:]
	}

	s.orderBook = orderbook.Synthesize(s.rng, s.price, s.book)

	if s.rng.Float64() < s.cfg.TradeChance {
		fresh := s.synthesizeTrades(s.price, 1, now)
		s.trades = append(fresh, s.trades...)
		if len(s.trades) > s.cfg.TradeWindow {
			s.trades = s.trades[:s.cfg.TradeWindow]
		}
	}

	s.seq++
	return s.snapshotLocked(now)
}

// synthesizeTrades fakes count fills around price, newest first, with a
// ±0.1% price jitter per fill.
func (s *Session) synthesizeTrades(price float64, count int, now time.Time) []models.Trade {
	trades := make([]models.Trade, 0, count)

	for i := 0; i < count; i++ {
		p := price * (1 + (s.rng.Float64()-0.5)*0.002)
		qty := s.rng.Float64()*5 + 0.1

		side := ticket.SideBuy
		if s.rng.Float64() > 0.5 {
			side = ticket.SideSell
		}

		trades = append(trades, models.Trade{
			ID:        uuid.New(),
			Price:     p,
			Quantity:  qty,
			Side:      side,
			Total:     p * qty,
			Timestamp: now.Add(-time.Duration(i) * time.Second),
		})
	}

	return trades
}

func (s *Session) snapshotLocked(now time.Time) models.TradingSnapshot {
	return models.TradingSnapshot{
		Seq:       s.seq,
		Pair:      s.pair,
		Price:     s.price,
		Change24h: s.change24h,
		Candles:   append([]models.Candle(nil), s.candles...),
		Book:      s.orderBook,
		Trades:    append([]models.Trade(nil), s.trades...),
		UpdatedAt: now,
	}
}

func (s *Session) publish(snap models.TradingSnapshot) {
	s.subMu.Lock()
	subs := make([]Subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.OnTradingUpdate(snap)
	}
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
