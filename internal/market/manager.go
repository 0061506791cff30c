package market

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"github.com/pulseboard/market-feed/internal/config"
	"github.com/pulseboard/market-feed/internal/models"
	"github.com/pulseboard/market-feed/lib/errs"
)

// Manager owns one Session per listed trading pair. Sessions are created
// lazily on first access and started immediately; they share no state with
// each other.
type Manager struct {
	cfg  config.MarketConfig
	book config.BookConfig
	log  *slog.Logger

	mu       sync.Mutex
	ctx      context.Context
	pairs    map[string]models.TradingPair
	sessions map[string]*Session

	// subscribers attached to every session as it is created
	subs []Subscriber
}

func NewManager(ctx context.Context, cfg config.MarketConfig, book config.BookConfig, log *slog.Logger, pairs []models.TradingPair, subs ...Subscriber) *Manager {
	m := &Manager{
		cfg:      cfg,
		book:     book,
		log:      log,
		ctx:      ctx,
		pairs:    make(map[string]models.TradingPair, len(pairs)),
		sessions: make(map[string]*Session),
		subs:     subs,
	}
	for _, p := range pairs {
		m.pairs[p.Symbol] = p
	}
	return m
}

// Session returns the running session for symbol, creating it on first
// use. Unknown symbols fail with errs.ErrUnknownPair.
func (m *Manager) Session(symbol string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[symbol]; ok {
		return s, nil
	}

	pair, ok := m.pairs[symbol]
	if !ok {
		return nil, errs.ErrUnknownPair
	}

	s := NewSession(m.cfg, m.book, m.log, pair)
	for _, sub := range m.subs {
		s.Subscribe(sub)
	}
	s.Start(m.ctx)
	m.sessions[symbol] = s
	return s, nil
}

// Pairs lists every tradable pair, with live prices for pairs that have an
// active session.
func (m *Manager) Pairs() []models.TradingPair {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.TradingPair, 0, len(m.pairs))
	for symbol, pair := range m.pairs {
		if s, ok := m.sessions[symbol]; ok {
			snap := s.Snapshot()
			pair.Price = snap.Price
			pair.Change24h = snap.Change24h
		}
		out = append(out, pair)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Volume > out[j].Volume })
	return out
}

// StopAll tears down every active session; no session publishes after it
// returns.
func (m *Manager) StopAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.Stop()
	}
}
