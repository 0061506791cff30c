package service

import (
	"context"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pulseboard/market-feed/internal/config"
	"github.com/pulseboard/market-feed/internal/feed"
	"github.com/pulseboard/market-feed/internal/models"
)

// Sort orders accepted by TokenQuery.
const (
	SortTrending  = "trending"
	SortPrice     = "price"
	SortChange    = "change"
	SortVolume    = "volume"
	SortMarketCap = "marketcap"
)

type TokenQuery struct {
	Search   string
	Category string
	Sort     string
}

// TokenSubscriber receives the full perturbed token list after each
// discovery tick.
type TokenSubscriber interface {
	OnTokensUpdate([]models.Token)
}

type TokenSubscriberFunc func([]models.Token)

func (f TokenSubscriberFunc) OnTokensUpdate(t []models.Token) { f(t) }

// DiscoveryService owns the token-discovery universe. A slow ticker keeps
// the listings moving: prices get a 1% shock, changes and volumes drift,
// and tokens occasionally start trending. Same single-goroutine tick
// discipline as the feeds.
type DiscoveryService struct {
	log *slog.Logger
	rng *rand.Rand

	tickInterval time.Duration

	mu     sync.RWMutex
	tokens []models.Token

	subMu   sync.Mutex
	subs    map[int]TokenSubscriber
	nextSub int

	started bool
	stop    chan struct{}
	done    chan struct{}
}

func NewDiscoveryService(cfg config.FeedConfig, log *slog.Logger, tokens []models.Token) *DiscoveryService {
	return &DiscoveryService{
		log:          log,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		tickInterval: cfg.TickInterval,
		tokens:       append([]models.Token(nil), tokens...),
		subs:         make(map[int]TokenSubscriber),
	}
}

func (d *DiscoveryService) Start(ctx context.Context) {
	d.mu.Lock()
	if d.started {
		d.mu.Unlock()
		return
	}
	d.started = true
	d.stop = make(chan struct{})
	d.done = make(chan struct{})
	d.mu.Unlock()

	d.log.Info("discovery feed started", "interval", d.tickInterval, "tokens", len(d.tokens))
	go d.run(ctx)
}

func (d *DiscoveryService) Stop() {
	d.mu.Lock()
	if !d.started {
		d.mu.Unlock()
		return
	}
	d.started = false
	stop, done := d.stop, d.done
	d.mu.Unlock()

	close(stop)
	<-done
	d.log.Info("discovery feed stopped")
}

func (d *DiscoveryService) Subscribe(s TokenSubscriber) (cancel func()) {
	d.subMu.Lock()
	defer d.subMu.Unlock()

	id := d.nextSub
	d.nextSub++
	d.subs[id] = s

	return func() {
		d.subMu.Lock()
		defer d.subMu.Unlock()
		delete(d.subs, id)
	}
}

func (d *DiscoveryService) run(ctx context.Context) {
	defer close(d.done)

	ticker := time.NewTicker(d.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-d.stop:
			return
		case <-ticker.C:
			d.publish(d.tick())
		}
	}
}

func (d *DiscoveryService) tick() []models.Token {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.tokens {
		d.tokens[i].Price = feed.Perturb(d.rng, d.tokens[i].Price, 0.01)
		d.tokens[i].Change24h += (d.rng.Float64()*2 - 1)
		d.tokens[i].Volume24h = feed.Perturb(d.rng, d.tokens[i].Volume24h, 0.025)
		if d.rng.Float64() > 0.7 {
			d.tokens[i].Trending = true
		}
	}

	return append([]models.Token(nil), d.tokens...)
}

func (d *DiscoveryService) publish(tokens []models.Token) {
	d.subMu.Lock()
	subs := make([]TokenSubscriber, 0, len(d.subs))
	for _, s := range d.subs {
		subs = append(subs, s)
	}
	d.subMu.Unlock()

	for _, s := range subs {
		s.OnTokensUpdate(tokens)
	}
}

// Tokens filters and sorts the universe. The default "trending" order puts
// trending tokens first, then the biggest movers.
func (d *DiscoveryService) Tokens(q TokenQuery) []models.Token {
	d.mu.RLock()
	tokens := append([]models.Token(nil), d.tokens...)
	d.mu.RUnlock()

	filtered := tokens[:0]
	search := strings.ToLower(q.Search)
	for _, t := range tokens {
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Name), search) &&
			!strings.Contains(strings.ToLower(t.Symbol), search) {
			continue
		}
		if q.Category != "" && q.Category != "all" &&
			!strings.EqualFold(t.Category, q.Category) {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		a, b := filtered[i], filtered[j]
		switch q.Sort {
		case SortPrice:
			return a.Price > b.Price
		case SortChange:
			return a.Change24h > b.Change24h
		case SortVolume:
			return a.Volume24h > b.Volume24h
		case SortMarketCap:
			return a.MarketCap > b.MarketCap
		default:
			if a.Trending != b.Trending {
				return a.Trending
			}
			return a.Change24h > b.Change24h
		}
	})

	return filtered
}

// Categories lists the distinct token categories, "all" first.
func (d *DiscoveryService) Categories() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	seen := make(map[string]bool)
	out := []string{"all"}
	for _, t := range d.tokens {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}

// Stats counts trending tokens, new listings and movers up more than 5%.
func (d *DiscoveryService) Stats() models.TokenStats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var stats models.TokenStats
	for _, t := range d.tokens {
		if t.Trending {
			stats.Trending++
		}
		if t.New {
			stats.New++
		}
		if t.Change24h > 5 {
			stats.TopGainers++
		}
	}
	return stats
}
