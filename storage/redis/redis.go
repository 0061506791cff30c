// Package redis is an optional fan-out and cache for feed output: per-tick
// price updates go out on pub/sub channels and the latest snapshots are
// kept under short-lived keys. The app runs fine without it.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pulseboard/market-feed/internal/config"
	"github.com/pulseboard/market-feed/internal/models"
)

const priceChannelPrefix = "prices:"

type Publisher struct {
	client *redis.Client
	log    *slog.Logger
	ttl    time.Duration
}

// NewPublisher connects and pings; a failed ping is returned as an error
// so the caller can decide to continue without redis.
func NewPublisher(cfg config.CacheConfig, log *slog.Logger) (*Publisher, error) {
	const op = "storage/redis.NewPublisher"

	client := redis.NewClient(&redis.Options{
		Addr:         net.JoinHostPort(cfg.Host, strconv.FormatUint(uint64(cfg.Port), 10)),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Publisher{client: client, log: log, ttl: cfg.TTL}, nil
}

// PublishPrices pushes one PriceUpdate per asset onto its pub/sub channel.
// Best effort: failures are logged, never propagated to the tick path.
func (p *Publisher) PublishPrices(ctx context.Context, assets []models.Asset) {
	for _, a := range assets {
		payload, err := json.Marshal(models.PriceUpdate{Symbol: a.Symbol, Price: a.Price})
		if err != nil {
			p.log.Error("failed to marshal price update", "symbol", a.Symbol, "error", err)
			continue
		}
		if err := p.client.Publish(ctx, priceChannelPrefix+a.Symbol, payload).Err(); err != nil {
			p.log.Warn("failed to publish price update", "symbol", a.Symbol, "error", err)
		}
	}
}

// CacheSnapshot stores the latest snapshot JSON under key with the
// configured TTL.
func (p *Publisher) CacheSnapshot(ctx context.Context, key string, snapshot any) {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		p.log.Error("failed to marshal snapshot for cache", "key", key, "error", err)
		return
	}
	if err := p.client.Set(ctx, key, payload, p.ttl).Err(); err != nil {
		p.log.Warn("failed to cache snapshot", "key", key, "error", err)
	}
}

func (p *Publisher) Close() {
	if err := p.client.Close(); err != nil {
		p.log.Warn("error closing redis client", "error", err)
	}
}
