package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env    string `env:"ENV" env-default:"local"`
	HTTP   HTTPConfig
	Feed   FeedConfig
	Market MarketConfig
	Book   BookConfig
	Ticket TicketConfig
	Cache  CacheConfig
}

type HTTPConfig struct {
	Port    uint16        `env:"HTTP_PORT" env-default:"8080"`
	Timeout time.Duration `env:"HTTP_TIMEOUT" env-default:"30s"`
}

// FeedConfig drives the portfolio feed: one tick perturbs every asset price
// and drifts every 24h change, then republishes derived aggregates.
type FeedConfig struct {
	TickInterval    time.Duration `env:"FEED_TICK_INTERVAL" env-default:"5s"`
	PriceVolatility float64       `env:"FEED_PRICE_VOLATILITY" env-default:"0.005"`
	ChangeDrift     float64       `env:"FEED_CHANGE_DRIFT" env-default:"0.25"`
	HistoryWindow   int           `env:"FEED_HISTORY_WINDOW" env-default:"30"`
}

// MarketConfig drives per-pair trading sessions (faster tick, candle chart).
type MarketConfig struct {
	TickInterval    time.Duration `env:"MARKET_TICK_INTERVAL" env-default:"2s"`
	PriceVolatility float64       `env:"MARKET_PRICE_VOLATILITY" env-default:"0.001"`
	ChangeDrift     float64       `env:"MARKET_CHANGE_DRIFT" env-default:"0.05"`
	CandleWindow    int           `env:"MARKET_CANDLE_WINDOW" env-default:"100"`
	TradeWindow     int           `env:"MARKET_TRADE_WINDOW" env-default:"20"`
	TradeChance     float64       `env:"MARKET_TRADE_CHANCE" env-default:"0.3"`
}

type BookConfig struct {
	Depth       int     `env:"BOOK_DEPTH" env-default:"15"`
	Step        float64 `env:"BOOK_STEP" env-default:"0.001"`
	MinQuantity float64 `env:"BOOK_MIN_QUANTITY" env-default:"0.1"`
	MaxQuantity float64 `env:"BOOK_MAX_QUANTITY" env-default:"10"`
}

// TicketConfig holds the demo balances backing the percent-of-balance
// shortcut and the maker/taker fee rate shown on the order summary.
type TicketConfig struct {
	FeeRate      string `env:"TICKET_FEE_RATE" env-default:"0.001"`
	QuoteBalance string `env:"TICKET_QUOTE_BALANCE" env-default:"10000"`
	BaseBalance  string `env:"TICKET_BASE_BALANCE" env-default:"5"`
}

type CacheConfig struct {
	Enabled  bool          `env:"REDIS_ENABLED" env-default:"true"`
	Host     string        `env:"REDIS_HOST" env-default:"localhost"`
	Port     uint16        `env:"REDIS_PORT" env-default:"6379"`
	Password string        `env:"REDIS_PASSWORD" env-default:""`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `env:"REDIS_SNAPSHOT_TTL" env-default:"2m"`
}

func MustLoad() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, reading from environment variables")
	}

	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		slog.Error("failed to read environment variables", "error", err)
		os.Exit(1)
	}

	return &cfg
}
