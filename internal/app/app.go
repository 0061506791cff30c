package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pulseboard/market-feed/internal/config"
	"github.com/pulseboard/market-feed/internal/feed"
	httphandler "github.com/pulseboard/market-feed/internal/handler/http"
	"github.com/pulseboard/market-feed/internal/market"
	"github.com/pulseboard/market-feed/internal/models"
	"github.com/pulseboard/market-feed/internal/seed"
	"github.com/pulseboard/market-feed/internal/service"
	"github.com/pulseboard/market-feed/internal/websocket"
	"github.com/pulseboard/market-feed/storage/redis"
)

type App struct {
	cfg        *config.Config
	log        *slog.Logger
	httpServer *http.Server
	feed       *feed.Feed
	discovery  *service.DiscoveryService
	markets    *market.Manager
	wsManager  *websocket.Manager
	publisher  *redis.Publisher

	ctx    context.Context
	cancel context.CancelFunc
}

func New(log *slog.Logger, cfg *config.Config) *App {
	ctx, cancel := context.WithCancel(context.Background())

	var publisher *redis.Publisher
	if cfg.Cache.Enabled {
		p, err := redis.NewPublisher(cfg.Cache, log)
		if err != nil {
			log.Warn("redis unavailable, continuing without cache", "error", err)
		} else {
			publisher = p
		}
	}

	now := time.Now()

	portfolioFeed := feed.New(cfg.Feed, log, seed.Assets(), seed.PortfolioHistory(now))
	discovery := service.NewDiscoveryService(cfg.Feed, log, seed.Tokens())

	wsManager := websocket.NewManager(log)
	markets := market.NewManager(ctx, cfg.Market, cfg.Book, log, seed.TradingPairs(), wsManager)

	portfolioFeed.Subscribe(wsManager)
	discovery.Subscribe(wsManager)

	if publisher != nil {
		portfolioFeed.Subscribe(feed.SubscriberFunc(func(snap models.PortfolioSnapshot) {
			pubCtx, pubCancel := context.WithTimeout(ctx, 3*time.Second)
			defer pubCancel()
			publisher.PublishPrices(pubCtx, snap.Assets)
			publisher.CacheSnapshot(pubCtx, "snapshot:portfolio", snap)
		}))
	}

	ordersService, err := service.NewOrdersService(cfg.Ticket, markets)
	if err != nil {
		panic(fmt.Errorf("failed to init orders service: %w", err))
	}

	portfolioService := service.NewPortfolioService(portfolioFeed, seed.Transactions(now))
	insightsService := service.NewInsightsService(
		seed.EconomicEvents(),
		seed.SocialFeed(now),
		seed.WhaleTransactions(now),
		seed.Sentiment(),
	)

	ginEngine := gin.New()
	ginEngine.Use(gin.Recovery())
	ginEngine.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	httpHandler := httphandler.NewHandler(portfolioService, discovery, insightsService, ordersService, markets, wsManager, log)
	httpHandler.RegisterRoutes(ginEngine)

	httpServer := &http.Server{
		Addr:    net.JoinHostPort("", strconv.FormatUint(uint64(cfg.HTTP.Port), 10)),
		Handler: ginEngine,
	}

	return &App{
		cfg:        cfg,
		log:        log,
		httpServer: httpServer,
		feed:       portfolioFeed,
		discovery:  discovery,
		markets:    markets,
		wsManager:  wsManager,
		publisher:  publisher,
		ctx:        ctx,
		cancel:     cancel,
	}
}

func (a *App) Run() error {
	errChan := make(chan error, 1)
	a.log.Info("starting application components...")

	go func() {
		a.log.Info("websocket manager started")
		a.wsManager.Run(a.ctx)
		a.log.Info("websocket manager stopped")
	}()

	a.feed.Start(a.ctx)
	a.discovery.Start(a.ctx)

	go func() {
		if err := a.runHTTP(); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	err := <-errChan
	a.log.Warn("shutting down application due to an error", "error", err)

	a.Stop()
	return err
}

func (a *App) Stop() {
	a.log.Info("stopping application components gracefully...")

	// Tick loops first, so nothing publishes into the fan-out while it
	// shuts down.
	a.feed.Stop()
	a.discovery.Stop()
	a.markets.StopAll()

	a.cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.cfg.HTTP.Timeout)
	defer shutdownCancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.log.Warn("failed to gracefully shutdown HTTP server", "error", err)
	} else {
		a.log.Info("HTTP server stopped")
	}

	if a.publisher != nil {
		a.publisher.Close()
		a.log.Info("redis publisher closed")
	}
}

func (a *App) runHTTP() error {
	const op = "app.runHTTP"

	a.log.Info("HTTP server is running", "addr", a.httpServer.Addr)

	if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
