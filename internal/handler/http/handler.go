package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	gorilla_ws "github.com/gorilla/websocket"
	"github.com/shopspring/decimal"

	"github.com/pulseboard/market-feed/internal/market"
	"github.com/pulseboard/market-feed/internal/service"
	"github.com/pulseboard/market-feed/internal/websocket"
	"github.com/pulseboard/market-feed/lib/errs"
)

type Handler struct {
	portfolio *service.PortfolioService
	discovery *service.DiscoveryService
	insights  *service.InsightsService
	orders    *service.OrdersService
	markets   *market.Manager
	wsManager *websocket.Manager
	log       *slog.Logger
	upgrader  gorilla_ws.Upgrader
}

func NewHandler(
	portfolio *service.PortfolioService,
	discovery *service.DiscoveryService,
	insights *service.InsightsService,
	orders *service.OrdersService,
	markets *market.Manager,
	wsManager *websocket.Manager,
	log *slog.Logger,
) *Handler {
	return &Handler{
		portfolio: portfolio,
		discovery: discovery,
		insights:  insights,
		orders:    orders,
		markets:   markets,
		wsManager: wsManager,
		log:       log,
		upgrader: gorilla_ws.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		portfolio := api.Group("/portfolio")
		{
			portfolio.GET("", h.getPortfolio)
			portfolio.GET("/history", h.getPortfolioHistory)
			portfolio.GET("/transactions", h.getTransactions)
		}

		tokens := api.Group("/tokens")
		{
			tokens.GET("", h.listTokens)
			tokens.GET("/categories", h.listCategories)
			tokens.GET("/stats", h.getTokenStats)
		}

		markets := api.Group("/markets")
		{
			markets.GET("/pairs", h.listPairs)
			markets.GET("/:pair", h.getMarket)
			markets.GET("/:pair/orderbook", h.getOrderBook)
			markets.GET("/:pair/trades", h.getTrades)
		}

		orders := api.Group("/orders")
		{
			orders.POST("/preview", h.previewOrder)
			orders.POST("", h.submitOrder)
		}

		api.GET("/calendar/events", h.listEvents)

		social := api.Group("/social")
		{
			social.GET("/feed", h.getSocialFeed)
			social.GET("/whales", h.getWhaleActivity)
			social.GET("/sentiment", h.getSentiment)
		}

		api.GET("/ws", h.wsConnect)
	}
}

func (h *Handler) getPortfolio(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.Snapshot())
}

func (h *Handler) getPortfolioHistory(c *gin.Context) {
	c.JSON(http.StatusOK, h.portfolio.History())
}

func (h *Handler) getTransactions(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, h.portfolio.Transactions(limit))
}

func (h *Handler) listTokens(c *gin.Context) {
	q := service.TokenQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
	c.JSON(http.StatusOK, h.discovery.Tokens(q))
}

func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, h.discovery.Categories())
}

func (h *Handler) getTokenStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.discovery.Stats())
}

func (h *Handler) listPairs(c *gin.Context) {
	c.JSON(http.StatusOK, h.markets.Pairs())
}

func (h *Handler) getMarket(c *gin.Context) {
	session, err := h.markets.Session(c.Param("pair"))
	if err != nil {
		h.renderMarketError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *Handler) getOrderBook(c *gin.Context) {
	session, err := h.markets.Session(c.Param("pair"))
	if err != nil {
		h.renderMarketError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.OrderBook())
}

func (h *Handler) getTrades(c *gin.Context) {
	session, err := h.markets.Session(c.Param("pair"))
	if err != nil {
		h.renderMarketError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Trades())
}

func (h *Handler) renderMarketError(c *gin.Context, err error) {
	if errors.Is(err, errs.ErrUnknownPair) {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown trading pair"})
		return
	}
	h.log.Error("market request failed", slog.Any("error", err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// orderRequest mirrors the trading form. Numeric fields arrive as strings
// so the client controls precision; empty means untouched.
type orderRequest struct {
	Pair    string `json:"pair" binding:"required"`
	Side    string `json:"side" binding:"required"`
	Kind    string `json:"type" binding:"required"`
	Edited  string `json:"edited"`
	Amount  string `json:"amount"`
	Price   string `json:"price"`
	Total   string `json:"total"`
	Percent int64  `json:"percent"`
}

func (r orderRequest) toEdit() (service.TicketEdit, error) {
	edit := service.TicketEdit{
		Pair:    r.Pair,
		Side:    r.Side,
		Kind:    r.Kind,
		Edited:  r.Edited,
		Percent: r.Percent,
	}

	parse := func(raw string) (*decimal.Decimal, error) {
		if raw == "" {
			return nil, nil
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}

	var err error
	if edit.Amount, err = parse(r.Amount); err != nil {
		return service.TicketEdit{}, err
	}
	if edit.Price, err = parse(r.Price); err != nil {
		return service.TicketEdit{}, err
	}
	if edit.Total, err = parse(r.Total); err != nil {
		return service.TicketEdit{}, err
	}

	return edit, nil
}

func (h *Handler) previewOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	edit, err := req.toEdit()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid number format"})
		return
	}

	preview, err := h.orders.Preview(edit)
	if err != nil {
		h.renderOrderError(c, err)
		return
	}

	c.JSON(http.StatusOK, preview)
}

func (h *Handler) submitOrder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	edit, err := req.toEdit()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid number format"})
		return
	}

	order, err := h.orders.Submit(edit)
	if err != nil {
		h.renderOrderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, order)
}

func (h *Handler) renderOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrUnknownPair):
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown trading pair"})
	case errors.Is(err, errs.ErrInvalidOrder):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "order is not valid"})
	case errors.Is(err, errs.ErrPriceUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": "price unavailable"})
	default:
		h.log.Error("order request failed", slog.Any("error", err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func (h *Handler) listEvents(c *gin.Context) {
	c.JSON(http.StatusOK, h.insights.Events())
}

func (h *Handler) getSocialFeed(c *gin.Context) {
	c.JSON(http.StatusOK, h.insights.SocialFeed())
}

func (h *Handler) getWhaleActivity(c *gin.Context) {
	c.JSON(http.StatusOK, h.insights.WhaleActivity())
}

func (h *Handler) getSentiment(c *gin.Context) {
	c.JSON(http.StatusOK, h.insights.Sentiment())
}

func (h *Handler) wsConnect(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error("failed to upgrade connection", "error", err)
		return
	}

	client := websocket.NewClient(h.wsManager, conn)
	h.wsManager.Register(client)

	go client.Writer()
	go client.Reader()
}
