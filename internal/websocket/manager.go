// Package websocket fans feed snapshots out to connected dashboard
// clients. Clients subscribe to named channels ("portfolio", "tokens",
// "trading:<PAIR>") and receive every snapshot published on them.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pulseboard/market-feed/internal/models"
)

const (
	ChannelPortfolio = "portfolio"
	ChannelTokens    = "tokens"
	ChannelTrading   = "trading:" // prefix, completed with the pair symbol
)

// clientMessage is what clients send to manage their subscriptions.
type clientMessage struct {
	Type     string   `json:"type"` // "subscribe" or "unsubscribe"
	Channels []string `json:"channels"`
}

// envelope is what goes out on the wire.
type envelope struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	Manager *Manager
	Conn    *websocket.Conn
	ID      uuid.UUID
	Send    chan []byte

	mu       sync.RWMutex
	channels map[string]bool
}

type Manager struct {
	log        *slog.Logger
	clients    map[uuid.UUID]*Client
	mu         sync.RWMutex
	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
}

func NewManager(log *slog.Logger) *Manager {
	return &Manager{
		log:        log,
		clients:    make(map[uuid.UUID]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, 256),
	}
}

func NewClient(m *Manager, conn *websocket.Conn) *Client {
	return &Client{
		Manager:  m,
		Conn:     conn,
		ID:       uuid.New(),
		Send:     make(chan []byte, 256),
		channels: make(map[string]bool),
	}
}

func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			m.log.Info("websocket manager stopping...")
			m.closeAll()
			return
		case client := <-m.register:
			m.registerClient(client)
		case client := <-m.unregister:
			m.unregisterClient(client)
		case env := <-m.broadcast:
			m.fanOut(env)
		}
	}
}

func (m *Manager) Register(client *Client)   { m.register <- client }
func (m *Manager) Unregister(client *Client) { m.unregister <- client }

// Broadcast queues a payload for every client subscribed to channel.
// Dropped (with a warning) when the broadcast queue is full; snapshots are
// superseded by the next tick anyway.
func (m *Manager) Broadcast(channel string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		m.log.Error("failed to marshal broadcast payload", "channel", channel, "error", err)
		return
	}

	select {
	case m.broadcast <- envelope{Channel: channel, Data: data}:
	default:
		m.log.Warn("broadcast queue full, dropping snapshot", "channel", channel)
	}
}

// OnPortfolioUpdate lets the manager subscribe directly to the portfolio
// feed.
func (m *Manager) OnPortfolioUpdate(snap models.PortfolioSnapshot) {
	m.Broadcast(ChannelPortfolio, snap)
}

// OnTradingUpdate lets the manager subscribe directly to trading sessions.
func (m *Manager) OnTradingUpdate(snap models.TradingSnapshot) {
	m.Broadcast(ChannelTrading+snap.Pair, snap)
}

// OnTokensUpdate lets the manager subscribe to the discovery feed.
func (m *Manager) OnTokensUpdate(tokens []models.Token) {
	m.Broadcast(ChannelTokens, tokens)
}

func (m *Manager) registerClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clients[client.ID] = client
	m.log.Info("websocket client connected", "clientID", client.ID, "total", len(m.clients))
}

func (m *Manager) unregisterClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.clients[client.ID]; ok {
		delete(m.clients, client.ID)
		close(client.Send)
		m.log.Info("websocket client disconnected", "clientID", client.ID, "total", len(m.clients))
	}
}

func (m *Manager) fanOut(env envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		m.log.Error("failed to marshal envelope", "channel", env.Channel, "error", err)
		return
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, client := range m.clients {
		if !client.subscribed(env.Channel) {
			continue
		}
		select {
		case client.Send <- data:
		default:
			m.log.Warn("client send channel full, dropping message", "clientID", client.ID)
		}
	}
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, client := range m.clients {
		close(client.Send)
		client.Conn.Close()
		delete(m.clients, id)
	}
}

func (c *Client) subscribed(channel string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.channels[channel]
}

func (c *Client) handleMessage(msg clientMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch msg.Type {
	case "subscribe":
		for _, ch := range msg.Channels {
			c.channels[ch] = true
		}
	case "unsubscribe":
		for _, ch := range msg.Channels {
			delete(c.channels, ch)
		}
	default:
		c.Manager.log.Warn("unknown websocket message type", "type", msg.Type, "clientID", c.ID)
	}
}

// Writer pumps queued payloads to the connection and keeps it alive with
// pings. Runs as its own goroutine per client.
func (c *Client) Writer() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.Manager.log.Warn("failed to write message to client", "clientID", c.ID)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Reader consumes subscribe/unsubscribe messages until the connection
// drops, then unregisters the client.
func (c *Client) Reader() {
	defer func() {
		c.Manager.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.Manager.log.Warn("unexpected close error", "clientID", c.ID, "error", err)
			}
			break
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.Manager.log.Warn("failed to parse client message", "clientID", c.ID, "error", err)
			continue
		}
		c.handleMessage(msg)
	}
}
