// Package ws is the browser session gateway. Each websocket connection is one
// player; inbound JSON intents are decoded and sent to the game service, and
// room notifications come back through Deliver.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/KirkDiggler/rajamantri/internal/common/idgen"
	"github.com/KirkDiggler/rajamantri/internal/models"
	"github.com/KirkDiggler/rajamantri/internal/services/delivery"
	"github.com/KirkDiggler/rajamantri/internal/services/game"
)

// Prefix marks connection IDs owned by this gateway
const Prefix = "ws"

const (
	// DefaultSendBuffer is how many outbound frames a client may fall behind
	// before it is dropped
	DefaultSendBuffer = 64

	// DefaultRateLimit is the sustained inbound intents per second
	DefaultRateLimit = 5

	// DefaultRateBurst is the inbound burst allowance
	DefaultRateBurst = 10

	// DefaultPongWait is how long a silent connection is kept open
	DefaultPongWait = time.Minute

	writeWait      = 10 * time.Second
	maxMessageSize = 4096

	// eventConnected tells a fresh client its connection ID
	eventConnected = "connected"
)

var (
	// ErrNilGameService is returned when the config has no game service
	ErrNilGameService = errors.New("game service cannot be nil")

	// ErrNilIDGenerator is returned when the config has no id generator
	ErrNilIDGenerator = errors.New("id generator cannot be nil")
)

// Config holds configuration for the gateway
type Config struct {
	GameService game.Service
	IDGenerator idgen.Generator

	// AllowedOrigins restricts the Origin header; empty allows any origin
	AllowedOrigins []string

	// RateLimit and RateBurst bound inbound intents per connection
	RateLimit float64
	RateBurst int

	// SendBuffer overrides DefaultSendBuffer when positive
	SendBuffer int

	// PongWait overrides DefaultPongWait when positive
	PongWait time.Duration

	// Logger is optional
	Logger *zerolog.Logger
}

// Gateway upgrades HTTP requests to websocket sessions and implements
// delivery.Transport for them
type Gateway struct {
	gameService game.Service
	idGenerator idgen.Generator
	upgrader    websocket.Upgrader

	rateLimit  rate.Limit
	rateBurst  int
	sendBuffer int
	pongWait   time.Duration
	log        zerolog.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

// New creates a websocket gateway
func New(cfg *Config) (*Gateway, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, ErrNilGameService
	}

	if cfg.IDGenerator == nil {
		return nil, ErrNilIDGenerator
	}

	g := &Gateway{
		gameService: cfg.GameService,
		idGenerator: cfg.IDGenerator,
		rateLimit:   rate.Limit(DefaultRateLimit),
		rateBurst:   DefaultRateBurst,
		sendBuffer:  DefaultSendBuffer,
		pongWait:    DefaultPongWait,
		log:         zerolog.Nop(),
		clients:     make(map[string]*client),
	}

	if cfg.RateLimit > 0 {
		g.rateLimit = rate.Limit(cfg.RateLimit)
	}
	if cfg.RateBurst > 0 {
		g.rateBurst = cfg.RateBurst
	}
	if cfg.SendBuffer > 0 {
		g.sendBuffer = cfg.SendBuffer
	}
	if cfg.PongWait > 0 {
		g.pongWait = cfg.PongWait
	}
	if cfg.Logger != nil {
		g.log = cfg.Logger.With().Str("component", "ws").Logger()
	}

	origins := slices.Clone(cfg.AllowedOrigins)
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(origins) == 0 {
				return true
			}
			return slices.Contains(origins, r.Header.Get("Origin"))
		},
	}

	return g, nil
}

// envelope is the outbound frame
type envelope struct {
	Event    string `json:"event"`
	RoomCode string `json:"roomCode,omitempty"`
	Data     any    `json:"data,omitempty"`
}

type connectedInfo struct {
	ConnectionID string `json:"connectionId"`
}

// Connections returns the number of open sessions
func (g *Gateway) Connections() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.clients)
}

// ServeHTTP upgrades the request and runs the session until the socket closes.
// Closing the socket leaves whatever room the player was in.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Debug().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &client{
		id:      delivery.ConnectionID(Prefix, g.idGenerator.NewID()),
		conn:    conn,
		send:    make(chan []byte, g.sendBuffer),
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(g.rateLimit, g.rateBurst),
	}

	g.mu.Lock()
	g.clients[c.id] = c
	g.mu.Unlock()

	g.log.Debug().Str("connection", c.id).Msg("client connected")

	go g.writePump(c)

	if data, err := json.Marshal(envelope{Event: eventConnected, Data: connectedInfo{ConnectionID: c.id}}); err == nil {
		c.enqueue(data)
	}

	g.readPump(c)
	g.disconnect(c)
}

func (g *Gateway) readPump(c *client) {
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(g.pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(g.pongWait))
	})

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.log.Debug().Err(err).Str("connection", c.id).Msg("read failed")
			}
			return
		}

		select {
		case <-c.done:
			return
		default:
		}

		ctx := context.Background()
		if !c.limiter.Allow() {
			g.gameService.ReportError(ctx, &game.ReportErrorInput{ConnectionID: c.id, Err: game.ErrRateLimited})
			continue
		}

		if err := g.handleMessage(ctx, c.id, payload); err != nil {
			g.gameService.ReportError(ctx, &game.ReportErrorInput{ConnectionID: c.id, Err: err})
		}
	}
}

func (g *Gateway) writePump(c *client) {
	ticker := time.NewTicker(g.pongWait * 9 / 10)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case <-c.done:
			_ = c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case data := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.close()
				return
			}
		}
	}
}

func (g *Gateway) disconnect(c *client) {
	c.close()

	g.mu.Lock()
	delete(g.clients, c.id)
	g.mu.Unlock()

	_, err := g.gameService.LeaveRoom(context.Background(), &game.LeaveRoomInput{ConnectionID: c.id})
	if err != nil && !errors.Is(err, game.ErrNotInRoom) {
		g.log.Warn().Err(err).Str("connection", c.id).Msg("failed to leave room on disconnect")
	}

	g.log.Debug().Str("connection", c.id).Msg("client disconnected")
}

// Deliver queues the notification on every listed connection. A client whose
// buffer is full is dropped rather than waited on.
func (g *Gateway) Deliver(ctx context.Context, notification *models.Notification, connectionIDs []string) error {
	data, err := json.Marshal(envelope{
		Event:    string(notification.Event),
		RoomCode: notification.RoomCode,
		Data:     notification.Data,
	})
	if err != nil {
		return err
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	for _, id := range connectionIDs {
		c, ok := g.clients[id]
		if !ok {
			continue
		}
		if !c.enqueue(data) {
			g.log.Warn().Str("connection", id).Str("event", string(notification.Event)).Msg("dropping slow client")
			c.close()
		}
	}
	return nil
}

// client is one websocket session
type client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	once    sync.Once
	limiter *rate.Limiter
}

// enqueue never blocks; it reports false when the buffer is full or the
// client is closing
func (c *client) enqueue(data []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
	})
}
