// Package api is the HTTP surface: health and info endpoints, the websocket
// upgrade route, room lookups and QR join codes.
package api

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"

	"github.com/KirkDiggler/rajamantri/internal/catalog"
	"github.com/KirkDiggler/rajamantri/internal/common/clock"
	"github.com/KirkDiggler/rajamantri/internal/services/game"
)

const (
	// GameName is reported by /health and /info
	GameName = "Raja Mantri Chor Sipahi"

	// DefaultVersion is reported by /info when none is configured
	DefaultVersion = "1.0.0"

	// qrSize is the edge length of generated QR codes in pixels
	qrSize = 256
)

var (
	// ErrNilGameService is returned when the config has no game service
	ErrNilGameService = errors.New("game service cannot be nil")

	// ErrNilWebsocket is returned when the config has no websocket handler
	ErrNilWebsocket = errors.New("websocket handler cannot be nil")
)

// Config holds configuration for the HTTP server
type Config struct {
	GameService game.Service

	// Websocket serves GET /ws
	Websocket http.Handler

	// AllowedOrigins feeds CORS; empty allows any origin
	AllowedOrigins []string

	// PublicURL is the base of the join links encoded in QR codes
	PublicURL string

	// Version overrides DefaultVersion
	Version string

	// Clock is optional
	Clock clock.Clock

	// Logger is optional
	Logger *zerolog.Logger
}

// Server wraps the gin engine with the game service it reports on
type Server struct {
	engine      *gin.Engine
	gameService game.Service
	publicURL   string
	version     string
	clock       clock.Clock
	startedAt   time.Time
	log         zerolog.Logger
}

// New creates the HTTP server and registers its routes
func New(cfg *Config) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.GameService == nil {
		return nil, ErrNilGameService
	}

	if cfg.Websocket == nil {
		return nil, ErrNilWebsocket
	}

	s := &Server{
		gameService: cfg.GameService,
		publicURL:   strings.TrimRight(cfg.PublicURL, "/"),
		version:     cfg.Version,
		clock:       cfg.Clock,
		log:         zerolog.Nop(),
	}
	if s.version == "" {
		s.version = DefaultVersion
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	if cfg.Logger != nil {
		s.log = cfg.Logger.With().Str("component", "api").Logger()
	}
	s.startedAt = s.clock.Now()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{
			"Content-Type",
			"Upgrade",
			"Connection",
			"Sec-WebSocket-Key",
			"Sec-WebSocket-Version",
			"Sec-WebSocket-Extensions",
			"Sec-WebSocket-Protocol",
		},
		MaxAge: 12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", s.health)
	r.GET("/info", s.info)
	r.GET("/ws", gin.WrapH(cfg.Websocket))

	rooms := r.Group("/rooms/:code")
	rooms.GET("", s.getRoom)
	rooms.GET("/qr", s.getRoomQR)
	rooms.GET("/results", s.getRoomResults)

	s.engine = r
	return s, nil
}

// ServeHTTP lets the server be passed straight to http.Server
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) health(c *gin.Context) {
	stats, err := s.gameService.GetStats(c.Request.Context(), &game.GetStatsInput{})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"message":       GameName + " server is running",
		"activeRooms":   stats.Rooms,
		"activePlayers": stats.Players,
		"timestamp":     s.clock.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) info(c *gin.Context) {
	stats, err := s.gameService.GetStats(c.Request.Context(), &game.GetStatsInput{})
	if err != nil {
		s.writeError(c, err)
		return
	}

	roles := make(map[string][]catalog.Role)
	for _, capacity := range catalog.Capacities() {
		set, err := catalog.RolesFor(capacity)
		if err != nil {
			continue
		}
		roles[strconv.Itoa(capacity)] = set
	}

	c.JSON(http.StatusOK, gin.H{
		"game":             GameName,
		"version":          s.version,
		"activeRooms":      stats.Rooms,
		"activePlayers":    stats.Players,
		"supportedPlayers": catalog.Capacities(),
		"roles":            roles,
		"minRounds":        game.MinTotalRounds,
		"maxRounds":        game.MaxTotalRounds,
		"uptimeSeconds":    int(s.clock.Now().Sub(s.startedAt).Seconds()),
	})
}

func (s *Server) getRoom(c *gin.Context) {
	output, err := s.gameService.GetRoom(c.Request.Context(), &game.GetRoomInput{
		RoomCode: roomCode(c),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, output.Room)
}

// getRoomQR encodes the room's join link as a PNG
func (s *Server) getRoomQR(c *gin.Context) {
	output, err := s.gameService.GetRoom(c.Request.Context(), &game.GetRoomInput{
		RoomCode: roomCode(c),
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	png, err := qrcode.Encode(s.JoinURL(output.Room.Code), qrcode.Medium, qrSize)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

func (s *Server) getRoomResults(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(c, game.ErrBadRequest)
			return
		}
		limit = n
	}

	output, err := s.gameService.GetRoomResults(c.Request.Context(), &game.GetRoomResultsInput{
		RoomCode: roomCode(c),
		Limit:    limit,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"roomCode": roomCode(c),
		"results":  output.Results,
	})
}

// JoinURL is the link a QR code points at
func (s *Server) JoinURL(code string) string {
	base := s.publicURL
	if base == "" {
		base = "http://localhost:3001"
	}
	return base + "/?room=" + url.QueryEscape(code)
}

func (s *Server) writeError(c *gin.Context, err error) {
	kind := game.KindOf(err)
	if kind == game.KindInternal {
		s.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}

	c.AbortWithStatusJSON(statusFor(kind), gin.H{
		"kind":    kind,
		"message": game.PublicMessage(err),
	})
}

func statusFor(kind game.ErrorKind) int {
	switch kind {
	case game.KindRoomNotFound:
		return http.StatusNotFound
	case game.KindBadRequest, game.KindInvalidSettings:
		return http.StatusBadRequest
	case game.KindRateLimited:
		return http.StatusTooManyRequests
	case game.KindServerFull:
		return http.StatusServiceUnavailable
	case game.KindInternal:
		return http.StatusInternalServerError
	}
	return http.StatusConflict
}

func roomCode(c *gin.Context) string {
	return strings.ToUpper(strings.TrimSpace(c.Param("code")))
}
