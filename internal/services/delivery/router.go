// Package delivery routes room notifications to the transport that owns each
// connection. Connection IDs carry their transport as a prefix, "ws:<id>" or
// "discord:<user id>", so one room can mix browser and Discord players.
package delivery

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rajamantri/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_transport.go github.com/KirkDiggler/rajamantri/internal/services/delivery Transport

// separator splits the transport prefix from the transport's own id
const separator = ":"

var (
	// ErrInvalidPrefix is returned when registering an empty or malformed prefix
	ErrInvalidPrefix = errors.New("transport prefix must be non-empty and contain no separator")

	// ErrDuplicatePrefix is returned when a prefix is registered twice
	ErrDuplicatePrefix = errors.New("transport prefix already registered")

	// ErrNilTransport is returned when registering a nil transport
	ErrNilTransport = errors.New("transport cannot be nil")
)

// Transport delivers one notification to the listed connections it owns.
// Deliver must not block on slow clients.
type Transport interface {
	Deliver(ctx context.Context, notification *models.Notification, connectionIDs []string) error
}

// Config holds configuration for the router
type Config struct {
	// Logger is optional
	Logger *zerolog.Logger
}

// Router implements game.Publisher by fanning notifications out per transport
type Router struct {
	mu         sync.RWMutex
	transports map[string]Transport
	log        zerolog.Logger
}

// New creates a router with no transports registered
func New(cfg *Config) *Router {
	log := zerolog.Nop()
	if cfg != nil && cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "delivery").Logger()
	}

	return &Router{
		transports: make(map[string]Transport),
		log:        log,
	}
}

// Register attaches a transport to a connection ID prefix
func (r *Router) Register(prefix string, transport Transport) error {
	if prefix == "" || strings.Contains(prefix, separator) {
		return ErrInvalidPrefix
	}
	if transport == nil {
		return ErrNilTransport
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transports[prefix]; exists {
		return ErrDuplicatePrefix
	}
	r.transports[prefix] = transport
	return nil
}

// Publish delivers notifications in order. Recipients are grouped by
// transport so a transport sees each notification once.
func (r *Router) Publish(ctx context.Context, notifications []*models.Notification) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range notifications {
		if n == nil {
			continue
		}

		var order []string
		groups := make(map[string][]string)
		for _, connectionID := range n.To {
			prefix, _, ok := SplitConnectionID(connectionID)
			if !ok {
				r.log.Warn().Str("connection", connectionID).Str("event", string(n.Event)).Msg("dropping notification for malformed connection id")
				continue
			}
			if _, seen := groups[prefix]; !seen {
				order = append(order, prefix)
			}
			groups[prefix] = append(groups[prefix], connectionID)
		}

		for _, prefix := range order {
			transport, ok := r.transports[prefix]
			if !ok {
				r.log.Warn().Str("transport", prefix).Str("event", string(n.Event)).Msg("no transport registered")
				continue
			}

			if err := transport.Deliver(ctx, n, groups[prefix]); err != nil {
				r.log.Error().
					Err(err).
					Str("transport", prefix).
					Str("room", n.RoomCode).
					Str("event", string(n.Event)).
					Msg("failed to deliver notification")
			}
		}
	}
}

// ConnectionID builds a connection ID owned by the prefixed transport
func ConnectionID(prefix, id string) string {
	return prefix + separator + id
}

// SplitConnectionID returns the transport prefix and the transport's own id
func SplitConnectionID(connectionID string) (prefix, id string, ok bool) {
	prefix, id, ok = strings.Cut(connectionID, separator)
	if !ok || prefix == "" || id == "" {
		return "", "", false
	}
	return prefix, id, true
}
