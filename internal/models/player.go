package models

import (
	"time"

	"github.com/KirkDiggler/rajamantri/internal/catalog"
)

// Player represents a seated participant in a room
type Player struct {
	// ConnectionID is the ephemeral identifier of the player's connection
	ConnectionID string

	// DisplayName is the name shown to other players
	DisplayName string

	// IsHost marks the single player allowed to run the room
	IsHost bool

	// Role is the secret role for the current round (RoleNone while waiting)
	Role catalog.Role

	// RoleRevealed is true once the player (or the round result) has shown the role
	RoleRevealed bool

	// JoinedAt is when the player took the seat
	JoinedAt time.Time
}

// PublicPlayer is the view of a player that is safe to broadcast
type PublicPlayer struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	IsHost       bool         `json:"isHost"`
	RoleRevealed bool         `json:"roleRevealed"`
	Role         catalog.Role `json:"role,omitempty"`
}

// Public hides the role unless it has been revealed
func (p *Player) Public() PublicPlayer {
	view := PublicPlayer{
		ID:           p.ConnectionID,
		Name:         p.DisplayName,
		IsHost:       p.IsHost,
		RoleRevealed: p.RoleRevealed,
	}
	if p.RoleRevealed {
		view.Role = p.Role
	}
	return view
}

// PlayerLocation is the reverse index entry from a connection to its room
type PlayerLocation struct {
	ConnectionID string
	RoomCode     string
	DisplayName  string
}
