package models

import (
	"sync"
	"time"

	"github.com/KirkDiggler/rajamantri/internal/catalog"
)

// GameState represents where a room is in its game lifecycle
type GameState string

const (
	// GameStateWaiting indicates the room is open for players to join
	GameStateWaiting GameState = "waiting"

	// GameStatePlaying indicates roles are assigned and the round is in progress
	GameStatePlaying GameState = "playing"

	// GameStateRoundEnd indicates the round has been resolved and the host may advance
	GameStateRoundEnd GameState = "round_end"

	// GameStateGameEnd indicates all rounds have been played
	GameStateGameEnd GameState = "game_end"
)

// Adjudication selects how a submitted guess is resolved
type Adjudication string

const (
	// AdjudicationImmediate resolves a guess as soon as it is submitted using the real roles
	AdjudicationImmediate Adjudication = "immediate"

	// AdjudicationDecisionMaker parks the guess until the decision maker rules on it
	AdjudicationDecisionMaker Adjudication = "decision_maker"
)

// Valid reports whether a is a known adjudication mode
func (a Adjudication) Valid() bool {
	return a == AdjudicationImmediate || a == AdjudicationDecisionMaker
}

// PendingGuess is a guess waiting for the decision maker
type PendingGuess struct {
	// GuesserID is the connection of the player who made the accusation
	GuesserID string

	// AccusedID is the connection of the accused player
	AccusedID string
}

// Room is one isolated game instance identified by a short code.
// All fields are guarded by the room lock; only the room engine mutates them.
type Room struct {
	// Code is the unique join code
	Code string

	// Capacity is the maximum number of seats (3-5)
	Capacity int

	// TotalRounds is the number of rounds in a game
	TotalRounds int

	// RoleSetSize is how many roles were dealt this game; zero outside a game.
	// It is the seated count when a game starts short of Capacity.
	RoleSetSize int

	// CurrentRound starts at 1 and is incremented when the host advances
	CurrentRound int

	// State is the current game state
	State GameState

	// Adjudication is how guesses are resolved in this room
	Adjudication Adjudication

	// Players in join order; the order drives host succession and seat assignment
	Players []*Player

	// PendingGuess is set while a guess awaits the decision maker
	PendingGuess *PendingGuess

	// Scores maps connection ID to that player's ledger entry
	Scores map[string]*ScoreRecord

	// CreatedAt is when the room was created
	CreatedAt time.Time

	// UpdatedAt is when the room last changed
	UpdatedAt time.Time

	mu     sync.Mutex
	closed bool
}

// Lock acquires the room's lock
func (r *Room) Lock() {
	r.mu.Lock()
}

// Unlock releases the room's lock
func (r *Room) Unlock() {
	r.mu.Unlock()
}

// Close marks the room as deleted (must be called with lock held).
// Intents that raced with the deletion see a closed room and are rejected.
func (r *Room) Close() {
	r.closed = true
}

// Closed reports whether the room has been deleted (must be called with lock held)
func (r *Room) Closed() bool {
	return r.closed
}

// FindPlayer returns the seated player with the given connection ID
func (r *Room) FindPlayer(connectionID string) *Player {
	for _, p := range r.Players {
		if p.ConnectionID == connectionID {
			return p
		}
	}
	return nil
}

// PlayerWithRole returns the player currently holding role, if any
func (r *Room) PlayerWithRole(role catalog.Role) *Player {
	for _, p := range r.Players {
		if p.Role == role {
			return p
		}
	}
	return nil
}

// Host returns the current host, or nil for an empty room
func (r *Room) Host() *Player {
	for _, p := range r.Players {
		if p.IsHost {
			return p
		}
	}
	return nil
}

// ConnectionIDs lists the seated connections in join order
func (r *Room) ConnectionIDs() []string {
	ids := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		ids = append(ids, p.ConnectionID)
	}
	return ids
}

// DealtCapacity is the role set in play: RoleSetSize during a game, Capacity otherwise
func (r *Room) DealtCapacity() int {
	if r.RoleSetSize > 0 {
		return r.RoleSetSize
	}
	return r.Capacity
}

// IsFull reports whether every seat is taken
func (r *Room) IsFull() bool {
	return len(r.Players) >= r.Capacity
}
