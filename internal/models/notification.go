package models

import (
	"time"

	"github.com/KirkDiggler/rajamantri/internal/catalog"
)

// EventType names an outbound notification
type EventType string

const (
	EventRoomCreated     EventType = "room_created"
	EventRoomJoined      EventType = "room_joined"
	EventRoomLeft        EventType = "room_left"
	EventPlayerJoined    EventType = "player_joined"
	EventPlayerLeft      EventType = "player_left"
	EventRoleAssigned    EventType = "role_assigned"
	EventGameStarted     EventType = "game_started"
	EventRoleRevealed    EventType = "role_revealed"
	EventGuessPending    EventType = "guess_pending"
	EventGuessResult     EventType = "guess_result"
	EventDecisionResult  EventType = "decision_result"
	EventRoundVoided     EventType = "round_voided"
	EventNextRound       EventType = "next_round"
	EventGameEnded       EventType = "game_ended"
	EventGameAborted     EventType = "game_aborted"
	EventSettingsUpdated EventType = "settings_updated"
	EventPlayAgainReset  EventType = "play_again_reset"
	EventChatMessage     EventType = "chat_message"
	EventError           EventType = "error"
)

// Notification is an outbound event addressed to a resolved set of connections.
// Recipients are computed when the room transition commits so transports never
// need to read room state.
type Notification struct {
	// Event is the notification type
	Event EventType `json:"event"`

	// RoomCode is the room the event belongs to, empty for errors outside a room
	RoomCode string `json:"roomCode,omitempty"`

	// Private is set for unicast events (own role, errors, join acknowledgements)
	Private bool `json:"-"`

	// To lists the recipient connection IDs
	To []string `json:"-"`

	// Data is one of the payload types below
	Data any `json:"data"`
}

// RoomInfo acknowledges a create or join to the sender
type RoomInfo struct {
	RoomCode     string       `json:"roomCode"`
	Capacity     int          `json:"maxPlayers"`
	TotalRounds  int          `json:"totalRounds"`
	PlayerID     string       `json:"playerId"`
	PlayerName   string       `json:"playerName"`
	Adjudication Adjudication `json:"adjudication"`
}

// HostChange announces a new host after the previous one left
type HostChange struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

// MembershipUpdate is broadcast whenever a player joins or leaves
type MembershipUpdate struct {
	PlayerName  string         `json:"playerName"`
	PlayerCount int            `json:"playerCount"`
	Capacity    int            `json:"maxPlayers"`
	TotalRounds int            `json:"totalRounds"`
	Players     []PublicPlayer `json:"players"`
	NewHost     *HostChange    `json:"newHost,omitempty"`
	Message     string         `json:"message,omitempty"`
}

// RoleAssignment privately tells one player their role for the round
type RoleAssignment struct {
	Role         catalog.Role `json:"playerRole"`
	BaseScore    int          `json:"baseScore"`
	CurrentRound int          `json:"currentRound"`
	TotalRounds  int          `json:"totalRounds"`
}

// RoundInfo is broadcast at game start and at every new round
type RoundInfo struct {
	CurrentRound  int            `json:"currentRound"`
	TotalRounds   int            `json:"totalRounds"`
	Players       []PublicPlayer `json:"players"`
	DecisionMaker catalog.Role   `json:"decisionMaker"`
	Message       string         `json:"message"`
}

// RoleReveal is broadcast when a player shows their role
type RoleReveal struct {
	PlayerID   string         `json:"playerId"`
	PlayerName string         `json:"playerName"`
	Role       catalog.Role   `json:"role"`
	Players    []PublicPlayer `json:"players"`
}

// GuessPendingInfo announces a guess that awaits the decision maker
type GuessPendingInfo struct {
	GuesserName   string       `json:"mantriName"`
	AccusedID     string       `json:"guessedChorId"`
	AccusedName   string       `json:"guessedChorName"`
	DecisionMaker catalog.Role `json:"decisionMaker"`
	Message       string       `json:"message"`
}

// GuessOutcome is broadcast when a guess is resolved on either path
type GuessOutcome struct {
	AccuserID        string         `json:"mantriId"`
	AccuserName      string         `json:"mantriName"`
	AccusedID        string         `json:"guessedChorId"`
	AccusedName      string         `json:"guessedChorName"`
	ActualHolderID   string         `json:"actualChorId"`
	ActualHolderName string         `json:"actualChorName"`
	WasCorrect       bool           `json:"wasCorrect"`
	DecidedBy        string         `json:"decidedBy,omitempty"`
	Decision         *bool          `json:"decision,omitempty"`
	PointExchange    bool           `json:"pointExchange"`
	Message          string         `json:"message"`
	RevealedRoles    []PublicPlayer `json:"revealedRoles"`
	Scores           []Standing     `json:"scores"`
}

// RoundVoided is broadcast when a round cannot be finished because a key role left
type RoundVoided struct {
	Round         int            `json:"round"`
	Message       string         `json:"message"`
	RevealedRoles []PublicPlayer `json:"revealedRoles"`
}

// GameEnd is broadcast once the final round has been advanced past
type GameEnd struct {
	FinalScores []Standing `json:"finalScores"`
	Winner      *Standing  `json:"winner"`
	Message     string     `json:"message"`
}

// SettingsUpdate is broadcast after the host changes room settings
type SettingsUpdate struct {
	Capacity           int    `json:"maxPlayers"`
	TotalRounds        int    `json:"totalRounds"`
	CapacityApplied    bool   `json:"maxPlayersApplied"`
	TotalRoundsApplied bool   `json:"totalRoundsApplied"`
	Message            string `json:"message"`
}

// ResetNotice is broadcast when the room returns to waiting
type ResetNotice struct {
	RoomCode    string         `json:"roomCode"`
	Capacity    int            `json:"maxPlayers"`
	TotalRounds int            `json:"totalRounds"`
	Players     []PublicPlayer `json:"players"`
	Message     string         `json:"message"`
}

// ChatMessage is a relayed chat line
type ChatMessage struct {
	SenderID   string    `json:"senderId"`
	SenderName string    `json:"senderName"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
}

// ErrorInfo is unicast to a sender whose intent was rejected
type ErrorInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}
