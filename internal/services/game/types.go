package game

import (
	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rajamantri/internal/catalog"
	"github.com/KirkDiggler/rajamantri/internal/common/clock"
	"github.com/KirkDiggler/rajamantri/internal/common/idgen"
	"github.com/KirkDiggler/rajamantri/internal/models"
	resultsRepo "github.com/KirkDiggler/rajamantri/internal/repositories/results"
	roomRepo "github.com/KirkDiggler/rajamantri/internal/repositories/room"
	"github.com/KirkDiggler/rajamantri/internal/services/messaging"
	"github.com/KirkDiggler/rajamantri/internal/shuffle"
)

const (
	// MinTotalRounds is the fewest rounds a game can have
	MinTotalRounds = 1

	// MaxTotalRounds is the most rounds a game can have
	MaxTotalRounds = 15

	// MaxDisplayNameLength is measured in characters after trimming
	MaxDisplayNameLength = 20

	// MaxChatLength is measured in characters after trimming
	MaxChatLength = 200
)

// Config holds configuration for the game service
type Config struct {
	// Repository dependencies
	RoomRepo    roomRepo.Repository
	ResultsRepo resultsRepo.Repository // optional, finished games are not recorded when nil

	// Service dependencies
	Publisher   Publisher
	Messaging   messaging.Service
	Shuffler    shuffle.Source
	Clock       clock.Clock
	IDGenerator idgen.Generator

	// DefaultAdjudication applies when a create request does not choose one
	DefaultAdjudication models.Adjudication

	// Logger is optional
	Logger *zerolog.Logger
}

// CreateRoomInput is the input for CreateRoom
type CreateRoomInput struct {
	ConnectionID string
	DisplayName  string
	Capacity     int
	TotalRounds  int
	Adjudication models.Adjudication
}

// CreateRoomOutput is the output for CreateRoom
type CreateRoomOutput struct {
	RoomCode string
	Room     *RoomSnapshot
}

// JoinRoomInput is the input for JoinRoom
type JoinRoomInput struct {
	ConnectionID string
	RoomCode     string
	DisplayName  string
}

// JoinRoomOutput is the output for JoinRoom
type JoinRoomOutput struct {
	RoomCode string
	Room     *RoomSnapshot
}

// LeaveRoomInput is the input for LeaveRoom
type LeaveRoomInput struct {
	ConnectionID string
}

// LeaveRoomOutput is the output for LeaveRoom
type LeaveRoomOutput struct {
	RoomCode    string
	RoomDeleted bool
	NewHostID   string
	GameAborted bool
	RoundVoided bool
}

// StartGameInput is the input for StartGame
type StartGameInput struct {
	ConnectionID string
}

// StartGameOutput is the output for StartGame
type StartGameOutput struct {
	RoomCode string
	Capacity int
	// RoleSetSize is the number of roles dealt, at most Capacity
	RoleSetSize int
	Round       int
}

// RevealRoleInput is the input for RevealRole
type RevealRoleInput struct {
	ConnectionID string
}

// RevealRoleOutput is the output for RevealRole
type RevealRoleOutput struct {
	Role catalog.Role
}

// SubmitGuessInput is the input for SubmitGuess
type SubmitGuessInput struct {
	ConnectionID string
	TargetID     string
}

// SubmitGuessOutput is the output for SubmitGuess
type SubmitGuessOutput struct {
	// Pending is true when the guess waits for the decision maker
	Pending bool

	// Correct is only meaningful when Pending is false
	Correct bool
}

// ConfirmDecisionInput is the input for ConfirmDecision
type ConfirmDecisionInput struct {
	ConnectionID string
	IsCorrect    bool
}

// ConfirmDecisionOutput is the output for ConfirmDecision
type ConfirmDecisionOutput struct {
	// MatchedTruth reports whether the ruling agreed with the real roles
	MatchedTruth bool
}

// AdvanceRoundInput is the input for AdvanceRound
type AdvanceRoundInput struct {
	ConnectionID string
}

// AdvanceRoundOutput is the output for AdvanceRound
type AdvanceRoundOutput struct {
	Round    int
	GameOver bool
	Result   *models.GameResult
}

// UpdateRoomSettingsInput is the input for UpdateRoomSettings.
// Nil fields are left unchanged.
type UpdateRoomSettingsInput struct {
	ConnectionID string
	Capacity     *int
	TotalRounds  *int
}

// UpdateRoomSettingsOutput is the output for UpdateRoomSettings
type UpdateRoomSettingsOutput struct {
	Capacity           int
	TotalRounds        int
	CapacityApplied    bool
	TotalRoundsApplied bool
}

// PlayAgainInput is the input for PlayAgain
type PlayAgainInput struct {
	ConnectionID string
}

// PlayAgainOutput is the output for PlayAgain
type PlayAgainOutput struct {
	RoomCode string
}

// SendChatInput is the input for SendChat
type SendChatInput struct {
	ConnectionID string
	Message      string
}

// SendChatOutput is the output for SendChat
type SendChatOutput struct {
	// Message is the relayed, escaped text
	Message string
}

// ReportErrorInput is the input for ReportError
type ReportErrorInput struct {
	ConnectionID string
	Err          error
}

// GetRoomInput is the input for GetRoom
type GetRoomInput struct {
	RoomCode string
}

// GetRoomOutput is the output for GetRoom
type GetRoomOutput struct {
	Room *RoomSnapshot
}

// GetStatsInput is the input for GetStats
type GetStatsInput struct {
}

// GetStatsOutput is the output for GetStats
type GetStatsOutput struct {
	Rooms   int
	Players int
}

// GetRoomResultsInput is the input for GetRoomResults
type GetRoomResultsInput struct {
	RoomCode string
	Limit    int
}

// GetRoomResultsOutput is the output for GetRoomResults
type GetRoomResultsOutput struct {
	Results []*models.GameResult
}

// RoomSnapshot is a copy of a room's public state taken under its lock
type RoomSnapshot struct {
	Code         string                `json:"roomCode"`
	Capacity     int                   `json:"maxPlayers"`
	TotalRounds  int                   `json:"totalRounds"`
	CurrentRound int                   `json:"currentRound"`
	State        models.GameState      `json:"gameState"`
	Adjudication models.Adjudication   `json:"adjudication"`
	Players      []models.PublicPlayer `json:"players"`
	Scores       []models.Standing     `json:"scores"`
}
