package game

import (
	"context"

	"github.com/KirkDiggler/rajamantri/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rajamantri/internal/services/game Service

// Service defines the interface for room and game operations.
// Every intent is identified by the sender's connection ID.
type Service interface {
	// CreateRoom registers a new room and seats the sender as host
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error)

	// JoinRoom seats the sender in an existing waiting room
	JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error)

	// LeaveRoom removes the sender from their room; disconnects use the same path
	LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error)

	// StartGame deals the first round
	StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error)

	// RevealRole shows the sender's role to the room
	RevealRole(ctx context.Context, input *RevealRoleInput) (*RevealRoleOutput, error)

	// SubmitGuess records the mantri's accusation
	SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error)

	// ConfirmDecision lets the decision maker rule on a pending guess
	ConfirmDecision(ctx context.Context, input *ConfirmDecisionInput) (*ConfirmDecisionOutput, error)

	// AdvanceRound moves to the next round or ends the game
	AdvanceRound(ctx context.Context, input *AdvanceRoundInput) (*AdvanceRoundOutput, error)

	// UpdateRoomSettings changes capacity and round count while waiting
	UpdateRoomSettings(ctx context.Context, input *UpdateRoomSettingsInput) (*UpdateRoomSettingsOutput, error)

	// PlayAgain resets a finished room to waiting
	PlayAgain(ctx context.Context, input *PlayAgainInput) (*PlayAgainOutput, error)

	// SendChat relays a chat line to the sender's room
	SendChat(ctx context.Context, input *SendChatInput) (*SendChatOutput, error)

	// ReportError sends a rejected intent's error back to the sender
	ReportError(ctx context.Context, input *ReportErrorInput)

	// GetRoom returns the public view of a room
	GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error)

	// GetStats returns live room and player counts
	GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error)

	// GetRoomResults lists finished games recorded under a room code
	GetRoomResults(ctx context.Context, input *GetRoomResultsInput) (*GetRoomResultsOutput, error)
}

// Publisher delivers notifications to their recipients.
// Implementations must not block on slow recipients.
type Publisher interface {
	Publish(ctx context.Context, notifications []*models.Notification)
}
