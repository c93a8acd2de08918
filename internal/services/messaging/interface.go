package messaging

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rajamantri/internal/services/messaging Service

// Service is the interface for the messaging service
type Service interface {
	// GetJoinRoomMessage returns a greeting for a player taking a seat
	GetJoinRoomMessage(ctx context.Context, input *GetJoinRoomMessageInput) (*GetJoinRoomMessageOutput, error)

	// GetHostChangeMessage announces a new host
	GetHostChangeMessage(ctx context.Context, input *GetHostChangeMessageInput) (*GetHostChangeMessageOutput, error)

	// GetRoundStartMessage returns the banner for a new round
	GetRoundStartMessage(ctx context.Context, input *GetRoundStartMessageInput) (*GetRoundStartMessageOutput, error)

	// GetGuessOutcomeMessage describes how a guess was resolved
	GetGuessOutcomeMessage(ctx context.Context, input *GetGuessOutcomeMessageInput) (*GetGuessOutcomeMessageOutput, error)

	// GetGameEndMessage congratulates the winner
	GetGameEndMessage(ctx context.Context, input *GetGameEndMessageInput) (*GetGameEndMessageOutput, error)

	// GetErrorMessage returns a user-friendly error message
	GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error)
}
