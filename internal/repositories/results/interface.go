package results

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/rajamantri/internal/repositories/results Repository

import (
	"context"

	"github.com/KirkDiggler/rajamantri/internal/models"
)

// Repository defines the interface for the finished game ledger
type Repository interface {
	// SaveResult records a finished game
	SaveResult(ctx context.Context, input *SaveResultInput) error

	// GetResult retrieves a single result by ID
	GetResult(ctx context.Context, input *GetResultInput) (*models.GameResult, error)

	// ListResultsForRoom lists the results recorded under a room code, newest first
	ListResultsForRoom(ctx context.Context, input *ListResultsForRoomInput) (*ListResultsForRoomOutput, error)
}
