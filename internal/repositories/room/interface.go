package room

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/rajamantri/internal/repositories/room Repository

import (
	"context"

	"github.com/KirkDiggler/rajamantri/internal/models"
)

// Repository is the registry of live rooms and the connection location index.
// It only guards its own maps; room contents are protected by the room lock.
type Repository interface {
	// CreateRoom allocates a unique code and registers a new waiting room
	CreateRoom(ctx context.Context, input *CreateRoomInput) (*models.Room, error)

	// GetRoom looks a room up by code, ignoring case
	GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error)

	// DeleteRoom removes a room and any locations still pointing at it
	DeleteRoom(ctx context.Context, input *DeleteRoomInput) error

	// RegisterPlayerLocation records which room a connection is seated in
	RegisterPlayerLocation(ctx context.Context, input *RegisterPlayerLocationInput) error

	// UnregisterPlayerLocation forgets a connection's seat
	UnregisterPlayerLocation(ctx context.Context, input *UnregisterPlayerLocationInput) error

	// GetPlayerLocation returns the seat of a connection
	GetPlayerLocation(ctx context.Context, input *GetPlayerLocationInput) (*models.PlayerLocation, error)

	// GetStats counts live rooms and seated connections
	GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error)
}
