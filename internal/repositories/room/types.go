package room

import "github.com/KirkDiggler/rajamantri/internal/models"

// CreateRoomInput contains the settings for a new room
type CreateRoomInput struct {
	Capacity     int
	TotalRounds  int
	Adjudication models.Adjudication
}

type GetRoomInput struct {
	Code string
}

type DeleteRoomInput struct {
	Code string
}

type RegisterPlayerLocationInput struct {
	ConnectionID string
	RoomCode     string
	DisplayName  string
}

type UnregisterPlayerLocationInput struct {
	ConnectionID string
}

type GetPlayerLocationInput struct {
	ConnectionID string
}

type GetStatsInput struct {
}

// GetStatsOutput is the registry summary reported on the health endpoint
type GetStatsOutput struct {
	Rooms   int
	Players int
}
