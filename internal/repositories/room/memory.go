package room

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/KirkDiggler/rajamantri/internal/common/clock"
	"github.com/KirkDiggler/rajamantri/internal/common/idgen"
	"github.com/KirkDiggler/rajamantri/internal/models"
)

const (
	// DefaultMaxRooms bounds the number of live rooms
	DefaultMaxRooms = 100

	// maxCodeAttempts bounds the retries when a generated code collides
	maxCodeAttempts = 100
)

var (
	// ErrRoomNotFound is returned when no live room has the code
	ErrRoomNotFound = errors.New("room not found")

	// ErrServerFull is returned when MaxRooms rooms are already live
	ErrServerFull = errors.New("server is full")

	// ErrLocationNotFound is returned when a connection is not seated anywhere
	ErrLocationNotFound = errors.New("player location not found")

	// ErrAlreadyRegistered is returned when a connection is already seated
	ErrAlreadyRegistered = errors.New("player already seated in a room")

	// ErrCodeSpaceExhausted is returned when no unused code could be generated
	ErrCodeSpaceExhausted = errors.New("could not allocate a unique room code")
)

// Config holds configuration for the in-memory registry
type Config struct {
	// IDGenerator produces room codes
	IDGenerator idgen.Generator

	// Clock stamps room creation
	Clock clock.Clock

	// MaxRooms overrides DefaultMaxRooms when positive
	MaxRooms int
}

// memoryRepository implements Repository with two maps behind one RWMutex
type memoryRepository struct {
	mu        sync.RWMutex
	rooms     map[string]*models.Room
	locations map[string]*models.PlayerLocation

	idGenerator idgen.Generator
	clock       clock.Clock
	maxRooms    int
}

// NewMemory creates an in-memory room registry
func NewMemory(cfg *Config) (*memoryRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.IDGenerator == nil {
		return nil, errors.New("id generator cannot be nil")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	maxRooms := cfg.MaxRooms
	if maxRooms <= 0 {
		maxRooms = DefaultMaxRooms
	}

	return &memoryRepository{
		rooms:       make(map[string]*models.Room),
		locations:   make(map[string]*models.PlayerLocation),
		idGenerator: cfg.IDGenerator,
		clock:       clk,
		maxRooms:    maxRooms,
	}, nil
}

// CreateRoom registers a new waiting room under a fresh code
func (r *memoryRepository) CreateRoom(ctx context.Context, input *CreateRoomInput) (*models.Room, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	adjudication := input.Adjudication
	if !adjudication.Valid() {
		adjudication = models.AdjudicationImmediate
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.rooms) >= r.maxRooms {
		return nil, ErrServerFull
	}

	code := ""
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		candidate := strings.ToUpper(r.idGenerator.NewRoomCode())
		if _, taken := r.rooms[candidate]; !taken && candidate != "" {
			code = candidate
			break
		}
	}
	if code == "" {
		return nil, fmt.Errorf("failed to create room: %w", ErrCodeSpaceExhausted)
	}

	now := r.clock.Now()
	room := &models.Room{
		Code:         code,
		Capacity:     input.Capacity,
		TotalRounds:  input.TotalRounds,
		CurrentRound: 1,
		State:        models.GameStateWaiting,
		Adjudication: adjudication,
		Players:      make([]*models.Player, 0, input.Capacity),
		Scores:       make(map[string]*models.ScoreRecord),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.rooms[code] = room

	return room, nil
}

// GetRoom returns the live room for a code
func (r *memoryRepository) GetRoom(ctx context.Context, input *GetRoomInput) (*models.Room, error) {
	if input == nil || input.Code == "" {
		return nil, ErrRoomNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[normalizeCode(input.Code)]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// DeleteRoom removes a room and the locations that still point at it
func (r *memoryRepository) DeleteRoom(ctx context.Context, input *DeleteRoomInput) error {
	if input == nil || input.Code == "" {
		return errors.New("input and room code cannot be empty")
	}

	code := normalizeCode(input.Code)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[code]; !ok {
		return ErrRoomNotFound
	}
	delete(r.rooms, code)

	for id, loc := range r.locations {
		if loc.RoomCode == code {
			delete(r.locations, id)
		}
	}
	return nil
}

// RegisterPlayerLocation seats a connection in a room
func (r *memoryRepository) RegisterPlayerLocation(ctx context.Context, input *RegisterPlayerLocationInput) error {
	if input == nil || input.ConnectionID == "" || input.RoomCode == "" {
		return errors.New("input, connection ID and room code cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.locations[input.ConnectionID]; ok {
		return ErrAlreadyRegistered
	}

	r.locations[input.ConnectionID] = &models.PlayerLocation{
		ConnectionID: input.ConnectionID,
		RoomCode:     normalizeCode(input.RoomCode),
		DisplayName:  input.DisplayName,
	}
	return nil
}

// UnregisterPlayerLocation removes a connection's seat; unknown connections are ignored
func (r *memoryRepository) UnregisterPlayerLocation(ctx context.Context, input *UnregisterPlayerLocationInput) error {
	if input == nil || input.ConnectionID == "" {
		return errors.New("input and connection ID cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.locations, input.ConnectionID)
	return nil
}

// GetPlayerLocation returns a copy of the connection's seat
func (r *memoryRepository) GetPlayerLocation(ctx context.Context, input *GetPlayerLocationInput) (*models.PlayerLocation, error) {
	if input == nil || input.ConnectionID == "" {
		return nil, ErrLocationNotFound
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	loc, ok := r.locations[input.ConnectionID]
	if !ok {
		return nil, ErrLocationNotFound
	}

	copied := *loc
	return &copied, nil
}

// GetStats counts rooms and seated connections
func (r *memoryRepository) GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &GetStatsOutput{
		Rooms:   len(r.rooms),
		Players: len(r.locations),
	}, nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
