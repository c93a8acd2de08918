package results

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rajamantri/internal/models"
)

const (
	// Key prefixes for Redis
	resultKeyPrefix      = "result:"
	roomResultsKeyPrefix = "room_results:"

	// DefaultListLimit is used when a list request does not set a limit
	DefaultListLimit = 20

	// DefaultRetention is how long a result is kept when no retention is configured
	DefaultRetention = 7 * 24 * time.Hour
)

// ErrResultNotFound is returned when a result is not found
var ErrResultNotFound = errors.New("game result not found")

// Config holds configuration for the Redis results repository
type Config struct {
	// Redis client
	RedisClient *redis.Client

	// Retention is the expiry set on stored results; zero means DefaultRetention
	Retention time.Duration
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client    *redis.Client
	retention time.Duration
}

// NewRedis creates a new Redis-backed results repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	retention := cfg.Retention
	if retention <= 0 {
		retention = DefaultRetention
	}

	return &redisRepository{
		client:    cfg.RedisClient,
		retention: retention,
	}, nil
}

// SaveResult stores the result and indexes it under its room code
func (r *redisRepository) SaveResult(ctx context.Context, input *SaveResultInput) error {
	if input == nil || input.Result == nil {
		return errors.New("input and result cannot be nil")
	}

	result := input.Result
	if result.ID == "" {
		return errors.New("result ID cannot be empty")
	}
	if result.RoomCode == "" {
		return errors.New("result room code cannot be empty")
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal game result: %w", err)
	}

	pipe := r.client.TxPipeline()

	resultKey := resultKeyPrefix + result.ID
	pipe.Set(ctx, resultKey, resultJSON, r.retention)

	// Room codes are reused once a room is deleted, so the index is scored by end time
	roomKey := roomResultsKeyPrefix + strings.ToUpper(result.RoomCode)
	pipe.ZAdd(ctx, roomKey, redis.Z{
		Score:  float64(result.EndedAt.UnixNano()),
		Member: result.ID,
	})
	pipe.Expire(ctx, roomKey, r.retention)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save game result: %w", err)
	}

	return nil
}

// GetResult retrieves a result by ID
func (r *redisRepository) GetResult(ctx context.Context, input *GetResultInput) (*models.GameResult, error) {
	if input == nil || input.ResultID == "" {
		return nil, errors.New("input and result ID cannot be empty")
	}

	resultJSON, err := r.client.Get(ctx, resultKeyPrefix+input.ResultID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrResultNotFound
		}
		return nil, fmt.Errorf("failed to get game result: %w", err)
	}

	var result models.GameResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game result: %w", err)
	}

	return &result, nil
}

// ListResultsForRoom lists results for a room code, newest first
func (r *redisRepository) ListResultsForRoom(ctx context.Context, input *ListResultsForRoomInput) (*ListResultsForRoomOutput, error) {
	if input == nil || input.RoomCode == "" {
		return nil, errors.New("input and room code cannot be empty")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	roomKey := roomResultsKeyPrefix + strings.ToUpper(input.RoomCode)
	resultIDs, err := r.client.ZRevRange(ctx, roomKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get result IDs for room: %w", err)
	}

	if len(resultIDs) == 0 {
		return &ListResultsForRoomOutput{
			Results: []*models.GameResult{},
		}, nil
	}

	// Fetch all results in one round trip, keeping the index order
	pipe := r.client.Pipeline()
	commands := make([]*redis.StringCmd, len(resultIDs))
	for i, id := range resultIDs {
		commands[i] = pipe.Get(ctx, resultKeyPrefix+id)
	}

	// a missing member surfaces as redis.Nil from Exec; handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get game results: %w", err)
	}

	results := make([]*models.GameResult, 0, len(resultIDs))
	for i, cmd := range commands {
		resultJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Result expired before its index entry
				continue
			}
			return nil, fmt.Errorf("failed to get game result %s: %w", resultIDs[i], err)
		}

		var result models.GameResult
		if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game result %s: %w", resultIDs[i], err)
		}
		results = append(results, &result)
	}

	return &ListResultsForRoomOutput{
		Results: results,
	}, nil
}
