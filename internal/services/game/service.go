package game

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/KirkDiggler/rajamantri/internal/catalog"
	"github.com/KirkDiggler/rajamantri/internal/models"
	resultsRepo "github.com/KirkDiggler/rajamantri/internal/repositories/results"
	roomRepo "github.com/KirkDiggler/rajamantri/internal/repositories/room"
)

// service implements the Service interface
type service struct {
	roomRepo            roomRepo.Repository
	resultsRepo         resultsRepo.Repository
	publisher           Publisher
	engine              *Engine
	defaultAdjudication models.Adjudication
	log                 zerolog.Logger
}

// New creates a new game service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RoomRepo == nil {
		return nil, ErrNilRoomRepo
	}

	if cfg.Publisher == nil {
		return nil, ErrNilPublisher
	}

	engine, err := NewEngine(&EngineConfig{
		Shuffler:    cfg.Shuffler,
		Clock:       cfg.Clock,
		IDGenerator: cfg.IDGenerator,
		Messaging:   cfg.Messaging,
	})
	if err != nil {
		return nil, err
	}

	adjudication := cfg.DefaultAdjudication
	if !adjudication.Valid() {
		adjudication = models.AdjudicationImmediate
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = cfg.Logger.With().Str("component", "game").Logger()
	}

	return &service{
		roomRepo:            cfg.RoomRepo,
		resultsRepo:         cfg.ResultsRepo,
		publisher:           cfg.Publisher,
		engine:              engine,
		defaultAdjudication: adjudication,
		log:                 log,
	}, nil
}

// CreateRoom registers a new room and seats the sender as host
func (s *service) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	if input == nil || input.ConnectionID == "" {
		return nil, ErrBadRequest
	}

	name, err := normalizeName(input.DisplayName)
	if err != nil {
		return nil, err
	}

	if !catalog.ValidCapacity(input.Capacity) {
		return nil, ErrInvalidSettings
	}

	if input.TotalRounds < MinTotalRounds || input.TotalRounds > MaxTotalRounds {
		return nil, ErrInvalidSettings
	}

	adjudication := input.Adjudication
	if adjudication == "" {
		adjudication = s.defaultAdjudication
	}
	if !adjudication.Valid() {
		return nil, ErrInvalidSettings
	}

	// Cheap check before allocating a room; registration below is the real guard
	if _, err := s.roomRepo.GetPlayerLocation(ctx, &roomRepo.GetPlayerLocationInput{
		ConnectionID: input.ConnectionID,
	}); err == nil {
		return nil, ErrAlreadyInRoom
	}

	room, err := s.roomRepo.CreateRoom(ctx, &roomRepo.CreateRoomInput{
		Capacity:     input.Capacity,
		TotalRounds:  input.TotalRounds,
		Adjudication: adjudication,
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrServerFull) {
			return nil, ErrServerFull
		}
		return nil, fmt.Errorf("failed to create room: %w", err)
	}

	if err := s.registerLocation(ctx, input.ConnectionID, room.Code, name); err != nil {
		s.deleteRoom(ctx, room)
		return nil, err
	}

	output := &CreateRoomOutput{RoomCode: room.Code}
	_, err = s.apply(ctx, room, input.ConnectionID, JoinIntent{DisplayName: name}, func(room *models.Room, t *Transition) error {
		output.Room = snapshot(room)
		return nil
	})
	if err != nil {
		s.unregisterLocation(ctx, input.ConnectionID)
		s.deleteRoom(ctx, room)
		return nil, err
	}

	s.log.Info().
		Str("room", room.Code).
		Str("host", input.ConnectionID).
		Int("capacity", input.Capacity).
		Int("rounds", input.TotalRounds).
		Msg("room created")

	return output, nil
}

// JoinRoom seats the sender in an existing waiting room
func (s *service) JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error) {
	if input == nil || input.ConnectionID == "" {
		return nil, ErrBadRequest
	}

	name, err := normalizeName(input.DisplayName)
	if err != nil {
		return nil, err
	}

	code := strings.ToUpper(strings.TrimSpace(input.RoomCode))
	if code == "" {
		return nil, ErrRoomNotFound
	}

	if _, err := s.roomRepo.GetPlayerLocation(ctx, &roomRepo.GetPlayerLocationInput{
		ConnectionID: input.ConnectionID,
	}); err == nil {
		return nil, ErrAlreadyInRoom
	}

	room, err := s.roomRepo.GetRoom(ctx, &roomRepo.GetRoomInput{Code: code})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	if err := s.registerLocation(ctx, input.ConnectionID, room.Code, name); err != nil {
		return nil, err
	}

	output := &JoinRoomOutput{RoomCode: room.Code}
	_, err = s.apply(ctx, room, input.ConnectionID, JoinIntent{DisplayName: name}, func(room *models.Room, t *Transition) error {
		output.Room = snapshot(room)
		return nil
	})
	if err != nil {
		s.unregisterLocation(ctx, input.ConnectionID)
		return nil, err
	}

	s.log.Debug().Str("room", room.Code).Str("player", input.ConnectionID).Msg("player joined")

	return output, nil
}

// LeaveRoom removes the sender from their room. The last player out deletes it.
func (s *service) LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error) {
	if input == nil || input.ConnectionID == "" {
		return nil, ErrBadRequest
	}

	output := &LeaveRoomOutput{}
	_, err := s.route(ctx, input.ConnectionID, LeaveIntent{}, func(room *models.Room, t *Transition) error {
		s.unregisterLocation(ctx, input.ConnectionID)

		output.RoomCode = room.Code
		output.GameAborted = t.GameAborted
		output.RoundVoided = t.RoundVoided
		if t.NewHost != nil {
			output.NewHostID = t.NewHost.ConnectionID
		}

		if t.RoomEmpty {
			room.Close()
			s.deleteRoom(ctx, room)
			output.RoomDeleted = true
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotInRoom) {
			// seated nowhere, but the index may still point at a room
			s.unregisterLocation(ctx, input.ConnectionID)
		}
		return nil, err
	}

	s.log.Debug().
		Str("room", output.RoomCode).
		Str("player", input.ConnectionID).
		Bool("roomDeleted", output.RoomDeleted).
		Msg("player left")

	return output, nil
}

// StartGame deals the first round
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil || input.ConnectionID == "" {
		return nil, ErrBadRequest
	}

	output := &StartGameOutput{}
	_, err := s.route(ctx, input.ConnectionID, StartIntent{}, func(room *models.Room, t *Transition) error {
		output.RoomCode = room.Code
		output.Capacity = room.Capacity
		output.RoleSetSize = room.RoleSetSize
		output.Round = room.CurrentRound
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("room", output.RoomCode).Int("players", output.RoleSetSize).Msg("game started")

	return output, nil
}

// RevealRole shows the sender's role to the room
func (s *service) RevealRole(ctx context.Context, input *RevealRoleInput) (*RevealRoleOutput, error) {
	if input == nil || input.ConnectionID == "" {
		return nil, ErrBadRequest
	}

	output := &RevealRoleOutput{}
	_, err := s.route(ctx, input.ConnectionID, RevealIntent{}, func(room *models.Room, t *Transition) error {
		if p := room.FindPlayer(input.ConnectionID); p != nil {
			output.Role = p.Role
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// SubmitGuess records the mantri's accusation
func (s *service) SubmitGuess(ctx context.Context, input *SubmitGuessInput) (*SubmitGuessOutput, error) {
	if input == nil || input.ConnectionID == "" {
		return nil, ErrBadRequest
	}

	output := &SubmitGuessOutput{}
	_, err := s.route(ctx, input.ConnectionID, GuessIntent{TargetID: input.TargetID}, func(room *models.Room, t *Transition) error {
		if t.Guess == nil {
			output.Pending = true
			return nil
		}
		output.Correct = t.Guess.WasCorrect
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// ConfirmDecision lets the decision maker rule on a pending guess
func (s *service) ConfirmDecision(ctx context.Context, input *ConfirmDecisionInput) (*ConfirmDecisionOutput, error) {
	if input == nil || input.ConnectionID == "" {
		return nil, ErrBadRequest
	}

	output := &ConfirmDecisionOutput{}
	_, err := s.route(ctx, input.ConnectionID, DecideIntent{IsCorrect: input.IsCorrect}, func(room *models.Room, t *Transition) error {
		if t.Guess != nil {
			output.MatchedTruth = t.Guess.WasCorrect == input.IsCorrect
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// AdvanceRound moves to the next round or ends the game
func (s *service) AdvanceRound(ctx context.Context, input *AdvanceRoundInput) (*AdvanceRoundOutput, error) {
	if input == nil || input.ConnectionID == "" {
		return nil, ErrBadRequest
	}

	output := &AdvanceRoundOutput{}
	t, err := s.route(ctx, input.ConnectionID, AdvanceIntent{}, func(room *models.Room, t *Transition) error {
		output.Round = room.CurrentRound
		output.GameOver = room.State == models.GameStateGameEnd
		output.Result = t.Result
		return nil
	})
	if err != nil {
		return nil, err
	}

	if t.Result != nil {
		s.saveResult(ctx, t.Result)
	}

	return output, nil
}

// UpdateRoomSettings changes capacity and round count while waiting
func (s *service) UpdateRoomSettings(ctx context.Context, input *UpdateRoomSettingsInput) (*UpdateRoomSettingsOutput, error) {
	if input == nil || input.ConnectionID == "" {
		return nil, ErrBadRequest
	}

	intent := SettingsIntent{
		Capacity:    input.Capacity,
		TotalRounds: input.TotalRounds,
	}

	output := &UpdateRoomSettingsOutput{}
	_, err := s.route(ctx, input.ConnectionID, intent, func(room *models.Room, t *Transition) error {
		output.Capacity = room.Capacity
		output.TotalRounds = room.TotalRounds
		for _, n := range t.Notifications {
			if update, ok := n.Data.(models.SettingsUpdate); ok {
				output.CapacityApplied = update.CapacityApplied
				output.TotalRoundsApplied = update.TotalRoundsApplied
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// PlayAgain resets a finished room to waiting
func (s *service) PlayAgain(ctx context.Context, input *PlayAgainInput) (*PlayAgainOutput, error) {
	if input == nil || input.ConnectionID == "" {
		return nil, ErrBadRequest
	}

	output := &PlayAgainOutput{}
	_, err := s.route(ctx, input.ConnectionID, PlayAgainIntent{}, func(room *models.Room, t *Transition) error {
		output.RoomCode = room.Code
		return nil
	})
	if err != nil {
		return nil, err
	}

	return output, nil
}

// SendChat relays a chat line to the sender's room
func (s *service) SendChat(ctx context.Context, input *SendChatInput) (*SendChatOutput, error) {
	if input == nil || input.ConnectionID == "" {
		return nil, ErrBadRequest
	}

	output := &SendChatOutput{}
	t, err := s.route(ctx, input.ConnectionID, ChatIntent{Text: input.Message}, nil)
	if err != nil {
		return nil, err
	}

	if len(t.Notifications) > 0 {
		if msg, ok := t.Notifications[0].Data.(models.ChatMessage); ok {
			output.Message = msg.Message
		}
	}

	return output, nil
}

// ReportError unicasts an error notification to the sender
func (s *service) ReportError(ctx context.Context, input *ReportErrorInput) {
	if input == nil || input.ConnectionID == "" || input.Err == nil {
		return
	}

	kind := KindOf(input.Err)
	if kind == KindInternal {
		s.log.Error().Err(input.Err).Str("connection", input.ConnectionID).Msg("intent failed")
	}

	s.publisher.Publish(ctx, []*models.Notification{NewErrorNotification(input.ConnectionID, input.Err)})
}

// GetRoom returns the public view of a room
func (s *service) GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error) {
	if input == nil || input.RoomCode == "" {
		return nil, ErrRoomNotFound
	}

	room, err := s.roomRepo.GetRoom(ctx, &roomRepo.GetRoomInput{Code: input.RoomCode})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	room.Lock()
	defer room.Unlock()

	if room.Closed() {
		return nil, ErrRoomNotFound
	}

	return &GetRoomOutput{Room: snapshot(room)}, nil
}

// GetStats returns live room and player counts
func (s *service) GetStats(ctx context.Context, input *GetStatsInput) (*GetStatsOutput, error) {
	stats, err := s.roomRepo.GetStats(ctx, &roomRepo.GetStatsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	return &GetStatsOutput{
		Rooms:   stats.Rooms,
		Players: stats.Players,
	}, nil
}

// GetRoomResults lists finished games recorded under a room code
func (s *service) GetRoomResults(ctx context.Context, input *GetRoomResultsInput) (*GetRoomResultsOutput, error) {
	if input == nil || strings.TrimSpace(input.RoomCode) == "" {
		return nil, ErrBadRequest
	}

	if s.resultsRepo == nil {
		return &GetRoomResultsOutput{Results: []*models.GameResult{}}, nil
	}

	output, err := s.resultsRepo.ListResultsForRoom(ctx, &resultsRepo.ListResultsForRoomInput{
		RoomCode: strings.TrimSpace(input.RoomCode),
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return &GetRoomResultsOutput{Results: output.Results}, nil
}

// route finds the sender's room through the location index and applies intent
func (s *service) route(ctx context.Context, connectionID string, intent Intent, inspect func(*models.Room, *Transition) error) (*Transition, error) {
	loc, err := s.roomRepo.GetPlayerLocation(ctx, &roomRepo.GetPlayerLocationInput{
		ConnectionID: connectionID,
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrLocationNotFound) {
			return nil, ErrNotInRoom
		}
		return nil, fmt.Errorf("failed to get player location: %w", err)
	}

	room, err := s.roomRepo.GetRoom(ctx, &roomRepo.GetRoomInput{Code: loc.RoomCode})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			// stale location left behind by a deleted room
			s.unregisterLocation(ctx, connectionID)
			return nil, ErrNotInRoom
		}
		return nil, fmt.Errorf("failed to get room: %w", err)
	}

	return s.apply(ctx, room, connectionID, intent, inspect)
}

// apply runs one transition under the room lock. inspect runs after a
// successful transition, and the notifications are published before the lock
// is released so each room's events go out in the order its intents were applied.
// Publishers must not block.
func (s *service) apply(ctx context.Context, room *models.Room, senderID string, intent Intent, inspect func(*models.Room, *Transition) error) (t *Transition, err error) {
	room.Lock()
	defer room.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Str("room", room.Code).
				Str("sender", senderID).
				Interface("panic", r).
				Str("stack", string(debug.Stack())).
				Msgf("recovered from panic applying %T", intent)
			t = nil
			err = ErrInternal
		}
	}()

	if room.Closed() {
		return nil, ErrRoomNotFound
	}

	t, err = s.engine.Apply(ctx, room, senderID, intent)
	if err != nil {
		return nil, err
	}

	if inspect != nil {
		if err := inspect(room, t); err != nil {
			return nil, err
		}
	}

	if len(t.Notifications) > 0 {
		s.publisher.Publish(ctx, t.Notifications)
	}
	return t, nil
}

func (s *service) registerLocation(ctx context.Context, connectionID, code, name string) error {
	err := s.roomRepo.RegisterPlayerLocation(ctx, &roomRepo.RegisterPlayerLocationInput{
		ConnectionID: connectionID,
		RoomCode:     code,
		DisplayName:  name,
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrAlreadyRegistered) {
			return ErrAlreadyInRoom
		}
		return fmt.Errorf("failed to register player location: %w", err)
	}
	return nil
}

func (s *service) unregisterLocation(ctx context.Context, connectionID string) {
	err := s.roomRepo.UnregisterPlayerLocation(ctx, &roomRepo.UnregisterPlayerLocationInput{
		ConnectionID: connectionID,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("connection", connectionID).Msg("failed to unregister player location")
	}
}

func (s *service) deleteRoom(ctx context.Context, room *models.Room) {
	err := s.roomRepo.DeleteRoom(ctx, &roomRepo.DeleteRoomInput{Code: room.Code})
	if err != nil && !errors.Is(err, roomRepo.ErrRoomNotFound) {
		s.log.Warn().Err(err).Str("room", room.Code).Msg("failed to delete room")
		return
	}
	s.log.Info().Str("room", room.Code).Msg("room deleted")
}

// saveResult records a finished game; failures are logged and never reach the players
func (s *service) saveResult(ctx context.Context, result *models.GameResult) {
	if s.resultsRepo == nil {
		return
	}

	if err := s.resultsRepo.SaveResult(ctx, &resultsRepo.SaveResultInput{Result: result}); err != nil {
		s.log.Error().Err(err).Str("room", result.RoomCode).Msg("failed to save game result")
		return
	}

	s.log.Info().Str("room", result.RoomCode).Str("result", result.ID).Msg("game result saved")
}

// normalizeName trims a display name and checks its length
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > MaxDisplayNameLength {
		return "", ErrInvalidName
	}
	return name, nil
}

// NewErrorNotification builds the unicast error event for a rejected intent
func NewErrorNotification(connectionID string, err error) *models.Notification {
	return &models.Notification{
		Event:   models.EventError,
		Private: true,
		To:      []string{connectionID},
		Data: models.ErrorInfo{
			Kind:    string(KindOf(err)),
			Message: PublicMessage(err),
		},
	}
}
