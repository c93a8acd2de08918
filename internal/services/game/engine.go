package game

import (
	"context"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/rajamantri/internal/catalog"
	"github.com/KirkDiggler/rajamantri/internal/common/clock"
	"github.com/KirkDiggler/rajamantri/internal/common/idgen"
	"github.com/KirkDiggler/rajamantri/internal/models"
	"github.com/KirkDiggler/rajamantri/internal/scoring"
	"github.com/KirkDiggler/rajamantri/internal/services/messaging"
	"github.com/KirkDiggler/rajamantri/internal/shuffle"
)

// Intent is one of the closed set of actions a player can send to a room
type Intent interface {
	intent()
}

// JoinIntent seats the sender; the first player in an empty room becomes host
type JoinIntent struct {
	DisplayName string
}

// LeaveIntent removes the sender from the room
type LeaveIntent struct{}

// StartIntent deals round one
type StartIntent struct{}

// RevealIntent shows the sender's role
type RevealIntent struct{}

// GuessIntent is the accusing role naming a suspect
type GuessIntent struct {
	TargetID string
}

// DecideIntent is the decision maker ruling on the pending guess
type DecideIntent struct {
	IsCorrect bool
}

// AdvanceIntent moves past a finished round
type AdvanceIntent struct{}

// SettingsIntent changes room settings; nil fields are left alone
type SettingsIntent struct {
	Capacity    *int
	TotalRounds *int
}

// PlayAgainIntent resets a finished game
type PlayAgainIntent struct{}

// ChatIntent relays a chat line
type ChatIntent struct {
	Text string
}

func (JoinIntent) intent()      {}
func (LeaveIntent) intent()     {}
func (StartIntent) intent()     {}
func (RevealIntent) intent()    {}
func (GuessIntent) intent()     {}
func (DecideIntent) intent()    {}
func (AdvanceIntent) intent()   {}
func (SettingsIntent) intent()  {}
func (PlayAgainIntent) intent() {}
func (ChatIntent) intent()      {}

// Transition is what applying one intent produced
type Transition struct {
	// Notifications in the order they must be delivered
	Notifications []*models.Notification

	// Result is set when the intent ended the game
	Result *models.GameResult

	// RoomEmpty is set when the last player left
	RoomEmpty bool

	// NewHost is set when the host left and another player took over
	NewHost *models.Player

	// GameAborted is set when a departure left too few players to continue
	GameAborted bool

	// RoundVoided is set when a departure made the current round unfinishable
	RoundVoided bool

	// Guess is set when a guess was resolved
	Guess *models.GuessOutcome
}

func (t *Transition) broadcast(room *models.Room, event models.EventType, data any) {
	t.Notifications = append(t.Notifications, &models.Notification{
		Event:    event,
		RoomCode: room.Code,
		To:       room.ConnectionIDs(),
		Data:     data,
	})
}

func (t *Transition) unicast(room *models.Room, connectionID string, event models.EventType, data any) {
	t.Notifications = append(t.Notifications, &models.Notification{
		Event:    event,
		RoomCode: room.Code,
		Private:  true,
		To:       []string{connectionID},
		Data:     data,
	})
}

// EngineConfig holds the engine's dependencies
type EngineConfig struct {
	Shuffler    shuffle.Source
	Clock       clock.Clock
	IDGenerator idgen.Generator
	Messaging   messaging.Service
}

// Engine is the room state machine. It never locks; callers hold the room lock
// for the duration of Apply.
type Engine struct {
	shuffler    shuffle.Source
	clock       clock.Clock
	idGenerator idgen.Generator
	messaging   messaging.Service
}

// NewEngine creates a room engine
func NewEngine(cfg *EngineConfig) (*Engine, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Shuffler == nil {
		return nil, ErrNilShuffler
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.IDGenerator == nil {
		return nil, ErrNilIDGenerator
	}
	if cfg.Messaging == nil {
		return nil, ErrNilMessaging
	}

	return &Engine{
		shuffler:    cfg.Shuffler,
		clock:       cfg.Clock,
		idGenerator: cfg.IDGenerator,
		messaging:   cfg.Messaging,
	}, nil
}

// Apply validates intent against the room and, if allowed, mutates the room
// and returns the notifications to deliver. A rejected intent leaves the room
// untouched.
func (e *Engine) Apply(ctx context.Context, room *models.Room, senderID string, intent Intent) (*Transition, error) {
	var (
		t   *Transition
		err error
	)

	switch in := intent.(type) {
	case JoinIntent:
		t, err = e.join(ctx, room, senderID, in)
	case LeaveIntent:
		t, err = e.leave(ctx, room, senderID)
	case StartIntent:
		t, err = e.start(ctx, room, senderID)
	case RevealIntent:
		t, err = e.reveal(room, senderID)
	case GuessIntent:
		t, err = e.guess(ctx, room, senderID, in)
	case DecideIntent:
		t, err = e.decide(ctx, room, senderID, in)
	case AdvanceIntent:
		t, err = e.advance(ctx, room, senderID)
	case SettingsIntent:
		t, err = e.updateSettings(room, senderID, in)
	case PlayAgainIntent:
		t, err = e.playAgain(room, senderID)
	case ChatIntent:
		t, err = e.chat(room, senderID, in)
	default:
		return nil, ErrBadRequest
	}
	if err != nil {
		return nil, err
	}

	room.UpdatedAt = e.clock.Now()
	return t, nil
}

func (e *Engine) join(ctx context.Context, room *models.Room, senderID string, in JoinIntent) (*Transition, error) {
	if room.FindPlayer(senderID) != nil {
		return nil, ErrAlreadyInRoom
	}
	if room.State != models.GameStateWaiting {
		return nil, ErrGameInProgress
	}
	if room.IsFull() {
		return nil, ErrRoomFull
	}

	player := &models.Player{
		ConnectionID: senderID,
		DisplayName:  in.DisplayName,
		IsHost:       len(room.Players) == 0,
		JoinedAt:     e.clock.Now(),
	}
	room.Players = append(room.Players, player)
	room.Scores[senderID] = scoring.NewRecord()

	event := models.EventRoomJoined
	if player.IsHost {
		event = models.EventRoomCreated
	}

	t := &Transition{}
	t.unicast(room, senderID, event, models.RoomInfo{
		RoomCode:     room.Code,
		Capacity:     room.Capacity,
		TotalRounds:  room.TotalRounds,
		PlayerID:     senderID,
		PlayerName:   player.DisplayName,
		Adjudication: room.Adjudication,
	})

	greeting, err := e.messaging.GetJoinRoomMessage(ctx, &messaging.GetJoinRoomMessageInput{
		PlayerName:  player.DisplayName,
		IsHost:      player.IsHost,
		PlayerCount: len(room.Players),
		Capacity:    room.Capacity,
	})
	update := membership(room, player.DisplayName)
	if err == nil {
		update.Message = greeting.Message
	}
	t.broadcast(room, models.EventPlayerJoined, update)

	return t, nil
}

func (e *Engine) leave(ctx context.Context, room *models.Room, senderID string) (*Transition, error) {
	idx := -1
	for i, p := range room.Players {
		if p.ConnectionID == senderID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotInRoom
	}

	leaver := room.Players[idx]
	room.Players = append(room.Players[:idx], room.Players[idx+1:]...)
	delete(room.Scores, senderID)

	t := &Transition{}
	t.unicast(room, senderID, models.EventRoomLeft, models.RoomInfo{
		RoomCode:   room.Code,
		PlayerID:   senderID,
		PlayerName: leaver.DisplayName,
	})

	if len(room.Players) == 0 {
		t.RoomEmpty = true
		return t, nil
	}

	var hostChange *models.HostChange
	if leaver.IsHost {
		// the longest seated player takes over
		successor := room.Players[0]
		successor.IsHost = true
		t.NewHost = successor

		message := successor.DisplayName + " is now the host"
		notice, err := e.messaging.GetHostChangeMessage(ctx, &messaging.GetHostChangeMessageInput{
			NewHostName:      successor.DisplayName,
			PreviousHostName: leaver.DisplayName,
		})
		if err == nil {
			message = notice.Message
		}
		hostChange = &models.HostChange{
			PlayerID: successor.ConnectionID,
			Name:     successor.DisplayName,
			Message:  message,
		}
	}

	update := membership(room, leaver.DisplayName)
	update.NewHost = hostChange
	t.broadcast(room, models.EventPlayerLeft, update)

	inGame := room.State == models.GameStatePlaying || room.State == models.GameStateRoundEnd
	if inGame && len(room.Players) < catalog.MinCapacity {
		resetToWaiting(room)
		t.GameAborted = true
		t.broadcast(room, models.EventGameAborted, resetNotice(room,
			leaver.DisplayName+" left. Not enough players to continue, back to the lobby."))
		return t, nil
	}

	if room.State == models.GameStatePlaying && e.leaveVoidsRound(room, leaver) {
		room.PendingGuess = nil
		revealAll(room)
		room.State = models.GameStateRoundEnd
		t.RoundVoided = true
		t.broadcast(room, models.EventRoundVoided, models.RoundVoided{
			Round:         room.CurrentRound,
			Message:       leaver.DisplayName + " left mid-round. This round is void, no guess points awarded.",
			RevealedRoles: publicPlayers(room),
		})
	}

	return t, nil
}

// leaveVoidsRound reports whether the round can no longer be resolved
// without the departed player
func (e *Engine) leaveVoidsRound(room *models.Room, leaver *models.Player) bool {
	switch leaver.Role {
	case catalog.AccusingRole, catalog.AccusedRole:
		return true
	}

	if room.Adjudication == models.AdjudicationDecisionMaker && leaver.Role == catalog.DecisionMaker(room.DealtCapacity()) {
		return true
	}

	if pending := room.PendingGuess; pending != nil {
		return pending.GuesserID == leaver.ConnectionID || pending.AccusedID == leaver.ConnectionID
	}
	return false
}

func (e *Engine) start(ctx context.Context, room *models.Room, senderID string) (*Transition, error) {
	if err := requireHost(room, senderID); err != nil {
		return nil, err
	}
	if room.State != models.GameStateWaiting {
		return nil, ErrGameInProgress
	}
	if len(room.Players) < catalog.MinCapacity {
		return nil, ErrInsufficientPlayers
	}

	room.CurrentRound = 1
	room.PendingGuess = nil
	seedScores(room)

	t := &Transition{}
	if err := e.dealRound(ctx, room, t); err != nil {
		return nil, err
	}
	t.broadcast(room, models.EventGameStarted, e.roundInfo(ctx, room))

	return t, nil
}

// dealRound shuffles the role set over the seated players, awards base
// scores and queues the private role notifications
func (e *Engine) dealRound(ctx context.Context, room *models.Room, t *Transition) error {
	room.RoleSetSize = min(len(room.Players), room.Capacity)

	roles, err := catalog.RolesFor(room.RoleSetSize)
	if err != nil {
		return ErrInsufficientPlayers
	}
	shuffle.Shuffle(e.shuffler, roles)

	for i, p := range room.Players {
		p.Role = roles[i]
		p.RoleRevealed = false

		record, ok := room.Scores[p.ConnectionID]
		if !ok {
			record = scoring.NewRecord()
			room.Scores[p.ConnectionID] = record
		}
		scoring.AwardRole(record, room.CurrentRound, p.Role)
	}
	room.State = models.GameStatePlaying

	for _, p := range room.Players {
		t.unicast(room, p.ConnectionID, models.EventRoleAssigned, models.RoleAssignment{
			Role:         p.Role,
			BaseScore:    catalog.BaseScore(p.Role),
			CurrentRound: room.CurrentRound,
			TotalRounds:  room.TotalRounds,
		})
	}
	return nil
}

func (e *Engine) roundInfo(ctx context.Context, room *models.Room) models.RoundInfo {
	info := models.RoundInfo{
		CurrentRound:  room.CurrentRound,
		TotalRounds:   room.TotalRounds,
		Players:       publicPlayers(room),
		DecisionMaker: catalog.DecisionMaker(room.DealtCapacity()),
	}

	banner, err := e.messaging.GetRoundStartMessage(ctx, &messaging.GetRoundStartMessageInput{
		CurrentRound: room.CurrentRound,
		TotalRounds:  room.TotalRounds,
	})
	if err == nil {
		info.Message = banner.Message
	}
	return info
}

func (e *Engine) reveal(room *models.Room, senderID string) (*Transition, error) {
	player := room.FindPlayer(senderID)
	if player == nil {
		return nil, ErrNotInRoom
	}
	if room.State != models.GameStatePlaying {
		return nil, ErrInvalidGameState
	}

	player.RoleRevealed = true

	t := &Transition{}
	t.broadcast(room, models.EventRoleRevealed, models.RoleReveal{
		PlayerID:   player.ConnectionID,
		PlayerName: player.DisplayName,
		Role:       player.Role,
		Players:    publicPlayers(room),
	})
	return t, nil
}

func (e *Engine) guess(ctx context.Context, room *models.Room, senderID string, in GuessIntent) (*Transition, error) {
	accuser := room.FindPlayer(senderID)
	if accuser == nil {
		return nil, ErrNotInRoom
	}
	if room.State != models.GameStatePlaying {
		return nil, ErrInvalidGameState
	}
	if accuser.Role != catalog.AccusingRole {
		return nil, ErrWrongRole
	}

	accused := room.FindPlayer(in.TargetID)
	if accused == nil || accused.Role == catalog.AccusingRole {
		return nil, ErrInvalidTarget
	}

	t := &Transition{}

	if room.Adjudication == models.AdjudicationDecisionMaker {
		if room.PendingGuess != nil {
			return nil, ErrGuessPending
		}

		decider := catalog.DecisionMaker(room.DealtCapacity())
		room.PendingGuess = &models.PendingGuess{
			GuesserID: accuser.ConnectionID,
			AccusedID: accused.ConnectionID,
		}
		t.broadcast(room, models.EventGuessPending, models.GuessPendingInfo{
			GuesserName:   accuser.DisplayName,
			AccusedID:     accused.ConnectionID,
			AccusedName:   accused.DisplayName,
			DecisionMaker: decider,
			Message:       accuser.DisplayName + " accuses " + accused.DisplayName + ". The " + decider.Title() + " must decide.",
		})
		return t, nil
	}

	correct := accused.Role == catalog.AccusedRole
	outcome, err := e.resolve(ctx, room, accuser, accused, correct, nil)
	if err != nil {
		return nil, err
	}
	t.Guess = outcome
	t.broadcast(room, models.EventGuessResult, *outcome)
	return t, nil
}

func (e *Engine) decide(ctx context.Context, room *models.Room, senderID string, in DecideIntent) (*Transition, error) {
	decider := room.FindPlayer(senderID)
	if decider == nil {
		return nil, ErrNotInRoom
	}
	if decider.Role != catalog.DecisionMaker(room.DealtCapacity()) {
		return nil, ErrWrongRole
	}

	pending := room.PendingGuess
	if pending == nil || room.State != models.GameStatePlaying {
		return nil, ErrNoPendingGuess
	}

	accuser := room.FindPlayer(pending.GuesserID)
	accused := room.FindPlayer(pending.AccusedID)
	if accuser == nil || accused == nil {
		return nil, ErrNoPendingGuess
	}

	outcome, err := e.resolve(ctx, room, accuser, accused, in.IsCorrect, decider)
	if err != nil {
		return nil, err
	}

	t := &Transition{Guess: outcome}
	t.broadcast(room, models.EventDecisionResult, *outcome)
	return t, nil
}

// resolve scores a guess with the given correctness, ends the round and
// reveals every role. decider is nil for immediate resolution.
func (e *Engine) resolve(ctx context.Context, room *models.Room, accuser, accused *models.Player, correct bool, decider *models.Player) (*models.GuessOutcome, error) {
	holder := room.PlayerWithRole(catalog.AccusedRole)
	if holder == nil {
		return nil, ErrInvalidGameState
	}

	accuserRecord := room.Scores[accuser.ConnectionID]
	holderRecord := room.Scores[holder.ConnectionID]
	if accuserRecord == nil || holderRecord == nil {
		return nil, ErrInvalidGameState
	}

	result := scoring.ResolveGuess(accuserRecord, holderRecord, room.CurrentRound, correct)

	room.PendingGuess = nil
	revealAll(room)
	room.State = models.GameStateRoundEnd

	truth := accused.ConnectionID == holder.ConnectionID
	outcome := &models.GuessOutcome{
		AccuserID:        accuser.ConnectionID,
		AccuserName:      accuser.DisplayName,
		AccusedID:        accused.ConnectionID,
		AccusedName:      accused.DisplayName,
		ActualHolderID:   holder.ConnectionID,
		ActualHolderName: holder.DisplayName,
		WasCorrect:       truth,
		PointExchange:    !result.Correct,
		RevealedRoles:    publicPlayers(room),
		Scores:           standings(room),
	}

	input := &messaging.GetGuessOutcomeMessageInput{
		AccuserName: accuser.DisplayName,
		AccusedName: accused.DisplayName,
		HolderName:  holder.DisplayName,
		Correct:     result.Correct,
	}
	if decider != nil {
		decision := correct
		outcome.DecidedBy = decider.DisplayName
		outcome.Decision = &decision
		input.DeciderName = decider.DisplayName
		input.Overruled = correct != truth
	}

	message, err := e.messaging.GetGuessOutcomeMessage(ctx, input)
	if err == nil {
		outcome.Message = message.Message
	}
	return outcome, nil
}

func (e *Engine) advance(ctx context.Context, room *models.Room, senderID string) (*Transition, error) {
	if err := requireHost(room, senderID); err != nil {
		return nil, err
	}
	if room.State != models.GameStateRoundEnd {
		return nil, ErrRoundNotComplete
	}

	room.CurrentRound++
	t := &Transition{}

	if room.CurrentRound > room.TotalRounds {
		room.State = models.GameStateGameEnd
		final := standings(room)

		result := &models.GameResult{
			ID:          e.idGenerator.NewID(),
			RoomCode:    room.Code,
			TotalRounds: room.TotalRounds,
			Standings:   final,
			EndedAt:     e.clock.Now(),
		}
		t.Result = result

		end := models.GameEnd{
			FinalScores: final,
			Winner:      result.Winner(),
		}
		input := &messaging.GetGameEndMessageInput{TotalRounds: room.TotalRounds}
		if end.Winner != nil {
			input.WinnerName = end.Winner.PlayerName
			input.WinnerScore = end.Winner.TotalScore
		}
		if message, err := e.messaging.GetGameEndMessage(ctx, input); err == nil {
			end.Message = message.Message
		}

		t.broadcast(room, models.EventGameEnded, end)
		return t, nil
	}

	room.PendingGuess = nil
	if err := e.dealRound(ctx, room, t); err != nil {
		return nil, err
	}
	t.broadcast(room, models.EventNextRound, e.roundInfo(ctx, room))
	return t, nil
}

func (e *Engine) updateSettings(room *models.Room, senderID string, in SettingsIntent) (*Transition, error) {
	if err := requireHost(room, senderID); err != nil {
		return nil, err
	}
	if room.State != models.GameStateWaiting {
		return nil, ErrGameInProgress
	}

	update := models.SettingsUpdate{}
	if in.Capacity != nil && catalog.ValidCapacity(*in.Capacity) && *in.Capacity >= len(room.Players) {
		room.Capacity = *in.Capacity
		update.CapacityApplied = true
	}
	if in.TotalRounds != nil && *in.TotalRounds >= MinTotalRounds && *in.TotalRounds <= MaxTotalRounds {
		room.TotalRounds = *in.TotalRounds
		update.TotalRoundsApplied = true
	}

	update.Capacity = room.Capacity
	update.TotalRounds = room.TotalRounds
	switch {
	case update.CapacityApplied || update.TotalRoundsApplied:
		update.Message = "Room settings updated!"
	default:
		update.Message = "No settings were changed."
	}

	t := &Transition{}
	t.broadcast(room, models.EventSettingsUpdated, update)
	return t, nil
}

func (e *Engine) playAgain(room *models.Room, senderID string) (*Transition, error) {
	if err := requireHost(room, senderID); err != nil {
		return nil, err
	}
	if room.State != models.GameStateGameEnd {
		return nil, ErrInvalidGameState
	}

	resetToWaiting(room)

	t := &Transition{}
	t.broadcast(room, models.EventPlayAgainReset, resetNotice(room, "Game reset for new round! New players can join."))
	return t, nil
}

func (e *Engine) chat(room *models.Room, senderID string, in ChatIntent) (*Transition, error) {
	sender := room.FindPlayer(senderID)
	if sender == nil {
		return nil, ErrNotInRoom
	}

	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if utf8.RuneCountInString(text) > MaxChatLength {
		return nil, ErrMessageTooLong
	}

	t := &Transition{}
	t.broadcast(room, models.EventChatMessage, models.ChatMessage{
		SenderID:   sender.ConnectionID,
		SenderName: sender.DisplayName,
		Message:    html.EscapeString(text),
		Timestamp:  e.clock.Now(),
	})
	return t, nil
}

func requireHost(room *models.Room, senderID string) error {
	player := room.FindPlayer(senderID)
	if player == nil {
		return ErrNotInRoom
	}
	if !player.IsHost {
		return ErrNotHost
	}
	return nil
}

func seedScores(room *models.Room) {
	room.Scores = make(map[string]*models.ScoreRecord, len(room.Players))
	for _, p := range room.Players {
		room.Scores[p.ConnectionID] = scoring.NewRecord()
	}
}

func resetToWaiting(room *models.Room) {
	for _, p := range room.Players {
		p.Role = catalog.RoleNone
		p.RoleRevealed = false
	}
	seedScores(room)
	room.CurrentRound = 1
	room.RoleSetSize = 0
	room.PendingGuess = nil
	room.State = models.GameStateWaiting
}

func revealAll(room *models.Room) {
	for _, p := range room.Players {
		p.RoleRevealed = true
	}
}

func publicPlayers(room *models.Room) []models.PublicPlayer {
	players := make([]models.PublicPlayer, 0, len(room.Players))
	for _, p := range room.Players {
		players = append(players, p.Public())
	}
	return players
}

func standings(room *models.Room) []models.Standing {
	entries := make([]scoring.Entry, 0, len(room.Players))
	for _, p := range room.Players {
		entries = append(entries, scoring.Entry{
			PlayerID:   p.ConnectionID,
			PlayerName: p.DisplayName,
			Record:     room.Scores[p.ConnectionID],
		})
	}
	return scoring.Standings(entries)
}

func membership(room *models.Room, name string) models.MembershipUpdate {
	return models.MembershipUpdate{
		PlayerName:  name,
		PlayerCount: len(room.Players),
		Capacity:    room.Capacity,
		TotalRounds: room.TotalRounds,
		Players:     publicPlayers(room),
	}
}

func resetNotice(room *models.Room, message string) models.ResetNotice {
	return models.ResetNotice{
		RoomCode:    room.Code,
		Capacity:    room.Capacity,
		TotalRounds: room.TotalRounds,
		Players:     publicPlayers(room),
		Message:     message,
	}
}

// snapshot copies the public state of a room; the caller holds the lock
func snapshot(room *models.Room) *RoomSnapshot {
	return &RoomSnapshot{
		Code:         room.Code,
		Capacity:     room.Capacity,
		TotalRounds:  room.TotalRounds,
		CurrentRound: room.CurrentRound,
		State:        room.State,
		Adjudication: room.Adjudication,
		Players:      publicPlayers(room),
		Scores:       standings(room),
	}
}
