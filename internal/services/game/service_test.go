package game

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rajamantri/internal/catalog"
	clockMocks "github.com/KirkDiggler/rajamantri/internal/common/clock/mocks"
	idgenMocks "github.com/KirkDiggler/rajamantri/internal/common/idgen/mocks"
	"github.com/KirkDiggler/rajamantri/internal/models"
	resultsRepo "github.com/KirkDiggler/rajamantri/internal/repositories/results"
	resultsMocks "github.com/KirkDiggler/rajamantri/internal/repositories/results/mocks"
	roomRepo "github.com/KirkDiggler/rajamantri/internal/repositories/room"
	roomMocks "github.com/KirkDiggler/rajamantri/internal/repositories/room/mocks"
	"github.com/KirkDiggler/rajamantri/internal/scoring"
	"github.com/KirkDiggler/rajamantri/internal/services/messaging"
	messagingMocks "github.com/KirkDiggler/rajamantri/internal/services/messaging/mocks"
)

// identitySource makes every Fisher-Yates step a no-op so roles are dealt in
// catalog order: 3 players get mantri, chor, sipahi.
type identitySource struct{}

func (identitySource) Intn(n int) int {
	return n - 1
}

// recordingPublisher keeps every published notification
type recordingPublisher struct {
	mu            sync.Mutex
	notifications []*models.Notification
}

func (p *recordingPublisher) Publish(ctx context.Context, notifications []*models.Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = append(p.notifications, notifications...)
}

func (p *recordingPublisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.notifications = nil
}

func (p *recordingPublisher) events() []models.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()
	events := make([]models.EventType, 0, len(p.notifications))
	for _, n := range p.notifications {
		events = append(events, n.Event)
	}
	return events
}

func (p *recordingPublisher) last(event models.EventType) *models.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := len(p.notifications) - 1; i >= 0; i-- {
		if p.notifications[i].Event == event {
			return p.notifications[i]
		}
	}
	return nil
}

func (p *recordingPublisher) all(event models.EventType) []*models.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	var found []*models.Notification
	for _, n := range p.notifications {
		if n.Event == event {
			found = append(found, n)
		}
	}
	return found
}

type GameServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockClock       *clockMocks.MockClock
	mockIDGen       *idgenMocks.MockGenerator
	mockResultsRepo *resultsMocks.MockRepository
	publisher       *recordingPublisher
	roomRepo        roomRepo.Repository
	gameService     Service
	ctx             context.Context

	// Test data
	testTime time.Time
	alice    string
	bob      string
	carol    string
	dave     string
	erin     string
}

func (s *GameServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockIDGen = idgenMocks.NewMockGenerator(s.mockCtrl)
	s.mockResultsRepo = resultsMocks.NewMockRepository(s.mockCtrl)
	s.publisher = &recordingPublisher{}
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.alice = "ws:alice"
	s.bob = "ws:bob"
	s.carol = "ws:carol"
	s.dave = "ws:dave"
	s.erin = "ws:erin"

	// Set up the clock mock to return our test time
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	repo, err := roomRepo.NewMemory(&roomRepo.Config{
		IDGenerator: s.mockIDGen,
		Clock:       s.mockClock,
	})
	s.Require().NoError(err)
	s.roomRepo = repo

	msgService, err := messaging.NewService(&messaging.ServiceConfig{Source: identitySource{}})
	s.Require().NoError(err)

	svc, err := New(&Config{
		RoomRepo:    s.roomRepo,
		ResultsRepo: s.mockResultsRepo,
		Publisher:   s.publisher,
		Messaging:   msgService,
		Shuffler:    identitySource{},
		Clock:       s.mockClock,
		IDGenerator: s.mockIDGen,
	})
	s.Require().NoError(err)
	s.gameService = svc
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestGameServiceSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

// createRoom creates a room hosted by alice and seats the given guests
func (s *GameServiceTestSuite) createRoom(code string, capacity, rounds int, adjudication models.Adjudication, guests ...string) string {
	s.mockIDGen.EXPECT().NewRoomCode().Return(code)

	output, err := s.gameService.CreateRoom(s.ctx, &CreateRoomInput{
		ConnectionID: s.alice,
		DisplayName:  "Alice",
		Capacity:     capacity,
		TotalRounds:  rounds,
		Adjudication: adjudication,
	})
	s.Require().NoError(err)
	s.Require().Equal(code, output.RoomCode)

	names := map[string]string{s.bob: "Bob", s.carol: "Carol", s.dave: "Dave", s.erin: "Erin"}
	for _, guest := range guests {
		_, err := s.gameService.JoinRoom(s.ctx, &JoinRoomInput{
			ConnectionID: guest,
			RoomCode:     code,
			DisplayName:  names[guest],
		})
		s.Require().NoError(err)
	}
	return code
}

func (s *GameServiceTestSuite) room(code string) *RoomSnapshot {
	output, err := s.gameService.GetRoom(s.ctx, &GetRoomInput{RoomCode: code})
	s.Require().NoError(err)
	return output.Room
}

func (s *GameServiceTestSuite) liveRoom(code string) *models.Room {
	room, err := s.roomRepo.GetRoom(s.ctx, &roomRepo.GetRoomInput{Code: code})
	s.Require().NoError(err)
	return room
}

func (s *GameServiceTestSuite) scoreOf(snapshot *RoomSnapshot, playerID string) int {
	for _, standing := range snapshot.Scores {
		if standing.PlayerID == playerID {
			return standing.TotalScore
		}
	}
	s.FailNow("no score for " + playerID)
	return 0
}

func (s *GameServiceTestSuite) hostCount(snapshot *RoomSnapshot) int {
	count := 0
	for _, p := range snapshot.Players {
		if p.IsHost {
			count++
		}
	}
	return count
}

func (s *GameServiceTestSuite) TestCreateRoom() {
	code := s.createRoom("ABC234", 4, 3, "")

	snapshot := s.room(code)
	s.Equal(4, snapshot.Capacity)
	s.Equal(3, snapshot.TotalRounds)
	s.Equal(1, snapshot.CurrentRound)
	s.Equal(models.GameStateWaiting, snapshot.State)
	s.Equal(models.AdjudicationImmediate, snapshot.Adjudication)
	s.Require().Len(snapshot.Players, 1)
	s.True(snapshot.Players[0].IsHost)
	s.Equal("Alice", snapshot.Players[0].Name)

	created := s.publisher.last(models.EventRoomCreated)
	s.Require().NotNil(created)
	s.True(created.Private)
	s.Equal([]string{s.alice}, created.To)
	s.Equal(code, created.Data.(models.RoomInfo).RoomCode)
}

func (s *GameServiceTestSuite) TestCreateRoomValidation() {
	testCases := []struct {
		name  string
		input *CreateRoomInput
		err   error
	}{
		{"nil input", nil, ErrBadRequest},
		{"blank name", &CreateRoomInput{ConnectionID: s.alice, DisplayName: "   ", Capacity: 3, TotalRounds: 1}, ErrInvalidName},
		{"long name", &CreateRoomInput{ConnectionID: s.alice, DisplayName: "abcdefghijklmnopqrstu", Capacity: 3, TotalRounds: 1}, ErrInvalidName},
		{"capacity too small", &CreateRoomInput{ConnectionID: s.alice, DisplayName: "Alice", Capacity: 2, TotalRounds: 1}, ErrInvalidSettings},
		{"capacity too large", &CreateRoomInput{ConnectionID: s.alice, DisplayName: "Alice", Capacity: 6, TotalRounds: 1}, ErrInvalidSettings},
		{"zero rounds", &CreateRoomInput{ConnectionID: s.alice, DisplayName: "Alice", Capacity: 3, TotalRounds: 0}, ErrInvalidSettings},
		{"too many rounds", &CreateRoomInput{ConnectionID: s.alice, DisplayName: "Alice", Capacity: 3, TotalRounds: 16}, ErrInvalidSettings},
		{"unknown adjudication", &CreateRoomInput{ConnectionID: s.alice, DisplayName: "Alice", Capacity: 3, TotalRounds: 1, Adjudication: "vote"}, ErrInvalidSettings},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := s.gameService.CreateRoom(s.ctx, tc.input)
			s.ErrorIs(err, tc.err)
		})
	}

	stats, err := s.gameService.GetStats(s.ctx, &GetStatsInput{})
	s.Require().NoError(err)
	s.Equal(0, stats.Rooms)
}

func (s *GameServiceTestSuite) TestCreateRoomWhileSeated() {
	s.createRoom("ABC234", 3, 1, "")

	_, err := s.gameService.CreateRoom(s.ctx, &CreateRoomInput{
		ConnectionID: s.alice,
		DisplayName:  "Alice",
		Capacity:     3,
		TotalRounds:  1,
	})
	s.ErrorIs(err, ErrAlreadyInRoom)
}

func (s *GameServiceTestSuite) TestJoinRoom() {
	code := s.createRoom("ABC234", 3, 1, "", s.bob)

	snapshot := s.room(code)
	s.Require().Len(snapshot.Players, 2)
	s.False(snapshot.Players[1].IsHost)
	s.Equal(1, s.hostCount(snapshot))

	joined := s.publisher.last(models.EventPlayerJoined)
	s.Require().NotNil(joined)
	s.ElementsMatch([]string{s.alice, s.bob}, joined.To)
	update := joined.Data.(models.MembershipUpdate)
	s.Equal("Bob", update.PlayerName)
	s.Equal(2, update.PlayerCount)
}

func (s *GameServiceTestSuite) TestJoinRoomCaseInsensitive() {
	s.createRoom("ABC234", 3, 1, "")

	output, err := s.gameService.JoinRoom(s.ctx, &JoinRoomInput{
		ConnectionID: s.bob,
		RoomCode:     " abc234 ",
		DisplayName:  "Bob",
	})
	s.Require().NoError(err)
	s.Equal("ABC234", output.RoomCode)
}

func (s *GameServiceTestSuite) TestJoinRoomErrors() {
	code := s.createRoom("ABC234", 3, 1, "", s.bob, s.carol)

	_, err := s.gameService.JoinRoom(s.ctx, &JoinRoomInput{ConnectionID: s.dave, RoomCode: "NOPE22", DisplayName: "Dave"})
	s.ErrorIs(err, ErrRoomNotFound)

	_, err = s.gameService.JoinRoom(s.ctx, &JoinRoomInput{ConnectionID: s.dave, RoomCode: code, DisplayName: "Dave"})
	s.ErrorIs(err, ErrRoomFull)

	_, err = s.gameService.JoinRoom(s.ctx, &JoinRoomInput{ConnectionID: s.bob, RoomCode: code, DisplayName: "Bob"})
	s.ErrorIs(err, ErrAlreadyInRoom)

	// a rejected join leaves no location behind
	stats, err := s.gameService.GetStats(s.ctx, &GetStatsInput{})
	s.Require().NoError(err)
	s.Equal(3, stats.Players)
}

func (s *GameServiceTestSuite) TestJoinRoomGameInProgress() {
	code := s.createRoom("ABC234", 4, 1, "", s.bob, s.carol)
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	_, err = s.gameService.JoinRoom(s.ctx, &JoinRoomInput{ConnectionID: s.dave, RoomCode: code, DisplayName: "Dave"})
	s.ErrorIs(err, ErrGameInProgress)
}

func (s *GameServiceTestSuite) TestStartGameErrors() {
	s.createRoom("ABC234", 3, 1, "", s.bob)

	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.bob})
	s.ErrorIs(err, ErrNotHost)

	_, err = s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.ErrorIs(err, ErrInsufficientPlayers)

	_, err = s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.carol})
	s.ErrorIs(err, ErrNotInRoom)
}

func (s *GameServiceTestSuite) TestStartGameDealsEveryRoleOnce() {
	testCases := []struct {
		code   string
		guests []string
	}{
		{"THREE3", []string{s.bob, s.carol}},
		{"FOUR44", []string{s.bob, s.carol, s.dave}},
		{"FIVE55", []string{s.bob, s.carol, s.dave, s.erin}},
	}

	for _, tc := range testCases {
		capacity := len(tc.guests) + 1
		code := s.createRoom(tc.code, capacity, 1, "", tc.guests...)
		s.publisher.reset()

		_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
		s.Require().NoError(err)

		expected, err := catalog.RolesFor(capacity)
		s.Require().NoError(err)

		dealt := make([]catalog.Role, 0, capacity)
		for _, p := range s.liveRoom(code).Players {
			dealt = append(dealt, p.Role)
		}
		s.ElementsMatch(expected, dealt)

		// each player hears only their own role
		assignments := s.publisher.all(models.EventRoleAssigned)
		s.Len(assignments, capacity)
		for _, n := range assignments {
			s.True(n.Private)
			s.Len(n.To, 1)
		}

		started := s.publisher.last(models.EventGameStarted)
		s.Require().NotNil(started)
		for _, p := range started.Data.(models.RoundInfo).Players {
			s.Equal(catalog.RoleNone, p.Role, "roles stay hidden in broadcasts")
		}

		// free every seat before the next case
		for _, id := range append([]string{s.alice}, tc.guests...) {
			_, err := s.gameService.LeaveRoom(s.ctx, &LeaveRoomInput{ConnectionID: id})
			s.Require().NoError(err)
		}
	}
}

func (s *GameServiceTestSuite) TestStartGameShortHandedDealsSeatedRoleSet() {
	code := s.createRoom("ABC234", 5, 1, "", s.bob, s.carol)

	output, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	s.Equal(5, output.Capacity)
	s.Equal(3, output.RoleSetSize)
	s.Equal(5, s.room(code).Capacity)

	room := s.liveRoom(code)
	s.Equal(catalog.RoleMantri, room.Players[0].Role)
	s.Equal(catalog.RoleChor, room.Players[1].Role)
	s.Equal(catalog.RoleSipahi, room.Players[2].Role)

	started := s.publisher.last(models.EventGameStarted)
	s.Require().NotNil(started)
	s.Equal(catalog.RoleSipahi, started.Data.(models.RoundInfo).DecisionMaker)
}

func (s *GameServiceTestSuite) TestShortHandedDecisionMakerIsFromDealtSet() {
	s.createRoom("ABC234", 5, 1, models.AdjudicationDecisionMaker, s.bob, s.carol)
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	// alice mantri, bob chor, carol sipahi
	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.bob})
	s.Require().NoError(err)

	pending := s.publisher.last(models.EventGuessPending)
	s.Require().NotNil(pending)
	s.Equal(catalog.RoleSipahi, pending.Data.(models.GuessPendingInfo).DecisionMaker)

	decision, err := s.gameService.ConfirmDecision(s.ctx, &ConfirmDecisionInput{ConnectionID: s.carol, IsCorrect: true})
	s.Require().NoError(err)
	s.True(decision.MatchedTruth)
}

func (s *GameServiceTestSuite) TestPlayAgainKeepsCapacityForNewPlayers() {
	code := s.createRoom("ABC234", 5, 1, "", s.bob, s.carol)

	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.bob})
	s.Require().NoError(err)

	s.mockIDGen.EXPECT().NewID().Return("result-1")
	s.mockResultsRepo.EXPECT().SaveResult(gomock.Any(), gomock.Any()).Return(nil)
	_, err = s.gameService.AdvanceRound(s.ctx, &AdvanceRoundInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	_, err = s.gameService.PlayAgain(s.ctx, &PlayAgainInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	s.Equal(5, s.room(code).Capacity)
	s.Zero(s.liveRoom(code).RoleSetSize)

	_, err = s.gameService.JoinRoom(s.ctx, &JoinRoomInput{ConnectionID: s.dave, RoomCode: code, DisplayName: "Dave"})
	s.Require().NoError(err)

	output, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	s.Equal(4, output.RoleSetSize)

	started := s.publisher.last(models.EventGameStarted)
	s.Require().NotNil(started)
	s.Equal(catalog.RoleRaja, started.Data.(models.RoundInfo).DecisionMaker)
}

func (s *GameServiceTestSuite) TestStartGameAwardsBaseScores() {
	code := s.createRoom("ABC234", 4, 2, "", s.bob, s.carol, s.dave)
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	snapshot := s.room(code)
	s.Equal(1000, s.scoreOf(snapshot, s.alice))
	s.Equal(800, s.scoreOf(snapshot, s.bob))
	s.Equal(0, s.scoreOf(snapshot, s.carol))
	s.Equal(500, s.scoreOf(snapshot, s.dave))
}

func (s *GameServiceTestSuite) TestRevealRole() {
	s.createRoom("ABC234", 3, 1, "", s.bob, s.carol)

	_, err := s.gameService.RevealRole(s.ctx, &RevealRoleInput{ConnectionID: s.bob})
	s.ErrorIs(err, ErrInvalidGameState)

	_, err = s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	for i := 0; i < 2; i++ {
		output, err := s.gameService.RevealRole(s.ctx, &RevealRoleInput{ConnectionID: s.bob})
		s.Require().NoError(err)
		s.Equal(catalog.RoleChor, output.Role)
	}

	reveal := s.publisher.last(models.EventRoleRevealed)
	s.Require().NotNil(reveal)
	data := reveal.Data.(models.RoleReveal)
	s.Equal("Bob", data.PlayerName)
	s.Equal(catalog.RoleChor, data.Role)
	s.Equal(catalog.RoleChor, data.Players[1].Role)
	s.Equal(catalog.RoleNone, data.Players[0].Role)
}

func (s *GameServiceTestSuite) TestCorrectGuess() {
	code := s.createRoom("ABC234", 3, 1, "", s.bob, s.carol)
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	output, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.bob})
	s.Require().NoError(err)
	s.False(output.Pending)
	s.True(output.Correct)

	snapshot := s.room(code)
	s.Equal(models.GameStateRoundEnd, snapshot.State)
	s.Equal(1000, s.scoreOf(snapshot, s.alice))
	s.Equal(-200, s.scoreOf(snapshot, s.bob))
	s.Equal(500, s.scoreOf(snapshot, s.carol))
	for _, p := range snapshot.Players {
		s.True(p.RoleRevealed)
	}

	result := s.publisher.last(models.EventGuessResult)
	s.Require().NotNil(result)
	outcome := result.Data.(models.GuessOutcome)
	s.True(outcome.WasCorrect)
	s.Equal("Bob", outcome.ActualHolderName)
	s.Equal("🎉 Alice correctly guessed Bob as the Chor!", outcome.Message)
	s.Len(outcome.RevealedRoles, 3)
	s.Equal(s.alice, outcome.Scores[0].PlayerID)
}

func (s *GameServiceTestSuite) TestIncorrectGuessSwapsTotals() {
	code := s.createRoom("ABC234", 3, 1, "", s.bob, s.carol)
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	before := s.room(code)
	s.Equal(800, s.scoreOf(before, s.alice))
	s.Equal(0, s.scoreOf(before, s.bob))

	output, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.carol})
	s.Require().NoError(err)
	s.False(output.Correct)

	after := s.room(code)
	s.Equal(0, s.scoreOf(after, s.alice))
	s.Equal(800, s.scoreOf(after, s.bob))
	s.Equal(500, s.scoreOf(after, s.carol))

	room := s.liveRoom(code)
	for _, record := range room.Scores {
		s.True(scoring.Consistent(record))
	}
}

func (s *GameServiceTestSuite) TestSubmitGuessErrors() {
	s.createRoom("ABC234", 3, 1, "", s.bob, s.carol)

	_, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.bob})
	s.ErrorIs(err, ErrInvalidGameState)

	_, err = s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.bob, TargetID: s.carol})
	s.ErrorIs(err, ErrWrongRole)

	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.alice})
	s.ErrorIs(err, ErrInvalidTarget)

	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: "ws:stranger"})
	s.ErrorIs(err, ErrInvalidTarget)

	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.bob})
	s.Require().NoError(err)

	// the round is over
	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.bob})
	s.ErrorIs(err, ErrInvalidGameState)
}

func (s *GameServiceTestSuite) TestConfirmDecisionWithoutPendingGuess() {
	s.createRoom("ABC234", 3, 1, "", s.bob, s.carol)
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	// carol is the sipahi, the decision maker in a 3 player room
	_, err = s.gameService.ConfirmDecision(s.ctx, &ConfirmDecisionInput{ConnectionID: s.carol, IsCorrect: true})
	s.ErrorIs(err, ErrNoPendingGuess)

	_, err = s.gameService.ConfirmDecision(s.ctx, &ConfirmDecisionInput{ConnectionID: s.bob, IsCorrect: true})
	s.ErrorIs(err, ErrWrongRole)
}

func (s *GameServiceTestSuite) TestDecisionMakerAdjudication() {
	code := s.createRoom("ABC234", 4, 1, models.AdjudicationDecisionMaker, s.bob, s.carol, s.dave)
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	// alice raja, bob mantri, carol chor, dave sipahi
	output, err := s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.bob, TargetID: s.dave})
	s.Require().NoError(err)
	s.True(output.Pending)
	s.Equal(models.GameStatePlaying, s.room(code).State)

	pending := s.publisher.last(models.EventGuessPending)
	s.Require().NotNil(pending)
	s.Equal(catalog.RoleRaja, pending.Data.(models.GuessPendingInfo).DecisionMaker)

	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.bob, TargetID: s.carol})
	s.ErrorIs(err, ErrGuessPending)

	_, err = s.gameService.ConfirmDecision(s.ctx, &ConfirmDecisionInput{ConnectionID: s.dave, IsCorrect: true})
	s.ErrorIs(err, ErrWrongRole)

	// the raja rules the wrong guess correct; scoring follows the ruling
	decision, err := s.gameService.ConfirmDecision(s.ctx, &ConfirmDecisionInput{ConnectionID: s.alice, IsCorrect: true})
	s.Require().NoError(err)
	s.False(decision.MatchedTruth)

	snapshot := s.room(code)
	s.Equal(models.GameStateRoundEnd, snapshot.State)
	s.Equal(1000, s.scoreOf(snapshot, s.bob))
	s.Equal(-200, s.scoreOf(snapshot, s.carol))
	s.Equal(500, s.scoreOf(snapshot, s.dave))

	result := s.publisher.last(models.EventDecisionResult)
	s.Require().NotNil(result)
	outcome := result.Data.(models.GuessOutcome)
	s.False(outcome.WasCorrect)
	s.Require().NotNil(outcome.Decision)
	s.True(*outcome.Decision)
	s.Equal("Alice", outcome.DecidedBy)

	_, err = s.gameService.ConfirmDecision(s.ctx, &ConfirmDecisionInput{ConnectionID: s.alice, IsCorrect: true})
	s.ErrorIs(err, ErrNoPendingGuess)
}

func (s *GameServiceTestSuite) TestAdvanceRoundOutsideRoundEnd() {
	code := s.createRoom("ABC234", 3, 2, "", s.bob, s.carol)
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	_, err = s.gameService.AdvanceRound(s.ctx, &AdvanceRoundInput{ConnectionID: s.alice})
	s.ErrorIs(err, ErrRoundNotComplete)
	s.Equal(1, s.room(code).CurrentRound)

	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.bob})
	s.Require().NoError(err)

	_, err = s.gameService.AdvanceRound(s.ctx, &AdvanceRoundInput{ConnectionID: s.bob})
	s.ErrorIs(err, ErrNotHost)
	s.Equal(1, s.room(code).CurrentRound)
}

func (s *GameServiceTestSuite) TestAdvanceRoundAccumulatesScores() {
	code := s.createRoom("ABC234", 3, 2, "", s.bob, s.carol)
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.bob})
	s.Require().NoError(err)

	output, err := s.gameService.AdvanceRound(s.ctx, &AdvanceRoundInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	s.False(output.GameOver)
	s.Equal(2, output.Round)

	snapshot := s.room(code)
	s.Equal(models.GameStatePlaying, snapshot.State)
	s.Equal(1800, s.scoreOf(snapshot, s.alice))
	s.Equal(-200, s.scoreOf(snapshot, s.bob))
	s.Equal(1000, s.scoreOf(snapshot, s.carol))
	for _, p := range snapshot.Players {
		s.False(p.RoleRevealed)
	}

	next := s.publisher.last(models.EventNextRound)
	s.Require().NotNil(next)
	s.Equal(2, next.Data.(models.RoundInfo).CurrentRound)
	s.Equal("Final round! Round 2 of 2. Check your role.", next.Data.(models.RoundInfo).Message)
}

func (s *GameServiceTestSuite) TestThreePlayerOneRoundGame() {
	code := s.createRoom("ABC234", 3, 1, "", s.bob, s.carol)

	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.bob})
	s.Require().NoError(err)

	s.mockIDGen.EXPECT().NewID().Return("result-1")
	s.mockResultsRepo.EXPECT().
		SaveResult(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *resultsRepo.SaveResultInput) error {
			s.Equal("result-1", input.Result.ID)
			s.Equal(code, input.Result.RoomCode)
			s.Equal(s.testTime, input.Result.EndedAt)
			s.Len(input.Result.Standings, 3)
			return nil
		})

	output, err := s.gameService.AdvanceRound(s.ctx, &AdvanceRoundInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	s.True(output.GameOver)
	s.Equal(2, output.Round)
	s.Require().NotNil(output.Result)

	snapshot := s.room(code)
	s.Equal(models.GameStateGameEnd, snapshot.State)
	s.Equal(2, snapshot.CurrentRound)

	ended := s.publisher.last(models.EventGameEnded)
	s.Require().NotNil(ended)
	end := ended.Data.(models.GameEnd)
	s.Require().Len(end.FinalScores, 3)
	s.Equal("Alice", end.FinalScores[0].PlayerName)
	s.Equal(1000, end.FinalScores[0].TotalScore)
	s.Equal("Carol", end.FinalScores[1].PlayerName)
	s.Equal(500, end.FinalScores[1].TotalScore)
	s.Equal("Bob", end.FinalScores[2].PlayerName)
	s.Equal(-200, end.FinalScores[2].TotalScore)
	s.Require().NotNil(end.Winner)
	s.Equal("Alice", end.Winner.PlayerName)

	s.Equal([]models.EventType{
		models.EventRoomCreated,
		models.EventPlayerJoined,
		models.EventRoomJoined,
		models.EventPlayerJoined,
		models.EventRoomJoined,
		models.EventPlayerJoined,
		models.EventRoleAssigned,
		models.EventRoleAssigned,
		models.EventRoleAssigned,
		models.EventGameStarted,
		models.EventGuessResult,
		models.EventGameEnded,
	}, s.publisher.events())
}

func (s *GameServiceTestSuite) TestSaveResultFailureDoesNotFailAdvance() {
	s.createRoom("ABC234", 3, 1, "", s.bob, s.carol)
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.bob})
	s.Require().NoError(err)

	s.mockIDGen.EXPECT().NewID().Return("result-1")
	s.mockResultsRepo.EXPECT().SaveResult(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	output, err := s.gameService.AdvanceRound(s.ctx, &AdvanceRoundInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	s.True(output.GameOver)
}

func (s *GameServiceTestSuite) TestPlayAgain() {
	code := s.createRoom("ABC234", 3, 1, "", s.bob, s.carol)

	_, err := s.gameService.PlayAgain(s.ctx, &PlayAgainInput{ConnectionID: s.alice})
	s.ErrorIs(err, ErrInvalidGameState)

	_, err = s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.bob})
	s.Require().NoError(err)

	s.mockIDGen.EXPECT().NewID().Return("result-1")
	s.mockResultsRepo.EXPECT().SaveResult(gomock.Any(), gomock.Any()).Return(nil)
	_, err = s.gameService.AdvanceRound(s.ctx, &AdvanceRoundInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	_, err = s.gameService.PlayAgain(s.ctx, &PlayAgainInput{ConnectionID: s.bob})
	s.ErrorIs(err, ErrNotHost)

	_, err = s.gameService.PlayAgain(s.ctx, &PlayAgainInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	snapshot := s.room(code)
	s.Equal(models.GameStateWaiting, snapshot.State)
	s.Equal(1, snapshot.CurrentRound)
	for _, standing := range snapshot.Scores {
		s.Equal(0, standing.TotalScore)
	}
	for _, p := range s.liveRoom(code).Players {
		s.Equal(catalog.RoleNone, p.Role)
		s.False(p.RoleRevealed)
	}
	s.NotNil(s.publisher.last(models.EventPlayAgainReset))

	// the room can be played again
	_, err = s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.NoError(err)
}

func (s *GameServiceTestSuite) TestUpdateRoomSettings() {
	code := s.createRoom("ABC234", 5, 3, "", s.bob, s.carol, s.dave)

	three, seven := 3, 7
	output, err := s.gameService.UpdateRoomSettings(s.ctx, &UpdateRoomSettingsInput{
		ConnectionID: s.alice,
		Capacity:     &three,
		TotalRounds:  &seven,
	})
	s.Require().NoError(err)
	s.False(output.CapacityApplied, "capacity below the player count is ignored")
	s.True(output.TotalRoundsApplied)
	s.Equal(5, output.Capacity)
	s.Equal(7, output.TotalRounds)

	snapshot := s.room(code)
	s.Equal(5, snapshot.Capacity)
	s.Equal(7, snapshot.TotalRounds)

	four, zero := 4, 0
	output, err = s.gameService.UpdateRoomSettings(s.ctx, &UpdateRoomSettingsInput{
		ConnectionID: s.alice,
		Capacity:     &four,
		TotalRounds:  &zero,
	})
	s.Require().NoError(err)
	s.True(output.CapacityApplied)
	s.False(output.TotalRoundsApplied)
	s.Equal(4, s.room(code).Capacity)
	s.Equal(7, s.room(code).TotalRounds)

	update := s.publisher.last(models.EventSettingsUpdated)
	s.Require().NotNil(update)
	s.Len(update.To, 4)

	_, err = s.gameService.UpdateRoomSettings(s.ctx, &UpdateRoomSettingsInput{ConnectionID: s.bob, Capacity: &four})
	s.ErrorIs(err, ErrNotHost)

	_, err = s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	_, err = s.gameService.UpdateRoomSettings(s.ctx, &UpdateRoomSettingsInput{ConnectionID: s.alice, TotalRounds: &seven})
	s.ErrorIs(err, ErrGameInProgress)
}

func (s *GameServiceTestSuite) TestHostSuccession() {
	code := s.createRoom("ABC234", 4, 1, "", s.bob, s.carol)

	output, err := s.gameService.LeaveRoom(s.ctx, &LeaveRoomInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	s.Equal(s.bob, output.NewHostID)
	s.False(output.RoomDeleted)

	snapshot := s.room(code)
	s.Require().Len(snapshot.Players, 2)
	s.True(snapshot.Players[0].IsHost)
	s.Equal("Bob", snapshot.Players[0].Name)
	s.Equal(1, s.hostCount(snapshot))

	left := s.publisher.last(models.EventPlayerLeft)
	s.Require().NotNil(left)
	update := left.Data.(models.MembershipUpdate)
	s.Require().NotNil(update.NewHost)
	s.Equal(s.bob, update.NewHost.PlayerID)
	s.ElementsMatch([]string{s.bob, s.carol}, left.To)

	// the old host is no longer seated anywhere
	_, err = s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.ErrorIs(err, ErrNotInRoom)
}

func (s *GameServiceTestSuite) TestLastLeaverDeletesRoom() {
	code := s.createRoom("ABC234", 3, 1, "", s.bob)

	_, err := s.gameService.LeaveRoom(s.ctx, &LeaveRoomInput{ConnectionID: s.bob})
	s.Require().NoError(err)

	output, err := s.gameService.LeaveRoom(s.ctx, &LeaveRoomInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	s.True(output.RoomDeleted)

	_, err = s.gameService.JoinRoom(s.ctx, &JoinRoomInput{ConnectionID: s.carol, RoomCode: code, DisplayName: "Carol"})
	s.ErrorIs(err, ErrRoomNotFound)

	stats, err := s.gameService.GetStats(s.ctx, &GetStatsInput{})
	s.Require().NoError(err)
	s.Equal(0, stats.Rooms)
	s.Equal(0, stats.Players)

	_, err = s.gameService.LeaveRoom(s.ctx, &LeaveRoomInput{ConnectionID: s.alice})
	s.ErrorIs(err, ErrNotInRoom)
}

func (s *GameServiceTestSuite) TestLeaveMidGameAbortsWhenTooFewRemain() {
	code := s.createRoom("ABC234", 3, 3, "", s.bob, s.carol)
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	output, err := s.gameService.LeaveRoom(s.ctx, &LeaveRoomInput{ConnectionID: s.carol})
	s.Require().NoError(err)
	s.True(output.GameAborted)

	snapshot := s.room(code)
	s.Equal(models.GameStateWaiting, snapshot.State)
	s.Equal(1, snapshot.CurrentRound)
	s.Len(snapshot.Scores, 2)
	for _, standing := range snapshot.Scores {
		s.Equal(0, standing.TotalScore)
	}
	s.NotNil(s.publisher.last(models.EventGameAborted))
}

func (s *GameServiceTestSuite) TestLeaveOfAccusedVoidsRound() {
	code := s.createRoom("ABC234", 4, 2, "", s.bob, s.carol, s.dave)
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	// carol holds the chor role
	output, err := s.gameService.LeaveRoom(s.ctx, &LeaveRoomInput{ConnectionID: s.carol})
	s.Require().NoError(err)
	s.True(output.RoundVoided)

	snapshot := s.room(code)
	s.Equal(models.GameStateRoundEnd, snapshot.State)
	s.Len(snapshot.Scores, 3)
	for _, p := range snapshot.Players {
		s.True(p.RoleRevealed)
	}
	s.NotNil(s.publisher.last(models.EventRoundVoided))

	// the next round is dealt for the three who remain
	_, err = s.gameService.AdvanceRound(s.ctx, &AdvanceRoundInput{ConnectionID: s.alice})
	s.Require().NoError(err)
	room := s.liveRoom(code)
	s.Equal(3, room.Capacity)
	s.Equal(models.GameStatePlaying, room.State)
}

func (s *GameServiceTestSuite) TestLeaveOfBystanderKeepsRound() {
	code := s.createRoom("ABC234", 4, 1, "", s.bob, s.carol, s.dave)
	_, err := s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	// dave holds the sipahi role, which plays no part in immediate resolution
	output, err := s.gameService.LeaveRoom(s.ctx, &LeaveRoomInput{ConnectionID: s.dave})
	s.Require().NoError(err)
	s.False(output.RoundVoided)
	s.Equal(models.GameStatePlaying, s.room(code).State)

	_, err = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.bob, TargetID: s.carol})
	s.NoError(err)
}

func (s *GameServiceTestSuite) TestSendChat() {
	s.createRoom("ABC234", 3, 1, "", s.bob)

	output, err := s.gameService.SendChat(s.ctx, &SendChatInput{ConnectionID: s.bob, Message: "  <b>hi</b>  "})
	s.Require().NoError(err)
	s.Equal("&lt;b&gt;hi&lt;/b&gt;", output.Message)

	chat := s.publisher.last(models.EventChatMessage)
	s.Require().NotNil(chat)
	msg := chat.Data.(models.ChatMessage)
	s.Equal("Bob", msg.SenderName)
	s.Equal(s.testTime, msg.Timestamp)
	s.ElementsMatch([]string{s.alice, s.bob}, chat.To)

	_, err = s.gameService.SendChat(s.ctx, &SendChatInput{ConnectionID: s.bob, Message: "   "})
	s.ErrorIs(err, ErrEmptyMessage)

	long := make([]rune, MaxChatLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = s.gameService.SendChat(s.ctx, &SendChatInput{ConnectionID: s.bob, Message: string(long)})
	s.ErrorIs(err, ErrMessageTooLong)

	_, err = s.gameService.SendChat(s.ctx, &SendChatInput{ConnectionID: s.carol, Message: "hello"})
	s.ErrorIs(err, ErrNotInRoom)
}

func (s *GameServiceTestSuite) TestReportError() {
	s.gameService.ReportError(s.ctx, &ReportErrorInput{ConnectionID: s.bob, Err: ErrRoomFull})

	n := s.publisher.last(models.EventError)
	s.Require().NotNil(n)
	s.True(n.Private)
	s.Equal([]string{s.bob}, n.To)
	s.Equal(models.ErrorInfo{Kind: "RoomFull", Message: "room is full"}, n.Data)

	s.gameService.ReportError(s.ctx, &ReportErrorInput{ConnectionID: s.bob, Err: errors.New("boom")})
	n = s.publisher.last(models.EventError)
	s.Equal(models.ErrorInfo{Kind: "Internal", Message: "internal server error"}, n.Data)
}

func (s *GameServiceTestSuite) TestGetRoomResults() {
	s.mockResultsRepo.EXPECT().
		ListResultsForRoom(gomock.Any(), &resultsRepo.ListResultsForRoomInput{RoomCode: "ABC234", Limit: 5}).
		Return(&resultsRepo.ListResultsForRoomOutput{
			Results: []*models.GameResult{{ID: "result-1", RoomCode: "ABC234"}},
		}, nil)

	output, err := s.gameService.GetRoomResults(s.ctx, &GetRoomResultsInput{RoomCode: "ABC234", Limit: 5})
	s.Require().NoError(err)
	s.Require().Len(output.Results, 1)
	s.Equal("result-1", output.Results[0].ID)

	_, err = s.gameService.GetRoomResults(s.ctx, &GetRoomResultsInput{})
	s.ErrorIs(err, ErrBadRequest)
}

func (s *GameServiceTestSuite) TestExactlyOneHostThroughChurn() {
	code := s.createRoom("ABC234", 5, 1, "", s.bob, s.carol, s.dave)

	steps := []struct {
		leave string
		join  string
	}{
		{leave: s.alice},
		{join: s.erin},
		{leave: s.bob},
		{leave: s.erin},
		{join: s.alice},
		{leave: s.carol},
	}

	names := map[string]string{s.alice: "Alice", s.erin: "Erin"}
	for _, step := range steps {
		if step.leave != "" {
			_, err := s.gameService.LeaveRoom(s.ctx, &LeaveRoomInput{ConnectionID: step.leave})
			s.Require().NoError(err)
		}
		if step.join != "" {
			_, err := s.gameService.JoinRoom(s.ctx, &JoinRoomInput{ConnectionID: step.join, RoomCode: code, DisplayName: names[step.join]})
			s.Require().NoError(err)
		}
		s.Equal(1, s.hostCount(s.room(code)))
	}
}

func (s *GameServiceTestSuite) TestConcurrentIntentsKeepRoomConsistent() {
	code := s.createRoom("ABC234", 5, 1, "", s.bob, s.carol, s.dave)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = s.gameService.SendChat(s.ctx, &SendChatInput{ConnectionID: s.bob, Message: "hi"})
		}()
		go func() {
			defer wg.Done()
			four := 4
			_, _ = s.gameService.UpdateRoomSettings(s.ctx, &UpdateRoomSettingsInput{ConnectionID: s.alice, Capacity: &four})
		}()
	}
	wg.Wait()

	snapshot := s.room(code)
	s.Equal(4, snapshot.Capacity)
	s.Len(s.publisher.all(models.EventChatMessage), 20)
}

// gatedPublisher holds its first publish after arm until release is closed
type gatedPublisher struct {
	recordingPublisher
	armed   atomic.Bool
	entered chan struct{}
	release chan struct{}
}

func newGatedPublisher() *gatedPublisher {
	return &gatedPublisher{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (p *gatedPublisher) Publish(ctx context.Context, notifications []*models.Notification) {
	if p.armed.CompareAndSwap(true, false) {
		close(p.entered)
		<-p.release
	}
	p.recordingPublisher.Publish(ctx, notifications)
}

func (s *GameServiceTestSuite) TestNotificationsFollowIntentOrder() {
	publisher := newGatedPublisher()
	msgService, err := messaging.NewService(&messaging.ServiceConfig{Source: identitySource{}})
	s.Require().NoError(err)
	svc, err := New(&Config{
		RoomRepo:    s.roomRepo,
		Publisher:   publisher,
		Messaging:   msgService,
		Shuffler:    identitySource{},
		Clock:       s.mockClock,
		IDGenerator: s.mockIDGen,
	})
	s.Require().NoError(err)
	s.gameService = svc

	s.createRoom("ABC234", 3, 2, "", s.bob, s.carol)
	_, err = s.gameService.StartGame(s.ctx, &StartGameInput{ConnectionID: s.alice})
	s.Require().NoError(err)

	publisher.armed.Store(true)

	var wg sync.WaitGroup
	var guessErr, advanceErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, guessErr = s.gameService.SubmitGuess(s.ctx, &SubmitGuessInput{ConnectionID: s.alice, TargetID: s.bob})
	}()

	select {
	case <-publisher.entered:
	case <-time.After(time.Second):
		s.FailNow("guess result was never published")
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, advanceErr = s.gameService.AdvanceRound(s.ctx, &AdvanceRoundInput{ConnectionID: s.alice})
	}()

	// give the advance a chance to overtake the held publish
	time.Sleep(50 * time.Millisecond)
	close(publisher.release)
	wg.Wait()

	s.Require().NoError(guessErr)
	s.Require().NoError(advanceErr)

	events := publisher.events()
	guessAt, nextAt := -1, -1
	for i, event := range events {
		switch event {
		case models.EventGuessResult:
			guessAt = i
		case models.EventNextRound:
			nextAt = i
		}
	}
	s.Require().NotEqual(-1, guessAt)
	s.Require().NotEqual(-1, nextAt)
	s.Less(guessAt, nextAt, "events: %v", events)
}

func TestServicePanicIsRecovered(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockIDGen := idgenMocks.NewMockGenerator(ctrl)
	mockMessaging := messagingMocks.NewMockService(ctrl)
	mockClock := clockMocks.NewMockClock(ctrl)
	publisher := &recordingPublisher{}

	repo, err := roomRepo.NewMemory(&roomRepo.Config{IDGenerator: mockIDGen, Clock: mockClock})
	if err != nil {
		t.Fatal(err)
	}

	svc, err := New(&Config{
		RoomRepo:    repo,
		Publisher:   publisher,
		Messaging:   mockMessaging,
		Shuffler:    identitySource{},
		Clock:       mockClock,
		IDGenerator: mockIDGen,
	})
	if err != nil {
		t.Fatal(err)
	}

	mockClock.EXPECT().Now().Return(time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)).AnyTimes()
	mockIDGen.EXPECT().NewRoomCode().Return("ABC234")
	mockMessaging.EXPECT().GetJoinRoomMessage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, input *messaging.GetJoinRoomMessageInput) (*messaging.GetJoinRoomMessageOutput, error) {
			panic("template exploded")
		})

	_, err = svc.CreateRoom(context.Background(), &CreateRoomInput{
		ConnectionID: "ws:alice",
		DisplayName:  "Alice",
		Capacity:     3,
		TotalRounds:  1,
	})
	if !errors.Is(err, ErrInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}

	stats, err := svc.GetStats(context.Background(), &GetStatsInput{})
	if err != nil {
		t.Fatal(err)
	}
	if stats.Rooms != 0 || stats.Players != 0 {
		t.Fatalf("expected the failed room to be cleaned up, got %+v", stats)
	}
	if len(publisher.events()) != 0 {
		t.Fatalf("expected nothing published, got %v", publisher.events())
	}
}

func TestRegistryFailureIsInternal(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockRoomRepo := roomMocks.NewMockRepository(ctrl)
	mockClock := clockMocks.NewMockClock(ctrl)
	publisher := &recordingPublisher{}

	msgService, err := messaging.NewService(&messaging.ServiceConfig{Source: identitySource{}})
	if err != nil {
		t.Fatal(err)
	}

	svc, err := New(&Config{
		RoomRepo:    mockRoomRepo,
		Publisher:   publisher,
		Messaging:   msgService,
		Shuffler:    identitySource{},
		Clock:       mockClock,
		IDGenerator: idgenMocks.NewMockGenerator(ctrl),
	})
	if err != nil {
		t.Fatal(err)
	}

	mockRoomRepo.EXPECT().
		GetPlayerLocation(gomock.Any(), &roomRepo.GetPlayerLocationInput{ConnectionID: "ws:alice"}).
		Return(nil, errors.New("index corrupted"))

	_, err = svc.StartGame(context.Background(), &StartGameInput{ConnectionID: "ws:alice"})
	if err == nil {
		t.Fatal("expected error")
	}
	if KindOf(err) != KindInternal {
		t.Fatalf("expected Internal kind, got %s", KindOf(err))
	}
}

func TestNewValidation(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := roomMocks.NewMockRepository(ctrl)

	_, err := New(nil)
	if !errors.Is(err, ErrNilConfig) {
		t.Fatalf("expected ErrNilConfig, got %v", err)
	}

	_, err = New(&Config{})
	if !errors.Is(err, ErrNilRoomRepo) {
		t.Fatalf("expected ErrNilRoomRepo, got %v", err)
	}

	_, err = New(&Config{RoomRepo: repo})
	if !errors.Is(err, ErrNilPublisher) {
		t.Fatalf("expected ErrNilPublisher, got %v", err)
	}

	_, err = New(&Config{RoomRepo: repo, Publisher: &recordingPublisher{}})
	if !errors.Is(err, ErrNilShuffler) {
		t.Fatalf("expected ErrNilShuffler, got %v", err)
	}
}
