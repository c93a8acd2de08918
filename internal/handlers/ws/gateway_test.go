package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	idgenMocks "github.com/KirkDiggler/rajamantri/internal/common/idgen/mocks"
	"github.com/KirkDiggler/rajamantri/internal/models"
	"github.com/KirkDiggler/rajamantri/internal/services/game"
	gameMocks "github.com/KirkDiggler/rajamantri/internal/services/game/mocks"
)

const waitTimeout = 2 * time.Second

type inbound struct {
	Event    string          `json:"event"`
	RoomCode string          `json:"roomCode"`
	Data     json.RawMessage `json:"data"`
}

type GatewayTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockGameService *gameMocks.MockService
	mockIDGen       *idgenMocks.MockGenerator
	gateway         *Gateway
	server          *httptest.Server
	conn            *websocket.Conn
	left            chan struct{}
	connectionID    string
}

func (s *GatewayTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockGameService = gameMocks.NewMockService(s.mockCtrl)
	s.mockIDGen = idgenMocks.NewMockGenerator(s.mockCtrl)
	s.left = make(chan struct{})
	s.connectionID = "ws:conn-1"

	s.mockIDGen.EXPECT().NewID().Return("conn-1")
	s.mockGameService.EXPECT().
		LeaveRoom(gomock.Any(), &game.LeaveRoomInput{ConnectionID: s.connectionID}).
		DoAndReturn(func(ctx context.Context, input *game.LeaveRoomInput) (*game.LeaveRoomOutput, error) {
			close(s.left)
			return nil, game.ErrNotInRoom
		})

	gateway, err := New(&Config{
		GameService: s.mockGameService,
		IDGenerator: s.mockIDGen,
		RateLimit:   0.001,
		RateBurst:   2,
	})
	s.Require().NoError(err)
	s.gateway = gateway
	s.server = httptest.NewServer(gateway)

	url := "ws" + strings.TrimPrefix(s.server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	s.conn = conn

	hello := s.read()
	s.Require().Equal(eventConnected, hello.Event)
	var info connectedInfo
	s.Require().NoError(json.Unmarshal(hello.Data, &info))
	s.Require().Equal(s.connectionID, info.ConnectionID)
}

func (s *GatewayTestSuite) TearDownTest() {
	_ = s.conn.Close()
	s.wait(s.left, "leave on disconnect")
	s.server.Close()
	s.mockCtrl.Finish()
}

func TestGatewaySuite(t *testing.T) {
	suite.Run(t, new(GatewayTestSuite))
}

func (s *GatewayTestSuite) read() inbound {
	s.Require().NoError(s.conn.SetReadDeadline(time.Now().Add(waitTimeout)))
	var msg inbound
	s.Require().NoError(s.conn.ReadJSON(&msg))
	return msg
}

func (s *GatewayTestSuite) send(payload string) {
	s.Require().NoError(s.conn.WriteMessage(websocket.TextMessage, []byte(payload)))
}

func (s *GatewayTestSuite) wait(ch chan struct{}, what string) {
	select {
	case <-ch:
	case <-time.After(waitTimeout):
		s.FailNow("timed out waiting for " + what)
	}
}

func (s *GatewayTestSuite) TestCreateRoom() {
	called := make(chan struct{})
	s.mockGameService.EXPECT().
		CreateRoom(gomock.Any(), &game.CreateRoomInput{
			ConnectionID: s.connectionID,
			DisplayName:  "Alice",
			Capacity:     4,
			TotalRounds:  2,
			Adjudication: models.AdjudicationDecisionMaker,
		}).
		DoAndReturn(func(ctx context.Context, input *game.CreateRoomInput) (*game.CreateRoomOutput, error) {
			close(called)
			return &game.CreateRoomOutput{RoomCode: "ABC234"}, nil
		})

	s.send(`{"type":"createRoom","playerName":"Alice","maxPlayers":4,"totalRounds":2,"adjudication":"decision_maker"}`)
	s.wait(called, "create room")
}

func (s *GatewayTestSuite) TestCreateRoomDefaultsRounds() {
	called := make(chan struct{})
	s.mockGameService.EXPECT().
		CreateRoom(gomock.Any(), &game.CreateRoomInput{
			ConnectionID: s.connectionID,
			DisplayName:  "Alice",
			Capacity:     3,
			TotalRounds:  3,
		}).
		DoAndReturn(func(ctx context.Context, input *game.CreateRoomInput) (*game.CreateRoomOutput, error) {
			close(called)
			return &game.CreateRoomOutput{RoomCode: "ABC234"}, nil
		})

	s.send(`{"type":"createRoom","playerName":"Alice","maxPlayers":3}`)
	s.wait(called, "create room")
}

func (s *GatewayTestSuite) TestGuessAndDecision() {
	guessed := make(chan struct{})
	decided := make(chan struct{})

	gomock.InOrder(
		s.mockGameService.EXPECT().
			SubmitGuess(gomock.Any(), &game.SubmitGuessInput{ConnectionID: s.connectionID, TargetID: "ws:bob"}).
			DoAndReturn(func(ctx context.Context, input *game.SubmitGuessInput) (*game.SubmitGuessOutput, error) {
				close(guessed)
				return &game.SubmitGuessOutput{Pending: true}, nil
			}),
		s.mockGameService.EXPECT().
			ConfirmDecision(gomock.Any(), &game.ConfirmDecisionInput{ConnectionID: s.connectionID, IsCorrect: false}).
			DoAndReturn(func(ctx context.Context, input *game.ConfirmDecisionInput) (*game.ConfirmDecisionOutput, error) {
				close(decided)
				return &game.ConfirmDecisionOutput{}, nil
			}),
	)

	s.send(`{"type":"mantriGuess","guessedChorId":"ws:bob"}`)
	s.wait(guessed, "guess")
	s.send(`{"type":"rajaDecision","isCorrect":false}`)
	s.wait(decided, "decision")
}

func (s *GatewayTestSuite) TestMalformedFrameIsReported() {
	reported := make(chan struct{})
	s.mockGameService.EXPECT().
		ReportError(gomock.Any(), &game.ReportErrorInput{ConnectionID: s.connectionID, Err: game.ErrBadRequest}).
		Do(func(ctx context.Context, input *game.ReportErrorInput) {
			close(reported)
		})

	s.send(`not json`)
	s.wait(reported, "bad request report")
}

func (s *GatewayTestSuite) TestUnknownTypeIsReported() {
	reported := make(chan struct{})
	s.mockGameService.EXPECT().
		ReportError(gomock.Any(), &game.ReportErrorInput{ConnectionID: s.connectionID, Err: game.ErrBadRequest}).
		Do(func(ctx context.Context, input *game.ReportErrorInput) {
			close(reported)
		})

	s.send(`{"type":"stealCrown"}`)
	s.wait(reported, "bad request report")
}

func (s *GatewayTestSuite) TestServiceErrorIsReported() {
	reported := make(chan struct{})
	s.mockGameService.EXPECT().
		JoinRoom(gomock.Any(), &game.JoinRoomInput{ConnectionID: s.connectionID, RoomCode: "ABC234", DisplayName: "Bob"}).
		Return(nil, game.ErrRoomFull)
	s.mockGameService.EXPECT().
		ReportError(gomock.Any(), &game.ReportErrorInput{ConnectionID: s.connectionID, Err: game.ErrRoomFull}).
		Do(func(ctx context.Context, input *game.ReportErrorInput) {
			close(reported)
		})

	s.send(`{"type":"joinRoom","roomCode":"ABC234","playerName":"Bob"}`)
	s.wait(reported, "room full report")
}

func (s *GatewayTestSuite) TestRateLimit() {
	reported := make(chan struct{})
	s.mockGameService.EXPECT().
		SendChat(gomock.Any(), &game.SendChatInput{ConnectionID: s.connectionID, Message: "hi"}).
		Return(&game.SendChatOutput{Message: "hi"}, nil).
		Times(2)
	s.mockGameService.EXPECT().
		ReportError(gomock.Any(), &game.ReportErrorInput{ConnectionID: s.connectionID, Err: game.ErrRateLimited}).
		Do(func(ctx context.Context, input *game.ReportErrorInput) {
			close(reported)
		})

	for i := 0; i < 3; i++ {
		s.send(`{"type":"chatMessage","message":"hi"}`)
	}
	s.wait(reported, "rate limit report")
}

func (s *GatewayTestSuite) TestDeliver() {
	s.Equal(1, s.gateway.Connections())

	err := s.gateway.Deliver(context.Background(), &models.Notification{
		Event:    models.EventChatMessage,
		RoomCode: "ABC234",
		Data:     models.ChatMessage{SenderID: "ws:bob", SenderName: "Bob", Message: "hello"},
	}, []string{s.connectionID, "ws:gone"})
	s.Require().NoError(err)

	msg := s.read()
	s.Equal(string(models.EventChatMessage), msg.Event)
	s.Equal("ABC234", msg.RoomCode)

	var chat models.ChatMessage
	s.Require().NoError(json.Unmarshal(msg.Data, &chat))
	s.Equal("Bob", chat.SenderName)
	s.Equal("hello", chat.Message)
}

func TestClientEnqueueNeverBlocks(t *testing.T) {
	c := &client{
		send: make(chan []byte, 1),
		done: make(chan struct{}),
	}

	assert.True(t, c.enqueue([]byte("one")))
	assert.False(t, c.enqueue([]byte("two")), "a full buffer is refused")

	<-c.send
	c.close()
	c.close()
	assert.False(t, c.enqueue([]byte("three")), "a closing client is refused")
}

func TestGatewayRejectsForeignOrigin(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway, err := New(&Config{
		GameService:    gameMocks.NewMockService(ctrl),
		IDGenerator:    idgenMocks.NewMockGenerator(ctrl),
		AllowedOrigins: []string{"https://court.example"},
	})
	require.NoError(t, err)

	server := httptest.NewServer(gateway)
	defer server.Close()

	header := http.Header{}
	header.Set("Origin", "https://elsewhere.example")
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestNewValidation(t *testing.T) {
	ctrl := gomock.NewController(t)

	_, err := New(nil)
	assert.Error(t, err)

	_, err = New(&Config{IDGenerator: idgenMocks.NewMockGenerator(ctrl)})
	assert.ErrorIs(t, err, ErrNilGameService)

	_, err = New(&Config{GameService: gameMocks.NewMockService(ctrl)})
	assert.ErrorIs(t, err, ErrNilIDGenerator)
}
