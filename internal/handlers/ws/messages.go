package ws

import (
	"context"
	"encoding/json"

	"github.com/KirkDiggler/rajamantri/internal/models"
	"github.com/KirkDiggler/rajamantri/internal/services/game"
)

// Inbound message types
const (
	TypeCreateRoom         = "createRoom"
	TypeJoinRoom           = "joinRoom"
	TypeLeaveRoom          = "leaveRoom"
	TypeStartGame          = "startGame"
	TypeRevealRole         = "revealRole"
	TypeMantriGuess        = "mantriGuess"
	TypeDecision           = "rajaDecision"
	TypeNextRound          = "nextRound"
	TypeUpdateRoomSettings = "updateRoomSettings"
	TypePlayAgain          = "playAgain"
	TypeChatMessage        = "chatMessage"
)

// clientMessage is the union of every inbound intent payload
type clientMessage struct {
	Type string `json:"type"`

	// createRoom, joinRoom
	PlayerName string `json:"playerName"`
	RoomCode   string `json:"roomCode"`

	// createRoom, updateRoomSettings
	MaxPlayers   *int                `json:"maxPlayers"`
	TotalRounds  *int                `json:"totalRounds"`
	Adjudication models.Adjudication `json:"adjudication"`

	// mantriGuess
	GuessedChorID string `json:"guessedChorId"`

	// rajaDecision
	IsCorrect *bool `json:"isCorrect"`

	// chatMessage
	Message string `json:"message"`
}

// defaultTotalRounds applies when createRoom omits totalRounds
const defaultTotalRounds = 3

// handleMessage decodes one frame and runs the matching service operation.
// The returned error is reported back to the sender.
func (g *Gateway) handleMessage(ctx context.Context, connectionID string, payload []byte) error {
	var msg clientMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		return game.ErrBadRequest
	}

	var err error
	switch msg.Type {
	case TypeCreateRoom:
		if msg.MaxPlayers == nil {
			return game.ErrInvalidSettings
		}
		rounds := defaultTotalRounds
		if msg.TotalRounds != nil {
			rounds = *msg.TotalRounds
		}
		_, err = g.gameService.CreateRoom(ctx, &game.CreateRoomInput{
			ConnectionID: connectionID,
			DisplayName:  msg.PlayerName,
			Capacity:     *msg.MaxPlayers,
			TotalRounds:  rounds,
			Adjudication: msg.Adjudication,
		})
	case TypeJoinRoom:
		_, err = g.gameService.JoinRoom(ctx, &game.JoinRoomInput{
			ConnectionID: connectionID,
			RoomCode:     msg.RoomCode,
			DisplayName:  msg.PlayerName,
		})
	case TypeLeaveRoom:
		_, err = g.gameService.LeaveRoom(ctx, &game.LeaveRoomInput{ConnectionID: connectionID})
	case TypeStartGame:
		_, err = g.gameService.StartGame(ctx, &game.StartGameInput{ConnectionID: connectionID})
	case TypeRevealRole:
		_, err = g.gameService.RevealRole(ctx, &game.RevealRoleInput{ConnectionID: connectionID})
	case TypeMantriGuess:
		_, err = g.gameService.SubmitGuess(ctx, &game.SubmitGuessInput{
			ConnectionID: connectionID,
			TargetID:     msg.GuessedChorID,
		})
	case TypeDecision:
		if msg.IsCorrect == nil {
			return game.ErrBadRequest
		}
		_, err = g.gameService.ConfirmDecision(ctx, &game.ConfirmDecisionInput{
			ConnectionID: connectionID,
			IsCorrect:    *msg.IsCorrect,
		})
	case TypeNextRound:
		_, err = g.gameService.AdvanceRound(ctx, &game.AdvanceRoundInput{ConnectionID: connectionID})
	case TypeUpdateRoomSettings:
		_, err = g.gameService.UpdateRoomSettings(ctx, &game.UpdateRoomSettingsInput{
			ConnectionID: connectionID,
			Capacity:     msg.MaxPlayers,
			TotalRounds:  msg.TotalRounds,
		})
	case TypePlayAgain:
		_, err = g.gameService.PlayAgain(ctx, &game.PlayAgainInput{ConnectionID: connectionID})
	case TypeChatMessage:
		_, err = g.gameService.SendChat(ctx, &game.SendChatInput{
			ConnectionID: connectionID,
			Message:      msg.Message,
		})
	default:
		return game.ErrBadRequest
	}

	return err
}
