package game

import (
	"errors"

	resultsRepo "github.com/KirkDiggler/rajamantri/internal/repositories/results"
	roomRepo "github.com/KirkDiggler/rajamantri/internal/repositories/room"
)

// GameError is a custom error type for game-related errors
type GameError string

// Error implements the error interface
func (e GameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrRoomNotFound        GameError = "room not found"
	ErrRoomFull            GameError = "room is full"
	ErrGameInProgress      GameError = "game already started"
	ErrNotHost             GameError = "only the host can do that"
	ErrInsufficientPlayers GameError = "need at least 3 players to start"
	ErrWrongRole           GameError = "your role cannot do that"
	ErrInvalidTarget       GameError = "invalid player selected"
	ErrRoundNotComplete    GameError = "current round must be completed before starting next round"
	ErrNoPendingGuess      GameError = "no guess is waiting for a decision"
	ErrMessageTooLong      GameError = "message is too long"
	ErrEmptyMessage        GameError = "message is empty"
	ErrNotInRoom           GameError = "not in a room"
	ErrAlreadyInRoom       GameError = "already in a room"
	ErrInvalidGameState    GameError = "not allowed in the current game state"
	ErrGuessPending        GameError = "a guess is already waiting for a decision"
	ErrInvalidSettings     GameError = "invalid room settings"
	ErrInvalidName         GameError = "display name must be 1-20 characters"
	ErrServerFull          GameError = "server is full, try again later"
	ErrRateLimited         GameError = "too many requests"
	ErrBadRequest          GameError = "malformed request"
	ErrInternal            GameError = "internal server error"

	ErrNilConfig      GameError = "config cannot be nil"
	ErrNilRoomRepo    GameError = "room repository cannot be nil"
	ErrNilPublisher   GameError = "publisher cannot be nil"
	ErrNilMessaging   GameError = "messaging service cannot be nil"
	ErrNilShuffler    GameError = "shuffler cannot be nil"
	ErrNilClock       GameError = "clock cannot be nil"
	ErrNilIDGenerator GameError = "ID generator cannot be nil"
)

// ErrorKind is the machine readable error name sent to clients
type ErrorKind string

const (
	KindRoomNotFound        ErrorKind = "RoomNotFound"
	KindRoomFull            ErrorKind = "RoomFull"
	KindGameInProgress      ErrorKind = "GameInProgress"
	KindNotHost             ErrorKind = "NotHost"
	KindInsufficientPlayers ErrorKind = "InsufficientPlayers"
	KindWrongRole           ErrorKind = "WrongRole"
	KindInvalidTarget       ErrorKind = "InvalidTarget"
	KindRoundNotComplete    ErrorKind = "RoundNotComplete"
	KindNoPendingGuess      ErrorKind = "NoPendingGuess"
	KindMessageTooLong      ErrorKind = "MessageTooLong"
	KindEmptyMessage        ErrorKind = "EmptyMessage"
	KindNotInRoom           ErrorKind = "NotInRoom"
	KindAlreadyInRoom       ErrorKind = "AlreadyInRoom"
	KindInvalidGameState    ErrorKind = "InvalidGameState"
	KindGuessPending        ErrorKind = "GuessPending"
	KindInvalidSettings     ErrorKind = "InvalidSettings"
	KindServerFull          ErrorKind = "ServerFull"
	KindRateLimited         ErrorKind = "RateLimited"
	KindBadRequest          ErrorKind = "BadRequest"
	KindInternal            ErrorKind = "Internal"
)

var errorKinds = map[GameError]ErrorKind{
	ErrRoomNotFound:        KindRoomNotFound,
	ErrRoomFull:            KindRoomFull,
	ErrGameInProgress:      KindGameInProgress,
	ErrNotHost:             KindNotHost,
	ErrInsufficientPlayers: KindInsufficientPlayers,
	ErrWrongRole:           KindWrongRole,
	ErrInvalidTarget:       KindInvalidTarget,
	ErrRoundNotComplete:    KindRoundNotComplete,
	ErrNoPendingGuess:      KindNoPendingGuess,
	ErrMessageTooLong:      KindMessageTooLong,
	ErrEmptyMessage:        KindEmptyMessage,
	ErrNotInRoom:           KindNotInRoom,
	ErrAlreadyInRoom:       KindAlreadyInRoom,
	ErrInvalidGameState:    KindInvalidGameState,
	ErrGuessPending:        KindGuessPending,
	ErrInvalidSettings:     KindInvalidSettings,
	ErrInvalidName:         KindInvalidSettings,
	ErrServerFull:          KindServerFull,
	ErrRateLimited:         KindRateLimited,
	ErrBadRequest:          KindBadRequest,
}

// KindOf maps an error returned by the service to its wire kind.
// Anything unrecognised is reported as Internal.
func KindOf(err error) ErrorKind {
	var gameErr GameError
	if errors.As(err, &gameErr) {
		if kind, ok := errorKinds[gameErr]; ok {
			return kind
		}
		return KindInternal
	}

	switch {
	case errors.Is(err, roomRepo.ErrRoomNotFound):
		return KindRoomNotFound
	case errors.Is(err, roomRepo.ErrServerFull):
		return KindServerFull
	case errors.Is(err, roomRepo.ErrAlreadyRegistered):
		return KindAlreadyInRoom
	case errors.Is(err, roomRepo.ErrLocationNotFound):
		return KindNotInRoom
	case errors.Is(err, resultsRepo.ErrResultNotFound):
		return KindRoomNotFound
	}
	return KindInternal
}

// PublicMessage returns the text that is safe to show a client for err
func PublicMessage(err error) string {
	if KindOf(err) == KindInternal {
		return ErrInternal.Error()
	}

	var gameErr GameError
	if errors.As(err, &gameErr) {
		return gameErr.Error()
	}
	return err.Error()
}
