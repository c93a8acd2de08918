package messaging

import (
	"github.com/KirkDiggler/rajamantri/internal/shuffle"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFunny is a humorous tone
	ToneFunny MessageTone = "funny"

	// ToneCelebration is a celebratory tone
	ToneCelebration MessageTone = "celebration"
)

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Source picks among candidate messages; a time seeded source is used when nil
	Source shuffle.Source
}

// GetJoinRoomMessageInput contains parameters for a join greeting
type GetJoinRoomMessageInput struct {
	// PlayerName is the name of the player joining
	PlayerName string

	// IsHost is true when the player created the room
	IsHost bool

	// PlayerCount is the number of seated players after the join
	PlayerCount int

	// Capacity is the number of seats in the room
	Capacity int
}

// GetJoinRoomMessageOutput contains the greeting
type GetJoinRoomMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetHostChangeMessageInput contains parameters for a host change notice
type GetHostChangeMessageInput struct {
	NewHostName      string
	PreviousHostName string
}

// GetHostChangeMessageOutput contains the notice
type GetHostChangeMessageOutput struct {
	Message string
}

// GetRoundStartMessageInput contains parameters for a round banner
type GetRoundStartMessageInput struct {
	CurrentRound int
	TotalRounds  int
}

// GetRoundStartMessageOutput contains the banner
type GetRoundStartMessageOutput struct {
	Message string
}

// GetGuessOutcomeMessageInput contains parameters for a guess outcome
type GetGuessOutcomeMessageInput struct {
	// AccuserName is the mantri
	AccuserName string

	// AccusedName is the player that was guessed
	AccusedName string

	// HolderName is the player actually holding the chor role
	HolderName string

	// Correct is the correctness used for scoring
	Correct bool

	// DeciderName is set when a decision maker ruled on the guess
	DeciderName string

	// Overruled is true when the decision did not match the real roles
	Overruled bool
}

// GetGuessOutcomeMessageOutput contains the outcome text
type GetGuessOutcomeMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetGameEndMessageInput contains parameters for the final message
type GetGameEndMessageInput struct {
	WinnerName  string
	WinnerScore int
	TotalRounds int
}

// GetGameEndMessageOutput contains the final message
type GetGameEndMessageOutput struct {
	Message string
	Tone    MessageTone
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// Kind is the wire error kind, for example RoomFull
	Kind string

	// PlayerName personalises the message when set
	PlayerName string
}

// GetErrorMessageOutput contains a title and message for an error
type GetErrorMessageOutput struct {
	Title   string
	Message string
}
