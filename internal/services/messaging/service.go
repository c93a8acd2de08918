package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/rajamantri/internal/shuffle"
)

// service implements the Service interface
type service struct {
	source shuffle.Source
}

// NewService creates a new messaging service
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	source := cfg.Source
	if source == nil {
		source = shuffle.New(nil)
	}

	return &service{
		source: source,
	}, nil
}

// pick selects one message at random
func (s *service) pick(messages []string) string {
	return messages[s.source.Intn(len(messages))]
}

// GetJoinRoomMessage returns a greeting for a player taking a seat
func (s *service) GetJoinRoomMessage(ctx context.Context, input *GetJoinRoomMessageInput) (*GetJoinRoomMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.IsHost {
		return &GetJoinRoomMessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("%s opened the court. Share the room code and gather your ministers!", input.PlayerName),
				fmt.Sprintf("The throne room is ready, %s. Who will you invite?", input.PlayerName),
				fmt.Sprintf("%s is hosting. Thieves, soldiers and kings welcome.", input.PlayerName),
			}),
			Tone: ToneNeutral,
		}, nil
	}

	if input.PlayerCount >= input.Capacity && input.Capacity > 0 {
		return &GetJoinRoomMessageOutput{
			Message: s.pick([]string{
				fmt.Sprintf("%s takes the last seat. The court is full!", input.PlayerName),
				fmt.Sprintf("Full house! %s completes the court.", input.PlayerName),
			}),
			Tone: ToneCelebration,
		}, nil
	}

	return &GetJoinRoomMessageOutput{
		Message: s.pick([]string{
			fmt.Sprintf("%s slips into the court. Keep an eye on your purse!", input.PlayerName),
			fmt.Sprintf("A new face! Is %s a raja or a chor?", input.PlayerName),
			fmt.Sprintf("%s joined. %d of %d seats taken.", input.PlayerName, input.PlayerCount, input.Capacity),
		}),
		Tone: ToneFunny,
	}, nil
}

// GetHostChangeMessage announces a new host
func (s *service) GetHostChangeMessage(ctx context.Context, input *GetHostChangeMessageInput) (*GetHostChangeMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.PreviousHostName == "" {
		return &GetHostChangeMessageOutput{
			Message: fmt.Sprintf("%s is now the host", input.NewHostName),
		}, nil
	}

	return &GetHostChangeMessageOutput{
		Message: s.pick([]string{
			fmt.Sprintf("%s is now the host", input.NewHostName),
			fmt.Sprintf("%s left the court. %s now holds the crown.", input.PreviousHostName, input.NewHostName),
			fmt.Sprintf("The host has fled! %s takes charge.", input.NewHostName),
		}),
	}, nil
}

// GetRoundStartMessage returns the banner for a new round
func (s *service) GetRoundStartMessage(ctx context.Context, input *GetRoundStartMessageInput) (*GetRoundStartMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.CurrentRound == input.TotalRounds && input.TotalRounds > 1 {
		return &GetRoundStartMessageOutput{
			Message: fmt.Sprintf("Final round! Round %d of %d. Check your role.", input.CurrentRound, input.TotalRounds),
		}, nil
	}

	return &GetRoundStartMessageOutput{
		Message: s.pick([]string{
			fmt.Sprintf("Round %d of %d. Check your role!", input.CurrentRound, input.TotalRounds),
			fmt.Sprintf("Round %d of %d. New roles have been dealt.", input.CurrentRound, input.TotalRounds),
		}),
	}, nil
}

// GetGuessOutcomeMessage describes how a guess was resolved
func (s *service) GetGuessOutcomeMessage(ctx context.Context, input *GetGuessOutcomeMessageInput) (*GetGuessOutcomeMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	var message string
	if input.Correct {
		message = fmt.Sprintf("🎉 %s correctly guessed %s as the Chor!", input.AccuserName, input.AccusedName)
	} else {
		message = fmt.Sprintf("❌ %s guessed %s, but the actual Chor was %s! Points exchanged.", input.AccuserName, input.AccusedName, input.HolderName)
	}

	if input.DeciderName != "" {
		ruling := "correct"
		if !input.Correct {
			ruling = "wrong"
		}
		message = fmt.Sprintf("%s ruled the guess %s. %s", input.DeciderName, ruling, message)
		if input.Overruled {
			message += " (the roles say otherwise)"
		}
	}

	tone := ToneCelebration
	if !input.Correct {
		tone = ToneFunny
	}

	return &GetGuessOutcomeMessageOutput{
		Message: message,
		Tone:    tone,
	}, nil
}

// GetGameEndMessage congratulates the winner
func (s *service) GetGameEndMessage(ctx context.Context, input *GetGameEndMessageInput) (*GetGameEndMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	if input.WinnerName == "" {
		return &GetGameEndMessageOutput{
			Message: "Game over!",
			Tone:    ToneNeutral,
		}, nil
	}

	return &GetGameEndMessageOutput{
		Message: s.pick([]string{
			fmt.Sprintf("🏆 %s wins with %d points after %d rounds!", input.WinnerName, input.WinnerScore, input.TotalRounds),
			fmt.Sprintf("All hail %s, ruler of the court with %d points!", input.WinnerName, input.WinnerScore),
			fmt.Sprintf("Game over! %s takes the crown with %d points.", input.WinnerName, input.WinnerScore),
		}),
		Tone: ToneCelebration,
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	switch input.Kind {
	case "RoomNotFound":
		return &GetErrorMessageOutput{
			Title:   "Room not found",
			Message: "No court meets under that code. Check it and try again.",
		}, nil
	case "RoomFull":
		return &GetErrorMessageOutput{
			Title:   "Room full",
			Message: "Every seat in that court is taken.",
		}, nil
	case "GameInProgress":
		return &GetErrorMessageOutput{
			Title:   "Game already started",
			Message: "The roles are already dealt. Wait for the next game.",
		}, nil
	case "NotHost":
		return &GetErrorMessageOutput{
			Title:   "Host only",
			Message: "Only the host can do that.",
		}, nil
	case "InsufficientPlayers":
		return &GetErrorMessageOutput{
			Title:   "Not enough players",
			Message: "Need at least 3 players to start.",
		}, nil
	case "WrongRole":
		return &GetErrorMessageOutput{
			Title:   "Not your move",
			Message: "Your role can't do that this round.",
		}, nil
	case "InvalidTarget":
		return &GetErrorMessageOutput{
			Title:   "Invalid player selected",
			Message: "Pick another player in this room.",
		}, nil
	case "RoundNotComplete":
		return &GetErrorMessageOutput{
			Title:   "Round still running",
			Message: "Current round must be completed before starting next round.",
		}, nil
	case "NoPendingGuess":
		return &GetErrorMessageOutput{
			Title:   "Nothing to decide",
			Message: "No Mantri guess to evaluate.",
		}, nil
	case "GuessPending":
		return &GetErrorMessageOutput{
			Title:   "Guess pending",
			Message: "A guess is already waiting for a decision.",
		}, nil
	case "RateLimited":
		return &GetErrorMessageOutput{
			Title:   "Slow down",
			Message: "Too many actions at once. Take a breath.",
		}, nil
	}

	name := input.PlayerName
	if name == "" {
		name = "friend"
	}
	return &GetErrorMessageOutput{
		Title:   "Something went wrong",
		Message: fmt.Sprintf("Sorry %s, that didn't work. Try again.", name),
	}, nil
}
