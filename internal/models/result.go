package models

import "time"

// GameResult is the record of a finished game kept in the results ledger
type GameResult struct {
	// ID is the unique identifier for the result
	ID string `json:"id"`

	// RoomCode is the room the game was played in
	RoomCode string `json:"roomCode"`

	// TotalRounds is how many rounds were played
	TotalRounds int `json:"totalRounds"`

	// Standings is the final leaderboard, winner first
	Standings []Standing `json:"standings"`

	// EndedAt is when the last round was advanced past
	EndedAt time.Time `json:"endedAt"`
}

// Winner returns the first standing, if any
func (r *GameResult) Winner() *Standing {
	if len(r.Standings) == 0 {
		return nil
	}
	return &r.Standings[0]
}
