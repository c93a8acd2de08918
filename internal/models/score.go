package models

import "github.com/KirkDiggler/rajamantri/internal/catalog"

// AdjustmentReason describes why a total changed outside role awards
type AdjustmentReason string

const (
	// AdjustmentBonus is the accuser's reward for a correct guess
	AdjustmentBonus AdjustmentReason = "bonus"

	// AdjustmentPenalty is taken from the accused role holder on a correct guess
	AdjustmentPenalty AdjustmentReason = "penalty"

	// AdjustmentExchange records one side of a swapped total after a wrong guess
	AdjustmentExchange AdjustmentReason = "exchange"
)

// RoundScore is the role award a player received for one round
type RoundScore struct {
	Round  int          `json:"round"`
	Role   catalog.Role `json:"role"`
	Points int          `json:"points"`
}

// Adjustment is a change to a total made by guess resolution
type Adjustment struct {
	Round  int              `json:"round"`
	Reason AdjustmentReason `json:"reason"`
	Delta  int              `json:"delta"`
}

// ScoreRecord is a player's running total plus the entries that produced it.
// Total always equals the sum of History points and Adjustment deltas.
type ScoreRecord struct {
	Total       int          `json:"total"`
	History     []RoundScore `json:"history"`
	Adjustments []Adjustment `json:"adjustments,omitempty"`
}

// Standing is one row of a leaderboard
type Standing struct {
	Rank       int          `json:"rank"`
	PlayerID   string       `json:"playerId"`
	PlayerName string       `json:"playerName"`
	TotalScore int          `json:"totalScore"`
	Rounds     []RoundScore `json:"rounds,omitempty"`
}
