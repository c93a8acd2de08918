// Package scoring implements the score ledger rules: role awards at the start
// of each round, guess resolution and final standings.
package scoring

import (
	"sort"

	"github.com/KirkDiggler/rajamantri/internal/catalog"
	"github.com/KirkDiggler/rajamantri/internal/models"
)

// Entry pairs a player with their ledger record for standings
type Entry struct {
	PlayerID   string
	PlayerName string
	Record     *models.ScoreRecord
}

// Outcome describes the effect of a resolved guess
type Outcome struct {
	// Correct is the correctness used for scoring
	Correct bool

	// AccuserDelta is the change applied to the accuser's total
	AccuserDelta int

	// HolderDelta is the change applied to the accused role holder's total
	HolderDelta int
}

// NewRecord returns an empty score record
func NewRecord() *models.ScoreRecord {
	return &models.ScoreRecord{
		History: make([]models.RoundScore, 0),
	}
}

// AwardRole credits the base score of role for round.
// The first round sets the total, later rounds add to it.
func AwardRole(record *models.ScoreRecord, round int, role catalog.Role) int {
	points := catalog.BaseScore(role)
	if round <= 1 {
		record.Total = points
		record.History = record.History[:0]
		record.Adjustments = nil
	} else {
		record.Total += points
	}

	record.History = append(record.History, models.RoundScore{
		Round:  round,
		Role:   role,
		Points: points,
	})
	return points
}

// ResolveGuess applies a guess outcome to the accuser and the player who
// really holds the accused role. A correct guess moves the bonus and
// penalty; an incorrect one swaps the two totals exactly.
func ResolveGuess(accuser, holder *models.ScoreRecord, round int, correct bool) Outcome {
	if correct {
		adjust(accuser, round, models.AdjustmentBonus, catalog.CorrectGuessBonus)
		adjust(holder, round, models.AdjustmentPenalty, -catalog.CorrectGuessPenalty)
		return Outcome{
			Correct:      true,
			AccuserDelta: catalog.CorrectGuessBonus,
			HolderDelta:  -catalog.CorrectGuessPenalty,
		}
	}

	// the accuser takes the holder's total and vice versa
	delta := holder.Total - accuser.Total
	adjust(accuser, round, models.AdjustmentExchange, delta)
	adjust(holder, round, models.AdjustmentExchange, -delta)
	return Outcome{
		Correct:      false,
		AccuserDelta: delta,
		HolderDelta:  -delta,
	}
}

func adjust(record *models.ScoreRecord, round int, reason models.AdjustmentReason, delta int) {
	record.Total += delta
	record.Adjustments = append(record.Adjustments, models.Adjustment{
		Round:  round,
		Reason: reason,
		Delta:  delta,
	})
}

// Standings ranks entries by total descending. Entries must be in join
// order; ties keep that order.
func Standings(entries []Entry) []models.Standing {
	ranked := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Record == nil {
			continue
		}
		ranked = append(ranked, e)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Record.Total > ranked[j].Record.Total
	})

	standings := make([]models.Standing, len(ranked))
	for i, e := range ranked {
		rounds := make([]models.RoundScore, len(e.Record.History))
		copy(rounds, e.Record.History)
		standings[i] = models.Standing{
			Rank:       i + 1,
			PlayerID:   e.PlayerID,
			PlayerName: e.PlayerName,
			TotalScore: e.Record.Total,
			Rounds:     rounds,
		}
	}
	return standings
}

// Consistent reports whether a record's total matches its entries
func Consistent(record *models.ScoreRecord) bool {
	sum := 0
	for _, h := range record.History {
		sum += h.Points
	}
	for _, a := range record.Adjustments {
		sum += a.Delta
	}
	return sum == record.Total
}
