package results

import "github.com/KirkDiggler/rajamantri/internal/models"

// SaveResultInput contains the result to store
type SaveResultInput struct {
	Result *models.GameResult
}

// GetResultInput identifies a stored result
type GetResultInput struct {
	ResultID string
}

// ListResultsForRoomInput selects the results for one room code
type ListResultsForRoomInput struct {
	RoomCode string

	// Limit caps the number of results returned; zero means DefaultListLimit
	Limit int
}

// ListResultsForRoomOutput contains the results, newest first
type ListResultsForRoomOutput struct {
	Results []*models.GameResult
}
