package orchestrator

import (
	"context"
	"net/http"

	"github.com/dungeonworks/gateway/internal/clients"
	"github.com/dungeonworks/gateway/internal/logging"
)

// DefaultEndMessage congratulates a player who walked out of the last
// room alive.
const DefaultEndMessage = "Congratulations! You've completed the game!"

// Finalizer closes a finished run. Reaching the end of the game must
// never itself present as a failure, so scoring errors degrade into a
// success payload with a diagnostic field.
type Finalizer struct {
	game   *clients.GameManagement
	logger *logging.Logger
}

// NewFinalizer creates an end-of-game finalizer.
func NewFinalizer(game *clients.GameManagement, logger *logging.Logger) *Finalizer {
	return &Finalizer{game: game, logger: logger}
}

// degradedEnd is the payload returned when scoring fails.
type degradedEnd struct {
	Message      string `json:"message"`
	PlayerScore  int    `json:"player_score"`
	ScoreMessage string `json:"score_message"`
	Error        string `json:"error"`
}

// Finalize scores and closes the run. Always returns HTTP success.
func (f *Finalizer) Finalize(ctx context.Context, playerID int, message string) *Result {
	resp, err := f.game.End(ctx, playerID, message)
	if err != nil {
		f.logger.WithContext(ctx).WithError(err).Error("end-of-game call failed")
		return composed(http.StatusOK, degradedEnd{
			Message:      message,
			ScoreMessage: "Unable to retrieve score",
			Error:        err.Error(),
		})
	}
	if resp.Status != http.StatusOK {
		f.logger.WithContext(ctx).WithFields(map[string]interface{}{
			"status": resp.Status,
		}).Error("end-of-game scoring rejected")
		return composed(http.StatusOK, degradedEnd{
			Message:      message,
			ScoreMessage: "Unable to retrieve score",
			Error:        "Failed to process end of game",
		})
	}
	return passThrough(resp)
}
