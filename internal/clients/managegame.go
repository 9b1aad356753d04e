package clients

import (
	"context"
	"fmt"

	"github.com/dungeonworks/gateway/internal/errors"
	"github.com/dungeonworks/gateway/internal/httputil"
)

// GameManagement wraps the game management service, which owns resets
// and end-of-game scoring.
type GameManagement struct {
	c *httputil.Client
}

// NewGameManagement creates a game management client.
func NewGameManagement(c *httputil.Client) *GameManagement {
	return &GameManagement{c: c}
}

// FullReset resets the player's game progress. Called on login and
// logout; failures are logged by the caller but never block either.
func (g *GameManagement) FullReset(ctx context.Context, playerID int) error {
	resp, err := g.c.Post(ctx, fmt.Sprintf("/game/full-reset/%d", playerID), nil)
	if err != nil {
		return err
	}
	if !resp.OK() {
		return errors.Upstream(resp.Status, resp.ErrorMessage())
	}
	return nil
}

// HardReset performs a complete wipe of the player's game state.
func (g *GameManagement) HardReset(ctx context.Context, playerID int) (*httputil.Response, error) {
	return g.c.Post(ctx, fmt.Sprintf("/game/hard-reset/%d", playerID), nil)
}

// End closes the player's run and computes the final score.
func (g *GameManagement) End(ctx context.Context, playerID int, message string) (*httputil.Response, error) {
	return g.c.Post(ctx, fmt.Sprintf("/game/end/%d", playerID), map[string]string{"message": message})
}
