package clients

import (
	"context"
	"fmt"

	"github.com/dungeonworks/gateway/internal/errors"
	"github.com/dungeonworks/gateway/internal/httputil"
)

// ActivityLog wraps the activity log service. Appends are best-effort
// side calls for most orchestrations; the caller decides whether a
// failure degrades or aborts.
type ActivityLog struct {
	c *httputil.Client
}

// NewActivityLog creates an activity log client.
func NewActivityLog(c *httputil.Client) *ActivityLog { return &ActivityLog{c: c} }

// Append records one player action.
func (a *ActivityLog) Append(ctx context.Context, playerID int, action string) error {
	resp, err := a.c.Post(ctx, "/log", map[string]interface{}{
		"player_id": playerID,
		"action":    action,
	})
	if err != nil {
		return err
	}
	if !resp.OK() {
		return errors.Upstream(resp.Status, resp.ErrorMessage())
	}
	return nil
}

// ListByPlayer fetches the player's activity history.
func (a *ActivityLog) ListByPlayer(ctx context.Context, playerID int) (*httputil.Response, error) {
	return a.c.Get(ctx, fmt.Sprintf("/log/%d", playerID))
}
