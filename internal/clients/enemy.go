package clients

import (
	"context"
	"fmt"

	"github.com/dungeonworks/gateway/internal/errors"
	"github.com/dungeonworks/gateway/internal/httputil"
)

// Enemy wraps the enemy service. Enemies are addressed by the room
// they occupy.
type Enemy struct {
	c *httputil.Client
}

// NewEnemy creates an enemy service client.
func NewEnemy(c *httputil.Client) *Enemy { return &Enemy{c: c} }

// GetByRoom fetches the enemy occupying a room. The raw response is
// returned because a 404 is a normal room state for combat start, not
// a fault.
func (e *Enemy) GetByRoom(ctx context.Context, roomID int) (*httputil.Response, error) {
	return e.c.Get(ctx, fmt.Sprintf("/enemy/%d", roomID))
}

// Damage applies damage to the room's enemy. The result carries a
// loot payload when the blow was fatal.
func (e *Enemy) Damage(ctx context.Context, roomID, damage int) (*DamageResult, error) {
	resp, err := e.c.Post(ctx, fmt.Sprintf("/enemy/%d/damage", roomID), map[string]int{"damage": damage})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, errors.Upstream(resp.Status, resp.ErrorMessage())
	}
	var result DamageResult
	if err := resp.Decode(&result); err != nil {
		return nil, errors.Internal("malformed damage response").WithCause(err)
	}
	return &result, nil
}

// AttackRoll asks the enemy service to pick and roll one of the
// enemy's attacks.
func (e *Enemy) AttackRoll(ctx context.Context, roomID int) (*AttackRoll, error) {
	resp, err := e.c.Get(ctx, fmt.Sprintf("/enemy/%d/attack", roomID))
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, errors.Upstream(resp.Status, resp.ErrorMessage())
	}
	var roll AttackRoll
	if err := resp.Decode(&roll); err != nil {
		return nil, errors.Internal("malformed attack roll response").WithCause(err)
	}
	return &roll, nil
}
