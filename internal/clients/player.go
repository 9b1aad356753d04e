package clients

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dungeonworks/gateway/internal/errors"
	"github.com/dungeonworks/gateway/internal/httputil"
)

// Player wraps the player service.
type Player struct {
	c *httputil.Client
}

// NewPlayer creates a player service client.
func NewPlayer(c *httputil.Client) *Player { return &Player{c: c} }

// FindByName looks a player up by name. The raw response is returned
// because the session manager branches on the exact status code.
func (p *Player) FindByName(ctx context.Context, name string) (*httputil.Response, error) {
	return p.c.Get(ctx, "/player/name/"+name)
}

// Get fetches a player by id. The raw response is returned so callers
// can pass downstream statuses through unmodified.
func (p *Player) Get(ctx context.Context, playerID int) (*httputil.Response, error) {
	return p.c.Get(ctx, fmt.Sprintf("/player/%d", playerID))
}

// GetView fetches and decodes a player projection, converting any
// non-200 into an upstream error.
func (p *Player) GetView(ctx context.Context, playerID int) (*PlayerView, error) {
	resp, err := p.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, errors.Upstream(resp.Status, resp.ErrorMessage())
	}
	var view PlayerView
	if err := resp.Decode(&view); err != nil {
		return nil, errors.Internal("malformed player payload").WithCause(err)
	}
	return &view, nil
}

// Create registers a new player with the given name and class.
func (p *Player) Create(ctx context.Context, name, characterClass string) (*httputil.Response, error) {
	return p.c.Post(ctx, "/player", map[string]string{
		"name":            name,
		"character_class": characterClass,
	})
}

// createEnvelope is the creation response: the player object is nested
// under "player".
type createEnvelope struct {
	Player PlayerView `json:"player"`
}

// ParseCreatedPlayer extracts the created player's id from a 201
// response body. A zero id means the service returned an envelope the
// gateway cannot use.
func ParseCreatedPlayer(body []byte) (int, error) {
	var env createEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return 0, err
	}
	if env.Player.PlayerID == 0 {
		return 0, fmt.Errorf("player id missing from creation response")
	}
	return env.Player.PlayerID, nil
}

// AdjustHealth applies a signed health delta to the player. The wire
// format is a signed string, e.g. {"health": "-3"}.
func (p *Player) AdjustHealth(ctx context.Context, playerID, delta int) (*httputil.Response, error) {
	return p.c.Put(ctx, fmt.Sprintf("/player/%d", playerID), map[string]string{
		"health": fmt.Sprintf("%+d", delta),
	})
}

// healthEnvelope is the health-update response shape.
type healthEnvelope struct {
	Player struct {
		Health int `json:"Health"`
	} `json:"Player"`
}

// ParseAdjustedHealth extracts the player's new health from a health
// update response.
func ParseAdjustedHealth(body []byte) (int, error) {
	var env healthEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return 0, err
	}
	return env.Player.Health, nil
}
