package clients

import (
	"context"
	"fmt"

	"github.com/dungeonworks/gateway/internal/errors"
	"github.com/dungeonworks/gateway/internal/httputil"
)

// Dice wraps the dice service.
type Dice struct {
	c *httputil.Client
}

// NewDice creates a dice service client.
func NewDice(c *httputil.Client) *Dice { return &Dice{c: c} }

// Roll rolls one die with the given number of sides.
func (d *Dice) Roll(ctx context.Context, sides int) (int, error) {
	resp, err := d.c.Get(ctx, fmt.Sprintf("/roll?sides=%d", sides))
	if err != nil {
		return 0, err
	}
	if !resp.OK() {
		return 0, errors.Upstream(resp.Status, resp.ErrorMessage())
	}

	var payload struct {
		Results []int `json:"results"`
	}
	if err := resp.Decode(&payload); err != nil {
		return 0, errors.Internal("malformed dice response").WithCause(err)
	}
	if len(payload.Results) == 0 {
		return 0, errors.Internal("dice service returned no results")
	}
	return payload.Results[0], nil
}
