package clients

import (
	"context"
	"fmt"

	"github.com/dungeonworks/gateway/internal/httputil"
)

// Room wraps the room service's read surface.
type Room struct {
	c *httputil.Client
}

// NewRoom creates a room service client.
func NewRoom(c *httputil.Client) *Room { return &Room{c: c} }

// Get fetches a room preview without entering it.
func (r *Room) Get(ctx context.Context, roomID, playerID int) (*httputil.Response, error) {
	return r.c.Get(ctx, fmt.Sprintf("/room/%d?player_id=%d", roomID, playerID))
}

// Traversal wraps the entering-room service, which owns the player's
// room pointer and the blocking rules (locked doors, hostile rooms).
type Traversal struct {
	c *httputil.Client
}

// NewTraversal creates an entering-room service client.
func NewTraversal(c *httputil.Client) *Traversal { return &Traversal{c: c} }

// Next advances the player to the next room. The service increments
// the player's room pointer and returns the new room's projection, or
// 403 when the move is blocked, or 404 when no such room is authored.
func (t *Traversal) Next(ctx context.Context, playerID int) (*httputil.Response, error) {
	return t.c.Post(ctx, "/next_room", map[string]int{"player_id": playerID})
}

// Enter fetches a specific room, used to re-render the current room
// without advancing (e.g. after combat ends).
func (t *Traversal) Enter(ctx context.Context, roomID, playerID int) (*httputil.Response, error) {
	return t.c.Post(ctx, fmt.Sprintf("/room/%d", roomID), map[string]int{"player_id": playerID})
}
