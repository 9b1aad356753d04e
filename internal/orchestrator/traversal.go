package orchestrator

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dungeonworks/gateway/internal/clients"
	"github.com/dungeonworks/gateway/internal/httputil"
	"github.com/dungeonworks/gateway/internal/logging"
)

// Traversal decides between advancing to the next room and jumping to
// a target room, and recognizes the end of the dungeon.
type Traversal struct {
	traversal *clients.Traversal
	rooms     *clients.Room
	players   *clients.Player
	finalizer *Finalizer
	logger    *logging.Logger

	// terminalThreshold is the room id at or beyond which a failed
	// advance means the player has finished the dungeon rather than
	// hit a data gap.
	terminalThreshold int
}

// NewTraversal creates a room traversal orchestrator.
func NewTraversal(traversal *clients.Traversal, rooms *clients.Room, players *clients.Player, finalizer *Finalizer, logger *logging.Logger, terminalThreshold int) *Traversal {
	return &Traversal{
		traversal:         traversal,
		rooms:             rooms,
		players:           players,
		finalizer:         finalizer,
		logger:            logger,
		terminalThreshold: terminalThreshold,
	}
}

// EnterRoom performs one traversal step. With a target room id the
// current room is re-fetched without advancing (idempotent); without
// one the player advances to the next room. Blocked moves (403) and
// plain errors pass through with the downstream status; a target-less
// 404 is checked against the terminal threshold before being treated
// as end of game.
func (t *Traversal) EnterRoom(ctx context.Context, playerID int, targetRoomID *int) (*Result, error) {
	var resp *httputil.Response
	var err error

	if targetRoomID != nil {
		resp, err = t.traversal.Enter(ctx, *targetRoomID, playerID)
	} else {
		resp, err = t.traversal.Next(ctx, playerID)
	}
	if err != nil {
		return nil, err
	}

	// Blocked moves (locked door, hostile occupants) pass through
	// unchanged; the room service owns the blocking rules.
	if resp.Status == http.StatusForbidden {
		return passThrough(resp), nil
	}

	if resp.Status == http.StatusNotFound && targetRoomID == nil {
		return t.checkEndOfGame(ctx, playerID, resp)
	}

	return passThrough(resp), nil
}

// checkEndOfGame decides whether a target-less 404 means the dungeon
// is finished. Only a "room not found" error from a player already at
// or beyond the terminal threshold finalizes the run; anything else
// passes the 404 through.
func (t *Traversal) checkEndOfGame(ctx context.Context, playerID int, resp *httputil.Response) (*Result, error) {
	var errBody struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body, &errBody); err != nil {
		return &Result{Status: http.StatusNotFound, Body: []byte(`{"error":"Room not found"}`)}, nil
	}
	if !strings.Contains(strings.ToLower(errBody.Error), "room not found") {
		return passThrough(resp), nil
	}

	view, err := t.players.GetView(ctx, playerID)
	if err != nil {
		// Cannot determine the player's room; not provably the end.
		return passThrough(resp), nil
	}

	if view.RoomID < t.terminalThreshold {
		return passThrough(resp), nil
	}

	t.logger.WithContext(ctx).WithFields(map[string]interface{}{
		"player_id": playerID,
		"room_id":   view.RoomID,
	}).Info("end of game detected")
	return t.finalizer.Finalize(ctx, playerID, DefaultEndMessage), nil
}

// RoomInfo fetches a room preview without entering it.
func (t *Traversal) RoomInfo(ctx context.Context, roomID, playerID int) (*Result, error) {
	resp, err := t.rooms.Get(ctx, roomID, playerID)
	if err != nil {
		return nil, err
	}
	if resp.Status != http.StatusOK {
		return &Result{Status: http.StatusNotFound, Body: []byte(`{"error":"Room not found"}`)}, nil
	}
	return passThrough(resp), nil
}
