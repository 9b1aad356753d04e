package server

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dungeonworks/gateway/internal/clients"
	"github.com/dungeonworks/gateway/internal/errors"
	"github.com/dungeonworks/gateway/internal/httputil"
)

// handleGetPlayerRoom returns the session player's current room id.
// Missing or malformed room values degrade to 0 rather than failing.
func (s *Server) handleGetPlayerRoom(w http.ResponseWriter, r *http.Request) {
	playerID := sessionPlayerID(r)

	resp, err := s.players.Get(r.Context(), playerID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if !resp.OK() {
		httputil.Error(w, errors.Upstream(resp.Status, "Could not retrieve player data"))
		return
	}

	var view clients.PlayerView
	if err := resp.Decode(&view); err != nil {
		httputil.InternalError(w, "malformed player payload")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"room_id": view.RoomID})
}

// enterRoomRequest carries an optional jump target. Without one the
// player advances to the next room.
type enterRoomRequest struct {
	PlayerID     *int `json:"player_id"`
	TargetRoomID *int `json:"target_room_id"`
}

func (s *Server) handleEnterRoom(w http.ResponseWriter, r *http.Request) {
	var req enterRoomRequest
	if r.Body != nil && r.ContentLength != 0 {
		if !httputil.DecodeJSON(w, r, &req) {
			return
		}
	}

	playerID := sessionPlayerID(r)
	if req.PlayerID != nil {
		playerID = *req.PlayerID
	}

	result, err := s.traversal.EnterRoom(r.Context(), playerID, req.TargetRoomID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteRawJSON(w, result.Status, result.Body)
}

func (s *Server) handleRoomInfo(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.Atoi(mux.Vars(r)["room_id"])
	if err != nil {
		httputil.BadRequest(w, "invalid room id")
		return
	}

	result, err := s.traversal.RoomInfo(r.Context(), roomID, sessionPlayerID(r))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteRawJSON(w, result.Status, result.Body)
}

func (s *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	playerID := requestPlayerID(r)
	if playerID == 0 {
		httputil.BadRequest(w, "Player ID is required")
		return
	}

	resp, err := s.players.Get(r.Context(), playerID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if !resp.OK() {
		httputil.Error(w, errors.Upstream(resp.Status, "Failed to retrieve player stats"))
		return
	}
	httputil.WriteRawJSON(w, http.StatusOK, resp.Body)
}

// hardResetRequest identifies the player whose state is wiped.
type hardResetRequest struct {
	PlayerID int `json:"player_id"`
}

func (s *Server) handleHardReset(w http.ResponseWriter, r *http.Request) {
	var req hardResetRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	if req.PlayerID == 0 {
		httputil.BadRequest(w, "Player ID is required")
		return
	}

	s.logger.WithContext(r.Context()).WithFields(map[string]interface{}{
		"player_id": req.PlayerID,
	}).Info("hard reset requested")

	resp, err := s.game.HardReset(r.Context(), req.PlayerID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteRawJSON(w, resp.Status, resp.Body)
}

func (s *Server) handleActivityLogs(w http.ResponseWriter, r *http.Request) {
	playerID := sessionPlayerID(r)
	if raw, ok := mux.Vars(r)["player_id"]; ok {
		if id, err := strconv.Atoi(raw); err == nil {
			playerID = id
		}
	}
	if playerID == 0 {
		httputil.BadRequest(w, "Player ID is required")
		return
	}

	resp, err := s.activity.ListByPlayer(r.Context(), playerID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	if !resp.OK() {
		httputil.Error(w, errors.Upstream(resp.Status, "Failed to retrieve activity logs"))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"logs": rawJSON(resp.Body),
	})
}

// rawJSON keeps an already-encoded payload from being re-escaped.
type rawJSON []byte

func (r rawJSON) MarshalJSON() ([]byte, error) {
	if len(r) == 0 {
		return []byte("null"), nil
	}
	return r, nil
}
