package server

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/dungeonworks/gateway/internal/httputil"
)

// combatRequest addresses the enemy by the room it occupies.
type combatRequest struct {
	PlayerID int `json:"player_id"`
	RoomID   int `json:"room_id"`
}

func (s *Server) handleCombatStart(w http.ResponseWriter, r *http.Request) {
	roomID, err := strconv.Atoi(mux.Vars(r)["enemy_id"])
	if err != nil {
		httputil.BadRequest(w, "invalid enemy id")
		return
	}

	result, err := s.combat.Start(r.Context(), sessionPlayerID(r), roomID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleCombatAttack(w http.ResponseWriter, r *http.Request) {
	var req combatRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	if req.PlayerID == 0 {
		req.PlayerID = sessionPlayerID(r)
	}
	if req.RoomID == 0 {
		httputil.BadRequest(w, "Room ID is required")
		return
	}

	result, err := s.combat.PlayerAttack(r.Context(), req.PlayerID, req.RoomID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleCombatEnemyTurn(w http.ResponseWriter, r *http.Request) {
	var req combatRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	if req.PlayerID == 0 {
		req.PlayerID = sessionPlayerID(r)
	}
	if req.RoomID == 0 {
		httputil.BadRequest(w, "Room ID is required")
		return
	}

	result, err := s.combat.EnemyTurn(r.Context(), req.PlayerID, req.RoomID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleCombatGameOver(w http.ResponseWriter, r *http.Request) {
	playerID, err := strconv.Atoi(mux.Vars(r)["player_id"])
	if err != nil {
		httputil.BadRequest(w, "invalid player id")
		return
	}

	result, err := s.combat.GameOver(r.Context(), playerID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}
