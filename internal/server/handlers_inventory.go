package server

import (
	"net/http"
	"strconv"

	"github.com/dungeonworks/gateway/internal/httputil"
)

// pickUpRequest identifies the item transfer. The player defaults to
// the session when the body omits it.
type pickUpRequest struct {
	PlayerID int `json:"player_id"`
	RoomID   int `json:"room_id"`
	ItemID   int `json:"item_id"`
}

func (s *Server) handlePickUpItem(w http.ResponseWriter, r *http.Request) {
	var req pickUpRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	if req.PlayerID == 0 {
		req.PlayerID = sessionPlayerID(r)
	}

	result, err := s.inventory.Pickup(r.Context(), req.PlayerID, req.RoomID, req.ItemID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteRawJSON(w, result.Status, result.Body)
}

func (s *Server) handleViewInventory(w http.ResponseWriter, r *http.Request) {
	result, err := s.inventory.View(r.Context(), requestPlayerID(r))
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (s *Server) handleFetchItemDetails(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.Atoi(r.URL.Query().Get("item_id"))
	if err != nil || itemID == 0 {
		httputil.BadRequest(w, "Item ID is required")
		return
	}

	result, err := s.inventory.ItemDetails(r.Context(), itemID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.WriteRawJSON(w, result.Status, result.Body)
}

// batchRequest lists the items to resolve in one call.
type batchRequest struct {
	ItemIDs []int `json:"item_ids"`
}

func (s *Server) handleFetchItemDetailsBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !httputil.DecodeJSON(w, r, &req) {
		return
	}
	if len(req.ItemIDs) == 0 {
		httputil.BadRequest(w, "Item IDs are required")
		return
	}

	items := s.inventory.ItemDetailsBatch(r.Context(), req.ItemIDs)
	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}
