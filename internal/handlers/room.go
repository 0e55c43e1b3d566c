package handlers

import (
	"net/http"

	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/models"
	"github.com/thinkingjet/Real-time-translator-kagi-demo/internal/room"
)

// RoomHandler serves read-only roster information for UI consumption.
type RoomHandler struct {
	store *room.Store
}

// NewRoomHandler creates the roster handler.
func NewRoomHandler(store *room.Store) *RoomHandler {
	return &RoomHandler{store: store}
}

type rosterResponse struct {
	Users []models.Participant `json:"users"`
}

// Get returns the current roster in join order.
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, rosterResponse{Users: h.store.Snapshot()})
}
