// Package httpapi exposes the small read-only HTTP surface next to the
// websocket endpoint: a room existence probe for the join screen. All
// gameplay rides the socket.
package httpapi

import (
	"net/http"
	"strings"

	"example.com/madglad/internal/game"
)

type RoomHandler struct {
	Rooms *game.Registry
}

type RoomInfoResponse struct {
	Code        string         `json:"code"`
	State       game.RoomState `json:"state"`
	PlayerCount int            `json:"playerCount"`
	Joinable    bool           `json:"joinable"`
}

// Info handles GET /api/rooms/{code}. It exposes only what a join screen
// needs; no names, no tokens, no scores.
func (h *RoomHandler) Info(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Code: game.CodeValidation, Message: "use GET"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(r.PathValue("code")))
	if code == "" {
		writeGameError(w, &game.Error{Code: game.CodeValidation, Message: "room code is required"})
		return
	}

	room, ok, err := h.Rooms.GetOrLoad(r.Context(), code)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Code: "INTERNAL", Message: "room lookup failed"})
		return
	}
	if !ok {
		writeGameError(w, &game.Error{Code: game.CodeRoomNotFound, Message: "no such room"})
		return
	}

	room.Lock()
	defer room.Unlock()

	writeJSON(w, http.StatusOK, RoomInfoResponse{
		Code:        room.Code,
		State:       room.State,
		PlayerCount: len(room.Players),
		Joinable:    room.State == game.StateLobby,
	})
}
