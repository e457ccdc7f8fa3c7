package httpapi

import (
	"encoding/json"
	"net/http"

	"example.com/madglad/internal/game"
)

// ErrorResponse mirrors the socket error payload so HTTP clients can reuse
// the same decoder and code switch.
type ErrorResponse struct {
	Code    game.ErrorCode `json:"code"`
	Message string         `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeGameError renders a domain error with the matching HTTP status.
func writeGameError(w http.ResponseWriter, gerr *game.Error) {
	writeJSON(w, statusFor(gerr.Code), ErrorResponse{Code: gerr.Code, Message: gerr.Message})
}

func statusFor(code game.ErrorCode) int {
	switch code {
	case game.CodeValidation:
		return http.StatusBadRequest
	case game.CodeForbidden:
		return http.StatusForbidden
	case game.CodeRoomNotFound:
		return http.StatusNotFound
	case game.CodeRoomExpired:
		return http.StatusGone
	case game.CodeNameTaken, game.CodeBadState, game.CodeNotYourTurn:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
