package game

import "example.com/madglad/internal/auth"

// RequireAuth resolves a bearer token to a player by hashing it and
// scanning the room's stored hashes. Missing token is VALIDATION; a token
// that matches nobody in the room is FORBIDDEN.
func RequireAuth(room *Room, token string) (*Player, *Error) {
	if token == "" {
		return nil, validation("Missing token")
	}
	for _, p := range room.Players {
		if auth.VerifyTokenHash(token, p.TokenHash) {
			return p, nil
		}
	}
	return nil, forbidden("Invalid token for this room")
}

// EnsureCreator gates creator-only actions.
func EnsureCreator(room *Room, playerID string) *Error {
	if playerID != room.CreatorID {
		return forbidden("Only the room creator can do that")
	}
	return nil
}

// EnsureLobby gates actions that are only legal before the first round.
func EnsureLobby(room *Room) *Error {
	if room.State != StateLobby {
		return badState("Room is not in the lobby")
	}
	return nil
}
