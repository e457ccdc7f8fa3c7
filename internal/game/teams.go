package game

// TeamMove assigns one player to one team.
type TeamMove struct {
	PlayerID string `json:"playerId"`
	TeamID   TeamID `json:"teamId"`
}

// ReassignPlayers applies a bulk team reassignment. All player ids are
// validated before anything moves (fail-fast, no partial application).
// Duplicate moves for the same player collapse to the last one; no-op moves
// are skipped. The result is exactly the set of players whose team changed.
// The caller must hold the room lock.
func ReassignPlayers(room *Room, moves []TeamMove) ([]TeamMove, *Error) {
	for _, m := range moves {
		if _, ok := room.Players[m.PlayerID]; !ok {
			return nil, validation("Unknown player: %s", m.PlayerID)
		}
		if m.TeamID != TeamA && m.TeamID != TeamB {
			return nil, validation("Unknown team: %s", m.TeamID)
		}
	}

	// Last write wins per player, preserving first-seen order.
	final := make(map[string]TeamID, len(moves))
	var order []string
	for _, m := range moves {
		if _, seen := final[m.PlayerID]; !seen {
			order = append(order, m.PlayerID)
		}
		final[m.PlayerID] = m.TeamID
	}

	var reassigned []TeamMove
	for _, playerID := range order {
		target := final[playerID]
		player := room.Players[playerID]
		if player.TeamID == target {
			continue
		}

		old := room.Teams[player.TeamID]
		old.Players = removeID(old.Players, playerID)
		room.Teams[target].Players = append(room.Teams[target].Players, playerID)
		player.TeamID = target

		reassigned = append(reassigned, TeamMove{PlayerID: playerID, TeamID: target})
	}

	return reassigned, nil
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
