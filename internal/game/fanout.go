package game

// Audience-scoped push. Delivery is best-effort to currently connected
// members; a push has no caller-visible failure path. All helpers require
// the room lock.

func (r *Room) sendToPlayerLocked(playerID string, env Envelope) {
	p := r.Players[playerID]
	if p == nil || p.conn == nil {
		return
	}
	p.conn.Send(env)
}

func (r *Room) sendToTeamLocked(teamID TeamID, env Envelope, except string) {
	team := r.Teams[teamID]
	if team == nil {
		return
	}
	for _, pid := range team.Players {
		if pid == except {
			continue
		}
		r.sendToPlayerLocked(pid, env)
	}
}

func (r *Room) broadcastLocked(env Envelope) {
	for _, p := range r.Players {
		if p.conn != nil {
			p.conn.Send(env)
		}
	}
}

// broadcastStateLocked renders a fresh per-viewer snapshot for every
// connected player; no two viewers share a payload.
func (r *Room) broadcastStateLocked(nowMs int64) {
	for _, p := range r.Players {
		if p.conn == nil {
			continue
		}
		snap := MakeVisibleSnapshot(r, p.ID, nowMs)
		p.conn.Send(Envelope{Type: "room:state", Payload: mustJSON(snap)})
	}
}

// emitCardVisibilityLocked pushes a newly exposed card: the real words go
// to the poet and to every member of the opposing team; the poet's own
// teammates get a placeholder carrying the card id but no words.
func (r *Room) emitCardVisibilityLocked(turn *Turn, card Card, nowMs int64) {
	remaining := RemainingSeconds(turn.EndsAt, nowMs)

	withWords := Envelope{Type: "turns:card", Payload: mustJSON(CardPayload{
		TurnID:           turn.ID,
		CardID:           card.ID,
		OnePoint:         card.OnePoint,
		ThreePoint:       card.ThreePoint,
		RemainingSeconds: remaining,
	})}
	placeholder := Envelope{Type: "turns:card", Payload: mustJSON(CardPayload{
		TurnID:           turn.ID,
		CardID:           card.ID,
		RemainingSeconds: remaining,
	})}

	r.sendToPlayerLocked(turn.PoetID, withWords)
	r.sendToTeamLocked(Opposing(turn.TeamID), withWords, "")
	r.sendToTeamLocked(turn.TeamID, placeholder, turn.PoetID)
}
