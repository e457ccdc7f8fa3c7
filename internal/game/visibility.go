package game

import "math"

// RedactedWord is the placeholder written into general snapshots in place
// of the real word pair. Authorized viewers still get this sentinel in the
// snapshot; the actual words travel only on the card push.
const RedactedWord = "REDACTED_AT_SEND"

// VisiblePlayer, VisibleTeam, VisibleTurn, VisibleCard and VisibleSnapshot
// are the per-viewer wire projections. Everything here is a copy; viewers
// never alias engine state.
type VisiblePlayer struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TeamID    TeamID `json:"teamId"`
	IsCreator bool   `json:"isCreator"`
	Connected bool   `json:"connected"`
}

type VisibleTeam struct {
	ID      TeamID   `json:"id"`
	Name    string   `json:"name"`
	Players []string `json:"players"`
	Score   int      `json:"score"`
}

type VisibleCard struct {
	ID         string `json:"id"`
	OnePoint   string `json:"onePoint,omitempty"`
	ThreePoint string `json:"threePoint,omitempty"`
}

type VisibleTurn struct {
	ID               string       `json:"id"`
	PoetID           string       `json:"poetId"`
	TeamID           TeamID       `json:"teamId"`
	RemainingSeconds int          `json:"remainingSeconds"`
	OutcomeCount     int          `json:"outcomeCount"`
	ActiveCard       *VisibleCard `json:"activeCard,omitempty"`
}

type VisibleRound struct {
	Number     int          `json:"number"`
	PoetOrder  []string     `json:"poetOrder"`
	ActiveTurn *VisibleTurn `json:"activeTurn,omitempty"`
}

type VisibleSettings struct {
	TurnSeconds  int               `json:"turnSeconds"`
	WinningScore int               `json:"winningScore"`
	AllowPass    bool              `json:"allowPass"`
	TeamNames    map[TeamID]string `json:"teamNames"`
}

type VisibleSnapshot struct {
	Code            string          `json:"code"`
	State           RoomState       `json:"state"`
	Players         []VisiblePlayer `json:"players"`
	Teams           []VisibleTeam   `json:"teams"`
	Settings        VisibleSettings `json:"settings"`
	DrawPileSize    int             `json:"drawPileSize"`
	Round           *VisibleRound   `json:"round,omitempty"`
	LastTurnSummary *TurnSummary    `json:"lastTurnSummary,omitempty"`
}

// RemainingSeconds is max(0, ceil((endsAt-now)/1000)); at now == endsAt it
// is exactly 0.
func RemainingSeconds(endsAt, nowMs int64) int {
	if nowMs >= endsAt {
		return 0
	}
	return int(math.Ceil(float64(endsAt-nowMs) / 1000))
}

// MakeVisibleSnapshot renders the room for one viewer. Rosters, scores and
// outcome counts are universal; the active card's words appear (as the
// redaction sentinel) only to the poet and the opposing team, and the
// poet's teammates get the card id alone. With no current round the round
// block is omitted entirely. The caller must hold the room lock.
func MakeVisibleSnapshot(room *Room, viewerID string, nowMs int64) VisibleSnapshot {
	snap := VisibleSnapshot{
		Code:         room.Code,
		State:        room.State,
		DrawPileSize: len(room.DrawPile),
		Settings: VisibleSettings{
			TurnSeconds:  room.Settings.TurnSeconds,
			WinningScore: room.Settings.WinningScore,
			AllowPass:    room.Settings.AllowPass,
			TeamNames: map[TeamID]string{
				TeamA: room.Settings.TeamNames[TeamA],
				TeamB: room.Settings.TeamNames[TeamB],
			},
		},
	}

	// Rosters marshal as [] rather than null, matching the wire schema.
	snap.Players = make([]VisiblePlayer, 0, len(room.Players))
	snap.Teams = make([]VisibleTeam, 0, 2)
	for _, id := range []TeamID{TeamA, TeamB} {
		team := room.Teams[id]
		for _, pid := range team.Players {
			p := room.Players[pid]
			snap.Players = append(snap.Players, VisiblePlayer{
				ID:        p.ID,
				Name:      p.Name,
				TeamID:    p.TeamID,
				IsCreator: p.IsCreator,
				Connected: p.Connected,
			})
		}
		snap.Teams = append(snap.Teams, VisibleTeam{
			ID:      id,
			Name:    room.Settings.TeamNames[id],
			Players: append(make([]string, 0, len(team.Players)), team.Players...),
			Score:   team.Score,
		})
	}

	if room.LastTurnSummary != nil {
		summary := *room.LastTurnSummary
		summary.WordsPlayed = append([]PlayedCard(nil), room.LastTurnSummary.WordsPlayed...)
		snap.LastTurnSummary = &summary
	}

	round := room.currentRoundLocked()
	if round == nil {
		return snap
	}

	vr := &VisibleRound{
		Number:    round.Number,
		PoetOrder: append([]string(nil), round.PoetOrder...),
	}
	if turn := room.activeTurnLocked(); turn != nil {
		vt := &VisibleTurn{
			ID:               turn.ID,
			PoetID:           turn.PoetID,
			TeamID:           turn.TeamID,
			RemainingSeconds: RemainingSeconds(turn.EndsAt, nowMs),
			OutcomeCount:     len(turn.Outcomes),
		}
		if turn.ActiveCardID != "" {
			card := &VisibleCard{ID: turn.ActiveCardID}
			viewer := room.Players[viewerID]
			isPoet := viewerID == turn.PoetID
			if viewer != nil && ShouldViewerSeeWords(turn.TeamID, viewer.TeamID, isPoet) {
				card.OnePoint = RedactedWord
				card.ThreePoint = RedactedWord
			}
			vt.ActiveCard = card
		}
		vr.ActiveTurn = vt
	}
	snap.Round = vr
	return snap
}
