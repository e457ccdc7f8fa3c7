package game

// RoomSnapshot is the serializable state of a room, fit for Redis. It is a
// full copy; nothing in it aliases the live room.
type RoomSnapshot struct {
	Code      string    `json:"code"`
	CreatedAt int64     `json:"createdAt"`
	CreatorID string    `json:"creatorId"`
	State     RoomState `json:"state"`

	Players []PlayerSnapshot `json:"players"`
	Teams   []TeamSnapshot   `json:"teams"`

	Settings SettingsSnapshot `json:"settings"`

	DrawPile    []string `json:"drawPile"`
	DiscardPile []string `json:"discardPile"`

	Rounds       []RoundSnapshot `json:"rounds"`
	CurrentRound int             `json:"currentRound"`

	Turns []TurnSnapshot `json:"turns"`

	LastTurnSummary *TurnSummary `json:"lastTurnSummary,omitempty"`
}

type PlayerSnapshot struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TeamID    TeamID `json:"teamId"`
	IsCreator bool   `json:"isCreator"`
	TokenHash string `json:"tokenHash"`
}

type TeamSnapshot struct {
	ID      TeamID   `json:"id"`
	Players []string `json:"players"`
	Score   int      `json:"score"`
}

type SettingsSnapshot struct {
	TurnSeconds  int               `json:"turnSeconds"`
	WinningScore int               `json:"winningScore"`
	AllowPass    bool              `json:"allowPass"`
	TeamNames    map[TeamID]string `json:"teamNames"`
}

type RoundSnapshot struct {
	Number         int      `json:"number"`
	PoetOrder      []string `json:"poetOrder"`
	CompletedTurns []string `json:"completedTurns"`
	ActiveTurnID   string   `json:"activeTurnId,omitempty"`
}

type TurnSnapshot struct {
	ID           string        `json:"id"`
	RoundNumber  int           `json:"roundNumber"`
	PoetID       string        `json:"poetId"`
	TeamID       TeamID        `json:"teamId"`
	StartedAt    int64         `json:"startedAt"`
	EndsAt       int64         `json:"endsAt"`
	ActiveCardID string        `json:"activeCardId,omitempty"`
	Outcomes     []TurnOutcome `json:"outcomes"`
	EndedReason  EndedReason   `json:"endedReason,omitempty"`
}

func (r *Room) snapshotLocked() RoomSnapshot {
	snap := RoomSnapshot{
		Code:         r.Code,
		CreatedAt:    r.CreatedAt,
		CreatorID:    r.CreatorID,
		State:        r.State,
		DrawPile:     append([]string(nil), r.DrawPile...),
		DiscardPile:  append([]string(nil), r.DiscardPile...),
		CurrentRound: r.CurrentRound,
		Settings: SettingsSnapshot{
			TurnSeconds:  r.Settings.TurnSeconds,
			WinningScore: r.Settings.WinningScore,
			AllowPass:    r.Settings.AllowPass,
			TeamNames: map[TeamID]string{
				TeamA: r.Settings.TeamNames[TeamA],
				TeamB: r.Settings.TeamNames[TeamB],
			},
		},
	}

	for _, p := range r.Players {
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:        p.ID,
			Name:      p.Name,
			TeamID:    p.TeamID,
			IsCreator: p.IsCreator,
			TokenHash: p.TokenHash,
		})
	}
	for _, id := range []TeamID{TeamA, TeamB} {
		t := r.Teams[id]
		snap.Teams = append(snap.Teams, TeamSnapshot{
			ID:      t.ID,
			Players: append([]string(nil), t.Players...),
			Score:   t.Score,
		})
	}
	for _, rd := range r.Rounds {
		snap.Rounds = append(snap.Rounds, RoundSnapshot{
			Number:         rd.Number,
			PoetOrder:      append([]string(nil), rd.PoetOrder...),
			CompletedTurns: append([]string(nil), rd.CompletedTurns...),
			ActiveTurnID:   rd.ActiveTurnID,
		})
	}
	for _, t := range r.Turns {
		snap.Turns = append(snap.Turns, TurnSnapshot{
			ID:           t.ID,
			RoundNumber:  t.RoundNumber,
			PoetID:       t.PoetID,
			TeamID:       t.TeamID,
			StartedAt:    t.StartedAt,
			EndsAt:       t.EndsAt,
			ActiveCardID: t.ActiveCardID,
			Outcomes:     append([]TurnOutcome(nil), t.Outcomes...),
			EndedReason:  t.EndedReason,
		})
	}

	if r.LastTurnSummary != nil {
		s := *r.LastTurnSummary
		s.WordsPlayed = append([]PlayedCard(nil), r.LastTurnSummary.WordsPlayed...)
		snap.LastTurnSummary = &s
	}

	return snap
}

// restore rebuilds a live room from a snapshot. Connection state is not part
// of a snapshot: every player comes back disconnected.
func (s RoomSnapshot) restore() *Room {
	room := &Room{
		Code:         s.Code,
		CreatedAt:    s.CreatedAt,
		CreatorID:    s.CreatorID,
		State:        s.State,
		DrawPile:     append([]string(nil), s.DrawPile...),
		DiscardPile:  append([]string(nil), s.DiscardPile...),
		CurrentRound: s.CurrentRound,
		Players:      make(map[string]*Player, len(s.Players)),
		Teams:        make(map[TeamID]*Team, 2),
		Rounds:       make(map[int]*Round, len(s.Rounds)),
		Turns:        make(map[string]*Turn, len(s.Turns)),
		Settings: Settings{
			TurnSeconds:  s.Settings.TurnSeconds,
			WinningScore: s.Settings.WinningScore,
			AllowPass:    s.Settings.AllowPass,
			TeamNames: map[TeamID]string{
				TeamA: s.Settings.TeamNames[TeamA],
				TeamB: s.Settings.TeamNames[TeamB],
			},
		},
		LastTurnSummary: s.LastTurnSummary,
	}

	for _, p := range s.Players {
		room.Players[p.ID] = &Player{
			ID:        p.ID,
			Name:      p.Name,
			TeamID:    p.TeamID,
			IsCreator: p.IsCreator,
			TokenHash: p.TokenHash,
		}
	}
	for _, t := range s.Teams {
		room.Teams[t.ID] = &Team{
			ID:      t.ID,
			Players: append([]string(nil), t.Players...),
			Score:   t.Score,
		}
	}
	for _, rd := range s.Rounds {
		room.Rounds[rd.Number] = &Round{
			Number:         rd.Number,
			PoetOrder:      append([]string(nil), rd.PoetOrder...),
			CompletedTurns: append([]string(nil), rd.CompletedTurns...),
			ActiveTurnID:   rd.ActiveTurnID,
		}
	}
	for _, t := range s.Turns {
		room.Turns[t.ID] = &Turn{
			ID:           t.ID,
			RoundNumber:  t.RoundNumber,
			PoetID:       t.PoetID,
			TeamID:       t.TeamID,
			StartedAt:    t.StartedAt,
			EndsAt:       t.EndsAt,
			ActiveCardID: t.ActiveCardID,
			Outcomes:     append([]TurnOutcome(nil), t.Outcomes...),
			EndedReason:  t.EndedReason,
		}
	}

	return room
}
