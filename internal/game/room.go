package game

import "sync"

type TeamID string

const (
	TeamA TeamID = "A"
	TeamB TeamID = "B"
)

func Opposing(id TeamID) TeamID {
	if id == TeamA {
		return TeamB
	}
	return TeamA
}

type RoomState string

const (
	StateLobby         RoomState = "LOBBY"
	StateInRound       RoomState = "IN_ROUND"
	StateBetweenRounds RoomState = "BETWEEN_ROUNDS"
	StateEnded         RoomState = "ENDED"
)

type Outcome string

const (
	OutcomeOne     Outcome = "ONE"
	OutcomeThree   Outcome = "THREE"
	OutcomePenalty Outcome = "PENALTY"
)

type EndedReason string

const (
	EndedByTimer  EndedReason = "TIMER"
	EndedManually EndedReason = "MANUAL"
)

type Player struct {
	ID        string
	Name      string // unique per room, case-insensitive
	TeamID    TeamID
	IsCreator bool
	Connected bool

	// TokenHash is the only stored form of the player's token; the raw
	// token leaves the server exactly once, on create/join.
	TokenHash string

	// conn is the transient connection handle, nil while disconnected.
	conn *ClientConn
}

type Team struct {
	ID      TeamID
	Players []string // ordered player ids
	Score   int
}

type TurnOutcome struct {
	CardID    string
	Outcome   Outcome
	Timestamp int64 // unix millis
}

type Turn struct {
	ID           string
	RoundNumber  int
	PoetID       string
	TeamID       TeamID
	StartedAt    int64
	EndsAt       int64
	ActiveCardID string // empty when no card is exposed
	Outcomes     []TurnOutcome
	EndedReason  EndedReason // set exactly once, when the turn closes
}

type Round struct {
	Number         int
	PoetOrder      []string // clue-giver sequence, player ids
	CompletedTurns []string // turn ids finished this round
	ActiveTurnID   string
}

type Settings struct {
	TurnSeconds  int
	WinningScore int
	AllowPass    bool
	TeamNames    map[TeamID]string
}

// TeamDelta is a two-team score delta.
type TeamDelta struct {
	A int `json:"A"`
	B int `json:"B"`
}

func (d TeamDelta) add(o TeamDelta) TeamDelta {
	return TeamDelta{A: d.A + o.A, B: d.B + o.B}
}

// TurnSummary is the aggregate of a closed turn: what was played, what it
// was worth, and where the scores landed.
type TurnSummary struct {
	TurnID      string       `json:"turnId"`
	TeamDelta   TeamDelta    `json:"teamDelta"`
	WordsPlayed []PlayedCard `json:"wordsPlayed"`
	FinalScores TeamDelta    `json:"finalScores"`
}

type PlayedCard struct {
	CardID  string  `json:"cardId"`
	Outcome Outcome `json:"outcome"`
}

// Room is the aggregate root. All mutation goes through the lifecycle
// functions in this package while mu is held; the rpc layer and the turn
// timer are the only lockers.
type Room struct {
	mu sync.Mutex

	Code      string
	CreatedAt int64
	CreatorID string
	State     RoomState

	Players map[string]*Player
	Teams   map[TeamID]*Team

	Settings Settings

	DrawPile    []string // card ids, FIFO
	DiscardPile []string

	Rounds       map[int]*Round
	CurrentRound int // 0 => none

	// Turns is the authoritative turn history for the room.
	Turns map[string]*Turn

	// LastTurnSummary survives until the next turn closes.
	LastTurnSummary *TurnSummary
}

func (r *Room) Lock()   { r.mu.Lock() }
func (r *Room) Unlock() { r.mu.Unlock() }

func (r *Room) currentRoundLocked() *Round {
	if r.CurrentRound == 0 {
		return nil
	}
	return r.Rounds[r.CurrentRound]
}

func (r *Room) activeTurnLocked() *Turn {
	round := r.currentRoundLocked()
	if round == nil || round.ActiveTurnID == "" {
		return nil
	}
	return r.Turns[round.ActiveTurnID]
}

func (r *Room) scores() TeamDelta {
	return TeamDelta{A: r.Teams[TeamA].Score, B: r.Teams[TeamB].Score}
}
