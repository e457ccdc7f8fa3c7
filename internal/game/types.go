package game

import "encoding/json"

// Envelope WS envelope: {"type":"...","id":"...","token":"...","payload":{...}}.
// ID correlates a request with its ack; Token authenticates every action
// except rooms:create and rooms:join.
type Envelope struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Token   string          `json:"token,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Incoming payloads.

type CreateRoomPayload struct {
	Name     string        `json:"name"`
	Settings SettingsPatch `json:"settings"`
}

type JoinRoomPayload struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type UpdateSettingsPayload struct {
	Code     string        `json:"code"`
	Settings SettingsPatch `json:"settings"`
}

type AssignTeamsPayload struct {
	Code  string     `json:"code"`
	Moves []TeamMove `json:"moves"`
}

type RoomActionPayload struct {
	Code string `json:"code"`
}

type NextCardPayload struct {
	Code    string  `json:"code"`
	CardID  string  `json:"cardId"`
	Outcome Outcome `json:"outcome"`
}

// Outgoing payloads.

type CreatedPayload struct {
	Room   VisibleSnapshot `json:"room"`
	Player VisiblePlayer   `json:"player"`
	Token  string          `json:"token"`
}

type SettingsUpdatedPayload struct {
	Room    VisibleSnapshot `json:"room"`
	Changed []string        `json:"changed"`
}

type TeamsAssignedPayload struct {
	Room       VisibleSnapshot `json:"room"`
	Reassigned []TeamMove      `json:"reassigned"`
}

type TurnStartedPayload struct {
	TurnID           string `json:"turnId"`
	PoetID           string `json:"poetId"`
	TeamID           TeamID `json:"teamId"`
	RemainingSeconds int    `json:"remainingSeconds"`
}

// CardPayload is the audience-scoped card push. Words are set only on the
// copies sent to the poet and the opposing team; teammates get the id and
// remaining time alone.
type CardPayload struct {
	TurnID           string `json:"turnId"`
	CardID           string `json:"cardId"`
	OnePoint         string `json:"onePoint,omitempty"`
	ThreePoint       string `json:"threePoint,omitempty"`
	RemainingSeconds int    `json:"remainingSeconds"`
}

type CardScoredPayload struct {
	TurnID        string    `json:"turnId"`
	CardID        string    `json:"cardId"`
	Outcome       Outcome   `json:"outcome"`
	LastCardDelta TeamDelta `json:"lastCardDelta"`
	Scores        TeamDelta `json:"scores"`
}

type TurnEndedPayload struct {
	Summary     TurnSummary `json:"summary"`
	EndedReason EndedReason `json:"endedReason"`
}

type RoundEndedPayload struct {
	RoundNumber int       `json:"roundNumber"`
	Scores      TeamDelta `json:"scores"`
}

type ErrorPayload struct {
	Error *Error `json:"error"`
}

func mustJSON(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
