package game

import (
	"strings"

	"github.com/google/uuid"

	"example.com/madglad/internal/auth"
)

const maxNameLength = 32

// codeAttempts bounds the collision retry loop before falling back to a
// longer composite code.
const codeAttempts = 20

func DefaultSettings() Settings {
	return Settings{
		TurnSeconds:  90,
		WinningScore: 50,
		AllowPass:    false,
		TeamNames:    map[TeamID]string{TeamA: "MAD", TeamB: "GLAD"},
	}
}

func newPlayerID() string { return "p_" + uuid.NewString() }
func newTurnID() string   { return "t_" + uuid.NewString() }

type CreateRoomResult struct {
	Room        *Room
	Player      *Player
	PlayerToken string // raw token, delivered once, never stored
}

// CreateRoom allocates a fresh room with the caller as creator on Team A.
func CreateRoom(reg *Registry, name string, patch *SettingsPatch, nowMs int64) (*CreateRoomResult, *Error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, validation("Name cannot be empty")
	}
	if len(trimmed) > maxNameLength {
		return nil, validation("Name too long")
	}

	code := generateUniqueRoomCode(reg)

	token, err := auth.GenerateToken()
	if err != nil {
		return nil, validation("Failed to issue player token")
	}

	creator := &Player{
		ID:        newPlayerID(),
		Name:      trimmed,
		TeamID:    TeamA,
		IsCreator: true,
		TokenHash: auth.HashToken(token),
	}

	settings := DefaultSettings()
	room := &Room{
		Code:      code,
		CreatedAt: nowMs,
		CreatorID: creator.ID,
		State:     StateLobby,
		Players:   map[string]*Player{creator.ID: creator},
		Teams: map[TeamID]*Team{
			TeamA: {ID: TeamA, Players: []string{creator.ID}},
			TeamB: {ID: TeamB, Players: []string{}},
		},
		Settings: settings,
		Rounds:   make(map[int]*Round),
		Turns:    make(map[string]*Turn),
	}
	if patch != nil {
		if _, gerr := ApplySettings(room, *patch); gerr != nil {
			return nil, gerr
		}
	}

	reg.Put(room)

	return &CreateRoomResult{Room: room, Player: creator, PlayerToken: token}, nil
}

func generateUniqueRoomCode(reg *Registry) string {
	for i := 0; i < codeAttempts; i++ {
		code := generateRoomCode()
		if _, taken := reg.Get(code); !taken {
			return code
		}
	}
	// Pathological collision rate; a doubled code makes the space huge.
	return generateRoomCode() + generateRoomCode()
}

type JoinRoomResult struct {
	Room        *Room
	Player      *Player
	PlayerToken string
}

// JoinRoom onboards a new player into a lobby, auto-balancing onto the
// smaller team; ties go to Team B so the creator's Team-A seat is matched by
// the first joiner. The caller must hold the room lock.
func JoinRoom(room *Room, name string, nowMs int64) (*JoinRoomResult, *Error) {
	if room.State != StateLobby {
		return nil, badState("Room is not accepting joins right now")
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, validation("Name cannot be empty")
	}
	if len(trimmed) > maxNameLength {
		return nil, validation("Name too long")
	}
	if isNameTaken(room, trimmed) {
		return nil, newError(CodeNameTaken, "Name already taken in this room")
	}

	token, err := auth.GenerateToken()
	if err != nil {
		return nil, validation("Failed to issue player token")
	}

	player := &Player{
		ID:        newPlayerID(),
		Name:      trimmed,
		TeamID:    chooseTeam(room),
		TokenHash: auth.HashToken(token),
	}

	room.Players[player.ID] = player
	room.Teams[player.TeamID].Players = append(room.Teams[player.TeamID].Players, player.ID)

	return &JoinRoomResult{Room: room, Player: player, PlayerToken: token}, nil
}

func chooseTeam(room *Room) TeamID {
	a := len(room.Teams[TeamA].Players)
	b := len(room.Teams[TeamB].Players)
	if a < b {
		return TeamA
	}
	return TeamB
}

func isNameTaken(room *Room, name string) bool {
	target := strings.ToLower(strings.TrimSpace(name))
	for _, p := range room.Players {
		if strings.ToLower(strings.TrimSpace(p.Name)) == target {
			return true
		}
	}
	return false
}
