package game

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConn() *ClientConn {
	return &ClientConn{
		ws:   nil,
		send: make(chan []byte, 256),
	}
}

func readEnvelopes(c *ClientConn) []Envelope {
	var envs []Envelope
	for {
		select {
		case msg := <-c.send:
			var env Envelope
			if json.Unmarshal(msg, &env) == nil {
				envs = append(envs, env)
			}
		default:
			return envs
		}
	}
}

func findEnvelope(envs []Envelope, typ string) (Envelope, bool) {
	for _, env := range envs {
		if env.Type == typ {
			return env, true
		}
	}
	return Envelope{}, false
}

// testRoom builds a lobby with the given players split over the two teams.
// The first Team-A name is the creator. Tokens are returned by player id.
func testRoom(t *testing.T, teamA, teamB []string) (*Room, map[string]string) {
	t.Helper()
	require.NotEmpty(t, teamA)

	reg := NewRegistry(nil)
	tokens := make(map[string]string)

	res, gerr := CreateRoom(reg, teamA[0], nil, 1000)
	require.Nil(t, gerr)
	room := res.Room
	tokens[res.Player.ID] = res.PlayerToken

	join := func(name string, team TeamID) string {
		room.Lock()
		defer room.Unlock()
		jr, gerr := JoinRoom(room, name, 1000)
		require.Nil(t, gerr)
		tokens[jr.Player.ID] = jr.PlayerToken
		if jr.Player.TeamID != team {
			_, gerr := ReassignPlayers(room, []TeamMove{{PlayerID: jr.Player.ID, TeamID: team}})
			require.Nil(t, gerr)
		}
		return jr.Player.ID
	}

	for _, name := range teamA[1:] {
		join(name, TeamA)
	}
	for _, name := range teamB {
		join(name, TeamB)
	}
	return room, tokens
}

// playerByName resolves a player id from the display name used in fixtures.
func playerByName(t *testing.T, room *Room, name string) *Player {
	t.Helper()
	for _, p := range room.Players {
		if p.Name == name {
			return p
		}
	}
	t.Fatalf("no player named %q", name)
	return nil
}

// testDeck is a small fixed catalog so draw order is easy to control.
func testDeck(t *testing.T, n int) *Deck {
	t.Helper()
	cards := make([]Card, 0, n)
	for i := 0; i < n; i++ {
		id := string(rune('a' + i))
		cards = append(cards, Card{ID: id, OnePoint: "one-" + id, ThreePoint: "three-" + id})
	}
	deck, err := NewDeck(cards)
	require.NoError(t, err)
	return deck
}
