package game

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attachConns(room *Room) map[string]*ClientConn {
	conns := make(map[string]*ClientConn)
	for id, p := range room.Players {
		cc := newTestConn()
		p.conn = cc
		p.Connected = true
		conns[id] = cc
	}
	return conns
}

func cardPayloadFrom(t *testing.T, envs []Envelope) CardPayload {
	t.Helper()
	env, ok := findEnvelope(envs, "turns:card")
	require.True(t, ok, "no turns:card push")
	var p CardPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	return p
}

func TestEmitCardVisibility_Audiences(t *testing.T) {
	room, _ := testRoom(t, []string{"Kai", "Ally"}, []string{"Guest"})
	deck := testDeck(t, 8)

	room.Lock()
	defer room.Unlock()

	_, gerr := StartFirstRound(room, deck)
	require.Nil(t, gerr)
	conns := attachConns(room)

	kai := playerByName(t, room, "Kai")
	ally := playerByName(t, room, "Ally")
	guest := playerByName(t, room, "Guest")

	res, gerr := StartTurn(room, kai.ID, 0)
	require.Nil(t, gerr)
	turn := res.Turn
	card, ok := deck.Card(turn.ActiveCardID)
	require.True(t, ok)

	room.emitCardVisibilityLocked(turn, card, 0)

	// poet: real words
	p := cardPayloadFrom(t, readEnvelopes(conns[kai.ID]))
	assert.Equal(t, card.OnePoint, p.OnePoint)
	assert.Equal(t, card.ThreePoint, p.ThreePoint)

	// opposing team: real words
	p = cardPayloadFrom(t, readEnvelopes(conns[guest.ID]))
	assert.Equal(t, card.OnePoint, p.OnePoint)

	// poet's teammate: placeholder only
	p = cardPayloadFrom(t, readEnvelopes(conns[ally.ID]))
	assert.Equal(t, card.ID, p.CardID)
	assert.Empty(t, p.OnePoint)
	assert.Empty(t, p.ThreePoint)
}

func TestEmitCardVisibility_SkipsDisconnected(t *testing.T) {
	room, _ := testRoom(t, []string{"Kai"}, []string{"Guest"})
	deck := testDeck(t, 4)

	room.Lock()
	defer room.Unlock()

	_, gerr := StartFirstRound(room, deck)
	require.Nil(t, gerr)
	conns := attachConns(room)

	kai := playerByName(t, room, "Kai")
	guest := playerByName(t, room, "Guest")
	guest.conn = nil
	guest.Connected = false

	res, gerr := StartTurn(room, kai.ID, 0)
	require.Nil(t, gerr)
	card, _ := deck.Card(res.Turn.ActiveCardID)

	// must not panic on the disconnected member
	room.emitCardVisibilityLocked(res.Turn, card, 0)

	assert.NotEmpty(t, readEnvelopes(conns[kai.ID]))
	assert.Empty(t, readEnvelopes(conns[guest.ID]))
}

func TestBroadcastState_PerViewerRedaction(t *testing.T) {
	room, _ := testRoom(t, []string{"Kai", "Ally"}, []string{"Guest"})
	deck := testDeck(t, 8)

	room.Lock()
	defer room.Unlock()

	_, gerr := StartFirstRound(room, deck)
	require.Nil(t, gerr)
	conns := attachConns(room)

	kai := playerByName(t, room, "Kai")
	ally := playerByName(t, room, "Ally")

	_, gerr = StartTurn(room, kai.ID, 0)
	require.Nil(t, gerr)

	room.broadcastStateLocked(0)

	stateOf := func(id string) VisibleSnapshot {
		env, ok := findEnvelope(readEnvelopes(conns[id]), "room:state")
		require.True(t, ok)
		var snap VisibleSnapshot
		require.NoError(t, json.Unmarshal(env.Payload, &snap))
		return snap
	}

	// the poet's snapshot carries the sentinel, the teammate's carries none
	poetSnap := stateOf(kai.ID)
	require.NotNil(t, poetSnap.Round.ActiveTurn.ActiveCard)
	assert.Equal(t, RedactedWord, poetSnap.Round.ActiveTurn.ActiveCard.OnePoint)

	allySnap := stateOf(ally.ID)
	require.NotNil(t, allySnap.Round.ActiveTurn.ActiveCard)
	assert.Empty(t, allySnap.Round.ActiveTurn.ActiveCard.OnePoint)
}
