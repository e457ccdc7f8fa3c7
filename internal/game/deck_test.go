package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck_Validation(t *testing.T) {
	cases := []struct {
		name  string
		cards []Card
	}{
		{"empty", nil},
		{"missing id", []Card{{OnePoint: "a", ThreePoint: "b"}}},
		{"missing word", []Card{{ID: "x", OnePoint: "a"}}},
		{"duplicate id", []Card{
			{ID: "x", OnePoint: "a", ThreePoint: "b"},
			{ID: "x", OnePoint: "c", ThreePoint: "d"},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewDeck(tc.cards)
			assert.Error(t, err)
		})
	}
}

func TestDeck_Lookup(t *testing.T) {
	deck := testDeck(t, 3)

	c, ok := deck.Card("a")
	require.True(t, ok)
	assert.Equal(t, "one-a", c.OnePoint)

	_, ok = deck.Card("nope")
	assert.False(t, ok)

	assert.Equal(t, 3, deck.Size())
}

func TestDeck_ShuffledIDs_IsPermutation(t *testing.T) {
	deck, err := NewDeck(DefaultDeck)
	require.NoError(t, err)

	ids := deck.ShuffledIDs()
	require.Len(t, ids, deck.Size())

	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %q in shuffle", id)
		}
		seen[id] = true
		if _, ok := deck.Card(id); !ok {
			t.Fatalf("shuffled id %q not in catalog", id)
		}
	}
}

func TestDrawNextCardID_FIFO(t *testing.T) {
	room := &Room{DrawPile: []string{"x", "y", "z"}}

	id, ok := drawNextCardID(room)
	require.True(t, ok)
	assert.Equal(t, "x", id)
	assert.Equal(t, []string{"y", "z"}, room.DrawPile)

	drawNextCardID(room)
	drawNextCardID(room)
	_, ok = drawNextCardID(room)
	assert.False(t, ok)
}
