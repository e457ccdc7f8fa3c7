package game

import (
	"fmt"
	"math/rand"
	"strings"
)

// Card is one word-pair entry of the catalog: a 1-point and a 3-point clue
// target. The catalog itself is immutable once loaded.
type Card struct {
	ID         string
	OnePoint   string
	ThreePoint string
}

// Deck is the read-only card catalog, keyed by card id. Rooms reference
// cards by id only; words are resolved through the deck at send time.
type Deck struct {
	cards map[string]Card
	order []string // load order, for deterministic AllIDs
}

func NewDeck(raw []Card) (*Deck, error) {
	d := &Deck{cards: make(map[string]Card, len(raw))}
	for _, c := range raw {
		if c.ID == "" || c.OnePoint == "" || c.ThreePoint == "" {
			return nil, fmt.Errorf("deck: invalid card entry %+v", c)
		}
		if _, dup := d.cards[c.ID]; dup {
			return nil, fmt.Errorf("deck: duplicate card id %q", c.ID)
		}
		d.cards[c.ID] = Card{
			ID:         c.ID,
			OnePoint:   strings.TrimSpace(c.OnePoint),
			ThreePoint: strings.TrimSpace(c.ThreePoint),
		}
		d.order = append(d.order, c.ID)
	}
	if len(d.cards) == 0 {
		return nil, fmt.Errorf("deck: no cards")
	}
	return d, nil
}

func (d *Deck) Card(id string) (Card, bool) {
	c, ok := d.cards[id]
	return c, ok
}

func (d *Deck) Size() int { return len(d.cards) }

// AllIDs returns a fresh copy of every card id in load order.
func (d *Deck) AllIDs() []string {
	return append([]string(nil), d.order...)
}

// ShuffledIDs returns every card id in random order; used to build a fresh
// draw pile when the first round starts.
func (d *Deck) ShuffledIDs() []string {
	ids := d.AllIDs()
	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	return ids
}

// drawNextCardID pops the front of the draw pile, FIFO.
func drawNextCardID(room *Room) (string, bool) {
	if len(room.DrawPile) == 0 {
		return "", false
	}
	id := room.DrawPile[0]
	room.DrawPile = room.DrawPile[1:]
	return id, true
}
