// Package store holds the Postgres-backed stores. The card catalog lives
// in Postgres so decks can be edited without a redeploy; rooms themselves
// never touch the database.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/madglad/internal/game"
)

type DeckStore struct {
	db *pgxpool.Pool
}

func NewDeckStore(db *pgxpool.Pool) *DeckStore {
	return &DeckStore{db: db}
}

// LoadCards reads the whole card catalog in insertion order.
func (s *DeckStore) LoadCards(ctx context.Context) ([]game.Card, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, one_point, three_point
		FROM cards
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("deck store: query cards: %w", err)
	}
	defer rows.Close()

	var cards []game.Card
	for rows.Next() {
		var c game.Card
		if err := rows.Scan(&c.ID, &c.OnePoint, &c.ThreePoint); err != nil {
			return nil, fmt.Errorf("deck store: scan card: %w", err)
		}
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("deck store: rows: %w", err)
	}
	return cards, nil
}
