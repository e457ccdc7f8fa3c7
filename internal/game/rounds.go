package game

// BuildPoetOrder interleaves the two teams row-wise: A[0], B[0], A[1], B[1],
// ... The longer team's remaining members come last, in original order.
func BuildPoetOrder(room *Room) []string {
	a := room.Teams[TeamA].Players
	b := room.Teams[TeamB].Players

	order := make([]string, 0, len(a)+len(b))
	for i := 0; i < max(len(a), len(b)); i++ {
		if i < len(a) {
			order = append(order, a[i])
		}
		if i < len(b) {
			order = append(order, b[i])
		}
	}
	return order
}

// RotatePoetOrder moves the first poet to the end, so the next round starts
// with whoever went second.
func RotatePoetOrder(order []string) []string {
	if len(order) < 2 {
		return append([]string(nil), order...)
	}
	rotated := make([]string, 0, len(order))
	rotated = append(rotated, order[1:]...)
	return append(rotated, order[0])
}

// IsRoundComplete reports whether every poet of the current round has a
// completed turn and no turn is active.
func IsRoundComplete(room *Room) bool {
	round := room.currentRoundLocked()
	if round == nil {
		return false
	}
	return len(round.CompletedTurns) >= len(round.PoetOrder) && round.ActiveTurnID == ""
}

type RoundDescriptor struct {
	Number       int      `json:"number"`
	PoetOrder    []string `json:"poetOrder"`
	ActiveTurnID string   `json:"activeTurnId,omitempty"`
}

// StartFirstRound moves a lobby into round 1: fresh shuffled draw pile,
// cleared discard pile, interleaved poet order, no active turn. The caller
// must hold the room lock.
func StartFirstRound(room *Room, deck *Deck) (*RoundDescriptor, *Error) {
	if room.State != StateLobby {
		return nil, badState("Round can only be started from the lobby")
	}
	if len(room.Teams[TeamA].Players) == 0 || len(room.Teams[TeamB].Players) == 0 {
		return nil, validation("Both teams must have at least one player")
	}

	room.DrawPile = deck.ShuffledIDs()
	room.DiscardPile = nil

	round := &Round{
		Number:    1,
		PoetOrder: BuildPoetOrder(room),
	}
	room.Rounds[1] = round
	room.CurrentRound = 1
	room.State = StateInRound

	return &RoundDescriptor{Number: 1, PoetOrder: append([]string(nil), round.PoetOrder...)}, nil
}

// StartNextRound advances BETWEEN_ROUNDS -> IN_ROUND with a rotated poet
// order. Reaching the winning score never ends the game here; round
// advancement is independent of score. The caller must hold the room lock.
func StartNextRound(room *Room) (*RoundDescriptor, *Error) {
	if room.State != StateBetweenRounds {
		return nil, badState("Next round can only start between rounds")
	}
	current := room.currentRoundLocked()
	if current == nil {
		return nil, badState("No round to advance from")
	}
	if len(current.CompletedTurns) < len(current.PoetOrder) || current.ActiveTurnID != "" {
		return nil, badState("Current round is not complete")
	}

	number := current.Number + 1
	round := &Round{
		Number:    number,
		PoetOrder: RotatePoetOrder(current.PoetOrder),
	}
	room.Rounds[number] = round
	room.CurrentRound = number
	room.State = StateInRound

	return &RoundDescriptor{Number: number, PoetOrder: append([]string(nil), round.PoetOrder...)}, nil
}
