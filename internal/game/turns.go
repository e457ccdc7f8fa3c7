package game

// StartTurnResult carries the new turn; the drawn card's words are resolved
// by the caller through the deck and handed only to the poet via the return
// path or the audience-split push, never the general room snapshot.
type StartTurnResult struct {
	Turn *Turn
}

// StartTurn begins the next poet's turn. The caller must be that poet and
// must hold the room lock.
func StartTurn(room *Room, callerID string, nowMs int64) (*StartTurnResult, *Error) {
	if room.State != StateInRound {
		return nil, badState("Not in a round")
	}
	round := room.currentRoundLocked()
	if round == nil {
		return nil, badState("No active round")
	}
	if round.ActiveTurnID != "" {
		return nil, badState("A turn is already active")
	}

	nextPoetID := nextPoet(room, round)
	if nextPoetID == "" {
		return nil, badState("Round is already complete")
	}
	if nextPoetID != callerID {
		return nil, notYourTurn("It is not your turn")
	}

	poet := room.Players[callerID]
	if poet == nil {
		return nil, validation("Unknown player")
	}

	cardID, ok := drawNextCardID(room)
	if !ok {
		return nil, badState("No cards available to draw")
	}

	seconds := room.Settings.TurnSeconds
	if seconds <= 0 {
		seconds = 90
	}

	turn := &Turn{
		ID:           newTurnID(),
		RoundNumber:  round.Number,
		PoetID:       poet.ID,
		TeamID:       poet.TeamID,
		StartedAt:    nowMs,
		EndsAt:       nowMs + int64(seconds)*1000,
		ActiveCardID: cardID,
	}
	room.Turns[turn.ID] = turn
	round.ActiveTurnID = turn.ID

	return &StartTurnResult{Turn: turn}, nil
}

// nextPoet is the first id in poetOrder whose turn has not completed yet.
func nextPoet(room *Room, round *Round) string {
	done := make(map[string]bool, len(round.CompletedTurns))
	for _, turnID := range round.CompletedTurns {
		if t := room.Turns[turnID]; t != nil {
			done[t.PoetID] = true
		}
	}
	for _, poetID := range round.PoetOrder {
		if !done[poetID] {
			return poetID
		}
	}
	return ""
}

// ScoreRequest is one scoring action against the turn's current active card.
type ScoreRequest struct {
	CardID  string  `json:"cardId"`
	Outcome Outcome `json:"outcome"`
}

// ScoreResult is the outcome of one scoring action. Exactly one of NextCard
// or TurnEnded is set: NextCard while the turn continues, TurnEnded once it
// closes.
type ScoreResult struct {
	TurnID        string
	Scores        TeamDelta
	LastCardDelta TeamDelta

	// Continue branch.
	NextCardID  string
	RemainingMs int64

	// Close branch.
	TurnEnded *TurnSummary
	PoetID    string
	TeamID    TeamID
}

// ScoreCurrentAndMaybeNextCard applies the outcome for the active card,
// moves it to the discard pile, and either serves the next card or closes
// the turn (time up or pile exhausted). Scoring a closed turn fails
// BAD_STATE; a card id that is not the active card fails VALIDATION and
// mutates nothing. The caller must hold the room lock.
func ScoreCurrentAndMaybeNextCard(room *Room, callerID string, nowMs int64, req ScoreRequest) (*ScoreResult, *Error) {
	if room.State != StateInRound {
		return nil, badState("No active round")
	}
	round := room.currentRoundLocked()
	if round == nil || round.ActiveTurnID == "" {
		return nil, badState("No active turn")
	}
	turn := room.Turns[round.ActiveTurnID]
	if turn == nil {
		return nil, badState("Turn not found")
	}
	if turn.PoetID != callerID {
		return nil, notYourTurn("Only the poet can score cards")
	}
	if turn.ActiveCardID == "" {
		return nil, badState("No active card to score")
	}
	if req.CardID != turn.ActiveCardID {
		return nil, validation("Mismatched cardId")
	}
	switch req.Outcome {
	case OutcomeOne, OutcomeThree, OutcomePenalty:
	default:
		return nil, validation("Unknown outcome: %s", req.Outcome)
	}

	remainingMs := max(int64(0), turn.EndsAt-nowMs)
	timeUp := remainingMs <= 0

	lastDelta := ScoreDeltaForOutcome(turn.TeamID, req.Outcome)
	room.Teams[TeamA].Score += lastDelta.A
	room.Teams[TeamB].Score += lastDelta.B

	turn.Outcomes = append(turn.Outcomes, TurnOutcome{
		CardID:    req.CardID,
		Outcome:   req.Outcome,
		Timestamp: nowMs,
	})

	room.DiscardPile = append(room.DiscardPile, req.CardID)
	turn.ActiveCardID = ""

	if timeUp || len(room.DrawPile) == 0 {
		reason := EndedManually
		if timeUp {
			reason = EndedByTimer
		}
		summary := closeTurnLocked(room, round, turn, reason)
		return &ScoreResult{
			TurnID:        turn.ID,
			Scores:        summary.FinalScores,
			LastCardDelta: lastDelta,
			TurnEnded:     summary,
			PoetID:        turn.PoetID,
			TeamID:        turn.TeamID,
		}, nil
	}

	nextCardID, _ := drawNextCardID(room)
	turn.ActiveCardID = nextCardID

	return &ScoreResult{
		TurnID:        turn.ID,
		Scores:        room.scores(),
		LastCardDelta: lastDelta,
		NextCardID:    nextCardID,
		RemainingMs:   remainingMs,
		PoetID:        turn.PoetID,
		TeamID:        turn.TeamID,
	}, nil
}

// ForceEndTurn is the timer-driven close. Returns nil when there is nothing
// to end; otherwise the same summary shape as the manual path, tagged with
// poet and team so pushes can be targeted. The caller must hold the room
// lock.
func ForceEndTurn(room *Room) *ScoreResult {
	if room.State != StateInRound {
		return nil
	}
	round := room.currentRoundLocked()
	if round == nil || round.ActiveTurnID == "" {
		return nil
	}
	turn := room.Turns[round.ActiveTurnID]
	if turn == nil {
		return nil
	}

	if turn.ActiveCardID != "" {
		room.DiscardPile = append(room.DiscardPile, turn.ActiveCardID)
		turn.ActiveCardID = ""
	}

	summary := closeTurnLocked(room, round, turn, EndedByTimer)

	return &ScoreResult{
		TurnID:        turn.ID,
		Scores:        summary.FinalScores,
		LastCardDelta: TeamDelta{},
		TurnEnded:     summary,
		PoetID:        turn.PoetID,
		TeamID:        turn.TeamID,
	}
}

// closeTurnLocked is the single place a turn closes: reason recorded, turn
// id appended to the round's completed list, active turn cleared, and the
// room moved to BETWEEN_ROUNDS when this completed the round.
func closeTurnLocked(room *Room, round *Round, turn *Turn, reason EndedReason) *TurnSummary {
	turn.EndedReason = reason
	round.CompletedTurns = append(round.CompletedTurns, turn.ID)
	round.ActiveTurnID = ""

	if IsRoundComplete(room) {
		room.State = StateBetweenRounds
	}

	played := make([]PlayedCard, 0, len(turn.Outcomes))
	for _, o := range turn.Outcomes {
		played = append(played, PlayedCard{CardID: o.CardID, Outcome: o.Outcome})
	}

	summary := &TurnSummary{
		TurnID:      turn.ID,
		TeamDelta:   SumTurnDelta(turn.Outcomes, turn.TeamID),
		WordsPlayed: played,
		FinalScores: room.scores(),
	}
	room.LastTurnSummary = summary
	return summary
}

// ShouldViewerSeeWords decides whether a viewer may see the active card's
// word pair: the poet, and anyone on the team opposing the poet's.
func ShouldViewerSeeWords(poetTeam, viewerTeam TeamID, isPoet bool) bool {
	return isPoet || viewerTeam == Opposing(poetTeam)
}
