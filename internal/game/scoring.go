package game

// ScoreDeltaForOutcome computes the two-team delta for one scored card.
// ONE and THREE credit the poet's team; PENALTY gives +1 to the opposing team.
func ScoreDeltaForOutcome(team TeamID, outcome Outcome) TeamDelta {
	var poet, opp int
	switch outcome {
	case OutcomeOne:
		poet = 1
	case OutcomeThree:
		poet = 3
	case OutcomePenalty:
		opp = 1
	}
	if team == TeamA {
		return TeamDelta{A: poet, B: opp}
	}
	return TeamDelta{A: opp, B: poet}
}

// SumTurnDelta folds a turn's whole outcome history into one aggregate delta.
func SumTurnDelta(outcomes []TurnOutcome, poetTeam TeamID) TeamDelta {
	var total TeamDelta
	for _, o := range outcomes {
		total = total.add(ScoreDeltaForOutcome(poetTeam, o.Outcome))
	}
	return total
}
