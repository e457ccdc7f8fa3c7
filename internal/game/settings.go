package game

// SettingsPatch carries only the fields the caller wants to change.
type SettingsPatch struct {
	TurnSeconds  *int              `json:"turnSeconds,omitempty"`
	WinningScore *int              `json:"winningScore,omitempty"`
	AllowPass    *bool             `json:"allowPass,omitempty"`
	TeamNames    map[TeamID]string `json:"teamNames,omitempty"`
}

const (
	minTurnSeconds  = 10
	maxTurnSeconds  = 600
	minWinningScore = 1
	maxWinningScore = 999
)

// IsEmpty reports whether the patch names no fields at all.
func (p SettingsPatch) IsEmpty() bool {
	return p.TurnSeconds == nil && p.WinningScore == nil && p.AllowPass == nil && len(p.TeamNames) == 0
}

// Validate bounds the numeric fields; nil fields pass.
func (p SettingsPatch) Validate() *Error {
	if p.TurnSeconds != nil && (*p.TurnSeconds < minTurnSeconds || *p.TurnSeconds > maxTurnSeconds) {
		return validation("turnSeconds must be between %d and %d", minTurnSeconds, maxTurnSeconds)
	}
	if p.WinningScore != nil && (*p.WinningScore < minWinningScore || *p.WinningScore > maxWinningScore) {
		return validation("winningScore must be between %d and %d", minWinningScore, maxWinningScore)
	}
	return nil
}

// ApplySettings validates a patch, applies it to the room's settings and
// returns the keys that actually changed; untouched and no-op fields are
// skipped. On a validation failure nothing is written.
func ApplySettings(room *Room, patch SettingsPatch) ([]string, *Error) {
	if gerr := patch.Validate(); gerr != nil {
		return nil, gerr
	}

	var changed []string

	if patch.TurnSeconds != nil && *patch.TurnSeconds != room.Settings.TurnSeconds {
		room.Settings.TurnSeconds = *patch.TurnSeconds
		changed = append(changed, "turnSeconds")
	}
	if patch.WinningScore != nil && *patch.WinningScore != room.Settings.WinningScore {
		room.Settings.WinningScore = *patch.WinningScore
		changed = append(changed, "winningScore")
	}
	if patch.AllowPass != nil && *patch.AllowPass != room.Settings.AllowPass {
		room.Settings.AllowPass = *patch.AllowPass
		changed = append(changed, "allowPass")
	}
	if patch.TeamNames != nil {
		prev := room.Settings.TeamNames
		merged := map[TeamID]string{
			TeamA: pick(patch.TeamNames[TeamA], prev[TeamA]),
			TeamB: pick(patch.TeamNames[TeamB], prev[TeamB]),
		}
		if merged[TeamA] != prev[TeamA] || merged[TeamB] != prev[TeamB] {
			room.Settings.TeamNames = merged
			changed = append(changed, "teamNames")
		}
	}

	return changed, nil
}

func pick(next, prev string) string {
	if next != "" {
		return next
	}
	return prev
}
