package game

import (
	"sync"
	"time"
)

// TurnTimers holds at most one pending expiry callback per room, keyed by
// room code. Scheduling for a code cancels and replaces any timer already
// pending for it; the fire callback must re-check that the turn it was
// armed for is still the active one before forcing an end.
type TurnTimers struct {
	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewTurnTimers() *TurnTimers {
	return &TurnTimers{timers: make(map[string]*time.Timer)}
}

func (t *TurnTimers) Schedule(code, turnID string, d time.Duration, fire func(code, turnID string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.timers[code]; ok {
		prev.Stop()
	}
	t.timers[code] = time.AfterFunc(d, func() {
		t.mu.Lock()
		delete(t.timers, code)
		t.mu.Unlock()
		fire(code, turnID)
	})
}

// Cancel drops the pending timer for a room, if any. A timer whose
// callback already started is not interrupted; the callback's own turn-id
// re-check makes that race harmless.
func (t *TurnTimers) Cancel(code string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if timer, ok := t.timers[code]; ok {
		timer.Stop()
		delete(t.timers, code)
	}
}

// StopAll cancels every pending timer, for shutdown.
func (t *TurnTimers) StopAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for code, timer := range t.timers {
		timer.Stop()
		delete(t.timers, code)
	}
}
