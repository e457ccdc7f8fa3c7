package game

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Server owns the room registry, the card catalog, and the per-room turn
// timers, and exposes the websocket endpoint that everything rides on.
type Server struct {
	log    *slog.Logger
	rooms  *Registry
	deck   *Deck
	timers *TurnTimers

	// now is swappable in tests; production uses wall-clock millis.
	now func() int64
}

func NewServer(log *slog.Logger, rooms *Registry, deck *Deck) *Server {
	return &Server{
		log:    log,
		rooms:  rooms,
		deck:   deck,
		timers: NewTurnTimers(),
		now:    func() int64 { return time.Now().UnixMilli() },
	}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", s.handleWS)
}

// Shutdown stops all pending turn timers.
func (s *Server) Shutdown() {
	s.timers.StopAll()
}

func (s *Server) saveSnapshotLocked(ctx context.Context, room *Room) {
	s.rooms.SaveSnapshot(ctx, room)
}

// scheduleTurnTimer arms the expiry callback for a just-started turn,
// replacing whatever timer the room had.
func (s *Server) scheduleTurnTimer(code string, turn *Turn, nowMs int64) {
	d := time.Duration(turn.EndsAt-nowMs) * time.Millisecond
	if d < 0 {
		d = 0
	}
	s.timers.Schedule(code, turn.ID, d, s.onTurnExpired)
}

// onTurnExpired is the timer path into the turn state machine. The turn id
// check is the stale guard: if manual scoring already closed this turn (and
// possibly started another), the fire is a no-op.
func (s *Server) onTurnExpired(code, turnID string) {
	room, ok := s.rooms.Get(code)
	if !ok {
		return
	}

	room.Lock()
	defer room.Unlock()

	round := room.currentRoundLocked()
	if room.State != StateInRound || round == nil || round.ActiveTurnID != turnID {
		return
	}

	res := ForceEndTurn(room)
	if res == nil {
		return
	}

	nowMs := s.now()
	room.broadcastLocked(Envelope{Type: "turns:ended", Payload: mustJSON(TurnEndedPayload{
		Summary:     *res.TurnEnded,
		EndedReason: EndedByTimer,
	})})
	if room.State == StateBetweenRounds {
		room.broadcastLocked(Envelope{Type: "rounds:ended", Payload: mustJSON(RoundEndedPayload{
			RoundNumber: room.CurrentRound,
			Scores:      res.Scores,
		})})
	}
	room.broadcastStateLocked(nowMs)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	s.saveSnapshotLocked(ctx, room)

	s.log.Info("turn force-ended by timer",
		slog.String("room", code),
		slog.String("turn", turnID))
}
