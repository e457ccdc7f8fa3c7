package game

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
)

// dispatch routes one inbound envelope. Every request gets exactly one ack
// ("<type>:ack" with the request id): either the success payload or
// {"error":{code,message}}. Domain failures are values, never panics; a
// panic here is a bug and is acked as BAD_STATE instead of killing the
// socket.
func (s *Server) dispatch(ctx context.Context, sess *session, env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("rpc panic", slog.String("type", env.Type), slog.Any("panic", r))
			s.ackError(sess, env, badState("Internal error"))
		}
	}()

	switch env.Type {
	case "rooms:create":
		s.handleCreateRoom(ctx, sess, env)
	case "rooms:join":
		s.handleJoinRoom(ctx, sess, env)
	case "rooms:settings:update":
		s.handleUpdateSettings(ctx, sess, env)
	case "rooms:teams:assign":
		s.handleAssignTeams(ctx, sess, env)
	case "rounds:start":
		s.handleStartRound(ctx, sess, env)
	case "rounds:next":
		s.handleNextRound(ctx, sess, env)
	case "turns:start":
		s.handleStartTurn(ctx, sess, env)
	case "turns:next-card":
		s.handleNextCard(ctx, sess, env)
	default:
		s.ackError(sess, env, validation("Unknown message type: %s", env.Type))
	}
}

func (s *Server) ack(sess *session, env Envelope, payload any) {
	sess.cc.Send(Envelope{Type: env.Type + ":ack", ID: env.ID, Payload: mustJSON(payload)})
}

func (s *Server) ackError(sess *session, env Envelope, gerr *Error) {
	sess.cc.Send(Envelope{Type: env.Type + ":ack", ID: env.ID, Payload: mustJSON(ErrorPayload{Error: gerr})})
}

func decode[T any](raw json.RawMessage) (T, *Error) {
	var v T
	if len(raw) == 0 {
		return v, validation("Missing payload")
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, validation("Invalid payload")
	}
	return v, nil
}

// loadRoom resolves the target room for an action, falling back to the
// session's bound room when the payload carries no code.
func (s *Server) loadRoom(ctx context.Context, sess *session, code string) (*Room, *Error) {
	if code == "" {
		code = sess.roomCode
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, validation("Missing room code")
	}

	room, ok, err := s.rooms.GetOrLoad(ctx, code)
	if err != nil {
		s.log.Error("room load failed", slog.String("code", code), slog.Any("err", err))
		return nil, newError(CodeRoomNotFound, "Room not found")
	}
	if !ok {
		return nil, newError(CodeRoomNotFound, "Room not found")
	}
	return room, nil
}

func (s *Server) visiblePlayer(p *Player) VisiblePlayer {
	return VisiblePlayer{
		ID:        p.ID,
		Name:      p.Name,
		TeamID:    p.TeamID,
		IsCreator: p.IsCreator,
		Connected: p.Connected,
	}
}

func (s *Server) handleCreateRoom(ctx context.Context, sess *session, env Envelope) {
	p, gerr := decode[CreateRoomPayload](env.Payload)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	nowMs := s.now()
	res, gerr := CreateRoom(s.rooms, p.Name, &p.Settings, nowMs)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room := res.Room
	room.Lock()
	defer room.Unlock()

	sess.roomCode = room.Code
	sess.playerID = res.Player.ID
	res.Player.conn = sess.cc
	res.Player.Connected = true

	s.ack(sess, env, CreatedPayload{
		Room:   MakeVisibleSnapshot(room, res.Player.ID, nowMs),
		Player: s.visiblePlayer(res.Player),
		Token:  res.PlayerToken,
	})
	s.saveSnapshotLocked(ctx, room)

	s.log.Info("room created",
		slog.String("room", room.Code),
		slog.String("creator", res.Player.ID))
}

func (s *Server) handleJoinRoom(ctx context.Context, sess *session, env Envelope) {
	p, gerr := decode[JoinRoomPayload](env.Payload)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room, gerr := s.loadRoom(ctx, sess, p.Code)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room.Lock()
	defer room.Unlock()

	nowMs := s.now()
	res, gerr := JoinRoom(room, p.Name, nowMs)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	sess.roomCode = room.Code
	sess.playerID = res.Player.ID
	res.Player.conn = sess.cc
	res.Player.Connected = true

	s.ack(sess, env, CreatedPayload{
		Room:   MakeVisibleSnapshot(room, res.Player.ID, nowMs),
		Player: s.visiblePlayer(res.Player),
		Token:  res.PlayerToken,
	})
	room.broadcastStateLocked(nowMs)
	s.saveSnapshotLocked(ctx, room)
}

func (s *Server) handleUpdateSettings(ctx context.Context, sess *session, env Envelope) {
	p, gerr := decode[UpdateSettingsPayload](env.Payload)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room, gerr := s.loadRoom(ctx, sess, p.Code)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room.Lock()
	defer room.Unlock()

	caller, gerr := RequireAuth(room, env.Token)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}
	if gerr := EnsureCreator(room, caller.ID); gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}
	if gerr := EnsureLobby(room); gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}
	if p.Settings.IsEmpty() {
		s.ackError(sess, env, validation("at least one setting must be provided"))
		return
	}

	changed, gerr := ApplySettings(room, p.Settings)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	nowMs := s.now()
	s.ack(sess, env, SettingsUpdatedPayload{
		Room:    MakeVisibleSnapshot(room, caller.ID, nowMs),
		Changed: changed,
	})
	room.broadcastStateLocked(nowMs)
	s.saveSnapshotLocked(ctx, room)
}

func (s *Server) handleAssignTeams(ctx context.Context, sess *session, env Envelope) {
	p, gerr := decode[AssignTeamsPayload](env.Payload)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room, gerr := s.loadRoom(ctx, sess, p.Code)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room.Lock()
	defer room.Unlock()

	caller, gerr := RequireAuth(room, env.Token)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}
	if gerr := EnsureCreator(room, caller.ID); gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}
	if gerr := EnsureLobby(room); gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	reassigned, gerr := ReassignPlayers(room, p.Moves)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	nowMs := s.now()
	s.ack(sess, env, TeamsAssignedPayload{
		Room:       MakeVisibleSnapshot(room, caller.ID, nowMs),
		Reassigned: reassigned,
	})
	room.broadcastStateLocked(nowMs)
	s.saveSnapshotLocked(ctx, room)
}

func (s *Server) handleStartRound(ctx context.Context, sess *session, env Envelope) {
	p, gerr := decode[RoomActionPayload](env.Payload)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room, gerr := s.loadRoom(ctx, sess, p.Code)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room.Lock()
	defer room.Unlock()

	caller, gerr := RequireAuth(room, env.Token)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}
	if gerr := EnsureCreator(room, caller.ID); gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	if _, gerr := StartFirstRound(room, s.deck); gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	nowMs := s.now()
	s.ack(sess, env, MakeVisibleSnapshot(room, caller.ID, nowMs))
	room.broadcastStateLocked(nowMs)
	s.saveSnapshotLocked(ctx, room)

	s.log.Info("round started", slog.String("room", room.Code))
}

func (s *Server) handleNextRound(ctx context.Context, sess *session, env Envelope) {
	p, gerr := decode[RoomActionPayload](env.Payload)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room, gerr := s.loadRoom(ctx, sess, p.Code)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room.Lock()
	defer room.Unlock()

	caller, gerr := RequireAuth(room, env.Token)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}
	if gerr := EnsureCreator(room, caller.ID); gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	if _, gerr := StartNextRound(room); gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	nowMs := s.now()
	s.ack(sess, env, MakeVisibleSnapshot(room, caller.ID, nowMs))
	room.broadcastStateLocked(nowMs)
	s.saveSnapshotLocked(ctx, room)
}

func (s *Server) handleStartTurn(ctx context.Context, sess *session, env Envelope) {
	p, gerr := decode[RoomActionPayload](env.Payload)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room, gerr := s.loadRoom(ctx, sess, p.Code)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room.Lock()
	defer room.Unlock()

	caller, gerr := RequireAuth(room, env.Token)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	nowMs := s.now()
	res, gerr := StartTurn(room, caller.ID, nowMs)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}
	turn := res.Turn

	s.scheduleTurnTimer(room.Code, turn, nowMs)

	s.ack(sess, env, TurnStartedPayload{
		TurnID:           turn.ID,
		PoetID:           turn.PoetID,
		TeamID:           turn.TeamID,
		RemainingSeconds: RemainingSeconds(turn.EndsAt, nowMs),
	})

	if card, ok := s.deck.Card(turn.ActiveCardID); ok {
		room.emitCardVisibilityLocked(turn, card, nowMs)
	}
	room.broadcastStateLocked(nowMs)
	s.saveSnapshotLocked(ctx, room)

	s.log.Info("turn started",
		slog.String("room", room.Code),
		slog.String("turn", turn.ID),
		slog.String("poet", turn.PoetID))
}

func (s *Server) handleNextCard(ctx context.Context, sess *session, env Envelope) {
	p, gerr := decode[NextCardPayload](env.Payload)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room, gerr := s.loadRoom(ctx, sess, p.Code)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room.Lock()
	defer room.Unlock()

	caller, gerr := RequireAuth(room, env.Token)
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	nowMs := s.now()
	res, gerr := ScoreCurrentAndMaybeNextCard(room, caller.ID, nowMs, ScoreRequest{
		CardID:  p.CardID,
		Outcome: p.Outcome,
	})
	if gerr != nil {
		s.ackError(sess, env, gerr)
		return
	}

	room.broadcastLocked(Envelope{Type: "turns:card-scored", Payload: mustJSON(CardScoredPayload{
		TurnID:        res.TurnID,
		CardID:        p.CardID,
		Outcome:       p.Outcome,
		LastCardDelta: res.LastCardDelta,
		Scores:        res.Scores,
	})})

	if res.TurnEnded != nil {
		s.timers.Cancel(room.Code)

		reason := EndedManually
		if t := room.Turns[res.TurnID]; t != nil {
			reason = t.EndedReason
		}
		s.ack(sess, env, TurnEndedPayload{Summary: *res.TurnEnded, EndedReason: reason})
		room.broadcastLocked(Envelope{Type: "turns:ended", Payload: mustJSON(TurnEndedPayload{
			Summary:     *res.TurnEnded,
			EndedReason: reason,
		})})
		if room.State == StateBetweenRounds {
			room.broadcastLocked(Envelope{Type: "rounds:ended", Payload: mustJSON(RoundEndedPayload{
				RoundNumber: room.CurrentRound,
				Scores:      res.Scores,
			})})
		}
	} else {
		s.ack(sess, env, CardScoredPayload{
			TurnID:        res.TurnID,
			CardID:        p.CardID,
			Outcome:       p.Outcome,
			LastCardDelta: res.LastCardDelta,
			Scores:        res.Scores,
		})
		if turn := room.Turns[res.TurnID]; turn != nil {
			if card, ok := s.deck.Card(res.NextCardID); ok {
				room.emitCardVisibilityLocked(turn, card, nowMs)
			}
		}
	}

	room.broadcastStateLocked(nowMs)
	s.saveSnapshotLocked(ctx, room)
}
