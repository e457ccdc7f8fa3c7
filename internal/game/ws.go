package game

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ClientConn is one player's socket: a buffered outbound queue drained by
// the writer pump, closed exactly once.
type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func (c *ClientConn) Send(env Envelope) {
	b, err := json.Marshal(env)
	if err != nil {
		return
	}
	select {
	case c.send <- b:
	default:
		// slow consumer, drop rather than block the room lock
	}
}

func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		_ = c.ws.Close()
	})
}

// session is the per-socket binding to a room and player. Empty until the
// socket creates or joins a room (or presented code+token at connect).
type session struct {
	cc       *ClientConn
	roomCode string
	playerID string
}

// handleWS upgrades the socket. A client may connect bare and then issue
// rooms:create / rooms:join, or reconnect with ?code=XYZ&token=... to
// rebind an existing player immediately.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	token := r.URL.Query().Get("token")

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	cc := &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
	}
	sess := &session{cc: cc}

	// writer pump
	go func() {
		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case msg, ok := <-cc.send:
				if !ok {
					return
				}
				_ = ws.WriteMessage(websocket.TextMessage, msg)
			case <-ticker.C:
				_ = ws.WriteMessage(websocket.PingMessage, []byte{})
			}
		}
	}()

	if code != "" {
		if gerr := s.rebind(r.Context(), sess, code, token); gerr != nil {
			_ = ws.WriteJSON(Envelope{Type: "error", Payload: mustJSON(ErrorPayload{Error: gerr})})
			cc.Close()
			return
		}
	}

	// reader loop
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			break
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			cc.Send(Envelope{Type: "error", Payload: mustJSON(ErrorPayload{
				Error: validation("Invalid JSON"),
			})})
			continue
		}
		s.dispatch(r.Context(), sess, env)
	}

	s.unbind(sess)
	cc.Close()
}

// rebind authenticates a reconnecting player, marks them connected, sends
// their state, and re-pushes the active card if they are authorized to see
// its words.
func (s *Server) rebind(ctx context.Context, sess *session, code, token string) *Error {
	room, ok, err := s.rooms.GetOrLoad(ctx, code)
	if err != nil {
		s.log.Error("room load failed", slog.String("code", code), slog.Any("err", err))
		return newError(CodeRoomNotFound, "Room not found")
	}
	if !ok {
		return newError(CodeRoomNotFound, "Room not found")
	}

	room.Lock()
	defer room.Unlock()

	player, gerr := RequireAuth(room, token)
	if gerr != nil {
		return gerr
	}

	sess.roomCode = room.Code
	sess.playerID = player.ID
	player.conn = sess.cc
	player.Connected = true

	nowMs := s.now()
	room.broadcastStateLocked(nowMs)

	if turn := room.activeTurnLocked(); turn != nil && turn.ActiveCardID != "" {
		if card, ok := s.deck.Card(turn.ActiveCardID); ok {
			remaining := RemainingSeconds(turn.EndsAt, nowMs)
			payload := CardPayload{TurnID: turn.ID, CardID: card.ID, RemainingSeconds: remaining}
			if ShouldViewerSeeWords(turn.TeamID, player.TeamID, player.ID == turn.PoetID) {
				payload.OnePoint = card.OnePoint
				payload.ThreePoint = card.ThreePoint
			}
			room.sendToPlayerLocked(player.ID, Envelope{Type: "turns:card", Payload: mustJSON(payload)})
		}
	}

	s.saveSnapshotLocked(ctx, room)
	return nil
}

// unbind marks the player disconnected if this socket is still the one the
// player owns; a newer socket for the same player wins.
func (s *Server) unbind(sess *session) {
	if sess.roomCode == "" {
		return
	}
	room, ok := s.rooms.Get(sess.roomCode)
	if !ok {
		return
	}

	room.Lock()
	defer room.Unlock()

	player := room.Players[sess.playerID]
	if player == nil || player.conn != sess.cc {
		return
	}
	player.conn = nil
	player.Connected = false
	room.broadcastStateLocked(s.now())
}
