package game

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newWSTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer(testLogger(), NewRegistry(newMapRoomStore()), testDeck(t, 12))
	t.Cleanup(srv.Shutdown)

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return srv, ts
}

func wsURL(ts *httptest.Server, query string) string {
	u := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	if query != "" {
		u += "?" + query
	}
	return u
}

func readUntil(t *testing.T, ws *websocket.Conn, typ string) Envelope {
	t.Helper()
	_ = ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	for {
		_, data, err := ws.ReadMessage()
		require.NoError(t, err, "waiting for %s", typ)
		var env Envelope
		if json.Unmarshal(data, &env) != nil {
			continue
		}
		if env.Type == typ {
			return env
		}
	}
}

func TestWS_CreateRoomOverSocket(t *testing.T) {
	_, ts := newWSTestServer(t)

	ws, _, err := websocket.DefaultDialer.Dial(wsURL(ts, ""), nil)
	require.NoError(t, err)
	defer ws.Close()

	req := Envelope{Type: "rooms:create", ID: "c1", Payload: mustJSON(CreateRoomPayload{Name: "Kai"})}
	require.NoError(t, ws.WriteJSON(req))

	ack := readUntil(t, ws, "rooms:create:ack")
	require.Equal(t, "c1", ack.ID)

	var created CreatedPayload
	require.NoError(t, json.Unmarshal(ack.Payload, &created))
	require.NotEmpty(t, created.Room.Code)
	require.NotEmpty(t, created.Token)
	require.True(t, created.Player.IsCreator)
}

func TestWS_ReconnectWithToken(t *testing.T) {
	_, ts := newWSTestServer(t)

	ws, _, err := websocket.DefaultDialer.Dial(wsURL(ts, ""), nil)
	require.NoError(t, err)

	require.NoError(t, ws.WriteJSON(Envelope{
		Type: "rooms:create", ID: "c1",
		Payload: mustJSON(CreateRoomPayload{Name: "Kai"}),
	}))
	ack := readUntil(t, ws, "rooms:create:ack")
	var created CreatedPayload
	require.NoError(t, json.Unmarshal(ack.Payload, &created))
	_ = ws.Close()

	// reconnect with the issued token; expect a state push for the room
	ws2, _, err := websocket.DefaultDialer.Dial(
		wsURL(ts, "code="+created.Room.Code+"&token="+created.Token), nil)
	require.NoError(t, err)
	defer ws2.Close()

	env := readUntil(t, ws2, "room:state")
	var snap VisibleSnapshot
	require.NoError(t, json.Unmarshal(env.Payload, &snap))
	require.Equal(t, created.Room.Code, snap.Code)
}

func TestWS_ReconnectBadToken(t *testing.T) {
	srv, ts := newWSTestServer(t)

	res, gerr := CreateRoom(srv.rooms, "Kai", nil, 0)
	require.Nil(t, gerr)

	ws, _, err := websocket.DefaultDialer.Dial(
		wsURL(ts, "code="+res.Room.Code+"&token=bogus"), nil)
	require.NoError(t, err)
	defer ws.Close()

	env := readUntil(t, ws, "error")
	var p ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	require.Equal(t, CodeForbidden, p.Error.Code)
}

func TestWS_UnknownRoomOnConnect(t *testing.T) {
	_, ts := newWSTestServer(t)

	ws, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "code=ZZZ&token=whatever"), nil)
	require.NoError(t, err)
	defer ws.Close()

	env := readUntil(t, ws, "error")
	var p ErrorPayload
	require.NoError(t, json.Unmarshal(env.Payload, &p))
	require.Equal(t, CodeRoomNotFound, p.Error.Code)
}
