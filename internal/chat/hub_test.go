package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/cookbook/internal/uploads"
)

type fakeSaver struct {
	fail bool
}

func (f *fakeSaver) SaveImage(payload string) (*uploads.Saved, error) {
	if f.fail {
		return nil, errors.New("cannot decode")
	}
	return &uploads.Saved{Filename: "image_x.png", URL: "http://localhost/uploads/image_x.png"}, nil
}

func startHub(t *testing.T, saver ImageSaver) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		room := strings.TrimPrefix(r.URL.Path, "/ws/chat/")
		_ = hub.Serve(w, r, room, saver)
	}))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server, room string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat/" + room
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func waitMembers(t *testing.T, hub *Hub, room string, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		return hub.Rooms()[room] == n
	}, 2*time.Second, 10*time.Millisecond)
}

func readJSON(t *testing.T, conn *websocket.Conn) map[string]interface{} {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg map[string]interface{}
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestRelayWithinRoom(t *testing.T) {
	hub, srv := startHub(t, &fakeSaver{})

	alice := dial(t, srv, "lobby")
	bob := dial(t, srv, "lobby")
	outsider := dial(t, srv, "other")
	waitMembers(t, hub, "lobby", 2)
	waitMembers(t, hub, "other", 1)

	require.NoError(t, alice.WriteJSON(map[string]string{"type": "message", "text": "hi"}))

	for _, c := range []*websocket.Conn{alice, bob} {
		msg := readJSON(t, c)
		assert.Equal(t, "message", msg["type"])
		assert.Equal(t, "hi", msg["text"])
	}

	require.NoError(t, outsider.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := outsider.ReadMessage()
	assert.Error(t, err, "other rooms must not receive the message")

	assert.Equal(t, map[string]int{"lobby": 2, "other": 1}, hub.Rooms())
}

func TestImageIsStoredAndRewritten(t *testing.T) {
	hub, srv := startHub(t, &fakeSaver{})
	conn := dial(t, srv, "pics")
	waitMembers(t, hub, "pics", 1)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "image", "image": "data:image/png;base64,AAAA"}))
	msg := readJSON(t, conn)
	assert.Equal(t, "image", msg["type"])
	assert.Equal(t, "http://localhost/uploads/image_x.png", msg["image"])
}

func TestInvalidFramesReturnErrorToSender(t *testing.T) {
	hub, srv := startHub(t, &fakeSaver{fail: true})
	sender := dial(t, srv, "lobby")
	peer := dial(t, srv, "lobby")
	waitMembers(t, hub, "lobby", 2)

	frames := []struct {
		raw  string
		want string
	}{
		{raw: "not json", want: "invalid JSON"},
		{raw: `{"type":"shout"}`, want: "unknown message type"},
		{raw: `{"type":"image"}`, want: "image message without image data"},
		{raw: `{"type":"image","image":"zzz"}`, want: "cannot decode"},
	}
	for _, f := range frames {
		require.NoError(t, sender.WriteMessage(websocket.TextMessage, []byte(f.raw)))
		msg := readJSON(t, sender)
		assert.Equal(t, "error", msg["type"])
		assert.Equal(t, f.want, msg["error"])
	}

	require.NoError(t, peer.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := peer.ReadMessage()
	assert.Error(t, err, "errors are not broadcast")
}

func TestEmptyRoomIsRemoved(t *testing.T) {
	hub, srv := startHub(t, nil)
	conn := dial(t, srv, "temp")
	waitMembers(t, hub, "temp", 1)

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		_, ok := hub.Rooms()["temp"]
		return !ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestErrorFrame(t *testing.T) {
	var msg map[string]string
	require.NoError(t, json.Unmarshal(errorFrame(errUnknownType), &msg))
	assert.Equal(t, map[string]string{"type": "error", "error": "unknown message type"}, msg)
}
