package chat

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"evalgo.org/cookbook/internal/logging"
	"evalgo.org/cookbook/internal/uploads"
	"evalgo.org/cookbook/models"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum inbound message size; images travel inline as base64
	maxMessageSize = 16 << 20
)

// Message types understood by the relay.
const (
	TypeMessage = "message"
	TypeImage   = "image"
	TypeError   = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ImageSaver stores a chat image and returns its public location.
type ImageSaver interface {
	SaveImage(payload string) (*uploads.Saved, error)
}

// Member is one WebSocket connection in a room.
type Member struct {
	id     string
	room   string
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	images ImageSaver
}

// Serve upgrades the request and joins the connection to room. It returns
// once the connection is handed to its pumps.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, room string, images ImageSaver) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	m := &Member{
		id:     models.GenerateID("member"),
		room:   room,
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		images: images,
	}
	if !h.join(m) {
		_ = conn.Close()
		return nil
	}

	go m.writePump()
	go m.readPump()
	return nil
}

// readPump relays inbound messages until the connection fails.
func (m *Member) readPump() {
	defer func() {
		m.hub.leave(m)
		_ = m.conn.Close()
	}()

	m.conn.SetReadLimit(maxMessageSize)
	_ = m.conn.SetReadDeadline(time.Now().Add(pongWait))
	m.conn.SetPongHandler(func(string) error {
		return m.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := m.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logging.Warnf("chat: websocket error for %s: %v", m.id, err)
			}
			return
		}

		out, err := m.handle(raw)
		if err != nil {
			logging.Warnf("chat: rejected message from %s in %q: %v", m.id, m.room, err)
			m.hub.sendTo(m, errorFrame(err))
			continue
		}
		m.hub.Broadcast(m.room, out)
	}
}

// handle validates an inbound frame and returns the bytes to relay.
func (m *Member) handle(raw []byte) ([]byte, error) {
	var msg map[string]interface{}
	if err := json.Unmarshal(raw, &msg); err != nil {
		return nil, errInvalidJSON
	}

	switch msg["type"] {
	case TypeMessage:
		return raw, nil

	case TypeImage:
		payload, _ := msg["image"].(string)
		if payload == "" {
			return nil, errMissingImage
		}
		if m.images == nil {
			return nil, errImagesDisabled
		}
		saved, err := m.images.SaveImage(payload)
		if err != nil {
			return nil, err
		}
		msg["image"] = saved.URL
		return json.Marshal(msg)

	default:
		return nil, errUnknownType
	}
}

// writePump pumps messages from the hub to the websocket connection
func (m *Member) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = m.conn.Close()
	}()

	for {
		select {
		case message, ok := <-m.send:
			_ = m.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				_ = m.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := m.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = m.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := m.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
