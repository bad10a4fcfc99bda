// Package chat implements room-based WebSocket chat.
//
// All room membership lives in a single Hub goroutine; connections talk to
// it over channels, so the room registry is never shared between goroutines.
// Rooms are created on first join and removed when their last member leaves.
package chat

import (
	"context"

	"evalgo.org/cookbook/internal/logging"
)

// sendBuffer is the per-member outbound queue length.
const sendBuffer = 64

type roomMessage struct {
	room string
	data []byte
}

type directMessage struct {
	member *Member
	data   []byte
}

// Hub owns the room registry.
type Hub struct {
	rooms map[string]map[*Member]bool

	register   chan *Member
	unregister chan *Member
	broadcast  chan roomMessage
	direct     chan directMessage
	snapshot   chan chan map[string]int

	done chan struct{}
}

// NewHub creates a hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Member]bool),
		register:   make(chan *Member),
		unregister: make(chan *Member),
		broadcast:  make(chan roomMessage, 256),
		direct:     make(chan directMessage, 64),
		snapshot:   make(chan chan map[string]int),
		done:       make(chan struct{}),
	}
}

// Run serves hub requests until ctx is cancelled, then disconnects every member.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case m := <-h.register:
			members, ok := h.rooms[m.room]
			if !ok {
				members = make(map[*Member]bool)
				h.rooms[m.room] = members
				logging.Debugf("chat: room %q created", m.room)
			}
			members[m] = true
			logging.Infof("chat: %s joined %q (members: %d)", m.id, m.room, len(members))

		case m := <-h.unregister:
			h.remove(m)

		case msg := <-h.broadcast:
			for m := range h.rooms[msg.room] {
				select {
				case m.send <- msg.data:
				default:
					logging.Warnf("chat: dropping slow member %s from %q", m.id, msg.room)
					h.remove(m)
				}
			}

		case msg := <-h.direct:
			if h.rooms[msg.member.room][msg.member] {
				select {
				case msg.member.send <- msg.data:
				default:
				}
			}

		case reply := <-h.snapshot:
			counts := make(map[string]int, len(h.rooms))
			for room, members := range h.rooms {
				counts[room] = len(members)
			}
			reply <- counts

		case <-ctx.Done():
			for _, members := range h.rooms {
				for m := range members {
					h.remove(m)
				}
			}
			return
		}
	}
}

// remove drops m from its room, closes its queue and deletes an empty room.
func (h *Hub) remove(m *Member) {
	members, ok := h.rooms[m.room]
	if !ok || !members[m] {
		return
	}
	delete(members, m)
	close(m.send)
	logging.Infof("chat: %s left %q (members: %d)", m.id, m.room, len(members))
	if len(members) == 0 {
		delete(h.rooms, m.room)
		logging.Debugf("chat: room %q removed", m.room)
	}
}

// join registers m unless the hub has stopped.
func (h *Hub) join(m *Member) bool {
	select {
	case h.register <- m:
		return true
	case <-h.done:
		return false
	}
}

func (h *Hub) leave(m *Member) {
	select {
	case h.unregister <- m:
	case <-h.done:
	}
}

// Broadcast relays data to every member of room.
func (h *Hub) Broadcast(room string, data []byte) {
	select {
	case h.broadcast <- roomMessage{room: room, data: data}:
	case <-h.done:
	}
}

func (h *Hub) sendTo(m *Member, data []byte) {
	select {
	case h.direct <- directMessage{member: m, data: data}:
	case <-h.done:
	}
}

// Rooms returns the member count of every active room.
func (h *Hub) Rooms() map[string]int {
	reply := make(chan map[string]int, 1)
	select {
	case h.snapshot <- reply:
		return <-reply
	case <-h.done:
		return map[string]int{}
	}
}
