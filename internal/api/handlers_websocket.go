package api

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/logging"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now (consider restricting in production)
		return true
	},
}

// HandleEventStream handles WebSocket connections for emitted events
// @Summary WebSocket endpoint for live events
// @Description Establishes a WebSocket connection that receives every emitted event as {type,timestamp,data}
// @Tags websocket
// @Produce json
// @Success 101 {string} string "Switching Protocols"
// @Router /ws/events [get]
func (s *Server) HandleEventStream(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logging.Warnf("WebSocket upgrade error: %v", err)
		return nil
	}

	client := &Client{
		hub:  s.wsHub,
		conn: ws,
		send: make(chan []byte, 256),
	}

	if !client.hub.add(client) {
		_ = ws.Close()
		return nil
	}

	// Start client goroutines
	go client.writePump()
	go client.readPump()

	return nil
}

// GetWebSocketStats returns WebSocket connection statistics
// @Summary Get WebSocket statistics
// @Description Returns statistics about WebSocket connections
// @Tags websocket
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ws/stats [get]
func (s *Server) GetWebSocketStats(c echo.Context) error {
	stats := map[string]interface{}{
		"connected_clients": s.wsHub.ClientCount(),
		"chat_rooms":        len(s.chat.Rooms()),
		"status":            "operational",
	}
	return c.JSON(http.StatusOK, stats)
}
