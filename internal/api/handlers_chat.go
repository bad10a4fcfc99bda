package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/chat"
	"evalgo.org/cookbook/internal/logging"
)

// joinChat handles GET /ws/chat/:room
// @Summary Join a chat room
// @Description Upgrades to a WebSocket relaying message and image frames within the room
// @Tags chat
// @Param room path string true "Room name"
// @Success 101 {string} string "Switching Protocols"
// @Router /ws/chat/{room} [get]
func (s *Server) joinChat(c echo.Context) error {
	room := c.Param("room")
	if room == "" {
		return BadRequestError("Invalid room", "room name is required")
	}

	var images chat.ImageSaver
	if s.uploads != nil {
		images = s.uploads
	}

	// the upgrader has already answered the request on failure
	if err := s.chat.Serve(c.Response(), c.Request(), room, images); err != nil {
		logging.Warnf("Chat upgrade for room %s failed: %v", room, err)
	}
	return nil
}

// listChatRooms handles GET /api/v1/chat/rooms
// @Summary List chat rooms
// @Description Member count per active room
// @Tags chat
// @Produce json
// @Success 200 {object} map[string]int
// @Router /chat/rooms [get]
func (s *Server) listChatRooms(c echo.Context) error {
	return c.JSON(http.StatusOK, s.chat.Rooms())
}
