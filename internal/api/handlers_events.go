package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/events"
	"evalgo.org/cookbook/internal/logging"
)

// triggerEvent handles GET /api/v1/events/trigger/:data
// @Summary Emit example_event
// @Tags events
// @Produce json
// @Param data path string true "Payload"
// @Success 200 {object} MessageResponse
// @Router /events/trigger/{data} [get]
func (s *Server) triggerEvent(c echo.Context) error {
	data := c.Param("data")

	s.emitter.Emit(c.Request().Context(), events.ExampleEvent, data)

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "Event triggered with data: " + data,
	})
}

func logExampleEvent(_ context.Context, ev events.Event) {
	logging.Infof("Received: %v", ev.Data)
}
