package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/chart"
	"evalgo.org/cookbook/internal/logging"
)

// plotRequest moves the chart window. Omitted ranges are kept.
type plotRequest struct {
	XRange []float64 `json:"x_range"`
	YRange []float64 `json:"y_range"`
}

type plotError struct {
	Error string `json:"error"`
}

// streamPlot handles GET /ws/plot. The first frame shows the default view;
// each {x_range,y_range} message gets a freshly rendered frame. Frames are
// base64 PNGs sent as text.
// @Summary Stream chart frames
// @Tags plot
// @Success 101 {string} string "Switching Protocols"
// @Router /ws/plot [get]
func (s *Server) streamPlot(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logging.Warnf("Plot upgrade failed: %v", err)
		return nil
	}
	defer conn.Close()
	conn.SetReadLimit(4096)

	view := chart.DefaultView()
	frame, err := s.plot.RenderBase64(view)
	if err != nil {
		logging.Errorf("Failed to render plot: %v", err)
		_ = writePlotError(conn, "failed to render plot")
		return nil
	}
	if err := writeFrame(conn, frame); err != nil {
		return nil
	}

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debugf("Plot stream closed: %v", err)
			}
			return nil
		}

		var req plotRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			if werr := writePlotError(conn, "invalid JSON"); werr != nil {
				return nil
			}
			continue
		}

		next, err := view.WithRanges(req.XRange, req.YRange)
		if err != nil {
			if werr := writePlotError(conn, err.Error()); werr != nil {
				return nil
			}
			continue
		}

		// the current view only moves once the new one has rendered
		frame, err := s.plot.RenderBase64(next)
		if err != nil {
			logging.Errorf("Failed to render plot: %v", err)
			if werr := writePlotError(conn, "failed to render plot"); werr != nil {
				return nil
			}
			continue
		}
		view = next

		if err := writeFrame(conn, frame); err != nil {
			return nil
		}
	}
}

func writeFrame(conn *websocket.Conn, frame string) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // Deadline errors are handled by WriteMessage
	return conn.WriteMessage(websocket.TextMessage, []byte(frame))
}

func writePlotError(conn *websocket.Conn, msg string) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // Deadline errors are handled by WriteJSON
	return conn.WriteJSON(plotError{Error: msg})
}

// renderPlot handles GET /api/v1/plot.png
// @Summary Render one chart frame
// @Tags plot
// @Produce png
// @Param xmin query number false "X minimum" default(0)
// @Param xmax query number false "X maximum" default(10)
// @Param ymin query number false "Y minimum" default(-1.2)
// @Param ymax query number false "Y maximum" default(1.2)
// @Success 200 {file} binary
// @Failure 400 {object} APIError
// @Router /plot.png [get]
func (s *Server) renderPlot(c echo.Context) error {
	view := chart.DefaultView()
	bounds := []struct {
		name string
		dst  *float64
	}{
		{"xmin", &view.XMin},
		{"xmax", &view.XMax},
		{"ymin", &view.YMin},
		{"ymax", &view.YMax},
	}
	for _, b := range bounds {
		raw := c.QueryParam(b.name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return BadRequestError("Invalid range", b.name+" must be a number")
		}
		*b.dst = v
	}
	if err := view.Validate(); err != nil {
		return BadRequestError("Invalid range", err.Error())
	}

	png, err := s.plot.Render(view)
	if err != nil {
		return InternalError("Failed to render plot", err.Error())
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
