package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/logging"
	"evalgo.org/cookbook/internal/uploads"
)

// dataframeRequest wraps an arbitrary JSON document.
type dataframeRequest struct {
	Dataframe json.RawMessage `json:"dataframe"`
}

// echoDataframe handles POST /api/v1/forms/json
// @Summary Echo a JSON document
// @Description Returns the posted dataframe unchanged
// @Tags forms
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} APIError "dataframe is missing"
// @Router /forms/json [post]
func (s *Server) echoDataframe(c echo.Context) error {
	var req dataframeRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}
	if len(req.Dataframe) == 0 || bytes.Equal(req.Dataframe, []byte("null")) {
		return ValidationError("Validation failed", map[string]string{"dataframe": "is required"})
	}

	return c.JSON(http.StatusOK, req)
}

// uploadForm handles POST /api/v1/forms/upload
// @Summary Upload a file
// @Description Multipart upload with optional username and password fields
// @Tags forms
// @Accept mpfd
// @Produce json
// @Param file formData file true "File"
// @Param username formData string false "Username"
// @Param password formData string false "Password"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} APIError "No file provided"
// @Router /forms/upload [post]
func (s *Server) uploadForm(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || !isMultipart(c) {
			return BadRequestError("No file provided", "")
		}
		return BadRequestError("Invalid file", err.Error())
	}

	saved, err := s.uploads.SaveMultipart(fh)
	if err != nil {
		return storeError(err, "File", fh.Filename)
	}

	if username := c.FormValue("username"); username != "" {
		logging.Debugf("File %s uploaded by %s", saved.Filename, username)
	}

	return c.JSON(http.StatusOK, UploadResponse{
		Filename: saved.Filename,
		URL:      saved.URL,
		Size:     saved.Size,
		Message:  "File uploaded successfully",
	})
}

// serveUpload handles GET /uploads/:filename
func (s *Server) serveUpload(c echo.Context) error {
	name := c.Param("filename")

	path, err := s.uploads.Path(name)
	if err != nil {
		return NotFoundError("File", name)
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return NotFoundError("File", name)
	}

	// uploads are user content; only raster images render in the page
	h := c.Response().Header()
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Content-Security-Policy", "sandbox; default-src 'none'")
	if !uploads.Inline(name) {
		h.Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	}

	return c.File(path)
}
