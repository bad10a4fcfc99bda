package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/uploads"
	"evalgo.org/cookbook/models"
)

// listItems handles GET /api/v1/items
// @Summary List items
// @Description Page through items ordered by creation
// @Tags items
// @Produce json
// @Param skip query int false "Items to skip" default(0)
// @Param limit query int false "Page size (max 100)" default(10)
// @Success 200 {object} ItemsResponse
// @Router /items [get]
func (s *Server) listItems(c echo.Context) error {
	skip, limit := parseSkipLimit(c)

	items, total, err := s.items.ListItems(c.Request().Context(), skip, limit)
	if err != nil {
		return storeError(err, "Items", "")
	}

	return c.JSON(http.StatusOK, ItemsResponse{
		Count: len(items),
		Total: total,
		Skip:  skip,
		Limit: limit,
		Items: items,
	})
}

// getItem handles GET /api/v1/items/:id
// @Summary Get item
// @Tags items
// @Produce json
// @Param id path string true "Item ObjectID"
// @Success 200 {object} models.Item
// @Failure 400 {object} APIError
// @Failure 404 {object} APIError
// @Router /items/{id} [get]
func (s *Server) getItem(c echo.Context) error {
	id := c.Param("id")

	item, err := s.items.GetItem(c.Request().Context(), id)
	if err != nil {
		return storeError(err, "Item", id)
	}

	return c.JSON(http.StatusOK, item)
}

// createItem handles POST /api/v1/items. It takes either a JSON body or a
// multipart form with an optional "file" stored inline with the item.
// @Summary Create item
// @Tags items
// @Accept json,mpfd
// @Produce json
// @Param name formData string true "Item name"
// @Param description formData string false "Item description"
// @Param file formData file false "Attached file"
// @Success 201 {object} models.Item
// @Failure 400 {object} APIError
// @Router /items [post]
func (s *Server) createItem(c echo.Context) error {
	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item := &models.Item{
		Name:        req.Name,
		Description: req.Description,
	}

	if isMultipart(c) {
		fh, err := c.FormFile("file")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return BadRequestError("Invalid file", err.Error())
		default:
			data, err := readFormFile(c, s.maxUploadSize())
			if err != nil {
				return err
			}
			item.File = data
			item.FileName = uploads.SecureFilename(fh.Filename)
			item.ContentType = fh.Header.Get(echo.HeaderContentType)
			item.HasFile = len(data) > 0
		}
	}

	if err := s.items.CreateItem(c.Request().Context(), item); err != nil {
		return storeError(err, "Item", "")
	}

	return c.JSON(http.StatusCreated, item)
}

// updateItem handles PUT /api/v1/items/:id
// @Summary Update item
// @Description Sets the supplied fields; fields left out are unchanged
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Item ObjectID"
// @Param item body models.ItemUpdate true "Fields to set"
// @Success 200 {object} models.Item
// @Failure 404 {object} APIError
// @Router /items/{id} [put]
func (s *Server) updateItem(c echo.Context) error {
	id := c.Param("id")

	var upd models.ItemUpdate
	if err := c.Bind(&upd); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}
	if err := c.Validate(&upd); err != nil {
		return err
	}

	item, err := s.items.UpdateItem(c.Request().Context(), id, upd)
	if err != nil {
		return storeError(err, "Item", id)
	}

	return c.JSON(http.StatusOK, item)
}

// deleteItem handles DELETE /api/v1/items/:id
// @Summary Delete item
// @Tags items
// @Produce json
// @Param id path string true "Item ObjectID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} APIError
// @Router /items/{id} [delete]
func (s *Server) deleteItem(c echo.Context) error {
	id := c.Param("id")

	if err := s.items.DeleteItem(c.Request().Context(), id); err != nil {
		return storeError(err, "Item", id)
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Message: "Item deleted successfully",
		ID:      id,
	})
}

// downloadItemFile handles GET /api/v1/items/:id/file
// @Summary Download item file
// @Tags items
// @Produce octet-stream
// @Param id path string true "Item ObjectID"
// @Success 200 {file} binary
// @Failure 404 {object} APIError
// @Router /items/{id}/file [get]
func (s *Server) downloadItemFile(c echo.Context) error {
	id := c.Param("id")

	item, err := s.items.GetItem(c.Request().Context(), id)
	if err != nil {
		return storeError(err, "Item", id)
	}
	if len(item.File) == 0 {
		return NotFoundError("Item file", id)
	}

	name := item.FileName
	if name == "" {
		name = id
	}
	contentType := item.ContentType
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	return c.Blob(http.StatusOK, contentType, item.File)
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

func isJSON(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON)
}

// maxUploadSize is the per-file limit; zero means unlimited.
func (s *Server) maxUploadSize() int64 {
	if s.uploads != nil {
		return s.uploads.MaxSize()
	}
	return s.config.Uploads.MaxSize
}

// readFormFile reads the "file" part, refusing more than max bytes.
func readFormFile(c echo.Context, max int64) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, BadRequestError("Invalid file", err.Error())
	}
	if max > 0 && fh.Size > max {
		return nil, storeError(uploads.ErrTooLarge, "File", fh.Filename)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, InternalError("Failed to read file", err.Error())
	}
	defer f.Close()

	var r io.Reader = f
	if max > 0 {
		r = io.LimitReader(f, max+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, InternalError("Failed to read file", err.Error())
	}
	if max > 0 && int64(len(data)) > max {
		return nil, storeError(uploads.ErrTooLarge, "File", fmt.Sprintf("%s (%d bytes)", fh.Filename, len(data)))
	}
	return data, nil
}
