package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/storage"
)

// previewLookup handles POST /api/v1/lookup/preview
// @Summary Build a $lookup pipeline
// @Description Turns a relationship map keyed by "as" name into $lookup stages (extended JSON)
// @Tags groups
// @Accept json
// @Produce json
// @Param relations body storage.RelationMap true "Relationship map"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} APIError
// @Router /lookup/preview [post]
func (s *Server) previewLookup(c echo.Context) error {
	var relations storage.RelationMap
	if err := c.Bind(&relations); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}
	if len(relations) == 0 {
		return BadRequestError("Invalid relations", "at least one relation is required")
	}

	pipeline, err := storage.BuildLookupPipeline(relations)
	if err != nil {
		return BadRequestError("Invalid relations", err.Error())
	}

	doc, err := storage.MarshalPipeline(pipeline)
	if err != nil {
		return InternalError("Failed to encode pipeline", err.Error())
	}
	return c.JSONBlob(http.StatusOK, doc)
}

// groupTree handles GET /api/v1/groups/tree
// @Summary Groups with users and addresses
// @Tags groups
// @Produce json
// @Success 200 {array} map[string]interface{}
// @Router /groups/tree [get]
func (s *Server) groupTree(c echo.Context) error {
	tree, err := s.groups.GroupTree(c.Request().Context())
	if err != nil {
		return storeError(err, "Groups", "")
	}
	return c.JSON(http.StatusOK, tree)
}
