package api

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/gql"
)

// graphqlHandler handles GET and POST /graphql
// @Summary GraphQL endpoint
// @Description Library (authors/books) and school (teachers/lessons) graph
// @Tags graphql
// @Accept json
// @Produce json
// @Param query query string false "Query document (GET)"
// @Success 200 {object} map[string]interface{}
// @Router /graphql [post]
func (s *Server) graphqlHandler(c echo.Context) error {
	var req gql.Request

	if c.Request().Method == http.MethodGet {
		req.Query = c.QueryParam("query")
		req.OperationName = c.QueryParam("operationName")
		if raw := c.QueryParam("variables"); raw != "" {
			if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
				return BadRequestError("Invalid variables", err.Error())
			}
		}
	} else if err := c.Bind(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}

	if req.Query == "" {
		return BadRequestError("Missing query", "a GraphQL query document is required")
	}

	return c.JSON(http.StatusOK, s.graphql.Execute(c.Request().Context(), req))
}
