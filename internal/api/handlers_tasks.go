package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/auth"
	"evalgo.org/cookbook/internal/events"
	"evalgo.org/cookbook/internal/logging"
	"evalgo.org/cookbook/internal/storage"
	"evalgo.org/cookbook/models"
)

// taskInput is a create or update request. Nil fields were not supplied.
type taskInput struct {
	Title       *string `json:"title" validate:"omitnil,max=200"`
	Description *string `json:"description"`

	image     string // public URL of a stored image
	imageFile string
}

// bindTaskInput reads a task from JSON, urlencoded or multipart bodies and
// stores an attached "image" file once the fields are valid. Creates need a
// title; updates may omit it but not blank it.
func (s *Server) bindTaskInput(c echo.Context, create bool) (*taskInput, error) {
	in := &taskInput{}

	if isJSON(c) {
		if err := c.Bind(in); err != nil {
			return nil, BadRequestError("Invalid request body", err.Error())
		}
	} else if c.Request().ContentLength != 0 {
		params, err := c.FormParams()
		if err != nil {
			return nil, BadRequestError("Invalid form data", err.Error())
		}
		if v, ok := params["title"]; ok && len(v) > 0 {
			in.Title = &v[0]
		}
		if v, ok := params["description"]; ok && len(v) > 0 {
			in.Description = &v[0]
		}
	}

	if in.Title != nil {
		trimmed := strings.TrimSpace(*in.Title)
		in.Title = &trimmed
	}
	switch {
	case create && (in.Title == nil || *in.Title == ""):
		return nil, ValidationError("Validation failed", map[string]string{"title": "is required"})
	case in.Title != nil && *in.Title == "":
		return nil, ValidationError("Validation failed", map[string]string{"title": "must not be empty"})
	}
	if err := c.Validate(in); err != nil {
		return nil, err
	}

	if isMultipart(c) {
		fh, err := c.FormFile("image")
		switch {
		case errors.Is(err, http.ErrMissingFile):
		case err != nil:
			return nil, BadRequestError("Invalid image", err.Error())
		case s.uploads == nil:
			return nil, BadRequestError("Invalid image", "uploads are disabled")
		default:
			saved, err := s.uploads.SaveMultipart(fh)
			if err != nil {
				return nil, storeError(err, "Image", fh.Filename)
			}
			in.image = saved.URL
			in.imageFile = saved.Filename
		}
	}

	return in, nil
}

// discardImage removes an image stored for a request that then failed.
func (s *Server) discardImage(in *taskInput) {
	if in.imageFile == "" {
		return
	}
	if err := s.uploads.Remove(in.imageFile); err != nil {
		logging.Warnf("Failed to remove orphaned upload %s: %v", in.imageFile, err)
	}
}

// listTasks handles GET /api/v1/tasks
// @Summary List tasks
// @Description Query parameters title, description, created_by and image filter by equality
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param title query string false "Exact title"
// @Param created_by query string false "Creator username"
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} TasksResponse
// @Failure 400 {object} APIError "Unsupported filter field"
// @Failure 401 {object} APIError
// @Router /tasks [get]
func (s *Server) listTasks(c echo.Context) error {
	limit, offset := parsePagination(c)

	params := make(map[string]string)
	for name, values := range c.QueryParams() {
		if paginationParams[name] || len(values) == 0 {
			continue
		}
		params[name] = values[0]
	}
	filter, err := storage.BuildTaskFilter(params)
	if err != nil {
		return storeError(err, "Tasks", "")
	}

	tasks, total, err := s.tasks.ListTasks(c.Request().Context(), filter, limit, offset)
	if err != nil {
		return storeError(err, "Tasks", "")
	}

	return c.JSON(http.StatusOK, TasksResponse{
		Count:  len(tasks),
		Total:  total,
		Limit:  limit,
		Offset: offset,
		Tasks:  tasks,
	})
}

// getTask handles GET /api/v1/tasks/:id
// @Summary Get task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ObjectID"
// @Success 200 {object} models.Task
// @Failure 404 {object} APIError
// @Router /tasks/{id} [get]
func (s *Server) getTask(c echo.Context) error {
	id := c.Param("id")

	task, err := s.tasks.GetTask(c.Request().Context(), id)
	if err != nil {
		return storeError(err, "Task", id)
	}

	return c.JSON(http.StatusOK, task)
}

// createTask handles POST /api/v1/tasks
// @Summary Create task
// @Tags tasks
// @Accept mpfd,x-www-form-urlencoded,json
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param image formData file false "Image"
// @Success 201 {object} TaskCreatedResponse
// @Failure 400 {object} APIError
// @Router /tasks [post]
func (s *Server) createTask(c echo.Context) error {
	in, err := s.bindTaskInput(c, true)
	if err != nil {
		return err
	}

	task := &models.Task{
		Title:     *in.Title,
		Image:     in.image,
		CreatedBy: auth.GetUsername(c),
	}
	if in.Description != nil {
		task.Description = *in.Description
	}

	if err := s.tasks.CreateTask(c.Request().Context(), task); err != nil {
		s.discardImage(in)
		return storeError(err, "Task", "")
	}

	id := task.ID.Hex()
	s.emitTask(c.Request().Context(), events.TaskCreated, id)

	return c.JSON(http.StatusCreated, TaskCreatedResponse{TaskID: id})
}

// updateTask handles PUT /api/v1/tasks/:id
// @Summary Update task
// @Description Overwrites only the supplied fields
// @Tags tasks
// @Accept mpfd,x-www-form-urlencoded,json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ObjectID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} APIError
// @Router /tasks/{id} [put]
func (s *Server) updateTask(c echo.Context) error {
	id := c.Param("id")

	in, err := s.bindTaskInput(c, false)
	if err != nil {
		return err
	}

	upd := models.TaskUpdate{
		Title:       in.Title,
		Description: in.Description,
	}
	if in.image != "" {
		upd.Image = &in.image
	}

	if err := s.tasks.UpdateTask(c.Request().Context(), id, upd); err != nil {
		s.discardImage(in)
		return storeError(err, "Task", id)
	}

	s.emitTask(c.Request().Context(), events.TaskUpdated, id)

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task updated successfully", ID: id})
}

// deleteTask handles DELETE /api/v1/tasks/:id
// @Summary Delete task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ObjectID"
// @Success 200 {object} MessageResponse
// @Failure 404 {object} APIError
// @Router /tasks/{id} [delete]
func (s *Server) deleteTask(c echo.Context) error {
	id := c.Param("id")

	if err := s.tasks.DeleteTask(c.Request().Context(), id); err != nil {
		return storeError(err, "Task", id)
	}

	s.emitTask(c.Request().Context(), events.TaskDeleted, id)

	return c.JSON(http.StatusOK, MessageResponse{Message: "Task deleted successfully", ID: id})
}

func (s *Server) emitTask(ctx context.Context, name, id string) {
	s.emitter.Emit(ctx, name, map[string]string{"task_id": id})
}
