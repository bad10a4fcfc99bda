package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// blogLogin handles POST /api/v1/blog/login
// @Summary Blog login
// @Description Returns the blog user, creating it on first login
// @Tags blog
// @Accept json
// @Produce json
// @Param user body BlogLoginRequest true "Username"
// @Success 200 {object} models.BlogUser
// @Router /blog/login [post]
func (s *Server) blogLogin(c echo.Context) error {
	var req BlogLoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := s.blog.Login(c.Request().Context(), req.Username)
	if err != nil {
		return storeError(err, "User", req.Username)
	}

	return c.JSON(http.StatusOK, user)
}

// listPosts handles GET /api/v1/blog/posts
// @Summary List posts
// @Description All posts, newest first, with their comments
// @Tags blog
// @Produce json
// @Success 200 {array} models.Post
// @Router /blog/posts [get]
func (s *Server) listPosts(c echo.Context) error {
	posts, err := s.blog.ListPostsWithComments(c.Request().Context())
	if err != nil {
		return storeError(err, "Posts", "")
	}
	return c.JSON(http.StatusOK, posts)
}

// createPost handles POST /api/v1/blog/posts
// @Summary Create post
// @Tags blog
// @Accept json
// @Produce json
// @Param post body PostRequest true "Post"
// @Success 201 {object} models.Post
// @Failure 400 {object} APIError "Title too long"
// @Failure 404 {object} APIError "Unknown user"
// @Router /blog/posts [post]
func (s *Server) createPost(c echo.Context) error {
	var req PostRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := s.blog.CreatePost(c.Request().Context(), req.UserID, req.Title, req.Content)
	if err != nil {
		return storeError(err, "User", strconv.FormatInt(req.UserID, 10))
	}

	return c.JSON(http.StatusCreated, post)
}

// listComments handles GET /api/v1/blog/posts/:id/comments
// @Summary List comments of a post
// @Tags blog
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {array} models.Comment
// @Failure 404 {object} APIError
// @Router /blog/posts/{id}/comments [get]
func (s *Server) listComments(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	comments, err := s.blog.ListComments(c.Request().Context(), postID)
	if err != nil {
		return storeError(err, "Post", c.Param("id"))
	}

	return c.JSON(http.StatusOK, comments)
}

// createComment handles POST /api/v1/blog/posts/:id/comments
// @Summary Comment on a post
// @Tags blog
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param comment body CommentRequest true "Comment"
// @Success 201 {object} models.Comment
// @Failure 400 {object} APIError "Content too long"
// @Failure 404 {object} APIError
// @Router /blog/posts/{id}/comments [post]
func (s *Server) createComment(c echo.Context) error {
	postID, err := parsePostID(c)
	if err != nil {
		return err
	}

	var req CommentRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := s.blog.CreateComment(c.Request().Context(), postID, req.Content)
	if err != nil {
		return storeError(err, "Post", c.Param("id"))
	}

	return c.JSON(http.StatusCreated, comment)
}

func parsePostID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, BadRequestError("Invalid ID format", "post id must be a positive integer")
	}
	return id, nil
}
