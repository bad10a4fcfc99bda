package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"evalgo.org/cookbook/internal/auth"
	"evalgo.org/cookbook/internal/logging"
)

// issueToken handles POST /token, the OAuth2 password flow.
// @Summary Issue access token
// @Description OAuth2 password flow: urlencoded username and password
// @Tags Authentication
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} APIError "Incorrect username or password"
// @Router /token [post]
func (s *Server) issueToken(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return incorrectCredentials(c)
	}

	token, _, err := s.authn.Login(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrUserDisabled) {
			logging.Debugf("Token request for %q rejected: %v", username, err)
			return incorrectCredentials(c)
		}
		return InternalError("Failed to issue token", err.Error())
	}

	return c.JSON(http.StatusOK, TokenResponse{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
	})
}

func incorrectCredentials(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	return UnauthorizedError("Incorrect username or password")
}

// login handles POST /api/v1/auth/login
// @Summary User login
// @Description Authenticate user with username and password, returns a JWT
// @Tags Authentication
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Successfully logged in"
// @Failure 400 {object} APIError "Bad request - Invalid credentials format"
// @Failure 401 {object} APIError "Unauthorized - Invalid username or password"
// @Failure 500 {object} APIError "Internal server error"
// @Router /auth/login [post]
func (s *Server) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := s.authn.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return storeError(err, "User", req.Username)
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresIn: int64(s.jwt.Expiration().Seconds()),
		User:      user,
	})
}

// me handles GET /api/v1/auth/me
// @Summary Current user
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User
// @Failure 401 {object} APIError
// @Router /auth/me [get]
func (s *Server) me(c echo.Context) error {
	username := auth.GetUsername(c)

	user, err := s.users.GetUserByUsername(c.Request().Context(), username)
	if err != nil {
		return storeError(err, "User", username)
	}

	return c.JSON(http.StatusOK, user)
}

// register handles POST /api/v1/auth/register (admin only)
// @Summary Register user
// @Description Create a new API user (admin only)
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body RegisterRequest true "New user"
// @Success 201 {object} models.User
// @Failure 400 {object} APIError
// @Failure 403 {object} APIError
// @Failure 409 {object} APIError "Username already taken"
// @Router /auth/register [post]
func (s *Server) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestError("Invalid request body", err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := s.authn.Register(c.Request().Context(), req.Username, req.Password, req.Roles)
	if err != nil {
		return storeError(err, "User", req.Username)
	}

	logging.Infof("User %s registered by %s", user.Username, auth.GetUsername(c))
	return c.JSON(http.StatusCreated, user)
}

// listUsers handles GET /api/v1/users (admin only)
// @Summary List all users
// @Description Get a list of all users (admin only)
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size" default(100)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} UsersResponse "List of users"
// @Failure 401 {object} APIError "Unauthorized"
// @Failure 403 {object} APIError "Forbidden - Admin access required"
// @Router /users [get]
func (s *Server) listUsers(c echo.Context) error {
	limit, offset := parsePagination(c)

	users, err := s.users.ListUsers(c.Request().Context())
	if err != nil {
		return storeError(err, "Users", "")
	}

	page := paginateSlice(users, limit, offset)
	return c.JSON(http.StatusOK, UsersResponse{Count: len(page), Users: page})
}
