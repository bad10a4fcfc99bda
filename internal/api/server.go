// Package api provides the HTTP API server for Cookbook.
// It uses the Echo framework to serve the REST, GraphQL and WebSocket
// endpoints of every recipe from a single router.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/bson"
	"golang.org/x/time/rate"

	_ "evalgo.org/cookbook/docs" // Import generated docs
	"evalgo.org/cookbook/internal/auth"
	"evalgo.org/cookbook/internal/chart"
	"evalgo.org/cookbook/internal/chat"
	"evalgo.org/cookbook/internal/config"
	"evalgo.org/cookbook/internal/events"
	"evalgo.org/cookbook/internal/gql"
	"evalgo.org/cookbook/internal/logging"
	"evalgo.org/cookbook/internal/uploads"
	"evalgo.org/cookbook/internal/version"
	"evalgo.org/cookbook/models"
)

// ItemStore persists items.
type ItemStore interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItem(ctx context.Context, id string) (*models.Item, error)
	ListItems(ctx context.Context, skip, limit int) ([]*models.Item, int64, error)
	UpdateItem(ctx context.Context, id string, upd models.ItemUpdate) (*models.Item, error)
	DeleteItem(ctx context.Context, id string) error
}

// TaskStore persists tasks.
type TaskStore interface {
	CreateTask(ctx context.Context, task *models.Task) error
	GetTask(ctx context.Context, id string) (*models.Task, error)
	ListTasks(ctx context.Context, filter bson.M, limit, offset int) ([]*models.Task, int64, error)
	UpdateTask(ctx context.Context, id string, upd models.TaskUpdate) error
	DeleteTask(ctx context.Context, id string) error
}

// UserStore persists API accounts.
type UserStore interface {
	auth.UserStore
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// GroupStore runs the group/user/address aggregation.
type GroupStore interface {
	GroupTree(ctx context.Context) ([]bson.M, error)
}

// BlogStore is the relational users/posts/comments store.
type BlogStore interface {
	Login(ctx context.Context, username string) (*models.BlogUser, error)
	CreatePost(ctx context.Context, userID int64, title, content string) (*models.Post, error)
	ListPostsWithComments(ctx context.Context) ([]*models.Post, error)
	CreateComment(ctx context.Context, postID int64, content string) (*models.Comment, error)
	ListComments(ctx context.Context, postID int64) ([]*models.Comment, error)
}

// HealthCheck is one backend probed by /health.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// Dependencies are the backends the server routes to. Nil stores leave
// their routes unregistered.
type Dependencies struct {
	Items   ItemStore
	Tasks   TaskStore
	Users   UserStore
	Library gql.LibraryStore
	Groups  GroupStore
	Blog    BlogStore

	Uploads  *uploads.Store
	Emitter  *events.Emitter
	Chat     *chat.Hub
	Renderer *chart.Renderer

	Checks []HealthCheck
}

// Server represents the Cookbook API server.
type Server struct {
	echo   *echo.Echo
	config *config.Config

	items   ItemStore
	tasks   TaskStore
	users   UserStore
	groups  GroupStore
	blog    BlogStore
	graphql *gql.Schema
	uploads *uploads.Store
	emitter *events.Emitter
	chat    *chat.Hub
	plot    *chart.Renderer
	checks  []HealthCheck

	wsHub      *Hub // WebSocket hub for emitted events
	jwt        *auth.JWTService
	authn      *auth.Authenticator
	authMiddle *auth.Middleware

	stopHubs context.CancelFunc
}

// New creates a new API server instance.
func New(cfg *config.Config, deps Dependencies) (*Server, error) {
	e := echo.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Server.Debug

	// Set custom error handler and request validator
	e.HTTPErrorHandler = HTTPErrorHandler
	e.Validator = newRequestValidator()

	jwtService := auth.NewJWTService(cfg)

	server := &Server{
		echo:       e,
		config:     cfg,
		items:      deps.Items,
		tasks:      deps.Tasks,
		users:      deps.Users,
		groups:     deps.Groups,
		blog:       deps.Blog,
		uploads:    deps.Uploads,
		emitter:    deps.Emitter,
		chat:       deps.Chat,
		plot:       deps.Renderer,
		checks:     deps.Checks,
		wsHub:      NewHub(),
		jwt:        jwtService,
		authMiddle: auth.NewMiddleware(cfg, jwtService),
	}
	if deps.Users != nil {
		server.authn = auth.NewAuthenticator(deps.Users, jwtService)
	}
	if deps.Library != nil {
		schema, err := gql.NewSchema(deps.Library, nil)
		if err != nil {
			return nil, err
		}
		server.graphql = schema
	}
	if server.emitter == nil {
		server.emitter = events.NewEmitter()
	}
	if server.chat == nil {
		server.chat = chat.NewHub()
	}
	if server.plot == nil {
		server.plot = chart.NewRenderer(cfg.Plot)
	}

	// Start WebSocket hubs in background
	ctx, cancel := context.WithCancel(context.Background())
	server.stopHubs = cancel
	go server.wsHub.Run(ctx)
	go server.chat.Run(ctx)

	server.emitter.OnAny(server.wsHub.Listener())
	server.emitter.On(events.ExampleEvent, logExampleEvent)

	// Setup middleware
	server.setupMiddleware()

	// Setup routes
	server.setupRoutes()

	return server, nil
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	// Access log through the application logger
	s.echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURI:       true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logging.L.Info("request",
				"status", v.Status,
				"method", v.Method,
				"uri", v.URI,
				"latency", v.Latency,
				"request_id", v.RequestID,
			)
			return nil
		},
	}))

	// Recover middleware
	s.echo.Use(middleware.Recover())

	// Security headers middleware
	s.echo.Use(SecurityHeaders)

	// CORS middleware
	if len(s.config.Security.AllowedOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.config.Security.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}

	// Request ID middleware
	s.echo.Use(middleware.RequestID())

	// Rate limiting
	if s.config.Security.RateLimit > 0 {
		s.echo.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
			rate.Limit(s.config.Security.RateLimit),
		)))
	}

	// Content-Type validation middleware for request bodies
	s.echo.Use(ValidateContentType)
}

// setupRoutes configures API routes.
func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/", s.healthCheck)

	// Swagger UI documentation
	s.echo.GET("/docs/*", echoSwagger.WrapHandler)

	// Stored uploads (task images, chat images, form uploads)
	if s.uploads != nil {
		s.echo.GET("/uploads/:filename", s.serveUpload)
	}

	// Non-JSON responses live outside the Accept-checked group
	s.echo.GET("/ws/chat/:room", s.joinChat)
	s.echo.GET("/ws/plot", s.streamPlot)
	s.echo.GET("/api/v1/plot.png", s.renderPlot)

	// API v1 group
	v1 := s.echo.Group("/api/v1", ValidateAcceptHeader)

	// Item routes
	if s.items != nil {
		items := v1.Group("/items")
		items.GET("", s.listItems)
		items.POST("", s.createItem)
		items.GET("/:id", s.getItem, ValidateObjectID)
		items.PUT("/:id", s.updateItem, ValidateObjectID)
		items.DELETE("/:id", s.deleteItem, ValidateObjectID)
		s.echo.GET("/api/v1/items/:id/file", s.downloadItemFile, ValidateObjectID)
	}

	// Task routes (JWT protected)
	if s.tasks != nil {
		tasks := v1.Group("/tasks", s.authMiddle.RequireAuth)
		tasks.GET("", s.listTasks, ValidateQueryParams(models.TaskFilterFields...))
		tasks.GET("/:id", s.getTask, ValidateObjectID)
		tasks.POST("", s.createTask, s.authMiddle.RequireWrite)
		tasks.PUT("/:id", s.updateTask, ValidateObjectID, s.authMiddle.RequireWrite)
		tasks.DELETE("/:id", s.deleteTask, ValidateObjectID, s.authMiddle.RequireWrite)
	}

	// Authentication routes
	if s.authn != nil {
		s.echo.POST("/token", s.issueToken)

		authRoutes := v1.Group("/auth")
		authRoutes.POST("/login", s.login)
		authRoutes.POST("/register", s.register, s.authMiddle.RequireAuth, s.authMiddle.RequireAdmin)
		authRoutes.GET("/me", s.me, s.authMiddle.RequireAuth)

		// User management routes
		users := v1.Group("/users", s.authMiddle.RequireAuth, s.authMiddle.RequireAdmin)
		users.GET("", s.listUsers)
	}

	// Form examples
	forms := v1.Group("/forms")
	forms.POST("/json", s.echoDataframe)
	if s.uploads != nil {
		forms.POST("/upload", s.uploadForm)
	}

	// Event emitter example
	v1.GET("/events/trigger/:data", s.triggerEvent)

	// Blog routes
	if s.blog != nil {
		blog := v1.Group("/blog")
		blog.POST("/login", s.blogLogin)
		blog.GET("/posts", s.listPosts)
		blog.POST("/posts", s.createPost)
		blog.GET("/posts/:id/comments", s.listComments)
		blog.POST("/posts/:id/comments", s.createComment)
	}

	// GraphQL
	if s.graphql != nil {
		s.echo.GET("/graphql", s.graphqlHandler)
		s.echo.POST("/graphql", s.graphqlHandler)
	}

	// Lookup pipelines
	v1.POST("/lookup/preview", s.previewLookup)
	if s.groups != nil {
		v1.GET("/groups/tree", s.groupTree)
	}

	// Chat rooms
	v1.GET("/chat/rooms", s.listChatRooms)

	// WebSocket routes
	ws := v1.Group("/ws")
	ws.GET("/events", s.HandleEventStream)
	ws.GET("/stats", s.GetWebSocketStats)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	logging.L.Info("Starting Cookbook API server",
		"address", addr,
		"tls", s.config.Server.TLSEnabled,
		"debug", s.config.Server.Debug,
		"auth", s.config.Security.AuthEnabled,
	)

	// Configure server timeouts
	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout

	// Start server
	if s.config.Server.TLSEnabled {
		return s.echo.StartTLS(addr, s.config.Server.TLSCert, s.config.Server.TLSKey)
	}

	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server and disconnects WebSocket clients.
// Backends passed in Dependencies are left for the caller to close.
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Infof("Shutting down Cookbook API server...")

	err := s.echo.Shutdown(ctx)
	s.stopHubs()
	if err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	logging.Infof("Server shutdown complete")
	return nil
}

// Emitter returns the event emitter the server publishes to.
func (s *Server) Emitter() *events.Emitter {
	return s.emitter
}

// healthCheck handles health check requests.
// @Summary Health check
// @Description Pings every configured backend
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (s *Server) healthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:  "healthy",
		Service: "cookbook",
		Version: version.Get().Version,
		Checks:  make(map[string]string, len(s.checks)),
	}
	code := http.StatusOK
	for _, check := range s.checks {
		if err := check.Ping(ctx); err != nil {
			resp.Checks[check.Name] = err.Error()
			resp.Status = "unhealthy"
			code = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[check.Name] = "ok"
	}

	return c.JSON(code, resp)
}

// ServeHTTP allows Server to implement http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
