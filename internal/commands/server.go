package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"evalgo.org/cookbook/internal/api"
	"evalgo.org/cookbook/internal/auth"
	"evalgo.org/cookbook/internal/blog"
	"evalgo.org/cookbook/internal/chart"
	"evalgo.org/cookbook/internal/config"
	"evalgo.org/cookbook/internal/events"
	"evalgo.org/cookbook/internal/logging"
	"evalgo.org/cookbook/internal/storage"
	"evalgo.org/cookbook/internal/uploads"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the API server",
	Long: `Start the HTTP API server with Echo framework.

MongoDB backs items, tasks, users, the library and the group tree. The blog
uses the SQL database (sqlite or postgres); with tasks.backend set to "sql"
tasks are kept there as well. When redis.addr is set every
emitted event is also published to the configured Redis channel.`,
	RunE: runServer,
}

func runServer(cmd *cobra.Command, args []string) error {
	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	// Initialize storage layer
	store, err := storage.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			logging.Warnf("Failed to close MongoDB client: %v", err)
		}
	}()

	blogStore, err := blog.Open(ctx, cfg.SQL.Driver, cfg.SQL.DSN, cfg.SQL.MaxOpenConns)
	if err != nil {
		return fmt.Errorf("failed to open blog database: %w", err)
	}
	defer blogStore.Close()
	logging.Infof("Blog database: %s", blogStore.Driver())

	var tasks api.TaskStore = store
	if cfg.Tasks.Backend == config.TasksBackendSQL {
		tasks = blogStore.Tasks()
	}
	logging.Infof("Tasks backend: %s", cfg.Tasks.Backend)

	uploadStore, err := uploads.NewStore(cfg.Uploads)
	if err != nil {
		return fmt.Errorf("failed to prepare uploads: %w", err)
	}

	emitter := events.NewEmitter()
	if cfg.Redis.Enabled() {
		mirror, err := events.NewRedisMirror(ctx, cfg.Redis)
		if err != nil {
			logging.Warnf("Redis event mirror disabled: %v", err)
		} else {
			emitter.OnAny(mirror.Listener())
			defer mirror.Close()
			logging.Infof("Mirroring events to redis channel %s", cfg.Redis.Channel)
		}
	}
	// runs before the mirror closes so in-flight listeners can publish
	defer emitter.Close()

	if cfg.Security.AuthEnabled {
		authn := auth.NewAuthenticator(store, auth.NewJWTService(cfg))
		if _, err := authn.EnsureBootstrapAdmin(ctx, cfg.Security.BootstrapAdminUsername, cfg.Security.BootstrapAdminPassword); err != nil {
			return err
		}
	}

	// Create API server
	server, err := api.New(cfg, api.Dependencies{
		Items:    store,
		Tasks:    tasks,
		Users:    store,
		Library:  store,
		Groups:   store,
		Blog:     blogStore,
		Uploads:  uploadStore,
		Emitter:  emitter,
		Renderer: chart.NewRenderer(cfg.Plot),
		Checks: []api.HealthCheck{
			{Name: "mongo", Ping: store.Ping},
			{Name: "sql", Ping: blogStore.Ping},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	// Start server in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logging.Infof("Shutdown signal received")

		// Create shutdown context with timeout
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return nil

	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	}
}
