package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/employee-board/api"
	"github.com/frahmantamala/employee-board/internal"
	"github.com/frahmantamala/employee-board/internal/core/events"
	"github.com/frahmantamala/employee-board/internal/datastore"
	"github.com/frahmantamala/employee-board/internal/session"
	"github.com/frahmantamala/employee-board/internal/transport/rest"
	"github.com/frahmantamala/employee-board/internal/transport/swagger"
	"github.com/frahmantamala/employee-board/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config       *internal.Config
	Repositories *datastore.Repositories
	EventBus     *events.EventBus
	Router       *chi.Mux
	Logger       *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr, "backend", deps.Repositories.Mode)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			deps.Logger.Error("Server failed to start", "error", err)
			_ = deps.Repositories.Close()
			os.Exit(1)
		}
	}

	if err := deps.Repositories.Close(); err != nil {
		deps.Logger.Error("Database close error", "error", err)
	}
	deps.Logger.Info("Server stopped")
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogger(config)
	lg := logger.LoggerWrapper()

	openapi, err := swagger.Resolve(config.API.OpenAPIPath, api.OpenAPI)
	if err != nil {
		return nil, err
	}

	repos, err := datastore.Open(ctx, config, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to open data backend: %w", err)
	}

	sessions, err := session.NewFromConfig(config.Session, lg)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("failed to initialize sessions: %w", err)
	}

	bus := events.NewEventBus(lg)
	events.SubscribeAudit(bus, lg)

	router := rest.NewRouter(rest.Dependencies{
		Repositories:   repos,
		Sessions:       sessions,
		Publisher:      bus,
		Timeout:        config.Backend.Timeout,
		OpenAPI:        openapi,
		AllowedOrigins: config.Server.AllowedOrigins,
		Logger:         lg,
	})

	return &Dependencies{
		Config:       config,
		Repositories: repos,
		EventBus:     bus,
		Router:       router,
		Logger:       lg,
	}, nil
}
