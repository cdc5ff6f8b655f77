// Package main Story Hunter API
// @title Story Hunter API
// @version 1.0
// @description Read-only story catalog search with relevance ranking and genre filters
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/story-hunter/internal/router"
	"github.com/DjordjeVuckovic/story-hunter/internal/search"
	"github.com/DjordjeVuckovic/story-hunter/internal/server"
	"github.com/DjordjeVuckovic/story-hunter/internal/storage/factory"
	"github.com/labstack/echo/v4"
)

func main() {
	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	backend, err := factory.NewBackend(context.Background(), cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create storage backend", "error", err, "type", cfg.StorageConfig.Type)
		os.Exit(1)
	}
	defer backend.Close()

	s := server.New(cfg.Server, backend.Health).
		SetupHealthChecks("/health").
		SetupMiddlewares().
		SetupErrorHandler().
		SetupOpenApi("/swagger/*")

	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "Story Hunter API is running")
	})

	storyRouter := router.NewStoryRouter(
		s.Echo,
		search.NewPlanner(backend.Stories),
		search.NewGenreLister(backend.Genres),
	)
	storyRouter.Bind()

	go func() {
		<-s.ShutdownSignal()
		slog.Info("Shutdown started, cleaning up resources...")
	}()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		backend.Close()
		os.Exit(1)
	}
}
