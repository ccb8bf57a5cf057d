package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/nfrund/hallrush/internal/app"
	"github.com/nfrund/hallrush/internal/config"
	"github.com/nfrund/hallrush/internal/logging"
	"github.com/nfrund/hallrush/internal/modules/hallrush"
	"github.com/nfrund/hallrush/internal/server"
	"github.com/spf13/afero"
)

func main() {
	logging.New()

	cfg, err := config.New()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, afero.NewOsFs(), hallrush.Options{})
	if err != nil {
		slog.Error("Failed to initialize application", "error", err)
		os.Exit(1)
	}
	defer application.Close()

	s, err := server.New(server.Dependencies{
		Config:   cfg,
		Renderer: application.Renderer,
	})
	if err != nil {
		slog.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	s.RegisterRoutes()
	if err := s.InitModules(ctx, application.Modules, application.Registry); err != nil {
		slog.Error("Failed to initialize modules", "error", err)
		application.Close()
		os.Exit(1)
	}

	if err := s.Start(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
		application.Close()
		os.Exit(1)
	}
	slog.Info("Server stopped")
}
