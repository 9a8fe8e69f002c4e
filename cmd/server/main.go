package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/tabular/internal/columns"
	"github.com/JonMunkholm/tabular/internal/config"
	"github.com/JonMunkholm/tabular/internal/logging"
	"github.com/JonMunkholm/tabular/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists; real environment variables win
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	base, err := loadConfigTable(cfg.Columns.ConfigPath)
	if err != nil {
		slog.Error("failed to load column configuration", "path", cfg.Columns.ConfigPath, "error", err)
		os.Exit(1)
	}
	slog.Info("column configuration loaded", "path", cfg.Columns.ConfigPath, "entries", len(base))

	server := web.NewServer(cfg, base)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// loadConfigTable reads the optional YAML configuration table.
func loadConfigTable(path string) (columns.ConfigTable, error) {
	if path == "" {
		return columns.ConfigTable{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return columns.LoadConfigTable(f)
}
