package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shiva/internal/domain"
	transport "github.com/shiva/internal/transport/http"
	"github.com/shiva/pkg/config"
	"go.uber.org/fx"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	fx.New(
		fx.Provide(
			config.Load,
			transport.NewContentServer,
		),
		fx.Invoke(StartServer),
	).Run()
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, server *http.Server) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			if _, err := os.Stat(cfg.ContentDir); err != nil {
				slog.Warn("Content directory not readable", "dir", cfg.ContentDir, "error", err)
			}
			// The widget requests the current year; content/<topic>/<year> must follow it.
			year := strconv.Itoa(time.Now().Year())
			for _, topic := range domain.Topics() {
				dir := filepath.Join(cfg.ContentDir, string(topic), year)
				if _, err := os.Stat(dir); err != nil {
					slog.Warn("No index for the current year", "topic", topic, "dir", dir)
				}
			}
			go func() {
				slog.Info("Content server running", "address", server.Addr, "dir", cfg.ContentDir, "root", cfg.IndexRoot)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					slog.Error("Server failed", "error", err)
					os.Exit(1)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
