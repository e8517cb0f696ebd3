package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/shiva/cmd/shiva/factory"
	"github.com/shiva/internal/app"
	"github.com/shiva/internal/console"
	"github.com/shiva/internal/infra/tracing"
	transport "github.com/shiva/internal/transport/http"
	"github.com/shiva/pkg/config"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fx.NopLogger,
		fx.Provide(
			// Config
			config.Load,
			factory.NewLogger,

			// Infrastructure
			factory.NewPostSource,
			factory.NewDiagnostics,
			factory.NewDocument,

			// Widget
			factory.NewWidget,
			factory.NewConsole,

			// Metrics server
			transport.NewMetricsServer,
		),
		fx.Invoke(
			SetupTracer,
			StartMetricsServer,
			RunConsole,
		),
	).Run()
}

// --- Invokers ---

func SetupTracer(lc fx.Lifecycle, cfg *config.Config) error {
	if !cfg.OTelEnabled {
		return nil
	}
	shutdown, err := tracing.InitTracer(context.Background(), "shiva")
	if err != nil {
		slog.Error("Failed to initialize tracer", "error", err)
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Info("Shutting down tracer provider")
			return shutdown(ctx)
		},
	})
	return nil
}

func StartMetricsServer(lc fx.Lifecycle, cfg *config.Config, server *http.Server) {
	if cfg.MetricsPort == "" || cfg.MetricsPort == "0" {
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				slog.Info("Starting metrics server", "address", server.Addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					slog.Error("Metrics server failed", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}

// RunConsole initializes the widget and hands stdin to the console once the app has started.
// Quitting the console shuts the app down.
func RunConsole(lc fx.Lifecycle, shutdowner fx.Shutdowner, widget *app.Widget, c *console.Console) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				if err := widget.Initialize(ctx); err != nil {
					slog.Warn("Widget initialized with errors", "error", err)
				}
				if err := c.Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
					slog.Error("Console stopped", "error", err)
				}
				if err := shutdowner.Shutdown(); err != nil {
					slog.Error("Failed to shut down", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			return nil
		},
	})
}
