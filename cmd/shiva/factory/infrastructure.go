// Package factory provides dependency injection constructors for the widget process.
package factory

import (
	"errors"
	"log/slog"
	"os"

	"github.com/shiva/internal/domain"
	"github.com/shiva/internal/infra/provider"
	"github.com/shiva/internal/page"
	"github.com/shiva/pkg/config"
	"github.com/shiva/pkg/logging"
)

// NewLogger builds the process logger. Logs go to stderr so they do not mix with the page on stdout.
func NewLogger(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return logger
}

// NewPostSource creates the HTTP source for indexes and post content.
func NewPostSource(cfg *config.Config) (domain.PostSource, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("base URL not configured")
	}
	return provider.NewHTTPSource(cfg.BaseURL, provider.Options{
		IndexRoot: cfg.IndexRoot,
		Timeout:   cfg.HTTPTimeout,
	})
}

// NewDiagnostics creates the diagnostic channel.
func NewDiagnostics(logger *slog.Logger) domain.Diagnostics {
	return logging.NewReporter(logger, 10)
}

// NewDocument creates the in-memory host page.
func NewDocument() *page.Document {
	return page.NewDocument()
}
