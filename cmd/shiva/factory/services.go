package factory

import (
	"errors"
	"fmt"
	"os"

	"github.com/shiva/internal/app"
	"github.com/shiva/internal/console"
	"github.com/shiva/internal/domain"
	"github.com/shiva/internal/page"
	"github.com/shiva/pkg/config"
)

// NewWidget creates the widget with validation.
func NewWidget(
	source domain.PostSource,
	doc *page.Document,
	diag domain.Diagnostics,
	cfg *config.Config,
) (*app.Widget, error) {
	if source == nil {
		return nil, errors.New("post source is nil")
	}
	if diag == nil {
		return nil, errors.New("diagnostics is nil")
	}
	if cfg.PageSize < 1 || cfg.PageSize > 100 {
		return nil, fmt.Errorf("invalid page size: %d (must be 1-100)", cfg.PageSize)
	}

	return app.NewWidget(source, doc, diag, app.Options{
		PageSize:        cfg.PageSize,
		CopyrightHolder: cfg.CopyrightHolder,
	}), nil
}

// NewConsole creates the stdin/stdout driver.
func NewConsole(widget *app.Widget, doc *page.Document) *console.Console {
	return console.New(widget, doc, os.Stdout)
}
