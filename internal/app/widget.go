package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/shiva/internal/domain"
	"github.com/shiva/internal/infra/metrics"
	"github.com/shiva/internal/render"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const tracerName = "shiva"

// DefaultCopyrightHolder is stamped into the footer when no holder is configured.
const DefaultCopyrightHolder = "Pruthviraj"

// Options configures a Widget.
type Options struct {
	PageSize        int
	CopyrightHolder string
	Now             func() time.Time // clock used for the current year
}

// Widget is the paginated blog list. Its methods stand in for the UI events
// of the host page and may be called from any goroutine. View methods are
// always invoked with the widget lock held, so a View must not call back
// into the widget.
type Widget struct {
	source domain.PostSource
	view   domain.View
	diag   domain.Diagnostics
	holder string
	now    func() time.Time
	year   int // year of the index loads, fixed at construction

	mu       sync.Mutex
	navOpen  bool
	page     int
	pageSize int
	posts    []domain.PostSummary
	topic    domain.Topic
	ticket   uint64 // last issued list load
}

func NewWidget(source domain.PostSource, view domain.View, diag domain.Diagnostics, opts Options) *Widget {
	pageSize := opts.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	holder := opts.CopyrightHolder
	if holder == "" {
		holder = DefaultCopyrightHolder
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Widget{
		source:   source,
		view:     view,
		diag:     diag,
		holder:   holder,
		now:      now,
		year:     now().Year(),
		page:     1,
		pageSize: pageSize,
		topic:    domain.DefaultTopic,
	}
}

// Initialize loads the first page of the default topic and stamps the footer.
func (w *Widget) Initialize(ctx context.Context) error {
	loadErr := w.LoadList(ctx)
	footerErr := w.PrintCopyright()
	return errors.Join(loadErr, footerErr)
}

func (w *Widget) CurrentTopic() domain.Topic {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.topic
}

func (w *Widget) CurrentYear() int {
	return w.year
}

func (w *Widget) CurrentPage() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.page
}

func (w *Widget) PageSize() int {
	return w.pageSize
}

func (w *Widget) TotalPosts() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.posts)
}

// VisiblePosts returns the posts rendered on the current page.
func (w *Widget) VisiblePosts() []domain.PostSummary {
	w.mu.Lock()
	defer w.mu.Unlock()
	start, end := Window(w.page, w.pageSize, len(w.posts))
	out := make([]domain.PostSummary, end-start)
	copy(out, w.posts[start:end])
	return out
}

func (w *Widget) NavOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.navOpen
}

// LoadList fetches the index of the current topic and year and renders the current page.
// Only the most recently issued load may change state; earlier ones that resolve
// later return ErrSuperseded without touching the list or the view.
func (w *Widget) LoadList(ctx context.Context) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "LoadList")
	defer span.End()

	w.mu.Lock()
	w.ticket++
	ticket := w.ticket
	topic := w.topic
	w.mu.Unlock()

	span.SetAttributes(attribute.String("topic", string(topic)), attribute.Int("year", w.year))

	posts, err := w.source.FetchIndex(ctx, topic, w.year)

	w.mu.Lock()
	defer w.mu.Unlock()

	if ticket != w.ticket {
		slog.Debug("Dropping superseded list load", "topic", topic, "ticket", ticket, "latest", w.ticket)
		metrics.IndexLoads.WithLabelValues(string(topic), domain.ErrKindSuperseded.String()).Inc()
		return &domain.LoadError{Kind: domain.ErrKindSuperseded, Op: "load list", Topic: string(topic), Err: err}
	}

	if err != nil {
		loadErr := asLoadError(err, "load list", domain.ErrKindTransport)
		if loadErr.Topic == "" {
			loadErr.Topic = string(topic)
		}
		span.RecordError(loadErr)
		metrics.IndexLoads.WithLabelValues(string(topic), loadErr.Kind.String()).Inc()
		w.diag.Report(loadErr)
		return loadErr
	}

	w.posts = posts
	if last := LastPage(w.pageSize, len(posts)); w.page > last {
		slog.Debug("Clamping page to last page", "topic", topic, "page", w.page, "last", last)
		w.page = last
	}
	metrics.IndexLoads.WithLabelValues(string(topic), "success").Inc()
	metrics.PostsLoaded.WithLabelValues(string(topic)).Set(float64(len(posts)))
	span.SetAttributes(attribute.Int("posts", len(posts)))

	w.renderLocked()
	return nil
}

func (w *Widget) renderLocked() {
	start, end := Window(w.page, w.pageSize, len(w.posts))
	w.view.RenderList(render.Cards(w.posts[start:end]))
	w.view.SetControls(Controls(w.page, w.pageSize, len(w.posts)))
	metrics.PageRenders.Inc()
}

// Next moves to the following page. It reports false when the Next control is disabled.
func (w *Widget) Next() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.page*w.pageSize >= len(w.posts) {
		return false
	}
	w.page++
	w.renderLocked()
	return true
}

// Prev moves to the preceding page. It reports false when the Previous control is disabled.
func (w *Widget) Prev() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.page <= 1 {
		return false
	}
	w.page--
	w.renderLocked()
	return true
}

// SwitchTopic handles a nav link click carrying the topic identifier raw.
func (w *Widget) SwitchTopic(ctx context.Context, raw string) error {
	topic, err := domain.ParseTopic(raw)
	if err != nil {
		w.diag.Report(err)
		return err
	}

	w.mu.Lock()
	w.topic = topic
	w.page = 1
	w.mu.Unlock()

	slog.Debug("Switched topic", "topic", topic)
	return w.LoadList(ctx)
}

// ToggleNav opens or closes the slide-out menu and returns the new state.
func (w *Widget) ToggleNav() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.navOpen = !w.navOpen
	if w.navOpen {
		w.view.SetNavWidth("100%")
	} else {
		w.view.SetNavWidth("0%")
	}
	return w.navOpen
}

// ReadMore loads the full content at path into the detail region.
func (w *Widget) ReadMore(ctx context.Context, path string) error {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "ReadMore")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	content, err := w.source.FetchContent(ctx, path)
	if err != nil {
		loadErr := asLoadError(err, "read more", domain.ErrKindTransport)
		span.RecordError(loadErr)
		metrics.ContentLoads.WithLabelValues(loadErr.Kind.String()).Inc()
		w.diag.Report(loadErr)
		return loadErr
	}
	metrics.ContentLoads.WithLabelValues("success").Inc()

	markup := render.Detail(content)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.view.ShowDetail(markup)
	return nil
}

// Back returns from the detail region to the list. Detail content is left in place.
func (w *Widget) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.view.ShowList()
}

// PrintCopyright stamps the footer, if the view has one.
func (w *Widget) PrintCopyright() error {
	footer, ok := w.view.(domain.FooterView)
	if !ok {
		return nil
	}

	markup := render.Copyright(w.holder, w.now().Year())

	w.mu.Lock()
	err := footer.SetFooter(markup)
	w.mu.Unlock()

	if err != nil {
		loadErr := &domain.LoadError{Kind: domain.ErrKindMissingTarget, Op: "print copyright", Err: err}
		w.diag.Report(loadErr)
		return loadErr
	}
	return nil
}

// asLoadError returns a copy of the first LoadError in err's chain, so callers
// may set fields without touching the source's value.
func asLoadError(err error, op string, fallback domain.ErrorKind) *domain.LoadError {
	var le *domain.LoadError
	if errors.As(err, &le) {
		cp := *le
		return &cp
	}
	return &domain.LoadError{Kind: fallback, Op: op, Err: err}
}
