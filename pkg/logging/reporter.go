package logging

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/shiva/internal/domain"
	"github.com/shiva/internal/infra/metrics"
)

// Reporter is the widget's diagnostic channel. Every report is counted;
// repeated reports of the same failure are sampled so a flapping content host
// does not flood the log: the first occurrence is logged, then every Nth.
// Two failures are the same when kind, operation and topic match.
type Reporter struct {
	logger   *slog.Logger
	mu       sync.Mutex
	kinds    map[domain.ErrorKind]int
	seen     map[string]int
	interval int
}

var _ domain.Diagnostics = (*Reporter)(nil)

// NewReporter creates a reporter logging to logger (slog.Default when nil).
// interval < 1 defaults to 10.
func NewReporter(logger *slog.Logger, interval int) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	if interval < 1 {
		interval = 10
	}
	return &Reporter{
		logger:   logger,
		kinds:    make(map[domain.ErrorKind]int),
		seen:     make(map[string]int),
		interval: interval,
	}
}

func (r *Reporter) Report(err error) {
	if err == nil {
		return
	}
	kind := domain.KindOf(err)
	metrics.Diagnostics.WithLabelValues(kind.String()).Inc()

	n, ok := r.shouldLog(kind, errorKey(kind, err))
	if ok {
		r.logger.Error("Widget operation failed", "kind", kind.String(), "occurrence", n, "error", err)
		return
	}
	r.logger.Debug("Widget operation failed", "kind", kind.String(), "occurrence", n, "error", err)
}

func (r *Reporter) shouldLog(kind domain.ErrorKind, key string) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.kinds[kind]++
	r.seen[key]++
	n := r.seen[key]
	return n, n == 1 || n%r.interval == 0
}

func errorKey(kind domain.ErrorKind, err error) string {
	var le *domain.LoadError
	if errors.As(err, &le) {
		return kind.String() + "|" + le.Op + "|" + le.Topic
	}
	return kind.String() + "|" + err.Error()
}

// Count returns how many reports of kind have been received.
func (r *Reporter) Count(kind domain.ErrorKind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.kinds[kind]
}

// reset clears all counts, so the next report of every failure is logged again.
func (r *Reporter) reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = make(map[domain.ErrorKind]int)
	r.seen = make(map[string]int)
}
