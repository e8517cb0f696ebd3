package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/shiva/internal/domain"
)

func newTestReporter(interval int) (*Reporter, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return NewReporter(logger, interval), &buf
}

func TestReporterSampling(t *testing.T) {
	reporter, buf := newTestReporter(10)
	err := domain.NewTransportError("fetch index", errors.New("connection refused"))

	// First occurrence should be logged
	reporter.Report(err)
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Fatalf("First occurrence should be logged, got %d lines", got)
	}

	// Occurrences 2-9 should not be logged
	for i := 2; i <= 9; i++ {
		reporter.Report(err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("Occurrences 2-9 should not be logged, got %d lines", got)
	}

	// 10th occurrence should be logged
	reporter.Report(err)
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("10th occurrence should be logged, got %d lines", got)
	}

	if count := reporter.Count(domain.ErrKindTransport); count != 10 {
		t.Errorf("Expected count 10, got %d", count)
	}
	if !strings.Contains(buf.String(), "kind=transport") {
		t.Errorf("Expected kind attribute in %q", buf.String())
	}
}

func TestReporterKindsAreIndependent(t *testing.T) {
	reporter, buf := newTestReporter(5)

	reporter.Report(domain.NewMalformedError("decode index", errors.New("blogList not found")))
	reporter.Report(&domain.LoadError{Kind: domain.ErrKindInvalidTopic, Topic: "sports"})

	if reporter.Count(domain.ErrKindMalformed) != 1 {
		t.Error("malformed count should be 1")
	}
	if reporter.Count(domain.ErrKindInvalidTopic) != 1 {
		t.Error("invalid topic count should be 1")
	}
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("Both first occurrences should be logged, got %d lines", got)
	}

	reporter.reset()
	if reporter.Count(domain.ErrKindMalformed) != 0 || reporter.Count(domain.ErrKindInvalidTopic) != 0 {
		t.Error("All counts should be 0 after reset")
	}
}

func TestReporterDistinctFailuresOfOneKindAreLogged(t *testing.T) {
	reporter, buf := newTestReporter(10)

	_, sportsErr := domain.ParseTopic("sports")
	_, weatherErr := domain.ParseTopic("weather")
	reporter.Report(sportsErr)
	reporter.Report(weatherErr)

	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Fatalf("Each distinct invalid topic should be logged, got %d lines", got)
	}
	if !strings.Contains(buf.String(), "weather") {
		t.Errorf("Expected second topic in %q", buf.String())
	}
	if count := reporter.Count(domain.ErrKindInvalidTopic); count != 2 {
		t.Errorf("Expected count 2, got %d", count)
	}

	// The same topic again is sampled.
	reporter.Report(sportsErr)
	if got := strings.Count(buf.String(), "\n"); got != 2 {
		t.Errorf("Repeat of a logged failure should be sampled, got %d lines", got)
	}
}

func TestReporterSampledReportsGoToDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	reporter := NewReporter(logger, 10)
	err := domain.NewTransportError("fetch content", errors.New("connection refused"))

	reporter.Report(err)
	reporter.Report(err)

	if !strings.Contains(buf.String(), "level=DEBUG") {
		t.Errorf("Sampled report should be kept at debug level, got %q", buf.String())
	}
}

func TestReporterIgnoresNil(t *testing.T) {
	reporter, buf := newTestReporter(1)
	reporter.Report(nil)
	if buf.Len() != 0 {
		t.Errorf("nil error should not be logged, got %q", buf.String())
	}
}

func TestReporterPlainErrorIsUnknownKind(t *testing.T) {
	reporter, _ := newTestReporter(1)
	reporter.Report(errors.New("boom"))
	if reporter.Count(domain.ErrKindUnknown) != 1 {
		t.Error("plain errors should be counted as unknown")
	}
}
