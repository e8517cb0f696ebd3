package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	"github.com/shiva/internal/domain"
	"github.com/shiva/internal/infra/metrics"
	"github.com/shiva/internal/infra/transformer"
	"github.com/sony/gobreaker"
)

const maxBodySize = 8 << 20

// Options tunes an HTTPSource. Zero values fall back to defaults.
type Options struct {
	IndexRoot string // prefix of index paths, e.g. "/cloud"
	Timeout   time.Duration
	Client    *http.Client
}

// HTTPSource fetches topic indexes and post content from a static content host.
type HTTPSource struct {
	base        *url.URL
	indexRoot   string
	client      *http.Client
	transformer *transformer.IndexTransformer
	indexCB     *gobreaker.CircuitBreaker // index and content fail independently
	contentCB   *gobreaker.CircuitBreaker
}

var _ domain.PostSource = (*HTTPSource)(nil)

func NewHTTPSource(baseURL string, opts Options) (*HTTPSource, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}

	client := opts.Client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &HTTPSource{
		base:        base,
		indexRoot:   opts.IndexRoot,
		client:      client,
		transformer: transformer.NewIndexTransformer(),
		indexCB:     newBreaker(base.Host + "/index"),
		contentCB:   newBreaker(base.Host + "/content"),
	}, nil
}

// newBreaker opens after three consecutive transport failures or 5xx responses.
func newBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// 4xx means the host is up; only transport failures and 5xx trip the breaker.
			_, isClient := err.(*clientError)
			return err == nil || isClient
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("CircuitBreaker state changed", "name", name, "from", from, "to", to)
		},
	})
}

// IndexPath returns the path of the index for topic and year.
func (s *HTTPSource) IndexPath(topic domain.Topic, year int) string {
	return path.Join("/", s.indexRoot, string(topic), strconv.Itoa(year), "index.json")
}

func (s *HTTPSource) FetchIndex(ctx context.Context, topic domain.Topic, year int) ([]domain.PostSummary, error) {
	start := time.Now()
	body, err := s.get(ctx, s.indexCB, s.IndexPath(topic, year))
	metrics.FetchDuration.WithLabelValues("index").Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, &domain.LoadError{Kind: domain.ErrKindTransport, Op: "fetch index", Topic: string(topic), Err: err}
	}

	posts, err := s.transformer.Transform(bytes.NewReader(body))
	if err != nil {
		if le, ok := err.(*domain.LoadError); ok {
			scoped := *le
			scoped.Topic = string(topic)
			return nil, &scoped
		}
		return nil, err
	}

	slog.Debug("Fetched index", "topic", topic, "year", year, "posts", len(posts))
	return posts, nil
}

func (s *HTTPSource) FetchContent(ctx context.Context, contentPath string) (string, error) {
	start := time.Now()
	body, err := s.get(ctx, s.contentCB, contentPath)
	metrics.FetchDuration.WithLabelValues("content").Observe(time.Since(start).Seconds())
	if err != nil {
		return "", domain.NewTransportError("fetch content", err)
	}
	return string(body), nil
}

// clientError is a failure caused by the request or the resource, not the host.
type clientError struct {
	url    string
	status int
	reason string
}

func (e *clientError) Error() string {
	if e.reason != "" {
		return fmt.Sprintf("%s: %s", e.url, e.reason)
	}
	return fmt.Sprintf("%s returned status %d", e.url, e.status)
}

func (s *HTTPSource) resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", ref, err)
	}
	return s.base.ResolveReference(u).String(), nil
}

// get performs a single GET through the circuit breaker. There are no retries.
func (s *HTTPSource) get(ctx context.Context, cb *gobreaker.CircuitBreaker, ref string) ([]byte, error) {
	target, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}

	result, err := cb.Execute(func() (interface{}, error) {
		req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if reqErr != nil {
			return nil, fmt.Errorf("failed to create request: %w", reqErr)
		}

		resp, respErr := s.client.Do(req)
		if respErr != nil {
			return nil, respErr
		}
		defer func() {
			if err := resp.Body.Close(); err != nil {
				slog.Warn("Failed to close response body", "error", err)
			}
		}()

		if resp.StatusCode >= 500 {
			return nil, fmt.Errorf("%s returned status %d", target, resp.StatusCode)
		}
		if resp.StatusCode != http.StatusOK {
			return nil, &clientError{url: target, status: resp.StatusCode}
		}

		data, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
		if readErr != nil {
			return nil, fmt.Errorf("failed to read body: %w", readErr)
		}
		if len(data) > maxBodySize {
			return nil, &clientError{url: target, status: resp.StatusCode, reason: fmt.Sprintf("body exceeds %d bytes", maxBodySize)}
		}
		return data, nil
	})
	if err != nil {
		return nil, fmt.Errorf("circuit breaker execute failed: %w", err)
	}
	return result.([]byte), nil
}
