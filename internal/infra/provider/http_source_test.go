package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shiva/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSource(t *testing.T, url string) *HTTPSource {
	t.Helper()
	src, err := NewHTTPSource(url, Options{IndexRoot: "/cloud"})
	require.NoError(t, err)
	return src
}

func TestHTTPSource_FetchIndex(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"blogList":[{"title":"Hello","summary":"s","path":"/cloud/news/2026/hello.html"}]}`))
	}))
	defer server.Close()

	posts, err := newSource(t, server.URL).FetchIndex(context.Background(), domain.TopicNews, 2026)
	require.NoError(t, err)

	assert.Equal(t, "/cloud/news/2026/index.json", gotPath)
	require.Len(t, posts, 1)
	assert.Equal(t, "Hello", posts[0].Title)
}

func TestHTTPSource_IndexPathWithoutRoot(t *testing.T) {
	src, err := NewHTTPSource("http://example.test", Options{})
	require.NoError(t, err)
	assert.Equal(t, "/stories/2024/index.json", src.IndexPath(domain.TopicStories, 2024))
}

func TestHTTPSource_FetchIndex_Malformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	_, err := newSource(t, server.URL).FetchIndex(context.Background(), domain.TopicBlog, 2026)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformed)

	var le *domain.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "blog", le.Topic)
}

func TestHTTPSource_FetchIndex_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	_, err := newSource(t, server.URL).FetchIndex(context.Background(), domain.TopicBlog, 2026)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPSource_FetchContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cloud/blog/2026/post.html" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("<em>full text</em>"))
	}))
	defer server.Close()

	body, err := newSource(t, server.URL).FetchContent(context.Background(), "/cloud/blog/2026/post.html")
	require.NoError(t, err)
	assert.Equal(t, "<em>full text</em>", body)
}

func TestHTTPSource_CircuitBreakerOpens(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	src := newSource(t, server.URL)
	for i := 0; i < 3; i++ {
		_, err := src.FetchContent(context.Background(), "/x")
		require.Error(t, err)
	}

	// Breaker is open: the request never reaches the server.
	_, err := src.FetchContent(context.Background(), "/x")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits), "No retries and no request once open")
}

func TestHTTPSource_ClientErrorsDoNotTripBreaker(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.NotFound(w, r)
	}))
	defer server.Close()

	src := newSource(t, server.URL)
	for i := 0; i < 5; i++ {
		_, err := src.FetchContent(context.Background(), "/missing")
		require.Error(t, err)
	}
	assert.Equal(t, int32(5), atomic.LoadInt32(&hits))
}

func TestHTTPSource_ContentFailuresDoNotBlockIndex(t *testing.T) {
	var indexHits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/index.json") {
			atomic.AddInt32(&indexHits, 1)
			_, _ = w.Write([]byte(`{"blogList":[]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	src := newSource(t, server.URL)
	for i := 0; i < 4; i++ {
		_, err := src.FetchContent(context.Background(), "/cloud/blog/2026/post.html")
		require.Error(t, err)
	}

	posts, err := src.FetchIndex(context.Background(), domain.TopicNews, 2026)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, int32(1), atomic.LoadInt32(&indexHits))
}

func TestHTTPSource_FetchContent_BodyTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", maxBodySize+100)))
	}))
	defer server.Close()

	body, err := newSource(t, server.URL).FetchContent(context.Background(), "/big.html")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTransport)
	assert.Contains(t, err.Error(), "body exceeds")
	assert.Empty(t, body)
}

func TestHTTPSource_FetchContent_BodyAtLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("a", maxBodySize)))
	}))
	defer server.Close()

	body, err := newSource(t, server.URL).FetchContent(context.Background(), "/big.html")
	require.NoError(t, err)
	assert.Len(t, body, maxBodySize)
}

func TestNewHTTPSource_RejectsRelativeBase(t *testing.T) {
	_, err := NewHTTPSource("/cloud", Options{})
	assert.Error(t, err)
}
