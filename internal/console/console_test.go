package console

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shiva/internal/app"
	"github.com/shiva/internal/domain"
	"github.com/shiva/internal/page"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticSource struct {
	indexes  map[domain.Topic][]domain.PostSummary
	contents map[string]string
}

func (s staticSource) FetchIndex(_ context.Context, topic domain.Topic, _ int) ([]domain.PostSummary, error) {
	posts, ok := s.indexes[topic]
	if !ok {
		return nil, domain.NewTransportError("fetch index", errors.New("404"))
	}
	return posts, nil
}

func (s staticSource) FetchContent(_ context.Context, path string) (string, error) {
	body, ok := s.contents[path]
	if !ok {
		return "", domain.NewTransportError("fetch content", errors.New("404"))
	}
	return body, nil
}

type discard struct{}

func (discard) Report(error) {}

func newConsole(t *testing.T) (*Console, *app.Widget, *bytes.Buffer) {
	t.Helper()
	var blog []domain.PostSummary
	for i := 1; i <= 4; i++ {
		blog = append(blog, domain.PostSummary{
			Title: fmt.Sprintf("Blog %d", i),
			Path:  fmt.Sprintf("/cloud/blog/2026/%d.html", i),
		})
	}
	source := staticSource{
		indexes: map[domain.Topic][]domain.PostSummary{
			domain.TopicBlog:    blog,
			domain.TopicStories: {{Title: "Story", Path: "/cloud/stories/2026/s.html"}},
		},
		contents: map[string]string{"/cloud/blog/2026/2.html": "<p>Second body</p>"},
	}

	doc := page.NewDocument()
	now := func() time.Time { return time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC) }
	widget := app.NewWidget(source, doc, discard{}, app.Options{PageSize: 3, Now: now})
	require.NoError(t, widget.Initialize(context.Background()))

	var out bytes.Buffer
	return New(widget, doc, &out), widget, &out
}

func TestConsole_Paging(t *testing.T) {
	c, widget, out := newConsole(t)

	assert.False(t, c.Exec(context.Background(), "next"))
	assert.Equal(t, 2, widget.CurrentPage())
	assert.Contains(t, out.String(), "1. Blog 4")
	assert.Contains(t, out.String(), "[Previous] Page 2 (Next)")

	out.Reset()
	c.Exec(context.Background(), "next")
	assert.Contains(t, out.String(), "next is disabled")

	c.Exec(context.Background(), "prev")
	assert.Equal(t, 1, widget.CurrentPage())
}

func TestConsole_TopicAndRead(t *testing.T) {
	c, widget, out := newConsole(t)

	c.Exec(context.Background(), "read 2")
	assert.Contains(t, out.String(), "== Blog Content ==\nSecond body")

	out.Reset()
	c.Exec(context.Background(), "read 9")
	assert.Contains(t, out.String(), `no card "9"`)

	c.Exec(context.Background(), "back")
	c.Exec(context.Background(), "topic stories")
	assert.Equal(t, domain.TopicStories, widget.CurrentTopic())

	out.Reset()
	c.Exec(context.Background(), "topic sports")
	assert.Contains(t, out.String(), "error:")
	assert.Equal(t, domain.TopicStories, widget.CurrentTopic())
}

func TestConsole_Run(t *testing.T) {
	c, widget, out := newConsole(t)

	err := c.Run(context.Background(), strings.NewReader("nav\nbogus\nquit\nnext\n"))
	require.NoError(t, err)

	assert.True(t, widget.NavOpen())
	assert.Contains(t, out.String(), "[menu] blog news stories")
	assert.Contains(t, out.String(), `unknown command "bogus"`)
	assert.Equal(t, 1, widget.CurrentPage(), "commands after quit are not run")
}
