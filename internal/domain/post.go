package domain

import (
	"context"
	"fmt"
)

// Cover media kinds recognised by the card renderer.
const (
	CoverImage = "image"
	CoverVideo = "video"
)

// PostSummary is one entry of a topic index.
type PostSummary struct {
	Title   string
	Summary string
	Path    string // location of the full post content
	Cover   *CoverMedia
}

// CoverMedia is the optional illustration of a post.
// Kind is CoverImage or CoverVideo; anything else renders no cover.
type CoverMedia struct {
	Kind string
	Src  string
	Alt  string // image only
}

// Topic partitions the blog index.
type Topic string

const (
	TopicBlog    Topic = "blog"
	TopicNews    Topic = "news"
	TopicStories Topic = "stories"
)

// DefaultTopic is the topic shown before any nav link is clicked.
const DefaultTopic = TopicBlog

var topics = []Topic{TopicBlog, TopicNews, TopicStories}

// Topics returns the closed set of recognised topics.
func Topics() []Topic {
	out := make([]Topic, len(topics))
	copy(out, topics)
	return out
}

// ParseTopic returns the topic named by s, or an InvalidTopic error.
func ParseTopic(s string) (Topic, error) {
	for _, t := range topics {
		if string(t) == s {
			return t, nil
		}
	}
	return "", &LoadError{
		Kind:  ErrKindInvalidTopic,
		Op:    "switch topic",
		Topic: s,
		Err:   fmt.Errorf("invalid topic %q", s),
	}
}

// PostSource fetches the remote resources the widget displays.
type PostSource interface {
	// FetchIndex returns the summaries listed for a topic and year.
	FetchIndex(ctx context.Context, topic Topic, year int) ([]PostSummary, error)
	// FetchContent returns the raw body stored at path.
	FetchContent(ctx context.Context, path string) (string, error)
}

// Diagnostics receives non-fatal failures. Nothing reported here reaches the end user.
type Diagnostics interface {
	Report(err error)
}
