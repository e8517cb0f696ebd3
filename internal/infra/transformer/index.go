package transformer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/shiva/internal/domain"
)

// IndexField is the top-level array every index.json must carry.
const IndexField = "blogList"

type indexCover struct {
	Type  string `json:"type"`
	Image *struct {
		Src string `json:"src"`
		Alt string `json:"alt"`
	} `json:"image"`
	Video *struct {
		Src string `json:"src"`
	} `json:"video"`
}

type indexEntry struct {
	Title   string      `json:"title"`
	Summary string      `json:"summary"`
	Path    string      `json:"path"`
	Cover   *indexCover `json:"cover"`
}

// IndexTransformer decodes topic index payloads.
type IndexTransformer struct{}

func NewIndexTransformer() *IndexTransformer {
	return &IndexTransformer{}
}

// Transform decodes `{"blogList": [...]}`.
// Undecodable JSON is a transport error; a body without a blogList array is malformed.
func (t *IndexTransformer) Transform(reader io.Reader) ([]domain.PostSummary, error) {
	dec := json.NewDecoder(reader)
	var payload map[string]json.RawMessage
	if err := dec.Decode(&payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, domain.NewMalformedError("decode index", fmt.Errorf("payload is not an object: %w", err))
		}
		return nil, domain.NewTransportError("decode index", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, domain.NewTransportError("decode index", errors.New("unexpected data after index object"))
	}

	raw, ok := payload[IndexField]
	if !ok {
		return nil, domain.NewMalformedError("decode index", fmt.Errorf("%q not found", IndexField))
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, domain.NewMalformedError("decode index", fmt.Errorf("%q is not an array", IndexField))
	}

	var entries []indexEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, domain.NewMalformedError("decode index", fmt.Errorf("invalid %q entries: %w", IndexField, err))
	}

	posts := make([]domain.PostSummary, 0, len(entries))
	for _, e := range entries {
		posts = append(posts, t.normalize(e))
	}
	return posts, nil
}

func (t *IndexTransformer) normalize(e indexEntry) domain.PostSummary {
	post := domain.PostSummary{
		Title:   e.Title,
		Summary: e.Summary,
		Path:    e.Path,
	}
	if e.Cover == nil {
		return post
	}

	cover := &domain.CoverMedia{Kind: e.Cover.Type}
	switch e.Cover.Type {
	case domain.CoverImage:
		if e.Cover.Image != nil {
			cover.Src = e.Cover.Image.Src
			cover.Alt = e.Cover.Image.Alt
		}
	case domain.CoverVideo:
		if e.Cover.Video != nil {
			cover.Src = e.Cover.Video.Src
		}
	}
	post.Cover = cover
	return post
}
