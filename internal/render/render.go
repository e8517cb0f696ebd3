// Package render turns post data into the markup the widget writes to its view.
// Every remote-sourced field is treated as untrusted: summaries are escaped
// by html/template and full post bodies are sanitised with bluemonday.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/shiva/internal/domain"
)

const cardTemplate = `<div class="card">
{{- with .Cover}}
{{- if eq .Kind "image"}}
<img src="{{.Src}}" alt="{{.Alt}}">
{{- else if eq .Kind "video"}}
<video controls>
<source src="{{.Src}}" type="video/mp4">
Your browser does not support the video tag.
</video>
{{- end}}
{{- end}}
<h3>{{.Title}}</h3>
<p>{{.Summary}}</p>
<button class="read-more-button" data-path="{{.Path}}">Read More</button>
</div>
`

const detailTemplate = `<h2>Blog Content</h2>
<div class="blog-content">{{.}}</div>
`

var (
	cards  = template.Must(template.New("card").Parse(cardTemplate))
	detail = template.Must(template.New("detail").Parse(detailTemplate))

	contentPolicy = bluemonday.UGCPolicy()
)

// Card renders one post summary.
func Card(post domain.PostSummary) string {
	var b strings.Builder
	// Writes to a strings.Builder never fail and the template only reads fields.
	_ = cards.Execute(&b, post)
	return b.String()
}

// Cards renders posts in order, concatenated.
func Cards(posts []domain.PostSummary) string {
	var b strings.Builder
	for _, p := range posts {
		b.WriteString(Card(p))
	}
	return b.String()
}

// Detail renders the full content of a post after sanitising it.
func Detail(content string) string {
	var b strings.Builder
	_ = detail.Execute(&b, template.HTML(contentPolicy.Sanitize(content)))
	return b.String()
}

// Copyright renders the footer stamp.
func Copyright(holder string, year int) string {
	return fmt.Sprintf("&copy; By %s - %d", template.HTMLEscapeString(holder), year)
}
