// Package page is an in-memory host page for the widget: the element ids and
// classes the widget writes to, held as markup plus display state.
package page

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/shiva/internal/domain"
)

// Element ids.
const (
	IDBlogContainer     = "blog-container"
	IDFullBlogContainer = "fullBlogContainer"
	IDPrev              = "prev"
	IDNext              = "next"
	IDPageInfo          = "page-info"
	IDBackButton        = "back-button"
)

// CSS classes.
const (
	ClassNav    = "nav"
	ClassFooter = "footer"
)

// Element is the state of one page element.
type Element struct {
	Markup   string
	Hidden   bool
	Disabled bool
	Width    string
}

// Document implements domain.View and domain.FooterView.
type Document struct {
	mu       sync.RWMutex
	elements map[string]*Element
}

var (
	_ domain.View       = (*Document)(nil)
	_ domain.FooterView = (*Document)(nil)
)

func NewDocument() *Document {
	d := &Document{elements: make(map[string]*Element)}
	for _, key := range []string{IDBlogContainer, IDFullBlogContainer, IDPrev, IDNext, IDPageInfo, IDBackButton, ClassNav, ClassFooter} {
		d.elements[key] = &Element{}
	}
	d.elements[IDFullBlogContainer].Hidden = true
	d.elements[IDBackButton].Hidden = true
	d.elements[IDBackButton].Markup = "Back"
	d.elements[IDPrev].Markup = "Previous"
	d.elements[IDNext].Markup = "Next"
	d.elements[ClassNav].Width = "0%"
	return d
}

// Element returns a copy of the element stored under an id or class name.
func (d *Document) Element(key string) (Element, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	el, ok := d.elements[key]
	if !ok {
		return Element{}, false
	}
	return *el, true
}

func (d *Document) RenderList(markup string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[IDBlogContainer].Markup = markup
}

func (d *Document) SetControls(c domain.PageControls) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[IDPrev].Disabled = c.PrevDisabled
	d.elements[IDNext].Disabled = c.NextDisabled
	d.elements[IDPageInfo].Markup = c.Label
}

func (d *Document) ShowDetail(markup string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[IDFullBlogContainer].Markup = markup
	d.elements[IDFullBlogContainer].Hidden = false
	d.elements[IDBlogContainer].Hidden = true
	d.elements[IDBackButton].Hidden = false
}

func (d *Document) ShowList() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[IDFullBlogContainer].Hidden = true
	d.elements[IDBlogContainer].Hidden = false
	d.elements[IDBackButton].Hidden = true
}

func (d *Document) SetNavWidth(width string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[ClassNav].Width = width
}

func (d *Document) SetFooter(markup string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.elements[ClassFooter].Markup = markup
	return nil
}

// WriteText prints the visible state of the page as plain text.
func (d *Document) WriteText(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var b strings.Builder
	if nav := d.elements[ClassNav]; nav.Width != "0%" && nav.Width != "" {
		b.WriteString("[menu] ")
		for _, t := range domain.Topics() {
			fmt.Fprintf(&b, "%s ", t)
		}
		b.WriteString("\n")
	}

	if list := d.elements[IDBlogContainer]; !list.Hidden {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(list.Markup))
		if err != nil {
			return fmt.Errorf("failed to parse list markup: %w", err)
		}
		doc.Find(".card").Each(func(i int, card *goquery.Selection) {
			fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1,
				strings.TrimSpace(card.Find("h3").Text()),
				strings.TrimSpace(card.Find("p").Text()))
			if src, ok := card.Find("img").Attr("src"); ok {
				fmt.Fprintf(&b, "   [image %s]\n", src)
			}
			if src, ok := card.Find("video source").Attr("src"); ok {
				fmt.Fprintf(&b, "   [video %s]\n", src)
			}
		})
		fmt.Fprintf(&b, "%s %s %s\n",
			control(d.elements[IDPrev]), d.elements[IDPageInfo].Markup, control(d.elements[IDNext]))
	}

	if detail := d.elements[IDFullBlogContainer]; !detail.Hidden {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(detail.Markup))
		if err != nil {
			return fmt.Errorf("failed to parse detail markup: %w", err)
		}
		fmt.Fprintf(&b, "== %s ==\n%s\n", doc.Find("h2").Text(), strings.TrimSpace(doc.Find(".blog-content").Text()))
	}
	if back := d.elements[IDBackButton]; !back.Hidden {
		fmt.Fprintf(&b, "[%s]\n", back.Markup)
	}

	if footer := d.elements[ClassFooter]; footer.Markup != "" {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(footer.Markup))
		if err == nil {
			fmt.Fprintf(&b, "%s\n", doc.Text())
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func control(el *Element) string {
	if el.Disabled {
		return "(" + el.Markup + ")"
	}
	return "[" + el.Markup + "]"
}
