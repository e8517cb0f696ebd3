// Package console drives a widget from line-oriented commands, standing in for
// the clicks a browser would deliver.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shiva/internal/app"
	"github.com/shiva/internal/page"
)

const help = `commands:
  next | prev        move between pages
  topic <name>       switch topic (blog, news, stories)
  read <n>           open the n-th card on the page
  back               return to the list
  nav                toggle the menu
  show               print the page
  quit               exit
`

type Console struct {
	widget *app.Widget
	doc    *page.Document
	out    io.Writer
}

func New(widget *app.Widget, doc *page.Document, out io.Writer) *Console {
	return &Console{widget: widget, doc: doc, out: out}
}

// Run executes commands from in until quit, EOF or ctx cancellation.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	c.show()
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprint(c.out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if quit := c.Exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// Exec runs a single command line and reports whether it asked to quit.
// Widget failures are already sent to the diagnostic channel, so they are
// only echoed briefly here.
func (c *Console) Exec(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprint(c.out, help)
		return false
	case "next":
		if !c.widget.Next() {
			fmt.Fprintln(c.out, "next is disabled")
		}
	case "prev":
		if !c.widget.Prev() {
			fmt.Fprintln(c.out, "previous is disabled")
		}
	case "topic":
		if len(fields) != 2 {
			fmt.Fprintln(c.out, "usage: topic <name>")
			return false
		}
		if err := c.widget.SwitchTopic(ctx, fields[1]); err != nil {
			fmt.Fprintln(c.out, "error:", err)
		}
	case "read":
		c.read(ctx, fields[1:])
	case "back":
		c.widget.Back()
	case "nav":
		c.widget.ToggleNav()
	case "show":
	default:
		fmt.Fprintf(c.out, "unknown command %q, try help\n", fields[0])
		return false
	}

	c.show()
	return false
}

func (c *Console) read(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "usage: read <n>")
		return
	}
	posts := c.widget.VisiblePosts()
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(posts) {
		fmt.Fprintf(c.out, "no card %q on this page\n", args[0])
		return
	}
	if err := c.widget.ReadMore(ctx, posts[n-1].Path); err != nil {
		fmt.Fprintln(c.out, "error:", err)
	}
}

func (c *Console) show() {
	if err := c.doc.WriteText(c.out); err != nil {
		slog.Warn("Failed to print page", "error", err)
	}
}
