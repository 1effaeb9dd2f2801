// Package markdown renders markdown reports for the terminal.
package markdown

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the word wrap width used when none is given.
const DefaultWidth = 80

// noMarginStyle drops the document margin so reports line up with plain output.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps a glamour term renderer with a fixed width.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a renderer. style is a glamour style name such as "dark",
// "light" or "ascii" and defaults to "dark". A fixed style path keeps glamour
// from querying the terminal background.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	if width <= 0 {
		width = DefaultWidth
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(md string) (string, error) {
	return r.renderer.Render(md)
}

// Code wraps s in a code span long enough to hold any backticks inside it.
func Code(s string) string {
	if s == "" {
		return "` `"
	}
	ticks := strings.Repeat("`", longestRun(s, '`')+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		s = " " + s + " "
	}
	return ticks + s + ticks
}

// Fence wraps text in a fenced code block that no line of text can close.
func Fence(text string) string {
	n := max(3, longestRun(text, '`')+1)
	fence := strings.Repeat("`", n)
	return fence + "\n" + text + "\n" + fence + "\n"
}

// Cell escapes s for use inside a table cell.
func Cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func longestRun(s string, r rune) int {
	best, cur := 0, 0
	for _, c := range s {
		if c == r {
			cur++
			best = max(best, cur)
		} else {
			cur = 0
		}
	}
	return best
}
