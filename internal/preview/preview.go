// Package preview renders a resolved range for humans: the touched lines
// with the selection highlighted, and the document before and after the
// range is deleted.
package preview

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/zjrosen/vimotion/internal/buffer"
)

var (
	// SelectionColor is the background of the highlighted range.
	SelectionColor = lipgloss.AdaptiveColor{Light: "#B4D5FE", Dark: "#3E4452"}
	// GutterColor is the line number color.
	GutterColor = lipgloss.AdaptiveColor{Light: "#8C8C8C", Dark: "#5C6370"}

	selectionStyle = lipgloss.NewStyle().Background(SelectionColor).Bold(true)
	gutterStyle    = lipgloss.NewStyle().Foreground(GutterColor)
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
)

// Options controls Highlight output.
type Options struct {
	// Width truncates rendered lines to this many cells. Zero disables.
	Width int
}

// Highlight renders every line touched by r, prefixed by its 1-based line
// number, with the selected columns styled.
func Highlight(doc buffer.Document, r buffer.Range, opts Options) string {
	r.End.Line = min(r.End.Line, buffer.LastLine(doc))
	digits := len(strconv.Itoa(r.End.Line + 1))

	var b strings.Builder
	for line := r.Start.Line; line <= r.End.Line; line++ {
		text := doc.Line(line)
		n := buffer.GraphemeCount(text)
		from, to := selectedColumns(r, line, n)

		row := gutterStyle.Render(fmt.Sprintf("%*d ", digits, line+1)) +
			buffer.SliceByGraphemes(text, 0, from) +
			selectionStyle.Render(buffer.SliceByGraphemes(text, from, to)) +
			buffer.SliceByGraphemes(text, to, n)
		b.WriteString(fit(row, opts.Width))
		if line < r.End.Line {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Page renders the whole document with line numbers, the selection
// highlighted and the cursor cell reversed. sel may be nil.
func Page(doc buffer.Document, sel *buffer.Range, cursor buffer.Position, opts Options) string {
	last := buffer.LastLine(doc)
	digits := len(strconv.Itoa(last + 1))

	rows := make([]string, 0, last+1)
	for line := 0; line <= last; line++ {
		cells := buffer.Graphemes(doc.Line(line))
		selected := func(col int) bool {
			return sel != nil && sel.Contains(buffer.Position{Line: line, Col: col})
		}
		cur := -1
		if line == cursor.Line {
			cur = cursor.Col
		}

		row := gutterStyle.Render(fmt.Sprintf("%*d ", digits, line+1)) + styleCells(cells, selected, cur)
		rows = append(rows, fit(row, opts.Width))
	}
	return strings.Join(rows, "\n")
}

// styleCells renders cells, styling runs of selected cells and the cursor
// cell. A cursor past the end is drawn on a trailing space.
func styleCells(cells []string, selected func(col int) bool, cur int) string {
	if cur >= len(cells) {
		cells = append(cells, " ")
	}
	kind := func(i int) int {
		switch {
		case i == cur:
			return 2
		case i < len(cells) && selected(i):
			return 1
		}
		return 0
	}

	var b strings.Builder
	start := 0
	for i := 1; i <= len(cells); i++ {
		if i < len(cells) && kind(i) == kind(start) {
			continue
		}
		run := strings.Join(cells[start:i], "")
		switch kind(start) {
		case 2:
			run = cursorStyle.Render(run)
		case 1:
			run = selectionStyle.Render(run)
		}
		b.WriteString(run)
		start = i
	}
	return b.String()
}

// fit truncates row to width cells with a trailing ellipsis. Zero width
// leaves it alone.
func fit(row string, width int) string {
	if width <= 0 || buffer.DisplayWidth(ansi.Strip(row)) <= width {
		return row
	}
	return truncate.StringWithTail(row, uint(width), "…")
}

// selectedColumns returns the half-open column span of line covered by r.
func selectedColumns(r buffer.Range, line, n int) (from, to int) {
	if r.Linewise {
		return 0, n
	}
	from, to = 0, n
	if line == r.Start.Line {
		from = min(r.Start.Col, n)
	}
	if line == r.End.Line {
		to = min(r.End.Col, n)
	}
	return from, max(from, to)
}

// Delete returns the document text with r removed. Linewise ranges remove
// their lines entirely.
func Delete(doc buffer.Document, r buffer.Range) string {
	last := buffer.LastLine(doc)
	var kept []string
	for i := 0; i < r.Start.Line; i++ {
		kept = append(kept, doc.Line(i))
	}

	if r.Linewise {
		for i := r.End.Line + 1; i <= last; i++ {
			kept = append(kept, doc.Line(i))
		}
		return strings.Join(kept, "\n")
	}

	head := doc.Line(r.Start.Line)
	tail := doc.Line(r.End.Line)
	joined := buffer.SliceByGraphemes(head, 0, r.Start.Col) +
		buffer.SliceByGraphemes(tail, r.End.Col, buffer.GraphemeCount(tail))
	kept = append(kept, joined)
	for i := r.End.Line + 1; i <= last; i++ {
		kept = append(kept, doc.Line(i))
	}
	return strings.Join(kept, "\n")
}

// DeletionDiff renders the document before and after deleting r as a
// colored character diff.
func DeletionDiff(doc buffer.Document, r buffer.Range) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(buffer.Text(doc), Delete(doc, r), false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	return dmp.DiffPrettyText(diffs)
}
