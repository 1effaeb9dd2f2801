package presentation

import (
	"fmt"
	"io"
	"strings"

	"github.com/zjrosen/vimotion/internal/markdown"
)

func (f *Formatter) renderMarkdown(md string) error {
	r, err := markdown.New(f.width, f.style)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(f.writer, out)
	return err
}

// resolutionsMarkdown writes one section per key sequence.
func resolutionsMarkdown(results []ResolutionDTO) string {
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "## %s\n\n", markdown.Code(r.Keys))
		fmt.Fprintf(&b, "- status: %s\n", r.Status)
		if r.Motion != "" {
			fmt.Fprintf(&b, "- motion: %s\n", markdown.Code(r.Motion))
		}
		if len(r.Groups) > 0 {
			groups := make([]string, len(r.Groups))
			for i, g := range r.Groups {
				groups[i] = markdown.Code(g)
			}
			fmt.Fprintf(&b, "- groups: %s\n", strings.Join(groups, ", "))
		}
		fmt.Fprintf(&b, "- cursor: %d:%d\n", r.Cursor.Line, r.Cursor.Col)
		if r.Range == nil {
			b.WriteString("- range: none\n\n")
			continue
		}
		kind := "charwise"
		if r.Range.Linewise {
			kind = "linewise"
		}
		fmt.Fprintf(&b, "- range: [%d:%d, %d:%d) %s\n", r.Range.Start.Line, r.Range.Start.Col,
			r.Range.End.Line, r.Range.End.Col, kind)
		switch {
		case r.Range.Empty:
			b.WriteString("- empty\n\n")
		default:
			fmt.Fprintf(&b, "- lines: %d\n\n", r.Range.Lines)
			b.WriteString(markdown.Fence(r.Range.Text))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func motionsMarkdown(motions []MotionDTO) string {
	var b strings.Builder
	b.WriteString("| Keys | Motion |\n| --- | --- |\n")
	for _, m := range motions {
		fmt.Fprintf(&b, "| %s | %s |\n", markdown.Cell(markdown.Code(m.Keys)), markdown.Cell(m.ID))
	}
	return b.String()
}
