package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Format selects the output encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	// FormatMarkdown renders a markdown report through glamour.
	FormatMarkdown Format = "markdown"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatYAML, FormatJSON, FormatMarkdown:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unknown format %q (want text, yaml, json or markdown)", s)
	}
}

var (
	labelStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	format Format
	width  int
	style  string
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer, format Format) *Formatter {
	return &Formatter{writer: writer, format: format}
}

// WithMarkdown sets the wrap width and glamour style used by the markdown
// format. Zero and empty values keep the renderer defaults.
func (f *Formatter) WithMarkdown(width int, style string) *Formatter {
	f.width = width
	f.style = style
	return f
}

// FormatResolutions writes resolution results.
func (f *Formatter) FormatResolutions(results []ResolutionDTO) error {
	switch f.format {
	case FormatJSON:
		return f.encodeJSON(results)
	case FormatYAML:
		return f.encodeYAML(results)
	case FormatMarkdown:
		return f.renderMarkdown(resolutionsMarkdown(results))
	}

	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(f.writer); err != nil {
				return err
			}
		}
		if err := f.writeResolutionText(r); err != nil {
			return err
		}
	}
	return nil
}

func (f *Formatter) writeResolutionText(r ResolutionDTO) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("keys:"), r.Keys)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("status:"), r.Status)
	if r.Motion != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("motion:"), r.Motion)
	}
	fmt.Fprintf(&b, "%s %d:%d\n", labelStyle.Render("cursor:"), r.Cursor.Line, r.Cursor.Col)
	if r.Range == nil {
		fmt.Fprintf(&b, "%s none\n", labelStyle.Render("range:"))
	} else {
		kind := "charwise"
		if r.Range.Linewise {
			kind = "linewise"
		}
		switch {
		case r.Range.Empty:
			kind += ", empty"
		case r.Range.Lines > 1:
			kind += fmt.Sprintf(", %d lines", r.Range.Lines)
		}
		fmt.Fprintf(&b, "%s [%d:%d, %d:%d) %s\n", labelStyle.Render("range:"),
			r.Range.Start.Line, r.Range.Start.Col, r.Range.End.Line, r.Range.End.Col, kind)
	}
	if r.Highlight != "" {
		b.WriteString(r.Highlight + "\n")
	}
	if r.Diff != "" {
		fmt.Fprintf(&b, "%s\n%s\n", labelStyle.Render("after delete:"), r.Diff)
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatMotions writes the motion list.
func (f *Formatter) FormatMotions(motions []MotionDTO) error {
	switch f.format {
	case FormatJSON:
		return f.encodeJSON(motions)
	case FormatYAML:
		return f.encodeYAML(motions)
	case FormatMarkdown:
		return f.renderMarkdown(motionsMarkdown(motions))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("KEYS", "MOTION").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, m := range motions {
		t.Row(m.Keys, m.ID)
	}
	_, err := fmt.Fprintln(f.writer, t.Render())
	return err
}

func (f *Formatter) encodeJSON(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func (f *Formatter) encodeYAML(v any) error {
	encoder := yaml.NewEncoder(f.writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
