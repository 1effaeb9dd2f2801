package buffer

import "strings"

// Document is the read-only view of a text buffer the engine needs.
// Implementations must return "" for out-of-range lines.
type Document interface {
	LineCount() int
	Line(i int) string
}

// Lines is a Document backed by a slice of lines.
type Lines []string

// NewDocument splits text on newlines. A trailing carriage return on each
// line is dropped. Empty text is a single empty line.
func NewDocument(text string) Lines {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return Lines(lines)
}

func (l Lines) LineCount() int { return len(l) }

func (l Lines) Line(i int) string {
	if i < 0 || i >= len(l) {
		return ""
	}
	return l[i]
}

// Text returns the whole document joined with newlines.
func Text(doc Document) string {
	n := doc.LineCount()
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(doc.Line(i))
	}
	return b.String()
}

// LineLength returns the grapheme count of line i.
func LineLength(doc Document, i int) int {
	return GraphemeCount(doc.Line(i))
}

// IsBlank reports whether line i is empty or whitespace only.
func IsBlank(doc Document, i int) bool {
	return strings.TrimSpace(doc.Line(i)) == ""
}

// LastLine returns the index of the last line, 0 for an empty document.
func LastLine(doc Document) int {
	return max(doc.LineCount()-1, 0)
}
