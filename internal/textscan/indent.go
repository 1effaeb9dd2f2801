package textscan

import (
	"unicode"

	"github.com/mattn/go-runewidth"

	"github.com/zjrosen/vimotion/internal/buffer"
)

// IndentMode selects how lines are compared against a block's level.
type IndentMode int

const (
	// IndentSame groups lines whose indent equals the level.
	IndentSame IndentMode = iota
	// IndentNested also groups lines indented deeper than the level.
	IndentNested
)

func (m IndentMode) String() string {
	switch m {
	case IndentSame:
		return "same"
	case IndentNested:
		return "nested"
	default:
		return "unknown"
	}
}

// ParseIndentMode converts a config value to an IndentMode.
func ParseIndentMode(s string) (IndentMode, bool) {
	switch s {
	case "same", "":
		return IndentSame, true
	case "nested":
		return IndentNested, true
	default:
		return IndentSame, false
	}
}

// IndentOptions configures IndentBlock.
type IndentOptions struct {
	TabWidth int
	Mode     IndentMode
}

// IndentWidth returns the display width of the leading whitespace of line.
// Tabs advance to the next multiple of tabWidth.
func IndentWidth(line string, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	width := 0
	for _, r := range line {
		switch {
		case r == '\t':
			width += tabWidth - width%tabWidth
		case r == ' ':
			width++
		case unicode.IsSpace(r):
			width += max(runewidth.RuneWidth(r), 1)
		default:
			return width
		}
	}
	return width
}

// IndentBlock returns the inclusive [start, end] run of lines sharing the
// indent level of line. Blank lines inside a block do not break it, but a
// block always starts and ends on a non-blank line. A blank starting line
// takes the deeper of the nearest non-blank levels above and below.
func IndentBlock(doc buffer.Document, line int, opts IndentOptions) (start, end int) {
	line = min(max(line, 0), buffer.LastLine(doc))
	level := indentLevel(doc, line, opts.TabWidth)
	matches := func(i int) bool {
		w := IndentWidth(doc.Line(i), opts.TabWidth)
		if opts.Mode == IndentNested {
			return w >= level
		}
		return w == level
	}

	nearUp, farUp := -1, -1
	for i := line; i >= 0; i-- {
		if buffer.IsBlank(doc, i) {
			continue
		}
		if !matches(i) {
			break
		}
		if nearUp < 0 {
			nearUp = i
		}
		farUp = i
	}
	nearDown, farDown := -1, -1
	for i := line; i < doc.LineCount(); i++ {
		if buffer.IsBlank(doc, i) {
			continue
		}
		if !matches(i) {
			break
		}
		if nearDown < 0 {
			nearDown = i
		}
		farDown = i
	}

	switch {
	case farUp >= 0 && farDown >= 0:
		return farUp, farDown
	case farUp >= 0:
		return farUp, nearUp
	case farDown >= 0:
		return nearDown, farDown
	default:
		return line, line
	}
}

func indentLevel(doc buffer.Document, line, tabWidth int) int {
	if !buffer.IsBlank(doc, line) {
		return IndentWidth(doc.Line(line), tabWidth)
	}
	above, below := 0, 0
	for i := line - 1; i >= 0; i-- {
		if !buffer.IsBlank(doc, i) {
			above = IndentWidth(doc.Line(i), tabWidth)
			break
		}
	}
	for i := line + 1; i < doc.LineCount(); i++ {
		if !buffer.IsBlank(doc, i) {
			below = IndentWidth(doc.Line(i), tabWidth)
			break
		}
	}
	return max(above, below)
}
