package buffer

import "fmt"

// Position is a (line, column) location. Col is a grapheme index.
// Positions never own text; they are always resolved against a Document.
type Position struct {
	Line int
	Col  int
}

// Compare returns -1, 0 or 1 ordering by line, then column.
func (p Position) Compare(o Position) int {
	switch {
	case p.Line < o.Line:
		return -1
	case p.Line > o.Line:
		return 1
	case p.Col < o.Col:
		return -1
	case p.Col > o.Col:
		return 1
	default:
		return 0
	}
}

func (p Position) Equal(o Position) bool         { return p == o }
func (p Position) Before(o Position) bool        { return p.Compare(o) < 0 }
func (p Position) After(o Position) bool         { return p.Compare(o) > 0 }
func (p Position) BeforeOrEqual(o Position) bool { return p.Compare(o) <= 0 }
func (p Position) AfterOrEqual(o Position) bool  { return p.Compare(o) >= 0 }

// WithCol returns p moved to column col on the same line.
func (p Position) WithCol(col int) Position {
	return Position{Line: p.Line, Col: col}
}

// WithLine returns p moved to line on the same column.
func (p Position) WithLine(line int) Position {
	return Position{Line: line, Col: p.Col}
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}
