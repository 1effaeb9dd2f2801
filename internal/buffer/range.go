package buffer

import "fmt"

// Range is the span an operator acts upon. Charwise ranges are half-open:
// End is the first column not included. Linewise ranges cover whole lines
// from Start.Line through End.Line.
type Range struct {
	Start    Position
	End      Position
	Linewise bool
}

// Charwise builds a charwise range from two positions in either order.
func Charwise(a, b Position) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

// Linewise builds a linewise range from two positions in either order,
// snapped to whole-line boundaries regardless of the columns supplied.
func Linewise(doc Document, a, b Position) Range {
	if b.Before(a) {
		a, b = b, a
	}
	return Range{
		Start:    Position{Line: a.Line, Col: 0},
		End:      Position{Line: b.Line, Col: LineLength(doc, b.Line)},
		Linewise: true,
	}
}

// Contains reports whether p lies within the range. Linewise ranges
// contain every column of their lines.
func (r Range) Contains(p Position) bool {
	if r.Linewise {
		return p.Line >= r.Start.Line && p.Line <= r.End.Line
	}
	return p.AfterOrEqual(r.Start) && p.Before(r.End)
}

// IsEmpty reports whether a charwise range selects nothing.
func (r Range) IsEmpty() bool {
	return !r.Linewise && r.Start == r.End
}

// Lines returns the number of lines the range touches.
func (r Range) Lines() int {
	return r.End.Line - r.Start.Line + 1
}

func (r Range) String() string {
	kind := "charwise"
	if r.Linewise {
		kind = "linewise"
	}
	return fmt.Sprintf("[%s, %s) %s", r.Start, r.End, kind)
}

// TextOf returns the text covered by r. Linewise ranges end without a
// trailing newline.
func TextOf(doc Document, r Range) string {
	if r.Start.Line == r.End.Line {
		line := doc.Line(r.Start.Line)
		if r.Linewise {
			return line
		}
		return SliceByGraphemes(line, r.Start.Col, r.End.Col)
	}
	first := doc.Line(r.Start.Line)
	out := SliceByGraphemes(first, r.Start.Col, GraphemeCount(first))
	for i := r.Start.Line + 1; i < r.End.Line; i++ {
		out += "\n" + doc.Line(i)
	}
	out += "\n" + SliceByGraphemes(doc.Line(r.End.Line), 0, r.End.Col)
	return out
}
