package motion

import (
	"github.com/zjrosen/vimotion/internal/buffer"
	"github.com/zjrosen/vimotion/internal/textscan"
)

// Defaults returns the built-in motions and text objects in registration
// order.
func Defaults() []Definition {
	defs := []Definition{
		Exact("char.right", keys("l"), charRight),
		Exact("char.left", keys("h"), charLeft),
		Exact("line.up", keys("k"), lineUp),
		Exact("line.down", keys("j"), lineDown),

		Exact("word.forward", keys("w"), wordForward(textscan.WordRanges)),
		Exact("WORD.forward", keys("W"), wordForward(textscan.BigWordRanges)),
		Exact("word.backward", keys("b"), wordBackward(textscan.WordRanges)),
		Exact("WORD.backward", keys("B"), wordBackward(textscan.BigWordRanges)),
		Exact("word.end", keys("e"), wordEnd(textscan.WordRanges)),
		Exact("WORD.end", keys("E"), wordEnd(textscan.BigWordRanges)),

		Exact("line.start", keys("0"), lineStart),
		Exact("line.end", keys("$"), lineEnd),

		MustPattern("find.forward", "f<char>", `^f(.)$`, `^f$`, findForward),
		MustPattern("find.backward", "F<char>", `^F(.)$`, `^F$`, findBackward),
		MustPattern("till.forward", "t<char>", `^t(.)$`, `^t$`, tillForward),
		MustPattern("till.backward", "T<char>", `^T(.)$`, `^T$`, tillBackward),

		Exact("document.start", keys("g", "g"), documentStart),
		Exact("document.end", keys("G"), documentEnd),

		Exact("paragraph.forward", keys("}"), paragraphForward),
		Exact("paragraph.backward", keys("{"), paragraphBackward),
	}
	return append(defs, textObjects()...)
}

func keys(k ...string) []string { return k }

// ============================================================================
// Character and line steps
// ============================================================================

func charRight(c Context) (buffer.Range, bool) {
	right := buffer.Right(c.Doc, c.Pos)
	if right == c.Pos {
		return buffer.Range{}, false
	}
	return buffer.Charwise(c.Pos, right), true
}

func charLeft(c Context) (buffer.Range, bool) {
	left := buffer.Left(c.Pos)
	if left == c.Pos {
		return buffer.Range{}, false
	}
	return buffer.Charwise(left, c.Pos), true
}

// lineUp and lineDown clamp at the document edges instead of failing.
func lineUp(c Context) (buffer.Range, bool) {
	from := buffer.Position{Line: max(c.Pos.Line-1, 0)}
	return buffer.Linewise(c.Doc, from, c.Pos), true
}

func lineDown(c Context) (buffer.Range, bool) {
	to := buffer.Position{Line: min(c.Pos.Line+1, buffer.LastLine(c.Doc))}
	return buffer.Linewise(c.Doc, c.Pos, to), true
}

func lineStart(c Context) (buffer.Range, bool) {
	if c.Pos.Col == 0 {
		return buffer.Range{}, false
	}
	return buffer.Charwise(c.Pos.WithCol(0), c.Pos), true
}

func lineEnd(c Context) (buffer.Range, bool) {
	end := buffer.LineEnd(c.Doc, c.Pos)
	if end == c.Pos {
		return buffer.Range{}, false
	}
	return buffer.Charwise(c.Pos, end), true
}

// ============================================================================
// Word motions
// ============================================================================

// wordForward runs to the start of the next span on the line, or to the end
// of the line when there is none.
func wordForward(classify textscan.Classifier) ResolveFunc {
	return func(c Context) (buffer.Range, bool) {
		for _, s := range classify(c.Line()) {
			if s.Start > c.Pos.Col {
				return buffer.Charwise(c.Pos, c.Pos.WithCol(s.Start)), true
			}
		}
		return buffer.Charwise(c.Pos, buffer.LineEnd(c.Doc, c.Pos)), true
	}
}

func wordBackward(classify textscan.Classifier) ResolveFunc {
	return func(c Context) (buffer.Range, bool) {
		spans := classify(c.Line())
		for i := len(spans) - 1; i >= 0; i-- {
			if spans[i].Start < c.Pos.Col {
				return buffer.Charwise(c.Pos.WithCol(spans[i].Start), c.Pos), true
			}
		}
		return buffer.Range{}, false
	}
}

// wordEnd includes the last character of the first span ending after the
// cursor.
func wordEnd(classify textscan.Classifier) ResolveFunc {
	return func(c Context) (buffer.Range, bool) {
		for _, s := range classify(c.Line()) {
			if s.End-1 > c.Pos.Col {
				return buffer.Charwise(c.Pos, c.Pos.WithCol(s.End)), true
			}
		}
		return buffer.Range{}, false
	}
}

// ============================================================================
// Find and till
// ============================================================================

// findForward includes the found character.
func findForward(c Context) (buffer.Range, bool) {
	col, ok := textscan.FindForward(c.Line(), c.Group(0), c.Pos.Col+1)
	if !ok {
		return buffer.Range{}, false
	}
	return buffer.Charwise(c.Pos, c.Pos.WithCol(col+1)), true
}

func findBackward(c Context) (buffer.Range, bool) {
	col, ok := textscan.FindBackward(c.Line(), c.Group(0), c.Pos.Col-1)
	if !ok {
		return buffer.Range{}, false
	}
	return buffer.Charwise(c.Pos.WithCol(col), c.Pos), true
}

func tillForward(c Context) (buffer.Range, bool) {
	col, ok := textscan.FindForward(c.Line(), c.Group(0), c.Pos.Col+1)
	if !ok {
		return buffer.Range{}, false
	}
	return buffer.Charwise(c.Pos, c.Pos.WithCol(col)), true
}

func tillBackward(c Context) (buffer.Range, bool) {
	col, ok := textscan.FindBackward(c.Line(), c.Group(0), c.Pos.Col-1)
	if !ok {
		return buffer.Range{}, false
	}
	return buffer.Charwise(c.Pos.WithCol(col+1), c.Pos), true
}

// ============================================================================
// Document and paragraph
// ============================================================================

func documentStart(c Context) (buffer.Range, bool) {
	return buffer.Linewise(c.Doc, buffer.Position{}, c.Pos), true
}

func documentEnd(c Context) (buffer.Range, bool) {
	return buffer.Linewise(c.Doc, c.Pos, buffer.Position{Line: buffer.LastLine(c.Doc)}), true
}

func paragraphForward(c Context) (buffer.Range, bool) {
	to := textscan.ParagraphForward(c.Doc, c.Pos.Line)
	return buffer.Linewise(c.Doc, c.Pos, buffer.Position{Line: to}), true
}

func paragraphBackward(c Context) (buffer.Range, bool) {
	from := textscan.ParagraphBackward(c.Doc, c.Pos.Line)
	return buffer.Linewise(c.Doc, buffer.Position{Line: from}, c.Pos), true
}
