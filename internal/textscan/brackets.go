package textscan

import "github.com/zjrosen/vimotion/internal/buffer"

// SearchForwardBracket scans forward from `from` (inclusive) for the closing
// character that balances the scan start. Every opener seen on the way must
// be closed first. Scanning crosses line boundaries.
func SearchForwardBracket(doc buffer.Document, open, close string, from buffer.Position) (buffer.Position, bool) {
	depth := 0
	for line := from.Line; line < doc.LineCount(); line++ {
		graphemes := buffer.Graphemes(doc.Line(line))
		col := 0
		if line == from.Line {
			col = max(from.Col, 0)
		}
		for ; col < len(graphemes); col++ {
			switch graphemes[col] {
			case open:
				depth++
			case close:
				if depth == 0 {
					return buffer.Position{Line: line, Col: col}, true
				}
				depth--
			}
		}
	}
	return buffer.Position{}, false
}

// SearchBackwardBracket is the mirror of SearchForwardBracket: it scans
// backward from `from` (inclusive) for the unbalanced opening character.
func SearchBackwardBracket(doc buffer.Document, open, close string, from buffer.Position) (buffer.Position, bool) {
	depth := 0
	for line := min(from.Line, doc.LineCount()-1); line >= 0; line-- {
		graphemes := buffer.Graphemes(doc.Line(line))
		col := len(graphemes) - 1
		if line == from.Line {
			col = min(from.Col, len(graphemes)-1)
		}
		for ; col >= 0; col-- {
			switch graphemes[col] {
			case close:
				depth++
			case open:
				if depth == 0 {
					return buffer.Position{Line: line, Col: col}, true
				}
				depth--
			}
		}
	}
	return buffer.Position{}, false
}

// BracketRange finds the bracket pair enclosing pos. When pos sits on an
// opener or closer, that character is one end of the pair. Both returned
// positions are the bracket characters themselves.
func BracketRange(doc buffer.Document, pos buffer.Position, open, close string) (start, end buffer.Position, ok bool) {
	var okStart, okEnd bool
	switch graphemeAt(doc, pos) {
	case open:
		start, okStart = pos, true
		end, okEnd = SearchForwardBracket(doc, open, close, buffer.RightWrap(doc, pos))
	case close:
		start, okStart = SearchBackwardBracket(doc, open, close, buffer.LeftWrap(doc, pos))
		end, okEnd = pos, true
	default:
		start, okStart = SearchBackwardBracket(doc, open, close, pos)
		end, okEnd = SearchForwardBracket(doc, open, close, pos)
	}
	if !okStart || !okEnd {
		return buffer.Position{}, buffer.Position{}, false
	}
	return start, end, true
}

func graphemeAt(doc buffer.Document, pos buffer.Position) string {
	graphemes := buffer.Graphemes(doc.Line(pos.Line))
	if pos.Col < 0 || pos.Col >= len(graphemes) {
		return ""
	}
	return graphemes[pos.Col]
}
