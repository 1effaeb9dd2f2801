package buffer

// Right moves one column right, stopping one past the last grapheme.
func Right(doc Document, p Position) Position {
	return p.WithCol(min(p.Col+1, LineLength(doc, p.Line)))
}

// Left moves one column left, stopping at column 0.
func Left(p Position) Position {
	return p.WithCol(max(p.Col-1, 0))
}

// RightWrap moves one column right, continuing at the start of the next
// line once the end of the current line is reached. It stays put at the
// end of the last line.
func RightWrap(doc Document, p Position) Position {
	if p.Col >= LineLength(doc, p.Line) {
		if p.Line < doc.LineCount()-1 {
			return Position{Line: p.Line + 1, Col: 0}
		}
		return p
	}
	return p.WithCol(p.Col + 1)
}

// LeftWrap moves one column left, continuing at the last grapheme of the
// previous line from column 0. It stays put at the document start.
func LeftWrap(doc Document, p Position) Position {
	if p.Col <= 0 {
		if p.Line > 0 {
			prev := p.Line - 1
			return Position{Line: prev, Col: max(LineLength(doc, prev)-1, 0)}
		}
		return p
	}
	return p.WithCol(p.Col - 1)
}

// LineEnd returns the position one past the last grapheme of p's line.
func LineEnd(doc Document, p Position) Position {
	return p.WithCol(LineLength(doc, p.Line))
}

// Clamp constrains p to a valid position in doc. The column may sit one
// past the last grapheme.
func Clamp(doc Document, p Position) Position {
	line := min(max(p.Line, 0), LastLine(doc))
	col := min(max(p.Col, 0), LineLength(doc, line))
	return Position{Line: line, Col: col}
}
