package textscan

import "github.com/zjrosen/vimotion/internal/buffer"

// ParagraphForward returns the next paragraph boundary after line: blank
// lines directly at line are skipped, then the first blank line is returned.
// The last line is returned when no boundary follows.
func ParagraphForward(doc buffer.Document, line int) int {
	seenText := false
	for i := line; i < doc.LineCount(); i++ {
		blank := buffer.IsBlank(doc, i)
		if seenText && blank {
			return i
		}
		if !blank {
			seenText = true
		}
	}
	return buffer.LastLine(doc)
}

// ParagraphBackward is the mirror of ParagraphForward, returning line 0
// when no boundary precedes line.
func ParagraphBackward(doc buffer.Document, line int) int {
	seenText := false
	for i := min(line, doc.LineCount()-1); i >= 0; i-- {
		blank := buffer.IsBlank(doc, i)
		if seenText && blank {
			return i
		}
		if !blank {
			seenText = true
		}
	}
	return 0
}
