package textscan

import "github.com/zjrosen/vimotion/internal/buffer"

// QuoteSpan is a closed [Start, End] pair of columns: both are the columns
// of the quote characters themselves.
type QuoteSpan struct {
	Start int
	End   int
}

// QuoteRanges pairs the unescaped occurrences of quote on a line from left
// to right. Each two consecutive occurrences form one span; an odd trailing
// occurrence yields nothing. A quote is escaped when preceded by an odd
// number of backslashes. Pairing never crosses lines.
func QuoteRanges(quote string, line string) []QuoteSpan {
	graphemes := buffer.Graphemes(line)
	var spans []QuoteSpan
	open := -1
	for i, g := range graphemes {
		if g != quote || isEscaped(graphemes, i) {
			continue
		}
		if open < 0 {
			open = i
			continue
		}
		spans = append(spans, QuoteSpan{Start: open, End: i})
		open = -1
	}
	return spans
}

// FindQuoteRange returns the span whose quote columns bracket col.
func FindQuoteRange(spans []QuoteSpan, col int) (QuoteSpan, bool) {
	for _, s := range spans {
		if col >= s.Start && col <= s.End {
			return s, true
		}
	}
	return QuoteSpan{}, false
}

// isEscaped reports whether the grapheme at pos is preceded by an odd
// number of backslashes.
func isEscaped(graphemes []string, pos int) bool {
	n := 0
	for i := pos - 1; i >= 0 && graphemes[i] == `\`; i-- {
		n++
	}
	return n%2 == 1
}
