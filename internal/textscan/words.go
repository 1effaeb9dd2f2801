package textscan

import "github.com/zjrosen/vimotion/internal/buffer"

// Span is a half-open [Start, End) range of grapheme columns on one line.
type Span struct {
	Start int
	End   int
}

// Len returns the number of columns in the span.
func (s Span) Len() int { return s.End - s.Start }

// Classifier segments a line into spans. WordRanges and BigWordRanges are
// the two classifiers; motion resolvers are written once and parameterized
// by either.
type Classifier func(line string) []Span

// WordRanges splits a line into maximal runs of word characters (letters,
// digits, underscore) and maximal runs of other non-whitespace characters.
// Whitespace runs are not emitted.
func WordRanges(line string) []Span {
	return segment(buffer.Graphemes(line), buffer.ClassOf)
}

// BigWordRanges splits a line into maximal non-whitespace runs.
func BigWordRanges(line string) []Span {
	return segment(buffer.Graphemes(line), func(cluster string) buffer.Class {
		if buffer.ClassOf(cluster) == buffer.ClassWhitespace {
			return buffer.ClassWhitespace
		}
		return buffer.ClassWord
	})
}

func segment(graphemes []string, classify func(string) buffer.Class) []Span {
	var spans []Span
	start := -1
	prev := buffer.ClassWhitespace
	for i, g := range graphemes {
		c := classify(g)
		if c != prev {
			if start >= 0 {
				spans = append(spans, Span{Start: start, End: i})
				start = -1
			}
			if c != buffer.ClassWhitespace {
				start = i
			}
			prev = c
		}
	}
	if start >= 0 {
		spans = append(spans, Span{Start: start, End: len(graphemes)})
	}
	return spans
}

// SpanAt returns the span under col, including the whitespace run between
// emitted spans when col sits on whitespace. ok is false past the line end.
func SpanAt(line string, col int, classify Classifier) (span Span, onWhitespace bool, ok bool) {
	n := buffer.GraphemeCount(line)
	if col < 0 || col >= n {
		return Span{}, false, false
	}
	prevEnd := 0
	for _, s := range classify(line) {
		if col < s.Start {
			return Span{Start: prevEnd, End: s.Start}, true, true
		}
		if col < s.End {
			return s, false, true
		}
		prevEnd = s.End
	}
	return Span{Start: prevEnd, End: n}, true, true
}
