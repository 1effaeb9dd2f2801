package motion

import (
	"fmt"

	"github.com/zjrosen/vimotion/internal/buffer"
	"github.com/zjrosen/vimotion/internal/log"
	"github.com/zjrosen/vimotion/internal/textscan"
)

type bracketPair struct {
	name    string
	open    string
	close   string
	aliases []string
}

var bracketPairs = []bracketPair{
	{name: "paren", open: "(", close: ")", aliases: []string{")", "b"}},
	{name: "brace", open: "{", close: "}", aliases: []string{"}", "B"}},
	{name: "bracket", open: "[", close: "]", aliases: []string{"]"}},
	{name: "angle", open: "<", close: ">", aliases: []string{">"}},
}

var quoteChars = []struct {
	name  string
	quote string
}{
	{"single", "'"},
	{"double", `"`},
	{"backtick", "`"},
}

// textObjects returns the i/a text objects. Canonical keys come first and
// aliases after them.
func textObjects() []Definition {
	var defs []Definition
	for _, q := range quoteChars {
		defs = append(defs,
			Exact("quote.inner."+q.name, keys("i", q.quote), innerQuote(q.quote)),
			Exact("quote.outer."+q.name, keys("a", q.quote), outerQuote(q.quote)),
		)
	}
	for _, p := range bracketPairs {
		defs = append(defs,
			Exact("bracket.inner."+p.name, keys("i", p.open), innerBracket(p.open, p.close)),
			Exact("bracket.outer."+p.name, keys("a", p.open), outerBracket(p.open, p.close)),
		)
	}
	defs = append(defs,
		Exact("tag.inner", keys("i", "t"), innerTag),
		Exact("tag.outer", keys("a", "t"), outerTag),
		Exact("word.inner", keys("i", "w"), innerWord(textscan.WordRanges)),
		Exact("word.outer", keys("a", "w"), outerWord(textscan.WordRanges)),
		Exact("WORD.inner", keys("i", "W"), innerWord(textscan.BigWordRanges)),
		Exact("WORD.outer", keys("a", "W"), outerWord(textscan.BigWordRanges)),
		Exact("indent.inner", keys("i", "i"), indentBlock),
	)
	for _, p := range bracketPairs {
		for _, alias := range p.aliases {
			defs = append(defs,
				Exact("bracket.inner."+p.name+"."+alias, keys("i", alias), innerBracket(p.open, p.close)),
				Exact("bracket.outer."+p.name+"."+alias, keys("a", alias), outerBracket(p.open, p.close)),
			)
		}
	}
	return defs
}

// ============================================================================
// Quotes (line-local)
// ============================================================================

func innerQuote(quote string) ResolveFunc {
	return func(c Context) (buffer.Range, bool) {
		span, ok := textscan.FindQuoteRange(textscan.QuoteRanges(quote, c.Line()), c.Pos.Col)
		if !ok {
			return buffer.Range{}, false
		}
		return buffer.Charwise(c.Pos.WithCol(span.Start+1), c.Pos.WithCol(span.End)), true
	}
}

func outerQuote(quote string) ResolveFunc {
	return func(c Context) (buffer.Range, bool) {
		span, ok := textscan.FindQuoteRange(textscan.QuoteRanges(quote, c.Line()), c.Pos.Col)
		if !ok {
			return buffer.Range{}, false
		}
		return buffer.Charwise(c.Pos.WithCol(span.Start), c.Pos.WithCol(span.End+1)), true
	}
}

// ============================================================================
// Brackets (cross-line)
// ============================================================================

func innerBracket(open, close string) ResolveFunc {
	return func(c Context) (buffer.Range, bool) {
		start, end, ok := textscan.BracketRange(c.Doc, c.Pos, open, close)
		if !ok {
			return buffer.Range{}, false
		}
		return buffer.Charwise(start.WithCol(start.Col+1), end), true
	}
}

func outerBracket(open, close string) ResolveFunc {
	return func(c Context) (buffer.Range, bool) {
		start, end, ok := textscan.BracketRange(c.Doc, c.Pos, open, close)
		if !ok {
			return buffer.Range{}, false
		}
		return buffer.Charwise(start, end.WithCol(end.Col+1)), true
	}
}

// ============================================================================
// Tags
// ============================================================================

func innerTag(c Context) (buffer.Range, bool) {
	tag, ok := textscan.InnerTag(c.Tags(), c.Pos)
	if !ok {
		return buffer.Range{}, false
	}
	if tag.Closing == nil {
		// InnerTag only returns elements with an interior.
		panic(fmt.Sprintf("motion: inner tag <%s> at %s has no closing tag", tag.Name, tag.Opening.Start))
	}
	from := tag.Opening.End.WithCol(tag.Opening.End.Col + 1)
	return buffer.Charwise(from, tag.Closing.Start), true
}

func outerTag(c Context) (buffer.Range, bool) {
	tag, ok := textscan.OuterTag(c.Tags(), c.Pos)
	if !ok {
		return buffer.Range{}, false
	}
	if tag.Unclosed() {
		log.Debug(log.CatScan, "Unclosed tag treated as self-closing", "tag", tag.Name, "at", tag.Opening.Start)
	}
	outer := tag.Outer()
	return buffer.Charwise(outer.Start, outer.End.WithCol(outer.End.Col+1)), true
}

// ============================================================================
// Words
// ============================================================================

// innerWord selects the span under the cursor, or the whitespace run when
// the cursor is on whitespace.
func innerWord(classify textscan.Classifier) ResolveFunc {
	return func(c Context) (buffer.Range, bool) {
		span, _, ok := textscan.SpanAt(c.Line(), c.Pos.Col, classify)
		if !ok {
			return buffer.Range{}, false
		}
		return buffer.Charwise(c.Pos.WithCol(span.Start), c.Pos.WithCol(span.End)), true
	}
}

// outerWord adds trailing whitespace to the word, or leading whitespace
// when there is none. On whitespace it selects the run plus the next word.
func outerWord(classify textscan.Classifier) ResolveFunc {
	return func(c Context) (buffer.Range, bool) {
		line := c.Line()
		span, onWhitespace, ok := textscan.SpanAt(line, c.Pos.Col, classify)
		if !ok {
			return buffer.Range{}, false
		}
		n := buffer.GraphemeCount(line)

		if onWhitespace {
			end := span.End
			if next, _, ok := textscan.SpanAt(line, span.End, classify); ok {
				end = next.End
			}
			return buffer.Charwise(c.Pos.WithCol(span.Start), c.Pos.WithCol(end)), true
		}

		if span.End < n {
			if ws, isWs, _ := textscan.SpanAt(line, span.End, classify); isWs {
				return buffer.Charwise(c.Pos.WithCol(span.Start), c.Pos.WithCol(ws.End)), true
			}
		}
		start := span.Start
		if span.Start > 0 {
			if ws, isWs, _ := textscan.SpanAt(line, span.Start-1, classify); isWs {
				start = ws.Start
			}
		}
		return buffer.Charwise(c.Pos.WithCol(start), c.Pos.WithCol(span.End)), true
	}
}

// ============================================================================
// Indentation
// ============================================================================

func indentBlock(c Context) (buffer.Range, bool) {
	start, end := textscan.IndentBlock(c.Doc, c.Pos.Line, c.Options.indent())
	return buffer.Linewise(c.Doc, buffer.Position{Line: start}, buffer.Position{Line: end}), true
}
