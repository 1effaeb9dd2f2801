package textscan

import (
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/zjrosen/vimotion/internal/buffer"
)

// TagSpan covers one markup tag from its '<' (Start) through its '>' (End).
// Both ends are inclusive.
type TagSpan struct {
	Start buffer.Position
	End   buffer.Position
}

// TagRecord is one element in the document: its opening tag and, unless it
// has no interior, its closing tag.
type TagRecord struct {
	Name        string
	Opening     TagSpan
	Closing     *TagSpan
	SelfClosing bool // written as <name/>
}

// HasInterior reports whether the element has a closing tag and therefore
// content between its tags.
func (t TagRecord) HasInterior() bool {
	return t.Closing != nil
}

// Unclosed reports whether the element was opened but never closed in
// well-formed fashion, as opposed to written self-closing.
func (t TagRecord) Unclosed() bool {
	return t.Closing == nil && !t.SelfClosing
}

// Outer returns the span from the opening '<' to the final '>' of the
// element, the opening tag alone when there is no closing tag.
func (t TagRecord) Outer() TagSpan {
	if t.Closing == nil {
		return t.Opening
	}
	return TagSpan{Start: t.Opening.Start, End: t.Closing.End}
}

// Tags parses the whole document for markup elements. Records are ordered
// by the position of their opening tag, so for any position the last
// record containing it is the innermost.
//
// Malformed markup: an opening tag that is never closed, or that is still
// open when an ancestor's closing tag arrives, keeps Closing == nil and is
// treated like a self-closing tag. A closing tag with no matching open is
// ignored.
func Tags(doc buffer.Document) []TagRecord {
	idx := newOffsetIndex(doc)
	z := html.NewTokenizer(strings.NewReader(idx.text))

	var records []TagRecord
	var open []int
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		start := offset
		offset += len(z.Raw())

		switch tt {
		case html.StartTagToken:
			name, _ := z.TagName()
			records = append(records, TagRecord{
				Name:    string(name),
				Opening: idx.span(start, offset),
			})
			open = append(open, len(records)-1)
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			records = append(records, TagRecord{
				Name:        string(name),
				Opening:     idx.span(start, offset),
				SelfClosing: true,
			})
		case html.EndTagToken:
			name, _ := z.TagName()
			for i := len(open) - 1; i >= 0; i-- {
				if records[open[i]].Name != string(name) {
					continue
				}
				closing := idx.span(start, offset)
				records[open[i]].Closing = &closing
				open = open[:i]
				break
			}
		}
	}
	return records
}

// InnerTag returns the innermost element with an interior whose tags
// enclose pos.
func InnerTag(tags []TagRecord, pos buffer.Position) (TagRecord, bool) {
	for i := len(tags) - 1; i >= 0; i-- {
		t := tags[i]
		if !t.HasInterior() {
			continue
		}
		if pos.AfterOrEqual(t.Opening.Start) && pos.BeforeOrEqual(t.Closing.End) {
			return t, true
		}
	}
	return TagRecord{}, false
}

// OuterTag returns the innermost element whose outer span encloses pos,
// self-closing elements included.
func OuterTag(tags []TagRecord, pos buffer.Position) (TagRecord, bool) {
	for i := len(tags) - 1; i >= 0; i-- {
		outer := tags[i].Outer()
		if pos.AfterOrEqual(outer.Start) && pos.BeforeOrEqual(outer.End) {
			return tags[i], true
		}
	}
	return TagRecord{}, false
}

// offsetIndex maps byte offsets in the joined document text back to
// (line, grapheme column) positions.
type offsetIndex struct {
	doc        buffer.Document
	text       string
	lineStarts []int
}

func newOffsetIndex(doc buffer.Document) offsetIndex {
	n := doc.LineCount()
	starts := make([]int, n)
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		starts[i] = b.Len()
		b.WriteString(doc.Line(i))
	}
	return offsetIndex{doc: doc, text: b.String(), lineStarts: starts}
}

func (x offsetIndex) position(offset int) buffer.Position {
	line := sort.SearchInts(x.lineStarts, offset+1) - 1
	line = max(line, 0)
	col := buffer.ByteToGraphemeOffset(x.doc.Line(line), offset-x.lineStarts[line])
	return buffer.Position{Line: line, Col: col}
}

// span converts the byte range [start, end) of a raw tag token into a
// TagSpan whose End is the column of the final '>'.
func (x offsetIndex) span(start, end int) TagSpan {
	return TagSpan{Start: x.position(start), End: x.position(end - 1)}
}
