package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Position
// ============================================================================

func TestPosition_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b Position
		want int
	}{
		{"equal", Position{1, 2}, Position{1, 2}, 0},
		{"earlier line", Position{0, 9}, Position{1, 0}, -1},
		{"later line", Position{2, 0}, Position{1, 9}, 1},
		{"earlier col", Position{1, 1}, Position{1, 2}, -1},
		{"later col", Position{1, 3}, Position{1, 2}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Compare(tt.b))
			require.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestPosition_OrderHelpers(t *testing.T) {
	a := Position{Line: 0, Col: 3}
	b := Position{Line: 1, Col: 0}

	assert.True(t, a.Before(b))
	assert.True(t, a.BeforeOrEqual(b))
	assert.True(t, a.BeforeOrEqual(a))
	assert.True(t, b.After(a))
	assert.True(t, b.AfterOrEqual(b))
	assert.False(t, a.After(b))
	assert.Equal(t, Position{Line: 0, Col: 7}, a.WithCol(7))
	assert.Equal(t, Position{Line: 4, Col: 3}, a.WithLine(4))
	assert.Equal(t, "0:3", a.String())
}

// ============================================================================
// Document
// ============================================================================

func TestNewDocument(t *testing.T) {
	doc := NewDocument("one\r\ntwo\n\nfour")

	require.Equal(t, 4, doc.LineCount())
	require.Equal(t, "one", doc.Line(0))
	require.Equal(t, "two", doc.Line(1))
	require.Equal(t, "", doc.Line(2))
	require.Equal(t, "four", doc.Line(3))
	require.Equal(t, "", doc.Line(10), "out of range lines read as empty")
	require.Equal(t, "", doc.Line(-1))
}

func TestNewDocument_EmptyTextIsOneLine(t *testing.T) {
	doc := NewDocument("")
	require.Equal(t, 1, doc.LineCount())
	require.Equal(t, 0, LastLine(doc))
}

func TestText_JoinsLines(t *testing.T) {
	doc := NewDocument("a\nb\nc")
	require.Equal(t, "a\nb\nc", Text(doc))
}

func TestIsBlank(t *testing.T) {
	doc := NewDocument("x\n   \n\t\n")
	assert.False(t, IsBlank(doc, 0))
	assert.True(t, IsBlank(doc, 1))
	assert.True(t, IsBlank(doc, 2))
	assert.True(t, IsBlank(doc, 3))
}

// ============================================================================
// Stepping
// ============================================================================

func TestRight_StopsPastLastGrapheme(t *testing.T) {
	doc := NewDocument("abc")
	require.Equal(t, Position{0, 1}, Right(doc, Position{0, 0}))
	require.Equal(t, Position{0, 3}, Right(doc, Position{0, 2}))
	require.Equal(t, Position{0, 3}, Right(doc, Position{0, 3}))
}

func TestLeft_StopsAtZero(t *testing.T) {
	require.Equal(t, Position{2, 0}, Left(Position{2, 1}))
	require.Equal(t, Position{2, 0}, Left(Position{2, 0}))
}

func TestRightWrap(t *testing.T) {
	doc := NewDocument("ab\ncd")
	require.Equal(t, Position{0, 2}, RightWrap(doc, Position{0, 1}))
	require.Equal(t, Position{1, 0}, RightWrap(doc, Position{0, 2}))
	require.Equal(t, Position{1, 2}, RightWrap(doc, Position{1, 2}), "end of document stays put")
}

func TestLeftWrap(t *testing.T) {
	doc := NewDocument("ab\ncd\n\nx")
	require.Equal(t, Position{1, 0}, LeftWrap(doc, Position{1, 1}))
	require.Equal(t, Position{0, 1}, LeftWrap(doc, Position{1, 0}))
	require.Equal(t, Position{2, 0}, LeftWrap(doc, Position{3, 0}), "empty previous line lands on column 0")
	require.Equal(t, Position{0, 0}, LeftWrap(doc, Position{0, 0}), "document start stays put")
}

func TestLineEnd_CountsGraphemes(t *testing.T) {
	doc := NewDocument("h😀llo")
	require.Equal(t, Position{0, 5}, LineEnd(doc, Position{0, 1}))
}

func TestClamp(t *testing.T) {
	doc := NewDocument("abc\nde")
	require.Equal(t, Position{1, 2}, Clamp(doc, Position{9, 9}))
	require.Equal(t, Position{0, 0}, Clamp(doc, Position{-1, -4}))
	require.Equal(t, Position{0, 3}, Clamp(doc, Position{0, 3}))
}

// ============================================================================
// Range
// ============================================================================

func TestCharwise_OrdersEndpoints(t *testing.T) {
	r := Charwise(Position{2, 5}, Position{1, 3})
	require.Equal(t, Position{1, 3}, r.Start)
	require.Equal(t, Position{2, 5}, r.End)
	require.False(t, r.Linewise)
}

func TestLinewise_SnapsToWholeLines(t *testing.T) {
	doc := NewDocument("first\nsecond\nthird")
	r := Linewise(doc, Position{2, 1}, Position{0, 3})

	require.True(t, r.Linewise)
	require.Equal(t, Position{0, 0}, r.Start)
	require.Equal(t, Position{2, 5}, r.End)
	require.Equal(t, 3, r.Lines())
}

func TestRange_Contains(t *testing.T) {
	doc := NewDocument("abcdef\nghi")
	cw := Charwise(Position{0, 1}, Position{0, 4})
	assert.True(t, cw.Contains(Position{0, 1}))
	assert.True(t, cw.Contains(Position{0, 3}))
	assert.False(t, cw.Contains(Position{0, 4}), "charwise end is exclusive")

	lw := Linewise(doc, Position{1, 2}, Position{1, 2})
	assert.True(t, lw.Contains(Position{1, 0}))
	assert.False(t, lw.Contains(Position{0, 0}))
}

func TestRange_IsEmpty(t *testing.T) {
	doc := NewDocument("")
	assert.True(t, Charwise(Position{0, 0}, Position{0, 0}).IsEmpty())
	assert.False(t, Linewise(doc, Position{0, 0}, Position{0, 0}).IsEmpty())
}

func TestTextOf(t *testing.T) {
	doc := NewDocument("foo(bar\nbaz)qux\nend")

	require.Equal(t, "bar", TextOf(doc, Charwise(Position{0, 4}, Position{0, 7})))
	require.Equal(t, "bar\nbaz", TextOf(doc, Charwise(Position{0, 4}, Position{1, 3})))
	require.Equal(t, "foo(bar\nbaz)qux", TextOf(doc, Linewise(doc, Position{0, 2}, Position{1, 0})))
}

// ============================================================================
// Graphemes
// ============================================================================

func TestGraphemes_SplitsClusters(t *testing.T) {
	require.Nil(t, Graphemes(""))
	require.Equal(t, []string{"h", "😀", "i"}, Graphemes("h😀i"))
	require.Len(t, Graphemes("👨‍👩‍👧‍👦x"), 2, "family emoji is one cluster")
}

func TestGraphemeOffsets_RoundTrip(t *testing.T) {
	s := "aé😀b"
	for i := 0; i <= GraphemeCount(s); i++ {
		require.Equal(t, i, ByteToGraphemeOffset(s, GraphemeToByteOffset(s, i)))
	}
	require.Equal(t, 0, GraphemeToByteOffset(s, -1))
	require.Equal(t, len(s), GraphemeToByteOffset(s, 99))
}

func TestSliceByGraphemes(t *testing.T) {
	require.Equal(t, "😀b", SliceByGraphemes("a😀bc", 1, 3))
	require.Equal(t, "", SliceByGraphemes("abc", 2, 1))
	require.Equal(t, "", SliceByGraphemes("abc", 5, 7))
}

func TestClassOf(t *testing.T) {
	tests := []struct {
		cluster string
		want    Class
	}{
		{"a", ClassWord},
		{"Z", ClassWord},
		{"7", ClassWord},
		{"_", ClassWord},
		{"é", ClassWord},
		{" ", ClassWhitespace},
		{"\t", ClassWhitespace},
		{".", ClassPunctuation},
		{"(", ClassPunctuation},
		{"😀", ClassPunctuation},
	}
	for _, tt := range tests {
		t.Run(tt.cluster, func(t *testing.T) {
			require.Equal(t, tt.want, ClassOf(tt.cluster))
		})
	}
}

func TestDisplayWidth(t *testing.T) {
	require.Equal(t, 5, DisplayWidth("hello"))
	require.Equal(t, 2, DisplayWidth("中"))
}
