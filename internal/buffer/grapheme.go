// Package buffer provides the read-only document view the motion engine
// resolves against: positions, ranges, boundary-safe stepping and the
// grapheme helpers that define what a column is.
//
// Columns are grapheme cluster indices, not byte offsets. A grapheme may be
// several code points ("e" + combining accent) and several bytes. Use the
// conversion functions in this file to translate between units.
package buffer

import (
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Class is the character class of a grapheme for word boundary detection.
type Class int

const (
	ClassWhitespace Class = iota
	ClassWord
	ClassPunctuation
)

func (c Class) String() string {
	switch c {
	case ClassWhitespace:
		return "whitespace"
	case ClassWord:
		return "word"
	case ClassPunctuation:
		return "punctuation"
	default:
		return "unknown"
	}
}

// GraphemeCount returns the number of grapheme clusters in s.
func GraphemeCount(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Graphemes splits s into its grapheme clusters.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.StepString(s, state)
		out = append(out, cluster)
	}
	return out
}

// GraphemeToByteOffset converts a grapheme index to a byte offset.
// Returns 0 for indices <= 0 and len(s) for indices past the end.
func GraphemeToByteOffset(s string, graphemeIdx int) int {
	if graphemeIdx <= 0 {
		return 0
	}

	idx := 0
	state := -1
	original := s
	for len(s) > 0 {
		_, rest, _, newState := uniseg.StepString(s, state)
		idx++
		if idx == graphemeIdx {
			return len(original) - len(rest)
		}
		s = rest
		state = newState
	}
	return len(original)
}

// ByteToGraphemeOffset converts a byte offset to a grapheme index.
// An offset inside a cluster maps to that cluster's index.
func ByteToGraphemeOffset(s string, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(s) {
		return GraphemeCount(s)
	}

	idx := 0
	pos := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, _, newState := uniseg.StepString(s, state)
		next := pos + len(cluster)
		if byteOffset < next {
			return idx
		}
		idx++
		pos = next
		s = rest
		state = newState
	}
	return idx
}

// SliceByGraphemes returns s[start:end] with start and end as grapheme indices.
func SliceByGraphemes(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	startByte := GraphemeToByteOffset(s, start)
	endByte := GraphemeToByteOffset(s, end)
	if startByte >= len(s) {
		return ""
	}
	return s[startByte:endByte]
}

// DisplayWidth returns the width of s in terminal cells.
func DisplayWidth(s string) int {
	return runewidth.StringWidth(s)
}

// ClassOf classifies a grapheme cluster by its base rune.
//
//   - Whitespace: any unicode space
//   - Word: letters, digits, underscore (including non-ASCII letters/numbers)
//   - Punctuation: everything else, emoji included
func ClassOf(cluster string) Class {
	for _, r := range cluster {
		switch {
		case unicode.IsSpace(r):
			return ClassWhitespace
		case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
			return ClassWord
		default:
			return ClassPunctuation
		}
	}
	return ClassWhitespace
}
