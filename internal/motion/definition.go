package motion

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/zjrosen/vimotion/internal/buffer"
	"github.com/zjrosen/vimotion/internal/textscan"
)

// Status is the outcome of matching a key buffer against the registry.
type Status int

const (
	// StatusPending means the keys are a valid, incomplete prefix.
	StatusPending Status = iota
	// StatusNoMatch means no motion can ever match these keys.
	StatusNoMatch
	// StatusMatched means a motion matched; see MatchResult.Motion.
	StatusMatched
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusNoMatch:
		return "no-match"
	case StatusMatched:
		return "matched"
	default:
		return "unknown"
	}
}

// MatchResult is the outcome of Registry.Match. Motion and Groups are set
// only when Status is StatusMatched.
type MatchResult struct {
	Status Status
	Motion Definition
	Groups []string
}

// Context is everything a resolver reads.
type Context struct {
	Doc     buffer.Document
	Pos     buffer.Position
	Groups  []string
	Options Options

	tags func() []textscan.TagRecord
}

// Line returns the text of the cursor line.
func (c Context) Line() string {
	return c.Doc.Line(c.Pos.Line)
}

// Group returns capture group i, "" if absent.
func (c Context) Group(i int) string {
	if i < 0 || i >= len(c.Groups) {
		return ""
	}
	return c.Groups[i]
}

// Tags returns the markup elements of Doc.
func (c Context) Tags() []textscan.TagRecord {
	if c.tags != nil {
		return c.tags()
	}
	return textscan.Tags(c.Doc)
}

// ResolveFunc computes the range for a matched motion. ok is false when the
// motion does not apply at the cursor.
type ResolveFunc func(c Context) (r buffer.Range, ok bool)

// Definition is one entry of the registry.
type Definition interface {
	// ID returns a hierarchical identifier, e.g. "word.forward".
	ID() string

	// Keys returns a display form of the trigger, e.g. "gg" or "f<char>".
	Keys() string

	// Partial reports whether keys could still become a match.
	Partial(keys []string) bool

	// Complete reports whether keys match, returning any capture groups.
	Complete(keys []string) (groups []string, ok bool)

	// Resolve computes the motion's range.
	Resolve(c Context) (buffer.Range, bool)
}

// ============================================================================
// Exact key sequences
// ============================================================================

type exactMotion struct {
	id   string
	keys []string
	fn   ResolveFunc
}

// Exact defines a motion triggered by a fixed key sequence.
func Exact(id string, keys []string, fn ResolveFunc) Definition {
	return &exactMotion{id: id, keys: keys, fn: fn}
}

func (m *exactMotion) ID() string   { return m.id }
func (m *exactMotion) Keys() string { return strings.Join(m.keys, "") }

func (m *exactMotion) Partial(keys []string) bool {
	if len(keys) > len(m.keys) {
		return false
	}
	for i, k := range keys {
		if m.keys[i] != k {
			return false
		}
	}
	return true
}

func (m *exactMotion) Complete(keys []string) ([]string, bool) {
	if len(keys) != len(m.keys) || !m.Partial(keys) {
		return nil, false
	}
	return nil, true
}

func (m *exactMotion) Resolve(c Context) (buffer.Range, bool) {
	return m.fn(c)
}

// ============================================================================
// Patterns
// ============================================================================

type patternMotion struct {
	id       string
	display  string
	complete *regexp2.Regexp
	partial  *regexp2.Regexp
	fn       ResolveFunc
}

// Pattern defines a motion matched by regular expressions over the
// concatenated keys. Each key counts as one character, so `.` matches a
// whole grapheme such as "e\u0301" or "👍🏽"; named keys like "<esc>" keep
// their spelling and never match `.`. complete must match the whole final
// form and its capture groups are passed to fn; partial matches the
// prefixes that can still grow into a match.
func Pattern(id, display, complete, partial string, fn ResolveFunc) (Definition, error) {
	c, err := regexp2.Compile(complete, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compiling complete pattern for %s: %w", id, err)
	}
	p, err := regexp2.Compile(partial, regexp2.None)
	if err != nil {
		return nil, fmt.Errorf("compiling partial pattern for %s: %w", id, err)
	}
	return &patternMotion{id: id, display: display, complete: c, partial: p, fn: fn}, nil
}

// MustPattern is like Pattern but panics if a pattern does not compile.
func MustPattern(id, display, complete, partial string, fn ResolveFunc) Definition {
	d, err := Pattern(id, display, complete, partial, fn)
	if err != nil {
		panic(err)
	}
	return d
}

func (m *patternMotion) ID() string   { return m.id }
func (m *patternMotion) Keys() string { return m.display }

func (m *patternMotion) Partial(keys []string) bool {
	subject, _ := encodeKeys(keys)
	ok, err := m.partial.MatchString(subject)
	return err == nil && ok
}

func (m *patternMotion) Complete(keys []string) ([]string, bool) {
	subject, clusters := encodeKeys(keys)
	match, err := m.complete.FindStringMatch(subject)
	if err != nil || match == nil {
		return nil, false
	}
	groups := match.Groups()
	captured := make([]string, 0, len(groups)-1)
	for i := 1; i < len(groups); i++ {
		captured = append(captured, decodeKeys(groups[i].String(), clusters))
	}
	return captured, true
}

// placeholderBase starts the private-use plane that stands in for
// multi-rune keys while matching.
const placeholderBase = 0xF0000

// encodeKeys joins keys into a match subject in which every grapheme key is
// a single rune. Multi-rune graphemes are replaced by private-use
// placeholders, returned in order so captures can be decoded.
func encodeKeys(keys []string) (string, []string) {
	var b strings.Builder
	var clusters []string
	for _, k := range keys {
		if utf8.RuneCountInString(k) <= 1 || isNamedKey(k) {
			b.WriteString(k)
			continue
		}
		b.WriteRune(rune(placeholderBase + len(clusters)))
		clusters = append(clusters, k)
	}
	return b.String(), clusters
}

// decodeKeys restores the graphemes encodeKeys replaced in s.
func decodeKeys(s string, clusters []string) string {
	if len(clusters) == 0 {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if i := int(r) - placeholderBase; i >= 0 && i < len(clusters) {
			b.WriteString(clusters[i])
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isNamedKey reports whether k spells a named key such as "<esc>".
func isNamedKey(k string) bool {
	return len(k) > 2 && strings.HasPrefix(k, "<") && strings.HasSuffix(k, ">")
}

func (m *patternMotion) Resolve(c Context) (buffer.Range, bool) {
	return m.fn(c)
}
