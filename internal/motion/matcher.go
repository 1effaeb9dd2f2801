package motion

// Matcher accumulates keystrokes for a host that feeds them one at a time.
// The buffer is cleared once it resolves to a match or to no match.
type Matcher struct {
	registry *Registry
	keys     []string
}

// NewMatcher returns a Matcher over reg.
func NewMatcher(reg *Registry) *Matcher {
	return &Matcher{registry: reg}
}

// Feed appends key and matches the buffer.
func (m *Matcher) Feed(key string) MatchResult {
	m.keys = append(m.keys, key)
	res := m.registry.Match(m.keys)
	if res.Status != StatusPending {
		m.keys = m.keys[:0]
	}
	return res
}

// Pending returns a copy of the keys collected so far.
func (m *Matcher) Pending() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Reset discards collected keys.
func (m *Matcher) Reset() {
	m.keys = m.keys[:0]
}
