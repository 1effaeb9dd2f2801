package motion

import "github.com/zjrosen/vimotion/internal/textscan"

// Options tunes resolvers that depend on user settings.
type Options struct {
	// TabWidth is the tab stop used when measuring indentation.
	TabWidth int
	// IndentMode selects which lines ii groups with the cursor line.
	IndentMode textscan.IndentMode
}

// DefaultOptions returns tab width 4 and same-level indent blocks.
func DefaultOptions() Options {
	return Options{TabWidth: 4, IndentMode: textscan.IndentSame}
}

func (o Options) indent() textscan.IndentOptions {
	tw := o.TabWidth
	if tw <= 0 {
		tw = DefaultOptions().TabWidth
	}
	return textscan.IndentOptions{TabWidth: tw, Mode: o.IndentMode}
}
