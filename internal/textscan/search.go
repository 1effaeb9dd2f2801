package textscan

import "github.com/zjrosen/vimotion/internal/buffer"

// FindForward returns the first column >= from on line holding needle.
// Search is confined to the line.
func FindForward(line, needle string, from int) (int, bool) {
	graphemes := buffer.Graphemes(line)
	for i := max(from, 0); i < len(graphemes); i++ {
		if graphemes[i] == needle {
			return i, true
		}
	}
	return -1, false
}

// FindBackward returns the last column <= from on line holding needle.
func FindBackward(line, needle string, from int) (int, bool) {
	graphemes := buffer.Graphemes(line)
	for i := min(from, len(graphemes)-1); i >= 0; i-- {
		if graphemes[i] == needle {
			return i, true
		}
	}
	return -1, false
}
