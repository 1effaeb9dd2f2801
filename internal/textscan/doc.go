// Package textscan holds the scanning primitives the motion resolvers are
// built from: word segmentation, quote pairing, bracket and tag matching,
// paragraph and indent block detection, and in-line character search.
//
// Every function is pure. Results are value types computed from the text
// passed in and are never cached, so a document that changes between
// keystrokes cannot produce stale spans.
//
// All columns are grapheme indices (see package buffer).
package textscan
