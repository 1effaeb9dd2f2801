// Package motion resolves pending-operator keystrokes into the span of text
// the operator acts on.
//
// A Registry holds an ordered list of motion definitions. Each definition
// answers two questions about the accumulated key buffer: could more keys
// still complete it (Partial), and does the buffer complete it now
// (Complete, with capture groups such as the character of f<char>).
// Registry.Match folds those answers into Pending, NoMatch or Matched. The
// first definition in registration order that completes wins; ties are
// never broken by specificity.
//
// A matched definition's resolver turns the document, the cursor and the
// captured groups into a buffer.Range, or reports that the motion does not
// apply here. Neither outcome is an error: the host simply cancels the
// pending operator.
//
// Resolution is a pure function of the document snapshot, the cursor and
// the keys. Nothing computed by the scanners is kept between calls.
package motion
