// Package scan is a small purpose-built JSON reader. It locates objects inside an
// array and pulls string fields out of them by scanning the raw text, without
// decoding the document into a value tree.
//
// Every function works on indices into the caller's string and returns substrings
// of it. Malformed input is never an error: lookups report not found and callers
// skip the unit they were working on.
package scan

// Scanner classifies bytes as string content or structure.
// The zero value starts outside any string.
type Scanner struct {
	inString bool
	escaped  bool
}

// Step consumes c and reports whether it is structural, meaning it sits outside a
// string and is not itself a quote.
func (s *Scanner) Step(c byte) bool {
	if s.escaped {
		s.escaped = false
		return false
	}

	switch {
	case c == '"':
		s.inString = !s.inString
		return false
	case s.inString:
		if c == '\\' {
			s.escaped = true
		}
		return false
	}

	return true
}

// InString reports whether the last consumed byte left the scanner inside a string.
func (s *Scanner) InString() bool {
	return s.inString
}

// Reset returns the scanner to its zero state.
func (s *Scanner) Reset() {
	s.inString = false
	s.escaped = false
}

// closingQuote returns the index of the unescaped quote terminating a string whose
// content starts at from.
func closingQuote(text string, from int) (int, bool) {
	s := Scanner{inString: true}
	for i := from; i < len(text); i++ {
		s.Step(text[i])
		if !s.inString {
			return i, true
		}
	}

	return -1, false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
