package scan

// MatchBracket returns the index of the bracket closing the one at text[open].
// text[open] must be '{' or '['. Only brackets of the same kind are counted and
// anything inside a string is ignored. It reports false when the input ends before
// the bracket is closed.
func MatchBracket(text string, open int) (int, bool) {
	if open < 0 || open >= len(text) {
		return -1, false
	}

	opener := text[open]
	closer, ok := closerFor(opener)
	if !ok {
		return -1, false
	}

	var s Scanner
	nesting := 1
	for i := open + 1; i < len(text); i++ {
		c := text[i]
		if !s.Step(c) {
			continue
		}

		switch c {
		case opener:
			nesting++
		case closer:
			nesting--
			if nesting == 0 {
				return i, true
			}
		}
	}

	return -1, false
}

func closerFor(opener byte) (byte, bool) {
	switch opener {
	case '{':
		return '}', true
	case '[':
		return ']', true
	default:
		return 0, false
	}
}
