package scan

// SplitObjects returns the top-level objects of span, the text between an array's
// brackets, in source order. Each element is a substring of span including its braces.
//
// An object still open when span ends is dropped. A '{' directly after ',' or '{'
// inside an object cannot be a value, so the object being read is abandoned and a
// new top-level object starts there; this lets an element that lost its closing
// brace drop out without taking its successor with it.
func SplitObjects(span string) []string {
	var (
		s       Scanner
		objects []string
		open    []byte
		start   int
		prev    byte
	)

	for i := 0; i < len(span); i++ {
		c := span[i]
		if !s.Step(c) {
			if c == '"' {
				prev = c
			}
			continue
		}
		if isSpace(c) {
			continue
		}

		switch c {
		case '{':
			switch {
			case len(open) == 0:
				start = i
				open = append(open, c)
			case open[len(open)-1] == '{' && (prev == ',' || prev == '{'):
				start = i
				open = append(open[:0], c)
			default:
				open = append(open, c)
			}
		case '[':
			if len(open) > 0 {
				open = append(open, c)
			}
		case '}', ']':
			if len(open) == 0 {
				break
			}
			open = open[:len(open)-1]
			if len(open) == 0 {
				objects = append(objects, span[start:i+1])
			}
		}

		prev = c
	}

	return objects
}
