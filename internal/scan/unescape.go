package scan

import "strings"

// Unescape decodes the backslash escapes of a raw JSON string value in a single
// left to right pass. Only \" \\ \n \r and \t are decoded; any other escape,
// \uXXXX included, and a trailing lone backslash are kept as written.
func Unescape(raw string) string {
	first := strings.IndexByte(raw, '\\')
	if first < 0 {
		return raw
	}

	var out strings.Builder
	out.Grow(len(raw))
	out.WriteString(raw[:first])

	for i := first; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			out.WriteByte(c)
			continue
		}

		switch raw[i+1] {
		case '"':
			out.WriteByte('"')
		case '\\':
			out.WriteByte('\\')
		case 'n':
			out.WriteByte('\n')
		case 'r':
			out.WriteByte('\r')
		case 't':
			out.WriteByte('\t')
		default:
			out.WriteByte(c)
			continue
		}
		i++
	}

	return out.String()
}
