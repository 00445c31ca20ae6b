package scan

import "strings"

// Field returns the decoded string value stored under name in object.
// It reports false when the key is missing, when its value is not a string or when
// the value's closing quote is missing.
func Field(object, name string) (string, bool) {
	raw, ok := RawField(object, name)
	if !ok {
		return "", false
	}

	return Unescape(raw), true
}

// RawField is like Field but returns the value exactly as encoded in the document.
func RawField(object, name string) (string, bool) {
	pos, ok := ValueStart(object, name)
	if !ok || object[pos] != '"' {
		return "", false
	}

	end, ok := closingQuote(object, pos+1)
	if !ok {
		return "", false
	}

	return object[pos+1 : end], true
}

// ValueStart returns the index of the first byte of the value following the first
// "name": key in text, skipping whitespace after the colon.
func ValueStart(text, name string) (int, bool) {
	key := `"` + name + `":`
	at := strings.Index(text, key)
	if at < 0 {
		return -1, false
	}

	for i := at + len(key); i < len(text); i++ {
		if !isSpace(text[i]) {
			return i, true
		}
	}

	return -1, false
}

// Index returns the index of the first c at or after the value of key name in text.
func Index(text, name string, c byte) (int, bool) {
	pos, ok := ValueStart(text, name)
	if !ok {
		return -1, false
	}

	next := strings.IndexByte(text[pos:], c)
	if next < 0 {
		return -1, false
	}

	return pos + next, true
}
