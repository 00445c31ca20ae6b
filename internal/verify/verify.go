// Package verify cross-checks the text scanning extractor against a full JSON
// decode of the same document.
package verify

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/wxalerts/internal/alert"
)

var ErrInvalidDocument = errors.New("invalid alert document")

var propertiesPath = jsonpath.MustParse("$.features[*].properties")

// Mismatch describes one disagreement between the extractor and the decoder.
// Index is -1 for feed level mismatches.
type Mismatch struct {
	Index   int
	Field   string
	Scanned string
	Decoded string
}

func (m Mismatch) String() string {
	if m.Index < 0 {
		return fmt.Sprintf("feed: scanned %s, decoded %s", m.Scanned, m.Decoded)
	}
	return fmt.Sprintf("alert %d field %s: scanned %q, decoded %q", m.Index, m.Field, m.Scanned, m.Decoded)
}

// Check decodes body and compares every string field in fields with feed.
// A field that is absent or not a string in the decoded document must be absent
// from the record.
func Check(body []byte, feed alert.Feed, fields []string) ([]Mismatch, error) {
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	decoded := propertiesPath.Select(doc)
	if len(decoded) != len(feed) {
		return []Mismatch{{
			Index:   -1,
			Scanned: fmt.Sprintf("%d alerts", len(feed)),
			Decoded: fmt.Sprintf("%d alerts", len(decoded)),
		}}, nil
	}

	var mismatches []Mismatch
	for i, node := range decoded {
		properties, _ := node.(map[string]any)
		for _, name := range fields {
			want, wantOK := properties[name].(string)
			got, gotOK := feed[i].Get(name)
			if got == want && gotOK == wantOK {
				continue
			}
			mismatches = append(mismatches, Mismatch{
				Index:   i,
				Field:   name,
				Scanned: describe(got, gotOK),
				Decoded: describe(want, wantOK),
			})
		}
	}

	return mismatches, nil
}

func describe(value string, ok bool) string {
	if !ok {
		return "<absent>"
	}
	return value
}
