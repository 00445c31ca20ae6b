// Package alert turns a weather alert API response into an ordered feed of records.
package alert

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/goccy/go-yaml"
)

// Known property names of an alert feature.
const (
	FieldEffective   = "effective"
	FieldExpires     = "expires"
	FieldHeadline    = "headline"
	FieldDescription = "description"
	FieldSeverity    = "severity"
	FieldEvent       = "event"
	FieldInstruction = "instruction"
	FieldOnset       = "onset"
)

var (
	// PrimaryFields are the fields every rendering shows.
	PrimaryFields = []string{FieldEffective, FieldExpires, FieldHeadline, FieldDescription}

	// DefaultFields are extracted when a Builder is created without explicit fields.
	DefaultFields = []string{
		FieldEffective, FieldExpires, FieldHeadline, FieldDescription,
		FieldSeverity, FieldEvent, FieldInstruction, FieldOnset,
	}
)

// IsKnownField reports whether name is one of DefaultFields.
func IsKnownField(name string) bool {
	return slices.Contains(DefaultFields, name)
}

// Field is a single decoded property.
type Field struct {
	Name  string
	Value string
}

// Record holds the decoded properties of one alert in extraction order.
// Properties missing from the document are absent, never empty placeholders.
type Record struct {
	fields []Field
}

// NewRecord copies fields into a new Record.
func NewRecord(fields ...Field) Record {
	copied := make([]Field, len(fields))
	copy(copied, fields)
	return Record{fields: copied}
}

// Get returns the value of name.
func (r Record) Get(name string) (string, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// Value returns the value of name or an empty string.
func (r Record) Value(name string) string {
	v, _ := r.Get(name)
	return v
}

// Fields returns a copy of the record's fields in order.
func (r Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

func (r Record) Len() int {
	return len(r.fields)
}

// MarshalJSON encodes the record as an object keeping field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(f.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML encodes the record as a mapping keeping field order.
func (r Record) MarshalYAML() (any, error) {
	out := make(yaml.MapSlice, 0, len(r.fields))
	for _, f := range r.fields {
		out = append(out, yaml.MapItem{Key: f.Name, Value: f.Value})
	}
	return out, nil
}

// Feed is the ordered list of alerts of one response.
type Feed []Record
