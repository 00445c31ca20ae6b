package alert

import (
	"github.com/jacoelho/wxalerts/internal/scan"
)

const (
	featuresKey   = "features"
	propertiesKey = "properties"
)

// Builder extracts a fixed set of property fields from every feature of a response.
type Builder struct {
	fields []string
}

// NewBuilder creates a Builder for fields, or DefaultFields when none are given.
func NewBuilder(fields ...string) *Builder {
	if len(fields) == 0 {
		fields = DefaultFields
	}
	return &Builder{fields: append([]string(nil), fields...)}
}

// Fields returns the property names the builder extracts.
func (b *Builder) Fields() []string {
	return append([]string(nil), b.fields...)
}

// Build returns one record per feature of body, in feature order.
//
// Build never fails. A body without a closed "features" array yields an empty feed,
// and a feature without a closed "properties" object is skipped.
func (b *Builder) Build(body string) Feed {
	feed := Feed{}

	open, ok := scan.Index(body, featuresKey, '[')
	if !ok {
		return feed
	}
	end, ok := scan.MatchBracket(body, open)
	if !ok {
		return feed
	}

	for _, feature := range scan.SplitObjects(body[open+1 : end]) {
		properties, ok := propertiesOf(feature)
		if !ok {
			continue
		}
		feed = append(feed, b.record(properties))
	}

	return feed
}

func (b *Builder) record(properties string) Record {
	fields := make([]Field, 0, len(b.fields))
	for _, name := range b.fields {
		if value, ok := scan.Field(properties, name); ok {
			fields = append(fields, Field{Name: name, Value: value})
		}
	}
	return Record{fields: fields}
}

func propertiesOf(feature string) (string, bool) {
	open, ok := scan.Index(feature, propertiesKey, '{')
	if !ok {
		return "", false
	}
	end, ok := scan.MatchBracket(feature, open)
	if !ok {
		return "", false
	}
	return feature[open : end+1], true
}

var defaultBuilder = NewBuilder()

// Parse builds a feed from body with DefaultFields.
func Parse(body string) Feed {
	return defaultBuilder.Build(body)
}
