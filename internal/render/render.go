// Package render presents alert feeds to the user.
package render

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jacoelho/wxalerts/internal/alert"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists the accepted output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// Report is the feed of one area at one point in time.
type Report struct {
	Area      string
	AreaName  string
	Feed      alert.Feed
	FetchedAt time.Time
}

// Renderer writes reports and fetch failures.
type Renderer interface {
	Render(w io.Writer, report Report) error
	RenderError(w io.Writer, area string, err error) error
}

// Options tune the text renderer; structured formats ignore them.
type Options struct {
	// Heading prints the area name before its alerts.
	Heading bool
	// Color highlights headlines by severity with ANSI colors.
	Color bool
	// Icons prefixes headlines with an icon chosen by event.
	Icons bool
	// Location, when set, displays timestamps in that time zone.
	Location *time.Location

	SeverityColors Rules
	EventIcons     Rules
}

// New returns the renderer for format.
func New(format string, opts Options) (Renderer, error) {
	switch format {
	case "", FormatText:
		return NewText(opts), nil
	case FormatJSON:
		return JSON{}, nil
	case FormatYAML:
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}
