package render

import (
	"fmt"
	"io"
	"time"

	"github.com/jacoelho/wxalerts/internal/alert"
)

const (
	noAlertsMessage    = "No alerts found."
	fetchFailedMessage = "Failed to retrieve data from the server."

	displayTimeLayout = "Mon Jan 2 2006 3:04 PM MST"
)

type line struct {
	label string
	field string
	time  bool
}

// lines is the display order: the classic four first, optional fields after.
var lines = []line{
	{label: "Effective", field: alert.FieldEffective, time: true},
	{label: "Expires", field: alert.FieldExpires, time: true},
	{label: "Headline", field: alert.FieldHeadline},
	{label: "Description", field: alert.FieldDescription},
	{label: "Onset", field: alert.FieldOnset, time: true},
	{label: "Event", field: alert.FieldEvent},
	{label: "Severity", field: alert.FieldSeverity},
	{label: "Instruction", field: alert.FieldInstruction},
}

// Text renders labelled lines per alert, separated by blank lines.
type Text struct {
	opts Options
}

// NewText returns a text renderer, filling in default style rules.
func NewText(opts Options) *Text {
	if opts.Color && opts.SeverityColors == nil {
		opts.SeverityColors = DefaultSeverityColors()
	}
	if opts.Icons && opts.EventIcons == nil {
		opts.EventIcons = DefaultEventIcons()
	}
	return &Text{opts: opts}
}

func (t *Text) Render(w io.Writer, report Report) error {
	if err := t.heading(w, report.Area, report.AreaName); err != nil {
		return err
	}

	if len(report.Feed) == 0 {
		_, err := fmt.Fprintln(w, noAlertsMessage)
		return err
	}

	for _, record := range report.Feed {
		if err := t.record(w, record); err != nil {
			return err
		}
	}

	return nil
}

func (t *Text) RenderError(w io.Writer, area string, _ error) error {
	if err := t.heading(w, area, ""); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, fetchFailedMessage)
	return err
}

func (t *Text) heading(w io.Writer, area, name string) error {
	if !t.opts.Heading {
		return nil
	}
	if name == "" || name == area {
		_, err := fmt.Fprintf(w, "== %s ==\n", area)
		return err
	}
	_, err := fmt.Fprintf(w, "== %s (%s) ==\n", name, area)
	return err
}

func (t *Text) record(w io.Writer, record alert.Record) error {
	for _, l := range lines {
		value, ok := record.Get(l.field)
		if !ok {
			continue
		}

		switch {
		case l.time:
			value = t.displayTime(value)
		case l.field == alert.FieldHeadline:
			value = t.styleHeadline(record, value)
		}

		if _, err := fmt.Fprintf(w, "%s: %s\n", l.label, value); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w)
	return err
}

func (t *Text) styleHeadline(record alert.Record, headline string) string {
	if t.opts.Icons {
		subject := record.Value(alert.FieldEvent)
		if subject == "" {
			subject = headline
		}
		if icon, ok := t.opts.EventIcons.Match(subject); ok {
			headline = icon + " " + headline
		}
	}

	if t.opts.Color {
		if color, ok := t.opts.SeverityColors.Match(record.Value(alert.FieldSeverity)); ok {
			headline = color + headline + ansiReset
		}
	}

	return headline
}

// displayTime shows an RFC 3339 timestamp in the configured location. Values that
// do not parse are shown unchanged.
func (t *Text) displayTime(value string) string {
	if t.opts.Location == nil {
		return value
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return value
	}

	return parsed.In(t.opts.Location).Format(displayTimeLayout)
}
