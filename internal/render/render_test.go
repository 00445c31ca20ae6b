package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/wxalerts/internal/alert"
)

func tornado() alert.Record {
	return alert.NewRecord(
		alert.Field{Name: alert.FieldEffective, Value: "2024-05-01T10:00:00Z"},
		alert.Field{Name: alert.FieldExpires, Value: "2024-05-01T12:00:00Z"},
		alert.Field{Name: alert.FieldHeadline, Value: "Tornado Warning"},
		alert.Field{Name: alert.FieldDescription, Value: "Take shelter"},
	)
}

func TestNew(t *testing.T) {
	for _, format := range append(Formats(), "") {
		if _, err := New(format, Options{}); err != nil {
			t.Errorf("New(%q) error: %v", format, err)
		}
	}

	if _, err := New("xml", Options{}); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("New(xml) error = %v, want %v", err, ErrUnknownFormat)
	}
}

func TestTextRender(t *testing.T) {
	tests := []struct {
		name   string
		opts   Options
		report Report
		want   string
	}{
		{
			name:   "classic_layout",
			report: Report{Area: "TX", Feed: alert.Feed{tornado()}},
			want: "Effective: 2024-05-01T10:00:00Z\n" +
				"Expires: 2024-05-01T12:00:00Z\n" +
				"Headline: Tornado Warning\n" +
				"Description: Take shelter\n\n",
		},
		{
			name:   "no_alerts",
			report: Report{Area: "TX", Feed: alert.Feed{}},
			want:   "No alerts found.\n",
		},
		{
			name:   "heading",
			opts:   Options{Heading: true},
			report: Report{Area: "TX", AreaName: "Texas", Feed: alert.Feed{}},
			want:   "== Texas (TX) ==\nNo alerts found.\n",
		},
		{
			name: "missing_fields_skipped",
			report: Report{Area: "TX", Feed: alert.Feed{
				alert.NewRecord(alert.Field{Name: alert.FieldHeadline, Value: "Only headline"}),
				alert.NewRecord(),
			}},
			want: "Headline: Only headline\n\n\n",
		},
		{
			name: "optional_fields",
			report: Report{Area: "TX", Feed: alert.Feed{alert.NewRecord(
				alert.Field{Name: alert.FieldHeadline, Value: "H"},
				alert.Field{Name: alert.FieldDescription, Value: "D"},
				alert.Field{Name: alert.FieldSeverity, Value: "Severe"},
				alert.Field{Name: alert.FieldEvent, Value: "Flood Warning"},
				alert.Field{Name: alert.FieldInstruction, Value: "Move to higher ground"},
				alert.Field{Name: alert.FieldOnset, Value: "soon"},
				alert.Field{Name: alert.FieldExpires, Value: "2024-05-01T12:00:00Z"},
				alert.Field{Name: alert.FieldEffective, Value: "2024-05-01T10:00:00Z"},
			)}},
			want: "Effective: 2024-05-01T10:00:00Z\nExpires: 2024-05-01T12:00:00Z\n" +
				"Headline: H\nDescription: D\n" +
				"Onset: soon\nEvent: Flood Warning\nSeverity: Severe\nInstruction: Move to higher ground\n\n",
		},
		{
			name: "icons_and_color",
			opts: Options{Icons: true, Color: true},
			report: Report{Area: "TX", Feed: alert.Feed{alert.NewRecord(
				alert.Field{Name: alert.FieldHeadline, Value: "Tornado Warning issued"},
				alert.Field{Name: alert.FieldSeverity, Value: "Extreme"},
				alert.Field{Name: alert.FieldEvent, Value: "Tornado Warning"},
			)}},
			want: "Headline: \x1b[1;31m🌪 Tornado Warning issued\x1b[0m\n" +
				"Event: Tornado Warning\nSeverity: Extreme\n\n",
		},
		{
			name: "local_time",
			opts: Options{Location: time.FixedZone("CDT", -5*60*60)},
			report: Report{Area: "TX", Feed: alert.Feed{alert.NewRecord(
				alert.Field{Name: alert.FieldEffective, Value: "2024-05-01T15:00:00Z"},
				alert.Field{Name: alert.FieldExpires, Value: "tomorrow"},
			)}},
			want: "Effective: Wed May 1 2024 10:00 AM CDT\nExpires: tomorrow\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewText(tt.opts).Render(&buf, tt.report); err != nil {
				t.Fatalf("Render() error: %v", err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Render() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestTextRenderError(t *testing.T) {
	var buf bytes.Buffer
	if err := NewText(Options{}).RenderError(&buf, "TX", errors.New("boom")); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "Failed to retrieve data from the server.\n" {
		t.Errorf("RenderError() = %q", got)
	}
}

func TestRulesMatch(t *testing.T) {
	rules := Rules{
		{Pattern: "red flag", Value: "fire"},
		{Pattern: "flag", Value: "generic"},
	}

	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{text: "Red Flag Warning", want: "fire", wantOK: true},
		{text: "Flag advisory", want: "generic", wantOK: true},
		{text: "Wind Advisory", wantOK: false},
		{text: "", wantOK: false},
	}

	for _, tt := range tests {
		got, ok := rules.Match(tt.text)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Match(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}

	if icon, _ := DefaultEventIcons().Match("Severe Thunderstorm Warning"); icon != "⛈" {
		t.Errorf("thunderstorm icon = %q", icon)
	}
	if _, ok := DefaultSeverityColors().Match("Unknown"); ok {
		t.Error("unknown severity should not be colored")
	}
}

func TestJSONRender(t *testing.T) {
	var buf bytes.Buffer
	report := Report{
		Area:      "TX",
		AreaName:  "Texas",
		Feed:      alert.Feed{tornado()},
		FetchedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := (JSON{}).Render(&buf, report); err != nil {
		t.Fatal(err)
	}

	var got struct {
		Area      string              `json:"area"`
		Name      string              `json:"name"`
		FetchedAt string              `json:"fetched_at"`
		Count     int                 `json:"count"`
		Alerts    []map[string]string `json:"alerts"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}

	if got.Area != "TX" || got.Name != "Texas" || got.Count != 1 || got.FetchedAt != "2024-05-01T10:00:00Z" {
		t.Errorf("unexpected document: %+v", got)
	}
	if got.Alerts[0]["headline"] != "Tornado Warning" {
		t.Errorf("headline = %q", got.Alerts[0]["headline"])
	}
	if !strings.Contains(buf.String(), `"effective": "2024-05-01T10:00:00Z"`) {
		t.Errorf("fields should keep extraction order:\n%s", buf.String())
	}
}

func TestJSONRenderEmptyAndError(t *testing.T) {
	var buf bytes.Buffer
	if err := (JSON{}).Render(&buf, Report{Area: "TX"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"alerts": []`) {
		t.Errorf("empty feed should encode as an empty list:\n%s", buf.String())
	}

	buf.Reset()
	if err := (JSON{}).RenderError(&buf, "TX", errors.New("boom")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"error": "boom"`) {
		t.Errorf("error document missing message:\n%s", buf.String())
	}
}

func TestYAMLRender(t *testing.T) {
	var buf bytes.Buffer
	if err := (YAML{}).Render(&buf, Report{Area: "TX", Feed: alert.Feed{tornado()}}); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "---\n") {
		t.Errorf("YAML output should start a document:\n%s", out)
	}

	var got struct {
		Area   string              `yaml:"area"`
		Count  int                 `yaml:"count"`
		Alerts []map[string]string `yaml:"alerts"`
	}
	if err := yaml.Unmarshal([]byte(strings.TrimPrefix(out, "---\n")), &got); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if got.Area != "TX" || got.Count != 1 || got.Alerts[0]["description"] != "Take shelter" {
		t.Errorf("unexpected document: %+v", got)
	}
}
