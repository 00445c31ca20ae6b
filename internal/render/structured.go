package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/wxalerts/internal/alert"
)

type document struct {
	Area      string     `json:"area" yaml:"area"`
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	FetchedAt string     `json:"fetched_at,omitempty" yaml:"fetched_at,omitempty"`
	Count     int        `json:"count" yaml:"count"`
	Alerts    alert.Feed `json:"alerts" yaml:"alerts"`
	Error     string     `json:"error,omitempty" yaml:"error,omitempty"`
}

func newDocument(report Report) document {
	doc := document{
		Area:   report.Area,
		Name:   report.AreaName,
		Count:  len(report.Feed),
		Alerts: report.Feed,
	}
	if doc.Alerts == nil {
		doc.Alerts = alert.Feed{}
	}
	if !report.FetchedAt.IsZero() {
		doc.FetchedAt = report.FetchedAt.UTC().Format(time.RFC3339)
	}
	return doc
}

func errorDocument(area string, err error) document {
	return document{Area: area, Alerts: alert.Feed{}, Error: err.Error()}
}

// JSON renders one indented JSON document per report.
type JSON struct{}

func (JSON) Render(w io.Writer, report Report) error {
	return encodeJSON(w, newDocument(report))
}

func (JSON) RenderError(w io.Writer, area string, err error) error {
	return encodeJSON(w, errorDocument(area, err))
}

func encodeJSON(w io.Writer, doc document) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(doc)
}

// YAML renders one YAML document per report, separated by "---".
type YAML struct{}

func (YAML) Render(w io.Writer, report Report) error {
	return encodeYAML(w, newDocument(report))
}

func (YAML) RenderError(w io.Writer, area string, err error) error {
	return encodeYAML(w, errorDocument(area, err))
}

func encodeYAML(w io.Writer, doc document) error {
	payload, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, "---\n"); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}
