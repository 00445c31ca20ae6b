package stdout

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jacoelho/wxalerts/internal/results"
)

func summary(failed bool) *results.Summary {
	s := results.NewSummary(2)
	s.Add(results.NewAreaResultBuilder("TX").WithAlerts(3).WithDuration(150 * time.Millisecond))
	if failed {
		s.Add(results.NewAreaResultBuilder("OK").WithError(errors.New("unexpected response status: 503")))
	} else {
		s.Add(results.NewAreaResultBuilder("OK").WithAlerts(1).WithCached(true))
	}
	s.SetTotalDuration(200 * time.Millisecond)
	return s
}

func TestFormatter_Format_SingleSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWithWriter(&buf).Format(summary(true)); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"TX: 3 alert(s) (150 ms)",
		"OK: Failed: unexpected response status: 503 (0 ms)",
		"Polled areas:  2",
		"Failed areas:  1 (50.0%)",
		"Alerts:        3",
		"Duration:      200 ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Mismatches") {
		t.Errorf("mismatch line should be omitted when zero:\n%s", out)
	}
}

func TestFormatter_Format_MultipleSummaries(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWithWriter(&buf).Format(summary(false), summary(true)); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{
		"ITERATION RESULTS:",
		"Iteration 1: SUCCESS (2 areas, 4 alerts, 200 ms)",
		"Iteration 2: FAILED (2 areas, 3 alerts, 200 ms)",
		"AGGREGATED RESULTS:",
		"Total iterations:      2",
		"Successful iterations: 1 (50.0%)",
		"Polled areas:          4 (1 failed, 1 cached)",
		"Avg alerts per iteration:   3.5",
		"Avg duration per iteration: 200 ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatter_Format_NoSummaries(t *testing.T) {
	var buf bytes.Buffer
	if err := NewWithWriter(&buf).Format(); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestNew(t *testing.T) {
	if New() == nil {
		t.Fatal("New() returned nil")
	}
}
