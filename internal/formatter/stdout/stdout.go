package stdout

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jacoelho/wxalerts/internal/formatter"
	"github.com/jacoelho/wxalerts/internal/results"
)

const (
	rule   = "--------------------------------------------------------------------------------"
	banner = "================================================================================"
)

// Formatter writes plain text summaries.
type Formatter struct {
	writer io.Writer
}

// New creates a formatter writing to stderr, keeping stdout for the alerts themselves.
func New() formatter.Formatter {
	return &Formatter{
		writer: os.Stderr,
	}
}

// NewWithWriter creates a formatter writing to writer.
func NewWithWriter(writer io.Writer) formatter.Formatter {
	return &Formatter{
		writer: writer,
	}
}

func (f *Formatter) Format(summaries ...*results.Summary) error {
	switch len(summaries) {
	case 0:
		return nil
	case 1:
		return f.formatSingle(summaries[0])
	default:
		return f.formatAggregated(summaries)
	}
}

func (f *Formatter) formatSingle(s *results.Summary) error {
	for _, r := range s.AreaResults {
		if _, err := fmt.Fprintf(f.writer, "%s: %s (%d ms)\n", r.Area, status(r), r.Duration.Milliseconds()); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(f.writer, rule); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Polled areas:  %d\n", s.PolledAreas); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Failed areas:  %d (%.1f%%)\n", s.FailedAreas, s.FailurePercentage()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Cached areas:  %d\n", s.CachedAreas); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Alerts:        %d\n", s.TotalAlerts); err != nil {
		return err
	}
	if s.MismatchFields > 0 {
		if _, err := fmt.Fprintf(f.writer, "Mismatches:    %d\n", s.MismatchFields); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(f.writer, "Duration:      %d ms\n", s.TotalDuration.Milliseconds()); err != nil {
		return err
	}

	return nil
}

func status(r results.AreaResult) string {
	switch {
	case r.Error != nil:
		return fmt.Sprintf("Failed: %v", r.Error)
	case r.Cached:
		return fmt.Sprintf("%d alert(s), cached", r.Alerts)
	default:
		return fmt.Sprintf("%d alert(s)", r.Alerts)
	}
}

func (f *Formatter) formatAggregated(summaries []*results.Summary) error {
	if _, err := fmt.Fprintf(f.writer, "%s\nITERATION RESULTS:\n%s\n", banner, banner); err != nil {
		return err
	}

	for i, s := range summaries {
		state := "SUCCESS"
		if s.Failed() {
			state = "FAILED"
		}
		_, err := fmt.Fprintf(f.writer, "Iteration %d: %s (%d areas, %d alerts, %d ms)\n",
			i+1, state, s.PolledAreas, s.TotalAlerts, s.TotalDuration.Milliseconds())
		if err != nil {
			return err
		}
	}

	stats := results.CalculateAggregatedStats(summaries)
	successRate := float64(stats.SuccessfulIterations) / float64(stats.IterationCount) * 100
	avgDuration := stats.TotalDuration / time.Duration(stats.IterationCount)

	if _, err := fmt.Fprintf(f.writer, "%s\nAGGREGATED RESULTS:\n%s\n", banner, banner); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Total iterations:      %d\n", stats.IterationCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Successful iterations: %d (%.1f%%)\n", stats.SuccessfulIterations, successRate); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Polled areas:          %d (%d failed, %d cached)\n",
		stats.TotalPolledAreas, stats.TotalFailedAreas, stats.TotalCachedAreas); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Total duration:        %d ms\n", stats.TotalDuration.Milliseconds()); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(f.writer, rule); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Avg alerts per iteration:   %.1f\n", stats.AverageAlerts()); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(f.writer, "Avg duration per iteration: %d ms\n", avgDuration.Milliseconds()); err != nil {
		return err
	}

	return nil
}
