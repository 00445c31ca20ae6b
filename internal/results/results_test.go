package results

import (
	"errors"
	"testing"
	"time"
)

func TestSummaryAdd(t *testing.T) {
	s := NewSummary(3)
	s.Add(NewAreaResultBuilder("TX").WithAlerts(4).WithDuration(time.Second))
	s.Add(NewAreaResultBuilder("OK").WithAlerts(1).WithCached(true).WithMismatches(2))
	s.Add(NewAreaResultBuilder("KS").WithError(errors.New("boom")))
	s.SetTotalDuration(2 * time.Second)

	if s.PolledAreas != 3 || s.FailedAreas != 1 || s.CachedAreas != 1 {
		t.Errorf("counts = polled %d failed %d cached %d", s.PolledAreas, s.FailedAreas, s.CachedAreas)
	}
	if s.TotalAlerts != 5 {
		t.Errorf("TotalAlerts = %d, want 5", s.TotalAlerts)
	}
	if s.MismatchFields != 2 {
		t.Errorf("MismatchFields = %d, want 2", s.MismatchFields)
	}
	if !s.Failed() {
		t.Error("Failed() should be true")
	}
	if got := s.AreaResults[0]; got.Area != "TX" || got.Duration != time.Second {
		t.Errorf("first result = %+v", got)
	}
	if s.TotalDuration != 2*time.Second {
		t.Errorf("TotalDuration = %v", s.TotalDuration)
	}
}

func TestSummaryFailurePercentage(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    float64
	}{
		{name: "no_areas", summary: Summary{}, want: 0},
		{name: "all_failed", summary: Summary{PolledAreas: 2, FailedAreas: 2}, want: 100},
		{name: "half_failed", summary: Summary{PolledAreas: 4, FailedAreas: 2}, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.FailurePercentage(); got != tt.want {
				t.Errorf("FailurePercentage() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCalculateAggregatedStats(t *testing.T) {
	ok := NewSummary(1)
	ok.Add(NewAreaResultBuilder("TX").WithAlerts(2))
	ok.SetTotalDuration(time.Second)

	failed := NewSummary(2)
	failed.Add(NewAreaResultBuilder("TX").WithAlerts(4).WithCached(true))
	failed.Add(NewAreaResultBuilder("OK").WithError(errors.New("boom")))
	failed.SetTotalDuration(time.Second)

	stats := CalculateAggregatedStats([]*Summary{ok, failed})

	want := AggregatedStats{
		IterationCount:       2,
		SuccessfulIterations: 1,
		TotalPolledAreas:     3,
		TotalFailedAreas:     1,
		TotalCachedAreas:     1,
		TotalAlerts:          6,
		TotalDuration:        2 * time.Second,
	}
	if stats != want {
		t.Errorf("CalculateAggregatedStats() = %+v, want %+v", stats, want)
	}
	if got := stats.AverageAlerts(); got != 3 {
		t.Errorf("AverageAlerts() = %v, want 3", got)
	}
	if got := (AggregatedStats{}).AverageAlerts(); got != 0 {
		t.Errorf("AverageAlerts() of empty stats = %v", got)
	}
}
