// Package results collects the outcome of polling each area.
package results

import (
	"time"
)

type AreaResult struct {
	Area       string
	Alerts     int
	Mismatches int
	Cached     bool
	Duration   time.Duration
	Error      error
}

type AreaResultBuilder struct {
	area       string
	alerts     int
	mismatches int
	cached     bool
	duration   time.Duration
	err        error
}

func NewAreaResultBuilder(area string) *AreaResultBuilder {
	return &AreaResultBuilder{
		area: area,
	}
}

func (b *AreaResultBuilder) WithAlerts(count int) *AreaResultBuilder {
	b.alerts = count
	return b
}

func (b *AreaResultBuilder) WithMismatches(count int) *AreaResultBuilder {
	b.mismatches = count
	return b
}

func (b *AreaResultBuilder) WithCached(cached bool) *AreaResultBuilder {
	b.cached = cached
	return b
}

func (b *AreaResultBuilder) WithDuration(duration time.Duration) *AreaResultBuilder {
	b.duration = duration
	return b
}

func (b *AreaResultBuilder) WithError(err error) *AreaResultBuilder {
	b.err = err
	return b
}

func (b *AreaResultBuilder) Build() AreaResult {
	return AreaResult{
		Area:       b.area,
		Alerts:     b.alerts,
		Mismatches: b.mismatches,
		Cached:     b.cached,
		Duration:   b.duration,
		Error:      b.err,
	}
}

// Summary is the outcome of one polling iteration over all areas.
type Summary struct {
	AreaResults    []AreaResult
	PolledAreas    int
	FailedAreas    int
	CachedAreas    int
	TotalAlerts    int
	TotalDuration  time.Duration
	MismatchFields int
}

func NewSummary(expectedAreas int) *Summary {
	return &Summary{
		AreaResults: make([]AreaResult, 0, expectedAreas),
	}
}

func (s *Summary) Add(builder *AreaResultBuilder) {
	result := builder.Build()

	s.AreaResults = append(s.AreaResults, result)
	s.PolledAreas++
	s.MismatchFields += result.Mismatches

	switch {
	case result.Error != nil:
		s.FailedAreas++
	case result.Cached:
		s.CachedAreas++
		s.TotalAlerts += result.Alerts
	default:
		s.TotalAlerts += result.Alerts
	}
}

func (s *Summary) SetTotalDuration(duration time.Duration) {
	s.TotalDuration = duration
}

// Failed reports whether any area could not be fetched.
func (s *Summary) Failed() bool {
	return s.FailedAreas > 0
}

func (s *Summary) FailurePercentage() float64 {
	if s.PolledAreas == 0 {
		return 0
	}
	return (float64(s.FailedAreas) / float64(s.PolledAreas)) * 100
}

type AggregatedStats struct {
	IterationCount       int
	SuccessfulIterations int
	TotalPolledAreas     int
	TotalFailedAreas     int
	TotalCachedAreas     int
	TotalAlerts          int
	TotalMismatchFields  int
	TotalDuration        time.Duration
}

func CalculateAggregatedStats(summaries []*Summary) AggregatedStats {
	var stats AggregatedStats
	stats.IterationCount = len(summaries)

	for _, s := range summaries {
		stats.TotalPolledAreas += s.PolledAreas
		stats.TotalFailedAreas += s.FailedAreas
		stats.TotalCachedAreas += s.CachedAreas
		stats.TotalAlerts += s.TotalAlerts
		stats.TotalMismatchFields += s.MismatchFields
		stats.TotalDuration += s.TotalDuration

		if !s.Failed() {
			stats.SuccessfulIterations++
		}
	}

	return stats
}

// AverageAlerts is the mean number of alerts seen per iteration.
func (a AggregatedStats) AverageAlerts() float64 {
	if a.IterationCount == 0 {
		return 0
	}
	return float64(a.TotalAlerts) / float64(a.IterationCount)
}
