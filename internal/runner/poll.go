package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jacoelho/wxalerts/internal/alert"
	"github.com/jacoelho/wxalerts/internal/area"
	"github.com/jacoelho/wxalerts/internal/metrics"
	"github.com/jacoelho/wxalerts/internal/render"
	"github.com/jacoelho/wxalerts/internal/results"
	"github.com/jacoelho/wxalerts/internal/verify"
)

// pollOnce fetches and renders every area once, in configuration order.
func (r *Runner) pollOnce(ctx context.Context) *results.Summary {
	s := results.NewSummary(len(r.config.Areas))
	overallStart := time.Now()

	for _, code := range r.config.Areas {
		if ctx.Err() != nil {
			break
		}

		builder := results.NewAreaResultBuilder(code)
		r.pollArea(ctx, code, builder)
		s.Add(builder)
	}

	s.SetTotalDuration(time.Since(overallStart))
	return s
}

// pollArea handles one area. A failed fetch is reported in the output and the
// result; it never stops the remaining areas.
func (r *Runner) pollArea(ctx context.Context, code string, b *results.AreaResultBuilder) {
	log := r.logger.WithField("area", code)

	url, err := area.URL(r.config.BaseURL, code)
	if err != nil {
		b.WithError(err)
		r.renderError(log, code, err)
		return
	}

	start := time.Now()
	res, err := r.fetcher.Fetch(ctx, url)
	duration := time.Since(start)
	b.WithDuration(duration)

	if err != nil {
		b.WithError(err)
		if ctx.Err() != nil {
			return
		}
		r.metrics.ObserveFetch(code, metrics.StatusError, duration)
		log.WithError(err).Error("failed to fetch alerts")
		r.renderError(log, code, err)
		return
	}

	log = log.WithField("request_id", res.RequestID)

	status := metrics.StatusOK
	if res.Cached {
		status = metrics.StatusCached
	}
	r.metrics.ObserveFetch(code, status, duration)

	feed := r.builder.Build(string(res.Body))
	r.metrics.SetAlerts(code, len(feed))
	b.WithAlerts(len(feed)).WithCached(res.Cached)

	log.WithFields(logrus.Fields{
		"alerts": len(feed),
		"cached": res.Cached,
	}).Debug("built alert feed")

	if r.config.Verify {
		b.WithMismatches(r.verify(log, code, res.Body, feed))
	}

	report := render.Report{
		Area:      code,
		AreaName:  area.Name(code),
		Feed:      feed,
		FetchedAt: r.now(),
	}
	if err := r.renderer.Render(r.out, report); err != nil {
		b.WithError(fmt.Errorf("failed to render alerts: %w", err))
		log.WithError(err).Error("failed to render alerts")
	}
}

// verify compares the feed against a full decode and returns the number of mismatches.
func (r *Runner) verify(log logrus.FieldLogger, code string, body []byte, feed alert.Feed) int {
	mismatches, err := verify.Check(body, feed, r.builder.Fields())
	if err != nil {
		log.WithError(err).Warn("skipping verification")
		return 0
	}

	for _, m := range mismatches {
		log.WithField("mismatch", m.String()).Warn("extracted field differs from decoded document")
	}
	r.metrics.AddMismatches(code, len(mismatches))

	return len(mismatches)
}

func (r *Runner) renderError(log logrus.FieldLogger, code string, err error) {
	if rerr := r.renderer.RenderError(r.out, code, err); rerr != nil {
		log.WithError(rerr).Error("failed to render error")
	}
}
