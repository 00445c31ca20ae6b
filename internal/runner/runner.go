package runner

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jacoelho/wxalerts/internal/alert"
	"github.com/jacoelho/wxalerts/internal/cache"
	"github.com/jacoelho/wxalerts/internal/config"
	"github.com/jacoelho/wxalerts/internal/exit"
	"github.com/jacoelho/wxalerts/internal/fetch"
	"github.com/jacoelho/wxalerts/internal/formatter"
	"github.com/jacoelho/wxalerts/internal/formatter/stdout"
	"github.com/jacoelho/wxalerts/internal/httpclient"
	"github.com/jacoelho/wxalerts/internal/metrics"
	"github.com/jacoelho/wxalerts/internal/ratelimit"
	"github.com/jacoelho/wxalerts/internal/render"
	"github.com/jacoelho/wxalerts/internal/results"
)

// Runner polls the configured areas and renders their active alerts.
type Runner struct {
	config    *config.Config
	logger    logrus.FieldLogger
	fetcher   *fetch.Fetcher
	builder   *alert.Builder
	renderer  render.Renderer
	formatter formatter.Formatter
	metrics   *metrics.Metrics
	pacer     *ratelimit.Limiter
	out       io.Writer
	closers   []io.Closer
	now       func() time.Time
}

// New creates a new Runner writing alerts to stdout and summaries to stderr.
// If creation fails, returns nil runner and exit result.
func New(cfg *config.Config, logger logrus.FieldLogger) (*Runner, *exit.Result) {
	return NewWithOutput(cfg, logger, os.Stdout, os.Stderr)
}

// NewWithOutput creates a new Runner writing alerts to out and summaries to summary.
func NewWithOutput(cfg *config.Config, logger logrus.FieldLogger, out, summary io.Writer) (*Runner, *exit.Result) {
	tlsConfig, err := cfg.TLSConfig()
	if err != nil {
		return nil, exit.Errorf("Error creating runner: %v", err)
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, exit.Errorf("Error creating runner: %v", err)
	}

	renderer, err := render.New(cfg.Format, render.Options{
		Heading:        cfg.Heading || len(cfg.Areas) > 1,
		Color:          cfg.Color,
		Icons:          cfg.Icons,
		Location:       loc,
		SeverityColors: render.DefaultSeverityColors(),
		EventIcons:     render.DefaultEventIcons(),
	})
	if err != nil {
		return nil, exit.Errorf("Error creating runner: %v", err)
	}

	r := &Runner{
		config:    cfg,
		logger:    logger,
		builder:   alert.NewBuilder(cfg.Fields...),
		renderer:  renderer,
		formatter: stdout.NewWithWriter(summary),
		metrics:   metrics.New(),
		pacer:     ratelimit.Every(cfg.Interval),
		out:       out,
		now:       time.Now,
	}

	store, err := r.newCache()
	if err != nil {
		return nil, exit.Errorf("Error creating runner: %v", err)
	}

	client := httpclient.New(httpclient.Options{
		Timeout:   cfg.Timeout,
		RetryMax:  retries(cfg.Retries),
		TLSConfig: tlsConfig,
		Logger:    logger,
	})

	r.fetcher = fetch.New(fetch.Options{
		Client:    client,
		UserAgent: cfg.UserAgent,
		Limiter:   ratelimit.New(cfg.RateLimit),
		Cache:     store,
		CacheTTL:  cfg.CacheTTL,
		Logger:    logger,
	})

	return r, nil
}

// retries maps the configured count, where 0 means none, onto the client option,
// where 0 selects the default.
func retries(n int) int {
	if n == 0 {
		return -1
	}
	return n
}

func (r *Runner) newCache() (cache.Cache, error) {
	switch {
	case !r.config.CacheEnabled():
		return nil, nil
	case r.config.RedisURL != "":
		store, err := cache.NewRedis(r.config.RedisURL, cache.DefaultPrefix)
		if err != nil {
			return nil, err
		}
		r.closers = append(r.closers, store)
		return store, nil
	default:
		return cache.NewMemory(), nil
	}
}

// Run polls the areas according to the configuration and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	defer r.close()

	if r.config.MetricsAddr != "" {
		go func() {
			if err := r.metrics.Serve(ctx, r.config.MetricsAddr); err != nil {
				r.logger.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	if r.config.Repeat < 0 {
		return r.runInfiniteLoop(ctx)
	}
	return r.runFiniteLoop(ctx)
}

// runInfiniteLoop polls until ctx is cancelled (repeat < 0).
func (r *Runner) runInfiniteLoop(ctx context.Context) int {
	code := exit.CodeOK

	for iteration := 1; ; iteration++ {
		if !r.wait(ctx) {
			r.logger.Infof("interrupted after %d iterations", iteration-1)
			return code
		}

		r.logger.WithField("iteration", iteration).Debug("polling")

		summary := r.pollOnce(ctx)
		if ctx.Err() != nil {
			r.logger.Infof("interrupted after %d iterations", iteration-1)
			return code
		}
		if summary.Failed() {
			code = exit.CodeFailure
		}

		if r.config.Debug {
			if err := r.formatter.Format(summary); err != nil {
				r.logger.WithError(err).Error("formatting summary")
			}
		}
	}
}

// runFiniteLoop polls Repeat+1 times (repeat >= 0).
func (r *Runner) runFiniteLoop(ctx context.Context) int {
	var all []*results.Summary
	totalIterations := r.config.Repeat + 1
	code := exit.CodeOK

	for i := 1; i <= totalIterations; i++ {
		if !r.wait(ctx) {
			r.logger.Infof("interrupted after %d of %d iterations", i-1, totalIterations)
			return exit.CodeFailure
		}

		r.logger.WithField("iteration", i).Debug("polling")

		summary := r.pollOnce(ctx)
		if ctx.Err() != nil {
			r.logger.Infof("interrupted after %d of %d iterations", i-1, totalIterations)
			return exit.CodeFailure
		}
		if summary.Failed() {
			code = exit.CodeFailure
		}
		all = append(all, summary)
	}

	if r.config.Debug || totalIterations > 1 {
		if err := r.formatter.Format(all...); err != nil {
			r.logger.WithError(err).Error("formatting summary")
		}
	}

	return code
}

func (r *Runner) close() {
	for _, c := range r.closers {
		if err := c.Close(); err != nil {
			r.logger.WithError(err).Warn("closing cache")
		}
	}
}

// wait blocks until the next poll may start. Polls start at most once per
// interval; the first one starts immediately. Reports whether ctx is still live.
func (r *Runner) wait(ctx context.Context) bool {
	return r.pacer.Wait(ctx) == nil
}
