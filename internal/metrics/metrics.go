// Package metrics exposes Prometheus metrics about alert polling.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "wxalerts"

// Fetch outcome labels.
const (
	StatusOK     = "ok"
	StatusCached = "cached"
	StatusError  = "error"
)

// Metrics groups the collectors updated by the runner.
type Metrics struct {
	registry *prometheus.Registry

	FetchTotal       *prometheus.CounterVec
	FetchDuration    *prometheus.HistogramVec
	Alerts           *prometheus.GaugeVec
	VerifyMismatches *prometheus.CounterVec
}

// New creates the collectors and registers them on a dedicated registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		FetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "fetch",
				Name:      "total",
				Help:      "Alert feed fetches by area and outcome",
			},
			[]string{"area", "status"},
		),

		FetchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "fetch",
				Name:      "duration_seconds",
				Help:      "Alert feed fetch duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"area"},
		),

		Alerts: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "alerts",
				Help:      "Alerts in the most recent feed of an area",
			},
			[]string{"area"},
		),

		VerifyMismatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "verify",
				Name:      "mismatches_total",
				Help:      "Fields where the extractor disagreed with a full decode",
			},
			[]string{"area"},
		),
	}

	m.registry.MustRegister(m.FetchTotal, m.FetchDuration, m.Alerts, m.VerifyMismatches)

	return m
}

// ObserveFetch records one fetch of area.
func (m *Metrics) ObserveFetch(area, status string, duration time.Duration) {
	m.FetchTotal.WithLabelValues(area, status).Inc()
	if status != StatusCached {
		m.FetchDuration.WithLabelValues(area).Observe(duration.Seconds())
	}
}

// SetAlerts records the size of the latest feed of area.
func (m *Metrics) SetAlerts(area string, count int) {
	m.Alerts.WithLabelValues(area).Set(float64(count))
}

// AddMismatches records verification disagreements for area.
func (m *Metrics) AddMismatches(area string, count int) {
	if count > 0 {
		m.VerifyMismatches.WithLabelValues(area).Add(float64(count))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
