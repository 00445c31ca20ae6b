// Package fetch retrieves raw alert documents from the API.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jacoelho/wxalerts/internal/cache"
	"github.com/jacoelho/wxalerts/internal/logging"
	"github.com/jacoelho/wxalerts/internal/ratelimit"
)

const (
	// DefaultUserAgent identifies the client; the API rejects requests without one.
	DefaultUserAgent = "wxalerts (https://github.com/jacoelho/wxalerts)"

	// DefaultMaxBodyBytes caps the size of a response body.
	DefaultMaxBodyBytes = 16 << 20

	acceptHeader    = "application/geo+json, application/json;q=0.9"
	requestIDHeader = "X-Request-ID"
)

var (
	ErrStatus       = errors.New("unexpected response status")
	ErrBodyTooLarge = errors.New("response body too large")
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options configures a Fetcher. Only Client is required.
type Options struct {
	Client       Doer
	UserAgent    string
	MaxBodyBytes int64
	Limiter      *ratelimit.Limiter
	Cache        cache.Cache
	CacheTTL     time.Duration
	Logger       logrus.FieldLogger
}

// Result is a fetched document.
type Result struct {
	Body      []byte
	RequestID string
	Cached    bool
}

// Fetcher downloads alert documents, optionally through a cache.
type Fetcher struct {
	client       Doer
	userAgent    string
	maxBodyBytes int64
	limiter      *ratelimit.Limiter
	cache        cache.Cache
	cacheTTL     time.Duration
	logger       logrus.FieldLogger
}

// New creates a Fetcher from opts.
func New(opts Options) *Fetcher {
	f := &Fetcher{
		client:       opts.Client,
		userAgent:    opts.UserAgent,
		maxBodyBytes: opts.MaxBodyBytes,
		limiter:      opts.Limiter,
		cache:        opts.Cache,
		cacheTTL:     opts.CacheTTL,
		logger:       opts.Logger,
	}

	if f.client == nil {
		f.client = http.DefaultClient
	}
	if f.userAgent == "" {
		f.userAgent = DefaultUserAgent
	}
	if f.maxBodyBytes <= 0 {
		f.maxBodyBytes = DefaultMaxBodyBytes
	}
	if f.logger == nil {
		f.logger = logging.Discard()
	}

	return f
}

// Fetch returns the body served at url. Any status other than 200 is an error
// wrapping ErrStatus.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Result, error) {
	requestID := uuid.NewString()
	log := f.logger.WithFields(logrus.Fields{"url": url, "request_id": requestID})

	if body, ok := f.lookup(ctx, url, log); ok {
		return &Result{Body: body, RequestID: requestID, Cached: true}, nil
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set(requestIDHeader, requestID)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	log = log.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		log.Warn("unexpected response status")
		return nil, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > f.maxBodyBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, f.maxBodyBytes)
	}

	log.WithField("bytes", len(body)).Debug("fetched alerts")
	f.store(ctx, url, body, log)

	return &Result{Body: body, RequestID: requestID}, nil
}

func (f *Fetcher) lookup(ctx context.Context, key string, log logrus.FieldLogger) ([]byte, bool) {
	if f.cache == nil || f.cacheTTL <= 0 {
		return nil, false
	}

	body, ok, err := f.cache.Get(ctx, key)
	if err != nil {
		log.WithError(err).Warn("cache lookup failed")
		return nil, false
	}
	if ok {
		log.Debug("cache hit")
	}
	return body, ok
}

func (f *Fetcher) store(ctx context.Context, key string, body []byte, log logrus.FieldLogger) {
	if f.cache == nil || f.cacheTTL <= 0 {
		return
	}

	if err := f.cache.Set(ctx, key, body, f.cacheTTL); err != nil {
		log.WithError(err).Warn("cache store failed")
	}
}
