// Package fetcher provides the HTTP collaborator used to retrieve feed and
// transcript bytes: a bounded-timeout GET with a bounded retry policy.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

// Add Prometheus metrics
var (
	fetchAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "podcastmcp_fetch_attempts_total",
		Help: "The total number of HTTP fetch attempts",
	})

	fetchErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "podcastmcp_fetch_errors_total",
		Help: "The total number of failed HTTP fetch attempts",
	})

	fetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "podcastmcp_fetch_duration_seconds",
		Help:    "Duration of successful HTTP fetches",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10), // Start at 10ms, double each bucket, 10 buckets
	})
)

const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 2
)

// FetchError wraps any failure to retrieve a URL: timeout, DNS, connection or
// a non-2xx status. It is always reported to the caller, never swallowed, so
// an empty-but-valid response stays distinguishable from a failed fetch.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves raw bytes from a URL within a bounded timeout.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher is the production Fetcher: a shared http.Client with a
// per-request timeout and exponential-backoff retries for transient failures.
type HTTPFetcher struct {
	client     *http.Client
	timeout    time.Duration
	maxRetries uint64
	userAgent  string
}

// New creates an HTTPFetcher. A zero timeout falls back to DefaultTimeout.
func New(timeout time.Duration, maxRetries uint64) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{
		client:     &http.Client{},
		timeout:    timeout,
		maxRetries: maxRetries,
		userAgent:  "podcast-mcp/1.0",
	}
}

// Fetch GETs the URL and returns the response body. Server errors and
// transport failures are retried with exponential backoff up to the
// configured attempt budget; client errors (4xx) are not retried.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 250 * time.Millisecond
	bo.MaxInterval = 5 * time.Second

	var body []byte
	operation := func() error {
		fetchAttempts.Inc()

		data, err := f.fetchOnce(ctx, url)
		if err != nil {
			fetchErrors.Inc()
			return err
		}
		body = data
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, f.maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		if fe, ok := err.(*FetchError); ok {
			return nil, fe
		}
		return nil, &FetchError{URL: url, Err: err}
	}
	return body, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, url string) ([]byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(&FetchError{URL: url, Err: err})
	}
	req.Header.Set("User-Agent", f.userAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		log.WithFields(log.Fields{
			"url":   url,
			"error": err,
		}).Warn("Fetch attempt failed")
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ferr := &FetchError{URL: url, Err: fmt.Errorf("unexpected status code: %d", resp.StatusCode)}
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, backoff.Permanent(ferr)
		}
		return nil, ferr
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	fetchDuration.Observe(time.Since(start).Seconds())
	return data, nil
}
