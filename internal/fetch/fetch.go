// Package fetch downloads vendor files with config-driven retry logic.
package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"ogparsing/internal/config"
)

// ErrUnexpectedStatusCode indicates an HTTP response with unexpected status.
var ErrUnexpectedStatusCode = errors.New("unexpected status code")

// Fetcher downloads order guide files referenced by import jobs.
type Fetcher struct {
	client      *http.Client
	retryPolicy *config.RetryPolicy
}

// NewFetcher creates a fetcher with a default retry policy.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		retryPolicy: &config.RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    500,
			MaxDelayMs:        10000,
			BackoffMultiplier: 2.0,
			TimeoutSec:        60,
		},
	}
}

// NewFetcherWithConfig creates a fetcher with a custom retry policy.
func NewFetcherWithConfig(retryPolicy *config.RetryPolicy) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: retryPolicy.GetTimeout(),
		},
		retryPolicy: retryPolicy,
	}
}

// Fetch downloads the file at url, retrying transient failures per the
// retry policy. The whole file is returned in memory because processors
// need to seek while probing formats.
func (f *Fetcher) Fetch(url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= f.retryPolicy.MaxAttempts; attempt++ {
		body, err := f.fetchOnce(url)
		if err == nil {
			return body, nil
		}

		lastErr = fmt.Errorf("download failed (attempt %d/%d): %w", attempt, f.retryPolicy.MaxAttempts, err)

		if attempt < f.retryPolicy.MaxAttempts && isRetryable(err) {
			if delay := f.retryPolicy.GetRetryDelay(attempt + 1); delay > 0 {
				time.Sleep(delay)
			}

			continue
		}

		break
	}

	return nil, lastErr
}

func (f *Fetcher) fetchOnce(url string) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}

// ReadLocalFile reads a file from disk, for the import CLI.
func (f *Fetcher) ReadLocalFile(filePath string) ([]byte, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read local file %s: %w", filePath, err)
	}

	return content, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%v: %d", ErrUnexpectedStatusCode, e.code)
}

func (e *statusError) Unwrap() error { return ErrUnexpectedStatusCode }

// isRetryable reports whether the failure is worth another attempt. Network
// errors always are; HTTP errors only for temporary status codes.
func isRetryable(err error) bool {
	var se *statusError
	if !errors.As(err, &se) {
		return true
	}

	switch se.code {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}

	return false
}
