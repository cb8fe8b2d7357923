package remote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"time"
)

// IHttpStatusHandler is an interface for handling HTTP request statuses
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// StatusError is returned for responses outside the 2xx range
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.StatusCode == http.StatusTooManyRequests {
		return fmt.Sprintf("rate limit exceeded (status %d): %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Body)
}

// HTTPClientWithRetries wraps an HTTP Client with retry capabilities
type HTTPClientWithRetries struct {
	Client         *http.Client
	Opts           RetryOptions
	StatusHandler  IHttpStatusHandler
	LimiterManager IRateLimiterManager
}

// NewHTTPClientWithRetries creates a new HTTP Client with retry capabilities
func NewHTTPClientWithRetries(opts RetryOptions, handler IHttpStatusHandler, limiterManager IRateLimiterManager) *HTTPClientWithRetries {
	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClientWithRetries{
		Client:         client,
		Opts:           opts,
		StatusHandler:  handler,
		LimiterManager: limiterManager,
	}
}

// ExecuteRequest executes an HTTP request with retry logic. Requests with a
// body must be replayable through req.GetBody to be retried.
func (c *HTTPClientWithRetries) ExecuteRequest(req *http.Request) (*http.Response, []byte, time.Duration, error) {
	var lastErr error
	ctx := req.Context()

	for attempt := 0; attempt < c.Opts.MaxRetries; attempt++ {
		if attempt > 0 {
			log.Printf("%s: Retry %d/%d after error: %v",
				c.Opts.LogPrefix, attempt, c.Opts.MaxRetries-1, lastErr)

			c.onRetry()

			backoffDuration := calculateBackoffWithJitter(c.Opts.BaseBackoff, attempt)
			log.Printf("%s: Waiting %.2fs before retry", c.Opts.LogPrefix, backoffDuration.Seconds())
			if err := sleepContext(ctx, backoffDuration); err != nil {
				lastErr = err
				break
			}

			replay, err := rewind(req)
			if err != nil {
				lastErr = err
				break
			}
			req = replay
		}

		if c.LimiterManager != nil {
			if limiter := c.LimiterManager.GetLimiterForURL(req.URL); limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					lastErr = fmt.Errorf("rate limiter wait failed: %w", err)
					c.onRequest("error")
					break
				}
			}
		}

		requestStart := time.Now()
		resp, err := c.Client.Do(req)
		requestDuration := time.Since(requestStart)

		if err != nil {
			lastErr = fmt.Errorf("request failed after %.2fs: %w", requestDuration.Seconds(), err)
			c.onRequest(transportStatus(err))
			if ctx.Err() != nil {
				break
			}
			continue
		}

		responseBody, err := processResponse(resp)
		resp.Body.Close()
		if err != nil {
			if isRetryableError(resp.StatusCode) {
				lastErr = err
				c.onRequest("rate_limited")
				continue
			}
			if resp.StatusCode == http.StatusNotFound {
				c.onRequest("not_found")
			} else {
				c.onRequest("error")
			}
			return resp, nil, requestDuration, err
		}

		c.onRequest("success")
		return resp, responseBody, requestDuration, nil
	}

	return nil, nil, 0, fmt.Errorf("all %d attempts failed, last error: %w",
		c.Opts.MaxRetries, lastErr)
}

func (c *HTTPClientWithRetries) onRequest(status string) {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRequest(status)
	}
}

func (c *HTTPClientWithRetries) onRetry() {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRetry()
	}
}

// rewind returns a copy of req with a fresh body for another attempt
func rewind(req *http.Request) (*http.Request, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return req, nil
	}
	if req.GetBody == nil {
		return nil, fmt.Errorf("request body of %s %s cannot be replayed", req.Method, req.URL)
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, fmt.Errorf("failed to replay request body: %w", err)
	}
	replay := req.Clone(req.Context())
	replay.Body = body
	return replay, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func transportStatus(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	return "error"
}

// calculateBackoffWithJitter calculates backoff duration with jitter for retries
func calculateBackoffWithJitter(baseBackoff time.Duration, attempt int) time.Duration {
	if attempt <= 0 {
		return baseBackoff
	}

	multiplier := uint(1) << uint(attempt-1)
	backoff := time.Duration(float64(baseBackoff) * float64(multiplier))
	if backoff < 2 {
		return backoff
	}
	jitter := time.Duration(rand.Int63n(int64(backoff / 2)))
	return backoff + jitter
}

// processResponse reads the body of a 2xx response
func processResponse(resp *http.Response) ([]byte, error) {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}

	return responseBody, nil
}

// isRetryableError determines if a given HTTP status code should trigger a retry
func isRetryableError(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusInternalServerError ||
		statusCode == http.StatusBadGateway ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}
