// Package analysis provides the HTTP client for a remote association
// analysis service speaking the /process + /progress job contract.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"gorelate/domain/assoc"
	"gorelate/internal/errors"
	"gorelate/ports"
)

// Client implements ports.Analyzer against a remote service. Submission is
// retried a bounded number of times; job progress is polled on a fixed
// interval until a terminal state or the overall deadline.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	submitAttempts int
	pollInterval   time.Duration
	pollTimeout    time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithRetry sets the number of submission attempts.
func WithRetry(attempts int) Option {
	return func(c *Client) { c.submitAttempts = attempts }
}

// WithPolling sets the poll interval and the overall polling deadline.
func WithPolling(interval, timeout time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = interval
		c.pollTimeout = timeout
	}
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:        baseURL,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
		submitAttempts: 3,
		pollInterval:   time.Second,
		pollTimeout:    5 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Analyze submits the request and blocks until the service reaches a
// terminal state, returning the result as one atomic snapshot.
func (c *Client) Analyze(ctx context.Context, req ports.SubmitRequest, onProgress ports.ProgressFunc) (*assoc.Result, error) {
	resp, err := c.submit(ctx, req)
	if err != nil {
		return nil, err
	}

	switch resp.Status {
	case ports.StatusSuccess:
		// Synchronous service; no polling needed.
		return resp.Results, nil
	case ports.StatusError:
		// Service-reported message is surfaced verbatim.
		return nil, errors.ExternalServiceError("analysis", fmt.Errorf("%s", resp.Message))
	case ports.StatusProcessing:
		if resp.TaskID == "" {
			return nil, errors.ExternalServiceError("analysis", fmt.Errorf("processing response without task_id"))
		}
		return c.poll(ctx, resp.TaskID, onProgress)
	default:
		return nil, errors.ExternalServiceError("analysis", fmt.Errorf("unknown response status %q", resp.Status))
	}
}

// submit posts the request, retrying up to submitAttempts times before
// surfacing the last failure.
func (c *Client) submit(ctx context.Context, req ports.SubmitRequest) (*ports.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode analysis request")
	}

	var lastErr error
	for attempt := 1; attempt <= c.submitAttempts; attempt++ {
		if attempt > 1 {
			log.Printf("[AnalysisClient] Submission attempt %d/%d", attempt, c.submitAttempts)
		}
		resp, err := c.postJSON(ctx, c.baseURL+"/process", body)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, errors.Wrap(ctx.Err(), "analysis submission canceled")
		case <-time.After(c.pollInterval):
		}
	}
	return nil, errors.ExternalServiceError("analysis", lastErr)
}

// poll re-queries job status on the fixed interval until the job is terminal
// or the overall deadline passes. The deadline is deliberate: the upstream
// contract has no timeout of its own.
func (c *Client) poll(ctx context.Context, taskID string, onProgress ports.ProgressFunc) (*assoc.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.pollTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return nil, errors.Timeout(fmt.Sprintf("analysis did not complete within %s", c.pollTimeout))
			}
			return nil, errors.Wrap(ctx.Err(), "analysis polling canceled")
		case <-ticker.C:
		}

		resp, err := c.getJSON(ctx, fmt.Sprintf("%s/progress/%s", c.baseURL, taskID))
		if err != nil {
			// A failed poll terminates the loop and surfaces the error.
			return nil, errors.ExternalServiceError("analysis", err)
		}

		switch resp.Status {
		case ports.StatusSuccess:
			if resp.Results == nil {
				return nil, errors.ExternalServiceError("analysis", fmt.Errorf("success response without results"))
			}
			return resp.Results, nil
		case ports.StatusError:
			return nil, errors.ExternalServiceError("analysis", fmt.Errorf("%s", resp.Message))
		default:
			if onProgress != nil {
				onProgress(resp.Progress, resp.StepsCompleted, resp.ETA)
			}
		}
	}
}

func (c *Client) postJSON(ctx context.Context, url string, body []byte) (*ports.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	return c.do(httpReq)
}

func (c *Client) getJSON(ctx context.Context, url string) (*ports.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.do(httpReq)
}

func (c *Client) do(req *http.Request) (*ports.Response, error) {
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	payload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var resp ports.Response
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response (HTTP %d): %w", httpResp.StatusCode, err)
	}
	// Error payloads arrive with non-200 codes too; the decoded status field
	// is authoritative. Anything undecodable was caught above.
	if resp.Status == "" {
		return nil, fmt.Errorf("response missing status (HTTP %d)", httpResp.StatusCode)
	}
	return &resp, nil
}
