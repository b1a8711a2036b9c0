package client

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/ravigohel142996/itihas-heritage-assistant/core/heritage"
	"github.com/ravigohel142996/itihas-heritage-assistant/pkg/placeholder"
)

// Client mirrors the server contract from the consuming application's side:
// transient failures are retried with exponential backoff, rate-limited
// responses are never retried, and terminal failures come back classified
// rather than as raw transport errors.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	baseDelay   time.Duration
}

// Option is a functional option for configuring Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithMaxAttempts sets the total number of attempts per call (default 3).
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// WithBaseDelay sets the first backoff delay (default 500ms).
func WithBaseDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.baseDelay = d
		}
	}
}

// New creates a caller for the heritage API at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrUnexpected)
	}

	c := &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		maxAttempts: 3,
		baseDelay:   500 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// FetchComposite retrieves the full description of a subject.
func (c *Client) FetchComposite(ctx context.Context, subject, language string) (heritage.CompositeResult, error) {
	var result heritage.CompositeResult
	err := c.post(ctx, "/api/v1/heritage/composite",
		map[string]string{"subject": subject, "language": language}, &result)
	return result, err
}

// FetchImage retrieves an image reference for a subject. On a terminal
// failure the returned result still carries a locally generated placeholder,
// so the caller can render something instead of crashing.
func (c *Client) FetchImage(ctx context.Context, subject, descriptiveContext string) (heritage.ImageResult, error) {
	var result heritage.ImageResult
	err := c.post(ctx, "/api/v1/heritage/image",
		map[string]string{"subject": subject, "context": descriptiveContext}, &result)
	if err != nil {
		return heritage.ImageResult{
			ImageRef:   placeholder.ImageURI(subject),
			Provider:   placeholder.Name,
			ServedFrom: heritage.ServedFromFallback,
			Status:     heritage.StatusDegraded,
			Reason:     reasonFor(err),
		}, err
	}
	return result, nil
}

// AnalyzeImages submits up to five images for description.
func (c *Client) AnalyzeImages(ctx context.Context, images [][]byte, language string) (heritage.AnalysisResult, error) {
	encoded := make([]string, len(images))
	for i, img := range images {
		encoded[i] = base64.StdEncoding.EncodeToString(img)
	}

	var result heritage.AnalysisResult
	err := c.post(ctx, "/api/v1/heritage/analyze",
		map[string]any{"images": encoded, "language": language}, &result)
	return result, err
}

// post executes one API call with the retry discipline. Server errors and
// connectivity failures are retried; HTTP 429 short-circuits immediately.
func (c *Client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	backoff := retry.WithMaxRetries(uint64(c.maxAttempts-1), retry.NewExponential(c.baseDelay))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		return c.attempt(ctx, path, body, out)
	})
	if err != nil {
		return classify(err)
	}
	return nil
}

// attempt runs a single HTTP exchange.
func (c *Client) attempt(ctx context.Context, path string, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return retry.RetryableError(fmt.Errorf("%w: %v", ErrUnavailable, err))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		// Not wrapped as retryable: retrying against a provider that already
		// signaled "too many requests" is explicitly disallowed.
		return fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= http.StatusInternalServerError:
		return retry.RetryableError(fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode))
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: status %d", ErrUnexpected, resp.StatusCode)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<20)).Decode(out); err != nil {
		return fmt.Errorf("%w: undecodable response: %v", ErrUnexpected, err)
	}
	return nil
}

// classify folds whatever survived the retry loop into a terminal class.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrRateLimited), errors.Is(err, ErrUnavailable), errors.Is(err, ErrUnexpected):
		return err
	default:
		// Context cancellation or backoff bookkeeping.
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
}

// reasonFor maps a terminal error onto the degraded-response reason codes.
func reasonFor(err error) heritage.Reason {
	if errors.Is(err, ErrRateLimited) {
		return heritage.ReasonRateLimited
	}
	return heritage.ReasonUpstreamExhausted
}
