package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/liftrecap/internal/models"
	"github.com/claude/liftrecap/internal/report"
)

const maxAttempts = 3

// StatusError is a non-2xx response from the server.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.StatusCode, e.Message)
}

// Client sends workout exports to a liftrecap server over HTTP.
type Client struct {
	serverURL  string
	apiKey     string
	httpClient *http.Client
	retryDelay time.Duration
}

// NewClient creates a new HTTP client for the liftrecap server.
func NewClient(serverURL, apiKey string) *Client {
	return &Client{
		serverURL: strings.TrimRight(serverURL, "/"),
		apiKey:    apiKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		retryDelay: time.Second,
	}
}

// Recap uploads a CSV export and returns the recap for year (0 = latest).
func (c *Client) Recap(ctx context.Context, csv []byte, year int, units models.Units) (*report.Report, error) {
	q := url.Values{}
	if year != 0 {
		q.Set("year", strconv.Itoa(year))
	}
	if units != "" {
		q.Set("units", string(units))
	}

	var rep report.Report
	if err := c.post(ctx, "/api/v1/recap", q, csv, &rep); err != nil {
		return nil, err
	}
	return &rep, nil
}

// Years uploads a CSV export and returns the years it covers, latest first.
func (c *Client) Years(ctx context.Context, csv []byte) ([]int, error) {
	var body struct {
		Years []int `json:"years"`
	}
	if err := c.post(ctx, "/api/v1/years", nil, csv, &body); err != nil {
		return nil, err
	}
	return body.Years, nil
}

// post sends the CSV and decodes a 200 response into out. Transport errors and
// 5xx responses are retried up to 3 times with exponential backoff; 4xx
// responses fail immediately.
func (c *Client) post(ctx context.Context, path string, query url.Values, csv []byte, out any) error {
	target := c.serverURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			delay := time.Duration(1<<uint(attempt-1)) * c.retryDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(csv))
		if err != nil {
			return fmt.Errorf("building request: %w", err)
		}
		req.Header.Set("Content-Type", "text/csv")
		if c.apiKey != "" {
			req.Header.Set("X-API-Key", c.apiKey)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("reading response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("decoding response: %w", err)
			}
			return nil
		}

		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
		if resp.StatusCode < http.StatusInternalServerError {
			return statusErr
		}
		lastErr = statusErr
	}

	return fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

// errorMessage extracts the "error" field of a JSON error body, falling back
// to the raw text.
func errorMessage(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}
