// Package webhook notifies HTTP endpoints after a compilation database
// has been generated.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/a5ehren/compiledb/pkg/config"
)

// Notice is the JSON payload posted to webhook endpoints.
type Notice struct {
	// OutputFile is the path the database was written to.
	OutputFile string `json:"output_file"`

	// Records is the number of compile commands in the database.
	Records int `json:"records"`

	// Sources lists the build logs (or "stdin"/"make") the records
	// came from.
	Sources []string `json:"sources,omitempty"`

	// Duration is how long generation took.
	Duration time.Duration `json:"duration"`

	// GeneratedAt is when the database was written.
	GeneratedAt time.Time `json:"generated_at"`
}

// Client sends generation notices to webhook endpoints.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a new webhook client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

// Response contains the result of a webhook request.
type Response struct {
	StatusCode int
	Duration   time.Duration
	Err        error
}

// Success returns true if the webhook was sent successfully (2xx status).
func (r *Response) Success() bool {
	return r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts a notice to a webhook endpoint. Failures are reported in
// the Response, never as a hard error: notification must not fail the
// generation run.
func (c *Client) Send(ctx context.Context, notice *Notice, wh config.WebhookConfig) *Response {
	start := time.Now()
	resp := &Response{}

	payload, err := json.Marshal(notice)
	if err != nil {
		resp.Err = fmt.Errorf("marshaling notice: %w", err)
		resp.Duration = time.Since(start)
		return resp
	}

	timeout := wh.Timeout
	if timeout == 0 {
		timeout = config.DefaultWebhookTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.URL, bytes.NewReader(payload))
	if err != nil {
		resp.Err = fmt.Errorf("creating request: %w", err)
		resp.Duration = time.Since(start)
		return resp
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "compiledb-webhook")
	if wh.Token != "" {
		req.Header.Set("Authorization", "Bearer "+wh.Token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		resp.Err = fmt.Errorf("request failed: %w", err)
		resp.Duration = time.Since(start)
		return resp
	}
	defer httpResp.Body.Close()

	// Drain so the connection can be reused; the body itself is not
	// interesting.
	_, _ = io.Copy(io.Discard, io.LimitReader(httpResp.Body, 64*1024))

	resp.StatusCode = httpResp.StatusCode
	resp.Duration = time.Since(start)

	if resp.StatusCode >= 400 {
		resp.Err = fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return resp
}
