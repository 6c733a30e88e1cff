// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response is a completed HTTP response. Body is nil for status-only calls.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Success reports a 2xx status.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type Client struct {
	httpClient *http.Client
}

// NewClient returns a client; a zero timeout keeps net/http's default (none).
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// PostJSON sends body with a JSON content type plus the given headers and
// reads the whole response body regardless of status. The returned error is
// non-nil only when no complete response was obtained.
func (c *Client) PostJSON(ctx context.Context, url string, headers map[string]string, body []byte) (*Response, error) {
	resp, err := c.post(ctx, url, headers, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// PostJSONStatus is PostJSON for callers that only need the status line.
// The body is discarded and a failure while draining it is ignored, so the
// error is non-nil only when no response headers arrived.
func (c *Client) PostJSONStatus(ctx context.Context, url string, headers map[string]string, body []byte) (*Response, error) {
	resp, err := c.post(ctx, url, headers, body)
	if err != nil {
		return nil, err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}, nil
}

func (c *Client) post(ctx context.Context, url string, headers map[string]string, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.httpClient.Do(req)
}
