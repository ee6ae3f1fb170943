// Package backend performs the actual prediction call for admitted jobs by
// posting their payload to a predict endpoint over HTTP.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// maxResponseBytes bounds how much of a predict response is read.
const maxResponseBytes = 16 << 20

// badStatusError signals a non-2xx predict response so callers can tell a
// backend-side failure from a transport one.
type badStatusError struct {
	status int
	body   string
}

func (e badStatusError) Error() string {
	return fmt.Sprintf("predict endpoint returned %d: %s", e.status, e.body)
}

// IsBadStatus reports whether err indicates a non-2xx backend response.
func IsBadStatus(err error) bool {
	_, ok := err.(badStatusError)
	return ok
}

// HTTPInvoker posts job payloads to a predict endpoint.
type HTTPInvoker struct {
	url    string
	client *http.Client
}

// NewHTTPInvoker constructs an invoker for url. Requests carry no client-side
// timeout here; deadlines are the caller's responsibility via context.
func NewHTTPInvoker(url string, connectTimeout time.Duration) *HTTPInvoker {
	if connectTimeout <= 0 {
		connectTimeout = 10 * time.Second
	}
	tr := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   connectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &HTTPInvoker{
		url:    strings.TrimRight(url, "/"),
		client: &http.Client{Transport: tr, Timeout: 0},
	}
}

// URL returns the configured predict endpoint.
func (i *HTTPInvoker) URL() string { return i.url }

// Invoke POSTs payload as JSON and returns the raw response body.
func (i *HTTPInvoker) Invoke(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("predict request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read predict response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, badStatusError{status: resp.StatusCode, body: truncate(string(body), 256)}
	}
	return json.RawMessage(body), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
