// Package platform implements the authenticated HTTP clients for the
// wrapped platform APIs.
//
// Each service client shares the same base behavior: bearer-token auth,
// JSON in and out, response shaping to compact structs, read-through
// caching for GET-shaped calls, and an audit entry per call. Constructors
// never touch the network; the first request does.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"opsmcp/internal/audit"
	"opsmcp/internal/cache"
	"opsmcp/internal/config"
)

// maxResponseBytes bounds how much of a platform response is read.
const maxResponseBytes = 4 << 20

// APIError is a non-2xx platform response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("platform: status %d: %s", e.Status, e.Body)
}

// client is the shared base under every service client.
type client struct {
	service string
	baseURL string
	token   string
	ttl     time.Duration
	http    *http.Client
	cache   *cache.Store
	audit   *audit.Log
}

func newClient(service string, cfg config.Service, cs *cache.Store, al *audit.Log) (*client, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("platform: %s service is not configured", service)
	}
	return &client{
		service: service,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		ttl:     cfg.CacheTTL,
		http:    &http.Client{Timeout: 30 * time.Second},
		cache:   cs,
		audit:   al,
	}, nil
}

// getJSON performs a cached GET and decodes the response into out.
// tool is the audit identity of the operation.
func (c *client) getJSON(ctx context.Context, tool, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	key := cache.Key(c.service, http.MethodGet, target)
	if c.cache != nil {
		if body, ok, err := c.cache.Get(key); err == nil && ok {
			c.record(tool, path, audit.StatusCacheHit, 0, "")
			return json.Unmarshal(body, out)
		}
	}

	start := time.Now()
	body, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		c.record(tool, path, audit.StatusError, time.Since(start), err.Error())
		return err
	}
	c.record(tool, path, audit.StatusOK, time.Since(start), "")

	if c.cache != nil {
		_ = c.cache.Set(key, body, c.ttl)
	}
	return json.Unmarshal(body, out)
}

// postJSON performs an uncached POST with a JSON payload.
func (c *client) postJSON(ctx context.Context, tool, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("platform: encoding request: %w", err)
	}

	start := time.Now()
	body, err := c.do(ctx, http.MethodPost, c.baseURL+path, data)
	if err != nil {
		c.record(tool, path, audit.StatusError, time.Since(start), err.Error())
		return err
	}
	c.record(tool, path, audit.StatusOK, time.Since(start), "")
	return json.Unmarshal(body, out)
}

func (c *client) do(ctx context.Context, method, target string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("platform: building request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("platform: %s %s: %w", method, target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("platform: reading response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Body: truncate(string(body), 200)}
	}
	return body, nil
}

// record is nil-safe: a server running without an audit store still
// serves calls.
func (c *client) record(tool, target, status string, d time.Duration, detail string) {
	if c.audit == nil {
		return
	}
	_ = c.audit.Write(audit.Entry{
		Tool:     tool,
		Target:   c.service + target,
		Status:   status,
		Duration: d,
		Detail:   detail,
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
