package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"poolwatch/model"
)

// Client performs JSON GET requests against a ConnectionPool.
type Client struct {
	pool    *ConnectionPool
	headers map[string]string
	// decodeError extracts a provider message from a non-2xx body.
	decodeError func(body []byte) string
}

var errNoEndpoint = errors.New("no endpoint configured")

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	base := c.pool.Get()
	if base == "" {
		return model.NewProviderError(0, "", errNoEndpoint)
	}
	uri := base + path
	if len(query) > 0 {
		uri += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return model.NewProviderError(0, "build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.pool.Client().Do(req)
	if err != nil {
		return model.NewProviderError(0, "GET "+path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.NewProviderError(resp.StatusCode, "read body", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := ""
		if c.decodeError != nil {
			msg = c.decodeError(body)
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		slog.Debug("provider request failed", "method", http.MethodGet, "uri", uri, "status", resp.StatusCode, "message", msg)
		return model.NewProviderError(resp.StatusCode, msg, nil)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return model.NewProviderError(resp.StatusCode, fmt.Sprintf("decode %s", path), err)
	}
	return nil
}

func escape(segment string) string {
	return url.PathEscape(strings.TrimSpace(segment))
}
