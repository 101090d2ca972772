// Package httpclient is a thin JSON request wrapper bound to a fixed base URL.
//
// Every verb funnels through Client.Do: the request always carries
// Content-Type: application/json, caller headers override default headers,
// 2xx bodies are decoded into the caller's value and 204 decodes as an empty
// object. Any failure (transport, non-2xx status, undecodable body) comes
// back as a single *Error and is logged with the method and full URL first.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Headers are extra request headers. On a key collision the caller's value wins.
type Headers map[string]string

// Client holds no per-call state; it is safe for concurrent use.
type Client struct {
	baseURL    string
	headers    Headers
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// WithDefaultHeaders sets headers sent on every request, below caller headers.
func WithDefaultHeaders(h Headers) Option {
	return func(c *Client) {
		c.headers = maps.Clone(h)
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, headers Headers, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, headers, out)
}

func (c *Client) Post(ctx context.Context, path string, body any, headers Headers, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, headers, out)
}

func (c *Client) Put(ctx context.Context, path string, body any, headers Headers, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, headers, out)
}

func (c *Client) Patch(ctx context.Context, path string, body any, headers Headers, out any) error {
	return c.Do(ctx, http.MethodPatch, path, body, headers, out)
}

func (c *Client) Delete(ctx context.Context, path string, headers Headers, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, headers, out)
}

// Do sends one request and decodes a successful response into out, which
// must be a pointer or nil. A nil body sends no payload.
func (c *Client) Do(ctx context.Context, method, path string, body any, headers Headers, out any) error {
	url := c.baseURL + path

	err := c.do(ctx, method, url, body, headers, out)
	if err != nil {
		slog.Error("request failed", "method", method, "url", url, "error", err)
		return err
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, body any, headers Headers, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return newError(method, url, 0, fmt.Sprintf("encode request: %v", err), err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return newError(method, url, 0, fmt.Sprintf("create request: %v", err), err)
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newError(method, url, 0, err.Error(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return newError(method, url, resp.StatusCode, failureMessage(resp.StatusCode, raw), nil)
	}

	if resp.StatusCode == http.StatusNoContent {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal([]byte("{}"), out); err != nil {
			return newError(method, url, resp.StatusCode, fmt.Sprintf("decode response: %v", err), err)
		}
		return nil
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return newError(method, url, resp.StatusCode, fmt.Sprintf("decode response: %v", err), err)
	}
	return nil
}

// failureMessage picks the human readable part of an error body. reqres
// reports failures as {"error": "..."}; other APIs use {"message": "..."}.
func failureMessage(status int, raw []byte) string {
	fallback := fmt.Sprintf("request failed with status %d", status)

	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return fallback
	}
	if body.Message != "" {
		return body.Message
	}
	if body.Error != "" {
		return fallback + ": " + body.Error
	}
	return fallback
}
