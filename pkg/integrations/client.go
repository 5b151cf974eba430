package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/oss-plugin-hub/pluginhub/pkg/httputil"
)

// Client provides the HTTP plumbing shared by every external API client:
// response caching, retry with backoff, default headers and the common error
// taxonomy (not-found, rate-limited, transient network, malformed payload).
type Client struct {
	http    *http.Client
	cache   *httputil.Cache
	headers map[string]string
}

// NewClient creates a Client using cache for responses and headers as the
// default header set for every request. Pass nil headers when none are
// needed.
func NewClient(cache *httputil.Cache, headers map[string]string) *Client {
	return &Client{
		http:    NewHTTPClient(),
		cache:   cache,
		headers: headers,
	}
}

// Cached returns the cached value for key, or executes fetch under the
// default retry policy and stores the result. With refresh true the cache is
// bypassed.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	if !refresh {
		if ok, _ := c.cache.Get(key, v); ok {
			return nil
		}
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	_ = c.cache.Set(key, v)
	return nil
}

// Get performs a GET request and JSON-decodes the response into v.
// A payload that fails to decode is wrapped as retryable once at this layer
// since truncated bodies are usually transient.
func (c *Client) Get(ctx context.Context, url string, v any) error {
	body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return httputil.Retryable(fmt.Errorf("decode %s: %w", url, err))
	}
	return nil
}

// PostJSON sends payload as a JSON body and decodes the JSON response into v.
func (c *Client) PostJSON(ctx context.Context, url string, payload, v any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	body, err := c.do(ctx, http.MethodPost, url, data)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return httputil.Retryable(fmt.Errorf("decode %s: %w", url, err))
	}
	return nil
}

// GetText performs a GET request and returns the raw response body.
func (c *Client) GetText(ctx context.Context, url string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	defer body.Close()
	data, err := io.ReadAll(body)
	return string(data), err
}

func (c *Client) do(ctx context.Context, method, url string, payload []byte) (io.ReadCloser, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, httputil.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}

	if err := statusError(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}
