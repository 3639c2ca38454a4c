// Package httpclient is a thin option-driven HTTP client used by remote storers
package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client HTTP client
type Client struct {
	httpClient *http.Client
	config     *config
}

// NewClient creates an HTTP client
func NewClient(opts ...Option) *Client {
	cfg := newConfig()
	applyOptions(cfg, opts)

	if cfg.transport == nil {
		cfg.transport = http.DefaultTransport.(*http.Transport).Clone()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   cfg.timeout,
			Transport: cfg.transport,
		},
		config: cfg,
	}
}

// Do performs a request; request-level options override client-level ones
func (c *Client) Do(ctx context.Context, req *Request, opts ...Option) (*Response, error) {
	reqCfg := newConfig()
	applyOptions(reqCfg, opts)
	finalCfg := c.config.merge(reqCfg)

	if ctx == nil {
		ctx = context.Background()
	}

	fullURL := req.URL
	if finalCfg.baseURL != "" && !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		fullURL = strings.TrimRight(finalCfg.baseURL, "/") + "/" + strings.TrimLeft(req.URL, "/")
	}
	req.URL = fullURL

	for k, vs := range finalCfg.queries {
		for _, v := range vs {
			req.Query.Add(k, v)
		}
	}
	for k, v := range finalCfg.headers {
		if _, exists := req.Headers[k]; !exists {
			req.Headers[k] = v
		}
	}

	startTime := time.Now()
	resp, err := c.doRequest(ctx, req, finalCfg)
	if err != nil {
		return nil, err
	}
	resp.Duration = time.Since(startTime)

	if finalCfg.afterResponse != nil {
		if err := finalCfg.afterResponse(resp); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

func (c *Client) doRequest(ctx context.Context, req *Request, cfg *config) (*Response, error) {
	httpReq, err := req.buildHTTPRequest()
	if err != nil {
		return nil, fmt.Errorf("build http request failed: %w", err)
	}

	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}
	httpReq = httpReq.WithContext(ctx)

	if cfg.beforeRequest != nil {
		if err := cfg.beforeRequest(httpReq); err != nil {
			return nil, fmt.Errorf("before request hook failed: %w", err)
		}
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}

	resp, err := newResponse(httpResp)
	if err != nil {
		return nil, fmt.Errorf("build response failed: %w", err)
	}
	return resp, nil
}

// Get sends a GET request
func (c *Client) Get(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return c.Do(ctx, NewGetRequest(url), opts...)
}

// Post sends a POST request
func (c *Client) Post(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return c.Do(ctx, NewPostRequest(url), opts...)
}

// Put sends a PUT request
func (c *Client) Put(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return c.Do(ctx, NewPutRequest(url), opts...)
}

// Delete sends a DELETE request
func (c *Client) Delete(ctx context.Context, url string, opts ...Option) (*Response, error) {
	return c.Do(ctx, NewDeleteRequest(url), opts...)
}
