package httpclient

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Request HTTP request wrapper
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Query   url.Values

	bodyBytes []byte
}

// NewRequest creates a request
func NewRequest(method, urlStr string) *Request {
	return &Request{
		Method:  method,
		URL:     urlStr,
		Headers: make(map[string]string),
		Query:   make(url.Values),
	}
}

// NewGetRequest creates a GET request
func NewGetRequest(urlStr string) *Request {
	return NewRequest(http.MethodGet, urlStr)
}

// NewPostRequest creates a POST request
func NewPostRequest(urlStr string) *Request {
	return NewRequest(http.MethodPost, urlStr)
}

// NewPutRequest creates a PUT request
func NewPutRequest(urlStr string) *Request {
	return NewRequest(http.MethodPut, urlStr)
}

// NewDeleteRequest creates a DELETE request
func NewDeleteRequest(urlStr string) *Request {
	return NewRequest(http.MethodDelete, urlStr)
}

// WithHeader sets a header
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// WithQuery sets a query parameter
func (r *Request) WithQuery(key, value string) *Request {
	r.Query.Set(key, value)
	return r
}

// WithBody sets a raw body (buffered so the request can be rebuilt)
func (r *Request) WithBody(body io.Reader) *Request {
	if body != nil {
		if data, err := io.ReadAll(body); err == nil {
			r.bodyBytes = data
		}
	}
	return r
}

// WithJSON sets a JSON body and content type
func (r *Request) WithJSON(data interface{}) *Request {
	if data == nil {
		return r
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return r
	}
	r.bodyBytes = jsonData
	r.Headers["Content-Type"] = "application/json"
	return r
}

// buildHTTPRequest materializes an http.Request
func (r *Request) buildHTTPRequest() (*http.Request, error) {
	fullURL := r.URL
	if len(r.Query) > 0 {
		if strings.Contains(fullURL, "?") {
			fullURL += "&" + r.Query.Encode()
		} else {
			fullURL += "?" + r.Query.Encode()
		}
	}

	var body io.Reader
	if len(r.bodyBytes) > 0 {
		body = bytes.NewReader(r.bodyBytes)
	}

	req, err := http.NewRequest(r.Method, fullURL, body)
	if err != nil {
		return nil, err
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}
