// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
)

// Request is an HTTP request.
type Request struct {
	Method  string
	URL     string
	Content []byte
	Params  map[string]string
	Headers http.Header
}

// NewRequest returns a request for method and rawURL.
func NewRequest(method, rawURL string) Request {
	return Request{Method: method, URL: rawURL}
}

// GET returns a GET request for rawURL.
func GET(rawURL string) Request { return NewRequest(http.MethodGet, rawURL) }

// POST returns a POST request for rawURL carrying content.
func POST(rawURL string, content []byte) Request {
	return Request{Method: http.MethodPost, URL: rawURL, Content: content}
}

// PUT returns a PUT request for rawURL carrying content.
func PUT(rawURL string, content []byte) Request {
	return Request{Method: http.MethodPut, URL: rawURL, Content: content}
}

// PATCH returns a PATCH request for rawURL carrying content.
func PATCH(rawURL string, content []byte) Request {
	return Request{Method: http.MethodPatch, URL: rawURL, Content: content}
}

// DELETE returns a DELETE request for rawURL.
func DELETE(rawURL string) Request { return NewRequest(http.MethodDelete, rawURL) }

// HEAD returns a HEAD request for rawURL.
func HEAD(rawURL string) Request { return NewRequest(http.MethodHead, rawURL) }

// OPTIONS returns an OPTIONS request for rawURL.
func OPTIONS(rawURL string) Request { return NewRequest(http.MethodOptions, rawURL) }

// WithHeaders returns a copy of r with headers added.
// Header names are case-insensitive; added values replace existing ones.
func (r Request) WithHeaders(headers map[string]string) Request {
	h := r.Headers.Clone()
	if h == nil {
		h = make(http.Header, len(headers))
	}
	for k, v := range headers {
		h.Set(k, v)
	}
	r.Headers = h
	return r
}

// WithParams returns a copy of r with query parameters added.
func (r Request) WithParams(params map[string]string) Request {
	p := make(map[string]string, len(r.Params)+len(params))
	maps.Copy(p, r.Params)
	maps.Copy(p, params)
	r.Params = p
	return r
}

// WithPrefix returns a copy of r with prefix prepended to its URL.
func (r Request) WithPrefix(prefix string) Request {
	r.URL = prefix + r.URL
	return r
}

// WithJSON returns a copy of r carrying v encoded as JSON.
func (r Request) WithJSON(v any) (Request, error) {
	content, err := json.Marshal(v)
	if err != nil {
		return r, fmt.Errorf("web: encode request: %w", err)
	}
	r = r.WithHeaders(map[string]string{"Content-Type": "application/json"})
	r.Content = content
	return r, nil
}

// Header returns the first value of the named header.
func (r Request) Header(name string) string {
	return r.Headers.Get(name)
}

// HTTPRequest converts r to a *http.Request bound to ctx.
// Content without a Content-Type is sent as application/octet-stream.
func (r Request) HTTPRequest(ctx context.Context) (*http.Request, error) {
	u, err := url.Parse(r.URL)
	if err != nil {
		return nil, fmt.Errorf("web: parse url: %w", err)
	}
	if len(r.Params) > 0 {
		q := u.Query()
		for k, v := range r.Params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.Method, u.String(), bytes.NewReader(r.Content))
	if err != nil {
		return nil, fmt.Errorf("web: build request: %w", err)
	}
	req.Header = r.Headers.Clone()
	if req.Header == nil {
		req.Header = make(http.Header)
	}
	if len(r.Content) > 0 && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/octet-stream")
	}
	return req, nil
}

func (r Request) String() string {
	return fmt.Sprintf("%s %s", r.Method, r.URL)
}
