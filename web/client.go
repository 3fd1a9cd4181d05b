// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"code.hybscloud.com/coro/query"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "coro-web/1"
)

var (
	// Senders holds the synchronous send handlers for web transports.
	Senders = query.NewRegistry[query.Sender[Request, Response]]()

	// AsyncSenders holds the asynchronous send handlers for web transports.
	AsyncSenders = query.NewRegistry[query.AsyncSender[Request, Response]]()
)

func init() {
	query.RegisterSender(Senders, Send)
	query.RegisterAsyncSender(AsyncSenders, SendAsync)
}

// NewExecutor returns an executor for transport using the package
// registries.
func NewExecutor(transport any) *query.Executor[Request, Response] {
	return &query.Executor[Request, Response]{
		Transport:    transport,
		Senders:      Senders,
		AsyncSenders: AsyncSenders,
	}
}

// Config configures an HTTP client.
type Config struct {
	// Timeout limits each request. Defaults to 30s.
	Timeout time.Duration `validate:"gt=0"`
	// UserAgent is sent with requests that carry none.
	UserAgent string `validate:"required"`
	// Headers are added to requests that do not set them.
	Headers map[string]string
	// RequestIDHeader names a header set to a fresh UUID on every request
	// that does not carry it. Empty disables request IDs.
	RequestIDHeader string
}

// ApplyDefaults fills in zero-value fields with defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = defaultUserAgent
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("web: invalid config: %w", err)
	}
	return nil
}

// NewClient returns an *http.Client configured by cfg.
func NewClient(cfg Config) (*http.Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	headers := make(http.Header, len(cfg.Headers)+1)
	for k, v := range cfg.Headers {
		headers.Set(k, v)
	}
	headers.Set("User-Agent", cfg.UserAgent)
	return &http.Client{
		Timeout:   cfg.Timeout,
		Transport: &defaultHeaders{
			next:      http.DefaultTransport,
			headers:   headers,
			requestID: http.CanonicalHeaderKey(cfg.RequestIDHeader),
		},
	}, nil
}

// defaultHeaders sets headers missing from outgoing requests.
type defaultHeaders struct {
	next      http.RoundTripper
	headers   http.Header
	requestID string
}

func (d *defaultHeaders) RoundTrip(req *http.Request) (*http.Response, error) {
	var clone *http.Request
	set := func(k string, vs []string) {
		if clone == nil {
			clone = req.Clone(req.Context())
		}
		clone.Header[k] = vs
	}
	for k, vs := range d.headers {
		if req.Header.Get(k) == "" {
			set(k, vs)
		}
	}
	if d.requestID != "" && req.Header.Get(d.requestID) == "" {
		set(d.requestID, []string{uuid.NewString()})
	}
	if clone != nil {
		req = clone
	}
	return d.next.RoundTrip(req)
}

// Send sends r with c and reads the whole response.
// Non-2xx responses are not errors.
func Send(ctx context.Context, c *http.Client, r Request) (Response, error) {
	req, err := r.HTTPRequest(ctx)
	if err != nil {
		return Response{}, err
	}
	resp, err := c.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()
	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("web: read response: %w", err)
	}
	return Response{StatusCode: resp.StatusCode, Content: content, Headers: resp.Header}, nil
}

// SendAsync sends r with c on a new goroutine.
func SendAsync(ctx context.Context, c *http.Client, r Request) query.Pending[Response] {
	return query.Spawn(func() (Response, error) {
		return Send(ctx, c, r)
	})
}
