// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package loopback

import (
	"context"
	"errors"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
	"github.com/rs/zerolog"
)

// queueCapacity bounds each direction of a link.
const queueCapacity = 4

// ErrClosed reports an operation on a closed link.
var ErrClosed = errors.New("loopback: link closed")

// Handler answers one request.
type Handler[Req, Resp any] func(ctx context.Context, req Req) (Resp, error)

// reply is a handler outcome in transit.
type reply[Resp any] struct {
	v   Resp
	err error
}

// Link is an in-process request/response channel.
//
// Exactly one goroutine may act as the client (Submit, Receive) and one as
// the server (Serve) at a time. Responses are delivered in request order.
type Link[Req, Resp any] struct {
	closed    atomix.Uint32
	requests  lfq.SPSC[Req]
	responses lfq.SPSC[reply[Resp]]
}

// New creates an open link.
func New[Req, Resp any]() *Link[Req, Resp] {
	l := &Link[Req, Resp]{}
	l.requests.Init(queueCapacity)
	l.responses.Init(queueCapacity)
	return l
}

// Close closes the link. Serve returns and later operations fail with
// ErrClosed. Close is idempotent.
func (l *Link[Req, Resp]) Close() {
	l.closed.Add(1)
}

// Closed reports whether Close has been called.
func (l *Link[Req, Resp]) Closed() bool {
	return l.closed.Load() != 0
}

// Submit enqueues req for the server.
// Returns iox.ErrWouldBlock if the request queue is full.
func (l *Link[Req, Resp]) Submit(req Req) error {
	if l.Closed() {
		return ErrClosed
	}
	return l.requests.Enqueue(&req)
}

// Receive dequeues the next response.
// Returns iox.ErrWouldBlock if no response is available yet, or the
// handler's error for a request the server failed.
func (l *Link[Req, Resp]) Receive() (Resp, error) {
	r, err := l.responses.Dequeue()
	if err != nil {
		var zero Resp
		if l.Closed() {
			return zero, ErrClosed
		}
		return zero, err
	}
	return r.v, r.err
}

type serveConfig struct {
	log zerolog.Logger
}

// ServeOption configures Serve.
type ServeOption func(*serveConfig)

// WithLogger logs served requests to log.
func WithLogger(log zerolog.Logger) ServeOption {
	return func(c *serveConfig) { c.log = log }
}

// Serve answers requests with h until the link is closed or ctx is done.
// It runs on the calling goroutine and returns nil after Close, or the
// context's error.
func (l *Link[Req, Resp]) Serve(ctx context.Context, h Handler[Req, Resp], opts ...ServeOption) error {
	cfg := serveConfig{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.log.Debug().Msg("serve")

	var bo iox.Backoff
	served := 0
	for {
		if err := l.stopped(ctx); err != nil {
			cfg.log.Debug().Int("served", served).Err(err).Msg("serve stopped")
			return ignoreClosed(err)
		}
		req, err := l.requests.Dequeue()
		if err != nil {
			bo.Wait()
			continue
		}
		bo.Reset()

		v, herr := h(ctx, req)
		served++
		if herr != nil {
			cfg.log.Debug().Int("served", served).Err(herr).Msg("handler failed")
		}
		r := reply[Resp]{v: v, err: herr}
		for {
			err := l.responses.Enqueue(&r)
			if err == nil {
				break
			}
			if err := l.stopped(ctx); err != nil {
				return ignoreClosed(err)
			}
			bo.Wait()
		}
		bo.Reset()
	}
}

func (l *Link[Req, Resp]) stopped(ctx context.Context) error {
	if l.Closed() {
		return ErrClosed
	}
	return ctx.Err()
}

func ignoreClosed(err error) error {
	if errors.Is(err, ErrClosed) {
		return nil
	}
	return err
}
