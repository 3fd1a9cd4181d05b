// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"context"
	"fmt"
	"sync"
	"time"

	"code.hybscloud.com/coro"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "code.hybscloud.com/coro/query"

// Executor runs queries against one transport.
//
// Senders and AsyncSenders are consulted by the transport's dynamic type.
// Pipes wrap every resolved coroutine in order, so the last pipe is the
// one nearest the transport. Authenticate, when set, is applied to every
// request after all pipes. A nil Logger discards log events. A nil Tracer
// or Meter uses the global OpenTelemetry provider.
//
// An Executor must not be copied after first use.
type Executor[Req, Resp any] struct {
	Transport    any
	Senders      *Registry[Sender[Req, Resp]]
	AsyncSenders *Registry[AsyncSender[Req, Resp]]
	Authenticate Authenticate[Req]
	Pipes        []coro.Pipe[Req, Req, Resp, Resp]
	Logger       *zerolog.Logger
	Tracer       trace.Tracer
	Meter        metric.Meter

	once    sync.Once
	metrics *metrics
}

func (ex *Executor[Req, Resp]) logger() zerolog.Logger {
	if ex.Logger == nil {
		return zerolog.Nop()
	}
	return *ex.Logger
}

func (ex *Executor[Req, Resp]) tracer() trace.Tracer {
	if ex.Tracer == nil {
		return otel.Tracer(tracerName)
	}
	return ex.Tracer
}

// auth returns the executor's authentication, or the identity.
func (ex *Executor[Req, Resp]) auth() Authenticate[Req] {
	if ex.Authenticate == nil {
		return func(req Req) (Req, error) { return req, nil }
	}
	return ex.Authenticate
}

// observation tracks the serial, span, logger and metrics of one run.
type observation struct {
	op        string
	transport string
	serial    Serial
	start     time.Time
	span      trace.Span
	log       zerolog.Logger
	metrics   *metrics
}

// begin assigns a serial and opens the span and logger of one run.
func (ex *Executor[Req, Resp]) begin(ctx context.Context, op string) (context.Context, *observation) {
	o := &observation{
		op:        op,
		transport: fmt.Sprintf("%T", ex.Transport),
		serial:    nextSerial(),
		start:     time.Now(),
	}
	ctx, o.span = ex.tracer().Start(ctx, op, trace.WithAttributes(
		attribute.Int64("coro.serial", int64(o.serial)),
		attribute.String("coro.transport", o.transport),
	))
	o.log = ex.logger().With().
		Uint32("serial", o.serial).
		Str("transport", o.transport).
		Logger()
	o.metrics = ex.instruments(o.log)
	return ctx, o
}

// end closes the span of a run that sent requests requests and records
// its metrics.
func (o *observation) end(ctx context.Context, requests int, err error) {
	o.span.SetAttributes(attribute.Int("coro.requests", requests))
	if err != nil {
		o.span.RecordError(err)
		o.span.SetStatus(codes.Error, err.Error())
		o.log.Warn().Err(err).Int("requests", requests).Msg("query failed")
	} else {
		o.log.Debug().Int("requests", requests).Msg("query done")
	}
	o.span.End()
	o.metrics.record(ctx, o.op, o.transport, requests, time.Since(o.start), err)
}

// resolve builds the coroutine of q wrapped by the executor's pipes and
// authentication.
func resolve[Req, Resp, R any](ex *Executor[Req, Resp], q Query[Req, Resp, R]) (coro.Coroutine[Req, Resp, R], error) {
	if q.Resolve == nil {
		return nil, ErrInvalidQuery
	}
	c := q.Resolve()
	for _, pipe := range ex.Pipes {
		c = coro.Nest(c, pipe)
	}
	if ex.Authenticate != nil {
		c = coro.Nest(c, authPipe[Resp](ex.Authenticate))
	}
	return c, nil
}

// authPipe yields each request authenticated and returns the response
// unchanged.
func authPipe[Resp, Req any](authenticate Authenticate[Req]) coro.Pipe[Req, Req, Resp, Resp] {
	return coro.OneYield[Resp]("authenticate", coro.Func[Req, Req](authenticate)).Call
}

// Execute runs q on ex's transport and returns its result.
//
// Without an Execute override, the resolved coroutine is driven to
// completion: every yielded request is sent with the sender registered for
// the transport's type, and the coroutine is resumed with the response.
// Transport errors are returned unmodified.
func Execute[Req, Resp, R any](ctx context.Context, ex *Executor[Req, Resp], q Query[Req, Resp, R]) (R, error) {
	ctx, o := ex.begin(ctx, "query.Execute")

	var (
		result   R
		requests int
		err      error
	)
	if q.Execute != nil {
		o.log.Debug().Msg("execute override")
		result, err = q.Execute(ctx, ex.Transport, ex.auth())
	} else {
		result, requests, err = drive(ctx, ex, q, o.log)
	}
	o.end(ctx, requests, err)
	return result, err
}

func drive[Req, Resp, R any](ctx context.Context, ex *Executor[Req, Resp], q Query[Req, Resp, R], log zerolog.Logger) (R, int, error) {
	var zero R
	c, err := resolve(ex, q)
	if err != nil {
		return zero, 0, err
	}
	var (
		send     Sender[Req, Resp]
		requests int
	)
	result, err := coro.Drive(c, func(req Req) (Resp, error) {
		if send == nil {
			s, err := ex.Senders.Lookup(ex.Transport)
			if err != nil {
				var none Resp
				return none, err
			}
			send = s
		}
		requests++
		log.Debug().Int("step", requests).Msg("send")
		return send(ctx, ex.Transport, req)
	})
	return result, requests, err
}
