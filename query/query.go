// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"context"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Authenticate transforms a request before it reaches the transport.
type Authenticate[Req any] func(Req) (Req, error)

// AuthMethod applies credentials of type C to a request.
type AuthMethod[C, Req any] func(C, Req) (Req, error)

// Auth binds credentials to method.
func Auth[C, Req any](credentials C, method AuthMethod[C, Req]) Authenticate[Req] {
	return func(req Req) (Req, error) {
		return method(credentials, req)
	}
}

// Query describes how to obtain an R by exchanging requests for responses.
//
// Resolve builds a fresh coroutine per run. Execute and ExecuteAsync
// replace the coroutine protocol entirely when set, and are checked
// before Resolve. A query may provide any combination of the three.
type Query[Req, Resp, R any] struct {
	Resolve      func() coro.Coroutine[Req, Resp, R]
	Execute      func(ctx context.Context, transport any, auth Authenticate[Req]) (R, error)
	ExecuteAsync func(ctx context.Context, transport any, auth Authenticate[Req]) Pending[R]
}

// FromFactory returns a query resolved by calling f with arg.
func FromFactory[A, Req, Resp, R any](f *coro.Factory[A, Req, Resp, R], arg A) Query[Req, Resp, R] {
	return Query[Req, Resp, R]{
		Resolve: func() coro.Coroutine[Req, Resp, R] { return f.Call(arg) },
	}
}

// FromEff returns a query resolved by a kont computation built per run.
// The computation performs coro.Yielded[Req, Resp] to send a request.
func FromEff[Req, Resp, R any](build func() kont.Eff[R]) Query[Req, Resp, R] {
	return Query[Req, Resp, R]{
		Resolve: func() coro.Coroutine[Req, Resp, R] {
			return coro.FromEff[Req, Resp](build())
		},
	}
}

// Send returns a query that sends req once and returns the response.
func Send[Req, Resp any](req Req) Query[Req, Resp, Resp] {
	return FromFactory(coro.OneYield[Resp]("send", coro.Lift(func(r Req) Req { return r })), req)
}

// Map returns a query whose result is fn applied to q's result.
// Execution overrides of q are preserved.
func Map[Req, Resp, R, R2 any](q Query[Req, Resp, R], fn coro.Func[R, R2]) Query[Req, Resp, R2] {
	var out Query[Req, Resp, R2]
	if q.Resolve != nil {
		out.Resolve = func() coro.Coroutine[Req, Resp, R2] {
			return coro.ReturnMap(fn, q.Resolve())
		}
	}
	if q.Execute != nil {
		out.Execute = func(ctx context.Context, transport any, auth Authenticate[Req]) (R2, error) {
			r, err := q.Execute(ctx, transport, auth)
			if err != nil {
				var zero R2
				return zero, err
			}
			return fn(r)
		}
	}
	if q.ExecuteAsync != nil {
		out.ExecuteAsync = func(ctx context.Context, transport any, auth Authenticate[Req]) Pending[R2] {
			return &mapped[R, R2]{p: q.ExecuteAsync(ctx, transport, auth), fn: fn}
		}
	}
	return out
}

// mapped applies fn once to the result of p.
type mapped[R, R2 any] struct {
	p    Pending[R]
	fn   coro.Func[R, R2]
	done bool
	v    R2
	err  error
}

func (m *mapped[R, R2]) Poll() (R2, error) {
	if m.done {
		return m.v, m.err
	}
	r, err := m.p.Poll()
	if err != nil {
		var zero R2
		if iox.IsWouldBlock(err) {
			return zero, err
		}
		m.done, m.err = true, err
		return zero, err
	}
	m.v, m.err = m.fn(r)
	m.done = true
	return m.v, m.err
}
