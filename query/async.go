// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"context"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/iox"
)

// Run is an asynchronous execution of a query.
//
// Run is a Pending: Poll advances the run as far as it can without
// waiting and returns iox.ErrWouldBlock while a response is outstanding.
// A Run must be polled from one goroutine at a time.
type Run[Req, Resp, R any] struct {
	ctx context.Context
	ex  *Executor[Req, Resp]
	obs *observation

	c        coro.Coroutine[Req, Resp, R]
	override Pending[R]
	send     AsyncSender[Req, Resp]
	pending  Pending[Resp]
	requests int
	started  bool

	done   bool
	result R
	err    error
}

// ExecuteAsync starts q on ex's transport without waiting for a response.
//
// With an ExecuteAsync override, the returned Run completes with the
// override's result. Otherwise every yielded request is sent with the
// async sender registered for the transport's type.
func ExecuteAsync[Req, Resp, R any](ctx context.Context, ex *Executor[Req, Resp], q Query[Req, Resp, R]) *Run[Req, Resp, R] {
	ctx, obs := ex.begin(ctx, "query.ExecuteAsync")
	r := &Run[Req, Resp, R]{ctx: ctx, ex: ex, obs: obs}
	if q.ExecuteAsync != nil {
		obs.log.Debug().Msg("execute override")
		r.override = q.ExecuteAsync(ctx, ex.Transport, ex.auth())
		return r
	}
	c, err := resolve(ex, q)
	if err != nil {
		var zero R
		r.finish(zero, err)
		return r
	}
	r.c = c
	return r
}

// Serial returns the run's serial.
func (r *Run[Req, Resp, R]) Serial() Serial { return r.obs.serial }

// Poll returns the result once the query has terminated.
func (r *Run[Req, Resp, R]) Poll() (R, error) {
	var zero R
	if r.done {
		return r.result, r.err
	}
	if r.override != nil {
		v, err := r.override.Poll()
		if iox.IsWouldBlock(err) {
			return zero, err
		}
		return r.finish(v, err)
	}

	st, err := r.step()
	for err == nil {
		if st.Done {
			return r.finish(st.Result, nil)
		}
		if err = r.dispatch(st.Value); err != nil {
			break
		}
		st, err = r.step()
	}
	if iox.IsWouldBlock(err) {
		return zero, err
	}
	return r.finish(zero, err)
}

// Await waits for the run to complete or ctx to be done.
func (r *Run[Req, Resp, R]) Await(ctx context.Context) (R, error) {
	return Await[R](ctx, r)
}

// step starts the coroutine, or resumes it with the outstanding response
// once that response is available.
func (r *Run[Req, Resp, R]) step() (coro.Step[Req, R], error) {
	if !r.started {
		r.started = true
		return r.c.Start()
	}
	resp, err := r.pending.Poll()
	if err != nil {
		return coro.Step[Req, R]{}, err
	}
	r.pending = nil
	return r.c.Resume(resp)
}

func (r *Run[Req, Resp, R]) dispatch(req Req) error {
	if r.send == nil {
		send, err := r.ex.AsyncSenders.Lookup(r.ex.Transport)
		if err != nil {
			return err
		}
		r.send = send
	}
	r.requests++
	r.obs.log.Debug().Int("step", r.requests).Msg("send")
	r.pending = r.send(r.ctx, r.ex.Transport, req)
	return nil
}

func (r *Run[Req, Resp, R]) finish(result R, err error) (R, error) {
	r.done = true
	r.result, r.err = result, err
	r.c, r.override, r.pending = nil, nil, nil
	r.obs.end(r.ctx, r.requests, err)
	return result, err
}
