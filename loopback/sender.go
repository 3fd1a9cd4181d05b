// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package loopback

import (
	"context"

	"code.hybscloud.com/coro/query"
	"code.hybscloud.com/iox"
)

// Register binds *Link[Req, Resp] senders into senders and async.
// A nil registry is skipped.
func Register[Req, Resp any](senders *query.Registry[query.Sender[Req, Resp]], async *query.Registry[query.AsyncSender[Req, Resp]]) {
	if senders != nil {
		query.RegisterSender(senders, Send[Req, Resp])
	}
	if async != nil {
		query.RegisterAsyncSender(async, SendAsync[Req, Resp])
	}
}

// Send submits req on l and waits for its response.
func Send[Req, Resp any](ctx context.Context, l *Link[Req, Resp], req Req) (Resp, error) {
	return query.Await[Resp](ctx, SendAsync(ctx, l, req))
}

// SendAsync returns a Pending that submits req on l and completes with its
// response.
func SendAsync[Req, Resp any](_ context.Context, l *Link[Req, Resp], req Req) query.Pending[Resp] {
	return &exchange[Req, Resp]{link: l, req: req}
}

// exchange is one request/response round trip on a link.
type exchange[Req, Resp any] struct {
	link      *Link[Req, Resp]
	req       Req
	submitted bool
	done      bool
	v         Resp
	err       error
}

func (x *exchange[Req, Resp]) Poll() (Resp, error) {
	if x.done {
		return x.v, x.err
	}
	var zero Resp
	if !x.submitted {
		if err := x.link.Submit(x.req); err != nil {
			if iox.IsWouldBlock(err) {
				return zero, err
			}
			return x.finish(zero, err)
		}
		x.submitted = true
	}
	v, err := x.link.Receive()
	if iox.IsWouldBlock(err) {
		return zero, err
	}
	return x.finish(v, err)
}

func (x *exchange[Req, Resp]) finish(v Resp, err error) (Resp, error) {
	x.done, x.v, x.err = true, v, err
	return v, err
}
