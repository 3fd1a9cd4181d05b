// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query_test

import (
	"context"
	"strconv"
	"strings"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/coro/query"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

type request struct {
	path  string
	token string
}

type response struct {
	status int
	body   string
}

// fakeTransport answers requests from a route table and records them.
type fakeTransport struct {
	routes map[string][]response
	seen   []request
	fail   error
}

func (f *fakeTransport) send(_ context.Context, r request) (response, error) {
	f.seen = append(f.seen, r)
	if f.fail != nil {
		return response{}, f.fail
	}
	queue := f.routes[r.path]
	if len(queue) == 0 {
		return response{status: 404}, nil
	}
	if len(queue) > 1 {
		f.routes[r.path] = queue[1:]
	}
	return queue[0], nil
}

// gate is a response that arrives when opened.
type gate struct {
	open bool
	resp response
}

func (g *gate) Poll() (response, error) {
	if !g.open {
		return response{}, iox.ErrWouldBlock
	}
	return g.resp, nil
}

// slowTransport answers every request with a closed gate.
type slowTransport struct {
	gates []*gate
	seen  []request
}

func (s *slowTransport) send(_ context.Context, r request) query.Pending[response] {
	s.seen = append(s.seen, r)
	g := &gate{resp: response{status: 200, body: "slow " + r.path}}
	s.gates = append(s.gates, g)
	return g
}

func senders() *query.Registry[query.Sender[request, response]] {
	r := query.NewRegistry[query.Sender[request, response]]()
	query.RegisterSender(r, func(ctx context.Context, f *fakeTransport, req request) (response, error) {
		return f.send(ctx, req)
	})
	return r
}

func asyncSenders() *query.Registry[query.AsyncSender[request, response]] {
	r := query.NewRegistry[query.AsyncSender[request, response]]()
	query.RegisterAsyncSender(r, func(ctx context.Context, f *fakeTransport, req request) query.Pending[response] {
		return query.Ready[response](f.send(ctx, req))
	})
	query.RegisterAsyncSender(r, func(ctx context.Context, s *slowTransport, req request) query.Pending[response] {
		return s.send(ctx, req)
	})
	return r
}

func newExecutor(transport any) *query.Executor[request, response] {
	return &query.Executor[request, response]{
		Transport:    transport,
		Senders:      senders(),
		AsyncSenders: asyncSenders(),
	}
}

func bearer(token string, r request) (request, error) {
	r.token = token
	return r, nil
}

// lookupUser fetches a user's name and then their repository count.
func lookupUser(name string) query.Query[request, response, string] {
	return query.FromEff[request, response](func() kont.Eff[string] {
		return kont.Bind(coro.Emit[response](request{path: "/users/" + name}), func(user response) kont.Eff[string] {
			return kont.Bind(coro.Emit[response](request{path: "/users/" + name + "/repos"}), func(repos response) kont.Eff[string] {
				return kont.Pure(user.body + ":" + repos.body)
			})
		})
	})
}

// retryUnavailable resends a request until it is not answered with 503.
func retryUnavailable(r request) coro.Coroutine[request, response, response] {
	return coro.FromEff[request, response](coro.Loop(r, func(r request) kont.Eff[kont.Either[request, response]] {
		return coro.EmitBind(r, func(resp response) kont.Eff[kont.Either[request, response]] {
			if resp.status == 503 {
				return kont.Pure(kont.Left[request, response](r))
			}
			return kont.Pure(kont.Right[request](resp))
		})
	}))
}

// listPage requests page n of items and links to page n+1 until last.
func listPage(n, last int) query.Query[request, response, query.Page[request, response, []string]] {
	fetch := coro.OneYield[response]("list", coro.Lift(func(n int) request {
		return request{path: "/items?page=" + strconv.Itoa(n)}
	}))
	return query.Map(query.FromFactory(fetch, n), coro.Lift(func(resp response) query.Page[request, response, []string] {
		page := query.Page[request, response, []string]{Content: strings.Fields(resp.body)}
		if n < last {
			next := listPage(n+1, last)
			page.Next = &next
		}
		return page
	}))
}
