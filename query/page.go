// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"context"
	"iter"
)

// Page is one page of a paginated result.
// Next is the query for the following page, or nil on the last page.
type Page[Req, Resp, T any] struct {
	Content T
	Next    *Query[Req, Resp, Page[Req, Resp, T]]
}

// Paginate returns an iterator over the contents of first and every page
// that follows it. Iteration stops after the first error.
func Paginate[Req, Resp, T any](ctx context.Context, ex *Executor[Req, Resp], first Query[Req, Resp, Page[Req, Resp, T]]) iter.Seq2[T, error] {
	return paginate(first, func(q Query[Req, Resp, Page[Req, Resp, T]]) (Page[Req, Resp, T], error) {
		return Execute(ctx, ex, q)
	})
}

// PaginateAsync is like Paginate but executes each page with ExecuteAsync
// and awaits it.
func PaginateAsync[Req, Resp, T any](ctx context.Context, ex *Executor[Req, Resp], first Query[Req, Resp, Page[Req, Resp, T]]) iter.Seq2[T, error] {
	return paginate(first, func(q Query[Req, Resp, Page[Req, Resp, T]]) (Page[Req, Resp, T], error) {
		return ExecuteAsync(ctx, ex, q).Await(ctx)
	})
}

func paginate[Req, Resp, T any](first Query[Req, Resp, Page[Req, Resp, T]], fetch func(Query[Req, Resp, Page[Req, Resp, T]]) (Page[Req, Resp, T], error)) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for next := &first; next != nil; {
			page, err := fetch(*next)
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !yield(page.Content, nil) {
				return
			}
			next = page.Next
		}
	}
}
