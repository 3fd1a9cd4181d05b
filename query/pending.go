// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"context"

	"code.hybscloud.com/iox"
)

// Pending is a value that may not be available yet.
//
// Poll returns the value once it is available, or iox.ErrWouldBlock while
// it is not. Once Poll has returned a result other than iox.ErrWouldBlock,
// every later call returns the same result.
type Pending[T any] interface {
	Poll() (T, error)
}

// ready is a Pending that completed before it was returned.
type ready[T any] struct {
	v   T
	err error
}

func (r ready[T]) Poll() (T, error) { return r.v, r.err }

// Ready returns a Pending completed with v and err.
func Ready[T any](v T, err error) Pending[T] {
	return ready[T]{v: v, err: err}
}

type outcome[T any] struct {
	v   T
	err error
}

// spawned is a Pending completed by a goroutine.
type spawned[T any] struct {
	ch   chan outcome[T]
	out  outcome[T]
	done bool
}

func (s *spawned[T]) Poll() (T, error) {
	if !s.done {
		select {
		case s.out = <-s.ch:
			s.done = true
		default:
			var zero T
			return zero, iox.ErrWouldBlock
		}
	}
	return s.out.v, s.out.err
}

// Spawn runs fn on a new goroutine and returns a Pending that completes
// with its result. Poll must not be called concurrently.
func Spawn[T any](fn func() (T, error)) Pending[T] {
	s := &spawned[T]{ch: make(chan outcome[T], 1)}
	go func() {
		v, err := fn()
		s.ch <- outcome[T]{v: v, err: err}
	}()
	return s
}

// Await polls p until it completes or ctx is done.
// It backs off adaptively between polls that would block.
func Await[T any](ctx context.Context, p Pending[T]) (T, error) {
	var backoff iox.Backoff
	for {
		v, err := p.Poll()
		if !iox.IsWouldBlock(err) {
			return v, err
		}
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		backoff.Wait()
	}
}
