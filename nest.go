// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Pipe builds a fresh interceptor for one value yielded by a wrapped
// coroutine. The interceptor yields values of type Y2 outward, is resumed
// with values of type S2, and terminates with the S delivered back into
// the wrapped coroutine.
type Pipe[Y, Y2, S2, S any] func(Y) Coroutine[Y2, S2, S]

type nest[Y, Y2, S2, S, R any] struct {
	outer  Coroutine[Y, S, R]
	pipe   Pipe[Y, Y2, S2, S]
	active Coroutine[Y2, S2, S]
	lc     lifecycle
}

// Nest composes c with a per-yield interceptor.
//
// Every value v yielded by c is handed to pipe(v). Values the pipe yields
// are yielded outward, and sent values go to the pipe until it
// terminates; its terminal value is then delivered into c. A pipe that
// terminates on its first step resumes c without any outward yield. When
// c terminates, the composition terminates with the same value.
//
// Applying Nest repeatedly stacks interception layers; the last applied
// pipe is the one nearest to the driver.
func Nest[Y, Y2, S2, S, R any](c Coroutine[Y, S, R], pipe Pipe[Y, Y2, S2, S]) Coroutine[Y2, S2, R] {
	return &nest[Y, Y2, S2, S, R]{outer: c, pipe: pipe}
}

func (n *nest[Y, Y2, S2, S, R]) Start() (Step[Y2, R], error) {
	if err := n.lc.start(); err != nil {
		return Step[Y2, R]{}, err
	}
	return n.advance(n.outer.Start())
}

func (n *nest[Y, Y2, S2, S, R]) Resume(s S2) (Step[Y2, R], error) {
	if err := n.lc.resume(); err != nil {
		return Step[Y2, R]{}, err
	}
	ps, err := n.active.Resume(s)
	if err != nil {
		n.lc.settle(false, err)
		return Step[Y2, R]{}, err
	}
	if !ps.Done {
		return Yield[Y2, R](ps.Value), nil
	}
	n.active = nil
	return n.advance(n.outer.Resume(ps.Result))
}

// advance runs the outer coroutine until it terminates or a pipe
// suspends. Pipes that terminate immediately feed straight back into the
// outer coroutine.
func (n *nest[Y, Y2, S2, S, R]) advance(st Step[Y, R], err error) (Step[Y2, R], error) {
	for err == nil && !st.Done {
		p := n.pipe(st.Value)
		var ps Step[Y2, S]
		if ps, err = p.Start(); err != nil {
			break
		}
		if !ps.Done {
			n.active = p
			return Yield[Y2, R](ps.Value), nil
		}
		st, err = n.outer.Resume(ps.Result)
	}
	if err != nil {
		n.lc.settle(false, err)
		return Step[Y2, R]{}, err
	}
	n.lc.settle(true, nil)
	return Return[Y2](st.Result), nil
}
