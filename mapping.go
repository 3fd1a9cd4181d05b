// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Func is a transform over one value channel of a coroutine.
// Its error is returned to the driver unmodified.
type Func[A, B any] func(A) (B, error)

// Lift adapts an infallible function into a Func.
func Lift[A, B any](f func(A) B) Func[A, B] {
	return func(a A) (B, error) {
		return f(a), nil
	}
}

type yieldMap[Y, Y2, S, R any] struct {
	inner Coroutine[Y, S, R]
	f     Func[Y, Y2]
	lc    lifecycle
}

// YieldMap returns a coroutine yielding f(v) for every value v yielded by
// c. Sent values and the terminal value pass through unchanged. f is
// applied once per yield, when the yield happens.
func YieldMap[Y, Y2, S, R any](f Func[Y, Y2], c Coroutine[Y, S, R]) Coroutine[Y2, S, R] {
	return &yieldMap[Y, Y2, S, R]{inner: c, f: f}
}

func (m *yieldMap[Y, Y2, S, R]) Start() (Step[Y2, R], error) {
	if err := m.lc.start(); err != nil {
		return Step[Y2, R]{}, err
	}
	return m.apply(m.inner.Start())
}

func (m *yieldMap[Y, Y2, S, R]) Resume(s S) (Step[Y2, R], error) {
	if err := m.lc.resume(); err != nil {
		return Step[Y2, R]{}, err
	}
	return m.apply(m.inner.Resume(s))
}

func (m *yieldMap[Y, Y2, S, R]) apply(st Step[Y, R], err error) (Step[Y2, R], error) {
	var out Step[Y2, R]
	switch {
	case err != nil:
	case st.Done:
		out = Return[Y2](st.Result)
	default:
		var v Y2
		if v, err = m.f(st.Value); err == nil {
			out = Yield[Y2, R](v)
		}
	}
	m.lc.settle(out.Done, err)
	return out, err
}

type sendMap[Y, S, S2, R any] struct {
	inner Coroutine[Y, S, R]
	f     Func[S2, S]
	lc    lifecycle
}

// SendMap returns a coroutine that passes every sent value through f
// before delivering it to c. The driver sends values of type S2; c only
// observes f's output. Yields and the terminal value pass through.
func SendMap[Y, S, S2, R any](f Func[S2, S], c Coroutine[Y, S, R]) Coroutine[Y, S2, R] {
	return &sendMap[Y, S, S2, R]{inner: c, f: f}
}

func (m *sendMap[Y, S, S2, R]) Start() (Step[Y, R], error) {
	if err := m.lc.start(); err != nil {
		return Step[Y, R]{}, err
	}
	st, err := m.inner.Start()
	m.lc.settle(st.Done, err)
	return st, err
}

func (m *sendMap[Y, S, S2, R]) Resume(s S2) (Step[Y, R], error) {
	if err := m.lc.resume(); err != nil {
		return Step[Y, R]{}, err
	}
	v, err := m.f(s)
	if err != nil {
		m.lc.settle(false, err)
		return Step[Y, R]{}, err
	}
	st, err := m.inner.Resume(v)
	m.lc.settle(st.Done, err)
	return st, err
}

type returnMap[Y, S, R, R2 any] struct {
	inner Coroutine[Y, S, R]
	f     Func[R, R2]
	lc    lifecycle
}

// ReturnMap returns a coroutine terminating with f(r) where r is c's
// terminal value. Yields and sends pass through. A coroutine that
// terminates on its first step has f applied to that value too.
func ReturnMap[Y, S, R, R2 any](f Func[R, R2], c Coroutine[Y, S, R]) Coroutine[Y, S, R2] {
	return &returnMap[Y, S, R, R2]{inner: c, f: f}
}

func (m *returnMap[Y, S, R, R2]) Start() (Step[Y, R2], error) {
	if err := m.lc.start(); err != nil {
		return Step[Y, R2]{}, err
	}
	return m.apply(m.inner.Start())
}

func (m *returnMap[Y, S, R, R2]) Resume(s S) (Step[Y, R2], error) {
	if err := m.lc.resume(); err != nil {
		return Step[Y, R2]{}, err
	}
	return m.apply(m.inner.Resume(s))
}

func (m *returnMap[Y, S, R, R2]) apply(st Step[Y, R], err error) (Step[Y, R2], error) {
	var out Step[Y, R2]
	switch {
	case err != nil:
	case st.Done:
		var r R2
		if r, err = m.f(st.Result); err == nil {
			out = Return[Y](r)
		}
	default:
		out = Yield[Y, R2](st.Value)
	}
	m.lc.settle(out.Done, err)
	return out, err
}
