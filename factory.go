// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

// Callable is the introspection view shared by all factories.
// Wrapped returns the factory a decorator was applied to, or nil for a
// root factory.
type Callable interface {
	Name() string
	Wrapped() Callable
}

// Factory produces a fresh coroutine for every call.
// Decorators return new factories that keep the root's name and reference
// the factory they wrap, so introspection never depends on copying
// attributes.
type Factory[A, Y, S, R any] struct {
	name    string
	fn      func(A) Coroutine[Y, S, R]
	wrapped Callable
}

// NewFactory returns a root factory named name.
func NewFactory[A, Y, S, R any](name string, fn func(A) Coroutine[Y, S, R]) *Factory[A, Y, S, R] {
	return &Factory[A, Y, S, R]{name: name, fn: fn}
}

// wrap returns a factory decorating f with fn.
func wrap[A, Y, S, R any](f Callable, fn func(A) Coroutine[Y, S, R]) *Factory[A, Y, S, R] {
	return &Factory[A, Y, S, R]{name: f.Name(), fn: fn, wrapped: f}
}

// Call returns a new coroutine for a.
func (f *Factory[A, Y, S, R]) Call(a A) Coroutine[Y, S, R] {
	return f.fn(a)
}

// Name returns the name of the root factory.
func (f *Factory[A, Y, S, R]) Name() string {
	return f.name
}

// Wrapped returns the decorated factory, or nil for a root factory.
func (f *Factory[A, Y, S, R]) Wrapped() Callable {
	return f.wrapped
}

// Unwrap follows Wrapped references back to the root factory.
func Unwrap(c Callable) Callable {
	for {
		w := c.Wrapped()
		if w == nil {
			return c
		}
		c = w
	}
}

type oneYield[A, Y, S any] struct {
	fn  Func[A, Y]
	arg A
	lc  lifecycle
}

func (o *oneYield[A, Y, S]) Start() (Step[Y, S], error) {
	if err := o.lc.start(); err != nil {
		return Step[Y, S]{}, err
	}
	v, err := o.fn(o.arg)
	if err != nil {
		o.lc.settle(false, err)
		return Step[Y, S]{}, err
	}
	return Yield[Y, S](v), nil
}

func (o *oneYield[A, Y, S]) Resume(s S) (Step[Y, S], error) {
	if err := o.lc.resume(); err != nil {
		return Step[Y, S]{}, err
	}
	o.lc.settle(true, nil)
	return Return[Y](s), nil
}

// OneYield turns a plain function into a factory of one-step coroutines.
// Each coroutine yields fn(a), computed at Start, and terminates with the
// value sent in response.
func OneYield[S, A, Y any](name string, fn Func[A, Y]) *Factory[A, Y, S, S] {
	f := &Factory[A, Y, S, S]{name: name}
	f.fn = func(a A) Coroutine[Y, S, S] {
		return &oneYield[A, Y, S]{fn: fn, arg: a}
	}
	return f
}

// Nested returns a decorator that wraps every produced coroutine with
// Nest for each pipe in order. The first pipe is applied first and so is
// innermost; the last pipe sees sent values first.
func Nested[A, R, Y, S any](pipes ...Pipe[Y, Y, S, S]) func(*Factory[A, Y, S, R]) *Factory[A, Y, S, R] {
	return func(f *Factory[A, Y, S, R]) *Factory[A, Y, S, R] {
		return wrap(f, func(a A) Coroutine[Y, S, R] {
			c := f.Call(a)
			for _, p := range pipes {
				c = Nest(c, p)
			}
			return c
		})
	}
}

// YieldMapped returns a decorator applying YieldMap with fn.
func YieldMapped[A, S, R, Y, Y2 any](fn Func[Y, Y2]) func(*Factory[A, Y, S, R]) *Factory[A, Y2, S, R] {
	return func(f *Factory[A, Y, S, R]) *Factory[A, Y2, S, R] {
		return wrap(f, func(a A) Coroutine[Y2, S, R] {
			return YieldMap(fn, f.Call(a))
		})
	}
}

// SendMapped returns a decorator applying SendMap with fn.
func SendMapped[A, Y, R, S2, S any](fn Func[S2, S]) func(*Factory[A, Y, S, R]) *Factory[A, Y, S2, R] {
	return func(f *Factory[A, Y, S, R]) *Factory[A, Y, S2, R] {
		return wrap(f, func(a A) Coroutine[Y, S2, R] {
			return SendMap(fn, f.Call(a))
		})
	}
}

// ReturnMapped returns a decorator applying ReturnMap with fn.
func ReturnMapped[A, Y, S, R, R2 any](fn Func[R, R2]) func(*Factory[A, Y, S, R]) *Factory[A, Y, S, R2] {
	return func(f *Factory[A, Y, S, R]) *Factory[A, Y, S, R2] {
		return wrap(f, func(a A) Coroutine[Y, S, R2] {
			return ReturnMap(fn, f.Call(a))
		})
	}
}

// Compose returns the decorator applying inner, then outer:
// Compose(outer, inner)(f) == outer(inner(f)).
func Compose[F1, F2, F3 any](outer func(F2) F3, inner func(F1) F2) func(F1) F3 {
	return func(f F1) F3 {
		return outer(inner(f))
	}
}

// Chain composes decorators of one factory type right to left:
// Chain(d1, d2, d3)(f) == d1(d2(d3(f))).
func Chain[F any](decorators ...func(F) F) func(F) F {
	return func(f F) F {
		for i := len(decorators) - 1; i >= 0; i-- {
			f = decorators[i](f)
		}
		return f
	}
}
