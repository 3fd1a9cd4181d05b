// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"fmt"

	"code.hybscloud.com/kont"
)

// effCoroutine steps a kont computation one effect at a time.
// Each Yielded effect becomes one coroutine suspension.
type effCoroutine[Y, S, R any] struct {
	expr kont.Expr[R]
	susp *kont.Suspension[R]
	lc   lifecycle
}

// FromEff adapts a Cont-world computation into a coroutine.
// The computation suspends with Emit; any other effect terminates the
// coroutine with ErrUnhandledEffect.
func FromEff[Y, S, R any](m kont.Eff[R]) Coroutine[Y, S, R] {
	return FromExpr[Y, S](kont.Reify(m))
}

// FromExpr adapts an Expr-world computation into a coroutine.
// Evaluation is lazy: nothing runs before Start.
func FromExpr[Y, S, R any](e kont.Expr[R]) Coroutine[Y, S, R] {
	return &effCoroutine[Y, S, R]{expr: e}
}

func (c *effCoroutine[Y, S, R]) Start() (Step[Y, R], error) {
	if err := c.lc.start(); err != nil {
		return Step[Y, R]{}, err
	}
	return c.await(kont.StepExpr(c.expr))
}

func (c *effCoroutine[Y, S, R]) Resume(s S) (Step[Y, R], error) {
	if err := c.lc.resume(); err != nil {
		return Step[Y, R]{}, err
	}
	susp := c.susp
	c.susp = nil
	return c.await(susp.Resume(s))
}

// await turns a stepping outcome into a coroutine step.
// Returns the terminal step on completion, or keeps the suspension for
// the next Resume.
func (c *effCoroutine[Y, S, R]) await(result R, susp *kont.Suspension[R]) (Step[Y, R], error) {
	if susp == nil {
		c.lc.settle(true, nil)
		return Return[Y](result), nil
	}
	op, ok := susp.Op().(Yielded[Y, S])
	if !ok {
		err := fmt.Errorf("%w: %T", ErrUnhandledEffect, susp.Op())
		susp.Discard()
		c.lc.settle(false, err)
		return Step[Y, R]{}, err
	}
	c.susp = susp
	return Yield[Y, R](op.Value), nil
}

// Loop runs a recursive coroutine body (Cont-world).
// step returns Left(nextState) to continue or Right(result) to finish.
func Loop[T, A any](initial T, step func(T) kont.Eff[kont.Either[T, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[T, A]) kont.Eff[A] {
		if next, ok := e.GetLeft(); ok {
			return Loop(next, step)
		}
		result, _ := e.GetRight()
		return kont.Pure(result)
	})
}
