// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import "fmt"

// Coroutine is a suspendable computation that yields values of type Y,
// is resumed with values of type S, and terminates once with a value of
// type R.
//
// Start runs the computation to its first suspension or termination.
// Resume delivers a value and runs to the next suspension or termination.
// A step reports either a yielded value or the terminal result, never
// both. After termination, with a result or an error, both methods
// return ErrTerminated.
//
// A coroutine is owned by the driver currently stepping it and must not
// be stepped from two call sites.
type Coroutine[Y, S, R any] interface {
	Start() (Step[Y, R], error)
	Resume(S) (Step[Y, R], error)
}

// Step is the outcome of starting or resuming a coroutine.
// When Done is false, Value holds the yielded value and Result is zero.
// When Done is true, Result holds the terminal value and Value is zero.
type Step[Y, R any] struct {
	Value  Y
	Result R
	Done   bool
}

// Yield returns a suspended step carrying v.
func Yield[Y, R any](v Y) Step[Y, R] {
	return Step[Y, R]{Value: v}
}

// Return returns a terminal step carrying r.
func Return[Y, R any](r R) Step[Y, R] {
	return Step[Y, R]{Result: r, Done: true}
}

// lifecycle enforces the start-once, resume-until-terminated contract
// shared by every combinator.
type lifecycle uint8

const (
	created lifecycle = iota
	running
	terminated
)

func (l *lifecycle) start() error {
	switch *l {
	case running:
		return ErrStarted
	case terminated:
		return ErrTerminated
	}
	*l = running
	return nil
}

func (l *lifecycle) resume() error {
	switch *l {
	case created:
		return ErrNotStarted
	case terminated:
		return ErrTerminated
	}
	return nil
}

// settle marks the coroutine terminated when a step finished it.
func (l *lifecycle) settle(done bool, err error) {
	if done || err != nil {
		*l = terminated
	}
}

// Result resumes a started coroutine once with s and returns its terminal
// value. If the coroutine yields again instead, Result returns an error
// matching ErrNotTerminated.
func Result[Y, S, R any](c Coroutine[Y, S, R], s S) (R, error) {
	var zero R
	st, err := c.Resume(s)
	if err != nil {
		return zero, err
	}
	if !st.Done {
		return zero, fmt.Errorf("%w: yielded %v", ErrNotTerminated, st.Value)
	}
	return st.Result, nil
}

// Drive starts c and answers every yielded value with respond until c
// terminates. Yields and resumes strictly alternate. An error from
// respond ends the drive and is returned unmodified; c is abandoned.
func Drive[Y, S, R any](c Coroutine[Y, S, R], respond func(Y) (S, error)) (R, error) {
	st, err := c.Start()
	for err == nil && !st.Done {
		var s S
		if s, err = respond(st.Value); err != nil {
			break
		}
		st, err = c.Resume(s)
	}
	if err != nil {
		var zero R
		return zero, err
	}
	return st.Result, nil
}
