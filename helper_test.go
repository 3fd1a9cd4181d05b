// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"strconv"
	"testing"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/kont"
)

// myMax yields its running maximum while it is below 100,
// then terminates with three times the maximum.
type myMax struct {
	val int
}

func newMyMax(start int) coro.Coroutine[int, int, int] {
	return &myMax{val: start}
}

func (m *myMax) Start() (coro.Step[int, int], error) {
	return m.next()
}

func (m *myMax) Resume(sent int) (coro.Step[int, int], error) {
	if sent > m.val {
		m.val = sent
	}
	return m.next()
}

func (m *myMax) next() (coro.Step[int, int], error) {
	if m.val >= 100 {
		return coro.Return[int](m.val * 3), nil
	}
	return coro.Yield[int, int](m.val), nil
}

// stringMax is myMax yielding decimal strings.
func stringMax(start int) coro.Coroutine[string, int, int] {
	return coro.YieldMap(coro.Lift(strconv.Itoa), newMyMax(start))
}

var maxFactory = coro.NewFactory("mymax", newMyMax)

// empty terminates on its first step.
type empty struct {
	result int
}

func (e empty) Start() (coro.Step[int, int], error) {
	return coro.Return[int](e.result), nil
}

func (e empty) Resume(int) (coro.Step[int, int], error) {
	return coro.Step[int, int]{}, coro.ErrTerminated
}

// tryUntilPositive yields the request, then a sentinel until a
// non-negative response arrives.
func tryUntilPositive(req string) coro.Coroutine[string, int, int] {
	return coro.FromEff[string, int](coro.EmitBind(req, rejectNegative))
}

func rejectNegative(resp int) kont.Eff[int] {
	if resp >= 0 {
		return kont.Pure(resp)
	}
	return coro.EmitBind("NOT POSITIVE!", rejectNegative)
}

// tryUntilEven yields the request, then a sentinel until an even
// response arrives.
func tryUntilEven(req string) coro.Coroutine[string, int, int] {
	return coro.FromEff[string, int](coro.EmitBind(req, rejectOdd))
}

func rejectOdd(resp int) kont.Eff[int] {
	if resp%2 == 0 {
		return kont.Pure(resp)
	}
	return coro.EmitBind("NOT EVEN!", rejectOdd)
}

// tryUntilEvenString is tryUntilEven for decimal string responses.
func tryUntilEvenString(req string) coro.Coroutine[string, string, string] {
	return coro.FromEff[string, string](coro.EmitBind(req, rejectOddString))
}

func rejectOddString(resp string) kont.Eff[string] {
	if n, err := strconv.Atoi(resp); err == nil && n%2 == 0 {
		return kont.Pure(resp)
	}
	return coro.EmitBind("NOT EVEN!", rejectOddString)
}

// mustStart starts c and requires a yield of want.
func mustStart[Y comparable, S, R any](t *testing.T, c coro.Coroutine[Y, S, R], want Y) {
	t.Helper()
	st, err := c.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if st.Done {
		t.Fatalf("Start terminated with %v, want yield %v", st.Result, want)
	}
	if st.Value != want {
		t.Fatalf("Start got %v, want %v", st.Value, want)
	}
}

// mustYield resumes c with s and requires a yield of want.
func mustYield[Y comparable, S, R any](t *testing.T, c coro.Coroutine[Y, S, R], s S, want Y) {
	t.Helper()
	st, err := c.Resume(s)
	if err != nil {
		t.Fatalf("Resume(%v): %v", s, err)
	}
	if st.Done {
		t.Fatalf("Resume(%v) terminated with %v, want yield %v", s, st.Result, want)
	}
	if st.Value != want {
		t.Fatalf("Resume(%v) got %v, want %v", s, st.Value, want)
	}
}

// mustResult finishes c with s and requires a result of want.
func mustResult[Y any, S any, R comparable](t *testing.T, c coro.Coroutine[Y, S, R], s S, want R) {
	t.Helper()
	got, err := coro.Result(c, s)
	if err != nil {
		t.Fatalf("Result(%v): %v", s, err)
	}
	if got != want {
		t.Fatalf("Result(%v) got %v, want %v", s, got, want)
	}
}
