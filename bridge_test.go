// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/coro"
	"code.hybscloud.com/kont"
)

// effMax is myMax written as a kont computation.
func effMax(start int) kont.Eff[int] {
	return coro.Loop(start, func(val int) kont.Eff[kont.Either[int, int]] {
		if val >= 100 {
			return kont.Pure(kont.Right[int, int](val * 3))
		}
		return coro.EmitBind(val, func(sent int) kont.Eff[kont.Either[int, int]] {
			return kont.Pure(kont.Left[int, int](max(val, sent)))
		})
	})
}

func TestFromEff(t *testing.T) {
	c := coro.FromEff[int, int](effMax(4))
	mustStart(t, c, 4)
	mustYield(t, c, 7, 7)
	mustYield(t, c, 6, 7)
	mustResult(t, c, 102, 306)
}

func TestFromEffMatchesStruct(t *testing.T) {
	sends := []int{3, 50, 20, 99, 150}
	got := trace(coro.FromEff[int, int](effMax(4)), sends)
	want := trace(newMyMax(4), sends)
	if got != want {
		t.Fatalf("kont trace %q, want %q", got, want)
	}
}

func TestFromEffPure(t *testing.T) {
	st, err := coro.FromEff[int, int](kont.Pure(99)).Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !st.Done || st.Result != 99 {
		t.Fatalf("got %+v, want immediate result 99", st)
	}
}

func TestFromExpr(t *testing.T) {
	c := coro.FromExpr[int, int](kont.Reify(effMax(120)))
	st, err := c.Start()
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !st.Done || st.Result != 360 {
		t.Fatalf("got %+v, want immediate result 360", st)
	}
}

func TestFromEffLazy(t *testing.T) {
	ran := false
	m := kont.Bind(kont.Pure(1), func(n int) kont.Eff[int] {
		ran = true
		return coro.Emit[int](n)
	})
	c := coro.FromEff[int, int](m)
	if ran {
		t.Fatal("computation ran before Start")
	}
	mustStart(t, c, 1)
	mustResult(t, c, 5, 5)
}

// ping is an effect the coroutine bridge does not handle.
type ping struct {
	kont.Phantom[int]
}

func TestFromEffUnhandledEffect(t *testing.T) {
	c := coro.FromEff[int, int](kont.Perform(ping{}))
	if _, err := c.Start(); !errors.Is(err, coro.ErrUnhandledEffect) {
		t.Fatalf("got %v, want ErrUnhandledEffect", err)
	}
	if _, err := c.Resume(1); !errors.Is(err, coro.ErrTerminated) {
		t.Fatalf("got %v, want ErrTerminated", err)
	}
}

func TestFromEffMismatchedSendType(t *testing.T) {
	// Yielded[int, string] is not the Yielded[int, int] the coroutine handles.
	c := coro.FromEff[int, int](kont.Then(coro.Emit[string](1), kont.Pure(0)))
	if _, err := c.Start(); !errors.Is(err, coro.ErrUnhandledEffect) {
		t.Fatalf("got %v, want ErrUnhandledEffect", err)
	}
}

func TestLoopCounter(t *testing.T) {
	// Sum every sent value until a zero arrives.
	sum := coro.Loop(0, func(acc int) kont.Eff[kont.Either[int, int]] {
		return coro.EmitBind(acc, func(n int) kont.Eff[kont.Either[int, int]] {
			if n == 0 {
				return kont.Pure(kont.Right[int, int](acc))
			}
			return kont.Pure(kont.Left[int, int](acc + n))
		})
	})
	got, err := coro.Drive(coro.FromEff[int, int](sum), func(acc int) (int, error) {
		if acc >= 10 {
			return 0, nil
		}
		return acc + 1, nil
	})
	if err != nil {
		t.Fatalf("Drive: %v", err)
	}
	// 0 -> 1 -> 3 -> 7 -> 15
	if got != 15 {
		t.Fatalf("got %d, want 15", got)
	}
}
