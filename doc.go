// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package coro provides composable coroutine pipelines: suspendable
// computations that yield values, are resumed with values, and terminate
// with a result.
//
// A [Coroutine] is stepped explicitly with [Coroutine.Start] and
// [Coroutine.Resume]. Each step reports either a yielded value or the
// terminal result (see [Step]).
//
// # Architecture
//
//   - Driver: [Result] finishes a coroutine that must terminate on the next
//     resume; [Drive] answers every yield until termination.
//   - Mapping: [YieldMap], [SendMap] and [ReturnMap] transform one value
//     channel each and pass the other two through.
//   - Nesting: [Nest] intercepts every yielded value with a fresh [Pipe],
//     which may yield (and retry) on its own before the wrapped coroutine
//     is resumed.
//   - Decorators: [Factory] values produce coroutines. [OneYield],
//     [Nested], [YieldMapped], [SendMapped] and [ReturnMapped] lift the
//     combinators onto factories; [Compose] and [Chain] combine decorators.
//     [Unwrap] follows the wrapped references back to the root factory.
//   - Effects: [Emit], [FromEff] and [FromExpr] bridge
//     [code.hybscloud.com/kont] computations into coroutines, one effect
//     suspension per yield.
//
// The execution protocol that drives coroutines against transports lives
// in [code.hybscloud.com/coro/query].
//
// # Example
//
//	double := coro.YieldMap(coro.Lift(func(n int) int { return n * 2 }), c)
//	st, err := double.Start()
//	for err == nil && !st.Done {
//		st, err = double.Resume(answer(st.Value))
//	}
package coro
