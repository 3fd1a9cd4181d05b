// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import "errors"

var (
	// ErrNotTerminated reports that a coroutine yielded where it was
	// required to terminate. It is a contract violation, never a
	// business error.
	ErrNotTerminated = errors.New("coro: coroutine did not terminate")

	// ErrTerminated reports a Start or Resume on a coroutine that has
	// already terminated with a result or an error.
	ErrTerminated = errors.New("coro: coroutine already terminated")

	// ErrNotStarted reports a Resume before Start.
	ErrNotStarted = errors.New("coro: coroutine not started")

	// ErrStarted reports a second Start.
	ErrStarted = errors.New("coro: coroutine already started")

	// ErrUnhandledEffect reports a kont effect other than Yielded
	// reaching a bridged coroutine.
	ErrUnhandledEffect = errors.New("coro: unhandled effect")
)
