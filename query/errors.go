// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import "errors"

var (
	// ErrUnregistered reports a transport whose type has no handler in
	// the registry and no default handler to fall back to.
	ErrUnregistered = errors.New("query: transport not registered")

	// ErrInvalidQuery reports a query with neither a resolution
	// coroutine nor an execution override.
	ErrInvalidQuery = errors.New("query: query has no resolver")
)
