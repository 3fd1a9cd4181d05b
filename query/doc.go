// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package query drives request/response coroutines against pluggable
// transports.
//
// A [Query] resolves to a [coro.Coroutine] that yields requests and is
// resumed with responses. An [Executor] finds the send handler for its
// transport in a [Registry], keyed by the transport's dynamic type, and
// answers every yielded request until the coroutine terminates.
//
// # Architecture
//
//   - Registry: [RegisterSender] and [RegisterAsyncSender] bind handlers to
//     transport types at setup time. Registration is append-only.
//   - Sync: [Execute] blocks until the query's result is available.
//   - Async: [ExecuteAsync] returns a [Run]. [Run.Poll] never blocks: it
//     returns [code.hybscloud.com/iox.ErrWouldBlock] while a response is
//     outstanding. [Run.Await] waits past that boundary with adaptive
//     backoff.
//   - Authentication: [Auth] binds credentials to an [AuthMethod]; the
//     executor applies it to every request the transport sees, while the
//     query only ever observes responses.
//   - Pipes: [Executor.Pipes] wrap every query with [coro.Nest], so retry
//     and validation policies are ordinary coroutines.
//   - Pagination: [Paginate] follows [Page.Next] until the last page.
//
// Each run is assigned a [Serial], logged with zerolog and traced with
// OpenTelemetry.
//
// # Example
//
//	ex := &query.Executor[Request, Response]{
//		Transport: client,
//		Senders:   senders,
//		Authenticate: query.Auth(token, bearer),
//	}
//	user, err := query.Execute(ctx, ex, lookupUser("octocat"))
package query
