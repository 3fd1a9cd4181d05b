// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package loopback provides an in-process transport for queries.
//
// A [Link] connects one client to one server through two bounded lock-free
// single-producer single-consumer queues from lfq: one carries requests,
// the other responses. [Link.Submit] and [Link.Receive] never block; they
// return [code.hybscloud.com/iox.ErrWouldBlock] at the queue boundary.
// [Link.Serve] answers requests on the calling goroutine, waiting past
// that boundary with adaptive backoff.
//
// [Register] binds *Link senders into query registries, so a query can be
// executed against an in-process handler exactly as against a network
// transport.
//
//	link := loopback.New[Request, Response]()
//	go link.Serve(ctx, handle)
//	defer link.Close()
package loopback
