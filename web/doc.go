// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package web provides HTTP request and response values for queries, and
// registers [*net/http.Client] as a transport.
//
// [Request] and [Response] are plain values: every With method returns a
// modified copy. [Senders] and [AsyncSenders] hold the send handlers used
// by [NewExecutor]; packages may register further transports on them.
package web
