// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"encoding/base64"

	"code.hybscloud.com/coro"
)

// Credentials are a username and password.
type Credentials struct {
	Username string
	Password string
}

// BasicAuth applies HTTP basic authentication.
func BasicAuth(c Credentials, r Request) (Request, error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
	return r.WithHeaders(map[string]string{"Authorization": "Basic " + encoded}), nil
}

// BearerAuth applies bearer token authentication.
func BearerAuth(token string, r Request) (Request, error) {
	return r.WithHeaders(map[string]string{"Authorization": "Bearer " + token}), nil
}

// HeaderAdder returns a transformation adding headers to a request.
func HeaderAdder(headers map[string]string) coro.Func[Request, Request] {
	return coro.Lift(func(r Request) Request { return r.WithHeaders(headers) })
}

// PrefixAdder returns a transformation prepending prefix to a request URL.
func PrefixAdder(prefix string) coro.Func[Request, Request] {
	return coro.Lift(func(r Request) Request { return r.WithPrefix(prefix) })
}

// Pipe returns a pipe applying fn to every request of a query.
func Pipe(fn coro.Func[Request, Request]) coro.Pipe[Request, Request, Response, Response] {
	return coro.OneYield[Response]("web", fn).Call
}
