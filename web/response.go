// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

// ErrStatus reports a response outside the 2xx range.
var ErrStatus = errors.New("web: unexpected status")

// Response is an HTTP response.
type Response struct {
	StatusCode int
	Content    []byte
	Headers    http.Header
}

// IsSuccess reports whether the status code is 2xx.
func (r Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError reports whether the status code is 4xx or 5xx.
func (r Response) IsError() bool {
	return r.StatusCode >= 400
}

// Header returns the first value of the named header.
func (r Response) Header(name string) string {
	return r.Headers.Get(name)
}

// Check returns an error matching ErrStatus for a non-2xx response.
func (r Response) Check() error {
	if r.IsSuccess() {
		return nil
	}
	return fmt.Errorf("%w: %d %s", ErrStatus, r.StatusCode, http.StatusText(r.StatusCode))
}

// DecodeJSON checks resp and decodes its content as JSON into a T.
func DecodeJSON[T any](resp Response) (T, error) {
	var v T
	if err := resp.Check(); err != nil {
		return v, err
	}
	if err := json.Unmarshal(resp.Content, &v); err != nil {
		return v, fmt.Errorf("web: decode response: %w", err)
	}
	return v, nil
}
