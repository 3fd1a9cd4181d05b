// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import (
	"context"
	"fmt"
	"reflect"
	"sync"
)

// Sender sends a request on a transport and returns its response.
type Sender[Req, Resp any] func(ctx context.Context, transport any, req Req) (Resp, error)

// AsyncSender starts sending a request on a transport.
// The returned Pending completes with the response.
type AsyncSender[Req, Resp any] func(ctx context.Context, transport any, req Req) Pending[Resp]

// binding is a handler registered for an interface type.
type binding[H any] struct {
	typ reflect.Type
	h   H
}

// Registry maps transport types to handlers of type H.
//
// Handlers are registered at setup time and never removed. Lookup tries
// the transport's exact dynamic type, then registered interface types in
// registration order, then the default handler. A Registry is safe for
// concurrent lookups.
type Registry[H any] struct {
	mu          sync.RWMutex
	exact       map[reflect.Type]H
	ifaces      []binding[H]
	fallback    H
	hasFallback bool
}

// NewRegistry creates an empty registry.
func NewRegistry[H any]() *Registry[H] {
	return &Registry[H]{exact: make(map[reflect.Type]H)}
}

// Register binds h to transports of type typ. An interface type matches
// every transport implementing it. Registering a type twice panics.
func (r *Registry[H]) Register(typ reflect.Type, h H) {
	if typ == nil {
		panic("query: Register with nil type")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.exact[typ]; ok {
		panic("query: duplicate registration for " + typ.String())
	}
	for _, b := range r.ifaces {
		if b.typ == typ {
			panic("query: duplicate registration for " + typ.String())
		}
	}
	if typ.Kind() == reflect.Interface {
		r.ifaces = append(r.ifaces, binding[H]{typ: typ, h: h})
		return
	}
	r.exact[typ] = h
}

// SetDefault sets the handler used for transports of unregistered types.
// Setting it twice panics.
func (r *Registry[H]) SetDefault(h H) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.hasFallback {
		panic("query: default handler already set")
	}
	r.fallback, r.hasFallback = h, true
}

// Lookup returns the handler for transport's dynamic type.
// Returns an error matching ErrUnregistered when none applies.
func (r *Registry[H]) Lookup(transport any) (H, error) {
	var zero H
	if r == nil {
		return zero, fmt.Errorf("%w: %T (no registry)", ErrUnregistered, transport)
	}
	typ := reflect.TypeOf(transport)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if typ != nil {
		if h, ok := r.exact[typ]; ok {
			return h, nil
		}
		for _, b := range r.ifaces {
			if typ.Implements(b.typ) {
				return b.h, nil
			}
		}
	}
	if r.hasFallback {
		return r.fallback, nil
	}
	return zero, fmt.Errorf("%w: %T", ErrUnregistered, transport)
}

// RegisterSender registers send for transports of type T.
func RegisterSender[T, Req, Resp any](r *Registry[Sender[Req, Resp]], send func(context.Context, T, Req) (Resp, error)) {
	r.Register(reflect.TypeFor[T](), func(ctx context.Context, transport any, req Req) (Resp, error) {
		return send(ctx, transport.(T), req)
	})
}

// RegisterAsyncSender registers send for transports of type T.
func RegisterAsyncSender[T, Req, Resp any](r *Registry[AsyncSender[Req, Resp]], send func(context.Context, T, Req) Pending[Resp]) {
	r.Register(reflect.TypeFor[T](), func(ctx context.Context, transport any, req Req) Pending[Resp] {
		return send(ctx, transport.(T), req)
	})
}
