// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"code.hybscloud.com/kont"
)

// Yielded is the effect operation for suspending with a value of type Y.
// The computation resumes with the value of type S sent by the driver.
type Yielded[Y, S any] struct {
	kont.Phantom[S]
	Value Y
}

// Emit yields v and continues with the value sent in response.
// Fuses Perform(Yielded[Y, S]{Value: v}).
func Emit[S, Y any](v Y) kont.Eff[S] {
	return kont.Perform(Yielded[Y, S]{Value: v})
}

// EmitBind yields v and passes the value sent in response to f.
// Fuses Perform(Yielded[Y, S]{Value: v}) + Bind.
func EmitBind[Y, S, B any](v Y, f func(S) kont.Eff[B]) kont.Eff[B] {
	return kont.Bind(kont.Perform(Yielded[Y, S]{Value: v}), f)
}
