// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package query

import "code.hybscloud.com/atomix"

// Serial identifies one Execute or ExecuteAsync run within the process.
// Serials start at 1 and increase with every run.
type Serial = uint32

var lastSerial atomix.Uint32

func nextSerial() Serial {
	return lastSerial.Add(1)
}
