// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sml

// Scale applies a decimal scaler to v, as read from a ListEntry's Scaler
// field: the reading is the wire value multiplied by 10^scaler. Scale
// returns Unsigned and Signed multiplied accordingly (a negative scaler
// divides with integer division, truncating toward zero); a String value passes
// through unchanged, since a scaler has no meaning for a register that
// reports text.
func Scale(v Value, scaler int8) Value {
	switch x := v.(type) {
	case Unsigned:
		if scaler >= 0 {
			return Unsigned(uint64(x) * pow10u(scaler))
		}
		return Unsigned(uint64(x) / pow10u(-scaler))
	case Signed:
		if scaler >= 0 {
			return Signed(int64(x) * pow10i(scaler))
		}
		return Signed(int64(x) / pow10i(-scaler))
	case String:
		return x
	default:
		return v
	}
}

func pow10u(n int8) uint64 {
	v := uint64(1)
	for i := int8(0); i < n; i++ {
		v *= 10
	}
	return v
}

func pow10i(n int8) int64 {
	v := int64(1)
	for i := int8(0); i < n; i++ {
		v *= 10
	}
	return v
}
