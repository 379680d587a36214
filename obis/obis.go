// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package obis names the IEC 62056 OBIS register identifiers commonly found
// in an SML list entry's object name field.
//
// This catalog is not exhaustive and is not meant to be: a meter is free to
// report registers this package does not name, and ListEntry.ObjectName is
// always populated regardless of whether Name recognises it.
package obis

// Code is a 6-byte OBIS register identifier.
type Code [6]byte

// String renders c in its conventional A-B:C.D.E*F notation.
func (c Code) String() string {
	buf := make([]byte, 0, 16)
	buf = appendByte(buf, c[0])
	buf = append(buf, '-')
	buf = appendByte(buf, c[1])
	buf = append(buf, ':')
	buf = appendByte(buf, c[2])
	buf = append(buf, '.')
	buf = appendByte(buf, c[3])
	buf = append(buf, '.')
	buf = appendByte(buf, c[4])
	buf = append(buf, '*')
	buf = appendByte(buf, c[5])
	return string(buf)
}

func appendByte(buf []byte, b byte) []byte {
	if b >= 100 {
		buf = append(buf, '0'+b/100)
		b %= 100
		buf = append(buf, '0'+b/10, '0'+b%10)
		return buf
	}
	if b >= 10 {
		return append(buf, '0'+b/10, '0'+b%10)
	}
	return append(buf, '0'+b)
}

// Registers named here cover the readings a residential electricity meter
// commonly reports; see SPEC_FULL.md for the source this catalog was grown
// from.
var (
	// SumActiveInstantaneousPower is the meter's current total active power.
	SumActiveInstantaneousPower = Code{1, 0, 16, 7, 0, 255}
	// PositiveActiveEnergy is cumulative imported active energy (all tariffs).
	PositiveActiveEnergy = Code{1, 0, 1, 8, 0, 255}
	// PositiveActiveEnergyTarif1 is cumulative imported active energy under
	// tariff register 1.
	PositiveActiveEnergyTarif1 = Code{1, 0, 1, 8, 1, 255}
	// NegativeActiveEnergyTotal is cumulative exported active energy.
	NegativeActiveEnergyTotal = Code{1, 0, 2, 8, 0, 255}
)

var names = map[Code]string{
	SumActiveInstantaneousPower: "SumActiveInstantaneousPower",
	PositiveActiveEnergy:        "PositiveActiveEnergy",
	PositiveActiveEnergyTarif1:  "PositiveActiveEnergyTarif1",
	NegativeActiveEnergyTotal:   "NegativeActiveEnergyTotal",
}

// Name returns the catalog name for code, and false if code is not one of
// the registers this package names.
func Name(code Code) (string, bool) {
	name, ok := names[code]
	return name, ok
}

// FromBytes converts a 6-byte ObjectName slice to a Code. It panics if b is
// not exactly 6 bytes long; callers typically only call this on a
// ListEntry.ObjectName they already expect to carry a standard OBIS id.
func FromBytes(b []byte) Code {
	var c Code
	if len(b) != len(c) {
		panic("obis: object name is not 6 bytes")
	}
	copy(c[:], b)
	return c
}
