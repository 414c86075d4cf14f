// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"github.com/bureau-foundation/brtlil/lib/rtlil"
)

// statesPerByte is the packing density: each state takes two bits.
const statesPerByte = 4

// PackBits packs states two bits each, four per byte, with the first
// state in the least significant pair of the first byte. The result is
// ceil(len(states)/4) bytes long.
//
// Only S0, S1, Sx and Sz fit in two bits. Any other value is rejected
// with a format fault rather than masked into a neighbouring pair.
func PackBits(states []rtlil.State) ([]byte, error) {
	packed := make([]byte, (len(states)+statesPerByte-1)/statesPerByte)
	for i, state := range states {
		if !state.Valid() {
			return nil, formatFault("logic state %d at bit %d is outside the four-value alphabet", uint8(state), i)
		}
		packed[i/statesPerByte] |= byte(state) << ((i % statesPerByte) * 2)
	}
	return packed, nil
}

// UnpackBits reverses PackBits, producing width states with the given
// flags. Positions beyond the end of packed read as Sx: a truncated
// or short vector is padded with don't-care rather than rejected.
// Bytes beyond what width needs are ignored.
func UnpackBits(packed []byte, width int, flags rtlil.ConstFlags) rtlil.Const {
	if width <= 0 {
		return rtlil.Const{Flags: flags}
	}
	bits := make([]rtlil.State, width)
	for i := range bits {
		index := i / statesPerByte
		if index >= len(packed) {
			bits[i] = rtlil.Sx
			continue
		}
		bits[i] = rtlil.State((packed[index] >> ((i % statesPerByte) * 2)) & 0x03)
	}
	return rtlil.Const{Bits: bits, Flags: flags}
}
