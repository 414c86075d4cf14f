// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rtlil

import (
	"fmt"
	"strings"
)

// State is one four-valued logic level.
type State uint8

const (
	S0 State = 0 // logic zero
	S1 State = 1 // logic one
	Sx State = 2 // don't-care / unknown
	Sz State = 3 // high impedance
)

// Valid reports whether s is one of S0, S1, Sx, Sz.
func (s State) Valid() bool {
	return s <= Sz
}

// Rune returns the RTLIL text character for s, or '?' when s is
// outside the alphabet.
func (s State) Rune() rune {
	switch s {
	case S0:
		return '0'
	case S1:
		return '1'
	case Sx:
		return 'x'
	case Sz:
		return 'z'
	default:
		return '?'
	}
}

// ParseState converts an RTLIL text character to a State.
func ParseState(r rune) (State, error) {
	switch r {
	case '0':
		return S0, nil
	case '1':
		return S1, nil
	case 'x', 'X':
		return Sx, nil
	case 'z', 'Z':
		return Sz, nil
	default:
		return 0, fmt.Errorf("invalid logic state %q", r)
	}
}

// ConstFlags carries metadata about how a constant was written in the
// source design.
type ConstFlags uint32

const (
	ConstFlagNone   ConstFlags = 0
	ConstFlagString ConstFlags = 1
	ConstFlagSigned ConstFlags = 2
	ConstFlagReal   ConstFlags = 4
)

// Const is a fixed-width vector of logic states. Bits[0] is the least
// significant bit.
type Const struct {
	Bits  []State
	Flags ConstFlags
}

// Width returns the number of bits in c.
func (c Const) Width() int {
	return len(c.Bits)
}

// ConstFromBits parses an RTLIL bit string such as "10xz". The first
// character is the most significant bit, matching the text format.
func ConstFromBits(text string) (Const, error) {
	runes := []rune(text)
	bits := make([]State, len(runes))
	for i, r := range runes {
		state, err := ParseState(r)
		if err != nil {
			return Const{}, fmt.Errorf("bit %d of %q: %w", len(runes)-1-i, text, err)
		}
		bits[len(runes)-1-i] = state
	}
	return Const{Bits: bits}, nil
}

// MustConstFromBits is ConstFromBits for literals known to be valid.
// Panics on malformed input.
func MustConstFromBits(text string) Const {
	value, err := ConstFromBits(text)
	if err != nil {
		panic("rtlil: " + err.Error())
	}
	return value
}

// ConstFromInt returns the two's complement representation of value
// truncated or sign-extended to width bits.
func ConstFromInt(value int64, width int) Const {
	bits := make([]State, width)
	for i := range width {
		shift := min(i, 63)
		if (value>>shift)&1 == 1 {
			bits[i] = S1
		} else {
			bits[i] = S0
		}
	}
	return Const{Bits: bits}
}

// ConstFromString encodes text as eight bits per byte with the last
// byte in the least significant position, and sets ConstFlagString.
func ConstFromString(text string) Const {
	bits := make([]State, 0, len(text)*8)
	for i := len(text) - 1; i >= 0; i-- {
		for bit := range 8 {
			if (text[i]>>bit)&1 == 1 {
				bits = append(bits, S1)
			} else {
				bits = append(bits, S0)
			}
		}
	}
	return Const{Bits: bits, Flags: ConstFlagString}
}

// DecodeString reverses ConstFromString. Bits that are not S0 or S1
// are read as zero.
func (c Const) DecodeString() string {
	length := len(c.Bits) / 8
	output := make([]byte, length)
	for i := range length {
		var b byte
		for bit := range 8 {
			if c.Bits[i*8+bit] == S1 {
				b |= 1 << bit
			}
		}
		output[length-1-i] = b
	}
	return string(output)
}

// AsInt interprets c as an unsigned integer, or signed when
// ConstFlagSigned is set. Non-binary bits read as zero. Widths past 64
// bits are truncated.
func (c Const) AsInt() int64 {
	var value int64
	for i := 0; i < len(c.Bits) && i < 64; i++ {
		if c.Bits[i] == S1 {
			value |= 1 << i
		}
	}
	if c.Flags&ConstFlagSigned != 0 && len(c.Bits) > 0 && len(c.Bits) < 64 && c.Bits[len(c.Bits)-1] == S1 {
		value -= 1 << len(c.Bits)
	}
	return value
}

// String returns the RTLIL text form: width, an apostrophe, then the
// bits most significant first ("4'10xz"). String constants render as
// a quoted string.
func (c Const) String() string {
	if c.Flags&ConstFlagString != 0 && len(c.Bits)%8 == 0 {
		return fmt.Sprintf("%q", c.DecodeString())
	}
	var builder strings.Builder
	fmt.Fprintf(&builder, "%d'", len(c.Bits))
	if c.Flags&ConstFlagSigned != 0 {
		builder.WriteByte('s')
	}
	for i := len(c.Bits) - 1; i >= 0; i-- {
		builder.WriteRune(c.Bits[i].Rune())
	}
	return builder.String()
}

// Equal reports whether c and other have the same bits and flags.
func (c Const) Equal(other Const) bool {
	if c.Flags != other.Flags || len(c.Bits) != len(other.Bits) {
		return false
	}
	for i := range c.Bits {
		if c.Bits[i] != other.Bits[i] {
			return false
		}
	}
	return true
}

// Attributes maps escaped identifiers to constant values. Used for
// attributes, cell parameters, and parameter defaults.
type Attributes map[string]Const

// Names returns the keys of a in sorted order.
func (a Attributes) Names() []string {
	return sortedKeys(a)
}
