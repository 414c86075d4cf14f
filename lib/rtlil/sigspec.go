// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rtlil

import (
	"fmt"
	"strings"
)

// SigChunk is one contiguous run within a signal: either a slice of a
// wire (Wire non-nil; Offset and Width select the bits) or a literal
// constant (Wire nil; Data holds the bits and Width equals its width).
type SigChunk struct {
	Wire   *Wire
	Offset int
	Width  int
	Data   Const
}

// IsWire reports whether the chunk refers to a wire.
func (chunk SigChunk) IsWire() bool {
	return chunk.Wire != nil
}

// SigSpec is an ordered concatenation of chunks, least significant
// chunk first. The zero value is the empty (width 0) signal.
type SigSpec struct {
	chunks []SigChunk
}

// SigFromWire refers to every bit of wire.
func SigFromWire(wire *Wire) SigSpec {
	return SigFromSlice(wire, 0, wire.Width)
}

// SigFromSlice refers to width bits of wire starting at offset.
func SigFromSlice(wire *Wire, offset, width int) SigSpec {
	var sig SigSpec
	sig.Append(SigChunk{Wire: wire, Offset: offset, Width: width})
	return sig
}

// SigFromConst is a literal signal.
func SigFromConst(value Const) SigSpec {
	var sig SigSpec
	sig.Append(SigChunk{Width: value.Width(), Data: value})
	return sig
}

// SigConcat joins signals with parts[0] in the least significant
// position.
func SigConcat(parts ...SigSpec) SigSpec {
	var sig SigSpec
	for _, part := range parts {
		for _, chunk := range part.chunks {
			sig.Append(chunk)
		}
	}
	return sig
}

// Append adds chunk in the most significant position. Zero-width
// chunks are dropped. A constant chunk following a constant chunk, or
// a wire slice that continues the previous slice of the same wire, is
// merged into the previous chunk so that equal signals have equal
// chunk lists.
func (sig *SigSpec) Append(chunk SigChunk) {
	if chunk.Wire == nil {
		chunk.Offset = 0
		chunk.Width = chunk.Data.Width()
	} else {
		chunk.Data = Const{}
	}
	if chunk.Width == 0 {
		return
	}
	if count := len(sig.chunks); count > 0 {
		last := &sig.chunks[count-1]
		switch {
		case last.Wire == nil && chunk.Wire == nil:
			bits := make([]State, 0, last.Width+chunk.Width)
			bits = append(bits, last.Data.Bits...)
			bits = append(bits, chunk.Data.Bits...)
			last.Data = Const{Bits: bits, Flags: last.Data.Flags | chunk.Data.Flags}
			last.Width = len(bits)
			return
		case last.Wire != nil && last.Wire == chunk.Wire && last.Offset+last.Width == chunk.Offset:
			last.Width += chunk.Width
			return
		}
	}
	sig.chunks = append(sig.chunks, chunk)
}

// Chunks returns the chunk list. The caller must not modify it.
func (sig SigSpec) Chunks() []SigChunk {
	return sig.chunks
}

// Size returns the total bit width.
func (sig SigSpec) Size() int {
	total := 0
	for _, chunk := range sig.chunks {
		total += chunk.Width
	}
	return total
}

// Empty reports whether sig has no bits.
func (sig SigSpec) Empty() bool {
	return len(sig.chunks) == 0
}

// IsFullyConst reports whether sig contains no wire references.
func (sig SigSpec) IsFullyConst() bool {
	for _, chunk := range sig.chunks {
		if chunk.Wire != nil {
			return false
		}
	}
	return true
}

// String renders sig in RTLIL text form.
func (sig SigSpec) String() string {
	switch len(sig.chunks) {
	case 0:
		return "{ }"
	case 1:
		return sig.chunks[0].String()
	}
	parts := make([]string, len(sig.chunks))
	for i, chunk := range sig.chunks {
		// Text form lists the most significant chunk first.
		parts[len(sig.chunks)-1-i] = chunk.String()
	}
	return "{ " + strings.Join(parts, " ") + " }"
}

// String renders a single chunk in RTLIL text form.
func (chunk SigChunk) String() string {
	if chunk.Wire == nil {
		return chunk.Data.String()
	}
	if chunk.Offset == 0 && chunk.Width == chunk.Wire.Width {
		return chunk.Wire.Name
	}
	if chunk.Width == 1 {
		return fmt.Sprintf("%s [%d]", chunk.Wire.Name, chunk.Offset)
	}
	return fmt.Sprintf("%s [%d:%d]", chunk.Wire.Name, chunk.Offset+chunk.Width-1, chunk.Offset)
}

// SigSig is an ordered (left, right) pair: a module connection
// (left driven by right) or a process action (left assigned right).
type SigSig struct {
	Left  SigSpec
	Right SigSpec
}
