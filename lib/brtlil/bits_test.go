// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/bureau-foundation/brtlil/lib/rtlil"
)

func TestPackBitsFiveStates(t *testing.T) {
	states := []rtlil.State{rtlil.S0, rtlil.S1, rtlil.Sx, rtlil.Sz, rtlil.S0}

	packed, err := PackBits(states)
	if err != nil {
		t.Fatalf("PackBits: %v", err)
	}
	// Byte 0: 00 | 01<<2 | 10<<4 | 11<<6 = 0xe4. Byte 1: state 4 = 0.
	if want := []byte{0xe4, 0x00}; !bytes.Equal(packed, want) {
		t.Fatalf("packed = %x, want %x", packed, want)
	}

	unpacked := UnpackBits(packed, 5, rtlil.ConstFlagNone)
	if len(unpacked.Bits) != 5 {
		t.Fatalf("unpacked width = %d, want 5", len(unpacked.Bits))
	}
	for i := range states {
		if unpacked.Bits[i] != states[i] {
			t.Errorf("bit %d = %v, want %v", i, unpacked.Bits[i], states[i])
		}
	}
}

func TestPackBitsLength(t *testing.T) {
	for width := 0; width <= 17; width++ {
		packed, err := PackBits(make([]rtlil.State, width))
		if err != nil {
			t.Fatalf("PackBits(width %d): %v", width, err)
		}
		if want := (width + 3) / 4; len(packed) != want {
			t.Errorf("width %d: packed length %d, want %d", width, len(packed), want)
		}
	}
}

func TestPackUnpackRoundtrip(t *testing.T) {
	random := rand.New(rand.NewPCG(1, 2))
	for _, width := range []int{0, 1, 3, 4, 5, 7, 8, 9, 63, 64, 65, 1000, 4099} {
		states := make([]rtlil.State, width)
		for i := range states {
			states[i] = rtlil.State(random.IntN(4))
		}
		packed, err := PackBits(states)
		if err != nil {
			t.Fatalf("PackBits(width %d): %v", width, err)
		}
		unpacked := UnpackBits(packed, width, rtlil.ConstFlagSigned)
		if unpacked.Flags != rtlil.ConstFlagSigned {
			t.Errorf("width %d: flags = %v, want signed", width, unpacked.Flags)
		}
		if !unpacked.Equal(rtlil.Const{Bits: states, Flags: rtlil.ConstFlagSigned}) {
			t.Errorf("width %d: roundtrip mismatch", width)
		}
	}
}

func TestUnpackBitsPadsWithDontCare(t *testing.T) {
	packed, err := PackBits([]rtlil.State{rtlil.S1, rtlil.S1})
	if err != nil {
		t.Fatalf("PackBits: %v", err)
	}

	unpacked := UnpackBits(packed, 10, rtlil.ConstFlagNone)
	if len(unpacked.Bits) != 10 {
		t.Fatalf("width = %d, want 10", len(unpacked.Bits))
	}
	// Bits 2 and 3 share the first byte and decode as S0; everything
	// past the single packed byte is padding.
	want := []rtlil.State{rtlil.S1, rtlil.S1, rtlil.S0, rtlil.S0,
		rtlil.Sx, rtlil.Sx, rtlil.Sx, rtlil.Sx, rtlil.Sx, rtlil.Sx}
	for i := range want {
		if unpacked.Bits[i] != want[i] {
			t.Errorf("bit %d = %v, want %v", i, unpacked.Bits[i], want[i])
		}
	}

	empty := UnpackBits(nil, 3, rtlil.ConstFlagNone)
	for i, bit := range empty.Bits {
		if bit != rtlil.Sx {
			t.Errorf("empty input bit %d = %v, want Sx", i, bit)
		}
	}
}

func TestUnpackBitsIgnoresExtraBytes(t *testing.T) {
	unpacked := UnpackBits([]byte{0x01, 0xff, 0xff}, 1, rtlil.ConstFlagNone)
	if len(unpacked.Bits) != 1 || unpacked.Bits[0] != rtlil.S1 {
		t.Errorf("unpacked = %v, want [S1]", unpacked.Bits)
	}
}

func TestPackBitsRejectsOutOfAlphabet(t *testing.T) {
	_, err := PackBits([]rtlil.State{rtlil.S0, rtlil.State(4), rtlil.S1})
	if err == nil {
		t.Fatal("PackBits should reject state 4")
	}
	if kind := toError("write", err, KindInternal).Kind; kind != KindFormat {
		t.Errorf("kind = %s, want format", kind)
	}
}

func BenchmarkPackBits(b *testing.B) {
	states := make([]rtlil.State, 4096)
	for i := range states {
		states[i] = rtlil.State(i % 4)
	}
	b.SetBytes(int64(len(states)))
	b.ReportAllocs()
	for b.Loop() {
		PackBits(states)
	}
}
