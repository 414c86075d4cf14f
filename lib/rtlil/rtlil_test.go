// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rtlil

import (
	"strings"
	"testing"
)

func TestEscapeID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"clk", `\clk`},
		{`\clk`, `\clk`},
		{"$and", "$and"},
		{"$auto$12", "$auto$12"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EscapeID(tt.input); got != tt.want {
			t.Errorf("EscapeID(%q) = %q, want %q", tt.input, got, tt.want)
		}
		if got := EscapeID(EscapeID(tt.input)); got != tt.want {
			t.Errorf("EscapeID is not idempotent for %q: got %q", tt.input, got)
		}
	}
}

func TestConstFromBits(t *testing.T) {
	value, err := ConstFromBits("0zx10")
	if err != nil {
		t.Fatalf("ConstFromBits: %v", err)
	}
	want := []State{S0, S1, Sx, Sz, S0}
	if len(value.Bits) != len(want) {
		t.Fatalf("width = %d, want %d", len(value.Bits), len(want))
	}
	for i := range want {
		if value.Bits[i] != want[i] {
			t.Errorf("bit %d = %v, want %v", i, value.Bits[i], want[i])
		}
	}
	if got := value.String(); got != "5'0zx10" {
		t.Errorf("String() = %q, want %q", got, "5'0zx10")
	}

	if _, err := ConstFromBits("01q"); err == nil {
		t.Error("ConstFromBits should reject 'q'")
	}
}

func TestConstFromIntSigned(t *testing.T) {
	value := ConstFromInt(-3, 4)
	if got := value.String(); got != "4'1101" {
		t.Errorf("String() = %q, want 4'1101", got)
	}
	value.Flags = ConstFlagSigned
	if got := value.AsInt(); got != -3 {
		t.Errorf("AsInt() = %d, want -3", got)
	}
}

func TestConstString(t *testing.T) {
	value := ConstFromString("ab")
	if value.Width() != 16 {
		t.Fatalf("width = %d, want 16", value.Width())
	}
	if got := value.DecodeString(); got != "ab" {
		t.Errorf("DecodeString() = %q, want %q", got, "ab")
	}
	if got := value.String(); got != `"ab"` {
		t.Errorf("String() = %q", got)
	}
}

func TestModuleDuplicateNames(t *testing.T) {
	design := NewDesign()
	module, err := design.AddModule("top")
	if err != nil {
		t.Fatalf("AddModule: %v", err)
	}
	if _, err := design.AddModule(`\top`); err == nil {
		t.Error("AddModule should reject a duplicate escaped name")
	}
	if _, err := module.AddWire("a", 4); err != nil {
		t.Fatalf("AddWire: %v", err)
	}
	if _, err := module.AddWire("a", 2); err == nil {
		t.Error("AddWire should reject a duplicate name")
	}
	if _, err := module.AddWire("b", -1); err == nil {
		t.Error("AddWire should reject a negative width")
	}
	if _, err := module.AddCell("g", "$and"); err != nil {
		t.Fatalf("AddCell: %v", err)
	}
	if _, err := module.AddCell("g", "$or"); err == nil {
		t.Error("AddCell should reject a duplicate name")
	}
	if module.Wire("a") == nil || module.Wire(`\a`) == nil {
		t.Error("Wire lookup should accept escaped and unescaped names")
	}
}

func TestSigSpecAppendMerges(t *testing.T) {
	design := NewDesign()
	module, _ := design.AddModule("top")
	wire, _ := module.AddWire("bus", 8)

	sig := SigConcat(
		SigFromSlice(wire, 0, 4),
		SigFromSlice(wire, 4, 4),
		SigFromConst(MustConstFromBits("01")),
		SigFromConst(MustConstFromBits("1")),
	)

	chunks := sig.Chunks()
	if len(chunks) != 2 {
		t.Fatalf("chunk count = %d, want 2 (%s)", len(chunks), sig)
	}
	if chunks[0].Wire != wire || chunks[0].Offset != 0 || chunks[0].Width != 8 {
		t.Errorf("wire chunk = %+v, want full bus", chunks[0])
	}
	if chunks[1].Wire != nil || chunks[1].Width != 3 {
		t.Errorf("const chunk = %+v, want 3-bit constant", chunks[1])
	}
	if sig.Size() != 11 {
		t.Errorf("Size() = %d, want 11", sig.Size())
	}
	if got := sig.String(); got != `{ 3'101 \bus }` {
		t.Errorf("String() = %q", got)
	}
}

func TestSigSpecEmpty(t *testing.T) {
	var sig SigSpec
	if !sig.Empty() || sig.Size() != 0 {
		t.Errorf("zero SigSpec should be empty with width 0")
	}
	sig.Append(SigChunk{Data: Const{}})
	if !sig.Empty() {
		t.Error("zero-width chunk should be dropped")
	}
}

func TestBlackbox(t *testing.T) {
	design := NewDesign()
	module, _ := design.AddModule("bb")
	if module.Blackbox() {
		t.Fatal("new module should not be a blackbox")
	}
	module.SetBlackbox(true)
	if !module.Blackbox() {
		t.Fatal("SetBlackbox(true) did not take effect")
	}
	module.SetBlackbox(false)
	if module.Blackbox() {
		t.Fatal("SetBlackbox(false) did not take effect")
	}
}

func TestCaseDepth(t *testing.T) {
	var root CaseRule
	if got := root.CaseDepth(); got != 1 {
		t.Fatalf("leaf depth = %d, want 1", got)
	}

	node := &root
	for range 5000 {
		node = node.AddSwitch(SigSpec{}).AddCase()
	}
	if got := root.CaseDepth(); got != 5001 {
		t.Errorf("depth = %d, want 5001", got)
	}
}

func TestDumpDeterministic(t *testing.T) {
	build := func(order []string) *Design {
		design := NewDesign()
		module, _ := design.AddModule("top")
		for _, name := range order {
			wire, _ := module.AddWire(name, 1)
			wire.Attributes[IDKeep] = ConstFromInt(1, 1)
		}
		return design
	}

	first := DumpString(build([]string{"a", "b", "c"}))
	second := DumpString(build([]string{"c", "a", "b"}))
	if first != second {
		t.Errorf("dump depends on insertion order:\n%s\n---\n%s", first, second)
	}
	if !strings.Contains(first, `wire width 1 \b`) {
		t.Errorf("dump missing wire line:\n%s", first)
	}
}

func TestDumpProcess(t *testing.T) {
	design := NewDesign()
	module, _ := design.AddModule("top")
	clk, _ := module.AddWire("clk", 1)
	sel, _ := module.AddWire("sel", 1)
	q, _ := module.AddWire("q", 1)
	process, _ := module.AddProcess("p")
	sw := process.RootCase.AddSwitch(SigFromWire(sel))
	sw.AddCase(SigFromConst(MustConstFromBits("1"))).AddAction(SigFromWire(q), SigFromConst(MustConstFromBits("0")))
	sw.AddCase()
	process.AddSync(STp, SigFromWire(clk)).AddAction(SigFromWire(q), SigFromWire(sel))

	text := DumpString(design)
	for _, want := range []string{
		`process \p`,
		`switch \sel`,
		`case 1'1`,
		`assign \q 1'0`,
		`sync posedge \clk`,
		`update \q \sel`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("dump missing %q:\n%s", want, text)
		}
	}
}
