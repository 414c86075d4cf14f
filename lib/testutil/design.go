// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"github.com/bureau-foundation/brtlil/lib/rtlil"
)

// TB is the subset of testing.TB the fixtures need.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
}

// builder wraps the creation API so fixture code reads as a list of
// declarations. Every failure is fatal to the test.
type builder struct {
	t      TB
	module *rtlil.Module
}

func newModule(t TB, design *rtlil.Design, name string) *builder {
	t.Helper()
	module, err := design.AddModule(name)
	if err != nil {
		t.Fatalf("AddModule(%s): %v", name, err)
	}
	return &builder{t: t, module: module}
}

func (b *builder) wire(name string, width int) *rtlil.Wire {
	b.t.Helper()
	wire, err := b.module.AddWire(name, width)
	if err != nil {
		b.t.Fatalf("AddWire(%s): %v", name, err)
	}
	return wire
}

func (b *builder) port(name string, width, id int, input, output bool) *rtlil.Wire {
	b.t.Helper()
	wire := b.wire(name, width)
	wire.PortID = id
	wire.PortInput = input
	wire.PortOutput = output
	return wire
}

func (b *builder) cell(name, cellType string) *rtlil.Cell {
	b.t.Helper()
	cell, err := b.module.AddCell(name, cellType)
	if err != nil {
		b.t.Fatalf("AddCell(%s): %v", name, err)
	}
	return cell
}

func (b *builder) process(name string) *rtlil.Process {
	b.t.Helper()
	process, err := b.module.AddProcess(name)
	if err != nil {
		b.t.Fatalf("AddProcess(%s): %v", name, err)
	}
	return process
}

func (b *builder) memory(name string, width, size int) *rtlil.Memory {
	b.t.Helper()
	memory, err := b.module.AddMemory(name)
	if err != nil {
		b.t.Fatalf("AddMemory(%s): %v", name, err)
	}
	memory.Width = width
	memory.Size = size
	return memory
}

func bits(t TB, text string) rtlil.Const {
	t.Helper()
	value, err := rtlil.ConstFromBits(text)
	if err != nil {
		t.Fatalf("ConstFromBits(%q): %v", text, err)
	}
	return value
}

// AndGateDesign returns a design with one module \top holding two
// 8-bit inputs \a and \b, an 8-bit output \y, and a $and cell \g
// computing y = a & b.
func AndGateDesign(t TB) *rtlil.Design {
	t.Helper()
	design := rtlil.NewDesign()
	top := newModule(t, design, "top")

	a := top.port("a", 8, 1, true, false)
	b := top.port("b", 8, 2, true, false)
	y := top.port("y", 8, 3, false, true)

	gate := top.cell("g", "$and")
	gate.Parameters[`\A_SIGNED`] = rtlil.ConstFromInt(0, 1)
	gate.Parameters[`\B_SIGNED`] = rtlil.ConstFromInt(0, 1)
	gate.Parameters[`\A_WIDTH`] = rtlil.ConstFromInt(8, 32)
	gate.Parameters[`\B_WIDTH`] = rtlil.ConstFromInt(8, 32)
	gate.Parameters[`\Y_WIDTH`] = rtlil.ConstFromInt(8, 32)
	gate.SetPort("A", rtlil.SigFromWire(a))
	gate.SetPort("B", rtlil.SigFromWire(b))
	gate.SetPort("Y", rtlil.SigFromWire(y))
	return design
}

// SampleDesign returns a design that uses every construct the binary
// format carries. The top module \counter is a registered 4-bit
// counter with a write port into a small memory; \leaf is a
// parameterized blackbox it instantiates.
func SampleDesign(t TB) *rtlil.Design {
	t.Helper()
	design := rtlil.NewDesign()
	design.AutoIdx = 42
	design.Attributes[`\top`] = rtlil.ConstFromString("counter")

	leaf := newModule(t, design, "leaf")
	leaf.module.SetBlackbox(true)
	leaf.module.AddAvailParameter("WIDTH")
	leaf.module.AddAvailParameter("INIT")
	leaf.module.ParameterDefaults[`\WIDTH`] = rtlil.ConstFromInt(4, 32)
	leafIn := leaf.port("in", 4, 1, true, false)
	leafIn.Attributes[rtlil.IDSrc] = rtlil.ConstFromString("leaf.v:3.9-3.11")
	leaf.port("out", 4, 2, false, true)

	top := newModule(t, design, "counter")
	top.module.Attributes[rtlil.IDSrc] = rtlil.ConstFromString("counter.v:1.1-30.10")
	top.module.Attributes[rtlil.IDKeep] = rtlil.ConstFromInt(1, 1)

	clk := top.port("clk", 1, 1, true, false)
	rst := top.port("rst", 1, 2, true, false)
	mode := top.port("mode", 2, 3, true, false)
	count := top.port("count", 4, 4, false, true)
	bus := top.port("bus", 8, 5, true, true)
	next := top.wire("$0\\count[3:0]", 4)
	reversed := top.wire("reversed", 6)
	reversed.Upto = true
	reversed.StartOffset = 2
	signedWire := top.wire("delta", 5)
	signedWire.IsSigned = true
	signedWire.Attributes[`\init`] = bits(t, "0000x")
	addr := top.wire("addr", 2)

	adder := top.cell("$add$counter.v:12$1", "$add")
	adder.Attributes[rtlil.IDSrc] = rtlil.ConstFromString("counter.v:12.14-12.23")
	adder.Parameters[`\A_SIGNED`] = rtlil.ConstFromInt(0, 1)
	adder.Parameters[`\A_WIDTH`] = rtlil.ConstFromInt(4, 32)
	adder.Parameters[`\B_WIDTH`] = rtlil.ConstFromInt(1, 32)
	adder.Parameters[`\Y_WIDTH`] = rtlil.ConstFromInt(4, 32)
	offset := rtlil.ConstFromInt(-3, 8)
	offset.Flags |= rtlil.ConstFlagSigned
	adder.Parameters[`\OFFSET`] = offset
	adder.SetPort("A", rtlil.SigFromWire(count))
	adder.SetPort("B", rtlil.SigFromConst(rtlil.ConstFromInt(1, 1)))
	adder.SetPort("Y", rtlil.SigFromWire(next))

	instance := top.cell("u_leaf", `\leaf`)
	instance.Parameters[`\WIDTH`] = rtlil.ConstFromInt(4, 32)
	instance.Parameters[`\INIT`] = bits(t, "zzxx10")
	// Flags the RTLIL text does not show.
	ratio := rtlil.ConstFromInt(0x3ff8000000000000, 64)
	ratio.Flags |= rtlil.ConstFlagReal
	instance.Parameters[`\RATIO`] = ratio
	label := rtlil.ConstFromString("lsb")
	label.Flags |= rtlil.ConstFlagSigned
	instance.Attributes[`\label`] = label
	// Low two bits from the bus, then a constant, then a mode bit.
	instance.SetPort("in", rtlil.SigConcat(
		rtlil.SigFromSlice(bus, 0, 2),
		rtlil.SigFromConst(bits(t, "z")),
		rtlil.SigFromSlice(mode, 1, 1),
	))
	instance.SetPort("out", rtlil.SigFromSlice(reversed, 1, 4))

	ram := top.memory("ram", 8, 4)
	ram.StartOffset = 0
	ram.Attributes[rtlil.IDSrc] = rtlil.ConstFromString("counter.v:5.13-5.16")

	process := top.process("$proc$counter.v:10$2")
	process.Attributes[rtlil.IDSrc] = rtlil.ConstFromString("counter.v:10.3-20.6")
	process.RootCase.AddAction(rtlil.SigFromWire(next), rtlil.SigFromWire(count))

	resetSwitch := process.RootCase.AddSwitch(rtlil.SigFromWire(rst))
	resetSwitch.Attributes[`\parallel_case`] = rtlil.ConstFromInt(1, 1)
	inReset := resetSwitch.AddCase(rtlil.SigFromConst(bits(t, "1")))
	inReset.AddAction(rtlil.SigFromWire(next), rtlil.SigFromConst(bits(t, "0000")))
	running := resetSwitch.AddCase()
	running.Attributes[rtlil.IDSrc] = rtlil.ConstFromString("counter.v:14.5-19.8")

	modeSwitch := running.AddSwitch(rtlil.SigFromWire(mode))
	hold := modeSwitch.AddCase(rtlil.SigFromConst(bits(t, "00")), rtlil.SigFromConst(bits(t, "11")))
	hold.AddAction(rtlil.SigFromWire(next), rtlil.SigFromWire(count))
	load := modeSwitch.AddCase(rtlil.SigFromConst(bits(t, "01")))
	load.AddAction(rtlil.SigFromWire(next), rtlil.SigFromSlice(bus, 4, 4))
	modeSwitch.AddCase()

	posedge := process.AddSync(rtlil.STp, rtlil.SigFromWire(clk))
	posedge.AddAction(rtlil.SigFromWire(count), rtlil.SigFromWire(next))
	posedge.MemWriteActions = append(posedge.MemWriteActions, rtlil.MemWriteAction{
		MemID:        `\ram`,
		Address:      rtlil.SigFromWire(addr),
		Data:         rtlil.SigFromWire(bus),
		Enable:       rtlil.SigFromConst(bits(t, "11111111")),
		PriorityMask: bits(t, "1"),
		Attributes:   rtlil.Attributes{rtlil.IDSrc: rtlil.ConstFromString("counter.v:21.7-21.20")},
	})
	process.AddSync(rtlil.STi, rtlil.SigSpec{})

	top.module.Connect(rtlil.SigFromSlice(reversed, 5, 1), rtlil.SigFromSlice(count, 3, 1))
	top.module.Connect(rtlil.SigFromWire(addr), rtlil.SigFromConst(bits(t, "x1")))
	return design
}

// NestedCaseDesign returns a design whose only process has a decision
// tree depth cases deep: every case but the innermost holds one switch
// with a single case. Depth 1 is a root case with no switches.
func NestedCaseDesign(t TB, depth int) *rtlil.Design {
	t.Helper()
	design := rtlil.NewDesign()
	top := newModule(t, design, "deep")
	sel := top.wire("sel", 1)
	out := top.wire("out", 1)
	process := top.process("deep_proc")

	current := &process.RootCase
	for level := 1; level < depth; level++ {
		current = current.AddSwitch(rtlil.SigFromWire(sel)).AddCase(rtlil.SigFromConst(rtlil.ConstFromInt(int64(level%2), 1)))
	}
	current.AddAction(rtlil.SigFromWire(out), rtlil.SigFromConst(rtlil.ConstFromInt(1, 1)))
	return design
}
