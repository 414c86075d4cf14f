// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rtlil

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Dump writes design in RTLIL text form. Every collection is emitted
// in name order, so two structurally equal designs produce identical
// text regardless of construction order.
func Dump(w io.Writer, design *Design) error {
	buffered := bufio.NewWriter(w)
	printer := &dumper{w: buffered}
	printer.design(design)
	return buffered.Flush()
}

// DumpString is Dump into a string.
func DumpString(design *Design) string {
	var builder strings.Builder
	// strings.Builder writes cannot fail.
	_ = Dump(&builder, design)
	return builder.String()
}

type dumper struct {
	w *bufio.Writer
}

func (d *dumper) line(indent int, format string, args ...any) {
	d.w.WriteString(strings.Repeat("  ", indent))
	fmt.Fprintf(d.w, format, args...)
	d.w.WriteByte('\n')
}

func (d *dumper) attributes(indent int, attributes Attributes) {
	for _, name := range attributes.Names() {
		d.line(indent, "attribute %s %s", name, attributes[name])
	}
}

func (d *dumper) design(design *Design) {
	d.line(0, "autoidx %d", design.AutoIdx)
	d.attributes(0, design.Attributes)
	for _, module := range design.Modules() {
		d.module(module)
	}
}

func (d *dumper) module(module *Module) {
	d.attributes(0, module.Attributes)
	d.line(0, "module %s", module.Name)
	for _, name := range module.AvailParameterNames() {
		if value, ok := module.ParameterDefaults[name]; ok {
			d.line(1, "parameter %s %s", name, value)
		} else {
			d.line(1, "parameter %s", name)
		}
	}
	for _, name := range module.ParameterDefaults.Names() {
		if !module.HasAvailParameter(name) {
			d.line(1, "parameter %s %s", name, module.ParameterDefaults[name])
		}
	}
	for _, wire := range module.Wires() {
		d.wire(wire)
	}
	for _, memory := range module.Memories() {
		d.attributes(1, memory.Attributes)
		d.line(1, "memory width %d size %d offset %d %s", memory.Width, memory.Size, memory.StartOffset, memory.Name)
	}
	for _, cell := range module.Cells() {
		d.cell(cell)
	}
	for _, process := range module.Processes() {
		d.process(process)
	}
	for _, connection := range module.Connections() {
		d.line(1, "connect %s %s", connection.Left, connection.Right)
	}
	d.line(0, "end")
}

func (d *dumper) wire(wire *Wire) {
	d.attributes(1, wire.Attributes)
	var builder strings.Builder
	fmt.Fprintf(&builder, "wire width %d", wire.Width)
	if wire.Upto {
		builder.WriteString(" upto")
	}
	if wire.IsSigned {
		builder.WriteString(" signed")
	}
	if wire.StartOffset != 0 {
		fmt.Fprintf(&builder, " offset %d", wire.StartOffset)
	}
	switch {
	case wire.PortInput && wire.PortOutput:
		fmt.Fprintf(&builder, " inout %d", wire.PortID)
	case wire.PortInput:
		fmt.Fprintf(&builder, " input %d", wire.PortID)
	case wire.PortOutput:
		fmt.Fprintf(&builder, " output %d", wire.PortID)
	case wire.PortID != 0:
		fmt.Fprintf(&builder, " port %d", wire.PortID)
	}
	d.line(1, "%s %s", builder.String(), wire.Name)
}

func (d *dumper) cell(cell *Cell) {
	d.attributes(1, cell.Attributes)
	d.line(1, "cell %s %s", cell.Type, cell.Name)
	for _, name := range cell.Parameters.Names() {
		value := cell.Parameters[name]
		if value.Flags&ConstFlagSigned != 0 {
			d.line(2, "parameter signed %s %s", name, value)
		} else {
			d.line(2, "parameter %s %s", name, value)
		}
	}
	for _, port := range cell.PortNames() {
		signal, _ := cell.Port(port)
		d.line(2, "connect %s %s", port, signal)
	}
	d.line(1, "end")
}

func (d *dumper) process(process *Process) {
	d.attributes(1, process.Attributes)
	d.line(1, "process %s", process.Name)
	d.caseTree(&process.RootCase, 2)
	for _, sync := range process.Syncs {
		if sync.Type == STa || sync.Type == STg || sync.Type == STi {
			d.line(2, "sync %s", sync.Type)
		} else {
			d.line(2, "sync %s %s", sync.Type, sync.Signal)
		}
		for _, action := range sync.Actions {
			d.line(3, "update %s %s", action.Left, action.Right)
		}
		for _, write := range sync.MemWriteActions {
			d.attributes(3, write.Attributes)
			d.line(3, "memwr %s %s %s %s %s", write.MemID, write.Address, write.Data, write.Enable, write.PriorityMask)
		}
	}
	d.line(1, "end")
}

// caseTree prints a case body and its nested switches. Work items are
// either a case body to expand or a literal closing line, processed
// from an explicit stack.
func (d *dumper) caseTree(root *CaseRule, indent int) {
	type item struct {
		node    *CaseRule
		sw      *SwitchRule
		indent  int
		closing string
		header  bool
	}
	stack := []item{{node: root, indent: indent}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch {
		case top.closing != "":
			d.line(top.indent, "%s", top.closing)

		case top.sw != nil:
			d.attributes(top.indent, top.sw.Attributes)
			d.line(top.indent, "switch %s", top.sw.Signal)
			stack = append(stack, item{indent: top.indent, closing: "end"})
			for i := len(top.sw.Cases) - 1; i >= 0; i-- {
				stack = append(stack, item{node: top.sw.Cases[i], indent: top.indent + 1, header: true})
			}

		default:
			body := top.indent
			if top.header {
				d.attributes(top.indent, top.node.Attributes)
				compare := make([]string, len(top.node.Compare))
				for i, signal := range top.node.Compare {
					compare[i] = signal.String()
				}
				if len(compare) == 0 {
					d.line(top.indent, "case")
				} else {
					d.line(top.indent, "case %s", strings.Join(compare, " , "))
				}
				body++
			} else {
				d.attributes(top.indent, top.node.Attributes)
			}
			for _, action := range top.node.Actions {
				d.line(body, "assign %s %s", action.Left, action.Right)
			}
			for i := len(top.node.Switches) - 1; i >= 0; i-- {
				stack = append(stack, item{sw: top.node.Switches[i], indent: body})
			}
		}
	}
}
