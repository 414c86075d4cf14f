// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"strings"

	"github.com/bureau-foundation/brtlil/lib/rtlil"
)

// RequireSameDesign fails the test unless got and want dump to the same
// RTLIL text and carry constants with the same flags. The failure names
// the first line or constant that differs. Flags are compared
// separately because the text form omits some of them, such as
// ConstFlagReal.
//
//	testutil.RequireSameDesign(t, decoded, testutil.SampleDesign(t))
func RequireSameDesign(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, got, want *rtlil.Design) {
	t.Helper()
	gotText := rtlil.DumpString(got)
	wantText := rtlil.DumpString(want)
	if gotText == wantText {
		requireSameConstants(t, got, want)
		return
	}

	gotLines := strings.Split(gotText, "\n")
	wantLines := strings.Split(wantText, "\n")
	for i := range max(len(gotLines), len(wantLines)) {
		gotLine, wantLine := lineAt(gotLines, i), lineAt(wantLines, i)
		if gotLine != wantLine {
			t.Fatalf("designs differ at dump line %d:\n  got:  %s\n  want: %s", i+1, gotLine, wantLine)
		}
	}
	t.Fatalf("designs differ but no differing line was found")
}

func lineAt(lines []string, index int) string {
	if index < len(lines) {
		return lines[index]
	}
	return "<end of dump>"
}

func requireSameConstants(t interface {
	Helper()
	Fatalf(format string, args ...any)
}, got, want *rtlil.Design) {
	t.Helper()
	gotConstants := collectConstants(got)
	wantConstants := collectConstants(want)
	for _, entry := range wantConstants.entries {
		value, ok := gotConstants.values[entry]
		if !ok {
			t.Fatalf("constant %s is missing", entry)
		}
		if expected := wantConstants.values[entry]; !value.Equal(expected) {
			t.Fatalf("constant %s differs:\n  got:  %s flags %d\n  want: %s flags %d",
				entry, value, value.Flags, expected, expected.Flags)
		}
	}
	if len(gotConstants.entries) != len(wantConstants.entries) {
		t.Fatalf("got %d constants, want %d", len(gotConstants.entries), len(wantConstants.entries))
	}
}

// constantSet holds every constant of a design keyed by where it sits,
// in visiting order.
type constantSet struct {
	entries []string
	values  map[string]rtlil.Const
}

func (s *constantSet) add(location string, value rtlil.Const) {
	s.entries = append(s.entries, location)
	s.values[location] = value
}

func (s *constantSet) attributes(location string, attributes rtlil.Attributes) {
	for _, name := range attributes.Names() {
		s.add(location+" / "+name, attributes[name])
	}
}

func (s *constantSet) signal(location string, signal rtlil.SigSpec) {
	for i, chunk := range signal.Chunks() {
		if !chunk.IsWire() {
			s.add(fmt.Sprintf("%s / chunk %d", location, i), chunk.Data)
		}
	}
}

func (s *constantSet) actions(location string, actions []rtlil.SigSig) {
	for i, action := range actions {
		s.signal(fmt.Sprintf("%s / action %d left", location, i), action.Left)
		s.signal(fmt.Sprintf("%s / action %d right", location, i), action.Right)
	}
}

func collectConstants(design *rtlil.Design) constantSet {
	set := constantSet{values: map[string]rtlil.Const{}}
	set.attributes("design", design.Attributes)
	for _, module := range design.Modules() {
		location := "module " + module.Name
		set.attributes(location, module.Attributes)
		set.attributes(location+" / default", module.ParameterDefaults)
		for _, w := range module.Wires() {
			set.attributes(location+" / wire "+w.Name, w.Attributes)
		}
		for _, memory := range module.Memories() {
			set.attributes(location+" / memory "+memory.Name, memory.Attributes)
		}
		for _, cell := range module.Cells() {
			cellLocation := location + " / cell " + cell.Name
			set.attributes(cellLocation, cell.Attributes)
			set.attributes(cellLocation+" / parameter", cell.Parameters)
			for _, port := range cell.PortNames() {
				signal, _ := cell.Port(port)
				set.signal(cellLocation+" / port "+port, signal)
			}
		}
		set.actions(location+" / connection", module.Connections())
		for _, process := range module.Processes() {
			set.process(location+" / process "+process.Name, process)
		}
	}
	return set
}

func (s *constantSet) process(location string, process *rtlil.Process) {
	s.attributes(location, process.Attributes)

	type pending struct {
		location string
		rule     *rtlil.CaseRule
	}
	stack := []pending{{location + " / root", &process.RootCase}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s.attributes(top.location, top.rule.Attributes)
		for i, compare := range top.rule.Compare {
			s.signal(fmt.Sprintf("%s / compare %d", top.location, i), compare)
		}
		s.actions(top.location, top.rule.Actions)
		for i, sw := range top.rule.Switches {
			switchLocation := fmt.Sprintf("%s / switch %d", top.location, i)
			s.attributes(switchLocation, sw.Attributes)
			s.signal(switchLocation+" / signal", sw.Signal)
			for j, rule := range sw.Cases {
				stack = append(stack, pending{fmt.Sprintf("%s / case %d", switchLocation, j), rule})
			}
		}
	}

	for i, sync := range process.Syncs {
		syncLocation := fmt.Sprintf("%s / sync %d", location, i)
		s.signal(syncLocation+" / signal", sync.Signal)
		s.actions(syncLocation, sync.Actions)
		for j, write := range sync.MemWriteActions {
			writeLocation := fmt.Sprintf("%s / memwr %d", syncLocation, j)
			s.attributes(writeLocation, write.Attributes)
			s.add(writeLocation+" / priority", write.PriorityMask)
			s.signal(writeLocation+" / address", write.Address)
			s.signal(writeLocation+" / data", write.Data)
			s.signal(writeLocation+" / enable", write.Enable)
		}
	}
}
