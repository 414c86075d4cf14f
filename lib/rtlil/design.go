// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rtlil

import (
	"fmt"
)

// Design is the top-level container: a set of uniquely named modules
// plus design-wide attributes.
type Design struct {
	// AutoIdx is the counter used to mint generated ($-prefixed)
	// identifiers. It only ever increases.
	AutoIdx int64

	Attributes Attributes

	modules map[string]*Module
}

// NewDesign returns an empty design.
func NewDesign() *Design {
	return &Design{
		AutoIdx:    1,
		Attributes: Attributes{},
		modules:    map[string]*Module{},
	}
}

// AddModule creates an empty module. The name is escaped with
// [EscapeID]. Returns an error if a module with that name exists.
func (d *Design) AddModule(name string) (*Module, error) {
	name = EscapeID(name)
	if name == "" {
		return nil, fmt.Errorf("module name is empty")
	}
	if d.modules == nil {
		d.modules = map[string]*Module{}
	}
	if _, exists := d.modules[name]; exists {
		return nil, fmt.Errorf("module %s already exists", name)
	}
	module := newModule(name)
	d.modules[name] = module
	return module, nil
}

// Module returns the named module, or nil.
func (d *Design) Module(name string) *Module {
	return d.modules[EscapeID(name)]
}

// Modules returns every module sorted by name.
func (d *Design) Modules() []*Module {
	return sortedValues(d.modules)
}

// NewID mints a fresh generated identifier and advances AutoIdx.
func (d *Design) NewID(prefix string) string {
	id := fmt.Sprintf("$%s$%d", prefix, d.AutoIdx)
	d.AutoIdx++
	return id
}

// Module is a named hardware block.
type Module struct {
	Name       string
	Attributes Attributes

	// ParameterDefaults holds default values for module parameters.
	ParameterDefaults Attributes

	availParameters map[string]struct{}
	wires           map[string]*Wire
	cells           map[string]*Cell
	memories        map[string]*Memory
	processes       map[string]*Process
	connections     []SigSig
}

func newModule(name string) *Module {
	return &Module{
		Name:              name,
		Attributes:        Attributes{},
		ParameterDefaults: Attributes{},
		availParameters:   map[string]struct{}{},
		wires:             map[string]*Wire{},
		cells:             map[string]*Cell{},
		memories:          map[string]*Memory{},
		processes:         map[string]*Process{},
	}
}

// AddWire creates a wire of the given width. Returns an error if the
// name is already used by a wire in this module or width is negative.
func (m *Module) AddWire(name string, width int) (*Wire, error) {
	name = EscapeID(name)
	if name == "" {
		return nil, fmt.Errorf("module %s: wire name is empty", m.Name)
	}
	if width < 0 {
		return nil, fmt.Errorf("module %s: wire %s has negative width %d", m.Name, name, width)
	}
	if _, exists := m.wires[name]; exists {
		return nil, fmt.Errorf("module %s: wire %s already exists", m.Name, name)
	}
	wire := &Wire{Name: name, Width: width, Attributes: Attributes{}}
	m.wires[name] = wire
	return wire, nil
}

// Wire returns the named wire, or nil.
func (m *Module) Wire(name string) *Wire {
	return m.wires[EscapeID(name)]
}

// Wires returns every wire sorted by name.
func (m *Module) Wires() []*Wire {
	return sortedValues(m.wires)
}

// AddCell creates a cell instantiating cellType.
func (m *Module) AddCell(name, cellType string) (*Cell, error) {
	name = EscapeID(name)
	if name == "" {
		return nil, fmt.Errorf("module %s: cell name is empty", m.Name)
	}
	if _, exists := m.cells[name]; exists {
		return nil, fmt.Errorf("module %s: cell %s already exists", m.Name, name)
	}
	cell := &Cell{
		Name:        name,
		Type:        EscapeID(cellType),
		Parameters:  Attributes{},
		Attributes:  Attributes{},
		connections: map[string]SigSpec{},
	}
	m.cells[name] = cell
	return cell, nil
}

// Cell returns the named cell, or nil.
func (m *Module) Cell(name string) *Cell {
	return m.cells[EscapeID(name)]
}

// Cells returns every cell sorted by name.
func (m *Module) Cells() []*Cell {
	return sortedValues(m.cells)
}

// AddMemory creates a memory with zero width and size.
func (m *Module) AddMemory(name string) (*Memory, error) {
	name = EscapeID(name)
	if name == "" {
		return nil, fmt.Errorf("module %s: memory name is empty", m.Name)
	}
	if _, exists := m.memories[name]; exists {
		return nil, fmt.Errorf("module %s: memory %s already exists", m.Name, name)
	}
	memory := &Memory{Name: name, Attributes: Attributes{}}
	m.memories[name] = memory
	return memory, nil
}

// Memory returns the named memory, or nil.
func (m *Module) Memory(name string) *Memory {
	return m.memories[EscapeID(name)]
}

// Memories returns every memory sorted by name.
func (m *Module) Memories() []*Memory {
	return sortedValues(m.memories)
}

// AddProcess creates a process with an empty root case.
func (m *Module) AddProcess(name string) (*Process, error) {
	name = EscapeID(name)
	if name == "" {
		return nil, fmt.Errorf("module %s: process name is empty", m.Name)
	}
	if _, exists := m.processes[name]; exists {
		return nil, fmt.Errorf("module %s: process %s already exists", m.Name, name)
	}
	process := &Process{
		Name:       name,
		Attributes: Attributes{},
		RootCase:   CaseRule{Attributes: Attributes{}},
	}
	m.processes[name] = process
	return process, nil
}

// Process returns the named process, or nil.
func (m *Module) Process(name string) *Process {
	return m.processes[EscapeID(name)]
}

// Processes returns every process sorted by name.
func (m *Module) Processes() []*Process {
	return sortedValues(m.processes)
}

// Connect records that left is driven by right.
func (m *Module) Connect(left, right SigSpec) {
	m.connections = append(m.connections, SigSig{Left: left, Right: right})
}

// Connections returns the direct connections in insertion order. The
// caller must not modify the returned slice.
func (m *Module) Connections() []SigSig {
	return m.connections
}

// AddAvailParameter declares name as a parameter this module accepts.
func (m *Module) AddAvailParameter(name string) {
	m.availParameters[EscapeID(name)] = struct{}{}
}

// HasAvailParameter reports whether name was declared.
func (m *Module) HasAvailParameter(name string) bool {
	_, ok := m.availParameters[EscapeID(name)]
	return ok
}

// AvailParameterNames returns the declared parameter names sorted.
func (m *Module) AvailParameterNames() []string {
	return sortedKeys(m.availParameters)
}

// Blackbox reports whether the module carries a true \blackbox
// attribute.
func (m *Module) Blackbox() bool {
	value, ok := m.Attributes[IDBlackbox]
	if !ok {
		return false
	}
	for _, bit := range value.Bits {
		if bit == S1 {
			return true
		}
	}
	return false
}

// SetBlackbox sets or removes the \blackbox attribute.
func (m *Module) SetBlackbox(blackbox bool) {
	if blackbox {
		m.Attributes[IDBlackbox] = ConstFromInt(1, 1)
		return
	}
	delete(m.Attributes, IDBlackbox)
}

// Wire is a named bit vector, optionally a module port.
type Wire struct {
	Name       string
	Width      int
	PortInput  bool
	PortOutput bool
	// PortID is the 1-based port position; 0 means not a port.
	PortID int
	// Upto marks a wire declared with ascending bit indices.
	Upto        bool
	IsSigned    bool
	StartOffset int
	Attributes  Attributes
}

// Cell is an instance of a primitive or a module.
type Cell struct {
	Name       string
	Type       string
	Parameters Attributes
	Attributes Attributes

	connections map[string]SigSpec
}

// SetPort connects port (escaped) to signal, replacing any previous
// connection.
func (c *Cell) SetPort(port string, signal SigSpec) {
	if c.connections == nil {
		c.connections = map[string]SigSpec{}
	}
	c.connections[EscapeID(port)] = signal
}

// Port returns the signal connected to port and whether it is
// connected.
func (c *Cell) Port(port string) (SigSpec, bool) {
	signal, ok := c.connections[EscapeID(port)]
	return signal, ok
}

// PortNames returns the connected port names sorted.
func (c *Cell) PortNames() []string {
	return sortedKeys(c.connections)
}

// Memory is a behavioural memory array.
type Memory struct {
	Name        string
	Width       int
	Size        int
	StartOffset int
	Attributes  Attributes
}

type named interface {
	*Module | *Wire | *Cell | *Memory | *Process
}

func sortedValues[V named](m map[string]V) []V {
	values := make([]V, 0, len(m))
	for _, key := range sortedKeys(m) {
		values = append(values, m[key])
	}
	return values
}
