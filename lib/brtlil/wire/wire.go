// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire defines the binary RTLIL message tree.
//
// Every message is a CBOR map with small integer keys (keyasint). A
// field is identified by its key, never by position, and empty fields
// are omitted. Decoders ignore keys they do not know and treat missing
// keys as zero values, so fields can be added without breaking older
// readers. The key numbers are protocol constants: changing one breaks
// every file written before the change.
//
// Collections keyed by name (modules, wires, cells, memories,
// processes, cell ports, attributes) are CBOR maps. Lists whose order
// carries meaning (connections, case compare values, actions, switches,
// cases, sync rules) are CBOR arrays.
package wire

// FormatVersion is written into every design. Readers accept any
// version sharing the FormatFamily prefix.
const (
	FormatVersion = "yosys-brtlil-1.0"
	FormatFamily  = "yosys-brtlil-1."
)

// Design is the root message.
type Design struct {
	Version    string            `cbor:"1,keyasint,omitempty"`
	AutoIdx    int64             `cbor:"2,keyasint,omitempty"`
	Attributes map[string]Const  `cbor:"3,keyasint,omitempty"`
	Modules    map[string]Module `cbor:"4,keyasint,omitempty"`
}

// Module carries one module. Wires must be reconstructed before any
// SigSpec in the module is resolved.
type Module struct {
	Name                   string             `cbor:"1,keyasint,omitempty"`
	Attributes             map[string]Const   `cbor:"2,keyasint,omitempty"`
	Wires                  map[string]Wire    `cbor:"3,keyasint,omitempty"`
	Cells                  map[string]Cell    `cbor:"4,keyasint,omitempty"`
	Memories               map[string]Memory  `cbor:"5,keyasint,omitempty"`
	Processes              map[string]Process `cbor:"6,keyasint,omitempty"`
	Connections            []Connection       `cbor:"7,keyasint,omitempty"`
	AvailParameters        []string           `cbor:"8,keyasint,omitempty"`
	ParameterDefaultValues map[string]Const   `cbor:"9,keyasint,omitempty"`
	Blackbox               bool               `cbor:"10,keyasint,omitempty"`
}

// Wire carries one wire declaration.
type Wire struct {
	Name        string           `cbor:"1,keyasint,omitempty"`
	Width       int64            `cbor:"2,keyasint,omitempty"`
	PortInput   bool             `cbor:"3,keyasint,omitempty"`
	PortOutput  bool             `cbor:"4,keyasint,omitempty"`
	PortID      int64            `cbor:"5,keyasint,omitempty"`
	Upto        bool             `cbor:"6,keyasint,omitempty"`
	IsSigned    bool             `cbor:"7,keyasint,omitempty"`
	StartOffset int64            `cbor:"8,keyasint,omitempty"`
	Attributes  map[string]Const `cbor:"9,keyasint,omitempty"`
}

// Cell carries one cell instance. Connections are keyed by port name.
type Cell struct {
	Name        string             `cbor:"1,keyasint,omitempty"`
	Type        string             `cbor:"2,keyasint,omitempty"`
	Parameters  map[string]Const   `cbor:"3,keyasint,omitempty"`
	Connections map[string]SigSpec `cbor:"4,keyasint,omitempty"`
	Attributes  map[string]Const   `cbor:"5,keyasint,omitempty"`
}

// Memory carries one memory declaration.
type Memory struct {
	Name        string           `cbor:"1,keyasint,omitempty"`
	Width       int64            `cbor:"2,keyasint,omitempty"`
	Size        int64            `cbor:"3,keyasint,omitempty"`
	StartOffset int64            `cbor:"4,keyasint,omitempty"`
	Attributes  map[string]Const `cbor:"5,keyasint,omitempty"`
}

// Process carries one process: its decision tree and sync rules.
type Process struct {
	Name       string           `cbor:"1,keyasint,omitempty"`
	RootCase   CaseRule         `cbor:"2,keyasint"`
	Syncs      []SyncRule       `cbor:"3,keyasint,omitempty"`
	Attributes map[string]Const `cbor:"4,keyasint,omitempty"`
}

// CaseRule is a node of the decision tree. Switch order is priority
// order and must be preserved.
type CaseRule struct {
	Compare    []SigSpec        `cbor:"1,keyasint,omitempty"`
	Actions    []Action         `cbor:"2,keyasint,omitempty"`
	Switches   []SwitchRule     `cbor:"3,keyasint,omitempty"`
	Attributes map[string]Const `cbor:"4,keyasint,omitempty"`
}

// SwitchRule selects among Cases, first match wins.
type SwitchRule struct {
	Signal     SigSpec          `cbor:"1,keyasint"`
	Cases      []CaseRule       `cbor:"2,keyasint,omitempty"`
	Attributes map[string]Const `cbor:"3,keyasint,omitempty"`
}

// SyncRule carries one synchronization rule. Type uses the numbering
// of rtlil.SyncType.
type SyncRule struct {
	Type            int64            `cbor:"1,keyasint,omitempty"`
	Signal          SigSpec          `cbor:"2,keyasint"`
	Actions         []Action         `cbor:"3,keyasint,omitempty"`
	MemWriteActions []MemWriteAction `cbor:"4,keyasint,omitempty"`
}

// MemWriteAction carries one memory write port inside a sync rule.
type MemWriteAction struct {
	MemID        string           `cbor:"1,keyasint,omitempty"`
	Address      SigSpec          `cbor:"2,keyasint"`
	Data         SigSpec          `cbor:"3,keyasint"`
	Enable       SigSpec          `cbor:"4,keyasint"`
	PriorityMask Const            `cbor:"5,keyasint"`
	Attributes   map[string]Const `cbor:"6,keyasint,omitempty"`
}

// Connection is a module-level connection: Left driven by Right.
type Connection struct {
	Left  SigSpec `cbor:"1,keyasint"`
	Right SigSpec `cbor:"2,keyasint"`
}

// Action is an assignment inside a case or sync rule.
type Action struct {
	Left  SigSpec `cbor:"1,keyasint"`
	Right SigSpec `cbor:"2,keyasint"`
}

// SigSpec is a concatenation of chunks, least significant first.
// Width must equal the sum of the chunk widths.
type SigSpec struct {
	Width  int64      `cbor:"1,keyasint,omitempty"`
	Chunks []SigChunk `cbor:"2,keyasint,omitempty"`
}

// SigChunk is a tagged variant: exactly one of Wire and Const is set.
type SigChunk struct {
	Wire  *WireChunk `cbor:"1,keyasint,omitempty"`
	Const *Const     `cbor:"2,keyasint,omitempty"`
}

// WireChunk refers to Width bits of the named wire starting at Offset.
type WireChunk struct {
	WireName string `cbor:"1,keyasint,omitempty"`
	Offset   int64  `cbor:"2,keyasint,omitempty"`
	Width    int64  `cbor:"3,keyasint,omitempty"`
}

// Const is a packed logic vector: two bits per state, four states per
// byte, least significant pair first. Width is the state count.
type Const struct {
	Bits  []byte `cbor:"1,keyasint,omitempty"`
	Width int64  `cbor:"2,keyasint,omitempty"`
	Flags uint32 `cbor:"3,keyasint,omitempty"`
}
