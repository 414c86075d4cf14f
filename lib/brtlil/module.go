// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"maps"
	"slices"
	"strings"

	"github.com/bureau-foundation/brtlil/lib/brtlil/wire"
	"github.com/bureau-foundation/brtlil/lib/rtlil"
)

// encodeDesign converts design into its message tree. Every collection
// is visited in name order, so equal designs produce equal trees and,
// through deterministic CBOR, equal bytes. Object counts are added to
// stats as modules are visited.
func encodeDesign(design *rtlil.Design, maxDepth int, stats *Stats) (*wire.Design, error) {
	attributes, err := encodeAttributes(design.Attributes)
	if err != nil {
		return nil, within(err, "design")
	}
	message := &wire.Design{
		Version:    wire.FormatVersion,
		AutoIdx:    design.AutoIdx,
		Attributes: attributes,
	}
	for _, module := range design.Modules() {
		encoded, err := encodeModule(module, maxDepth)
		if err != nil {
			return nil, within(err, "module %s", module.Name)
		}
		if message.Modules == nil {
			message.Modules = map[string]wire.Module{}
		}
		message.Modules[module.Name] = encoded
		stats.countModule(module)
	}
	return message, nil
}

func encodeModule(module *rtlil.Module, maxDepth int) (wire.Module, error) {
	attributes, err := encodeAttributes(module.Attributes)
	if err != nil {
		return wire.Module{}, err
	}
	message := wire.Module{
		Name:       module.Name,
		Attributes: attributes,
		Blackbox:   module.Blackbox(),
	}

	for _, w := range module.Wires() {
		encoded, err := encodeWire(w)
		if err != nil {
			return wire.Module{}, within(err, "wire %s", w.Name)
		}
		if message.Wires == nil {
			message.Wires = map[string]wire.Wire{}
		}
		message.Wires[w.Name] = encoded
	}

	for _, cell := range module.Cells() {
		encoded, err := encodeCell(module, cell)
		if err != nil {
			return wire.Module{}, within(err, "cell %s", cell.Name)
		}
		if message.Cells == nil {
			message.Cells = map[string]wire.Cell{}
		}
		message.Cells[cell.Name] = encoded
	}

	for _, memory := range module.Memories() {
		encoded, err := encodeMemory(memory)
		if err != nil {
			return wire.Module{}, within(err, "memory %s", memory.Name)
		}
		if message.Memories == nil {
			message.Memories = map[string]wire.Memory{}
		}
		message.Memories[memory.Name] = encoded
	}

	for _, process := range module.Processes() {
		encoded, err := encodeProcess(module, process, maxDepth)
		if err != nil {
			return wire.Module{}, within(err, "process %s", process.Name)
		}
		if message.Processes == nil {
			message.Processes = map[string]wire.Process{}
		}
		message.Processes[process.Name] = encoded
	}

	for i, connection := range module.Connections() {
		left, right, err := encodeSigSig(module, connection)
		if err != nil {
			return wire.Module{}, within(err, "connection %d", i)
		}
		message.Connections = append(message.Connections, wire.Connection{Left: left, Right: right})
	}

	if names := module.AvailParameterNames(); len(names) > 0 {
		message.AvailParameters = names
	}

	defaults, err := encodeAttributes(module.ParameterDefaults)
	if err != nil {
		return wire.Module{}, within(err, "parameter defaults")
	}
	message.ParameterDefaultValues = defaults
	return message, nil
}

// decodeDesign adds every module of message to design.
//
// Module names are checked against design before anything is created,
// so a name collision leaves design untouched. Any later failure may
// leave the modules decoded so far in place.
func decodeDesign(design *rtlil.Design, message *wire.Design, maxDepth int, stats *Stats) error {
	if !strings.HasPrefix(message.Version, wire.FormatFamily) {
		return formatFault("unsupported format version %q (want %s*)", message.Version, wire.FormatFamily)
	}

	keys := sortedKeys(message.Modules)
	names := make([]string, len(keys))
	seen := make(map[string]bool, len(keys))
	for i, key := range keys {
		name, err := recordName(key, message.Modules[key].Name, "module")
		if err != nil {
			return within(err, "module %s", key)
		}
		if design.Module(name) != nil {
			return within(graphFault("design already has a module named %s", name), "module %s", name)
		}
		if seen[name] {
			return within(graphFault("stream holds module %s twice", name), "module %s", name)
		}
		seen[name] = true
		names[i] = name
	}

	if design.Attributes == nil {
		design.Attributes = rtlil.Attributes{}
	}
	if err := decodeAttributes(design.Attributes, message.Attributes); err != nil {
		return within(err, "design")
	}

	for i, key := range keys {
		module, err := design.AddModule(names[i])
		if err != nil {
			return within(graphFault("%w", err), "module %s", names[i])
		}
		encoded := message.Modules[key]
		if err := decodeModule(module, &encoded, maxDepth); err != nil {
			return within(err, "module %s", module.Name)
		}
		stats.countModule(module)
	}

	design.AutoIdx = max(design.AutoIdx, message.AutoIdx)
	return nil
}

// decodeModule fills module from message in two phases. Signal
// references name wires, so every wire is created before any cell,
// process or connection is decoded.
func decodeModule(module *rtlil.Module, message *wire.Module, maxDepth int) error {
	if err := decodeAttributes(module.Attributes, message.Attributes); err != nil {
		return err
	}

	for _, key := range sortedKeys(message.Wires) {
		if err := decodeWire(module, key, message.Wires[key]); err != nil {
			return within(err, "wire %s", rtlil.EscapeID(key))
		}
	}

	for _, key := range sortedKeys(message.Cells) {
		if err := decodeCell(module, key, message.Cells[key]); err != nil {
			return within(err, "cell %s", rtlil.EscapeID(key))
		}
	}

	for _, key := range sortedKeys(message.Memories) {
		if err := decodeMemory(module, key, message.Memories[key]); err != nil {
			return within(err, "memory %s", rtlil.EscapeID(key))
		}
	}

	for _, key := range sortedKeys(message.Processes) {
		process := message.Processes[key]
		if err := decodeProcess(module, key, &process, maxDepth); err != nil {
			return within(err, "process %s", rtlil.EscapeID(key))
		}
	}

	for i, connection := range message.Connections {
		decoded, err := decodeSigSig(module, connection.Left, connection.Right)
		if err != nil {
			return within(err, "connection %d", i)
		}
		module.Connect(decoded.Left, decoded.Right)
	}

	for _, name := range message.AvailParameters {
		module.AddAvailParameter(name)
	}

	if err := decodeAttributes(module.ParameterDefaults, message.ParameterDefaultValues); err != nil {
		return within(err, "parameter defaults")
	}

	if message.Blackbox {
		module.SetBlackbox(true)
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
