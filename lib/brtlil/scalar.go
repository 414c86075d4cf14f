// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"math"

	"github.com/bureau-foundation/brtlil/lib/brtlil/wire"
	"github.com/bureau-foundation/brtlil/lib/rtlil"
)

// MaxConstWidth bounds the width of a decoded constant. Unpacking
// allocates one state per bit, and padding means the width is not
// bounded by the packed length.
const MaxConstWidth = 1 << 26

func encodeConst(value rtlil.Const) (wire.Const, error) {
	packed, err := PackBits(value.Bits)
	if err != nil {
		return wire.Const{}, err
	}
	return wire.Const{
		Bits:  packed,
		Width: int64(value.Width()),
		Flags: uint32(value.Flags),
	}, nil
}

func decodeConst(message wire.Const) (rtlil.Const, error) {
	if message.Width < 0 {
		return rtlil.Const{}, formatFault("constant has negative width %d", message.Width)
	}
	if message.Width > MaxConstWidth {
		return rtlil.Const{}, formatFault("constant width %d exceeds %d", message.Width, MaxConstWidth)
	}
	return UnpackBits(message.Bits, int(message.Width), rtlil.ConstFlags(message.Flags)), nil
}

// encodeAttributes returns nil for an empty map so the field is
// omitted from the message.
func encodeAttributes(attributes rtlil.Attributes) (map[string]wire.Const, error) {
	if len(attributes) == 0 {
		return nil, nil
	}
	encoded := make(map[string]wire.Const, len(attributes))
	for _, name := range attributes.Names() {
		value, err := encodeConst(attributes[name])
		if err != nil {
			return nil, within(err, "attribute %s", name)
		}
		encoded[name] = value
	}
	return encoded, nil
}

// decodeAttributes merges messages into target, escaping each name.
func decodeAttributes(target rtlil.Attributes, messages map[string]wire.Const) error {
	for _, name := range sortedKeys(messages) {
		value, err := decodeConst(messages[name])
		if err != nil {
			return within(err, "attribute %s", name)
		}
		target[rtlil.EscapeID(name)] = value
	}
	return nil
}

func encodeWire(w *rtlil.Wire) (wire.Wire, error) {
	attributes, err := encodeAttributes(w.Attributes)
	if err != nil {
		return wire.Wire{}, err
	}
	return wire.Wire{
		Name:        w.Name,
		Width:       int64(w.Width),
		PortInput:   w.PortInput,
		PortOutput:  w.PortOutput,
		PortID:      int64(w.PortID),
		Upto:        w.Upto,
		IsSigned:    w.IsSigned,
		StartOffset: int64(w.StartOffset),
		Attributes:  attributes,
	}, nil
}

// decodeWire creates the wire described by message in module. The
// name comes from the record, falling back to the collection key.
func decodeWire(module *rtlil.Module, key string, message wire.Wire) error {
	name, err := recordName(key, message.Name, "wire")
	if err != nil {
		return err
	}
	if message.Width < 0 {
		return formatFault("wire has negative width %d", message.Width)
	}
	if message.Width > math.MaxInt32 {
		return formatFault("wire width %d exceeds %d", message.Width, math.MaxInt32)
	}
	created, err := module.AddWire(name, int(message.Width))
	if err != nil {
		return graphFault("%w", err)
	}
	created.PortInput = message.PortInput
	created.PortOutput = message.PortOutput
	created.PortID = int(message.PortID)
	created.Upto = message.Upto
	created.IsSigned = message.IsSigned
	created.StartOffset = int(message.StartOffset)
	return decodeAttributes(created.Attributes, message.Attributes)
}

func encodeMemory(memory *rtlil.Memory) (wire.Memory, error) {
	attributes, err := encodeAttributes(memory.Attributes)
	if err != nil {
		return wire.Memory{}, err
	}
	return wire.Memory{
		Name:        memory.Name,
		Width:       int64(memory.Width),
		Size:        int64(memory.Size),
		StartOffset: int64(memory.StartOffset),
		Attributes:  attributes,
	}, nil
}

func decodeMemory(module *rtlil.Module, key string, message wire.Memory) error {
	name, err := recordName(key, message.Name, "memory")
	if err != nil {
		return err
	}
	if message.Width < 0 {
		return formatFault("memory has negative width %d", message.Width)
	}
	if message.Width > math.MaxInt32 {
		return formatFault("memory width %d exceeds %d", message.Width, math.MaxInt32)
	}
	if message.Size < 0 {
		return formatFault("memory has negative size %d", message.Size)
	}
	if message.Size > math.MaxInt32 {
		return formatFault("memory size %d exceeds %d", message.Size, math.MaxInt32)
	}
	created, err := module.AddMemory(name)
	if err != nil {
		return graphFault("%w", err)
	}
	created.Width = int(message.Width)
	created.Size = int(message.Size)
	created.StartOffset = int(message.StartOffset)
	return decodeAttributes(created.Attributes, message.Attributes)
}

// encodeCell maps a cell including its port connections. Connections
// are signal references and are resolved against module.
func encodeCell(module *rtlil.Module, cell *rtlil.Cell) (wire.Cell, error) {
	parameters, err := encodeAttributes(cell.Parameters)
	if err != nil {
		return wire.Cell{}, within(err, "parameters")
	}
	attributes, err := encodeAttributes(cell.Attributes)
	if err != nil {
		return wire.Cell{}, err
	}
	message := wire.Cell{
		Name:       cell.Name,
		Type:       cell.Type,
		Parameters: parameters,
		Attributes: attributes,
	}
	for _, port := range cell.PortNames() {
		signal, _ := cell.Port(port)
		encoded, err := encodeSigSpec(module, signal)
		if err != nil {
			return wire.Cell{}, within(err, "port %s", port)
		}
		if message.Connections == nil {
			message.Connections = map[string]wire.SigSpec{}
		}
		message.Connections[port] = encoded
	}
	return message, nil
}

// decodeCell requires every wire of module to exist already.
func decodeCell(module *rtlil.Module, key string, message wire.Cell) error {
	name, err := recordName(key, message.Name, "cell")
	if err != nil {
		return err
	}
	if message.Type == "" {
		return formatFault("cell has no type")
	}
	created, err := module.AddCell(name, rtlil.EscapeID(message.Type))
	if err != nil {
		return graphFault("%w", err)
	}
	if err := decodeAttributes(created.Parameters, message.Parameters); err != nil {
		return within(err, "parameters")
	}
	if err := decodeAttributes(created.Attributes, message.Attributes); err != nil {
		return err
	}
	for _, port := range sortedKeys(message.Connections) {
		if _, taken := created.Port(port); taken {
			return graphFault("cell %s connects port %s twice", name, rtlil.EscapeID(port))
		}
		signal, err := decodeSigSpec(module, message.Connections[port])
		if err != nil {
			return within(err, "port %s", port)
		}
		created.SetPort(port, signal)
	}
	return nil
}

// recordName picks the object name from the record, falling back to
// the key it was stored under. A record whose name disagrees with its
// key is corrupt.
func recordName(key, recorded, what string) (string, error) {
	switch {
	case recorded == "" && key == "":
		return "", formatFault("%s has no name", what)
	case recorded == "":
		return rtlil.EscapeID(key), nil
	case key != "" && rtlil.EscapeID(key) != rtlil.EscapeID(recorded):
		return "", formatFault("%s record name %s does not match key %s", what, recorded, key)
	default:
		return rtlil.EscapeID(recorded), nil
	}
}
