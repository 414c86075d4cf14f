// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"github.com/bureau-foundation/brtlil/lib/brtlil/wire"
	"github.com/bureau-foundation/brtlil/lib/rtlil"
)

// encodeSigSpec emits one message chunk per host chunk. Every wire the
// signal references must belong to module: a reference to a foreign
// wire could not be resolved when the file is read back.
func encodeSigSpec(module *rtlil.Module, signal rtlil.SigSpec) (wire.SigSpec, error) {
	chunks := signal.Chunks()
	message := wire.SigSpec{Width: int64(signal.Size())}
	if len(chunks) == 0 {
		return message, nil
	}
	message.Chunks = make([]wire.SigChunk, 0, len(chunks))
	for i, chunk := range chunks {
		if !chunk.IsWire() {
			value, err := encodeConst(chunk.Data)
			if err != nil {
				return wire.SigSpec{}, within(err, "chunk %d", i)
			}
			message.Chunks = append(message.Chunks, wire.SigChunk{Const: &value})
			continue
		}
		if module.Wire(chunk.Wire.Name) != chunk.Wire {
			return wire.SigSpec{}, within(graphFault("wire %s is not part of module %s", chunk.Wire.Name, module.Name), "chunk %d", i)
		}
		message.Chunks = append(message.Chunks, wire.SigChunk{Wire: &wire.WireChunk{
			WireName: chunk.Wire.Name,
			Offset:   int64(chunk.Offset),
			Width:    int64(chunk.Width),
		}})
	}
	return message, nil
}

// decodeSigSpec rebuilds a signal, resolving wire chunks by name in
// module. Every wire of module must already exist.
//
// Chunk widths are checked against the declared width before a chunk
// is unpacked, so a constant never pads beyond what the signal can
// hold. Adjacent constant chunks are gathered into one run and
// appended once.
func decodeSigSpec(module *rtlil.Module, message wire.SigSpec) (rtlil.SigSpec, error) {
	var (
		signal rtlil.SigSpec
		total  int64
		run    rtlil.Const
	)
	flush := func() {
		if len(run.Bits) > 0 {
			signal.Append(rtlil.SigChunk{Data: run})
		}
		run = rtlil.Const{}
	}
	for i, chunk := range message.Chunks {
		switch {
		case chunk.Wire != nil && chunk.Const != nil:
			return rtlil.SigSpec{}, within(formatFault("chunk sets both a wire and a constant"), "chunk %d", i)

		case chunk.Const != nil:
			if width := chunk.Const.Width; width >= 0 && width > message.Width-total {
				return rtlil.SigSpec{}, within(formatFault("chunk widths exceed declared width %d", message.Width), "chunk %d", i)
			}
			value, err := decodeConst(*chunk.Const)
			if err != nil {
				return rtlil.SigSpec{}, within(err, "chunk %d", i)
			}
			total += chunk.Const.Width
			run.Bits = append(run.Bits, value.Bits...)
			run.Flags |= value.Flags

		case chunk.Wire != nil:
			reference := chunk.Wire
			name := rtlil.EscapeID(reference.WireName)
			target := module.Wire(name)
			if target == nil {
				return rtlil.SigSpec{}, within(graphFault("unknown wire %q", name), "chunk %d", i)
			}
			limit := int64(target.Width)
			if reference.Offset < 0 || reference.Width < 0 || reference.Offset > limit || reference.Width > limit-reference.Offset {
				return rtlil.SigSpec{}, within(graphFault("slice [%d +: %d] is outside wire %s of width %d",
					reference.Offset, reference.Width, name, target.Width), "chunk %d", i)
			}
			if reference.Width > message.Width-total {
				return rtlil.SigSpec{}, within(formatFault("chunk widths exceed declared width %d", message.Width), "chunk %d", i)
			}
			total += reference.Width
			flush()
			signal.Append(rtlil.SigChunk{Wire: target, Offset: int(reference.Offset), Width: int(reference.Width)})

		default:
			return rtlil.SigSpec{}, within(formatFault("chunk sets neither a wire nor a constant"), "chunk %d", i)
		}
	}
	flush()
	if total != message.Width || int64(signal.Size()) != message.Width {
		return rtlil.SigSpec{}, formatFault("declared width %d does not match chunk widths %d", message.Width, total)
	}
	return signal, nil
}

func encodeSigSig(module *rtlil.Module, pair rtlil.SigSig) (wire.SigSpec, wire.SigSpec, error) {
	left, err := encodeSigSpec(module, pair.Left)
	if err != nil {
		return wire.SigSpec{}, wire.SigSpec{}, within(err, "left")
	}
	right, err := encodeSigSpec(module, pair.Right)
	if err != nil {
		return wire.SigSpec{}, wire.SigSpec{}, within(err, "right")
	}
	return left, right, nil
}

func decodeSigSig(module *rtlil.Module, left, right wire.SigSpec) (rtlil.SigSig, error) {
	decodedLeft, err := decodeSigSpec(module, left)
	if err != nil {
		return rtlil.SigSig{}, within(err, "left")
	}
	decodedRight, err := decodeSigSpec(module, right)
	if err != nil {
		return rtlil.SigSig{}, within(err, "right")
	}
	return rtlil.SigSig{Left: decodedLeft, Right: decodedRight}, nil
}

func encodeActions(module *rtlil.Module, actions []rtlil.SigSig) ([]wire.Action, error) {
	if len(actions) == 0 {
		return nil, nil
	}
	encoded := make([]wire.Action, 0, len(actions))
	for i, action := range actions {
		left, right, err := encodeSigSig(module, action)
		if err != nil {
			return nil, within(err, "action %d", i)
		}
		encoded = append(encoded, wire.Action{Left: left, Right: right})
	}
	return encoded, nil
}

func decodeActions(module *rtlil.Module, messages []wire.Action) ([]rtlil.SigSig, error) {
	if len(messages) == 0 {
		return nil, nil
	}
	actions := make([]rtlil.SigSig, 0, len(messages))
	for i, message := range messages {
		action, err := decodeSigSig(module, message.Left, message.Right)
		if err != nil {
			return nil, within(err, "action %d", i)
		}
		actions = append(actions, action)
	}
	return actions, nil
}
