// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package brtlil reads and writes binary RTLIL: a compact encoding of
// an [rtlil.Design] as a CBOR message tree, optionally compressed.
//
// # Writing and reading
//
//	writer := brtlil.NewWriter(brtlil.WithLogger(logger))
//	if err := writer.WriteDesign(design, file, true); err != nil { ... }
//
//	reader := brtlil.NewReader()
//	if err := reader.ReadDesign(rtlil.NewDesign(), file); err != nil { ... }
//
// The message tree is defined in package [wire]. Logic vectors are
// packed two bits per state by [PackBits]. Signals refer to wires by
// name, so a reader creates every wire of a module before it resolves
// any signal in that module.
//
// Output is deterministic: collections are emitted in name order and
// CBOR maps are encoded with sorted keys, so equal designs produce
// identical bytes under one format version.
//
// # Compression
//
// With compression requested, the payload is wrapped in gzip by
// default, or zstd or LZ4 as chosen by [WithCompression]. Readers
// identify the algorithm from the stream's magic number; no flag is
// stored and no seeking is needed.
//
// # Errors
//
// Every failure is an [*Error] whose [Kind] separates stream failures
// ([KindIO]), malformed or over-limit data ([KindFormat]), data that
// does not describe a consistent graph ([KindGraph]), and everything
// else ([KindInternal]). Error paths locate the failing element, e.g.
// `module \top / cell \g / port \A / chunk 0`.
//
// # Limits
//
// Process decision trees are walked with explicit stacks and bounded
// by [Limits].MaxCaseDepth in both directions. The CBOR decoder's
// nesting limit is derived from the same bound, so a hostile file is
// rejected before decoding recurses into it.
package brtlil
