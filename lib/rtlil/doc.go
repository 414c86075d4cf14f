// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package rtlil is the in-memory netlist graph that the brtlil codec
// reads from and reconstructs into.
//
// A [Design] holds named [Module] values. A module holds wires, cells,
// memories, processes, and direct signal connections. Signals are
// described by [SigSpec], an ordered concatenation of wire slices and
// constant runs. Constants are [Const] values: vectors of four-valued
// logic [State] plus [ConstFlags].
//
// The package exposes a creation API (AddModule, AddWire, AddCell,
// AddMemory, AddProcess, Connect) that enforces name uniqueness within
// each collection. Nothing here validates netlist semantics; it is a
// container.
//
// Identifiers follow the RTLIL convention: public names start with a
// backslash, generated names with a dollar sign. [EscapeID] applies
// that convention to a plain name and is idempotent.
//
// [Dump] renders a design in the RTLIL text format. Output is sorted by
// name and therefore deterministic, which makes it suitable for
// comparing two designs structurally.
package rtlil
