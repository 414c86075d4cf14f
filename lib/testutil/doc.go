// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test fixtures and helpers for
// brtlil packages.
//
// Fixture designs:
//
//   - [AndGateDesign] -- one module, one $and cell driving an 8-bit
//     output; the smallest design with a cell and port connections
//   - [SampleDesign] -- every construct the binary format carries:
//     attributes of every kind, port and non-port wires, sliced and
//     constant signals, memories, nested processes with sync rules and
//     memory writes, connections, parameters and a blackbox module
//   - [NestedCaseDesign] -- a process whose decision tree is an
//     arbitrarily deep chain, for depth-limit tests
//
// [RequireSameDesign] compares two designs through their RTLIL text
// dump, which is emitted in name order and so ignores construction
// order. It reports the first differing line rather than two whole
// dumps.
//
// [UniqueName] mints RTLIL identifiers that no earlier call in the
// process returned.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package depends only on lib/rtlil.
package testutil
