// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR profile used by binary RTLIL files.
//
// Encoding uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items. A design
// serialized twice produces identical bytes, which makes files
// diffable and content digests stable.
//
// Decoding is parameterized by [Limits]. A binary RTLIL file is
// untrusted input and the netlist structures it carries nest
// recursively (process case trees), so the decoder bounds nesting depth
// and collection sizes before building any Go value. Duplicate map keys
// are rejected.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(message)
//	err = codec.UnmarshalLimits(data, &message, limits)
//
// # Struct Tag Rules
//
// Message types use `cbor:"N,keyasint,omitempty"` tags: small integer
// keys, with zero-valued fields omitted. Field presence, not position,
// identifies a value, so fields can be added without breaking older
// readers. Key numbers are protocol constants.
package codec
