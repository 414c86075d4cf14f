// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash provides BLAKE3 content digests for binary RTLIL
// payloads.
//
// A digest is taken over the uncompressed CBOR payload, so two files
// holding the same design have the same digest regardless of which
// compression algorithm wrote them. Because the encoder is
// deterministic, equal designs also have equal digests. Hashing uses
// BLAKE3 keyed mode with a fixed domain key, keeping these digests
// distinct from plain BLAKE3 sums of the same bytes.
//
// The API surface:
//
//   - [HashPayload] -- digest of an in-memory payload
//   - [HashReader] and [HashFile] -- streaming digests with constant
//     memory usage
//   - [FormatDigest] and [ParseDigest] -- the canonical hex form
//
// This package has no dependencies on other brtlil packages.
package binhash
