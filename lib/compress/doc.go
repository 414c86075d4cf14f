// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress provides the self-identifying stream compression
// used by binary RTLIL files.
//
// Three algorithms are supported, each through its standard container
// with its standard magic number:
//
//   - gzip (1f 8b): the deflate-family default, via klauspost/compress
//   - zstd (28 b5 2f fd): via klauspost/compress/zstd
//   - LZ4 frame (04 22 4d 18): via pierrec/lz4
//
// No algorithm tag is stored beside the data. Readers peek
// [MagicLength] bytes and call [Detect]; anything that matches no
// magic is treated as uncompressed. A valid uncompressed binary RTLIL
// payload always starts with a CBOR map header (0xa0-0xbf), which
// collides with none of the magics.
package compress
