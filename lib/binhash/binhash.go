// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 keyed digest.
type Digest [32]byte

// payloadDomainKey separates payload digests from any other BLAKE3 use
// of the same bytes. Changing it changes every digest ever reported.
// The bytes are the ASCII domain name, zero-padded to 32.
var payloadDomainKey = [32]byte{
	'b', 'r', 't', 'l', 'i', 'l', '.', 'p', 'a', 'y', 'l', 'o', 'a', 'd',
}

func newHasher() *blake3.Hasher {
	hasher, err := blake3.NewKeyed(payloadDomainKey[:])
	if err != nil {
		panic("binhash: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	return hasher
}

func sum(hasher *blake3.Hasher) Digest {
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// HashPayload computes the digest of an uncompressed binary RTLIL
// payload. Compression is not part of the input, so a design has the
// same digest whichever algorithm stored it.
func HashPayload(payload []byte) Digest {
	hasher := newHasher()
	hasher.Write(payload)
	return sum(hasher)
}

// HashReader streams r through the payload hash with constant memory.
func HashReader(r io.Reader) (Digest, error) {
	hasher := newHasher()
	if _, err := io.Copy(hasher, r); err != nil {
		return Digest{}, fmt.Errorf("hashing: %w", err)
	}
	return sum(hasher), nil
}

// HashFile streams the file at path through the payload hash. The
// file's bytes are hashed as they are: a compressed file hashes
// differently from its payload.
func HashFile(path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	digest, err := HashReader(file)
	if err != nil {
		return Digest{}, fmt.Errorf("%s: %w", path, err)
	}
	return digest, nil
}

// FormatDigest returns the hex-encoded string representation of a
// digest, as printed by `brtlil info` and logged.
func FormatDigest(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// ParseDigest parses a hex-encoded digest string. Returns an error if
// the string is not a valid 64-character hex encoding of 32 bytes.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != 32 {
		return digest, fmt.Errorf("hash digest is %d bytes, want 32", len(decoded))
	}
	copy(digest[:], decoded)
	return digest, nil
}
