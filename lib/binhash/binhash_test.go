// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/zeebo/blake3"
)

func TestHashPayloadIsKeyed(t *testing.T) {
	content := []byte("module \\top")
	got := HashPayload(content)

	plain := blake3.Sum256(content)
	if got == Digest(plain) {
		t.Error("payload digest equals the unkeyed BLAKE3 sum; domain key not applied")
	}
	if again := HashPayload(content); again != got {
		t.Errorf("HashPayload not deterministic: %x != %x", got, again)
	}
}

func TestHashFileMatchesHashPayload(t *testing.T) {
	content := []byte("hello, brtlil")
	path := filepath.Join(t.TempDir(), "design.brtlil")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if want := HashPayload(content); got != want {
		t.Errorf("HashFile = %x, want %x", got, want)
	}
}

func TestHashFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := HashFile(path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if want := HashPayload(nil); got != want {
		t.Errorf("HashFile(empty) = %x, want %x", got, want)
	}
}

func TestHashFileNonexistent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist")
	if _, err := HashFile(path); err == nil {
		t.Fatal("HashFile should fail for nonexistent file")
	}
}

func TestHashReaderLarge(t *testing.T) {
	// Ensure streaming works for inputs larger than typical buffers.
	content := make([]byte, 256*1024)
	for i := range content {
		content[i] = byte(i % 251)
	}

	got, err := HashReader(bytes.NewReader(content))
	if err != nil {
		t.Fatalf("HashReader: %v", err)
	}
	if want := HashPayload(content); got != want {
		t.Errorf("HashReader(large) = %x, want %x", got, want)
	}
}

func TestHashPayloadDifferentContent(t *testing.T) {
	if HashPayload([]byte("content A")) == HashPayload([]byte("content B")) {
		t.Error("different payloads should produce different digests")
	}
}

func TestParseDigestRoundTrip(t *testing.T) {
	original := HashPayload([]byte("round-trip"))
	formatted := FormatDigest(original)
	if length := len(formatted); length != 64 {
		t.Errorf("FormatDigest length = %d, want 64", length)
	}

	parsed, err := ParseDigest(formatted)
	if err != nil {
		t.Fatalf("ParseDigest: %v", err)
	}
	if parsed != original {
		t.Errorf("ParseDigest round-trip failed: %x != %x", parsed, original)
	}
}

func TestParseDigestInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"},
		{"too short", "abcd"},
		{"too long", "abcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789aa"},
		{"empty", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseDigest(test.input)
			if err == nil {
				t.Errorf("ParseDigest(%q) should fail", test.input)
			}
		})
	}
}
