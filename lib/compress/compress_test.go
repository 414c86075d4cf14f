// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

var allAlgorithms = []Algorithm{None, Gzip, Zstd, LZ4}

func compressBytes(t *testing.T, data []byte, algorithm Algorithm, level Level) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer, err := NewWriter(&buffer, algorithm, level)
	if err != nil {
		t.Fatalf("NewWriter(%s): %v", algorithm, err)
	}
	if _, err := writer.Write(data); err != nil {
		t.Fatalf("Write(%s): %v", algorithm, err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close(%s): %v", algorithm, err)
	}
	return buffer.Bytes()
}

func TestRoundtripAllAlgorithms(t *testing.T) {
	payload := []byte(strings.Repeat(`cell $and \g connect \A \a connect \B \b `, 200))

	for _, algorithm := range allAlgorithms {
		for _, level := range []Level{LevelDefault, LevelFastest, LevelBetter, LevelBest} {
			t.Run(algorithm.String()+"/"+level.String(), func(t *testing.T) {
				compressed := compressBytes(t, payload, algorithm, level)
				if algorithm != None && len(compressed) >= len(payload) {
					t.Errorf("compressed size %d not smaller than payload %d", len(compressed), len(payload))
				}

				if got := Detect(compressed); got != algorithm {
					t.Fatalf("Detect = %s, want %s", got, algorithm)
				}

				reader, err := NewReader(bytes.NewReader(compressed), algorithm)
				if err != nil {
					t.Fatalf("NewReader: %v", err)
				}
				defer reader.Close()
				decoded, err := io.ReadAll(reader)
				if err != nil {
					t.Fatalf("ReadAll: %v", err)
				}
				if !bytes.Equal(decoded, payload) {
					t.Errorf("roundtrip mismatch: got %d bytes, want %d", len(decoded), len(payload))
				}
			})
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		prefix []byte
		want   Algorithm
	}{
		{"gzip", []byte{0x1f, 0x8b, 0x08, 0x00}, Gzip},
		{"zstd", []byte{0x28, 0xb5, 0x2f, 0xfd}, Zstd},
		{"lz4", []byte{0x04, 0x22, 0x4d, 0x18}, LZ4},
		{"cbor map", []byte{0xa4, 0x01, 0x70, 0x79}, None},
		{"empty", nil, None},
		{"single gzip byte", []byte{0x1f}, None},
		{"truncated zstd", []byte{0x28, 0xb5}, None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.prefix); got != tt.want {
				t.Errorf("Detect(%x) = %s, want %s", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestParseAlgorithm(t *testing.T) {
	for _, algorithm := range allAlgorithms {
		parsed, err := ParseAlgorithm(algorithm.String())
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q): %v", algorithm.String(), err)
		}
		if parsed != algorithm {
			t.Errorf("ParseAlgorithm(%q) = %s", algorithm.String(), parsed)
		}
	}
	if _, err := ParseAlgorithm("brotli"); err == nil {
		t.Error("ParseAlgorithm should reject unknown names")
	}
	if got := Algorithm(9).String(); got != "unknown(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("")
	if err != nil || level != LevelDefault {
		t.Errorf("ParseLevel(\"\") = %s, %v", level, err)
	}
	level, err = ParseLevel("best")
	if err != nil || level != LevelBest {
		t.Errorf("ParseLevel(best) = %s, %v", level, err)
	}
	if _, err := ParseLevel("ultra"); err == nil {
		t.Error("ParseLevel should reject unknown names")
	}
}

func TestUnsupportedAlgorithm(t *testing.T) {
	if _, err := NewWriter(io.Discard, Algorithm(42), LevelDefault); err == nil {
		t.Error("NewWriter should reject unknown algorithms")
	}
	if _, err := NewReader(bytes.NewReader(nil), Algorithm(42)); err == nil {
		t.Error("NewReader should reject unknown algorithms")
	}
}

func TestGzipReaderRejectsGarbage(t *testing.T) {
	if _, err := NewReader(bytes.NewReader([]byte{0x1f, 0x8b, 0xff}), Gzip); err == nil {
		t.Error("gzip reader should reject a truncated header")
	}
}
