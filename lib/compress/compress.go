// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Algorithm identifies a stream compression format. The format is
// never stored separately: each algorithm's stream starts with a
// standard magic number and [Detect] recovers the algorithm from it.
type Algorithm uint8

const (
	// None writes the payload unmodified.
	None Algorithm = 0

	// Gzip is the deflate-family envelope (RFC 1952). It is the
	// algorithm used when a caller simply asks for compression.
	Gzip Algorithm = 1

	// Zstd gives better ratios on large netlists at similar speed.
	Zstd Algorithm = 2

	// LZ4 is the LZ4 frame format: the fastest to decode, with the
	// weakest ratio.
	LZ4 Algorithm = 3
)

// Magic numbers at the start of each compressed stream.
var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
	lz4Magic  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// MagicLength is the number of leading bytes [Detect] needs to
// recognize every supported algorithm.
const MagicLength = 4

// String returns the human-readable name of an algorithm.
func (algorithm Algorithm) String() string {
	switch algorithm {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("unknown(%d)", algorithm)
	}
}

// ParseAlgorithm parses an algorithm from its string representation.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "none":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "zstd":
		return Zstd, nil
	case "lz4":
		return LZ4, nil
	default:
		return 0, fmt.Errorf("unknown compression algorithm: %q", name)
	}
}

// Detect identifies the algorithm from the first bytes of a stream.
// Input that matches no magic number is [None]. Passing fewer than
// [MagicLength] bytes is allowed; only magics that fit are checked.
func Detect(prefix []byte) Algorithm {
	switch {
	case bytes.HasPrefix(prefix, gzipMagic):
		return Gzip
	case bytes.HasPrefix(prefix, zstdMagic):
		return Zstd
	case bytes.HasPrefix(prefix, lz4Magic):
		return LZ4
	default:
		return None
	}
}

// Level trades speed for ratio. Each algorithm maps it onto its own
// level scale.
type Level uint8

const (
	LevelDefault Level = iota
	LevelFastest
	LevelBetter
	LevelBest
)

// String returns the configuration name of a level.
func (level Level) String() string {
	switch level {
	case LevelDefault:
		return "default"
	case LevelFastest:
		return "fastest"
	case LevelBetter:
		return "better"
	case LevelBest:
		return "best"
	default:
		return fmt.Sprintf("unknown(%d)", level)
	}
}

// ParseLevel parses a level name. The empty string is LevelDefault.
func ParseLevel(name string) (Level, error) {
	switch name {
	case "", "default":
		return LevelDefault, nil
	case "fastest":
		return LevelFastest, nil
	case "better":
		return LevelBetter, nil
	case "best":
		return LevelBest, nil
	default:
		return 0, fmt.Errorf("unknown compression level: %q", name)
	}
}

// NewWriter wraps sink in a compressing writer. Close flushes the
// compressed stream but never closes sink. For [None] the returned
// writer passes bytes through and Close is a no-op.
func NewWriter(sink io.Writer, algorithm Algorithm, level Level) (io.WriteCloser, error) {
	switch algorithm {
	case None:
		return nopWriteCloser{sink}, nil

	case Gzip:
		writer, err := gzip.NewWriterLevel(sink, gzipLevel(level))
		if err != nil {
			return nil, fmt.Errorf("gzip writer: %w", err)
		}
		return writer, nil

	case Zstd:
		writer, err := zstd.NewWriter(sink, zstd.WithEncoderLevel(zstdLevel(level)))
		if err != nil {
			return nil, fmt.Errorf("zstd writer: %w", err)
		}
		return writer, nil

	case LZ4:
		writer := lz4.NewWriter(sink)
		if err := writer.Apply(lz4.CompressionLevelOption(lz4Level(level))); err != nil {
			return nil, fmt.Errorf("lz4 writer: %w", err)
		}
		return writer, nil

	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %d", algorithm)
	}
}

// NewReader wraps source in a decompressing reader for algorithm.
// Close releases decoder resources but never closes source.
func NewReader(source io.Reader, algorithm Algorithm) (io.ReadCloser, error) {
	switch algorithm {
	case None:
		return io.NopCloser(source), nil

	case Gzip:
		reader, err := gzip.NewReader(source)
		if err != nil {
			return nil, fmt.Errorf("gzip reader: %w", err)
		}
		return reader, nil

	case Zstd:
		decoder, err := zstd.NewReader(source)
		if err != nil {
			return nil, fmt.Errorf("zstd reader: %w", err)
		}
		return decoder.IOReadCloser(), nil

	case LZ4:
		return io.NopCloser(lz4.NewReader(source)), nil

	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %d", algorithm)
	}
}

func gzipLevel(level Level) int {
	switch level {
	case LevelFastest:
		return gzip.BestSpeed
	case LevelBetter:
		return 7
	case LevelBest:
		return gzip.BestCompression
	default:
		return gzip.DefaultCompression
	}
}

func zstdLevel(level Level) zstd.EncoderLevel {
	switch level {
	case LevelFastest:
		return zstd.SpeedFastest
	case LevelBetter:
		return zstd.SpeedBetterCompression
	case LevelBest:
		return zstd.SpeedBestCompression
	default:
		return zstd.SpeedDefault
	}
}

func lz4Level(level Level) lz4.CompressionLevel {
	switch level {
	case LevelBetter:
		return lz4.Level5
	case LevelBest:
		return lz4.Level9
	default:
		return lz4.Fast
	}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
