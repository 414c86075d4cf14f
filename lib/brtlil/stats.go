// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"log/slog"
	"time"

	"github.com/bureau-foundation/brtlil/lib/compress"
	"github.com/bureau-foundation/brtlil/lib/rtlil"
)

// Stats describes one completed read or write.
type Stats struct {
	// PayloadSize is the length of the CBOR message tree.
	PayloadSize int64
	// EncodedSize is the length on the stream, after compression.
	EncodedSize int64
	Compression compress.Algorithm
	Duration    time.Duration

	Modules   int
	Cells     int
	Wires     int
	Memories  int
	Processes int
}

// Ratio returns the fraction of the payload saved by compression:
// 0 for an uncompressed stream, 0.75 when the stream is a quarter of
// the payload. Returns 0 when nothing was encoded.
func (s Stats) Ratio() float64 {
	if s.PayloadSize == 0 || s.EncodedSize == 0 {
		return 0
	}
	return 1 - float64(s.EncodedSize)/float64(s.PayloadSize)
}

// LogValue implements slog.LogValuer.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("payload_bytes", s.PayloadSize),
		slog.Int64("encoded_bytes", s.EncodedSize),
		slog.String("compression", s.Compression.String()),
		slog.Float64("ratio", s.Ratio()),
		slog.Duration("duration", s.Duration),
		slog.Int("modules", s.Modules),
		slog.Int("cells", s.Cells),
		slog.Int("wires", s.Wires),
		slog.Int("memories", s.Memories),
		slog.Int("processes", s.Processes),
	)
}

func (s *Stats) countModule(module *rtlil.Module) {
	s.Modules++
	s.Cells += len(module.Cells())
	s.Wires += len(module.Wires())
	s.Memories += len(module.Memories())
	s.Processes += len(module.Processes())
}
