// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/brtlil/lib/clock"
	"github.com/bureau-foundation/brtlil/lib/codec"
	"github.com/bureau-foundation/brtlil/lib/compress"
	"github.com/bureau-foundation/brtlil/lib/rtlil"
)

// Writer encodes designs as binary RTLIL. A Writer is not safe for
// concurrent use; separate Writers are independent.
type Writer struct {
	options options
	stats   Stats
}

// NewWriter returns a Writer configured by opts.
func NewWriter(opts ...Option) *Writer {
	return &Writer{options: buildOptions(opts)}
}

// Stats returns the statistics of the last successful WriteDesign.
func (w *Writer) Stats() Stats {
	return w.stats
}

// WriteDesign encodes design to output. When compressed is true the
// payload passes through the configured algorithm (gzip unless
// WithCompression says otherwise); when false it is written raw.
//
// Every failure, including a panic inside the design graph, is
// returned as an *Error and logged once. A failed write may leave
// partial data in output.
func (w *Writer) WriteDesign(design *rtlil.Design, output io.Writer, compressed bool) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = &Error{Kind: KindInternal, Op: "write", Err: fmt.Errorf("panic: %v", recovered)}
		}
		if err != nil {
			w.options.logger.Error("binary RTLIL write failed", "error", err)
		}
	}()

	if design == nil {
		return &Error{Kind: KindInternal, Op: "write", Err: fmt.Errorf("design is nil")}
	}
	if err := w.options.limits.Validate(); err != nil {
		return &Error{Kind: KindInternal, Op: "write", Err: err}
	}

	start := w.options.clock.Now()
	var stats Stats

	message, err := encodeDesign(design, w.options.limits.MaxCaseDepth, &stats)
	if err != nil {
		return toError("write", err, KindInternal)
	}
	payload, err := codec.Marshal(message)
	if err != nil {
		return &Error{Kind: KindInternal, Op: "write", Err: fmt.Errorf("encoding CBOR: %w", err)}
	}

	algorithm := compress.None
	if compressed {
		algorithm = w.options.algorithm
	}
	encoded, err := writeEnvelope(output, payload, algorithm, w.options.level)
	if err != nil {
		return toError("write", err, KindIO)
	}

	stats.PayloadSize = int64(len(payload))
	stats.EncodedSize = encoded
	stats.Compression = algorithm
	stats.Duration = clock.Since(w.options.clock, start)
	w.stats = stats
	w.options.logger.Info("wrote binary RTLIL design", "stats", stats)
	return nil
}
