// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"fmt"
	"io"

	"github.com/bureau-foundation/brtlil/lib/clock"
	"github.com/bureau-foundation/brtlil/lib/rtlil"
)

// Reader decodes binary RTLIL into a design. A Reader is not safe for
// concurrent use; separate Readers over separate designs are
// independent.
type Reader struct {
	options options
	stats   Stats
}

// NewReader returns a Reader configured by opts.
func NewReader(opts ...Option) *Reader {
	return &Reader{options: buildOptions(opts)}
}

// Stats returns the statistics of the last successful ReadDesign.
func (r *Reader) Stats() Stats {
	return r.stats
}

// ReadDesign reads input to the end and adds the modules it describes
// to design. Compression is detected from the stream itself.
//
// The design's attributes are merged with those in the stream, and
// design.AutoIdx is raised to at least the stream's counter. A module
// whose name design already uses is a KindGraph error and nothing is
// added. Any other failure may leave the modules decoded so far in
// design.
func (r *Reader) ReadDesign(design *rtlil.Design, input io.Reader) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = &Error{Kind: KindInternal, Op: "read", Err: fmt.Errorf("panic: %v", recovered)}
		}
		if err != nil {
			r.options.logger.Error("binary RTLIL read failed", "error", err)
		}
	}()

	if design == nil {
		return &Error{Kind: KindInternal, Op: "read", Err: fmt.Errorf("design is nil")}
	}

	start := r.options.clock.Now()
	var stats Stats

	message, payload, stream, err := readMessage("read", input, r.options)
	if err != nil {
		return err
	}
	if err := decodeDesign(design, message, r.options.limits.MaxCaseDepth, &stats); err != nil {
		return toError("read", err, KindInternal)
	}

	stats.PayloadSize = int64(len(payload))
	stats.EncodedSize = stream.encoded
	stats.Compression = stream.algorithm
	stats.Duration = clock.Since(r.options.clock, start)
	r.stats = stats
	r.options.logger.Info("read binary RTLIL design", "stats", stats)
	return nil
}
