// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"bufio"
	"errors"
	"io"

	"github.com/bureau-foundation/brtlil/lib/compress"
)

// countingWriter counts bytes reaching the sink and remembers the
// sink's own error, so a failure can be classified as I/O rather than
// blamed on the compressor wrapping it.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	if err != nil && c.err == nil {
		c.err = err
	}
	return n, err
}

// countingReader is the read-side counterpart of countingWriter.
type countingReader struct {
	r   io.Reader
	n   int64
	err error
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	if err != nil && !errors.Is(err, io.EOF) && c.err == nil {
		c.err = err
	}
	return n, err
}

// writeEnvelope writes payload to output through algorithm and returns
// the number of bytes that reached output. With compress.None the
// payload is written as is.
func writeEnvelope(output io.Writer, payload []byte, algorithm compress.Algorithm, level compress.Level) (int64, error) {
	counting := &countingWriter{w: output}
	sink, err := compress.NewWriter(counting, algorithm, level)
	if err != nil {
		return 0, &faultError{kind: KindInternal, err: err}
	}
	_, writeErr := sink.Write(payload)
	closeErr := sink.Close()
	if err := errors.Join(writeErr, closeErr); err != nil {
		if counting.err != nil {
			return counting.n, &faultError{kind: KindIO, err: counting.err}
		}
		return counting.n, err
	}
	return counting.n, nil
}

// readEnvelope reads input to the end and returns the decompressed
// payload. The algorithm is chosen from the leading bytes alone, so
// input needs no seeking and carries no out-of-band tag.
func readEnvelope(input io.Reader) (payload []byte, algorithm compress.Algorithm, encoded int64, err error) {
	counting := &countingReader{r: input}
	buffered := bufio.NewReader(counting)

	prefix, err := buffered.Peek(compress.MagicLength)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, compress.None, counting.n, &faultError{kind: KindIO, err: err}
	}
	algorithm = compress.Detect(prefix)

	source, err := compress.NewReader(buffered, algorithm)
	if err != nil {
		return nil, algorithm, counting.n, classifyRead(counting, err)
	}
	defer source.Close()

	payload, err = io.ReadAll(source)
	if err != nil {
		return nil, algorithm, counting.n, classifyRead(counting, err)
	}
	if len(payload) == 0 {
		return nil, algorithm, counting.n, formatFault("stream is empty")
	}
	return payload, algorithm, counting.n, nil
}

// classifyRead attributes a read failure to the source when the source
// itself failed, and to the data otherwise: a decompressor rejecting
// its input is corruption.
func classifyRead(counting *countingReader, err error) error {
	if counting.err != nil {
		return &faultError{kind: KindIO, err: counting.err}
	}
	return &faultError{kind: KindFormat, err: err}
}

// ReadPayload reads a binary RTLIL stream to the end and returns the
// uncompressed CBOR payload along with the detected algorithm. It does
// not decode the payload.
func ReadPayload(input io.Reader) ([]byte, compress.Algorithm, error) {
	payload, algorithm, _, err := readEnvelope(input)
	if err != nil {
		return nil, algorithm, toError("read", err, KindFormat)
	}
	return payload, algorithm, nil
}
