// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"fmt"
	"io"
	"strings"

	"github.com/bureau-foundation/brtlil/lib/binhash"
	"github.com/bureau-foundation/brtlil/lib/brtlil/wire"
	"github.com/bureau-foundation/brtlil/lib/codec"
	"github.com/bureau-foundation/brtlil/lib/compress"
)

// Info describes a binary RTLIL stream without reconstructing a graph.
type Info struct {
	// Version is the format tag the writer recorded.
	Version string `json:"version"`
	// Supported reports whether Version is one this package reads.
	Supported   bool               `json:"supported"`
	Compression compress.Algorithm `json:"-"`
	EncodedSize int64              `json:"encoded_bytes"`
	PayloadSize int64              `json:"payload_bytes"`
	AutoIdx     int64              `json:"autoidx"`
	// Digest is the BLAKE3 digest of the uncompressed payload.
	Digest     binhash.Digest `json:"-"`
	Attributes int            `json:"attributes"`
	Modules    []ModuleInfo   `json:"modules"`
}

// ModuleInfo counts the contents of one module.
type ModuleInfo struct {
	Name        string `json:"name"`
	Blackbox    bool   `json:"blackbox,omitempty"`
	Wires       int    `json:"wires"`
	Cells       int    `json:"cells"`
	Memories    int    `json:"memories"`
	Processes   int    `json:"processes"`
	Connections int    `json:"connections"`
}

// Inspect reads input to the end and summarizes it. The payload is
// decoded under the configured limits but names are not resolved, so
// a stream with dangling wire references still inspects cleanly.
func Inspect(input io.Reader, opts ...Option) (Info, error) {
	message, payload, stream, err := readMessage("inspect", input, buildOptions(opts))
	if err != nil {
		return Info{}, err
	}

	info := Info{
		Version:     message.Version,
		Supported:   strings.HasPrefix(message.Version, wire.FormatFamily),
		Compression: stream.algorithm,
		EncodedSize: stream.encoded,
		PayloadSize: int64(len(payload)),
		AutoIdx:     message.AutoIdx,
		Digest:      binhash.HashPayload(payload),
		Attributes:  len(message.Attributes),
	}
	for _, key := range sortedKeys(message.Modules) {
		module := message.Modules[key]
		name := module.Name
		if name == "" {
			name = key
		}
		info.Modules = append(info.Modules, ModuleInfo{
			Name:        name,
			Blackbox:    module.Blackbox,
			Wires:       len(module.Wires),
			Cells:       len(module.Cells),
			Memories:    len(module.Memories),
			Processes:   len(module.Processes),
			Connections: len(module.Connections),
		})
	}
	return info, nil
}

// ReadMessage reads input to the end and decodes the message tree
// without building a design. Names are not resolved and no graph
// checks run; the configured limits still apply.
func ReadMessage(input io.Reader, opts ...Option) (*wire.Design, error) {
	message, _, _, err := readMessage("read", input, buildOptions(opts))
	return message, err
}

type streamInfo struct {
	algorithm compress.Algorithm
	encoded   int64
}

func readMessage(op string, input io.Reader, built options) (*wire.Design, []byte, streamInfo, error) {
	if err := built.limits.Validate(); err != nil {
		return nil, nil, streamInfo{}, &Error{Kind: KindInternal, Op: op, Err: err}
	}
	payload, algorithm, encoded, err := readEnvelope(input)
	stream := streamInfo{algorithm: algorithm, encoded: encoded}
	if err != nil {
		return nil, nil, stream, toError(op, err, KindFormat)
	}
	var message wire.Design
	if err := codec.UnmarshalLimits(payload, &message, built.limits.codecLimits()); err != nil {
		return nil, nil, stream, &Error{Kind: KindFormat, Op: op, Err: fmt.Errorf("decoding CBOR: %w", err)}
	}
	return &message, payload, stream, nil
}
