// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"fmt"
	"log/slog"

	"github.com/bureau-foundation/brtlil/lib/clock"
	"github.com/bureau-foundation/brtlil/lib/codec"
	"github.com/bureau-foundation/brtlil/lib/compress"
	"github.com/bureau-foundation/brtlil/lib/config"
)

// Limits bounds the designs a Reader accepts and a Writer produces.
type Limits struct {
	// MaxCaseDepth is the deepest process decision tree, counting the
	// root case as depth 1.
	MaxCaseDepth int

	// MaxElements bounds the length of any single collection in a
	// file: the wires of one module, the chunks of one signal, and so
	// on.
	MaxElements int
}

// DefaultLimits matches config.Default.
var DefaultLimits = Limits{
	MaxCaseDepth: 1024,
	MaxElements:  1 << 26,
}

// caseNestingOverhead covers the CBOR levels above a root case
// (design, modules, module, processes, process) and below the deepest
// case (actions, action, signal, chunks, chunk, constant), with slack.
const caseNestingOverhead = 16

// cborLevelsPerCase is the CBOR nesting one case level costs: the
// switches array, the switch map, the cases array, the case map.
const cborLevelsPerCase = 4

// Validate reports whether l can be enforced.
func (l Limits) Validate() error {
	if l.MaxCaseDepth < 1 || l.MaxCaseDepth > config.MaxCaseDepthLimit {
		return fmt.Errorf("max case depth %d outside [1, %d]", l.MaxCaseDepth, config.MaxCaseDepthLimit)
	}
	return l.codecLimits().Validate()
}

// codecLimits translates l into CBOR decoder limits. The nesting bound
// is what stops a hostile file before the decoder recurses into it;
// the case depth check in the tree mapper then applies the exact
// bound.
func (l Limits) codecLimits() codec.Limits {
	return codec.Limits{
		MaxNestedLevels: cborLevelsPerCase*l.MaxCaseDepth + caseNestingOverhead,
		MaxElements:     l.MaxElements,
	}
}

type options struct {
	logger    *slog.Logger
	clock     clock.Clock
	algorithm compress.Algorithm
	level     compress.Level
	limits    Limits
}

func defaultOptions() options {
	return options{
		logger:    slog.Default(),
		clock:     clock.Real(),
		algorithm: compress.Gzip,
		level:     compress.LevelDefault,
		limits:    DefaultLimits,
	}
}

func buildOptions(opts []Option) options {
	built := defaultOptions()
	for _, opt := range opts {
		opt(&built)
	}
	return built
}

// Option configures a Writer, Reader or Inspect call.
type Option func(*options)

// WithLogger sets the logger. Completed calls log at info level and
// failures at error level. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock sets the clock used to time calls. Default: clock.Real().
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithCompression selects the algorithm and level a Writer uses when
// a write asks for compression. Readers ignore it: they detect the
// algorithm from the stream. Default: gzip at the default level.
func WithCompression(algorithm compress.Algorithm, level compress.Level) Option {
	return func(o *options) {
		o.algorithm = algorithm
		o.level = level
	}
}

// WithLimits sets the structural limits. Default: DefaultLimits.
func WithLimits(limits Limits) Option {
	return func(o *options) {
		o.limits = limits
	}
}

// OptionsFromConfig translates the write and read sections of cfg into
// options. The logger is not configured here: the caller builds it
// from cfg.Log and passes WithLogger.
func OptionsFromConfig(cfg *config.Config) ([]Option, error) {
	algorithm, err := compress.ParseAlgorithm(cfg.Write.Compression)
	if err != nil {
		return nil, fmt.Errorf("write.compression: %w", err)
	}
	level, err := compress.ParseLevel(cfg.Write.Level)
	if err != nil {
		return nil, fmt.Errorf("write.level: %w", err)
	}
	limits := Limits{
		MaxCaseDepth: cfg.Read.MaxCaseDepth,
		MaxElements:  cfg.Read.MaxElements,
	}
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return []Option{
		WithCompression(algorithm, level),
		WithLimits(limits),
	}, nil
}
