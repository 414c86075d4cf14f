// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/term"

	"github.com/bureau-foundation/brtlil/lib/config"
)

// NewCommandLogger creates a structured logger writing to output at
// the level in cfg. With format "auto", output that is a terminal gets
// slog.TextHandler for human-readable lines; piped or redirected output
// (CI, scripts, tests) gets slog.JSONHandler.
//
// Callers scope the logger with command-specific context via With():
//
//	logger = logger.With("command", "convert", "input", inputPath)
func NewCommandLogger(cfg config.LogConfig, output io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	options := &slog.HandlerOptions{Level: level}

	format := cfg.Format
	if format == "" || format == "auto" {
		format = "json"
		if isTerminal(output) {
			format = "text"
		}
	}

	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(output, options)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(output, options)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want auto, text or json)", cfg.Format)
	}
}

// isTerminal reports whether w is a file descriptor attached to a
// terminal.
func isTerminal(w io.Writer) bool {
	file, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(file.Fd()))
}
