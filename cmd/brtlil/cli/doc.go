// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for the brtlil
// command.
//
// The central type is [Command], which represents a named subcommand with
// optional nested [Command.Subcommands], a [pflag.FlagSet] factory, the
// positional arguments it requires, and a Run function. Commands are
// assembled into a tree in cmd/brtlil and dispatched via
// [Command.Execute], which handles flag parsing, argument counting,
// subcommand routing, and structured help output with examples.
//
// When a user types an unknown subcommand or flag, the framework computes
// Levenshtein edit distance against all known names and suggests the
// closest match (threshold: distance <= 3).
//
// Parameter structs declare flags with struct tags and are bound by
// [FlagsFromParams]. [JSONOutput], [ConfigFlag] and [ColorFlag] are
// embeddable groups for --json, --config and --color. [NewCommandLogger] builds the
// command's slog logger from the log section of the configuration.
package cli
