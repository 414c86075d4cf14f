// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the brtlil
// codec and command.
//
// Configuration is loaded from a single file specified by either the
// BRTLIL_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). There is no automatic file search. Values in the
// file are merged over [Default]; keys the file omits keep their
// defaults, and keys this package does not know are rejected. A file
// named *.json or *.jsonc is read as JSON with comments and trailing
// commas allowed.
//
// Key exports:
//
//   - [Config] -- master struct with Write, Read and Log sections
//   - [Default] -- returns a Config with the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// Translating a Config into codec options is done by
// brtlil.OptionsFromConfig, so this package depends only on
// lib/compress for name validation.
package config
