// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Brtlil inspects and converts binary RTLIL files.
//
// Subcommands:
//
//	info FILE          summarize a file without building a design
//	show FILE          print the design as RTLIL text
//	dump FILE          print the decoded message tree as JSON (--color highlights it)
//	diag FILE          print the payload in CBOR diagnostic notation
//	convert IN OUT     read a file and write it again with new settings
//	check FILE         confirm the file round-trips byte for byte
//	version            print build and format version
//
// FILE, IN and OUT may be "-" for standard input or output. Every
// command accepts --config naming a YAML or JSONC file (see lib/config);
// without it $BRTLIL_CONFIG is used, then the built-in defaults. Logs go
// to stderr as text on a terminal and JSON otherwise.
package main
