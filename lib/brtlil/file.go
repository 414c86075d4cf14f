// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import "strings"

// Extension is the conventional file name suffix for binary RTLIL.
const Extension = ".brtlil"

// IsBinaryRTLILFile reports whether filename names a binary RTLIL
// file: it ends in ".brtlil" after a non-empty stem. The check is on
// the name only; use Inspect to check content.
func IsBinaryRTLILFile(filename string) bool {
	return len(filename) > len(Extension) && strings.HasSuffix(filename, Extension)
}
