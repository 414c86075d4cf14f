// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package rtlil

import (
	"cmp"
	"slices"
	"strings"
)

// EscapeID returns name in RTLIL identifier form. Names that already
// start with '\' (public) or '$' (generated) are returned unchanged;
// anything else gets a '\' prefix. Applying EscapeID twice is the same
// as applying it once.
func EscapeID(name string) string {
	if name == "" {
		return name
	}
	if strings.HasPrefix(name, `\`) || strings.HasPrefix(name, "$") {
		return name
	}
	return `\` + name
}

// UnescapeID strips the '\' prefix from a public identifier. Generated
// '$' identifiers are returned unchanged.
func UnescapeID(name string) string {
	return strings.TrimPrefix(name, `\`)
}

// IsPublicID reports whether name is a user-visible identifier.
func IsPublicID(name string) bool {
	return strings.HasPrefix(name, `\`)
}

// Common attribute names.
const (
	IDBlackbox = `\blackbox`
	IDSrc      = `\src`
	IDKeep     = `\keep`
)

func sortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
