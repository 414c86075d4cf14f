// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"sync/atomic"

	"github.com/bureau-foundation/brtlil/lib/rtlil"
)

var uniqueCounter atomic.Uint64

// UniqueName returns a public RTLIL identifier of the form `\prefix_N`
// where N increases with every call in the process. Use it for modules
// or wires a test adds to a shared sample design, so the name cannot
// collide with one the sample already holds.
//
//	name := testutil.UniqueName("extra") // `\extra_1`, `\extra_2`, ...
func UniqueName(prefix string) string {
	return rtlil.EscapeID(fmt.Sprintf("%s_%d", prefix, uniqueCounter.Add(1)))
}
