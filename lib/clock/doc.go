// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time source for testability.
//
// Production code accepts a Clock instead of calling time.Now
// directly. In production, Real() provides the standard library
// behavior. In tests, Fake() provides a clock that moves only when
// told to:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	c.AutoAdvance(5 * time.Millisecond)
//	writer := brtlil.NewWriter(brtlil.WithClock(c))
//	// writer.Stats().Duration is now exactly 5ms per call.
package clock
