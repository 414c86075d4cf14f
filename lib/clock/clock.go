// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock is the time source the codec reads when timing calls.
type Clock interface {
	Now() time.Time
}

// Real returns the wall clock.
func Real() Clock { return wallClock{} }

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

// Since returns the time elapsed on clock since start. Use it instead
// of time.Since so a fake clock controls the result.
func Since(clock Clock, start time.Time) time.Duration {
	return clock.Now().Sub(start)
}
