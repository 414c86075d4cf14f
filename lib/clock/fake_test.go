// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sync"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("second Now() = %v, want a stopped clock at %v", got, epoch)
	}
	clock.Advance(5 * time.Second)
	want := epoch.Add(5 * time.Second)
	if got := clock.Now(); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeClockAutoAdvance(t *testing.T) {
	clock := Fake(epoch)
	clock.AutoAdvance(3 * time.Millisecond)

	start := clock.Now()
	if !start.Equal(epoch) {
		t.Fatalf("first reading = %v, want %v", start, epoch)
	}
	if elapsed := Since(clock, start); elapsed != 3*time.Millisecond {
		t.Errorf("Since = %v, want 3ms", elapsed)
	}

	clock.AutoAdvance(0)
	frozen := clock.Now()
	if got := clock.Now(); !got.Equal(frozen) {
		t.Errorf("clock moved after AutoAdvance(0): %v then %v", frozen, got)
	}
}

func TestFakeClockConcurrentReaders(t *testing.T) {
	clock := Fake(epoch)
	clock.AutoAdvance(time.Nanosecond)

	const readers = 8
	const readings = 100
	var wg sync.WaitGroup
	for range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range readings {
				clock.Now()
			}
		}()
	}
	wg.Wait()

	want := epoch.Add(readers * readings * time.Nanosecond)
	clock.AutoAdvance(0)
	if got := clock.Now(); !got.Equal(want) {
		t.Errorf("after %d readings Now() = %v, want %v", readers*readings, got, want)
	}
}

func TestRealClockMovesForward(t *testing.T) {
	clock := Real()
	first := clock.Now()
	if Since(clock, first) < 0 {
		t.Error("real clock went backwards")
	}
}
