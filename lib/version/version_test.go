// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestBuildString(t *testing.T) {
	build := Build{Version: "1.2.3", Commit: "abc1234", Time: "2026-10-01T00:00:00Z"}
	if got, want := build.String(), "1.2.3 (abc1234, 2026-10-01T00:00:00Z)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	build.Dirty = true
	if got := build.String(); !strings.Contains(got, "abc1234-dirty") {
		t.Errorf("String() = %q, want a -dirty commit", got)
	}
}

func TestCurrentReadsLinkerVariables(t *testing.T) {
	originalCommit, originalDirty, originalTime := GitCommit, GitDirty, BuildTime
	t.Cleanup(func() {
		GitCommit, GitDirty, BuildTime = originalCommit, originalDirty, originalTime
	})

	GitCommit, GitDirty, BuildTime = "def5678", "true", "2026-10-02T00:00:00Z"
	build := Current()
	if build.Commit != "def5678" || !build.Dirty || build.Time != "2026-10-02T00:00:00Z" {
		t.Errorf("Current() = %+v", build)
	}
	if build.Version != Version {
		t.Errorf("Version = %q, want %q", build.Version, Version)
	}
	if build.Format != "yosys-brtlil-1.0" || build.FormatFamily != "yosys-brtlil-1." {
		t.Errorf("format = %q family %q", build.Format, build.FormatFamily)
	}
	if build.Platform != runtime.GOOS+"/"+runtime.GOARCH {
		t.Errorf("Platform = %q", build.Platform)
	}
}

func TestDetail(t *testing.T) {
	build := Current()
	detail := build.Detail()
	for _, want := range []string{build.String(), "Format: yosys-brtlil-1.0 (reads yosys-brtlil-1.*)", "Go: ", "Platform: "} {
		if !strings.Contains(detail, want) {
			t.Errorf("Detail() = %q, missing %q", detail, want)
		}
	}
}
