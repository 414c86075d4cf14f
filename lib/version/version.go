// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"

	"github.com/bureau-foundation/brtlil/lib/brtlil/wire"
)

// These variables are set via -ldflags at build time.
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty is "true" when the tree had uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// Build describes the running binary and the binary RTLIL format
// version it writes.
type Build struct {
	Version      string `json:"version"`
	Commit       string `json:"commit"`
	Dirty        bool   `json:"dirty,omitempty"`
	Time         string `json:"build_time"`
	Format       string `json:"format"`
	FormatFamily string `json:"format_family"`
	Go           string `json:"go"`
	Platform     string `json:"platform"`
}

// Current returns the Build of this binary.
func Current() Build {
	return Build{
		Version:      Version,
		Commit:       GitCommit,
		Dirty:        GitDirty == "true",
		Time:         BuildTime,
		Format:       wire.FormatVersion,
		FormatFamily: wire.FormatFamily,
		Go:           runtime.Version(),
		Platform:     runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String formats the build on one line: "0.1.0-dev (abc1234, TIME)",
// with "-dirty" appended to the commit for modified trees.
func (b Build) String() string {
	commit := b.Commit
	if b.Dirty {
		commit += "-dirty"
	}
	return fmt.Sprintf("%s (%s, %s)", b.Version, commit, b.Time)
}

// Detail adds the format, Go version and platform on indented lines
// below String.
func (b Build) Detail() string {
	return fmt.Sprintf("%s\n  Format: %s (reads %s*)\n  Go: %s\n  Platform: %s",
		b, b.Format, b.FormatFamily, b.Go, b.Platform)
}
