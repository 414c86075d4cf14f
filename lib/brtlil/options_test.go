// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/brtlil/lib/clock"
	"github.com/bureau-foundation/brtlil/lib/compress"
	"github.com/bureau-foundation/brtlil/lib/config"
	"github.com/bureau-foundation/brtlil/lib/rtlil"
	"github.com/bureau-foundation/brtlil/lib/testutil"
)

func TestLimitsValidate(t *testing.T) {
	tests := []struct {
		name    string
		limits  Limits
		wantErr bool
	}{
		{"default", DefaultLimits, false},
		{"minimal", Limits{MaxCaseDepth: 1, MaxElements: 16}, false},
		{"largest depth", Limits{MaxCaseDepth: config.MaxCaseDepthLimit, MaxElements: 16}, false},
		{"zero depth", Limits{MaxCaseDepth: 0, MaxElements: 16}, true},
		{"depth past the limit", Limits{MaxCaseDepth: config.MaxCaseDepthLimit + 1, MaxElements: 16}, true},
		{"zero elements", Limits{MaxCaseDepth: 8, MaxElements: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.limits.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInvalidLimitsFailCalls(t *testing.T) {
	bad := WithLimits(Limits{})
	design := testutil.AndGateDesign(t)

	err := NewWriter(WithLogger(quietLogger()), bad).WriteDesign(design, &bytes.Buffer{}, false)
	if KindOf(err) != KindInternal {
		t.Errorf("write err = %v, want an internal error", err)
	}
	data := writeBytes(t, design, false)
	err = NewReader(WithLogger(quietLogger()), bad).ReadDesign(rtlil.NewDesign(), bytes.NewReader(data))
	if KindOf(err) != KindInternal {
		t.Errorf("read err = %v, want an internal error", err)
	}
	if _, err := Inspect(bytes.NewReader(data), bad); KindOf(err) != KindInternal {
		t.Errorf("inspect err = %v, want an internal error", err)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Write.Compression = "lz4"
	cfg.Write.Level = "fastest"
	cfg.Read.MaxCaseDepth = 32

	opts, err := OptionsFromConfig(cfg)
	if err != nil {
		t.Fatalf("OptionsFromConfig: %v", err)
	}
	built := buildOptions(opts)
	if built.algorithm != compress.LZ4 || built.level != compress.LevelFastest {
		t.Errorf("compression = %s/%s, want lz4/fastest", built.algorithm, built.level)
	}
	if built.limits.MaxCaseDepth != 32 || built.limits.MaxElements != DefaultLimits.MaxElements {
		t.Errorf("limits = %+v", built.limits)
	}

	data := writeBytes(t, testutil.AndGateDesign(t), true, opts...)
	if compress.Detect(data) != compress.LZ4 {
		t.Errorf("configured writer produced %s", compress.Detect(data))
	}
}

func TestOptionsFromConfigRejects(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
		want   string
	}{
		{"compression", func(c *config.Config) { c.Write.Compression = "brotli" }, "write.compression"},
		{"level", func(c *config.Config) { c.Write.Level = "maximum" }, "write.level"},
		{"depth", func(c *config.Config) { c.Read.MaxCaseDepth = -1 }, "read"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.modify(cfg)
			_, err := OptionsFromConfig(cfg)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	built := buildOptions([]Option{WithLogger(nil), WithClock(nil)})
	if built.logger == nil || built.clock == nil {
		t.Fatal("nil logger or clock replaced the default")
	}
	if built.algorithm != compress.Gzip || built.level != compress.LevelDefault {
		t.Errorf("default compression = %s/%s, want gzip/default", built.algorithm, built.level)
	}
	if built.limits != DefaultLimits {
		t.Errorf("default limits = %+v", built.limits)
	}
}

func TestStats(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	fake.AutoAdvance(5 * time.Millisecond)

	writer := NewWriter(WithLogger(quietLogger()), WithClock(fake))
	var buffer bytes.Buffer
	if err := writer.WriteDesign(testutil.SampleDesign(t), &buffer, true); err != nil {
		t.Fatalf("WriteDesign: %v", err)
	}
	written := writer.Stats()
	if written.Duration != 5*time.Millisecond {
		t.Errorf("write Duration = %s, want 5ms", written.Duration)
	}
	if written.Modules != 2 || written.Cells != 2 || written.Wires != 11 || written.Memories != 1 || written.Processes != 1 {
		t.Errorf("write counts = %+v", written)
	}
	if written.EncodedSize != int64(buffer.Len()) || written.Compression != compress.Gzip {
		t.Errorf("write stream = %d bytes %s, want %d bytes gzip", written.EncodedSize, written.Compression, buffer.Len())
	}
	if ratio := written.Ratio(); ratio <= 0 || ratio >= 1 {
		t.Errorf("Ratio() = %v, want a saving between 0 and 1", ratio)
	}

	reader := NewReader(WithLogger(quietLogger()), WithClock(fake))
	if err := reader.ReadDesign(rtlil.NewDesign(), bytes.NewReader(buffer.Bytes())); err != nil {
		t.Fatalf("ReadDesign: %v", err)
	}
	read := reader.Stats()
	read.Duration = written.Duration
	if read != written {
		t.Errorf("read stats %+v differ from write stats %+v", read, written)
	}
}

func TestStatsRatio(t *testing.T) {
	tests := []struct {
		stats Stats
		want  float64
	}{
		{Stats{}, 0},
		{Stats{PayloadSize: 100, EncodedSize: 100}, 0},
		{Stats{PayloadSize: 100, EncodedSize: 25}, 0.75},
		{Stats{PayloadSize: 0, EncodedSize: 10}, 0},
	}
	for _, tt := range tests {
		if got := tt.stats.Ratio(); got != tt.want {
			t.Errorf("%+v.Ratio() = %v, want %v", tt.stats, got, tt.want)
		}
	}
}

func TestLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))

	writer := NewWriter(WithLogger(logger))
	if err := writer.WriteDesign(testutil.AndGateDesign(t), &bytes.Buffer{}, false); err != nil {
		t.Fatalf("WriteDesign: %v", err)
	}
	reader := NewReader(WithLogger(logger))
	if err := reader.ReadDesign(rtlil.NewDesign(), strings.NewReader("")); err == nil {
		t.Fatal("reading an empty stream succeeded")
	}

	lines := strings.Split(strings.TrimSpace(logs.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d log lines, want 2:\n%s", len(lines), logs.String())
	}

	var success struct {
		Level string `json:"level"`
		Msg   string `json:"msg"`
		Stats struct {
			Modules     int    `json:"modules"`
			Wires       int    `json:"wires"`
			Compression string `json:"compression"`
		} `json:"stats"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &success); err != nil {
		t.Fatalf("parsing %q: %v", lines[0], err)
	}
	if success.Level != "INFO" || success.Msg != "wrote binary RTLIL design" {
		t.Errorf("success record = %+v", success)
	}
	if success.Stats.Modules != 1 || success.Stats.Wires != 3 || success.Stats.Compression != "none" {
		t.Errorf("logged stats = %+v", success.Stats)
	}

	var failure struct {
		Level string `json:"level"`
		Msg   string `json:"msg"`
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &failure); err != nil {
		t.Fatalf("parsing %q: %v", lines[1], err)
	}
	if failure.Level != "ERROR" || !strings.Contains(failure.Error, "format error") {
		t.Errorf("failure record = %+v", failure)
	}
}
