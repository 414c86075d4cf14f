// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"bytes"
	"io"
	"log/slog"
	"testing"

	"github.com/bureau-foundation/brtlil/lib/compress"
	"github.com/bureau-foundation/brtlil/lib/rtlil"
	"github.com/bureau-foundation/brtlil/lib/testutil"
)

// quietLogger discards everything so tests do not spam the output.
func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeBytes(t *testing.T, design *rtlil.Design, compressed bool, opts ...Option) []byte {
	t.Helper()
	var buffer bytes.Buffer
	writer := NewWriter(append([]Option{WithLogger(quietLogger())}, opts...)...)
	if err := writer.WriteDesign(design, &buffer, compressed); err != nil {
		t.Fatalf("WriteDesign: %v", err)
	}
	return buffer.Bytes()
}

func readBytes(t *testing.T, data []byte, opts ...Option) *rtlil.Design {
	t.Helper()
	design := rtlil.NewDesign()
	reader := NewReader(append([]Option{WithLogger(quietLogger())}, opts...)...)
	if err := reader.ReadDesign(design, bytes.NewReader(data)); err != nil {
		t.Fatalf("ReadDesign: %v", err)
	}
	return design
}

func TestAndGateRoundtrip(t *testing.T) {
	original := testutil.AndGateDesign(t)
	decoded := readBytes(t, writeBytes(t, original, false))

	testutil.RequireSameDesign(t, decoded, original)

	top := decoded.Module("top")
	if top == nil {
		t.Fatal("module \\top missing after roundtrip")
	}
	y := top.Wire("y")
	if y == nil || y.Width != 8 || !y.PortOutput || y.PortID != 3 {
		t.Fatalf("wire \\y = %+v, want 8-bit output port 3", y)
	}
	gate := top.Cell("g")
	if gate == nil || gate.Type != "$and" {
		t.Fatalf("cell \\g = %+v, want type $and", gate)
	}
	for _, port := range []string{"A", "B", "Y"} {
		signal, ok := gate.Port(port)
		if !ok {
			t.Fatalf("port %s not connected", port)
		}
		chunks := signal.Chunks()
		if len(chunks) != 1 || chunks[0].Offset != 0 || chunks[0].Width != 8 {
			t.Errorf("port %s = %s, want one full 8-bit wire chunk", port, signal)
		}
	}
	if y, _ := gate.Port("Y"); y.Chunks()[0].Wire != top.Wire("y") {
		t.Error("port \\Y does not refer to the decoded \\y wire")
	}
}

func TestSampleDesignRoundtripAllCompression(t *testing.T) {
	for _, algorithm := range []compress.Algorithm{compress.None, compress.Gzip, compress.Zstd, compress.LZ4} {
		t.Run(algorithm.String(), func(t *testing.T) {
			original := testutil.SampleDesign(t)
			data := writeBytes(t, original, algorithm != compress.None,
				WithCompression(algorithm, compress.LevelDefault))

			if got := compress.Detect(data); got != algorithm {
				t.Fatalf("stream detected as %s, want %s", got, algorithm)
			}
			testutil.RequireSameDesign(t, readBytes(t, data), original)
		})
	}
}

func TestSampleDesignDetails(t *testing.T) {
	decoded := readBytes(t, writeBytes(t, testutil.SampleDesign(t), true))

	if decoded.AutoIdx != 42 {
		t.Errorf("AutoIdx = %d, want 42", decoded.AutoIdx)
	}
	leaf := decoded.Module("leaf")
	if leaf == nil || !leaf.Blackbox() {
		t.Fatal("\\leaf should be a blackbox after roundtrip")
	}
	if !leaf.HasAvailParameter("WIDTH") || !leaf.HasAvailParameter("INIT") {
		t.Errorf("avail parameters = %v", leaf.AvailParameterNames())
	}
	if got := leaf.ParameterDefaults[`\WIDTH`].AsInt(); got != 4 {
		t.Errorf("default WIDTH = %d, want 4", got)
	}

	counter := decoded.Module("counter")
	reversed := counter.Wire("reversed")
	if !reversed.Upto || reversed.StartOffset != 2 {
		t.Errorf("\\reversed = %+v, want upto with offset 2", reversed)
	}
	if !counter.Wire("delta").IsSigned {
		t.Error("\\delta lost its signedness")
	}
	offset := counter.Cell("$add$counter.v:12$1").Parameters[`\OFFSET`]
	if offset.Flags&rtlil.ConstFlagSigned == 0 || offset.AsInt() != -3 {
		t.Errorf("\\OFFSET = %s, want signed -3", offset)
	}
	if src := counter.Attributes[rtlil.IDSrc]; src.Flags&rtlil.ConstFlagString == 0 || src.DecodeString() != "counter.v:1.1-30.10" {
		t.Errorf("module \\src = %s", src)
	}

	in, _ := counter.Cell("u_leaf").Port("in")
	if got, want := in.String(), `{ \mode [1] 1'z \bus [1:0] }`; got != want {
		t.Errorf("u_leaf.in = %s, want %s", got, want)
	}

	process := counter.Process("$proc$counter.v:10$2")
	if len(process.Syncs) != 2 || process.Syncs[0].Type != rtlil.STp || process.Syncs[1].Type != rtlil.STi {
		t.Fatalf("syncs = %+v", process.Syncs)
	}
	memwr := process.Syncs[0].MemWriteActions
	if len(memwr) != 1 || memwr[0].MemID != `\ram` || memwr[0].Data.Size() != 8 {
		t.Errorf("memwr = %+v", memwr)
	}
	if ram := counter.Memory("ram"); ram == nil || ram.Width != 8 || ram.Size != 4 {
		t.Errorf("memory \\ram = %+v", ram)
	}
}

func TestWriteIsDeterministic(t *testing.T) {
	first := writeBytes(t, testutil.SampleDesign(t), false)
	second := writeBytes(t, testutil.SampleDesign(t), false)
	if !bytes.Equal(first, second) {
		t.Fatal("two writes of the same design differ")
	}

	// Reading and writing again reproduces the same bytes.
	again := writeBytes(t, readBytes(t, first), false)
	if !bytes.Equal(first, again) {
		t.Fatal("write(read(write(d))) differs from write(d)")
	}
}

func TestCompressionIsTransparent(t *testing.T) {
	design := testutil.SampleDesign(t)
	raw := writeBytes(t, design, false)
	compressed := writeBytes(t, design, true)

	if bytes.Equal(raw, compressed) {
		t.Fatal("compressed output equals uncompressed output")
	}
	testutil.RequireSameDesign(t, readBytes(t, compressed), readBytes(t, raw))

	payload, algorithm, err := ReadPayload(bytes.NewReader(compressed))
	if err != nil {
		t.Fatalf("ReadPayload: %v", err)
	}
	if algorithm != compress.Gzip {
		t.Errorf("default compression = %s, want gzip", algorithm)
	}
	if !bytes.Equal(payload, raw) {
		t.Error("decompressed payload differs from the uncompressed write")
	}
}

func TestSwitchAndCaseOrderPreserved(t *testing.T) {
	design := rtlil.NewDesign()
	module, err := design.AddModule("order")
	if err != nil {
		t.Fatalf("AddModule: %v", err)
	}
	sel, _ := module.AddWire("sel", 2)
	out, _ := module.AddWire("out", 8)
	process, _ := module.AddProcess("p")

	// Switch i, case j assigns 10*i+j, so any reordering changes the
	// decoded values.
	for i := range 3 {
		sw := process.RootCase.AddSwitch(rtlil.SigFromWire(sel))
		for j := range 2 {
			c := sw.AddCase(rtlil.SigFromConst(rtlil.ConstFromInt(int64(j), 2)))
			c.AddAction(rtlil.SigFromWire(out), rtlil.SigFromConst(rtlil.ConstFromInt(int64(10*i+j), 8)))
		}
	}

	decoded := readBytes(t, writeBytes(t, design, true))
	root := decoded.Module("order").Process("p").RootCase
	if len(root.Switches) != 3 {
		t.Fatalf("decoded %d switches, want 3", len(root.Switches))
	}
	for i, sw := range root.Switches {
		if len(sw.Cases) != 2 {
			t.Fatalf("switch %d has %d cases, want 2", i, len(sw.Cases))
		}
		for j, c := range sw.Cases {
			if got := c.Compare[0].Chunks()[0].Data.AsInt(); got != int64(j) {
				t.Errorf("switch %d case %d compares %d, want %d", i, j, got, j)
			}
			if got := c.Actions[0].Right.Chunks()[0].Data.AsInt(); got != int64(10*i+j) {
				t.Errorf("switch %d case %d assigns %d, want %d", i, j, got, 10*i+j)
			}
		}
	}
}

func TestEmptyDesignRoundtrip(t *testing.T) {
	original := rtlil.NewDesign()
	decoded := readBytes(t, writeBytes(t, original, false))
	testutil.RequireSameDesign(t, decoded, original)
	if len(decoded.Modules()) != 0 {
		t.Errorf("decoded %d modules from an empty design", len(decoded.Modules()))
	}
}

func TestReadMergesIntoExistingDesign(t *testing.T) {
	target := testutil.AndGateDesign(t)
	target.AutoIdx = 100
	extraName := testutil.UniqueName("extra")

	source := rtlil.NewDesign()
	source.AutoIdx = 7
	if _, err := source.AddModule(extraName); err != nil {
		t.Fatalf("AddModule: %v", err)
	}

	reader := NewReader(WithLogger(quietLogger()))
	if err := reader.ReadDesign(target, bytes.NewReader(writeBytes(t, source, false))); err != nil {
		t.Fatalf("ReadDesign: %v", err)
	}
	if target.Module("top") == nil || target.Module(extraName) == nil {
		t.Errorf("modules after merge: %d", len(target.Modules()))
	}
	if target.AutoIdx != 100 {
		t.Errorf("AutoIdx = %d, want 100 (never lowered)", target.AutoIdx)
	}

	raised := rtlil.NewDesign()
	if err := reader.ReadDesign(raised, bytes.NewReader(writeBytes(t, testutil.SampleDesign(t), false))); err != nil {
		t.Fatalf("ReadDesign: %v", err)
	}
	if raised.AutoIdx != 42 {
		t.Errorf("AutoIdx = %d, want 42 (raised to the stream's counter)", raised.AutoIdx)
	}
}

func TestNestedCaseRoundtripAtLimit(t *testing.T) {
	limits := Limits{MaxCaseDepth: 64, MaxElements: DefaultLimits.MaxElements}
	original := testutil.NestedCaseDesign(t, 64)
	data := writeBytes(t, original, true, WithLimits(limits))
	testutil.RequireSameDesign(t, readBytes(t, data, WithLimits(limits)), original)
}

func BenchmarkWriteDesign(b *testing.B) {
	design := testutil.SampleDesign(b)
	writer := NewWriter(WithLogger(quietLogger()))
	b.ReportAllocs()
	for b.Loop() {
		if err := writer.WriteDesign(design, io.Discard, false); err != nil {
			b.Fatalf("WriteDesign: %v", err)
		}
	}
}

func BenchmarkReadDesign(b *testing.B) {
	var buffer bytes.Buffer
	if err := NewWriter(WithLogger(quietLogger())).WriteDesign(testutil.SampleDesign(b), &buffer, true); err != nil {
		b.Fatalf("WriteDesign: %v", err)
	}
	data := buffer.Bytes()
	reader := NewReader(WithLogger(quietLogger()))
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for b.Loop() {
		if err := reader.ReadDesign(rtlil.NewDesign(), bytes.NewReader(data)); err != nil {
			b.Fatalf("ReadDesign: %v", err)
		}
	}
}
