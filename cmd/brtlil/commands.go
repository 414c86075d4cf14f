// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/brtlil/cmd/brtlil/cli"
	"github.com/bureau-foundation/brtlil/lib/binhash"
	"github.com/bureau-foundation/brtlil/lib/brtlil"
	"github.com/bureau-foundation/brtlil/lib/codec"
	"github.com/bureau-foundation/brtlil/lib/config"
	"github.com/bureau-foundation/brtlil/lib/rtlil"
	"github.com/bureau-foundation/brtlil/lib/version"
)

// stdioPath names standard input or output in place of a file.
const stdioPath = "-"

// app holds the streams commands read and write, so tests can run the
// command tree against buffers.
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr}
}

func (a *app) rootCommand() *cli.Command {
	return &cli.Command{
		Name:        "brtlil",
		Description: "Inspect and convert binary RTLIL netlists.",
		HelpOutput:  a.stderr,
		Subcommands: []*cli.Command{
			a.infoCommand(),
			a.showCommand(),
			a.dumpCommand(),
			a.diagCommand(),
			a.convertCommand(),
			a.checkCommand(),
			a.versionCommand(),
		},
	}
}

// session is the per-invocation state a command starts from.
type session struct {
	config *config.Config
	logger *slog.Logger
}

func (a *app) start(flag *cli.ConfigFlag, command string) (*session, error) {
	cfg, err := flag.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := cli.NewCommandLogger(cfg.Log, a.stderr)
	if err != nil {
		return nil, err
	}
	return &session{config: cfg, logger: logger.With("command", command)}, nil
}

// codecOptions translates the session's configuration into reader and
// writer options.
func (s *session) codecOptions() ([]brtlil.Option, error) {
	options, err := brtlil.OptionsFromConfig(s.config)
	if err != nil {
		return nil, err
	}
	return append(options, brtlil.WithLogger(s.logger)), nil
}

func (a *app) openInput(path string) (io.ReadCloser, error) {
	if path == stdioPath {
		return io.NopCloser(a.stdin), nil
	}
	return os.Open(path)
}

func (a *app) readInput(path string) ([]byte, error) {
	input, err := a.openInput(path)
	if err != nil {
		return nil, err
	}
	defer input.Close()
	return io.ReadAll(input)
}

// writeOutput calls write with the destination for path. A file is
// written under a temporary name and renamed into place, so a failed
// write never leaves a truncated file behind.
func (a *app) writeOutput(path string, write func(io.Writer) error) error {
	if path == stdioPath {
		return write(a.stdout)
	}
	temporary, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(temporary.Name())

	if err := write(temporary); err != nil {
		temporary.Close()
		return err
	}
	if err := temporary.Close(); err != nil {
		return err
	}
	return os.Rename(temporary.Name(), path)
}

// readDesign decodes the file at path into a new design.
func (a *app) readDesign(path string, options []brtlil.Option) (*rtlil.Design, brtlil.Stats, error) {
	input, err := a.openInput(path)
	if err != nil {
		return nil, brtlil.Stats{}, err
	}
	defer input.Close()

	design := rtlil.NewDesign()
	reader := brtlil.NewReader(options...)
	if err := reader.ReadDesign(design, input); err != nil {
		return nil, brtlil.Stats{}, fmt.Errorf("%s: %w", path, err)
	}
	return design, reader.Stats(), nil
}

type infoParams struct {
	cli.JSONOutput
	cli.ConfigFlag
}

// infoResult is the --json form of brtlil.Info.
type infoResult struct {
	File string `json:"file"`
	brtlil.Info
	Compression string `json:"compression"`
	Digest      string `json:"digest"`
}

func (a *app) infoCommand() *cli.Command {
	var params infoParams
	return &cli.Command{
		Name:    "info",
		Summary: "Summarize a binary RTLIL file",
		Description: "Summarize a binary RTLIL file without building a design: format\n" +
			"version, compression, sizes, payload digest and per-module counts.\n" +
			"Dangling wire references do not stop info; use check for that.",
		Positional: []string{"FILE"},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("info", &params)
		},
		Examples: []cli.Example{
			{Description: "Machine-readable summary", Command: "brtlil info --json top.brtlil"},
		},
		Run: func(args []string) error {
			session, err := a.start(&params.ConfigFlag, "info")
			if err != nil {
				return err
			}
			options, err := session.codecOptions()
			if err != nil {
				return err
			}
			path := args[0]
			input, err := a.openInput(path)
			if err != nil {
				return err
			}
			defer input.Close()

			info, err := brtlil.Inspect(input, options...)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			result := infoResult{
				File:        path,
				Info:        info,
				Compression: info.Compression.String(),
				Digest:      binhash.FormatDigest(info.Digest),
			}
			if done, err := params.EmitJSON(a.stdout, result); done {
				return err
			}
			return printInfo(a.stdout, result)
		},
	}
}

func printInfo(w io.Writer, result infoResult) error {
	support := "supported"
	if !result.Supported {
		support = "not supported by this reader"
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "file:\t%s\n", result.File)
	fmt.Fprintf(tw, "version:\t%s (%s)\n", result.Version, support)
	fmt.Fprintf(tw, "compression:\t%s\n", result.Compression)
	fmt.Fprintf(tw, "size:\t%s encoded, %s payload\n",
		humanize.Bytes(uint64(result.EncodedSize)), humanize.Bytes(uint64(result.PayloadSize)))
	fmt.Fprintf(tw, "digest:\t%s\n", result.Digest)
	fmt.Fprintf(tw, "autoidx:\t%d\n", result.AutoIdx)
	fmt.Fprintf(tw, "attributes:\t%d\n", result.Attributes)
	fmt.Fprintf(tw, "modules:\t%d\n", len(result.Modules))
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(result.Modules) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "MODULE\tWIRES\tCELLS\tMEMORIES\tPROCESSES\tCONNECTIONS\t\n")
	for _, module := range result.Modules {
		name := module.Name
		if module.Blackbox {
			name += " (blackbox)"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%d\t\n",
			name, module.Wires, module.Cells, module.Memories, module.Processes, module.Connections)
	}
	return tw.Flush()
}

type showParams struct {
	cli.ConfigFlag
}

func (a *app) showCommand() *cli.Command {
	var params showParams
	return &cli.Command{
		Name:    "show",
		Summary: "Print a binary RTLIL file as RTLIL text",
		Description: "Decode a binary RTLIL file into a design and print it as RTLIL\n" +
			"text. Fails on anything the reader rejects, including dangling\n" +
			"wire references.",
		Positional: []string{"FILE"},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("show", &params)
		},
		Run: func(args []string) error {
			session, err := a.start(&params.ConfigFlag, "show")
			if err != nil {
				return err
			}
			options, err := session.codecOptions()
			if err != nil {
				return err
			}
			design, _, err := a.readDesign(args[0], options)
			if err != nil {
				return err
			}
			return rtlil.Dump(a.stdout, design)
		},
	}
}

type dumpParams struct {
	cli.ConfigFlag
	cli.ColorFlag
	Compact bool `flag:"compact,c" desc:"print the tree on a single line"`
}

func (a *app) dumpCommand() *cli.Command {
	var params dumpParams
	return &cli.Command{
		Name:    "dump",
		Summary: "Print the decoded message tree as JSON",
		Description: "Decode the message tree of a binary RTLIL file and print it as\n" +
			"JSON. Names are printed as stored and no references are resolved,\n" +
			"so dump also works on files the reader would reject.",
		Positional: []string{"FILE"},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("dump", &params)
		},
		Examples: []cli.Example{
			{Description: "List the wires of one module", Command: "brtlil dump -c top.brtlil | jq '.Modules[\"\\\\top\"].Wires | keys'"},
		},
		Run: func(args []string) error {
			session, err := a.start(&params.ConfigFlag, "dump")
			if err != nil {
				return err
			}
			options, err := session.codecOptions()
			if err != nil {
				return err
			}
			input, err := a.openInput(args[0])
			if err != nil {
				return err
			}
			defer input.Close()

			message, err := brtlil.ReadMessage(input, options...)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			var rendered bytes.Buffer
			if err := cli.WriteJSON(&rendered, message, !params.Compact); err != nil {
				return err
			}
			return params.Highlight(a.stdout, rendered.String(), "json")
		},
	}
}

type diagParams struct {
	cli.ConfigFlag
}

func (a *app) diagCommand() *cli.Command {
	var params diagParams
	return &cli.Command{
		Name:    "diag",
		Summary: "Print the payload in CBOR diagnostic notation",
		Description: "Decompress a binary RTLIL file and print its CBOR payload in\n" +
			"diagnostic notation (RFC 8949 section 8), with the integer field\n" +
			"keys as stored. Useful for looking at files no reader accepts.\n" +
			"Bytes after the design item are reported on stderr.",
		Positional: []string{"FILE"},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("diag", &params)
		},
		Run: func(args []string) error {
			session, err := a.start(&params.ConfigFlag, "diag")
			if err != nil {
				return err
			}
			input, err := a.openInput(args[0])
			if err != nil {
				return err
			}
			defer input.Close()

			payload, algorithm, err := brtlil.ReadPayload(input)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			session.logger.Debug("decompressed payload", "compression", algorithm.String(), "payload_bytes", len(payload))

			notation, rest, err := codec.DiagnoseFirst(payload)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if len(rest) > 0 {
				session.logger.Warn("payload continues after the design item; readers reject this file",
					"trailing_bytes", len(rest))
			}
			_, err = fmt.Fprintln(a.stdout, notation)
			return err
		},
	}
}

type convertParams struct {
	cli.ConfigFlag
	Compress    bool   `flag:"compress,c" desc:"compress the output"`
	Compression string `flag:"compression" desc:"compression algorithm: gzip, zstd, lz4 or none (default: write.compression); implies --compress unless none"`
	Level       string `flag:"level" desc:"compression level: fastest, default, better or best (default: write.level)"`
}

func (a *app) convertCommand() *cli.Command {
	var params convertParams
	return &cli.Command{
		Name:    "convert",
		Summary: "Re-encode a binary RTLIL file",
		Description: "Read a binary RTLIL file into a design and write it again. The\n" +
			"input may use any compression; the output is uncompressed unless\n" +
			"--compress or --compression says otherwise. OUT is replaced\n" +
			"atomically.",
		Positional: []string{"IN", "OUT"},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("convert", &params)
		},
		Examples: []cli.Example{
			{Description: "Recompress with zstd", Command: "brtlil convert --compression zstd top.brtlil top.zstd.brtlil"},
			{Description: "Decompress to stdout", Command: "brtlil convert top.brtlil - | brtlil diag -"},
		},
		Run: func(args []string) error {
			session, err := a.start(&params.ConfigFlag, "convert")
			if err != nil {
				return err
			}
			if params.Compression != "" {
				session.config.Write.Compression = params.Compression
			}
			if params.Level != "" {
				session.config.Write.Level = params.Level
			}
			options, err := session.codecOptions()
			if err != nil {
				return err
			}
			compressed := params.Compress || (params.Compression != "" && params.Compression != "none")

			inputPath, outputPath := args[0], args[1]
			design, readStats, err := a.readDesign(inputPath, options)
			if err != nil {
				return err
			}

			writer := brtlil.NewWriter(options...)
			err = a.writeOutput(outputPath, func(output io.Writer) error {
				return writer.WriteDesign(design, output, compressed)
			})
			if err != nil {
				return fmt.Errorf("%s: %w", outputPath, err)
			}
			session.logger.Info("converted",
				"input", inputPath,
				"output", outputPath,
				"read", readStats,
				"write", writer.Stats(),
			)
			return nil
		},
	}
}

type checkParams struct {
	cli.ConfigFlag
}

func (a *app) checkCommand() *cli.Command {
	var params checkParams
	return &cli.Command{
		Name:    "check",
		Summary: "Confirm a file round-trips byte for byte",
		Description: "Read a binary RTLIL file into a design, write the design again\n" +
			"and compare the new payload with the file's. Exits 1 without an\n" +
			"error message when the payloads differ, which happens for files\n" +
			"produced by a writer with a different ordering or naming.",
		Positional: []string{"FILE"},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("check", &params)
		},
		Run: func(args []string) error {
			session, err := a.start(&params.ConfigFlag, "check")
			if err != nil {
				return err
			}
			options, err := session.codecOptions()
			if err != nil {
				return err
			}

			path := args[0]
			data, err := a.readInput(path)
			if err != nil {
				return err
			}
			payload, _, err := brtlil.ReadPayload(bytes.NewReader(data))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			design := rtlil.NewDesign()
			if err := brtlil.NewReader(options...).ReadDesign(design, bytes.NewReader(data)); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			var rewritten bytes.Buffer
			if err := brtlil.NewWriter(options...).WriteDesign(design, &rewritten, false); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			if offset := firstDifference(payload, rewritten.Bytes()); offset >= 0 {
				fmt.Fprintf(a.stdout, "%s: payload changes on round trip at byte %d (%d bytes read, %d bytes rewritten)\n",
					path, offset, len(payload), rewritten.Len())
				return &cli.ExitError{Code: 1}
			}
			_, err = fmt.Fprintf(a.stdout, "%s: ok, %d modules, payload %s\n",
				path, len(design.Modules()), binhash.FormatDigest(binhash.HashPayload(payload)))
			return err
		},
	}
}

// firstDifference returns the offset of the first byte where a and b
// differ, or -1 when they are equal.
func firstDifference(a, b []byte) int {
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return min(len(a), len(b))
	}
	return -1
}

type versionParams struct {
	cli.JSONOutput
	cli.ConfigFlag
}

func (a *app) versionCommand() *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print build and format version",
		Description: "Print the build version and the binary RTLIL format version this\n" +
			"build writes. The configuration is loaded and validated, so a\n" +
			"broken --config or $BRTLIL_CONFIG is reported here too.",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Positional: []string{},
		Run: func(args []string) error {
			if _, err := a.start(&params.ConfigFlag, "version"); err != nil {
				return err
			}
			build := version.Current()
			if done, err := params.EmitJSON(a.stdout, build); done {
				return err
			}
			_, err := fmt.Fprintf(a.stdout, "brtlil %s\n", build.Detail())
			return err
		},
	}
}
