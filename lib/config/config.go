// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/brtlil/lib/compress"
)

// EnvVar names the environment variable [Load] reads the config path
// from.
const EnvVar = "BRTLIL_CONFIG"

// Config is the configuration for the brtlil codec and command.
type Config struct {
	// Write configures encoding.
	Write WriteConfig `yaml:"write"`

	// Read configures decoding limits.
	Read ReadConfig `yaml:"read"`

	// Log configures the command's logger.
	Log LogConfig `yaml:"log"`
}

// WriteConfig configures encoding.
type WriteConfig struct {
	// Compression is the algorithm used when a write asks for
	// compression. Values: gzip, zstd, lz4, none.
	// Default: gzip
	Compression string `yaml:"compression"`

	// Level trades speed for size. Values: fastest, default, better,
	// best.
	// Default: default
	Level string `yaml:"level"`
}

// ReadConfig bounds what a reader accepts from a file.
type ReadConfig struct {
	// MaxCaseDepth is the deepest process decision tree accepted, in
	// case levels. Writers refuse deeper trees too.
	// Default: 1024
	MaxCaseDepth int `yaml:"max_case_depth"`

	// MaxElements bounds the length of any single collection in the
	// file: wires of one module, chunks of one signal, and so on.
	// Default: 67108864
	MaxElements int `yaml:"max_elements"`
}

// LogConfig configures the command's logger.
type LogConfig struct {
	// Level is the minimum level logged. Values: debug, info, warn,
	// error.
	// Default: info
	Level string `yaml:"level"`

	// Format selects the handler. "auto" uses text when stderr is a
	// terminal and JSON otherwise. Values: auto, text, json.
	// Default: auto
	Format string `yaml:"format"`
}

// Default returns the default configuration. Values loaded from a file
// are merged over it.
func Default() *Config {
	return &Config{
		Write: WriteConfig{
			Compression: "gzip",
			Level:       "default",
		},
		Read: ReadConfig{
			MaxCaseDepth: 1024,
			MaxElements:  1 << 26,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from the file named by the BRTLIL_CONFIG
// environment variable. Fails if the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvVar)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your brtlil.yaml config file, or use --config flag", EnvVar)
	}

	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// [Default], and validates the result. Unknown keys are rejected so
// that a misspelled setting does not silently fall back to its
// default.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// loadFile loads a single configuration file, merging into the current
// config. Files named *.json or *.jsonc are accepted too: comments and
// trailing commas are stripped, and the remaining JSON is valid YAML.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(c); err != nil {
		// An empty file leaves the defaults in place.
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if _, err := compress.ParseAlgorithm(c.Write.Compression); err != nil {
		errs = append(errs, fmt.Errorf("write.compression: %w", err))
	}
	if _, err := compress.ParseLevel(c.Write.Level); err != nil {
		errs = append(errs, fmt.Errorf("write.level: %w", err))
	}

	if c.Read.MaxCaseDepth < 1 || c.Read.MaxCaseDepth > MaxCaseDepthLimit {
		errs = append(errs, fmt.Errorf("read.max_case_depth must be between 1 and %d, got %d",
			MaxCaseDepthLimit, c.Read.MaxCaseDepth))
	}
	if c.Read.MaxElements < 16 {
		errs = append(errs, fmt.Errorf("read.max_elements must be at least 16, got %d", c.Read.MaxElements))
	}

	logLevels := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(logLevels, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", logLevels))
	}
	logFormats := []string{"auto", "text", "json"}
	if !slices.Contains(logFormats, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", logFormats))
	}

	return errors.Join(errs...)
}

// MaxCaseDepthLimit is the largest MaxCaseDepth that still fits the
// CBOR decoder's nesting ceiling once translated to CBOR levels.
const MaxCaseDepthLimit = 16000
