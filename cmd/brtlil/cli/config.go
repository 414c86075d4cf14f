// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"os"

	"github.com/bureau-foundation/brtlil/lib/config"
)

// ConfigFlag is an embeddable struct that adds --config to a command's
// parameter struct.
type ConfigFlag struct {
	ConfigPath string `json:"-" flag:"config" desc:"path to a brtlil.yaml config file (default: $BRTLIL_CONFIG, else built-in defaults)"`
}

// LoadConfig returns the configuration selected by --config. Without
// the flag it loads the file named by $BRTLIL_CONFIG, and with neither
// it returns [config.Default].
func (c *ConfigFlag) LoadConfig() (*config.Config, error) {
	if c.ConfigPath != "" {
		return config.LoadFile(c.ConfigPath)
	}
	if os.Getenv(config.EnvVar) != "" {
		return config.Load()
	}
	return config.Default(), nil
}
