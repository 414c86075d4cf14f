// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/muesli/termenv"
)

// highlightStyle is the chroma style for highlighted output.
const highlightStyle = "monokai"

// ColorFlag is an embeddable struct that adds --color to a command's
// parameter struct.
type ColorFlag struct {
	Color string `json:"-" flag:"color" default:"auto" desc:"syntax highlighting: auto, always or never"`
}

// Highlight writes source to w, highlighted with the named chroma
// lexer when --color allows it. With "auto" the terminal decides:
// output that is not a terminal, or NO_COLOR in the environment, gets
// plain text.
func (c *ColorFlag) Highlight(w io.Writer, source, lexer string) error {
	formatter, err := c.formatter(w)
	if err != nil {
		return err
	}
	if formatter == "" {
		_, err := io.WriteString(w, source)
		return err
	}
	return quick.Highlight(w, source, lexer, formatter, highlightStyle)
}

// formatter picks the chroma terminal formatter matching the color
// profile of w, or "" for plain output.
func (c *ColorFlag) formatter(w io.Writer) (string, error) {
	var profile termenv.Profile
	switch c.Color {
	case "never":
		return "", nil
	case "auto", "":
		profile = termenv.NewOutput(w).EnvColorProfile()
	case "always":
		profile = termenv.NewOutput(w).EnvColorProfile()
		if profile == termenv.Ascii {
			profile = termenv.ANSI256
		}
	default:
		return "", fmt.Errorf("--color must be auto, always or never, got %q", c.Color)
	}

	switch profile {
	case termenv.TrueColor:
		return "terminal16m", nil
	case termenv.ANSI256:
		return "terminal256", nil
	case termenv.ANSI:
		return "terminal16", nil
	default:
		return "", nil
	}
}
