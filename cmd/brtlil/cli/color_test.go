// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestColorFlagHighlight(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	t.Setenv("CLICOLOR", "")
	t.Setenv("CLICOLOR_FORCE", "")

	const source = `{"modules": {"\\top": {"wires": 2}}}` + "\n"
	tests := []struct {
		color   string
		colored bool
	}{
		{"", false},
		{"auto", false},
		{"never", false},
		{"always", true},
	}
	for _, test := range tests {
		t.Run("color="+test.color, func(t *testing.T) {
			flag := ColorFlag{Color: test.color}
			var buffer bytes.Buffer
			if err := flag.Highlight(&buffer, source, "json"); err != nil {
				t.Fatalf("Highlight: %v", err)
			}
			escaped := strings.Contains(buffer.String(), "\x1b[")
			if escaped != test.colored {
				t.Errorf("escape sequences present = %v, want %v: %q", escaped, test.colored, buffer.String())
			}
			if !test.colored && buffer.String() != source {
				t.Errorf("plain output = %q, want %q", buffer.String(), source)
			}
			if test.colored && !strings.Contains(buffer.String(), "modules") {
				t.Errorf("highlighted output lost the source text: %q", buffer.String())
			}
		})
	}
}

func TestColorFlagRejectsUnknownMode(t *testing.T) {
	flag := ColorFlag{Color: "sometimes"}
	var buffer bytes.Buffer
	err := flag.Highlight(&buffer, "{}", "json")
	if err == nil || !strings.Contains(err.Error(), "sometimes") {
		t.Fatalf("Highlight error = %v", err)
	}
	if buffer.Len() != 0 {
		t.Errorf("wrote %q before rejecting the mode", buffer.String())
	}
}
