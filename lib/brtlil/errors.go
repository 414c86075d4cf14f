// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package brtlil

import (
	"errors"
	"fmt"
)

// Kind classifies why a read or write failed.
type Kind uint8

const (
	// KindIO means the underlying stream could not be read or
	// written.
	KindIO Kind = iota + 1

	// KindFormat means the bytes are not a valid binary RTLIL
	// message tree: corruption, truncation, an unsupported version,
	// a declared width that disagrees with its contents, or a
	// structure beyond the configured limits. Also used on write for
	// values the format cannot represent.
	KindFormat

	// KindGraph means the message tree is well formed but does not
	// describe a consistent graph: a signal naming a wire that is
	// not in its module, a slice outside its wire, or a name that
	// collides with an existing object.
	KindGraph

	// KindInternal is any other failure, including a panic raised
	// by the host graph during conversion.
	KindInternal
)

// String returns the lower-case name of the kind.
func (kind Kind) String() string {
	switch kind {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	case KindGraph:
		return "graph"
	case KindInternal:
		return "internal"
	default:
		return fmt.Sprintf("kind(%d)", uint8(kind))
	}
}

// Error is the error type returned by every Reader and Writer entry
// point.
type Error struct {
	Kind Kind
	// Op is "read" or "write".
	Op string
	// Path locates the failing element inside the design, e.g.
	// `module \top / cell \g / port \A`. Empty for stream-level
	// failures.
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("brtlil %s: %s error: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("brtlil %s: %s error at %s: %v", e.Op, e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of the first *Error in err's chain, or
// KindInternal when err is non-nil but carries none. A nil err has
// kind 0.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Kind
	}
	return KindInternal
}

// faultError is the internal carrier used while walking a design. It
// records the kind at the point of failure and accumulates the path
// as it propagates outward through the mappers.
type faultError struct {
	kind Kind
	path []string
	err  error
}

func (f *faultError) Error() string { return f.err.Error() }
func (f *faultError) Unwrap() error { return f.err }

func formatFault(format string, args ...any) error {
	return &faultError{kind: KindFormat, err: fmt.Errorf(format, args...)}
}

func graphFault(format string, args ...any) error {
	return &faultError{kind: KindGraph, err: fmt.Errorf(format, args...)}
}

// within prefixes a location segment onto err's path. Errors that are
// not faults are classified as internal.
func within(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	segment := fmt.Sprintf(format, args...)
	var fault *faultError
	if errors.As(err, &fault) {
		fault.path = append([]string{segment}, fault.path...)
		return fault
	}
	return &faultError{kind: KindInternal, path: []string{segment}, err: err}
}

// toError converts an internal fault into the public *Error. Errors
// that did not come from a mapper take fallback as their kind.
func toError(op string, err error, fallback Kind) *Error {
	var fault *faultError
	if errors.As(err, &fault) {
		path := ""
		for i, segment := range fault.path {
			if i > 0 {
				path += " / "
			}
			path += segment
		}
		return &Error{Kind: fault.kind, Op: op, Path: path, Err: fault.err}
	}
	return &Error{Kind: fallback, Op: op, Err: err}
}
