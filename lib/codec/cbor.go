// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package codec

import (
	"fmt"
	"io"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items. The same design always
// produces identical bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("codec: CBOR encoder initialization failed: " + err.Error())
	}
}

// Limits bounds what a decoder will accept from untrusted input. The
// CBOR decoder recurses once per nesting level, so MaxNestedLevels is
// what keeps a hostile file from exhausting the goroutine stack.
type Limits struct {
	// MaxNestedLevels is the deepest array/map nesting accepted.
	// The CBOR library accepts 4 through 65535.
	MaxNestedLevels int

	// MaxElements bounds the length of any single array and the pair
	// count of any single map. The CBOR library accepts 16 through
	// 2147483647.
	MaxElements int
}

// DefaultLimits is sized for large flattened netlists: a module with
// millions of cells, and process trees nested about a thousand deep.
var DefaultLimits = Limits{
	MaxNestedLevels: 4200,
	MaxElements:     1 << 26,
}

// Validate reports whether the limits are inside the range the CBOR
// library supports.
func (l Limits) Validate() error {
	if l.MaxNestedLevels < 4 || l.MaxNestedLevels > 65535 {
		return fmt.Errorf("max nested levels %d outside [4, 65535]", l.MaxNestedLevels)
	}
	if l.MaxElements < 16 || l.MaxElements > 2147483647 {
		return fmt.Errorf("max elements %d outside [16, 2147483647]", l.MaxElements)
	}
	return nil
}

var (
	decModesMu sync.Mutex
	decModes   = map[Limits]cbor.DecMode{}
)

// decMode returns the decoder for limits. Decoders reject duplicate
// map keys: a name appearing twice in one collection is corruption,
// not something to resolve silently. Unknown struct fields are
// ignored so that newer writers stay readable.
func decMode(limits Limits) (cbor.DecMode, error) {
	decModesMu.Lock()
	defer decModesMu.Unlock()

	if mode, ok := decModes[limits]; ok {
		return mode, nil
	}
	if err := limits.Validate(); err != nil {
		return nil, fmt.Errorf("codec: %w", err)
	}
	mode, err := cbor.DecOptions{
		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels:  limits.MaxNestedLevels,
		MaxArrayElements: limits.MaxElements,
		MaxMapPairs:      limits.MaxElements,
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("codec: CBOR decoder initialization failed: %w", err)
	}
	decModes[limits] = mode
	return mode, nil
}

// Marshal encodes v to CBOR using Core Deterministic Encoding.
func Marshal(v any) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes CBOR data into v under DefaultLimits.
func Unmarshal(data []byte, v any) error {
	return UnmarshalLimits(data, v, DefaultLimits)
}

// UnmarshalLimits decodes CBOR data into v, rejecting input that
// exceeds limits. Trailing bytes after the first item are an error.
func UnmarshalLimits(data []byte, v any, limits Limits) error {
	mode, err := decMode(limits)
	if err != nil {
		return err
	}
	return mode.Unmarshal(data, v)
}

// Encoder is a CBOR stream encoder. Type alias so consumers import
// only lib/codec, not fxamacker/cbor directly.
type Encoder = cbor.Encoder

// NewEncoder returns a CBOR encoder that writes to w using Core
// Deterministic Encoding.
func NewEncoder(w io.Writer) *Encoder {
	return encMode.NewEncoder(w)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) for the
// entire contents of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}

// DiagnoseFirst returns the CBOR diagnostic notation for the first
// data item in data, along with the remaining unconsumed bytes.
func DiagnoseFirst(data []byte) (string, []byte, error) {
	return cbor.DiagnoseFirst(data)
}
