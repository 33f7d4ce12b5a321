// Package rawtx parses and builds the bitcoin-style wire layout of transactions.
//
// The parser only validates structure: it walks every length-prefixed field and
// reports how many bytes a well-formed transaction occupies. Scripts, amounts
// and references are skipped, not interpreted.
package rawtx

import (
	"errors"
	"fmt"
)

const refSize = 32

// ErrMalformed is returned when the buffer doesn't hold a complete transaction.
var ErrMalformed = errors.New("malformed transaction")

// Parse walks the transaction at the start of buf and returns the number of
// bytes it occupies. Trailing bytes are not an error here; callers that need
// an exact fit compare the result with len(buf).
func Parse(buf []byte) (int, error) {
	r := NewReader(buf)
	r.Uint32() // version
	inputs := r.Varint()
	for i := uint64(0); i < inputs; i++ {
		r.Skip(refSize)
		r.Uint32()         // index
		r.Skip(r.Varint()) // script
		r.Uint32()         // sequence
		if r.Exhausted() {
			return 0, fmt.Errorf("%w: input %d of %d truncated", ErrMalformed, i, inputs)
		}
	}
	outputs := r.Varint()
	for i := uint64(0); i < outputs; i++ {
		r.Uint64()         // amount
		r.Skip(r.Varint()) // script
		if r.Exhausted() {
			return 0, fmt.Errorf("%w: output %d of %d truncated", ErrMalformed, i, outputs)
		}
	}
	r.Uint32() // lock time
	if r.Exhausted() {
		return 0, fmt.Errorf("%w: truncated after %d bytes", ErrMalformed, r.Consumed())
	}
	return r.Consumed(), nil
}

// ParseExact succeeds only if buf holds exactly one transaction and nothing else.
func ParseExact(buf []byte) error {
	n, err := Parse(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return fmt.Errorf("%w: %d trailing bytes", ErrMalformed, len(buf)-n)
	}
	return nil
}
