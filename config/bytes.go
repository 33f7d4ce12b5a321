package config

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Bytes is a size in bytes. Its text form is humanized, e.g. "1MiB" or "512kB".
type Bytes uint64

// String implements fmt.Stringer and pflag.Value.
func (b Bytes) String() string {
	return humanize.IBytes(uint64(b))
}

// Set implements pflag.Value.
func (b *Bytes) Set(s string) error {
	return b.UnmarshalText([]byte(s))
}

// Type implements pflag.Value.
func (*Bytes) Type() string {
	return "bytes"
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *Bytes) UnmarshalText(text []byte) error {
	v, err := humanize.ParseBytes(string(text))
	if err != nil {
		return fmt.Errorf("parse size %q: %w", text, err)
	}
	*b = Bytes(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (b Bytes) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}
