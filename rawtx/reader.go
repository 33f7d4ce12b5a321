package rawtx

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	varint16 = 0xfd
	varint32 = 0xfe
	varint64 = 0xff
)

// ErrShortVarint is returned when a varint prefix declares more bytes than available.
var ErrShortVarint = errors.New("short varint")

// Reader pulls little-endian fields out of a byte slice.
//
// Reads never go past the end of the buffer. A read that can't be satisfied
// returns the zero value and leaves the Reader exhausted; every read after that
// returns zero values as well.
type Reader struct {
	buf       []byte
	consumed  int
	exhausted bool
}

// NewReader returns a Reader over buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Exhausted reports whether any read has run past the end of the buffer.
func (r *Reader) Exhausted() bool {
	return r.exhausted
}

// Consumed returns the number of bytes read so far.
func (r *Reader) Consumed() int {
	return r.consumed
}

func (r *Reader) remaining() int {
	return len(r.buf)
}

func (r *Reader) use(n uint64) []byte {
	if r.exhausted || uint64(len(r.buf)) < n {
		r.buf = nil
		r.exhausted = true
		return nil
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]
	r.consumed += int(n)
	return b
}

// Skip discards n bytes.
func (r *Reader) Skip(n uint64) {
	r.use(n)
}

// Bytes copies len(dst) bytes into dst, zeroing dst on a short read.
func (r *Reader) Bytes(dst []byte) {
	b := r.use(uint64(len(dst)))
	if b == nil {
		clear(dst)
		return
	}
	copy(dst, b)
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() uint32 {
	b := r.use(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Uint64 reads a little-endian uint64.
func (r *Reader) Uint64() uint64 {
	b := r.use(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// Varint reads a prefix-discriminated variable length integer.
func (r *Reader) Varint() uint64 {
	if r.exhausted || len(r.buf) == 0 {
		r.use(1)
		return 0
	}
	v, n, err := ReadVarint(r.buf)
	if err != nil {
		r.use(uint64(len(r.buf) + 1))
		return 0
	}
	r.use(uint64(n))
	return v
}

// ReadVarint decodes a variable length integer from the start of buf and
// returns the value along with the number of bytes it occupied.
//
// Values below 0xfd take a single byte. The prefixes 0xfd, 0xfe and 0xff are
// followed by 2, 4 and 8 little-endian bytes respectively.
func ReadVarint(buf []byte) (uint64, int, error) {
	if len(buf) == 0 {
		return 0, 0, fmt.Errorf("%w: empty buffer", ErrShortVarint)
	}
	var width int
	switch buf[0] {
	case varint16:
		width = 2
	case varint32:
		width = 4
	case varint64:
		width = 8
	default:
		return uint64(buf[0]), 1, nil
	}
	if len(buf) < 1+width {
		return 0, 0, fmt.Errorf("%w: prefix 0x%x needs %d bytes, have %d",
			ErrShortVarint, buf[0], width, len(buf)-1)
	}
	var v uint64
	for i := width; i >= 1; i-- {
		v = v<<8 | uint64(buf[i])
	}
	return v, 1 + width, nil
}

// VarintSize returns the encoded length of v.
func VarintSize(v uint64) int {
	switch {
	case v < varint16:
		return 1
	case v <= 0xffff:
		return 3
	case v <= 0xffffffff:
		return 5
	default:
		return 9
	}
}

// AppendVarint appends the encoding of v to buf.
func AppendVarint(buf []byte, v uint64) []byte {
	switch {
	case v < varint16:
		return append(buf, byte(v))
	case v <= 0xffff:
		return binary.LittleEndian.AppendUint16(append(buf, varint16), uint16(v))
	case v <= 0xffffffff:
		return binary.LittleEndian.AppendUint32(append(buf, varint32), uint32(v))
	default:
		return binary.LittleEndian.AppendUint64(append(buf, varint64), v)
	}
}
