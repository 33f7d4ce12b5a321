// Package iblt implements an invertible Bloom lookup table over transaction chunks.
//
// The table is split into NumHashes equally sized sub-tables and every chunk is
// placed in exactly one bucket of each. A bucket keeps the XOR of all chunks
// placed in it, the number of insertions minus deletions and, optionally, the
// XOR of a short keyed digest of each chunk which lets a reader tell a single
// chunk apart from a mix of several.
package iblt

import (
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"

	"github.com/spacemeshos/go-txrecon/chunk"
	"github.com/spacemeshos/go-txrecon/hash"
)

const (
	// NumHashes is the number of buckets every chunk is placed in.
	NumHashes = 4
	// MaxChecksumSize is the largest supported per-bucket checksum.
	MaxChecksumSize = 32
	counterSize     = 4
)

// ElemSize returns the memory used by one bucket.
func ElemSize(checksumSize int) int {
	return chunk.Size + counterSize + checksumSize
}

// Bucket is a read-only view of one table slot.
type Bucket struct {
	// Count is the number of insertions minus deletions mapped to the bucket.
	Count int64
	// Chunk is the XOR of all chunks mapped to the bucket.
	Chunk chunk.Chunk
	// Pure is set when the bucket holds exactly one chunk, inserted or deleted.
	// Without a checksum this is decided by the count alone.
	Pure bool
}

// Table is an invertible Bloom lookup table. It is not safe for concurrent use.
type Table struct {
	seed         uint64
	checksumSize int
	sub          int
	counts       []int32
	sums         []byte
	checksums    []byte
}

// New creates a table with about n buckets. The bucket count is rounded down to
// a multiple of NumHashes but is never below NumHashes. checksumSize bytes of
// keyed digest are kept per bucket, 0 disables the checksum.
func New(n, checksumSize int, seed uint64) *Table {
	if checksumSize < 0 || checksumSize > MaxChecksumSize {
		panic("BUG: bad iblt checksum size")
	}
	sub := max(1, n/NumHashes)
	total := sub * NumHashes
	return &Table{
		seed:         seed,
		checksumSize: checksumSize,
		sub:          sub,
		counts:       make([]int32, total),
		sums:         make([]byte, total*chunk.Size),
		checksums:    make([]byte, total*checksumSize),
	}
}

// ForMemory creates a table that fits in roughly mem bytes.
func ForMemory(mem, checksumSize int, seed uint64) *Table {
	return New(mem/ElemSize(checksumSize), checksumSize, seed)
}

// Seed returns the placement seed.
func (t *Table) Seed() uint64 {
	return t.seed
}

// ChecksumSize returns the per-bucket checksum length.
func (t *Table) ChecksumSize() int {
	return t.checksumSize
}

// NumBuckets returns the number of buckets in the table.
func (t *Table) NumBuckets() int {
	return len(t.counts)
}

// Insert adds c to the table.
func (t *Table) Insert(c chunk.Chunk) {
	t.apply(c, 1)
}

// Delete removes c from the table. Deleting a chunk that was never inserted is
// allowed and leaves negative counts behind.
func (t *Table) Delete(c chunk.Chunk) {
	t.apply(c, -1)
}

func (t *Table) positions(b []byte) (pos [NumHashes]int) {
	var d xxhash.Digest
	for i := range pos {
		d.ResetWithSeed(t.seed + uint64(i))
		d.Write(b)
		pos[i] = i*t.sub + int(d.Sum64()%uint64(t.sub))
	}
	return pos
}

func (t *Table) checksum(dst, b []byte) {
	var seed [8]byte
	binary.LittleEndian.PutUint64(seed[:], t.seed)
	hash.Checksum(dst, seed[:], b)
}

func (t *Table) apply(c chunk.Chunk, dir int32) {
	b := c.Bytes()
	var sum [MaxChecksumSize]byte
	if t.checksumSize > 0 {
		t.checksum(sum[:t.checksumSize], b[:])
	}
	for _, p := range t.positions(b[:]) {
		t.counts[p] += dir
		xor(t.sums[p*chunk.Size:(p+1)*chunk.Size], b[:])
		if t.checksumSize > 0 {
			xor(t.checksums[p*t.checksumSize:(p+1)*t.checksumSize], sum[:t.checksumSize])
		}
	}
}

func xor(dst, src []byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// Bucket returns the state of the i-th bucket.
func (t *Table) Bucket(i int) Bucket {
	b := Bucket{
		Count: int64(t.counts[i]),
		Chunk: chunk.FromBytes(t.sums[i*chunk.Size : (i+1)*chunk.Size]),
	}
	b.Pure = (b.Count == 1 || b.Count == -1) && t.checksumMatches(i)
	return b
}

func (t *Table) checksumMatches(i int) bool {
	if t.checksumSize == 0 {
		return true
	}
	var want [MaxChecksumSize]byte
	t.checksum(want[:t.checksumSize], t.sums[i*chunk.Size:(i+1)*chunk.Size])
	return bytes.Equal(want[:t.checksumSize], t.checksums[i*t.checksumSize:(i+1)*t.checksumSize])
}

// Outstanding returns the sum of absolute bucket counts.
func (t *Table) Outstanding() int64 {
	var n int64
	for _, c := range t.counts {
		if c < 0 {
			n -= int64(c)
		} else {
			n += int64(c)
		}
	}
	return n
}

// Empty reports whether every bucket is back to its initial state.
func (t *Table) Empty() bool {
	for _, c := range t.counts {
		if c != 0 {
			return false
		}
	}
	for _, b := range t.sums {
		if b != 0 {
			return false
		}
	}
	for _, b := range t.checksums {
		if b != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether both tables have the same parameters and contents.
func (t *Table) Equal(other *Table) bool {
	if t.seed != other.seed || t.checksumSize != other.checksumSize || len(t.counts) != len(other.counts) {
		return false
	}
	for i := range t.counts {
		if t.counts[i] != other.counts[i] {
			return false
		}
	}
	return bytes.Equal(t.sums, other.sums) && bytes.Equal(t.checksums, other.checksums)
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	return &Table{
		seed:         t.seed,
		checksumSize: t.checksumSize,
		sub:          t.sub,
		counts:       append([]int32(nil), t.counts...),
		sums:         append([]byte(nil), t.sums...),
		checksums:    append([]byte(nil), t.checksums...),
	}
}
