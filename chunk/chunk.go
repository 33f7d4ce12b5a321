// Package chunk slices transactions into fixed-size tagged chunks and
// reassembles them.
//
// Every chunk of a transaction carries the same 6-byte identifier prefix (the
// leading bytes of the transaction id), its position in the sequence and 8
// bytes of payload. The last chunk is zero padded.
package chunk

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"math"

	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-txrecon/common/types"
)

const (
	// IDSize is the length of the identifier prefix.
	IDSize = types.PrefixSize
	// DataSize is the payload length of a chunk.
	DataSize = 8
	// Size is the length of the serialized chunk: id, 16-bit index and payload.
	Size = IDSize + 2 + DataSize
	// MaxChunks is the number of distinct indices a chunk can carry.
	MaxChunks = math.MaxUint16 + 1
	// MaxTxSize is the largest transaction that can be split.
	MaxTxSize = MaxChunks * DataSize
)

// ErrTooLarge is returned when a transaction needs more than MaxChunks chunks.
var ErrTooLarge = errors.New("transaction too large to split")

// ID is the truncated transaction identifier shared by all chunks of a transaction.
type ID [IDSize]byte

// String implements fmt.Stringer.
func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// Chunk is a fixed-size fragment of a transaction.
type Chunk struct {
	ID    ID
	Index uint16
	Data  [DataSize]byte
}

// String implements fmt.Stringer.
func (c Chunk) String() string {
	return fmt.Sprintf("%s/%d:%s", c.ID, c.Index, hex.EncodeToString(c.Data[:]))
}

// Bytes returns the fixed-width layout of the chunk. This is the value the
// sketch XORs into its buckets.
func (c Chunk) Bytes() [Size]byte {
	var b [Size]byte
	c.Put(b[:])
	return b
}

// Put writes the chunk layout into b, which must be at least Size bytes long.
func (c Chunk) Put(b []byte) {
	copy(b, c.ID[:])
	binary.LittleEndian.PutUint16(b[IDSize:], c.Index)
	copy(b[IDSize+2:], c.Data[:])
}

// FromBytes is the inverse of Bytes. b must be at least Size bytes long.
func FromBytes(b []byte) Chunk {
	var c Chunk
	copy(c.ID[:], b)
	c.Index = binary.LittleEndian.Uint16(b[IDSize:])
	copy(c.Data[:], b[IDSize+2:Size])
	return c
}

// EncodeScale implements scale codec interface.
func (c *Chunk) EncodeScale(e *scale.Encoder) (int, error) {
	b := c.Bytes()
	return scale.EncodeByteArray(e, b[:])
}

// DecodeScale implements scale codec interface.
func (c *Chunk) DecodeScale(d *scale.Decoder) (int, error) {
	var b [Size]byte
	n, err := scale.DecodeByteArray(d, b[:])
	if err != nil {
		return n, err
	}
	*c = FromBytes(b[:])
	return n, nil
}

// PrefixOf returns the chunk ID of the transaction id.
func PrefixOf(id types.TransactionID) ID {
	return ID(id.Prefix())
}

// Count returns the number of chunks a transaction of the given size is split into.
func Count(size int) int {
	return (size + DataSize - 1) / DataSize
}

// Split slices tx into chunks, in index order.
func Split(tx types.Transaction) ([]Chunk, error) {
	n := Count(len(tx.Raw))
	if n > MaxChunks {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, len(tx.Raw))
	}
	id := PrefixOf(tx.ID)
	chunks := make([]Chunk, n)
	for i := range chunks {
		chunks[i].ID = id
		chunks[i].Index = uint16(i)
		copy(chunks[i].Data[:], tx.Raw[i*DataSize:])
	}
	return chunks, nil
}

// At returns the i-th chunk of tx without slicing the whole transaction.
func At(tx types.Transaction, i int) (Chunk, bool) {
	if i < 0 || i >= Count(len(tx.Raw)) || i >= MaxChunks {
		return Chunk{}, false
	}
	c := Chunk{ID: PrefixOf(tx.ID), Index: uint16(i)}
	copy(c.Data[:], tx.Raw[i*DataSize:])
	return c, true
}
