package chunk

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-txrecon/common/types"
	"github.com/spacemeshos/go-txrecon/rawtx"
)

var (
	// ErrIncomplete is returned when some chunk index below the highest seen one is missing.
	ErrIncomplete = errors.New("missing chunks")
	// ErrTrailingData is returned when the chunks hold more than one transaction's worth of data.
	ErrTrailingData = errors.New("trailing data after transaction")
	// ErrIDMismatch is returned when the reassembled transaction hashes to a different prefix.
	ErrIDMismatch = errors.New("transaction id mismatch")
)

// Set collects chunks by index. Missing indices are nil.
type Set struct {
	chunks []*Chunk
	n      int
}

// Put stores c at its index. The first chunk stored at an index wins.
func (s *Set) Put(c Chunk) {
	i := int(c.Index)
	if i >= len(s.chunks) {
		s.chunks = append(s.chunks, make([]*Chunk, i+1-len(s.chunks))...)
	}
	if s.chunks[i] != nil {
		return
	}
	s.chunks[i] = &c
	s.n++
}

// Get returns the chunk at index i, if present.
func (s *Set) Get(i int) (Chunk, bool) {
	if i < 0 || i >= len(s.chunks) || s.chunks[i] == nil {
		return Chunk{}, false
	}
	return *s.chunks[i], true
}

// Len returns the number of distinct indices present.
func (s *Set) Len() int {
	return s.n
}

// Span returns one past the highest index seen.
func (s *Set) Span() int {
	return len(s.chunks)
}

// Complete reports whether every index from 0 up to the highest seen one is present.
func (s *Set) Complete() bool {
	return s.n > 0 && s.n == len(s.chunks)
}

// Assemble rebuilds the transaction whose chunks are collected in s.
//
// The payloads are concatenated in index order and parsed as a transaction.
// The parsed transaction must account for everything but the zero padding of
// the last chunk, and its id must start with id. The last check keeps chunks of
// unrelated transactions that share a prefix from being stitched together.
func Assemble(id ID, s *Set) (types.Transaction, error) {
	if !s.Complete() {
		return types.Transaction{}, fmt.Errorf("%w: %d of %d present", ErrIncomplete, s.Len(), s.Span())
	}
	buf := make([]byte, s.Span()*DataSize)
	for i := range s.Span() {
		c, _ := s.Get(i)
		copy(buf[i*DataSize:], c.Data[:])
	}
	n, err := rawtx.Parse(buf)
	if err != nil {
		return types.Transaction{}, err
	}
	if len(buf)-n >= DataSize {
		return types.Transaction{}, fmt.Errorf("%w: %d of %d bytes used", ErrTrailingData, n, len(buf))
	}
	for _, b := range buf[n:] {
		if b != 0 {
			return types.Transaction{}, fmt.Errorf("%w: non-zero padding", ErrTrailingData)
		}
	}
	tx := types.NewTransaction(buf[:n:n])
	if got := PrefixOf(tx.ID); got != id {
		return types.Transaction{}, fmt.Errorf("%w: want %s, got %s", ErrIDMismatch, id, got)
	}
	return tx, nil
}
