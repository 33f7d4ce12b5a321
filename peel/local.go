package peel

import (
	"github.com/spacemeshos/go-txrecon/chunk"
	"github.com/spacemeshos/go-txrecon/common/types"
)

// LocalIndex looks up local transactions by chunk prefix.
type LocalIndex struct {
	byID map[chunk.ID][]types.Transaction
	size int
}

// NewLocalIndex indexes txs. Transactions too large to be split are skipped,
// they can never appear in a sketch.
func NewLocalIndex(txs []types.Transaction) *LocalIndex {
	idx := &LocalIndex{byID: make(map[chunk.ID][]types.Transaction, len(txs))}
	for _, tx := range txs {
		idx.Add(tx)
	}
	return idx
}

// Add indexes tx. It returns false if tx can't be split into chunks.
func (idx *LocalIndex) Add(tx types.Transaction) bool {
	if chunk.Count(len(tx.Raw)) > chunk.MaxChunks {
		return false
	}
	id := chunk.PrefixOf(tx.ID)
	idx.byID[id] = append(idx.byID[id], tx)
	idx.size++
	return true
}

// Len returns the number of indexed transactions.
func (idx *LocalIndex) Len() int {
	return idx.size
}

// Match returns the local transaction that c is a chunk of. Transactions
// sharing the prefix are told apart by the chunk payload.
func (idx *LocalIndex) Match(c chunk.Chunk) (types.Transaction, bool) {
	for _, tx := range idx.byID[c.ID] {
		if own, ok := chunk.At(tx, int(c.Index)); ok && own == c {
			return tx, true
		}
	}
	return types.Transaction{}, false
}
