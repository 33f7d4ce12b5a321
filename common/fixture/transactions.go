package fixture

import (
	"math/rand"
	"time"

	"github.com/spacemeshos/go-txrecon/common/types"
	"github.com/spacemeshos/go-txrecon/rawtx"
)

// NewTransactionsGenerator with some random parameters.
func NewTransactionsGenerator() *TransactionsGenerator {
	return new(TransactionsGenerator).
		WithSeed(time.Now().UnixNano()).
		WithInputs(1, 3).
		WithOutputs(1, 3).
		WithScriptSize(20, 110)
}

// TransactionsGenerator generates random transactions.
// Transactions are syntactically valid, scripts and references are random bytes.
type TransactionsGenerator struct {
	rng *rand.Rand

	minInputs, maxInputs   int
	minOutputs, maxOutputs int
	minScript, maxScript   int
}

// WithSeed update randomness source.
func (g *TransactionsGenerator) WithSeed(seed int64) *TransactionsGenerator {
	g.rng = rand.New(rand.NewSource(seed))
	return g
}

// WithInputs sets the inclusive range for the number of inputs.
func (g *TransactionsGenerator) WithInputs(low, high int) *TransactionsGenerator {
	g.minInputs, g.maxInputs = low, high
	return g
}

// WithOutputs sets the inclusive range for the number of outputs.
func (g *TransactionsGenerator) WithOutputs(low, high int) *TransactionsGenerator {
	g.minOutputs, g.maxOutputs = low, high
	return g
}

// WithScriptSize sets the inclusive range for script lengths.
func (g *TransactionsGenerator) WithScriptSize(low, high int) *TransactionsGenerator {
	g.minScript, g.maxScript = low, high
	return g
}

func (g *TransactionsGenerator) between(low, high int) int {
	if high <= low {
		return low
	}
	return low + g.rng.Intn(high-low+1)
}

func (g *TransactionsGenerator) script() []byte {
	s := make([]byte, g.between(g.minScript, g.maxScript))
	g.rng.Read(s)
	return s
}

// NextTx generates a transaction in its decoded form.
func (g *TransactionsGenerator) NextTx() *rawtx.Tx {
	tx := &rawtx.Tx{
		Version:  1 + uint32(g.rng.Intn(2)),
		LockTime: uint32(g.rng.Intn(1 << 20)),
	}
	for i := g.between(g.minInputs, g.maxInputs); i > 0; i-- {
		in := rawtx.Input{
			Index:    uint32(g.rng.Intn(8)),
			Script:   g.script(),
			Sequence: 0xffffffff,
		}
		g.rng.Read(in.Ref[:])
		tx.Inputs = append(tx.Inputs, in)
	}
	for i := g.between(g.minOutputs, g.maxOutputs); i > 0; i-- {
		tx.Outputs = append(tx.Outputs, rawtx.Output{
			Amount: g.rng.Uint64() >> 12,
			Script: g.script(),
		})
	}
	return tx
}

// Next generates a raw transaction with its id.
func (g *TransactionsGenerator) Next() types.Transaction {
	return types.NewTransaction(g.NextTx().Bytes())
}

// Generate n transactions.
func (g *TransactionsGenerator) Generate(n int) []types.Transaction {
	txs := make([]types.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txs = append(txs, g.Next())
	}
	return txs
}
