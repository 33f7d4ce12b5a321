package peel

import (
	"github.com/spacemeshos/go-txrecon/chunk"
	"github.com/spacemeshos/go-txrecon/common/types"
	"github.com/spacemeshos/go-txrecon/iblt"
)

//go:generate mockgen -typed -package=peel -destination=./mocks_test.go -source=./interface.go

// Sketch is the set summary being decoded.
type Sketch interface {
	// Insert adds a chunk to every bucket it maps to.
	Insert(c chunk.Chunk)
	// Delete removes a chunk from every bucket it maps to.
	Delete(c chunk.Chunk)
	// NumBuckets returns the number of buckets.
	NumBuckets() int
	// Bucket returns the current state of the i-th bucket.
	Bucket(i int) iblt.Bucket
}

// Tracer observes the decoding process.
type Tracer interface {
	// OnRemoved is called when a local transaction is cancelled out of the sketch.
	OnRemoved(tx types.Transaction)
	// OnRecovered is called when a remote transaction is extracted from the sketch.
	OnRecovered(tx types.Transaction)
	// OnPass is called after every pass over the sketch.
	OnPass(pass int, progress bool)
}

type nullTracer struct{}

func (nullTracer) OnRemoved(types.Transaction)   {}
func (nullTracer) OnRecovered(types.Transaction) {}
func (nullTracer) OnPass(int, bool)              {}
