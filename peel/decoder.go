// Package peel recovers the difference between two transaction sets from an
// invertible Bloom lookup table.
//
// The remote side inserts the chunks of all its transactions, the local side
// deletes the chunks of all of its own. Buckets holding a single deleted chunk
// point at local transactions, which are inserted back to cancel them out.
// Buckets holding a single inserted chunk are grouped by prefix and
// reassembled into remote transactions, which are then deleted. Each pass over
// the buckets can free more of them, so passes repeat until one makes no
// progress.
package peel

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spacemeshos/go-txrecon/chunk"
	"github.com/spacemeshos/go-txrecon/common/types"
	"github.com/spacemeshos/go-txrecon/rawtx"
)

// ErrTooManyPasses is returned when decoding doesn't settle within the pass limit.
var ErrTooManyPasses = errors.New("too many decode passes")

// Status is the outcome of a decode.
type Status int

const (
	// Converged means every bucket was emptied.
	Converged Status = iota
	// Stalled means no bucket can be resolved but some are not empty.
	Stalled
	// Aborted means the decode was interrupted by the pass limit or the context.
	Aborted
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case Converged:
		return "converged"
	case Stalled:
		return "stalled"
	case Aborted:
		return "aborted"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result summarizes a decode.
type Result struct {
	// Recovered lists remote-only transactions in the order they were extracted.
	Recovered []types.Transaction
	// Removed is the number of local transactions cancelled out of the sketch.
	Removed int
	// Passes is the number of passes made, including the final one without progress.
	Passes int
	// Residual is the sum of absolute bucket counts left in the sketch.
	Residual int64
	Status   Status
}

// IDs returns the ids of the recovered transactions.
func (r *Result) IDs() []types.TransactionID {
	return types.ToTransactionIDs(r.Recovered)
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithLogger specifies the logger for the Decoder.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// WithMaxPasses limits the number of passes. By default the limit is derived
// from the sketch contents: every productive pass lowers the sum of absolute
// bucket counts, so a well-formed sketch can't need more passes than that sum.
func WithMaxPasses(n int) Option {
	return func(d *Decoder) {
		d.maxPasses = n
	}
}

// WithTracer specifies a tracer for the Decoder.
func WithTracer(t Tracer) Option {
	return func(d *Decoder) {
		d.tracer = t
	}
}

// Decoder peels a sketch. It owns the sketch for the duration of Decode.
type Decoder struct {
	sketch    Sketch
	local     *LocalIndex
	logger    *zap.Logger
	tracer    Tracer
	maxPasses int

	recovered []types.Transaction
	removed   int
}

// New creates a Decoder for the sketch. local holds every transaction known to
// the local side, whether or not it was deleted from the sketch.
func New(sketch Sketch, local []types.Transaction, opts ...Option) *Decoder {
	d := &Decoder{
		sketch: sketch,
		logger: zap.NewNop(),
		tracer: nullTracer{},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.local = NewLocalIndex(local)
	if d.local.Len() != len(local) {
		d.logger.Warn("some local transactions are too large to be indexed",
			zap.Int("indexed", d.local.Len()),
			zap.Int("total", len(local)))
	}
	return d
}

// Decode runs passes until one of them makes no progress.
//
// The returned Result reflects everything recovered so far even if an error is
// returned. Decode may be called again, on a settled sketch it does nothing.
func (d *Decoder) Decode(ctx context.Context) (*Result, error) {
	limit := d.maxPasses
	if limit <= 0 {
		limit = int(outstanding(d.sketch)) + 2
	}
	var (
		pass int
		err  error
	)
	for {
		if err = ctx.Err(); err != nil {
			break
		}
		if pass == limit {
			err = fmt.Errorf("%w: %d", ErrTooManyPasses, limit)
			break
		}
		pass++
		progress := d.RemoveLocal() > 0
		// newly freed +1 buckets are picked up by the next pass
		progress = d.RecoverRemote() > 0 || progress
		d.tracer.OnPass(pass, progress)
		if !progress {
			break
		}
	}
	res := d.result(pass, err)
	d.logger.Debug("decode finished",
		zap.Stringer("status", res.Status),
		zap.Int("passes", res.Passes),
		zap.Int("recovered", len(res.Recovered)),
		zap.Int("removed", res.Removed),
		zap.Int64("residual", res.Residual),
		zap.Error(err),
	)
	passes.WithLabelValues(res.Status.String()).Observe(float64(res.Passes))
	decodes.WithLabelValues(res.Status.String()).Inc()
	return res, err
}

func (d *Decoder) result(pass int, err error) *Result {
	res := &Result{
		Recovered: d.recovered,
		Removed:   d.removed,
		Passes:    pass,
	}
	clean := true
	for i := 0; i < d.sketch.NumBuckets(); i++ {
		b := d.sketch.Bucket(i)
		res.Residual += abs(b.Count)
		if b.Count != 0 || b.Chunk != (chunk.Chunk{}) {
			clean = false
		}
	}
	switch {
	case err != nil:
		res.Status = Aborted
	case clean:
		res.Status = Converged
	default:
		res.Status = Stalled
	}
	return res
}

// RemoveLocal makes one sweep over the sketch, inserting back every local
// transaction found in a bucket holding a single deleted chunk. It returns the
// number of transactions cancelled.
func (d *Decoder) RemoveLocal() int {
	n := 0
	for i := 0; i < d.sketch.NumBuckets(); i++ {
		b := d.sketch.Bucket(i)
		if b.Count != -1 || !b.Pure {
			continue
		}
		tx, ok := d.local.Match(b.Chunk)
		if !ok {
			continue
		}
		chunks, err := chunk.Split(tx)
		if err != nil {
			panic("BUG: indexed transaction can't be split: " + err.Error())
		}
		for _, c := range chunks {
			d.sketch.Insert(c)
		}
		d.logger.Debug("cancelled local transaction", zap.Object("tx", tx), zap.Int("bucket", i))
		d.removed++
		n++
		removedTxs.Inc()
		d.tracer.OnRemoved(tx)
	}
	return n
}

// RecoverRemote makes one sweep over the sketch, reassembling transactions
// from buckets holding a single inserted chunk. Every recovered transaction is
// deleted from the sketch. It returns the number of transactions recovered.
func (d *Decoder) RecoverRemote() int {
	groups := make(map[chunk.ID][]int)
	for i := 0; i < d.sketch.NumBuckets(); i++ {
		if b := d.sketch.Bucket(i); b.Count == 1 && b.Pure {
			groups[b.Chunk.ID] = append(groups[b.Chunk.ID], i)
		}
	}
	tried := make(map[chunk.ID]struct{}, len(groups))
	n := 0
	for i := 0; i < d.sketch.NumBuckets(); i++ {
		b := d.sketch.Bucket(i)
		if b.Count != 1 || !b.Pure {
			continue
		}
		id := b.Chunk.ID
		if _, ok := tried[id]; ok {
			continue
		}
		if len(groups[id]) == 0 {
			// became pure during this sweep, left for the next pass
			continue
		}
		tried[id] = struct{}{}
		tx, err := d.assemble(id, groups[id])
		if err != nil {
			failures.WithLabelValues(failureReason(err)).Inc()
			d.logger.Debug("can't reassemble transaction", zap.Stringer("prefix", id), zap.Error(err))
			continue
		}
		chunks, err := chunk.Split(tx)
		if err != nil {
			panic("BUG: reassembled transaction can't be split: " + err.Error())
		}
		for _, c := range chunks {
			d.sketch.Delete(c)
		}
		d.logger.Debug("recovered remote transaction", zap.Object("tx", tx), zap.Int("bucket", i))
		d.recovered = append(d.recovered, tx)
		n++
		recoveredTxs.Inc()
		d.tracer.OnRecovered(tx)
	}
	return n
}

// assemble collects the chunks with the given prefix from the buckets listed
// and tries to rebuild their transaction. Buckets are re-read because earlier
// deletions in the same sweep may have changed them.
func (d *Decoder) assemble(id chunk.ID, buckets []int) (types.Transaction, error) {
	var set chunk.Set
	for _, i := range buckets {
		b := d.sketch.Bucket(i)
		if b.Count == 1 && b.Pure && b.Chunk.ID == id {
			set.Put(b.Chunk)
		}
	}
	return chunk.Assemble(id, &set)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, chunk.ErrIncomplete):
		return "incomplete"
	case errors.Is(err, rawtx.ErrMalformed):
		return "malformed"
	case errors.Is(err, chunk.ErrTrailingData):
		return "trailing"
	case errors.Is(err, chunk.ErrIDMismatch):
		return "mismatch"
	}
	return "other"
}

func outstanding(s Sketch) int64 {
	var n int64
	for i := 0; i < s.NumBuckets(); i++ {
		n += abs(s.Bucket(i).Count)
	}
	return n
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
