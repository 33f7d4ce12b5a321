// Package bench measures how often a sketch of a given size reconciles two
// transaction sets.
//
// Every run plays both sides: the remote side fills a table with its
// transactions and encodes it, the local side decodes the table, deletes its
// own transactions and peels the rest. A run succeeds when exactly the
// transactions missing locally are recovered.
package bench

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/go-txrecon/chunk"
	"github.com/spacemeshos/go-txrecon/codec"
	"github.com/spacemeshos/go-txrecon/common/types"
	"github.com/spacemeshos/go-txrecon/config"
	"github.com/spacemeshos/go-txrecon/iblt"
	"github.com/spacemeshos/go-txrecon/peel"
	"github.com/spacemeshos/go-txrecon/verify"
)

// Option configures a Runner.
type Option func(*Runner)

// WithLogger specifies the logger for the Runner.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithProgress writes a line per run to w: ">" when the run starts, "." for
// every pass and "OK" or "FAIL" at the end.
func WithProgress(w io.Writer) Option {
	return func(r *Runner) {
		r.progress = w
	}
}

// WithDecoderOptions passes options to the decoder of every run.
func WithDecoderOptions(opts ...peel.Option) Option {
	return func(r *Runner) {
		r.decoderOpts = append(r.decoderOpts, opts...)
	}
}

// Runner executes benchmark runs over a fixed pair of transaction sets.
type Runner struct {
	theirs, ours []types.Transaction
	expected     []types.Transaction
	cfg          config.Config

	logger      *zap.Logger
	decoderOpts []peel.Option

	progressMu sync.Mutex
	progress   io.Writer
}

// New creates a Runner. theirs are the transactions of the remote side, ours
// those of the local side.
func New(theirs, ours []types.Transaction, cfg config.Config, opts ...Option) *Runner {
	r := &Runner{
		theirs:   theirs,
		ours:     ours,
		expected: verify.Difference(theirs, ours),
		cfg:      cfg,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Buckets returns the number of buckets of the table used by every run.
func (r *Runner) Buckets() int {
	return r.table(0).NumBuckets()
}

func (r *Runner) table(seed uint64) *iblt.Table {
	return iblt.ForMemory(int(r.cfg.Sketch.Mem), r.cfg.Sketch.Checksum, seed)
}

// Run executes runs trials, up to Workers of them concurrently. The table of
// each run is seeded with the run number.
func (r *Runner) Run(ctx context.Context, runs int) (*Report, error) {
	if err := r.cfg.Validate(); err != nil {
		return nil, err
	}
	empty := r.table(0)
	report := &Report{
		Theirs:   len(r.theirs),
		Ours:     len(r.ours),
		Buckets:  empty.NumBuckets(),
		Outcomes: make([]Outcome, runs),
	}
	tableBuckets.Set(float64(report.Buckets))
	r.logger.Debug("starting benchmark",
		zap.Int("theirs", report.Theirs),
		zap.Int("ours", report.Ours),
		zap.Int("expected", len(r.expected)),
		zap.Int("buckets", report.Buckets),
		zap.String("mem", humanize.IBytes(uint64(r.cfg.Sketch.Mem))),
		zap.String("wire", humanize.IBytes(uint64(empty.EncodedSize()))),
		zap.Int("runs", runs),
	)
	start := time.Now()
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.cfg.Workers)
	for run := 0; run < runs; run++ {
		eg.Go(func() error {
			out, err := r.trial(ctx, run)
			if err != nil {
				return fmt.Errorf("run %d: %w", run, err)
			}
			report.Outcomes[run] = *out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	report.Duration = time.Since(start)
	r.logger.Info("benchmark finished",
		zap.Int("runs", runs),
		zap.Int("succeeded", report.Successes()),
		zap.Int("percent", report.Percent()),
		zap.Duration("duration", report.Duration),
	)
	return report, nil
}

func (r *Runner) trial(ctx context.Context, run int) (*Outcome, error) {
	start := time.Now()
	seed := uint64(run)

	remote := r.table(seed)
	if err := apply(remote.Insert, r.theirs); err != nil {
		return nil, err
	}
	encoded, err := codec.Encode(remote)
	if err != nil {
		return nil, fmt.Errorf("encode table: %w", err)
	}
	var local iblt.Table
	if err := codec.Decode(encoded, &local); err != nil {
		return nil, fmt.Errorf("decode table: %w", err)
	}
	if err := apply(local.Delete, r.ours); err != nil {
		return nil, err
	}

	tracer := &progressTracer{}
	tracer.buf.WriteByte('>')
	opts := append([]peel.Option{
		peel.WithMaxPasses(r.cfg.Decode.MaxPasses),
		peel.WithTracer(tracer),
	}, r.decoderOpts...)
	res, err := peel.New(&local, r.ours, opts...).Decode(ctx)
	switch {
	case errors.Is(err, peel.ErrTooManyPasses):
		r.logger.Warn("decode aborted", zap.Int("run", run), zap.Error(err))
	case err != nil:
		return nil, err
	}

	out := &Outcome{
		Run:          run,
		Status:       res.Status,
		Passes:       res.Passes,
		Recovered:    len(res.Recovered),
		Removed:      res.Removed,
		Residual:     res.Residual,
		EncodedBytes: len(encoded),
	}
	if err := verify.Check(r.expected, res.IDs()); err != nil {
		r.logger.Debug("recovered set differs", zap.Int("run", run), zap.Error(err))
	} else {
		out.OK = true
	}
	out.Duration = time.Since(start)
	runCounter.WithLabelValues(out.result()).Inc()
	runDuration.Observe(out.Duration.Seconds())
	r.logger.Debug("run finished", zap.Inline(out))

	if out.OK {
		tracer.buf.WriteString("OK\n")
	} else {
		tracer.buf.WriteString("FAIL\n")
	}
	r.writeProgress(tracer.buf.Bytes())
	return out, nil
}

func (r *Runner) writeProgress(b []byte) {
	if r.progress == nil {
		return
	}
	r.progressMu.Lock()
	defer r.progressMu.Unlock()
	if _, err := r.progress.Write(b); err != nil {
		r.logger.Warn("failed to write progress", zap.Error(err))
	}
}

func apply(op func(chunk.Chunk), txs []types.Transaction) error {
	for _, tx := range txs {
		chunks, err := chunk.Split(tx)
		if err != nil {
			return fmt.Errorf("tx %s: %w", tx.ID.ShortString(), err)
		}
		for _, c := range chunks {
			op(c)
		}
	}
	return nil
}

type progressTracer struct {
	buf bytes.Buffer
}

func (*progressTracer) OnRemoved(types.Transaction)   {}
func (*progressTracer) OnRecovered(types.Transaction) {}

func (t *progressTracer) OnPass(int, bool) {
	t.buf.WriteByte('.')
}

// Outcome is the result of a single run.
type Outcome struct {
	Run          int
	OK           bool
	Status       peel.Status
	Passes       int
	Recovered    int
	Removed      int
	Residual     int64
	EncodedBytes int
	Duration     time.Duration
}

func (o *Outcome) result() string {
	if o.OK {
		return "ok"
	}
	return "fail"
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (o *Outcome) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddInt("run", o.Run)
	enc.AddBool("ok", o.OK)
	enc.AddString("status", o.Status.String())
	enc.AddInt("passes", o.Passes)
	enc.AddInt("recovered", o.Recovered)
	enc.AddInt("removed", o.Removed)
	enc.AddInt64("residual", o.Residual)
	enc.AddString("encoded", humanize.IBytes(uint64(o.EncodedBytes)))
	enc.AddDuration("duration", o.Duration)
	return nil
}

// Report aggregates the outcomes of all runs.
type Report struct {
	Theirs, Ours int
	Buckets      int
	Outcomes     []Outcome
	Duration     time.Duration
}

// Successes returns the number of successful runs.
func (r *Report) Successes() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.OK {
			n++
		}
	}
	return n
}

// Percent returns the share of successful runs, rounded down.
func (r *Report) Percent() int {
	if len(r.Outcomes) == 0 {
		return 0
	}
	return r.Successes() * 100 / len(r.Outcomes)
}

// String renders the summary line "theirs, ours, percent".
func (r *Report) String() string {
	return fmt.Sprintf("%d, %d, %d", r.Theirs, r.Ours, r.Percent())
}
