// Package txfile reads transactions from text files with one
// "hex(txid):hex(raw)" record per line, the format produced by dumping
// transactions from bitcoind.
package txfile

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/spacemeshos/go-txrecon/common/types"
	"github.com/spacemeshos/go-txrecon/rawtx"
)

// MaxLineSize is the longest line the Reader accepts.
const MaxLineSize = 4 << 20

var (
	// ErrMissingColon is returned for a line without the id separator.
	ErrMissingColon = errors.New("missing colon")
	// ErrBadHex is returned when the transaction bytes are not valid hex.
	ErrBadHex = errors.New("bad transaction hex")
	// ErrIDMismatch is returned when the declared id is not the hash of the transaction.
	ErrIDMismatch = errors.New("transaction id mismatch")
	// ErrShortFile is returned by Load when the file has fewer records than requested.
	ErrShortFile = errors.New("reached end of file reading transactions")
)

// ParseLine decodes a single record. Trailing whitespace is ignored.
func ParseLine(line []byte) (types.Transaction, error) {
	line = bytes.TrimRight(line, " \t\r\n")
	idText, rawText, ok := bytes.Cut(line, []byte{':'})
	if !ok {
		return types.Transaction{}, ErrMissingColon
	}
	var id types.TransactionID
	if err := id.UnmarshalText(idText); err != nil {
		return types.Transaction{}, err
	}
	raw := make([]byte, hex.DecodedLen(len(rawText)))
	if _, err := hex.Decode(raw, rawText); err != nil {
		return types.Transaction{}, fmt.Errorf("%w: %w", ErrBadHex, err)
	}
	tx := types.NewTransaction(raw)
	if tx.ID != id {
		return types.Transaction{}, fmt.Errorf("%w: declared %s, computed %s", ErrIDMismatch, id, tx.ID)
	}
	return tx, nil
}

// FormatLine appends the record for tx, including the newline, to dst.
func FormatLine(dst []byte, tx types.Transaction) []byte {
	dst = append(dst, tx.ID.String()...)
	dst = append(dst, ':')
	dst = hex.AppendEncode(dst, tx.Raw)
	return append(dst, '\n')
}

// Write writes txs in the format read by Reader.
func Write(w io.Writer, txs ...types.Transaction) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for _, tx := range txs {
		buf = FormatLine(buf[:0], tx)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Option configures a Reader.
type Option func(*Reader)

// WithStrict controls whether records must parse as exactly one transaction.
// Enabled by default.
func WithStrict(strict bool) Option {
	return func(r *Reader) {
		r.strict = strict
	}
}

// WithLogger specifies the logger for the Reader.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Reader) {
		r.logger = logger
	}
}

// Reader reads records one by one.
type Reader struct {
	scanner *bufio.Scanner
	logger  *zap.Logger
	strict  bool
	line    int
}

// NewReader creates a Reader on top of r.
func NewReader(r io.Reader, opts ...Option) *Reader {
	rd := &Reader{
		scanner: bufio.NewScanner(r),
		logger:  zap.NewNop(),
		strict:  true,
	}
	rd.scanner.Buffer(make([]byte, 0, 64<<10), MaxLineSize)
	for _, opt := range opts {
		opt(rd)
	}
	return rd
}

// Line returns the number of the last line read.
func (r *Reader) Line() int {
	return r.line
}

// Next returns the next record. Empty lines are skipped.
// io.EOF is returned when there are no more records.
func (r *Reader) Next() (types.Transaction, error) {
	for r.scanner.Scan() {
		r.line++
		line := r.scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		tx, err := ParseLine(line)
		if err != nil {
			return types.Transaction{}, fmt.Errorf("line %d: %w", r.line, err)
		}
		if r.strict {
			if err := rawtx.ParseExact(tx.Raw); err != nil {
				return types.Transaction{}, fmt.Errorf("line %d: tx %s: %w", r.line, tx.ID.ShortString(), err)
			}
		}
		r.logger.Debug("read transaction", zap.Int("line", r.line), zap.Object("tx", tx))
		return tx, nil
	}
	if err := r.scanner.Err(); err != nil {
		return types.Transaction{}, fmt.Errorf("line %d: %w", r.line+1, err)
	}
	return types.Transaction{}, io.EOF
}

// ReadN reads up to n records. It returns ErrShortFile if the input ends first.
func (r *Reader) ReadN(n int) ([]types.Transaction, error) {
	txs := make([]types.Transaction, 0, n)
	for len(txs) < n {
		tx, err := r.Next()
		switch {
		case errors.Is(err, io.EOF):
			return txs, fmt.Errorf("%w: got %d of %d", ErrShortFile, len(txs), n)
		case err != nil:
			return txs, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// Load reads the first nTheirs records of the file as the remote set and the
// following nOurs records as the local set.
func Load(fs afero.Fs, path string, nTheirs, nOurs int, opts ...Option) (theirs, ours []types.Transaction, err error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := NewReader(f, opts...)
	if theirs, err = r.ReadN(nTheirs); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	if ours, err = r.ReadN(nOurs); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return theirs, ours, nil
}

// Save writes txs to a new file at path.
func Save(fs afero.Fs, path string, txs []types.Transaction) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, txs...); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
