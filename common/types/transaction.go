package types

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/spacemeshos/go-scale"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/go-txrecon/hash"
)

const (
	// TransactionIDSize in bytes.
	TransactionIDSize = hash.Size
	// PrefixSize is the number of leading identifier bytes carried by every chunk.
	PrefixSize = 6
)

// ErrBadHex is returned when a textual transaction id can't be decoded.
var ErrBadHex = errors.New("bad transaction id hex")

// TransactionID is a double sha256 sum of the raw transaction, used as an identifier.
//
// The in-memory byte order is the digest order. The textual form is reversed,
// matching the way bitcoind prints transaction ids.
type TransactionID [TransactionIDSize]byte

// CalcTransactionID computes the identifier of the raw transaction bytes.
func CalcTransactionID(raw []byte) TransactionID {
	return hash.DoubleSum(raw)
}

// HexToTransactionID parses a transaction id in the reversed hex order.
func HexToTransactionID(s string) (TransactionID, error) {
	var id TransactionID
	if err := id.UnmarshalText([]byte(s)); err != nil {
		return TransactionID{}, err
	}
	return id, nil
}

// Bytes returns the TransactionID as a byte slice.
func (id TransactionID) Bytes() []byte {
	return id[:]
}

// Prefix returns the truncated identifier shared by all chunks of the transaction.
func (id TransactionID) Prefix() (p [PrefixSize]byte) {
	copy(p[:], id[:])
	return p
}

// String returns the hexadecimal representation in bitcoind order.
// It implements the fmt.Stringer interface.
func (id TransactionID) String() string {
	rev := id
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return hex.EncodeToString(rev[:])
}

// ShortString returns the first 10 characters of the ID, for logging purposes.
func (id TransactionID) ShortString() string {
	return id.String()[:10]
}

// Compare orders ids by lexicographic comparison of their digest bytes.
func (id TransactionID) Compare(other TransactionID) int {
	return bytes.Compare(id[:], other[:])
}

// MarshalText implements encoding.TextMarshaler.
func (id TransactionID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *TransactionID) UnmarshalText(text []byte) error {
	if len(text) != 2*TransactionIDSize {
		return fmt.Errorf("%w: length %d", ErrBadHex, len(text))
	}
	var rev TransactionID
	if _, err := hex.Decode(rev[:], text); err != nil {
		return fmt.Errorf("%w: %w", ErrBadHex, err)
	}
	for i := range rev {
		id[i] = rev[len(rev)-1-i]
	}
	return nil
}

// EncodeScale implements scale codec interface.
func (id *TransactionID) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, id[:])
}

// DecodeScale implements scale codec interface.
func (id *TransactionID) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, id[:])
}

// Transaction is an opaque raw transaction together with its identifier.
type Transaction struct {
	ID  TransactionID
	Raw []byte
}

// NewTransaction computes id from raw bytes and returns the object.
func NewTransaction(raw []byte) Transaction {
	return Transaction{
		ID:  CalcTransactionID(raw),
		Raw: raw,
	}
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (t Transaction) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", t.ID.ShortString())
	enc.AddInt("size", len(t.Raw))
	return nil
}

// ToTransactionIDs returns a slice of TransactionID corresponding to the given transactions.
func ToTransactionIDs(txs []Transaction) []TransactionID {
	ids := make([]TransactionID, 0, len(txs))
	for _, tx := range txs {
		ids = append(ids, tx.ID)
	}
	return ids
}
