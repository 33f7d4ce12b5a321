package rawtx

import "encoding/binary"

// Input references a previous output.
type Input struct {
	Ref      [refSize]byte
	Index    uint32
	Script   []byte
	Sequence uint32
}

// Output carries an amount locked by a script.
type Output struct {
	Amount uint64
	Script []byte
}

// Tx is the decoded shape of a transaction, used to build raw bytes.
type Tx struct {
	Version  uint32
	Inputs   []Input
	Outputs  []Output
	LockTime uint32
}

// Size returns the length of the serialized transaction.
func (tx *Tx) Size() int {
	n := 4 + VarintSize(uint64(len(tx.Inputs))) + VarintSize(uint64(len(tx.Outputs))) + 4
	for _, in := range tx.Inputs {
		n += refSize + 4 + VarintSize(uint64(len(in.Script))) + len(in.Script) + 4
	}
	for _, out := range tx.Outputs {
		n += 8 + VarintSize(uint64(len(out.Script))) + len(out.Script)
	}
	return n
}

// Bytes serializes the transaction.
func (tx *Tx) Bytes() []byte {
	buf := make([]byte, 0, tx.Size())
	buf = binary.LittleEndian.AppendUint32(buf, tx.Version)
	buf = AppendVarint(buf, uint64(len(tx.Inputs)))
	for _, in := range tx.Inputs {
		buf = append(buf, in.Ref[:]...)
		buf = binary.LittleEndian.AppendUint32(buf, in.Index)
		buf = AppendVarint(buf, uint64(len(in.Script)))
		buf = append(buf, in.Script...)
		buf = binary.LittleEndian.AppendUint32(buf, in.Sequence)
	}
	buf = AppendVarint(buf, uint64(len(tx.Outputs)))
	for _, out := range tx.Outputs {
		buf = binary.LittleEndian.AppendUint64(buf, out.Amount)
		buf = AppendVarint(buf, uint64(len(out.Script)))
		buf = append(buf, out.Script...)
	}
	return binary.LittleEndian.AppendUint32(buf, tx.LockTime)
}
