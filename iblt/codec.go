package iblt

import (
	"errors"
	"fmt"

	"github.com/spacemeshos/go-scale"

	"github.com/spacemeshos/go-txrecon/chunk"
)

// MaxBuckets limits the size of a decoded table.
const MaxBuckets = 1 << 24

// ErrBadTable is returned when an encoded table has invalid parameters.
var ErrBadTable = errors.New("bad encoded table")

// EncodeScale implements scale codec interface.
func (t *Table) EncodeScale(e *scale.Encoder) (int, error) {
	var total int
	{
		n, err := scale.EncodeCompact32(e, uint32(len(t.counts)))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeCompact8(e, uint8(t.checksumSize))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeUint64(e, t.seed)
		if err != nil {
			return total, err
		}
		total += n
	}
	for _, c := range t.counts {
		n, err := scale.EncodeUint32(e, uint32(c))
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(e, t.sums)
		if err != nil {
			return total, err
		}
		total += n
	}
	{
		n, err := scale.EncodeByteArray(e, t.checksums)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (t *Table) DecodeScale(d *scale.Decoder) (int, error) {
	var total int
	buckets, n, err := scale.DecodeCompact32(d)
	if err != nil {
		return total, err
	}
	total += n
	if buckets == 0 || buckets > MaxBuckets || buckets%NumHashes != 0 {
		return total, fmt.Errorf("%w: %d buckets", ErrBadTable, buckets)
	}
	checksumSize, n, err := scale.DecodeCompact8(d)
	if err != nil {
		return total, err
	}
	total += n
	if checksumSize > MaxChecksumSize {
		return total, fmt.Errorf("%w: checksum size %d", ErrBadTable, checksumSize)
	}
	seed, n, err := scale.DecodeUint64(d)
	if err != nil {
		return total, err
	}
	total += n

	tbl := New(int(buckets), int(checksumSize), seed)
	for i := range tbl.counts {
		c, n, err := scale.DecodeUint32(d)
		if err != nil {
			return total, err
		}
		total += n
		tbl.counts[i] = int32(c)
	}
	n, err = scale.DecodeByteArray(d, tbl.sums)
	if err != nil {
		return total, err
	}
	total += n
	n, err = scale.DecodeByteArray(d, tbl.checksums)
	if err != nil {
		return total, err
	}
	total += n
	*t = *tbl
	return total, nil
}

// EncodedSize returns the length of the scale encoding of the table.
func (t *Table) EncodedSize() int {
	return compactSize(uint64(len(t.counts))) + 1 + 8 +
		len(t.counts)*counterSize + len(t.counts)*chunk.Size + len(t.checksums)
}

func compactSize(v uint64) int {
	switch {
	case v < 1<<6:
		return 1
	case v < 1<<14:
		return 2
	case v < 1<<30:
		return 4
	default:
		return 5
	}
}
