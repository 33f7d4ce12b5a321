package rawtx

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/require"
)

func sampleTx() *Tx {
	return &Tx{
		Version: 1,
		Inputs: []Input{
			{Ref: [32]byte{1, 2, 3}, Index: 7, Script: []byte{0x51, 0x52}, Sequence: 0xffffffff},
			{Ref: [32]byte{4}, Index: 0, Script: make([]byte, 300), Sequence: 1},
		},
		Outputs: []Output{
			{Amount: 5000000000, Script: []byte{0x76, 0xa9, 0x14}},
		},
		LockTime: 42,
	}
}

func TestParse(t *testing.T) {
	raw := sampleTx().Bytes()
	require.Len(t, raw, sampleTx().Size())

	n, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, len(raw), n)
	require.NoError(t, ParseExact(raw))

	padded := append(raw[:len(raw):len(raw)], 0, 0, 0)
	n, err = Parse(padded)
	require.NoError(t, err)
	require.Equal(t, len(raw), n)
	require.ErrorIs(t, ParseExact(padded), ErrMalformed)
}

func TestParseEmptyTx(t *testing.T) {
	raw := (&Tx{Version: 2}).Bytes()
	require.Len(t, raw, 10)
	n, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, 10, n)
}

func TestParseTruncated(t *testing.T) {
	raw := sampleTx().Bytes()
	for i := 0; i < len(raw); i++ {
		_, err := Parse(raw[:i])
		require.ErrorIs(t, err, ErrMalformed, "prefix of %d bytes", i)
	}
}

func TestParseLengthPastEnd(t *testing.T) {
	tx := &Tx{
		Version: 1,
		Inputs:  []Input{{Script: []byte{1, 2, 3}}},
	}
	raw := tx.Bytes()
	// script length lives right after version, count, ref and index
	raw[4+1+32+4] = 0xfc
	_, err := Parse(raw)
	require.ErrorIs(t, err, ErrMalformed)

	// absurd input count
	raw = tx.Bytes()
	raw = append(raw[:4], append([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}, raw[5:]...)...)
	_, err = Parse(raw)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestParseNeverOverreads(t *testing.T) {
	f := fuzz.New().NilChance(0.1)
	for i := 0; i < 10000; i++ {
		var buf []byte
		f.Fuzz(&buf)
		n, err := Parse(buf)
		if err == nil {
			require.LessOrEqual(t, n, len(buf))
		}
	}
}

func FuzzParse(f *testing.F) {
	f.Add(sampleTx().Bytes())
	f.Add([]byte{})
	f.Fuzz(func(t *testing.T, buf []byte) {
		n, err := Parse(buf)
		if err != nil {
			return
		}
		require.LessOrEqual(t, n, len(buf))
		require.NoError(t, ParseExact(buf[:n]))
	})
}
