// Package verify checks a reconciliation result against the expected set.
package verify

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spacemeshos/go-txrecon/common/types"
)

// ErrMismatch is wrapped by every Mismatch.
var ErrMismatch = errors.New("recovered set mismatch")

// Mismatch describes how the recovered ids differ from the expected ones.
type Mismatch struct {
	Expected, Recovered int
	// Missing lists expected ids that were not recovered.
	Missing []types.TransactionID
	// Unexpected lists recovered ids that were not expected, or recovered
	// more times than expected.
	Unexpected []types.TransactionID
}

// Error implements error.
func (m *Mismatch) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: expected %d, recovered %d", ErrMismatch, m.Expected, m.Recovered)
	if len(m.Missing) > 0 {
		fmt.Fprintf(&b, ", %d missing (first %s)", len(m.Missing), m.Missing[0].ShortString())
	}
	if len(m.Unexpected) > 0 {
		fmt.Fprintf(&b, ", %d unexpected (first %s)", len(m.Unexpected), m.Unexpected[0].ShortString())
	}
	return b.String()
}

// Unwrap returns ErrMismatch.
func (m *Mismatch) Unwrap() error {
	return ErrMismatch
}

func sortedIDs(ids []types.TransactionID) []types.TransactionID {
	ids = slices.Clone(ids)
	slices.SortFunc(ids, types.TransactionID.Compare)
	return ids
}

// Verify reports whether recovered is a permutation of the ids of expected.
func Verify(expected []types.Transaction, recovered []types.TransactionID) bool {
	if len(expected) != len(recovered) {
		return false
	}
	return slices.Equal(sortedIDs(types.ToTransactionIDs(expected)), sortedIDs(recovered))
}

// Check is like Verify but returns a *Mismatch describing the difference.
func Check(expected []types.Transaction, recovered []types.TransactionID) error {
	want := sortedIDs(types.ToTransactionIDs(expected))
	got := sortedIDs(recovered)
	m := &Mismatch{Expected: len(want), Recovered: len(got)}
	i, j := 0, 0
	for i < len(want) || j < len(got) {
		switch {
		case j == len(got) || (i < len(want) && want[i].Compare(got[j]) < 0):
			m.Missing = append(m.Missing, want[i])
			i++
		case i == len(want) || want[i].Compare(got[j]) > 0:
			m.Unexpected = append(m.Unexpected, got[j])
			j++
		default:
			i++
			j++
		}
	}
	if len(m.Missing) == 0 && len(m.Unexpected) == 0 {
		return nil
	}
	return m
}

// Difference returns the transactions of a whose ids are not in b, preserving order.
func Difference(a, b []types.Transaction) []types.Transaction {
	skip := make(map[types.TransactionID]struct{}, len(b))
	for _, tx := range b {
		skip[tx.ID] = struct{}{}
	}
	var out []types.Transaction
	for _, tx := range a {
		if _, ok := skip[tx.ID]; !ok {
			out = append(out, tx)
		}
	}
	return out
}
