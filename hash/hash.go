package hash

import "github.com/minio/sha256-simd"

const (
	// Size is an alias to minio sha256.Size (32 bytes).
	Size = sha256.Size
)

var (
	// New is an alias to minio sha256.New.
	New = sha256.New
	// Sum is an alias to minio sha256.Sum256.
	Sum = sha256.Sum256
)

// DoubleSum computes sha256(sha256(data)), the identifier construction used for
// bitcoin-style transactions.
func DoubleSum(data []byte) [Size]byte {
	h := Sum(data)
	return Sum(h[:])
}
