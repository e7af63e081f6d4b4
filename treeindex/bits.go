package treeindex

import "math/bits"

func BitLength64(num uint64) uint64 { return uint64(bits.Len64(num)) }

// Log2Uint64 efficiently computes floor(log2(num)). num must be non zero.
func Log2Uint64(num uint64) uint64 {
	return uint64(bits.Len64(num) - 1)
}

// CeilPow2 returns the smallest power of two >= num. CeilPow2(0) is 1.
func CeilPow2(num uint64) uint64 {
	if num <= 1 {
		return 1
	}
	return uint64(1) << bits.Len64(num-1)
}

func IsPow2(num uint64) bool {
	return num != 0 && num&(num-1) == 0
}
