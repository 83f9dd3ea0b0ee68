// Package bitint provides power-of-two helpers used when sizing FFT
// blocks and capture buffers. All operations are constant time and
// allocation free, so they are safe to call from the capture path.
package bitint

import "math/bits"

// NextPowerOfTwo returns the smallest power of 2 >= size.
// Sizes <= 0 map to 1. Exact powers of 2 are returned unchanged;
// the size-1 trick keeps 8 from becoming 16.
func NextPowerOfTwo(size int) int {
	if size <= 0 {
		return 1
	}
	return 1 << bits.Len64(uint64(size-1))
}

// IsPowerOfTwo reports whether n is a positive power of 2.
// Powers of 2 have a single bit set, so n & (n-1) clears it to zero.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
