package bitvec

import "math/bits"

// WordBits is the width of a buffer word.
const WordBits = 64

// Words returns the number of words needed to hold n bits.
func Words(n uint64) uint64 { return (n + WordBits - 1) / WordBits }

// lowMask returns the b low bits set. lowMask(64) is all ones.
func lowMask(b uint64) uint64 { return (uint64(1) << b) - 1 }

// Test reports bit i of w. Bit 0 is the least significant bit of w[0].
func Test(w []uint64, i uint64) bool {
	return w[i/WordBits]&(1<<(i%WordBits)) != 0
}

// Set sets bit i of w.
func Set(w []uint64, i uint64) { w[i/WordBits] |= 1 << (i % WordBits) }

// Clear clears bit i of w.
func Clear(w []uint64, i uint64) { w[i/WordBits] &^= 1 << (i % WordBits) }

// Assign sets bit i of w to v and returns the previous value.
func Assign(w []uint64, i uint64, v bool) bool {
	old := Test(w, i)
	if v {
		Set(w, i)
	} else {
		Clear(w, i)
	}
	return old
}

// Fill sets bits [lo, hi) of w to v.
func Fill(w []uint64, lo, hi uint64, v bool) {
	for lo < hi {
		wi, b := lo/WordBits, lo%WordBits
		n := min(WordBits-b, hi-lo)
		m := lowMask(n) << b
		if v {
			w[wi] |= m
		} else {
			w[wi] &^= m
		}
		lo += n
	}
}

// CountRange returns the number of set bits in [lo, hi).
func CountRange(w []uint64, lo, hi uint64) uint64 {
	var c int
	for lo < hi {
		wi, b := lo/WordBits, lo%WordBits
		n := min(WordBits-b, hi-lo)
		c += bits.OnesCount64(w[wi] >> b & lowMask(n))
		lo += n
	}
	return uint64(c)
}

// InsertBits opens a gap of count bits at position at, filled with v.
//
// Bits at or above at move up by count. Bits pushed past the end of w are
// dropped, so the caller must guarantee they are clear when that matters.
func InsertBits(w []uint64, at, count uint64, v bool) {
	n := uint64(len(w)) * WordBits
	if count == 0 || at >= n {
		return
	}
	if count >= n-at {
		Fill(w, at, n, v)
		return
	}

	first := at / WordBits
	low := w[first] & lowMask(at%WordBits)
	ws, bs := int(count/WordBits), count%WordBits

	for i := len(w) - 1; i >= int(first); i-- {
		src := i - ws
		var x uint64
		if src >= 0 {
			x = w[src] << bs
			if bs != 0 && src > 0 {
				x |= w[src-1] >> (WordBits - bs)
			}
		}
		w[i] = x
	}
	w[first] = w[first]&^lowMask(at%WordBits) | low
	Fill(w, at, at+count, v)
}

// RemoveBits deletes count bits starting at position at.
//
// Bits above the removed range move down by count and the top count bits of
// w are cleared.
func RemoveBits(w []uint64, at, count uint64) {
	n := uint64(len(w)) * WordBits
	if count == 0 || at >= n {
		return
	}
	if count >= n-at {
		Fill(w, at, n, false)
		return
	}

	first := at / WordBits
	low := w[first] & lowMask(at%WordBits)
	ws, bs := int(count/WordBits), count%WordBits

	for i := int(first); i < len(w); i++ {
		src := i + ws
		var x uint64
		if src < len(w) {
			x = w[src] >> bs
			if bs != 0 && src+1 < len(w) {
				x |= w[src+1] << (WordBits - bs)
			}
		}
		w[i] = x
	}
	w[first] = w[first]&^lowMask(at%WordBits) | low
}

// FirstClear returns the index of the first clear bit in [lo, hi), or hi if
// every bit in the range is set.
func FirstClear(w []uint64, lo, hi uint64) uint64 {
	for lo < hi {
		wi, b := lo/WordBits, lo%WordBits
		x := ^w[wi] >> b
		if x != 0 {
			p := lo + uint64(bits.TrailingZeros64(x))
			return min(p, hi)
		}
		lo += WordBits - b
	}
	return hi
}

// FirstSet returns the index of the first set bit in [lo, hi), or hi if
// there is none.
func FirstSet(w []uint64, lo, hi uint64) uint64 {
	for lo < hi {
		wi, b := lo/WordBits, lo%WordBits
		x := w[wi] >> b
		if x != 0 {
			p := lo + uint64(bits.TrailingZeros64(x))
			return min(p, hi)
		}
		lo += WordBits - b
	}
	return hi
}

// LastSet returns one past the index of the last set bit in [lo, hi), or lo
// if there is none. The result is the length of the range with its trailing
// clear bits trimmed.
func LastSet(w []uint64, lo, hi uint64) uint64 {
	for hi > lo {
		top := hi - 1
		wi, b := top/WordBits, top%WordBits
		x := w[wi] & lowMask(b+1)
		if x != 0 {
			p := wi*WordBits + uint64(bits.Len64(x))
			return max(p, lo)
		}
		hi = wi * WordBits
	}
	return lo
}

// LastClear is LastSet for clear bits.
func LastClear(w []uint64, lo, hi uint64) uint64 {
	for hi > lo {
		top := hi - 1
		wi, b := top/WordBits, top%WordBits
		x := ^w[wi] & lowMask(b+1)
		if x != 0 {
			p := wi*WordBits + uint64(bits.Len64(x))
			return max(p, lo)
		}
		hi = wi * WordBits
	}
	return lo
}

// Extract copies bits [lo, hi) of src into dst starting at bit 0. dst must
// hold at least hi-lo bits; bits of dst above hi-lo within the last written
// word are cleared.
func Extract(dst, src []uint64, lo, hi uint64) {
	if hi <= lo {
		return
	}
	n := hi - lo
	for i := uint64(0); i < Words(n); i++ {
		p := lo + i*WordBits
		wi, b := p/WordBits, p%WordBits
		x := src[wi] >> b
		if b != 0 && wi+1 < uint64(len(src)) {
			x |= src[wi+1] << (WordBits - b)
		}
		if rem := n - i*WordBits; rem < WordBits {
			x &= lowMask(rem)
		}
		dst[i] = x
	}
}
