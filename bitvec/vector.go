package bitvec

import (
	"math/bits"
	"strings"
)

// Vector is a plain, uncompressed bitmap of fixed length.
type Vector struct {
	words []uint64
	n     uint64
}

// New returns a zeroed vector of n bits.
func New(n uint64) *Vector {
	return &Vector{words: make([]uint64, Words(n)), n: n}
}

// FromString parses a vector from a string of '0' and '1' characters. Bit 0
// is the first character. Any other character panics.
func FromString(s string) *Vector {
	v := New(uint64(len(s)))
	for i, c := range s {
		switch c {
		case '0':
		case '1':
			v.Set(uint64(i))
		default:
			panic("bitvec: invalid character in bit string")
		}
	}
	return v
}

// Len returns the number of bits.
func (v *Vector) Len() uint64 { return v.n }

// Words exposes the backing words. Bits at or above Len are always clear.
func (v *Vector) Words() []uint64 { return v.words }

func (v *Vector) Test(i uint64) bool { return Test(v.words, i) }
func (v *Vector) Set(i uint64)       { Set(v.words, i) }
func (v *Vector) Clear(i uint64)     { Clear(v.words, i) }

// Assign sets bit i to b.
func (v *Vector) Assign(i uint64, b bool) { Assign(v.words, i, b) }

// Flip inverts bit i.
func (v *Vector) Flip(i uint64) { v.words[i/WordBits] ^= 1 << (i % WordBits) }

// SetRange sets bits [lo, hi).
func (v *Vector) SetRange(lo, hi uint64) { Fill(v.words, lo, min(hi, v.n), true) }

// Count returns the number of set bits.
func (v *Vector) Count() uint64 {
	var c int
	for _, w := range v.words {
		c += bits.OnesCount64(w)
	}
	return uint64(c)
}

// NextSet returns the first set bit at or after i, or Len if there is none.
func (v *Vector) NextSet(i uint64) uint64 { return FirstSet(v.words, i, v.n) }

// NextClear returns the first clear bit at or after i, or Len if there is none.
func (v *Vector) NextClear(i uint64) uint64 { return FirstClear(v.words, i, v.n) }

// Equal reports whether v and o have the same length and bits.
func (v *Vector) Equal(o *Vector) bool {
	if v.n != o.n {
		return false
	}
	for i := range v.words {
		if v.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// FirstDiff returns the first position where v and o differ, or ok=false if
// they are equal. Vectors of different length differ at the shorter length.
func (v *Vector) FirstDiff(o *Vector) (pos uint64, ok bool) {
	n := min(v.n, o.n)
	for i := uint64(0); i < Words(n); i++ {
		if x := v.words[i] ^ o.words[i]; x != 0 {
			p := i*WordBits + uint64(bits.TrailingZeros64(x))
			if p < n {
				return p, true
			}
		}
	}
	if v.n != o.n {
		return n, true
	}
	return 0, false
}

// Clone returns a deep copy.
func (v *Vector) Clone() *Vector {
	c := &Vector{words: make([]uint64, len(v.words)), n: v.n}
	copy(c.words, v.words)
	return c
}

func (v *Vector) String() string {
	var sb strings.Builder
	sb.Grow(int(v.n))
	for i := uint64(0); i < v.n; i++ {
		if v.Test(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
