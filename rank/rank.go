package rank

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/marcellus-saputra/Thuja/bitvec"
)

const (
	// BlockBits is the number of indexed bits summarised by one table entry.
	BlockBits = 512

	blockWords = BlockBits / bitvec.WordBits
)

var ErrMismatch = errors.New("rank: table does not match the indexed bits")

// Entries returns the number of table entries for a sequence with the given
// bit capacity: one per block start plus a trailing total.
func Entries(capBits uint64) uint64 {
	return (capBits+BlockBits-1)/BlockBits + 1
}

// TableWords returns the number of words holding the table. Entries are
// uint32, two per word.
func TableWords(capBits uint64) uint64 {
	return (Entries(capBits) + 1) / 2
}

// Index is a rank lookup table over a packed bit sequence. Entry k holds the
// number of set bits in [0, k*BlockBits).
//
// Both the bits and the table are views, typically into the same serialized
// buffer. Every mutation of the bits must go through the Index so the table
// stays exact.
type Index struct {
	bits  []uint64
	table []uint64
}

// New returns an Index over bits using table as storage. The table contents
// are taken as is; call Build to compute them.
func New(bits, table []uint64) (*Index, error) {
	capBits := uint64(len(bits)) * bitvec.WordBits
	if uint64(len(table)) < TableWords(capBits) {
		return nil, fmt.Errorf("rank: table holds %d words, need %d", len(table), TableWords(capBits))
	}
	return &Index{bits: bits, table: table}, nil
}

// Bits returns the indexed words.
func (x *Index) Bits() []uint64 { return x.bits }

// Cap returns the capacity of the indexed sequence in bits.
func (x *Index) Cap() uint64 { return uint64(len(x.bits)) * bitvec.WordBits }

func (x *Index) entries() uint64 { return Entries(x.Cap()) }

func (x *Index) entry(k uint64) uint32 {
	return uint32(x.table[k/2] >> (32 * (k % 2)))
}

func (x *Index) setEntry(k uint64, v uint32) {
	shift := 32 * (k % 2)
	x.table[k/2] = x.table[k/2]&^(uint64(0xffffffff)<<shift) | uint64(v)<<shift
}

func (x *Index) addEntry(k uint64, delta int64) {
	x.setEntry(k, uint32(int64(x.entry(k))+delta))
}

// Build recomputes the table from the bits.
func (x *Index) Build() {
	var c uint64
	x.setEntry(0, 0)
	for k := uint64(1); k < x.entries(); k++ {
		lo := (k - 1) * blockWords
		hi := min(k*blockWords, uint64(len(x.bits)))
		for _, w := range x.bits[lo:hi] {
			c += uint64(bits.OnesCount64(w))
		}
		x.setEntry(k, uint32(c))
	}
}

// Verify recomputes the table and compares it with the maintained one.
func (x *Index) Verify() error {
	var c uint64
	for k := uint64(0); k < x.entries(); k++ {
		if got := uint64(x.entry(k)); got != c {
			return fmt.Errorf("%w: block %d holds %d, counted %d", ErrMismatch, k, got, c)
		}
		lo := k * blockWords
		hi := min((k+1)*blockWords, uint64(len(x.bits)))
		if lo < hi {
			for _, w := range x.bits[lo:hi] {
				c += uint64(bits.OnesCount64(w))
			}
		}
	}
	return nil
}

// Total returns the number of set bits in the sequence.
func (x *Index) Total() uint64 { return uint64(x.entry(x.entries() - 1)) }

// Rank returns the number of set bits in [0, i].
func (x *Index) Rank(i uint64) uint64 {
	k := i / BlockBits
	return uint64(x.entry(k)) + bitvec.CountRange(x.bits, k*BlockBits, i+1)
}

// Test reports bit i.
func (x *Index) Test(i uint64) bool { return bitvec.Test(x.bits, i) }

// Assign sets bit i to v, adjusting every block boundary above i.
func (x *Index) Assign(i uint64, v bool) {
	if bitvec.Assign(x.bits, i, v) == v {
		return
	}
	delta := int64(-1)
	if v {
		delta = 1
	}
	for k := i/BlockBits + 1; k < x.entries(); k++ {
		x.addEntry(k, delta)
	}
}

// boundary returns the bit position described by table entry k. The final
// entry can describe a position past the capacity; it is clamped.
func (x *Index) boundary(k uint64) uint64 {
	return min(k*BlockBits, x.Cap())
}

// Insert opens a gap of count bits valued v at position at. Bits shifted
// past the capacity are dropped.
//
// For each boundary b above at, the old bits in [max(at, b-count), b) move
// up across b and the inserted bits below b arrive.
func (x *Index) Insert(at, count uint64, v bool) {
	if count == 0 || at >= x.Cap() {
		return
	}
	for k := at/BlockBits + 1; k < x.entries(); k++ {
		b := x.boundary(k)
		lo := at
		if b-at > count {
			lo = b - count
		}
		delta := -int64(bitvec.CountRange(x.bits, lo, b))
		if v {
			delta += int64(min(count, b-at))
		}
		x.addEntry(k, delta)
	}
	bitvec.InsertBits(x.bits, at, count, v)
}

// Remove deletes count bits at position at.
//
// For each boundary b above at, the removed bits below b leave and the old
// bits in [max(b, at+count), b+count) move down across it.
func (x *Index) Remove(at, count uint64) {
	if count == 0 || at >= x.Cap() {
		return
	}
	end := min(at+count, x.Cap())
	for k := at/BlockBits + 1; k < x.entries(); k++ {
		b := x.boundary(k)
		delta := -int64(bitvec.CountRange(x.bits, at, min(end, b)))
		if hi := min(b+count, x.Cap()); hi > max(b, end) {
			delta += int64(bitvec.CountRange(x.bits, max(b, end), hi))
		}
		x.addEntry(k, delta)
	}
	bitvec.RemoveBits(x.bits, at, count)
}
