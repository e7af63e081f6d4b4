// Package poslist is the sorted position list bitmap. It stores the index
// of every set bit and serves as the baseline the tree encoding is compared
// against.
package poslist

import (
	"fmt"
	"slices"

	"github.com/marcellus-saputra/Thuja/bitvec"
	"github.com/marcellus-saputra/Thuja/teb"
)

const positionBytes = 4

// List holds the set positions of a bitmap of n bits in ascending order.
type List struct {
	positions []uint32
	n         uint64
}

// New encodes v.
func New(v *bitvec.Vector) (*List, error) {
	if v.Len() > teb.MaxBits {
		return nil, fmt.Errorf("%w: %d bits", teb.ErrTooLarge, v.Len())
	}
	l := &List{n: v.Len()}
	for i := v.NextSet(0); i < v.Len(); i = v.NextSet(i + 1) {
		l.positions = append(l.positions, uint32(i))
	}
	return l, nil
}

func (l *List) Name() string { return fmt.Sprintf("position_list_%d", positionBytes*8) }

// Size returns the number of bits.
func (l *List) Size() uint64 { return l.n }

// Count returns the number of set bits.
func (l *List) Count() int { return len(l.positions) }

// SizeInBytes counts the positions, the position count and the bit length.
func (l *List) SizeInBytes() uint64 {
	return uint64(len(l.positions))*positionBytes + positionBytes + 8
}

// Test returns the bit at pos.
func (l *List) Test(pos uint64) bool {
	_, found := slices.BinarySearch(l.positions, uint32(pos))
	return found && pos < l.n
}

// Update sets the bit at pos. It never defers.
func (l *List) Update(pos uint64, val bool) (teb.UpdateResult, error) {
	if pos >= l.n {
		return teb.NoOp, fmt.Errorf("%w: %d >= %d", teb.ErrPositionRange, pos, l.n)
	}
	i, found := slices.BinarySearch(l.positions, uint32(pos))
	switch {
	case found == val:
		return teb.NoOp, nil
	case val:
		l.positions = slices.Insert(l.positions, i, uint32(pos))
	default:
		l.positions = slices.Delete(l.positions, i, i+1)
	}
	return teb.Applied, nil
}

// Decode returns the plain bitmap.
func (l *List) Decode() *bitvec.Vector {
	v := bitvec.New(l.n)
	for _, p := range l.positions {
		v.Set(uint64(p))
	}
	return v
}

// And returns the intersection. The result takes the size of l.
func (l *List) And(o *List) *List {
	out := &List{n: l.n}
	a, b := l.positions, o.positions
	for len(a) > 0 && len(b) > 0 {
		switch {
		case a[0] == b[0]:
			out.positions = append(out.positions, a[0])
			a, b = a[1:], b[1:]
		case a[0] < b[0]:
			a = a[1:]
		default:
			b = b[1:]
		}
	}
	return out
}

// Xor returns the symmetric difference. The result takes the size of l.
func (l *List) Xor(o *List) *List {
	out := &List{n: l.n}
	a, b := l.positions, o.positions
	for len(a) > 0 && len(b) > 0 {
		switch {
		case a[0] < b[0]:
			out.positions = append(out.positions, a[0])
			a = a[1:]
		case b[0] < a[0]:
			out.positions = append(out.positions, b[0])
			b = b[1:]
		default:
			a, b = a[1:], b[1:]
		}
	}
	out.positions = append(out.positions, a...)
	out.positions = append(out.positions, b...)
	return out
}
