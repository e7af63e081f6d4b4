package teb

import (
	"fmt"

	"github.com/marcellus-saputra/Thuja/treeindex"
)

// locate walks from the top of the tree to the leaf covering pos and
// returns the leaf and its level.
//
// Levels above the perfect level count are complete, so the walk starts at
// the last of them with plain index arithmetic and only needs rank from
// there down.
func (f *Flat) locate(pos uint64) (node, level uint64) {
	if p := uint64(f.hdr.PerfectLevels); p > 0 {
		level = p - 1
		node = treeindex.NodeAt(level, pos, f.height)
	}
	for f.isInner(node) {
		level++
		node = f.leftChild(node) + treeindex.Direction(pos, level, f.height)
	}
	return node, level
}

func (f *Flat) checkPos(pos uint64) error {
	if pos >= uint64(f.hdr.N) {
		return fmt.Errorf("%w: %d >= %d", ErrPositionRange, pos, f.hdr.N)
	}
	return nil
}

// Test returns the bit at pos. pos must be below Size; anything else is a
// caller error and panics.
func (f *Flat) Test(pos uint64) bool {
	if err := f.checkPos(pos); err != nil {
		panic(err)
	}
	node, _ := f.locate(pos)
	return f.label(node)
}

// RunLength returns the number of positions covered by the leaf that
// covers pos. The run may extend into the padding above Size.
func (f *Flat) RunLength(pos uint64) (uint64, error) {
	if err := f.checkPos(pos); err != nil {
		return 0, err
	}
	_, level := f.locate(pos)
	return treeindex.Coverage(level, f.height), nil
}

// Run returns the positions [begin, end) covered by the leaf covering pos,
// clipped to Size, and the value they share.
func (f *Flat) Run(pos uint64) (begin, end uint64, val bool, err error) {
	if err = f.checkPos(pos); err != nil {
		return 0, 0, false, err
	}
	node, level := f.locate(pos)
	begin = treeindex.FirstPos(pos, level, f.height)
	end = min(begin+treeindex.Coverage(level, f.height), uint64(f.hdr.N))
	return begin, end, f.label(node), nil
}
