package teb

import "fmt"

// The level offset table holds, for each level l in [0, height+1], the
// number of nodes and the number of leaves on the levels above l. Word l
// keeps the node offset in its high half and the leaf offset in its low
// half, so level l spans nodes [off(l), off(l+1)) of T.

func (f *Flat) levelOffsets(l uint64) (nodes, leaves uint64) {
	w := f.levels[l]
	return w >> 32, w & 0xffffffff
}

func (f *Flat) setLevelOffsets(l, nodes, leaves uint64) {
	f.levels[l] = nodes<<32 | leaves
}

// adjustLevels records that the given level gained nodes and leaves. Every
// offset below it in the table moves.
func (f *Flat) adjustLevels(level uint64, nodes, leaves int64) {
	if f.levels == nil {
		return
	}
	for l := level + 1; l < uint64(len(f.levels)); l++ {
		n, lv := f.levelOffsets(l)
		f.setLevelOffsets(l, uint64(int64(n)+nodes), uint64(int64(lv)+leaves))
	}
}

// splitLevels accounts for a leaf at level becoming a path down to the
// bottom: the leaf turns inner and every level below gains a pair.
func (f *Flat) splitLevels(level uint64) {
	f.adjustLevels(level, 0, -1)
	for k := level + 1; k <= f.height; k++ {
		if k < f.height {
			f.adjustLevels(k, 2, 1)
		} else {
			f.adjustLevels(k, 2, 2)
		}
	}
	f.hdr.EncodedHeight = uint8(f.height + 1)
}

// collapseLevels accounts for an inner node at level losing its two leaf
// children.
func (f *Flat) collapseLevels(level uint64) {
	f.adjustLevels(level, 0, 1)
	f.adjustLevels(level+1, -2, -2)
}

// heightFromLevels returns the number of non-empty levels.
func (f *Flat) heightFromLevels() uint64 {
	for l := uint64(len(f.levels)) - 1; l > 0; l-- {
		hi, _ := f.levelOffsets(l)
		lo, _ := f.levelOffsets(l - 1)
		if hi > lo {
			return l
		}
	}
	return 0
}

// levelCounts walks T level by level. fn receives each level's node and
// leaf counts.
func (f *Flat) levelCounts(fn func(level, nodes, leaves uint64)) {
	start, count := uint64(0), uint64(1)
	for level := uint64(0); count > 0; level++ {
		inner := f.rankInclusive(start+count-1) - f.rankExclusive(start)
		fn(level, count, count-inner)
		start += count
		count = 2 * inner
	}
}

func (f *Flat) checkLevels() error {
	var nodes, leaves, height uint64
	var err error
	f.levelCounts(func(level, n, lv uint64) {
		if err == nil && f.levels != nil {
			if wn, wl := f.levelOffsets(level); wn != nodes || wl != leaves {
				err = fmt.Errorf("%w: level %d offsets (%d,%d), counted (%d,%d)", ErrInvariant, level, wn, wl, nodes, leaves)
			}
		}
		nodes += n
		leaves += lv
		height = level + 1
	})
	if err != nil {
		return err
	}
	if nodes != f.tree.total() || leaves != f.labels.total() {
		return fmt.Errorf("%w: tree walk found %d nodes %d leaves, header has %d and %d",
			ErrInvariant, nodes, leaves, f.tree.total(), f.labels.total())
	}
	if height > f.height+1 {
		return fmt.Errorf("%w: tree walk reached %d levels", ErrInvariant, height)
	}
	if uint64(f.hdr.EncodedHeight) != height {
		return fmt.Errorf("%w: encoded height %d, walked %d", ErrInvariant, f.hdr.EncodedHeight, height)
	}
	if f.levels != nil {
		for l := height; l < uint64(len(f.levels)); l++ {
			if wn, wl := f.levelOffsets(l); wn != nodes || wl != leaves {
				return fmt.Errorf("%w: level %d offsets (%d,%d), want totals (%d,%d)", ErrInvariant, l, wn, wl, nodes, leaves)
			}
		}
	}
	return nil
}
