package teb

import (
	"github.com/marcellus-saputra/Thuja/bitvec"
	"github.com/marcellus-saputra/Thuja/treeindex"
)

type frame struct {
	node, level, begin uint64
}

// RunIterator yields the maximal runs of 1s in position order. Adjacent
// leaves valued 1 are merged into one run. Runs are clipped to Size.
//
//	for it := f.Runs(); !it.End(); it.Next() {
//		use(it.Pos(), it.Length())
//	}
type RunIterator struct {
	f        *Flat
	stack    []frame
	pos, end uint64
	done     bool
}

// Runs returns an iterator positioned on the first run.
func (f *Flat) Runs() *RunIterator {
	it := &RunIterator{f: f, stack: make([]frame, 0, f.height+2)}
	it.stack = append(it.stack, frame{})
	it.Next()
	return it
}

func (it *RunIterator) End() bool { return it.done }

// Pos is the first position of the current run.
func (it *RunIterator) Pos() uint64 { return it.pos }

// Length is the number of positions in the current run.
func (it *RunIterator) Length() uint64 { return it.end - it.pos }

// Next advances to the following run.
func (it *RunIterator) Next() {
	f := it.f
	n := f.Size()
	started := false
	for len(it.stack) > 0 {
		top := it.stack[len(it.stack)-1]
		if top.begin >= n {
			it.stack = it.stack[:0]
			break
		}
		it.stack = it.stack[:len(it.stack)-1]

		if f.isInner(top.node) {
			c := f.leftChild(top.node)
			half := treeindex.Coverage(top.level+1, f.height)
			it.stack = append(it.stack,
				frame{node: c + 1, level: top.level + 1, begin: top.begin + half},
				frame{node: c, level: top.level + 1, begin: top.begin})
			continue
		}
		if f.label(top.node) {
			if !started {
				it.pos = top.begin
				started = true
			}
			it.end = top.begin + treeindex.Coverage(top.level, f.height)
			continue
		}
		if started {
			break
		}
	}
	if !started {
		it.done = true
		return
	}
	it.end = min(it.end, n)
}

// SkipTo moves to the run containing pos, or the first run after it.
func (it *RunIterator) SkipTo(pos uint64) {
	f := it.f
	if pos >= f.Size() {
		it.stack = it.stack[:0]
		it.done = true
		return
	}
	if !it.done && it.pos <= pos && pos < it.end {
		it.pos = pos
		return
	}

	// Descend to pos, leaving every right sibling passed on the way on the
	// stack so the walk continues in position order.
	it.stack = it.stack[:0]
	it.done = false
	var node, level, begin uint64
	for f.isInner(node) {
		c := f.leftChild(node)
		level++
		half := treeindex.Coverage(level, f.height)
		if treeindex.Direction(pos, level, f.height) == 0 {
			it.stack = append(it.stack, frame{node: c + 1, level: level, begin: begin + half})
			node = c
		} else {
			node = c + 1
			begin += half
		}
	}
	it.stack = append(it.stack, frame{node: node, level: level, begin: begin})
	it.Next()
	if !it.done && it.pos < pos {
		it.pos = pos
	}
}

// Decode decompresses the encoding into a plain bitmap.
func (f *Flat) Decode() *bitvec.Vector {
	v := bitvec.New(f.Size())
	for it := f.Runs(); !it.End(); it.Next() {
		v.SetRange(it.Pos(), it.Pos()+it.Length())
	}
	return v
}
