package teb

import (
	"errors"
	"fmt"

	"github.com/marcellus-saputra/Thuja/bitvec"
)

var (
	errTreeFull  = errors.New("teb: prune needs more free T bits")
	errLabelFull = errors.New("teb: prune needs more free L bits")
)

// PruneStats summarises a prune, added up over its passes.
type PruneStats struct {
	// Candidates counts inner nodes found with two leaf children of equal
	// value.
	Candidates uint64
	Collapsed  uint64
	// SkippedTree and SkippedLabels count candidates left in place because
	// making the parent a leaf, or giving it a label, needed more slack
	// than was free.
	SkippedTree   uint64
	SkippedLabels uint64
}

func (st *PruneStats) add(o PruneStats) {
	st.Candidates += o.Candidates
	st.Collapsed += o.Collapsed
	st.SkippedTree += o.SkippedTree
	st.SkippedLabels += o.SkippedLabels
}

// pruned is what a subtree reports to its parent.
type pruned struct {
	leaf   bool
	levels uint64 // levels in the subtree after pruning, counted from the root
}

// Prune merges sibling leaves of equal value back into their parent,
// bottom up, then folds any redundant stored bits at the edges of T and L
// back into the implicit counts. It never changes the decoded bitmap and
// running it twice is the same as running it once.
//
// A candidate skipped for want of slack can become affordable once later
// collapses and the trim have freed bits, so passes repeat until one
// collapses nothing. Each collapse removes two nodes, which bounds the
// number of passes.
func (f *Flat) Prune() PruneStats {
	var st PruneStats
	var root pruned
	for {
		var pass PruneStats
		root = f.prune(0, 0, &pass)
		f.trim()
		st.add(pass)
		if pass.Collapsed == 0 {
			break
		}
	}
	if f.levels != nil {
		f.hdr.EncodedHeight = uint8(f.heightFromLevels())
	} else {
		f.hdr.EncodedHeight = uint8(root.levels)
	}
	f.flush()
	return st
}

// prune visits the right subtree before the left. Collapses below a node
// only remove nodes positioned after it in level order, so the node's own
// rank, and with it the position of its left child, is recomputed
// unchanged after each subtree is done.
func (f *Flat) prune(node, level uint64, st *PruneStats) pruned {
	if !f.isInner(node) {
		return pruned{leaf: true, levels: level + 1}
	}
	right := f.prune(f.leftChild(node)+1, level+1, st)
	left := f.prune(f.leftChild(node), level+1, st)
	res := pruned{levels: max(left.levels, right.levels)}
	if !left.leaf || !right.leaf {
		return res
	}

	c := f.leftChild(node)
	val := f.label(c)
	if val != f.label(c+1) {
		return res
	}
	st.Candidates++

	switch err := f.collapse(node, c, val); {
	case err == nil:
		st.Collapsed++
		f.collapseLevels(level)
		return pruned{leaf: true, levels: level + 1}
	case errors.Is(err, errTreeFull):
		st.SkippedTree++
	case errors.Is(err, errLabelFull):
		st.SkippedLabels++
	}
	return res
}

// collapse turns node into a leaf valued val, dropping its children which
// start at c.
func (f *Flat) collapse(node, c uint64, val bool) error {
	childLabel := f.labelIndex(c)
	// once node is a leaf it no longer counts towards its own rank
	nodeLabel := node - (f.rankInclusive(node) - 1)

	edit := func(tree, labels *span) error {
		tree.remove(c, 2)
		if err := tree.write(node, false); err != nil {
			return errTreeFull
		}
		labels.remove(childLabel, 2)
		if err := labels.insert(nodeLabel, 1, val); err != nil {
			return errLabelFull
		}
		return nil
	}

	tree, labels := f.tree.dry(), f.labels.dry()
	if err := edit(&tree, &labels); err != nil {
		return err
	}
	if err := edit(&f.tree, &f.labels); err != nil {
		panic(fmt.Errorf("%w: collapse priced as affordable failed: %v", ErrInvariant, err))
	}
	return nil
}

// trim folds leading 1s and trailing 0s of the stored T, and leading and
// trailing 0s of the stored L, into the implicit counts.
func (f *Flat) trim() {
	t := &f.tree
	if k := bitvec.FirstClear(f.rank.Bits(), 0, t.bits); k > 0 {
		f.rank.Remove(0, k)
		t.lead += k
		t.bits -= k
	}
	if e := bitvec.LastSet(f.rank.Bits(), 0, t.bits); e < t.bits {
		t.trail += t.bits - e
		t.bits = e
	}

	l := &f.labels
	words := []uint64(l.store.(labelStore))
	if k := bitvec.FirstSet(words, 0, l.bits); k > 0 {
		bitvec.RemoveBits(words, 0, k)
		l.lead += k
		l.bits -= k
	}
	if e := bitvec.LastSet(words, 0, l.bits); e < l.bits {
		l.trail += l.bits - e
		l.bits = e
	}
}
