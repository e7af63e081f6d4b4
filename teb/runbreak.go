package teb

import (
	"fmt"

	"github.com/marcellus-saputra/Thuja/treeindex"
)

// splitStep is the pair of nodes a run-breaking update inserts on one
// level. Positions are those of the finished tree; the steps are applied
// top down so every earlier insertion lies below the later ones.
type splitStep struct {
	at    uint64 // T position of the left node of the pair
	dir   uint64 // which node of the pair is on the path to pos
	label uint64 // L position of the first new leaf on this level
}

// splitPlan turns the leaf covering pos into a path down to the bottom
// level. Off-path siblings keep the leaf's old value and the bottom leaf on
// the path takes val.
type splitPlan struct {
	node  uint64
	level uint64
	label uint64
	val   bool
	steps []splitStep
}

// planSplit computes every position a split will touch from the current
// tree, before anything is changed.
//
// The children of the r'th inner node sit at 2r-1 and 2r. Inner nodes before
// the pair inserted on level k are the old ones before its insertion point,
// the split leaf itself, and the path nodes of the levels above k.
func (f *Flat) planSplit(node, level, pos uint64, val bool) splitPlan {
	r := f.rankInclusive(node)
	p := splitPlan{node: node, level: level, label: node - r, val: val}

	parentRank := r + 1
	for k := level + 1; k <= f.height; k++ {
		above := k - 1 - level
		at := treeindex.LeftChild(parentRank)
		dir := treeindex.Direction(pos, k, f.height)
		onesBefore := f.rankExclusive(at-2*above) + 1 + above

		var label uint64
		if k < f.height {
			// the sibling follows the path node when the path goes left
			ones := onesBefore
			if dir == 0 {
				ones++
			}
			label = at + 1 - dir - ones
		} else {
			label = at - onesBefore
		}
		p.steps = append(p.steps, splitStep{at: at, dir: dir, label: label})
		parentRank = onesBefore + 1
	}
	return p
}

// apply runs the plan against a pair of spans. On dry spans it only prices
// the plan.
func (p *splitPlan) apply(tree, labels *span, height uint64) error {
	if err := tree.write(p.node, true); err != nil {
		return err
	}
	labels.remove(p.label, 1)

	old := !p.val
	for i, st := range p.steps {
		bottom := p.level+1+uint64(i) == height
		left, right := st.dir == 0 && !bottom, st.dir == 1 && !bottom
		if err := tree.insert(st.at, 1, left); err != nil {
			return err
		}
		if err := tree.insert(st.at+1, 1, right); err != nil {
			return err
		}

		if !bottom {
			if err := labels.insert(st.label, 1, old); err != nil {
				return err
			}
			continue
		}
		lv, rv := old, p.val
		if st.dir == 0 {
			lv, rv = p.val, old
		}
		if err := labels.insert(st.label, 1, lv); err != nil {
			return err
		}
		if err := labels.insert(st.label+1, 1, rv); err != nil {
			return err
		}
	}
	return nil
}

// split performs a run-breaking update. The plan is priced on count-only
// copies of the spans first; the buffer is touched only if all of it fits.
func (f *Flat) split(node, level, pos uint64, val bool) UpdateResult {
	plan := f.planSplit(node, level, pos, val)

	tree, labels := f.tree.dry(), f.labels.dry()
	if err := plan.apply(&tree, &labels, f.height); err != nil {
		return Deferred
	}
	if err := plan.apply(&f.tree, &f.labels, f.height); err != nil {
		panic(fmt.Errorf("%w: split priced as affordable failed: %v", ErrInvariant, err))
	}
	f.splitLevels(level)
	return Applied
}
