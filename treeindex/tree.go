package treeindex

// The tree over a universe of n positions is the complete binary tree with
// CeilPow2(n) leaves, numbered in level order. With height 3:
//
//	0                      0
//	                    /     \
//	1                 1         2
//	                /   \     /   \
//	2              3     4   5     6
//	              / \   / \ / \   / \
//	3            7   8 9 10 11 12 13 14
//
//	pos          0   1 2  3 4  5  6  7
//
// The encoded tree keeps only the nodes down to the first uniform subtree, so
// below the perfect prefix node indices are found through rank rather than
// through the arithmetic here.

// Height returns the height of the complete tree covering n positions.
func Height(n uint64) uint64 {
	return Log2Uint64(CeilPow2(n))
}

// LevelStart returns the level order index of the first node at level.
func LevelStart(level uint64) uint64 {
	return (uint64(1) << level) - 1
}

// LevelWidth returns the number of nodes on a complete level.
func LevelWidth(level uint64) uint64 {
	return uint64(1) << level
}

// NodeAt returns the node at level covering pos. It is only meaningful while
// every level above is complete.
//
//	NodeAt(2, 5, 3) == 5
func NodeAt(level, pos, height uint64) uint64 {
	return LevelStart(level) + pos>>(height-level)
}

// Direction returns the branch taken when descending into level on the way
// to pos: 0 for the left child, 1 for the right.
func Direction(pos, level, height uint64) uint64 {
	return (pos >> (height - level)) & 1
}

// Coverage returns the number of positions under a node at level.
func Coverage(level, height uint64) uint64 {
	return uint64(1) << (height - level)
}

// FirstPos returns the first position covered by the node at level whose
// subtree contains pos.
func FirstPos(pos, level, height uint64) uint64 {
	shift := height - level
	return pos >> shift << shift
}

// PerfectLevels returns the number of complete levels held by a leading run
// of inner nodes of the given length.
func PerfectLevels(innerRun uint64) uint64 {
	return Log2Uint64(innerRun + 1)
}

// LeftChild maps the inclusive rank of an inner node to its left child.
// Children of the r'th inner node, in level order, are at 2r-1 and 2r.
func LeftChild(rankInclusive uint64) uint64 {
	return 2*rankInclusive - 1
}
