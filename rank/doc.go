/*
Package rank maintains a block rank table over a packed bit sequence.

# Table

Entry k is the number of set bits before bit k*BlockBits. Rank(i) adds an
in block popcount to entry i/BlockBits:

	bits   |  block 0  |  block 1  |  block 2 |
	table  0          c0      c0+c1      c0+c1+c2

Assign, Insert and Remove adjust only the entries above the touched position,
so the table never needs a full rebuild after construction. Verify recounts
from scratch and is what the invariant checks use.
*/
package rank
