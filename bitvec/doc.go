/*
Package bitvec provides the packed bit buffer primitives used by the tree
encoded bitmap, and Vector, the plain uncompressed bitmap it is built from and
decoded to.

# Layout

Bits are numbered LSB0: bit i lives in word i/64 at bit i%64. A buffer is a
plain []uint64 whose length fixes its capacity. InsertBits and RemoveBits
shift the tail of the buffer across word boundaries and never grow it:

	InsertBits(w, at=3, count=2, v=1)

	before  b0 b1 b2 b3 b4 b5 ...
	after   b0 b1 b2  1  1 b3 b4 b5 ...

Bits shifted past the end of the buffer are lost, so callers reserve slack
and check it before inserting.
*/
package bitvec
