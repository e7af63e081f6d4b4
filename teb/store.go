package teb

import (
	"github.com/marcellus-saputra/Thuja/bitvec"
	"github.com/marcellus-saputra/Thuja/rank"
)

// treeStore keeps the rank table in step with every edit of T.
type treeStore struct{ x *rank.Index }

func (s treeStore) test(i uint64) bool              { return s.x.Test(i) }
func (s treeStore) assign(i uint64, v bool)         { s.x.Assign(i, v) }
func (s treeStore) insert(at, count uint64, v bool) { s.x.Insert(at, count, v) }
func (s treeStore) remove(at, count uint64)         { s.x.Remove(at, count) }

// labelStore is a plain word view.
type labelStore []uint64

func (s labelStore) test(i uint64) bool              { return bitvec.Test(s, i) }
func (s labelStore) assign(i uint64, v bool)         { bitvec.Assign(s, i, v) }
func (s labelStore) insert(at, count uint64, v bool) { bitvec.InsertBits(s, at, count, v) }
func (s labelStore) remove(at, count uint64)         { bitvec.RemoveBits(s, at, count) }
