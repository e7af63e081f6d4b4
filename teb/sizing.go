package teb

import (
	"github.com/marcellus-saputra/Thuja/bitvec"
	"github.com/marcellus-saputra/Thuja/rank"
	"github.com/marcellus-saputra/Thuja/treeindex"
)

// Layout gives the word offsets of each region of a serialized encoding:
//
//	[header][T words][rank table words][L words][level offset words]
type Layout struct {
	TreeOff   uint64
	RankOff   uint64
	LabelOff  uint64
	LevelsOff uint64
	Total     uint64
}

// LevelWords returns the words used by the level offset table of a tree of
// the given height. Each word holds the node and leaf offsets of one level,
// for levels 0 through height+1.
func LevelWords(height uint64) uint64 { return height + 2 }

// SlackWords rounds explicit+slack bits up to whole words.
func SlackWords(explicit, slack uint64) uint64 {
	return bitvec.Words(explicit + slack)
}

// LayoutV1 computes the region offsets described by h.
func LayoutV1(h HeaderV1) Layout {
	var l Layout
	capT := h.TreeCap()
	l.TreeOff = HeaderWordsV1
	l.RankOff = l.TreeOff + capT/bitvec.WordBits
	l.LabelOff = l.RankOff + rank.TableWords(capT)
	l.LevelsOff = l.LabelOff + h.LabelCap()/bitvec.WordBits
	l.Total = l.LevelsOff
	if h.HasLevelOffsets {
		l.Total += LevelWords(treeindex.Height(uint64(h.N)))
	}
	return l
}

// SizeInBytes is the serialized size described by h.
func SizeInBytes(h HeaderV1) uint64 {
	return LayoutV1(h).Total * 8
}
