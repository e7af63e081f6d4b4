package teb

import (
	"fmt"

	"github.com/marcellus-saputra/Thuja/bitvec"
	"github.com/marcellus-saputra/Thuja/rank"
	"github.com/marcellus-saputra/Thuja/treeindex"
)

type nodeState uint8

const (
	allZero nodeState = iota
	allOne
	mixed
)

// wordLevelShift is log2 of the bits in a word. Nodes covering a word or
// less are classified straight from the bitmap.
const wordLevelShift = 6

// appender grows a bit sequence one bit at a time.
type appender struct {
	words []uint64
	n     uint64
}

func (a *appender) add(v bool) {
	if a.n%bitvec.WordBits == 0 {
		a.words = append(a.words, 0)
	}
	if v {
		bitvec.Set(a.words, a.n)
	}
	a.n++
}

// Builder computes the minimal encoding of a plain bitmap: every subtree
// whose positions all share one value becomes a single leaf. Positions
// between n_actual and the next power of two read as 0.
type Builder struct {
	n      uint64
	height uint64

	// tree and labels are the complete T and L sequences in level order.
	tree   appender
	labels appender

	// nodes and leaves hold the per-level counts.
	nodes  []uint64
	leaves []uint64

	// Edge runs of the complete sequences.
	innerRun, trailLeaves uint64
	leadLabels, trailLabels uint64
}

// BuildConfig carries the construction policy for Serialize.
type BuildConfig struct {
	SlackTree       uint32
	SlackLabels     uint32
	LevelOffsets    bool
	UpdateThreshold uint32
}

// NewBuilder encodes v.
func NewBuilder(v *bitvec.Vector) (*Builder, error) {
	if v.Len() == 0 {
		return nil, ErrEmptyBitmap
	}
	if v.Len() > MaxBits {
		return nil, fmt.Errorf("%w: %d bits", ErrTooLarge, v.Len())
	}
	b := &Builder{n: v.Len(), height: treeindex.Height(v.Len())}
	b.emit(v, b.classify(v))
	b.findEdges()
	return b, nil
}

// wordLevel is the highest level whose nodes cover at most one word.
func (b *Builder) wordLevel() uint64 {
	if b.height < wordLevelShift {
		return 0
	}
	return b.height - wordLevelShift
}

// direct classifies a node covering at most one word.
func (b *Builder) direct(v *bitvec.Vector, level, j uint64) nodeState {
	cov := treeindex.Coverage(level, b.height)
	start := j * cov
	words := v.Words()
	var x uint64
	if wi := start / bitvec.WordBits; wi < uint64(len(words)) {
		x = words[wi] >> (start % bitvec.WordBits)
	}
	mask := (uint64(1) << cov) - 1
	switch x & mask {
	case 0:
		return allZero
	case mask:
		return allOne
	}
	return mixed
}

// classify computes the states of every level above the word level,
// bottom up.
func (b *Builder) classify(v *bitvec.Vector) [][]nodeState {
	wl := b.wordLevel()
	states := make([][]nodeState, wl)
	for level := int(wl) - 1; level >= 0; level-- {
		row := make([]nodeState, treeindex.LevelWidth(uint64(level)))
		for j := range row {
			var l, r nodeState
			if uint64(level)+1 == wl {
				l = b.direct(v, wl, 2*uint64(j))
				r = b.direct(v, wl, 2*uint64(j)+1)
			} else {
				l, r = states[level+1][2*j], states[level+1][2*j+1]
			}
			if l == r && l != mixed {
				row[j] = l
			} else {
				row[j] = mixed
			}
		}
		states[level] = row
	}
	return states
}

// emit walks the tree level by level, expanding only mixed nodes.
func (b *Builder) emit(v *bitvec.Vector, states [][]nodeState) {
	wl := b.wordLevel()
	cur := []uint64{0}
	for level := uint64(0); len(cur) > 0; level++ {
		var next []uint64
		var leaves uint64
		for _, j := range cur {
			var s nodeState
			if level < wl {
				s = states[level][j]
			} else {
				s = b.direct(v, level, j)
			}
			if s == mixed {
				b.tree.add(true)
				next = append(next, 2*j, 2*j+1)
				continue
			}
			b.tree.add(false)
			b.labels.add(s == allOne)
			leaves++
		}
		b.nodes = append(b.nodes, uint64(len(cur)))
		b.leaves = append(b.leaves, leaves)
		cur = next
	}
}

func (b *Builder) findEdges() {
	t, l := &b.tree, &b.labels
	b.innerRun = bitvec.FirstClear(t.words, 0, t.n)
	b.trailLeaves = t.n - bitvec.LastSet(t.words, b.innerRun, t.n)
	b.leadLabels = bitvec.FirstSet(l.words, 0, l.n)
	b.trailLabels = l.n - bitvec.LastSet(l.words, b.leadLabels, l.n)
}

// TreeBits is the number of explicit T bits.
func (b *Builder) TreeBits() uint64 { return b.tree.n - b.innerRun - b.trailLeaves }

// LabelBits is the number of explicit L bits.
func (b *Builder) LabelBits() uint64 { return b.labels.n - b.leadLabels - b.trailLabels }

// Header returns the header Serialize writes for cfg.
func (b *Builder) Header(cfg BuildConfig) HeaderV1 {
	treeBits, labelBits := b.TreeBits(), b.LabelBits()
	capT := SlackWords(treeBits, uint64(cfg.SlackTree)) * bitvec.WordBits
	capL := SlackWords(labelBits, uint64(cfg.SlackLabels)) * bitvec.WordBits
	return HeaderV1{
		PerfectLevels:          uint8(treeindex.PerfectLevels(b.innerRun)),
		EncodedHeight:          uint8(len(b.nodes)),
		HasLevelOffsets:        cfg.LevelOffsets,
		N:                      uint32(b.n),
		TreeBits:               uint32(treeBits),
		ImplicitInner:          uint32(b.innerRun),
		ImplicitTrailingLeaves: uint32(b.trailLeaves),
		LabelBits:              uint32(labelBits),
		ImplicitLeadingLabels:  uint32(b.leadLabels),
		ImplicitTrailingLabels: uint32(b.trailLabels),
		UpdateThreshold:        cfg.UpdateThreshold,
		FreeBitsT:              uint32(capT - treeBits),
		FreeBitsL:              uint32(capL - labelBits),
	}
}

// SerializedWords returns the buffer length Serialize needs for cfg.
func (b *Builder) SerializedWords(cfg BuildConfig) uint64 {
	return LayoutV1(b.Header(cfg)).Total
}

// Serialize writes the encoding into dst, which must be zeroed and hold at
// least SerializedWords(cfg) words.
func (b *Builder) Serialize(dst []uint64, cfg BuildConfig) error {
	h := b.Header(cfg)
	l := LayoutV1(h)
	if uint64(len(dst)) < l.Total {
		return fmt.Errorf("%w: have %d words, need %d", ErrBufferTooSmall, len(dst), l.Total)
	}
	if err := EncodeHeaderV1(dst, h); err != nil {
		return err
	}

	treeWords := dst[l.TreeOff:l.RankOff]
	bitvec.Extract(treeWords, b.tree.words, b.innerRun, b.innerRun+b.TreeBits())
	x, err := rank.New(treeWords, dst[l.RankOff:l.LabelOff])
	if err != nil {
		return err
	}
	x.Build()

	bitvec.Extract(dst[l.LabelOff:l.LevelsOff], b.labels.words, b.leadLabels, b.leadLabels+b.LabelBits())

	if h.HasLevelOffsets {
		levels := dst[l.LevelsOff:l.Total]
		var nodes, leaves uint64
		for lv := range levels {
			levels[lv] = nodes<<32 | leaves
			if lv < len(b.nodes) {
				nodes += b.nodes[lv]
				leaves += b.leaves[lv]
			}
		}
	}
	return nil
}

// Build encodes v into a newly allocated buffer.
func Build(v *bitvec.Vector, cfg BuildConfig) ([]uint64, error) {
	b, err := NewBuilder(v)
	if err != nil {
		return nil, err
	}
	words := make([]uint64, b.SerializedWords(cfg))
	if err := b.Serialize(words, cfg); err != nil {
		return nil, err
	}
	return words, nil
}
