package teb

import (
	"fmt"

	"github.com/marcellus-saputra/Thuja/bitvec"
	"github.com/marcellus-saputra/Thuja/rank"
	"github.com/marcellus-saputra/Thuja/treeindex"
)

// Flat is the encoding logic over a borrowed serialized buffer. It never
// reallocates the buffer; structural growth is bounded by the free bits
// reserved when the buffer was built. A Flat must not be used after its
// buffer has been replaced.
type Flat struct {
	words  []uint64
	hdr    HeaderV1
	height uint64

	tree   span
	labels span
	rank   *rank.Index
	levels []uint64

	twoRun bool
}

// NewFlat parses and validates the header of words and returns a Flat
// viewing them.
func NewFlat(words []uint64) (*Flat, error) {
	h, ok, err := DecodeHeaderV1(words)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: header not initialized", ErrHeaderInvalid)
	}
	l := LayoutV1(h)
	if uint64(len(words)) < l.Total {
		return nil, fmt.Errorf("%w: have %d words, need %d", ErrBufferTooSmall, len(words), l.Total)
	}

	f := &Flat{
		words:  words[:l.Total],
		hdr:    h,
		height: treeindex.Height(uint64(h.N)),
	}
	if f.rank, err = rank.New(words[l.TreeOff:l.RankOff], words[l.RankOff:l.LabelOff]); err != nil {
		return nil, err
	}
	f.tree = span{
		lead:    uint64(h.ImplicitInner),
		bits:    uint64(h.TreeBits),
		trail:   uint64(h.ImplicitTrailingLeaves),
		cap:     h.TreeCap(),
		leadVal: true,
		store:   treeStore{f.rank},
	}
	f.labels = span{
		lead:  uint64(h.ImplicitLeadingLabels),
		bits:  uint64(h.LabelBits),
		trail: uint64(h.ImplicitTrailingLabels),
		cap:   h.LabelCap(),
		store: labelStore(words[l.LabelOff:l.LevelsOff]),
	}
	if h.HasLevelOffsets {
		f.levels = words[l.LevelsOff:l.Total]
	}
	return f, nil
}

// Header returns the current header.
func (f *Flat) Header() HeaderV1 { return f.hdr }

// Words returns the underlying buffer.
func (f *Flat) Words() []uint64 { return f.words }

// Size returns n_actual.
func (f *Flat) Size() uint64 { return uint64(f.hdr.N) }

// Height returns the height of the complete tree over the padded universe.
func (f *Flat) Height() uint64 { return f.height }

// SizeInBytes returns the serialized size.
func (f *Flat) SizeInBytes() uint64 { return uint64(len(f.words)) * 8 }

// SetTwoRunShortcut allows relative updates to split a leaf one level above
// the bottom.
func (f *Flat) SetTwoRunShortcut(on bool) { f.twoRun = on }

// rankInclusive counts the inner nodes in [0, node], implicit ones included.
func (f *Flat) rankInclusive(node uint64) uint64 {
	t := &f.tree
	if node < t.lead {
		return node + 1
	}
	if t.bits == 0 {
		return t.lead
	}
	return t.lead + f.rank.Rank(min(node-t.lead, t.bits-1))
}

// rankExclusive counts the inner nodes in [0, node).
func (f *Flat) rankExclusive(node uint64) uint64 {
	if node == 0 {
		return 0
	}
	return f.rankInclusive(node - 1)
}

func (f *Flat) isInner(node uint64) bool { return f.tree.get(node) }

func (f *Flat) leftChild(node uint64) uint64 {
	return treeindex.LeftChild(f.rankInclusive(node))
}

// labelIndex maps a leaf to its position in L.
func (f *Flat) labelIndex(node uint64) uint64 {
	return node - f.rankInclusive(node)
}

func (f *Flat) label(node uint64) bool {
	return f.labels.get(f.labelIndex(node))
}

// flush writes the counts back into the header words.
func (f *Flat) flush() {
	h := &f.hdr
	h.ImplicitInner = uint32(f.tree.lead)
	h.TreeBits = uint32(f.tree.bits)
	h.ImplicitTrailingLeaves = uint32(f.tree.trail)
	h.FreeBitsT = uint32(f.tree.free())
	h.ImplicitLeadingLabels = uint32(f.labels.lead)
	h.LabelBits = uint32(f.labels.bits)
	h.ImplicitTrailingLabels = uint32(f.labels.trail)
	h.FreeBitsL = uint32(f.labels.free())
	h.PerfectLevels = uint8(treeindex.PerfectLevels(f.tree.lead))

	f.writeHeader()
	if invariantsEnabled {
		if err := f.Check(); err != nil {
			panic(err)
		}
	}
}

func (f *Flat) writeHeader() {
	if err := EncodeHeaderV1(f.words, f.hdr); err != nil {
		panic(fmt.Errorf("%w: %v", ErrInvariant, err))
	}
}

// countUpdate bumps the applied update counter and reports whether the
// update threshold has been reached.
func (f *Flat) countUpdate() bool {
	f.hdr.UpdateCounter++
	f.writeHeader()
	return f.hdr.UpdateThreshold != 0 && f.hdr.UpdateCounter >= f.hdr.UpdateThreshold
}

func (f *Flat) resetUpdateCounter() {
	f.hdr.UpdateCounter = 0
	f.writeHeader()
}

// Check verifies the structural invariants and returns the first
// violation. It is linear in the size of the encoding.
func (f *Flat) Check() error {
	t, l := &f.tree, &f.labels
	if t.bits > t.cap || l.bits > l.cap {
		return fmt.Errorf("%w: explicit bits exceed capacity", ErrInvariant)
	}
	if t.total() != 2*l.total()-1 {
		return fmt.Errorf("%w: %d nodes but %d labels", ErrInvariant, t.total(), l.total())
	}
	if bitvec.CountRange(f.rank.Bits(), t.bits, t.cap) != 0 {
		return fmt.Errorf("%w: set bits beyond the explicit tree", ErrInvariant)
	}
	if bitvec.CountRange(l.store.(labelStore), l.bits, l.cap) != 0 {
		return fmt.Errorf("%w: set bits beyond the explicit labels", ErrInvariant)
	}
	if err := f.rank.Verify(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariant, err)
	}
	if p := treeindex.PerfectLevels(t.lead); uint64(f.hdr.PerfectLevels) != p {
		return fmt.Errorf("%w: perfect levels %d, want %d", ErrInvariant, f.hdr.PerfectLevels, p)
	}
	return f.checkLevels()
}
