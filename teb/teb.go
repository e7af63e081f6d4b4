package teb

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/marcellus-saputra/Thuja/bitvec"
)

// TEB owns a serialized tree encoded bitmap and is the public surface for
// querying, updating and compacting it. A TEB is not safe for concurrent
// mutation; Test may run concurrently with other reads.
type TEB struct {
	id   uuid.UUID
	opts Options
	flat *Flat
}

// New encodes v.
func New(v *bitvec.Vector, opts ...Option) (*TEB, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	words, err := Build(v, o.buildConfig())
	if err != nil {
		return nil, err
	}
	t := &TEB{id: uuid.New(), opts: o}
	if err := t.adopt(words); err != nil {
		return nil, err
	}
	return t, nil
}

// Load restores a TEB from the output of MarshalBinary. The update
// threshold and level offset setting recorded in the buffer take precedence
// over opts.
func Load(data []byte, opts ...Option) (*TEB, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	t := &TEB{id: uuid.New(), opts: o}
	if err := t.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TEB) adopt(words []uint64) error {
	f, err := NewFlat(words)
	if err != nil {
		return err
	}
	f.SetTwoRunShortcut(t.opts.TwoRunShortcut)
	t.flat = f
	t.opts.UpdateThreshold = f.hdr.UpdateThreshold
	t.opts.LevelOffsets = f.hdr.HasLevelOffsets
	return nil
}

func (t *TEB) debugf(format string, args ...any) {
	if t.opts.Log != nil {
		t.opts.Log.Debugf(format, args...)
	}
}

func (t *TEB) infof(format string, args ...any) {
	if t.opts.Log != nil {
		t.opts.Log.Infof(format, args...)
	}
}

// ID identifies this instance. It survives Reconstruct.
func (t *TEB) ID() uuid.UUID { return t.id }

// Size returns n_actual.
func (t *TEB) Size() uint64 { return t.flat.Size() }

// SizeInBytes returns the serialized size, slack included.
func (t *TEB) SizeInBytes() uint64 { return t.flat.SizeInBytes() }

// Header returns a copy of the current header.
func (t *TEB) Header() HeaderV1 { return t.flat.Header() }

// Test returns the bit at pos. It panics if pos >= Size.
func (t *TEB) Test(pos uint64) bool { return t.flat.Test(pos) }

// RunLength returns the number of positions covered by the leaf covering
// pos.
func (t *TEB) RunLength(pos uint64) (uint64, error) { return t.flat.RunLength(pos) }

// Run returns the clipped bounds and value of the leaf covering pos.
func (t *TEB) Run(pos uint64) (begin, end uint64, val bool, err error) {
	return t.flat.Run(pos)
}

// Runs iterates the runs of 1s.
func (t *TEB) Runs() *RunIterator { return t.flat.Runs() }

// Decode decompresses into a plain bitmap.
func (t *TEB) Decode() *bitvec.Vector { return t.flat.Decode() }

// Update sets the bit at pos to val in place. Deferred means the change did
// not fit the reserved slack and nothing was modified.
func (t *TEB) Update(pos uint64, val bool) (UpdateResult, error) {
	res, err := t.flat.Update(pos, val)
	return t.settle(pos, res, err)
}

// UpdateRelative is Update for a bitmap whose visible value at pos is the
// stored value XOR flipped.
func (t *TEB) UpdateRelative(pos uint64, val, flipped bool) (UpdateResult, error) {
	res, err := t.flat.UpdateRelative(pos, val, flipped)
	return t.settle(pos, res, err)
}

func (t *TEB) settle(pos uint64, res UpdateResult, err error) (UpdateResult, error) {
	if err != nil {
		return res, err
	}
	switch res {
	case Deferred:
		h := t.flat.hdr
		t.debugf("update at %d deferred: free T %d, free L %d", pos, h.FreeBitsT, h.FreeBitsL)
	case Applied:
		if t.flat.countUpdate() {
			if err := t.compact(); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

func (t *TEB) compact() error {
	t.infof("%d updates applied, compacting", t.flat.hdr.UpdateCounter)
	if t.opts.Compaction == CompactReconstruct {
		return t.Reconstruct()
	}
	t.Prune()
	return nil
}

// Prune compacts the encoding in place and restarts the update count
// towards the threshold.
func (t *TEB) Prune() PruneStats {
	st := t.flat.Prune()
	t.flat.resetUpdateCounter()
	h := t.flat.hdr
	t.debugf("prune: %d candidates, %d collapsed, %d skipped for T, %d skipped for L; free T %d, free L %d",
		st.Candidates, st.Collapsed, st.SkippedTree, st.SkippedLabels, h.FreeBitsT, h.FreeBitsL)
	return st
}

// Reconstruct rebuilds the encoding from scratch through a full decode. It
// restores the configured slack, which Prune can not do.
func (t *TEB) Reconstruct() error {
	return t.Rebuild(t.flat.Decode())
}

// Rebuild replaces the contents with v, which must have the same size,
// keeping the id and options.
func (t *TEB) Rebuild(v *bitvec.Vector) error {
	if v.Len() != t.Size() {
		return fmt.Errorf("%w: rebuild with %d bits, have %d", ErrSizeMismatch, v.Len(), t.Size())
	}
	before := t.SizeInBytes()
	words, err := Build(v, t.opts.buildConfig())
	if err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}
	if err := t.adopt(words); err != nil {
		return fmt.Errorf("rebuild: %w", err)
	}
	t.infof("rebuilt %s: %d -> %d bytes", t.id, before, t.SizeInBytes())
	return nil
}

// Check verifies every structural invariant.
func (t *TEB) Check() error { return t.flat.Check() }

// MarshalBinary returns the serialized buffer, words big-endian.
func (t *TEB) MarshalBinary() ([]byte, error) {
	words := t.flat.Words()
	out := make([]byte, len(words)*8)
	wordsToBytes(out, words)
	return out, nil
}

// UnmarshalBinary replaces the encoding with data.
func (t *TEB) UnmarshalBinary(data []byte) error {
	if len(data)%8 != 0 || len(data) < HeaderBytesV1 {
		return fmt.Errorf("%w: %d bytes", ErrBufferTooSmall, len(data))
	}
	words := make([]uint64, len(data)/8)
	bytesToWords(words, data)
	return t.adopt(words)
}
