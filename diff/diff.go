package diff

import (
	"fmt"

	"github.com/dgraph-io/sroar"
	"github.com/marcellus-saputra/Thuja/bitvec"
	"github.com/marcellus-saputra/Thuja/teb"
)

// Bitmap is a TEB with an overlay of positions whose visible value is the
// opposite of the stored one. Updates the TEB cannot take in place flip the
// overlay instead; Merge folds the overlay back into the TEB.
type Bitmap struct {
	opts    Options
	base    *teb.TEB
	overlay *sroar.Bitmap
}

// New encodes v. opts may mix diff and teb options.
func New(v *bitvec.Vector, opts ...Option) (*Bitmap, error) {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}
	base, err := teb.New(v, opts...)
	if err != nil {
		return nil, err
	}
	return &Bitmap{opts: o, base: base, overlay: sroar.NewBitmap()}, nil
}

// Base returns the underlying TEB. Its contents exclude pending overlay
// flips.
func (b *Bitmap) Base() *teb.TEB { return b.base }

func (b *Bitmap) Size() uint64 { return b.base.Size() }

// Pending returns the number of positions held in the overlay.
func (b *Bitmap) Pending() int { return b.overlay.GetCardinality() }

// Test returns the visible bit at pos.
func (b *Bitmap) Test(pos uint64) bool {
	return b.base.Test(pos) != b.overlay.Contains(pos)
}

// Update sets the visible bit at pos. Deferred means the change went to the
// overlay.
func (b *Bitmap) Update(pos uint64, val bool) (teb.UpdateResult, error) {
	flipped := b.overlay.Contains(pos)
	res, err := b.base.UpdateRelative(pos, val, flipped)
	if err != nil || res != teb.Deferred {
		return res, err
	}

	if flipped {
		b.overlay.Remove(pos)
	} else {
		b.overlay.Set(pos)
	}
	if t := b.opts.MergeThreshold; t > 0 && b.Pending() >= t {
		if err := b.Merge(); err != nil {
			return res, err
		}
	}
	return res, nil
}

// Merge applies every overlay flip to the TEB through a rebuild and
// empties the overlay.
func (b *Bitmap) Merge() error {
	n := b.Pending()
	if n == 0 {
		return nil
	}
	if err := b.base.Rebuild(b.Decode()); err != nil {
		return fmt.Errorf("merge: %w", err)
	}
	b.overlay = sroar.NewBitmap()
	if b.opts.Log != nil {
		b.opts.Log.Infof("merged %d overlay positions into %s", n, b.base.ID())
	}
	return nil
}

// SizeInBytes is the TEB size plus the serialized overlay.
func (b *Bitmap) SizeInBytes() uint64 {
	return b.base.SizeInBytes() + uint64(len(b.overlay.ToBuffer()))
}

// Decode returns the visible bitmap.
func (b *Bitmap) Decode() *bitvec.Vector {
	v := b.base.Decode()
	for _, pos := range b.overlay.ToArray() {
		v.Flip(pos)
	}
	return v
}
