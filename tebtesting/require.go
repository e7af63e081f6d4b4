package tebtesting

import (
	"testing"

	"github.com/marcellus-saputra/Thuja/bitvec"
	"github.com/stretchr/testify/require"
)

// Bitmap is the read surface shared by every bitmap in this module.
type Bitmap interface {
	Size() uint64
	Test(pos uint64) bool
}

// RequireEqualBitmap fails t at the first position where got disagrees with
// want.
func RequireEqualBitmap(t *testing.T, want *bitvec.Vector, got Bitmap) {
	t.Helper()
	require.Equal(t, want.Len(), got.Size(), "size")
	for i := uint64(0); i < want.Len(); i++ {
		if want.Test(i) != got.Test(i) {
			require.Failf(t, "bitmaps differ", "position %d: want %v", i, want.Test(i))
		}
	}
}

// RequireEqualVector compares two plain bitmaps and reports the first
// differing position.
func RequireEqualVector(t *testing.T, want, got *bitvec.Vector) {
	t.Helper()
	if pos, ok := want.FirstDiff(got); ok {
		require.Failf(t, "bitmaps differ", "first difference at %d (lengths %d, %d)", pos, want.Len(), got.Len())
	}
}
