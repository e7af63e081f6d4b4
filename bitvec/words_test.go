package bitvec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toBools(w []uint64) []bool {
	out := make([]bool, len(w)*WordBits)
	for i := range out {
		out[i] = Test(w, uint64(i))
	}
	return out
}

func randomWords(r *rand.Rand, n int) []uint64 {
	w := make([]uint64, n)
	for i := range w {
		w[i] = r.Uint64()
	}
	return w
}

func refInsert(b []bool, at, count int, v bool) []bool {
	out := make([]bool, 0, len(b)+count)
	out = append(out, b[:at]...)
	for i := 0; i < count; i++ {
		out = append(out, v)
	}
	out = append(out, b[at:]...)
	return out[:len(b)]
}

func refRemove(b []bool, at, count int) []bool {
	out := make([]bool, 0, len(b))
	out = append(out, b[:at]...)
	if at+count < len(b) {
		out = append(out, b[at+count:]...)
	}
	for len(out) < len(b) {
		out = append(out, false)
	}
	return out
}

func TestInsertBits(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for nw := 1; nw <= 3; nw++ {
		n := nw * WordBits
		for at := 0; at < n; at++ {
			for _, count := range []int{0, 1, 2, 5, 63, 64, 65, 127, 128, n} {
				for _, v := range []bool{false, true} {
					w := randomWords(r, nw)
					want := refInsert(toBools(w), at, min(count, n-at), v)
					InsertBits(w, uint64(at), uint64(count), v)
					require.Equal(t, want, toBools(w), "words=%d at=%d count=%d v=%v", nw, at, count, v)
				}
			}
		}
	}
}

func TestRemoveBits(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for nw := 1; nw <= 3; nw++ {
		n := nw * WordBits
		for at := 0; at < n; at++ {
			for _, count := range []int{0, 1, 2, 5, 63, 64, 65, 127, 128, n} {
				w := randomWords(r, nw)
				want := refRemove(toBools(w), at, count)
				RemoveBits(w, uint64(at), uint64(count))
				require.Equal(t, want, toBools(w), "words=%d at=%d count=%d", nw, at, count)
			}
		}
	}
}

func TestInsertThenRemoveRestores(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		nw := 1 + r.Intn(6)
		used := r.Intn(nw*WordBits - 1)
		w := randomWords(r, nw)
		Fill(w, uint64(used), uint64(nw*WordBits), false)
		orig := append([]uint64(nil), w...)

		at := uint64(r.Intn(used + 1))
		count := uint64(r.Intn(nw*WordBits - used))
		InsertBits(w, at, count, r.Intn(2) == 1)
		RemoveBits(w, at, count)
		require.Equal(t, orig, w, "at=%d count=%d used=%d", at, count, used)
	}
}

func TestFillAndCountRange(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 2000; i++ {
		w := randomWords(r, 4)
		lo := uint64(r.Intn(4 * WordBits))
		hi := lo + uint64(r.Intn(4*WordBits-int(lo)+1))

		b := toBools(w)
		var want uint64
		for j := lo; j < hi; j++ {
			if b[j] {
				want++
			}
		}
		require.Equal(t, want, CountRange(w, lo, hi), "lo=%d hi=%d", lo, hi)

		v := r.Intn(2) == 1
		Fill(w, lo, hi, v)
		got := toBools(w)
		for j := range got {
			if uint64(j) >= lo && uint64(j) < hi {
				require.Equal(t, v, got[j])
			} else {
				require.Equal(t, b[j], got[j])
			}
		}
	}
}

func TestFindFunctions(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for i := 0; i < 2000; i++ {
		w := make([]uint64, 3)
		// sparse or dense so that the searches have to cross words
		for j := range w {
			switch r.Intn(3) {
			case 0:
			case 1:
				w[j] = ^uint64(0)
			default:
				w[j] = r.Uint64()
			}
		}
		b := toBools(w)
		lo := uint64(r.Intn(3 * WordBits))
		hi := lo + uint64(r.Intn(3*WordBits-int(lo)+1))

		firstSet, firstClear := hi, hi
		for j := lo; j < hi; j++ {
			if b[j] && firstSet == hi {
				firstSet = j
			}
			if !b[j] && firstClear == hi {
				firstClear = j
			}
		}
		lastSet, lastClear := lo, lo
		for j := hi; j > lo; j-- {
			if b[j-1] && lastSet == lo {
				lastSet = j
			}
			if !b[j-1] && lastClear == lo {
				lastClear = j
			}
		}
		assert.Equal(t, firstSet, FirstSet(w, lo, hi), "FirstSet lo=%d hi=%d", lo, hi)
		assert.Equal(t, firstClear, FirstClear(w, lo, hi), "FirstClear lo=%d hi=%d", lo, hi)
		assert.Equal(t, lastSet, LastSet(w, lo, hi), "LastSet lo=%d hi=%d", lo, hi)
		assert.Equal(t, lastClear, LastClear(w, lo, hi), "LastClear lo=%d hi=%d", lo, hi)
	}
}

func TestWords(t *testing.T) {
	tests := []struct {
		n    uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{63, 1},
		{64, 1},
		{65, 2},
		{1 << 20, 1 << 14},
	}
	for _, tt := range tests {
		if got := Words(tt.n); got != tt.want {
			t.Errorf("Words(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestExtract(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	for i := 0; i < 1000; i++ {
		src := randomWords(r, 5)
		lo := uint64(r.Intn(5 * WordBits))
		hi := lo + uint64(r.Intn(5*WordBits-int(lo)+1))
		dst := randomWords(r, 5)
		Extract(dst, src, lo, hi)
		for j := lo; j < hi; j++ {
			require.Equal(t, Test(src, j), Test(dst, j-lo), "lo=%d hi=%d j=%d", lo, hi, j)
		}
		if n := hi - lo; n%WordBits != 0 {
			assert.Equal(t, uint64(0), CountRange(dst, n, Words(n)*WordBits))
		}
	}
}
