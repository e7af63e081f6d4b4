package tebtesting

import (
	"math/rand"

	"github.com/marcellus-saputra/Thuja/bitvec"
)

// Bernoulli returns n bits each set with probability density.
func (c *TestContext) Bernoulli(n uint64, density float64) *bitvec.Vector {
	return Bernoulli(c.Rand, n, density)
}

// Clustered returns n bits made of alternating runs of 0s and 1s whose
// lengths are uniform in [1, maxRun].
func (c *TestContext) Clustered(n, maxRun uint64) *bitvec.Vector {
	return Clustered(c.Rand, n, maxRun)
}

func Bernoulli(r *rand.Rand, n uint64, density float64) *bitvec.Vector {
	v := bitvec.New(n)
	for i := uint64(0); i < n; i++ {
		if r.Float64() < density {
			v.Set(i)
		}
	}
	return v
}

func Clustered(r *rand.Rand, n, maxRun uint64) *bitvec.Vector {
	v := bitvec.New(n)
	val := r.Intn(2) == 1
	for i := uint64(0); i < n; {
		run := 1 + uint64(r.Int63n(int64(maxRun)))
		if val {
			v.SetRange(i, i+run)
		}
		i += run
		val = !val
	}
	return v
}

// Positions returns count positions in [0, n), duplicates allowed.
func (c *TestContext) Positions(n uint64, count int) []uint64 {
	out := make([]uint64, count)
	for i := range out {
		out[i] = uint64(c.Rand.Int63n(int64(n)))
	}
	return out
}
