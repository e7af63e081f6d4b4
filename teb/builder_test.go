package teb

import (
	"testing"

	"github.com/marcellus-saputra/Thuja/bitvec"
	"github.com/marcellus-saputra/Thuja/tebtesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlat(t *testing.T, v *bitvec.Vector, cfg BuildConfig) *Flat {
	t.Helper()
	words, err := Build(v, cfg)
	require.NoError(t, err)
	f, err := NewFlat(words)
	require.NoError(t, err)
	return f
}

var defaultConfig = BuildConfig{SlackTree: DefaultSlackBits, SlackLabels: DefaultSlackBits, LevelOffsets: true}

func TestBuilderEncodings(t *testing.T) {
	tests := []struct {
		name   string
		bits   string
		header HeaderV1
	}{
		{
			"all zero is a single leaf",
			"00000000",
			HeaderV1{EncodedHeight: 1, ImplicitTrailingLeaves: 1, ImplicitLeadingLabels: 1},
		},
		{
			"all one is a single leaf with a stored label",
			"11111111",
			HeaderV1{EncodedHeight: 1, ImplicitTrailingLeaves: 1, LabelBits: 1},
		},
		{
			"two halves",
			"00001111",
			HeaderV1{
				PerfectLevels: 1, EncodedHeight: 2,
				ImplicitInner: 1, ImplicitTrailingLeaves: 2,
				ImplicitLeadingLabels: 1, LabelBits: 1,
			},
		},
		{
			"alternating bits expand the whole tree",
			"01010101",
			HeaderV1{
				PerfectLevels: 3, EncodedHeight: 4,
				ImplicitInner: 7, ImplicitTrailingLeaves: 8,
				ImplicitLeadingLabels: 1, LabelBits: 7,
			},
		},
		{
			"padding reads as zero",
			"111",
			HeaderV1{
				PerfectLevels: 1, EncodedHeight: 3,
				ImplicitInner: 1, TreeBits: 2, ImplicitTrailingLeaves: 2,
				LabelBits: 2, ImplicitTrailingLabels: 1,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := bitvec.FromString(tt.bits)
			b, err := NewBuilder(v)
			require.NoError(t, err)
			h := b.Header(BuildConfig{})

			assert.Equal(t, tt.header.PerfectLevels, h.PerfectLevels, "perfect levels")
			assert.Equal(t, tt.header.EncodedHeight, h.EncodedHeight, "encoded height")
			assert.Equal(t, tt.header.ImplicitInner, h.ImplicitInner, "implicit inner")
			assert.Equal(t, tt.header.TreeBits, h.TreeBits, "tree bits")
			assert.Equal(t, tt.header.ImplicitTrailingLeaves, h.ImplicitTrailingLeaves, "trailing leaves")
			assert.Equal(t, tt.header.ImplicitLeadingLabels, h.ImplicitLeadingLabels, "leading labels")
			assert.Equal(t, tt.header.LabelBits, h.LabelBits, "label bits")
			assert.Equal(t, tt.header.ImplicitTrailingLabels, h.ImplicitTrailingLabels, "trailing labels")
			assert.Equal(t, uint32(len(tt.bits)), h.N)

			f := newFlat(t, v, defaultConfig)
			require.NoError(t, f.Check())
			tebtesting.RequireEqualVector(t, v, f.Decode())
		})
	}
}

func TestBuilderRejects(t *testing.T) {
	_, err := NewBuilder(bitvec.New(0))
	require.ErrorIs(t, err, ErrEmptyBitmap)
}

func TestSerializeBufferTooSmall(t *testing.T) {
	b, err := NewBuilder(bitvec.FromString("0110"))
	require.NoError(t, err)
	dst := make([]uint64, b.SerializedWords(defaultConfig)-1)
	require.ErrorIs(t, b.Serialize(dst, defaultConfig), ErrBufferTooSmall)
}

func TestBuildSlack(t *testing.T) {
	v := bitvec.FromString("00001111")
	tests := []struct {
		name         string
		cfg          BuildConfig
		freeT, freeL uint32
	}{
		{"no slack", BuildConfig{}, 0, 63},
		{"default slack", defaultConfig, 64, 127},
		{"slack rounds up to words", BuildConfig{SlackTree: 1, SlackLabels: 100}, 64, 127},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFlat(t, v, tt.cfg)
			assert.Equal(t, tt.freeT, f.Header().FreeBitsT)
			assert.Equal(t, tt.freeL, f.Header().FreeBitsL)
		})
	}
}

// A fresh build has nothing left for Prune to do.
func TestBuildIsPruneMinimal(t *testing.T) {
	tc := tebtesting.NewTestContext(t, tebtesting.TestConfig{Seed: 11, TestLabelPrefix: "TestBuildIsPruneMinimal"})
	for _, n := range []uint64{1, 2, 63, 64, 65, 1000, 4096} {
		for _, v := range []*bitvec.Vector{
			tc.Bernoulli(n, 0.05),
			tc.Bernoulli(n, 0.5),
			tc.Clustered(n, 40),
		} {
			f := newFlat(t, v, defaultConfig)
			before := append([]uint64(nil), f.Words()...)
			st := f.Prune()
			assert.Zero(t, st.Candidates, "n=%d", n)
			assert.Equal(t, before, f.Words(), "n=%d", n)
		}
	}
}
