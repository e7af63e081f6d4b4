package teb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validHeader() HeaderV1 {
	return HeaderV1{
		PerfectLevels:          1,
		EncodedHeight:          2,
		HasLevelOffsets:        true,
		N:                      8,
		TreeBits:               0,
		ImplicitInner:          1,
		ImplicitTrailingLeaves: 2,
		LabelBits:              1,
		ImplicitLeadingLabels:  1,
		UpdateCounter:          3,
		UpdateThreshold:        10,
		FreeBitsT:              64,
		FreeBitsL:              127,
	}
}

func TestHeaderV1RoundTrip(t *testing.T) {
	words := make([]uint64, HeaderWordsV1)
	h := validHeader()
	require.NoError(t, EncodeHeaderV1(words, h))

	got, ok, err := DecodeHeaderV1(words)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, h, got)

	var region [HeaderBytesV1]byte
	wordsToBytes(region[:], words)
	assert.Equal(t, MagicV1, string(region[0:4]))
	assert.Equal(t, VersionV1, region[4])
	assert.Equal(t, []byte{0, 0, 0, 8}, region[8:12], "n_actual is big-endian")
}

func TestDecodeHeaderV1(t *testing.T) {
	encoded := func(mutate func(region []byte)) []uint64 {
		words := make([]uint64, HeaderWordsV1)
		require.NoError(t, EncodeHeaderV1(words, validHeader()))
		var region [HeaderBytesV1]byte
		wordsToBytes(region[:], words)
		mutate(region[:])
		bytesToWords(words, region[:])
		return words
	}

	tests := []struct {
		name    string
		words   []uint64
		wantOk  bool
		wantErr error
	}{
		{"short buffer", make([]uint64, HeaderWordsV1-1), false, ErrBufferTooSmall},
		{"zero filled", make([]uint64, HeaderWordsV1), false, nil},
		{"bad magic", encoded(func(r []byte) { r[0] = 'X' }), false, ErrBadMagic},
		{"bad version", encoded(func(r []byte) { r[4] = 9 }), false, ErrBadVersion},
		{"zero size", encoded(func(r []byte) { writeU32BE(r[8:12], 0) }), false, ErrEmptyBitmap},
		{"node count mismatch", encoded(func(r []byte) { writeU32BE(r[20:24], 3) }), false, ErrHeaderInvalid},
		{"capacity not whole words", encoded(func(r []byte) { writeU32BE(r[44:48], 63) }), false, ErrHeaderInvalid},
		{"valid", encoded(func([]byte) {}), true, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := DecodeHeaderV1(tt.words)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantOk, ok)
		})
	}
}

func TestEncodeHeaderV1Rejects(t *testing.T) {
	h := validHeader()
	h.ImplicitTrailingLeaves = 5
	require.ErrorIs(t, EncodeHeaderV1(make([]uint64, HeaderWordsV1), h), ErrHeaderInvalid)
	require.ErrorIs(t, EncodeHeaderV1(make([]uint64, 2), validHeader()), ErrBufferTooSmall)
}

func TestLayoutV1(t *testing.T) {
	h := validHeader()
	l := LayoutV1(h)
	assert.Equal(t, uint64(HeaderWordsV1), l.TreeOff)
	assert.Equal(t, l.TreeOff+1, l.RankOff)
	assert.Equal(t, l.RankOff+1, l.LabelOff)
	assert.Equal(t, l.LabelOff+2, l.LevelsOff)
	assert.Equal(t, l.LevelsOff+LevelWords(3), l.Total)
	assert.Equal(t, l.Total*8, SizeInBytes(h))

	h.HasLevelOffsets = false
	assert.Equal(t, LayoutV1(h).LevelsOff, LayoutV1(h).Total)
}
