package teb

import (
	"testing"

	"github.com/google/uuid"
	"github.com/marcellus-saputra/Thuja/bitvec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInfo(t *testing.T) {
	tb, err := New(bitvec.FromString("0000111100"), WithUpdateThreshold(9))
	require.NoError(t, err)

	info := tb.Info()
	assert.Equal(t, "teb", info.Name)
	assert.Equal(t, uint64(16), info.N)
	assert.Equal(t, uint64(10), info.NActual)
	assert.Equal(t, tb.SizeInBytes(), info.SizeInBytes)
	assert.Equal(t, uint64(4), info.Height)
	assert.Equal(t, uint64(9), info.UpdateThreshold)
	id, err := uuid.FromBytes(info.ID)
	require.NoError(t, err)
	assert.Equal(t, tb.ID(), id)
	assert.Contains(t, info.String(), "teb n=16 n_actual=10")
	assert.Contains(t, info.String(), "id="+tb.ID().String())

	codec, err := NewInfoCodec()
	require.NoError(t, err)
	data, err := EncodeInfo(codec, info)
	require.NoError(t, err)
	decoded, err := DecodeInfo(codec, data)
	require.NoError(t, err)
	assert.Equal(t, info, decoded)

	data, err = tb.MarshalInfo()
	require.NoError(t, err)
	decoded, err = DecodeInfo(codec, data)
	require.NoError(t, err)
	assert.Equal(t, info, decoded)

	_, err = DecodeInfo(codec, []byte{0xff})
	require.Error(t, err)
}
