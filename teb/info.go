package teb

import (
	"fmt"
	"strings"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/google/uuid"
	"github.com/marcellus-saputra/Thuja/treeindex"
)

// Info is a point in time summary of an encoding. It is CBOR encoded with
// integer keys so it can be shipped alongside the serialized buffer.
type Info struct {
	Name        string `cbor:"1,keyasint"`
	N           uint64 `cbor:"2,keyasint"`
	NActual     uint64 `cbor:"3,keyasint"`
	SizeInBytes uint64 `cbor:"4,keyasint"`

	TreeBits               uint64 `cbor:"5,keyasint"`
	ImplicitInner          uint64 `cbor:"6,keyasint"`
	ImplicitTrailingLeaves uint64 `cbor:"7,keyasint"`
	LabelBits              uint64 `cbor:"8,keyasint"`
	ImplicitLeadingLabels  uint64 `cbor:"9,keyasint"`
	ImplicitTrailingLabels uint64 `cbor:"10,keyasint"`

	Height        uint64 `cbor:"11,keyasint"`
	EncodedHeight uint64 `cbor:"12,keyasint"`
	PerfectLevels uint64 `cbor:"13,keyasint"`
	FreeBitsT     uint64 `cbor:"14,keyasint"`
	FreeBitsL     uint64 `cbor:"15,keyasint"`

	UpdateCounter   uint64 `cbor:"16,keyasint"`
	UpdateThreshold uint64 `cbor:"17,keyasint"`
	ID              []byte `cbor:"18,keyasint,omitempty"`
}

const infoName = "teb"

// Info summarises the current encoding.
func (t *TEB) Info() Info {
	info := t.flat.Info()
	info.ID = t.id[:]
	return info
}

// MarshalInfo returns the CBOR encoding of Info.
func (t *TEB) MarshalInfo() ([]byte, error) {
	codec, err := NewInfoCodec()
	if err != nil {
		return nil, err
	}
	return EncodeInfo(codec, t.Info())
}

func (f *Flat) Info() Info {
	h := f.hdr
	return Info{
		Name:                   infoName,
		N:                      treeindex.CeilPow2(uint64(h.N)),
		NActual:                uint64(h.N),
		SizeInBytes:            f.SizeInBytes(),
		TreeBits:               uint64(h.TreeBits),
		ImplicitInner:          uint64(h.ImplicitInner),
		ImplicitTrailingLeaves: uint64(h.ImplicitTrailingLeaves),
		LabelBits:              uint64(h.LabelBits),
		ImplicitLeadingLabels:  uint64(h.ImplicitLeadingLabels),
		ImplicitTrailingLabels: uint64(h.ImplicitTrailingLabels),
		Height:                 f.height,
		EncodedHeight:          uint64(h.EncodedHeight),
		PerfectLevels:          uint64(h.PerfectLevels),
		FreeBitsT:              uint64(h.FreeBitsT),
		FreeBitsL:              uint64(h.FreeBitsL),
		UpdateCounter:          uint64(h.UpdateCounter),
		UpdateThreshold:        uint64(h.UpdateThreshold),
	}
}

func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s n=%d n_actual=%d size=%dB", i.Name, i.N, i.NActual, i.SizeInBytes)
	fmt.Fprintf(&b, " T=%d(+%d inner,+%d leaves) L=%d(+%d,+%d)",
		i.TreeBits, i.ImplicitInner, i.ImplicitTrailingLeaves,
		i.LabelBits, i.ImplicitLeadingLabels, i.ImplicitTrailingLabels)
	fmt.Fprintf(&b, " height=%d/%d perfect=%d free=%d/%d",
		i.EncodedHeight, i.Height, i.PerfectLevels, i.FreeBitsT, i.FreeBitsL)
	if len(i.ID) == len(uuid.UUID{}) {
		fmt.Fprintf(&b, " id=%s", uuid.UUID(i.ID))
	}
	return b.String()
}

// NewInfoCodec returns the deterministic codec used for Info.
func NewInfoCodec() (dtcbor.CBORCodec, error) {
	codec, err := dtcbor.NewCBORCodec(
		dtcbor.NewDeterministicEncOpts(),
		dtcbor.NewDeterministicDecOpts(),
	)
	if err != nil {
		return dtcbor.CBORCodec{}, err
	}
	return codec, nil
}

// EncodeInfo returns the CBOR encoding of info.
func EncodeInfo(codec dtcbor.CBORCodec, info Info) ([]byte, error) {
	return codec.MarshalCBOR(info)
}

// DecodeInfo parses the output of EncodeInfo.
func DecodeInfo(codec dtcbor.CBORCodec, data []byte) (Info, error) {
	var info Info
	if err := codec.UnmarshalInto(data, &info); err != nil {
		return Info{}, err
	}
	return info, nil
}
