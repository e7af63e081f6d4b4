package teb

import "bytes"

// HeaderV1 is the fixed header at the front of a serialized encoding.
//
//	off  size  field
//	0    4     magic "TEB1"
//	4    1     version
//	5    1     perfect levels
//	6    1     encoded tree height
//	7    1     flags (bit 0: level offsets present)
//	8    4     n_actual
//	12   4     tree bits
//	16   4     implicit inner nodes
//	20   4     implicit trailing leaves
//	24   4     label bits
//	28   4     implicit leading labels
//	32   4     implicit trailing labels
//	36   4     update counter
//	40   4     update threshold
//	44   4     free bits T
//	48   4     free bits L
//	52   4     reserved, zero
//
// All multi-byte fields are big-endian.
type HeaderV1 struct {
	PerfectLevels   uint8
	EncodedHeight   uint8
	HasLevelOffsets bool

	N                      uint32
	TreeBits               uint32
	ImplicitInner          uint32
	ImplicitTrailingLeaves uint32
	LabelBits              uint32
	ImplicitLeadingLabels  uint32
	ImplicitTrailingLabels uint32
	UpdateCounter          uint32
	UpdateThreshold        uint32
	FreeBitsT              uint32
	FreeBitsL              uint32
}

// TreeCap is the capacity of the explicit T region in bits.
func (h HeaderV1) TreeCap() uint64 { return uint64(h.TreeBits) + uint64(h.FreeBitsT) }

// LabelCap is the capacity of the explicit L region in bits.
func (h HeaderV1) LabelCap() uint64 { return uint64(h.LabelBits) + uint64(h.FreeBitsL) }

// Nodes is the node count of the encoded tree.
func (h HeaderV1) Nodes() uint64 {
	return uint64(h.ImplicitInner) + uint64(h.TreeBits) + uint64(h.ImplicitTrailingLeaves)
}

// Leaves is the label count of the encoded tree.
func (h HeaderV1) Leaves() uint64 {
	return uint64(h.ImplicitLeadingLabels) + uint64(h.LabelBits) + uint64(h.ImplicitTrailingLabels)
}

func (h HeaderV1) validate() error {
	if h.N == 0 {
		return ErrEmptyBitmap
	}
	if uint64(h.N) > MaxBits {
		return ErrTooLarge
	}
	if h.TreeCap()%64 != 0 || h.LabelCap()%64 != 0 {
		return ErrHeaderInvalid
	}
	// A full binary tree has one more leaf than it has inner nodes.
	if h.Nodes() != 2*h.Leaves()-1 {
		return ErrHeaderInvalid
	}
	return nil
}

// DecodeHeaderV1 decodes the header from the front of words.
//
// ok=false indicates the header words are zero-filled / uninitialized.
func DecodeHeaderV1(words []uint64) (h HeaderV1, ok bool, err error) {
	if len(words) < HeaderWordsV1 {
		return HeaderV1{}, false, ErrBufferTooSmall
	}
	var region [HeaderBytesV1]byte
	wordsToBytes(region[:], words[:HeaderWordsV1])

	if bytes.Equal(region[0:4], []byte{0, 0, 0, 0}) {
		return HeaderV1{}, false, nil
	}
	if string(region[0:4]) != MagicV1 {
		return HeaderV1{}, false, ErrBadMagic
	}
	if region[4] != VersionV1 {
		return HeaderV1{}, false, ErrBadVersion
	}

	h.PerfectLevels = region[5]
	h.EncodedHeight = region[6]
	h.HasLevelOffsets = region[7]&flagLevelOffsets != 0
	h.N = readU32BE(region[8:12])
	h.TreeBits = readU32BE(region[12:16])
	h.ImplicitInner = readU32BE(region[16:20])
	h.ImplicitTrailingLeaves = readU32BE(region[20:24])
	h.LabelBits = readU32BE(region[24:28])
	h.ImplicitLeadingLabels = readU32BE(region[28:32])
	h.ImplicitTrailingLabels = readU32BE(region[32:36])
	h.UpdateCounter = readU32BE(region[36:40])
	h.UpdateThreshold = readU32BE(region[40:44])
	h.FreeBitsT = readU32BE(region[44:48])
	h.FreeBitsL = readU32BE(region[48:52])

	if err := h.validate(); err != nil {
		return HeaderV1{}, false, err
	}
	return h, true, nil
}

// EncodeHeaderV1 writes the header into the front of words.
func EncodeHeaderV1(words []uint64, h HeaderV1) error {
	if len(words) < HeaderWordsV1 {
		return ErrBufferTooSmall
	}
	if err := h.validate(); err != nil {
		return err
	}

	var region [HeaderBytesV1]byte
	copy(region[0:4], []byte(MagicV1))
	region[4] = VersionV1
	region[5] = h.PerfectLevels
	region[6] = h.EncodedHeight
	if h.HasLevelOffsets {
		region[7] = flagLevelOffsets
	}
	writeU32BE(region[8:12], h.N)
	writeU32BE(region[12:16], h.TreeBits)
	writeU32BE(region[16:20], h.ImplicitInner)
	writeU32BE(region[20:24], h.ImplicitTrailingLeaves)
	writeU32BE(region[24:28], h.LabelBits)
	writeU32BE(region[28:32], h.ImplicitLeadingLabels)
	writeU32BE(region[32:36], h.ImplicitTrailingLabels)
	writeU32BE(region[36:40], h.UpdateCounter)
	writeU32BE(region[40:44], h.UpdateThreshold)
	writeU32BE(region[44:48], h.FreeBitsT)
	writeU32BE(region[48:52], h.FreeBitsL)

	bytesToWords(words[:HeaderWordsV1], region[:])
	return nil
}
