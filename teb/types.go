package teb

import "errors"

const (
	// HeaderBytesV1 is the fixed header size. It is a whole number of words.
	HeaderBytesV1 = 56
	HeaderWordsV1 = HeaderBytesV1 / 8

	MagicV1         = "TEB1"
	VersionV1 uint8 = 1

	// MaxBits bounds n_actual so that every node index fits the header's
	// uint32 fields.
	MaxBits = uint64(1) << 31

	// DefaultSlackBits is the growth slack reserved for each of T and L when
	// no WithSlack option is given.
	DefaultSlackBits = 64

	flagLevelOffsets uint8 = 1
)

var (
	ErrEmptyBitmap   = errors.New("teb: bitmap has no bits")
	ErrTooLarge      = errors.New("teb: bitmap too large")
	ErrPositionRange = errors.New("teb: position out of range")
	ErrSizeMismatch  = errors.New("teb: bitmap size mismatch")

	ErrBufferTooSmall = errors.New("teb: buffer too small")
	ErrBadMagic       = errors.New("teb: header magic invalid")
	ErrBadVersion     = errors.New("teb: header version invalid")
	ErrHeaderInvalid  = errors.New("teb: header fields inconsistent")

	ErrInvariant = errors.New("teb: invariant violated")
)

// UpdateResult is the outcome of an in-place update.
type UpdateResult uint8

const (
	// NoOp means the position already reads as the requested value.
	NoOp UpdateResult = iota
	// Applied means the encoding was changed in place.
	Applied
	// Deferred means the change needs more slack than is left. Nothing was
	// modified; the caller routes the change elsewhere.
	Deferred
)

func (r UpdateResult) String() string {
	switch r {
	case NoOp:
		return "NoOp"
	case Applied:
		return "Applied"
	case Deferred:
		return "Deferred"
	}
	return "UpdateResult(?)"
}

// Mode selects how an update is interpreted.
type Mode uint8

const (
	// ModeApply sets the stored value.
	ModeApply Mode = iota
	// ModeRelative treats the visible value as the stored value XOR an
	// overlay bit supplied by the caller. Leaves spanning several positions
	// are never split, except one level above the bottom when the two-run
	// shortcut is enabled.
	ModeRelative
)

// Compaction selects what the update threshold triggers.
type Compaction uint8

const (
	CompactPrune Compaction = iota
	CompactReconstruct
)
