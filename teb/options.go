package teb

import (
	"github.com/datatrails/go-datatrails-common/logger"
)

// Options configures a TEB.
type Options struct {
	Log logger.Logger

	// SlackTree and SlackLabels are the growth slack, in bits, reserved
	// beyond the explicit T and L bits. Both round up to whole words.
	SlackTree   uint32
	SlackLabels uint32

	// UpdateThreshold triggers Compaction after that many applied updates.
	// Zero disables it.
	UpdateThreshold uint32
	Compaction      Compaction

	LevelOffsets   bool
	TwoRunShortcut bool
}

// Option is a generic option type. Implementations type assert to their
// own Options target and ignore options meant for something else, so one
// option list can be shared with wrappers layered over a TEB.
type Option func(any)

func defaultOptions() Options {
	return Options{
		SlackTree:    DefaultSlackBits,
		SlackLabels:  DefaultSlackBits,
		LevelOffsets: true,
	}
}

func (o Options) buildConfig() BuildConfig {
	return BuildConfig{
		SlackTree:       o.SlackTree,
		SlackLabels:     o.SlackLabels,
		LevelOffsets:    o.LevelOffsets,
		UpdateThreshold: o.UpdateThreshold,
	}
}

// WithLogger sets the logger. Without one nothing is logged.
func WithLogger(log logger.Logger) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.Log = log
		}
	}
}

// WithSlack sets the growth slack for T and L in bits.
func WithSlack(treeBits, labelBits uint32) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.SlackTree = treeBits
			o.SlackLabels = labelBits
		}
	}
}

// WithUpdateThreshold compacts after n applied updates.
func WithUpdateThreshold(n uint32) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.UpdateThreshold = n
		}
	}
}

// WithCompaction selects what the update threshold triggers.
func WithCompaction(c Compaction) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.Compaction = c
		}
	}
}

// WithoutLevelOffsets omits the per-level offset table from the buffer.
func WithoutLevelOffsets() Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.LevelOffsets = false
		}
	}
}

// WithTwoRunShortcut lets relative updates split a leaf covering two
// positions.
func WithTwoRunShortcut() Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.TwoRunShortcut = true
		}
	}
}
