package diff

import (
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/marcellus-saputra/Thuja/teb"
)

// Option is shared with teb, so one option list configures both the
// Bitmap and the TEB beneath it.
type Option = teb.Option

type Options struct {
	Log logger.Logger

	// MergeThreshold merges the overlay back into the TEB once it holds that
	// many positions. Zero leaves merging to the caller.
	MergeThreshold int
}

// WithLogger sets the logger for the Bitmap and its TEB.
func WithLogger(log logger.Logger) Option {
	return func(opts any) {
		switch o := opts.(type) {
		case *Options:
			o.Log = log
		case *teb.Options:
			o.Log = log
		}
	}
}

// WithMergeThreshold merges once the overlay holds n positions.
func WithMergeThreshold(n int) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.MergeThreshold = n
		}
	}
}
