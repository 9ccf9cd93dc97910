package sstblock

import "github.com/ivanmarcin/sstblock/internal/block"

// DefaultBytesPerRestart is the metrics window size used when an Option
// doesn't override it: 2 bytes (16 slots) per restart region, sized for
// the conventional 16-key restart interval.
const DefaultBytesPerRestart = block.DefaultBytesPerRestart

// Options controls how a Block is opened: the metrics bitmap's
// per-restart window size and where corruption gets logged.
type Options struct {
	bytesPerRestart uint32
	logger          Logger
}

// Option configures an Options value at Block construction time.
type Option func(*Options)

// WithBytesPerRestart overrides the per-restart-region metrics window
// size (in bytes). It only affects metrics created by NewMetricsIterator;
// it has no effect on block decoding itself. The persisted format
// records bytesPerRestart alongside each BlockMetrics, so a consumer
// reading persisted metrics back does not need to know what value was
// used to create them.
func WithBytesPerRestart(n uint32) Option {
	return func(o *Options) {
		o.bytesPerRestart = n
	}
}

// WithLogger attaches a Logger that receives Warnf calls on trailer
// validation failure. Corruption found while iterating is not logged; it
// is reported only through the iterator's Status.
func WithLogger(log Logger) Option {
	return func(o *Options) {
		o.logger = log
	}
}

func newOptions(opts []Option) *Options {
	o := &Options{bytesPerRestart: DefaultBytesPerRestart}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
