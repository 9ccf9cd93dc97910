package sstblock

import (
	"github.com/ivanmarcin/sstblock/internal/block"
	"github.com/ivanmarcin/sstblock/internal/logger"
	"github.com/ivanmarcin/sstblock/internal/metrics"
)

// BlockMetrics is the access-frequency bitmap recorded alongside a block:
// one bit per (restart region, intra-region slot) marking whether that
// entry was ever visited by a metrics-recording iterator.
type BlockMetrics = metrics.BlockMetrics

// CreateMetricsFromKV parses a (dbKey, dbValue) pair as persisted by
// BlockMetrics.GetDBKey and BlockMetrics.GetDBValue. It returns nil if the
// pair is malformed; callers should treat nil as "no metrics available"
// rather than an error.
func CreateMetricsFromKV(dbKey, dbValue []byte) *BlockMetrics {
	return metrics.CreateFromKV(dbKey, dbValue)
}

// CreateMetricsFromValue parses dbValue for a metrics instance already
// known to belong to (fileNumber, blockOffset). It returns nil if dbValue
// is malformed.
func CreateMetricsFromValue(fileNumber, blockOffset uint64, dbValue []byte) *BlockMetrics {
	return metrics.CreateFromValue(fileNumber, blockOffset, dbValue)
}

// Block wraps a validated, read-only block buffer and hands out iterators
// over it. A Block is immutable after construction and safe for
// concurrent reads; the iterators it produces are not.
type Block struct {
	inner *block.Block
	opts  *Options
}

// Open validates data's trailer (§3 of the block format: a strictly
// increasing restart-offset array followed by a little-endian
// num_restarts count) and returns a Block handle. A malformed trailer does not itself
// return an error: it puts the Block into an error-marker state,
// surfaced lazily by NewIterator/NewMetricsIterator, so callers can
// decide per-operation whether to treat it as fatal.
func Open(data []byte, opts ...Option) *Block {
	o := newOptions(opts)
	var log logger.Logger
	if o.logger != nil {
		log = loggerAdapter{o.logger}
	}
	return &Block{
		inner: block.Open(data, log),
		opts:  o,
	}
}

// NumRestarts returns the block's restart count, 0 for an error-marker
// block.
func (b *Block) NumRestarts() uint32 {
	return b.inner.NumRestarts()
}

// Len returns the number of bytes in the block's entry region plus
// trailer, 0 for an error-marker block.
func (b *Block) Len() int {
	return b.inner.Len()
}

// NewIterator returns a cursor over the block's entries ordered by cmp. A
// block in error-marker state yields an iterator reporting Status() as
// corruption; a block with zero restarts yields a permanently-invalid,
// error-free iterator.
func (b *Block) NewIterator(cmp Comparator) Iterator {
	return b.inner.NewIterator(cmp)
}

// NewMetricsIterator is NewIterator plus a freshly zeroed BlockMetrics
// keyed by (fileNumber, blockOffset) that the returned iterator notifies
// after every successful positioning operation. The returned metrics is
// nil when the block is in error-marker state or has zero restarts, since
// there is then no position a metrics instance could ever record.
func (b *Block) NewMetricsIterator(cmp Comparator, fileNumber, blockOffset uint64) (Iterator, *BlockMetrics) {
	return b.inner.NewMetricsIterator(cmp, fileNumber, blockOffset, b.opts.bytesPerRestart)
}

// IsHot reports whether the metrics bit for iter's current position is
// set in m. iter must be a valid iterator produced by this same Block.
// IsHot returns false when m is nil, iter is not valid, or m.NumRestarts()
// differs from this block's restart count; it does not detect an iterator
// from another block.
func (b *Block) IsHot(iter Iterator, m *BlockMetrics) bool {
	return b.inner.IsHot(iter, m)
}

// loggerAdapter wraps a caller-supplied public Logger as the internal
// logger.Logger; Open only builds one for a non-nil Logger, so a nil one
// still reaches block.Open as nil and falls back to discarding.
type loggerAdapter struct {
	Logger
}
