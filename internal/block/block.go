// Package block decodes sorted, prefix-compressed blocks produced by an
// sstable writer: a byte region packing (key, value) entries with a
// restart-point trailer for random access, per table/block.cc in the
// upstream LevelDB this format is ported from.
package block

import (
	"github.com/ivanmarcin/sstblock/internal/endian"
	lberrors "github.com/ivanmarcin/sstblock/internal/errors"
	"github.com/ivanmarcin/sstblock/internal/keys"
	"github.com/ivanmarcin/sstblock/internal/logger"
	"github.com/ivanmarcin/sstblock/internal/metrics"
)

// DefaultBytesPerRestart is the module's default metrics window: 16 bits,
// one per entry in a restart region built with the conventional restart
// interval of 16 keys.
const DefaultBytesPerRestart = 2

// Block wraps a validated, read-only block buffer and hands out iterators
// over it. A Block is immutable after construction and safe for concurrent
// reads; the iterators it produces are not.
type Block struct {
	err            error
	data           []byte
	restartsOffset uint32
	numRestarts    uint32
	log            logger.Logger
}

// Open validates contents' trailer and returns a Block handle. A malformed
// trailer does not return an error directly: it puts the Block into an
// error-marker state, surfaced lazily the first time an iterator is
// requested, matching how callers of this format have always treated block
// corruption (discovered while positioning, not while opening the file).
func Open(contents []byte, log logger.Logger) *Block {
	if log == nil {
		log = logger.Discard
	}
	b := &Block{log: log}

	n := uint32(len(contents))
	if n < 8 {
		b.err = lberrors.ErrCorruptBlock
		log.Warnf("sstblock: block too small to hold a trailer: %d bytes", n)
		return b
	}

	numRestarts := endian.Uint32(contents[n-4:])
	restartsBytes := uint64(numRestarts) * 4
	if restartsBytes+4 > uint64(n) {
		b.err = lberrors.ErrCorruptBlock
		log.Warnf("sstblock: restart array overflows block: num_restarts=%d size=%d", numRestarts, n)
		return b
	}
	restartsOffset := n - 4 - uint32(restartsBytes)

	if numRestarts > 0 && !validRestarts(contents[restartsOffset:n-4], restartsOffset, numRestarts) {
		b.err = lberrors.ErrCorruptBlock
		log.Warnf("sstblock: restart array is not strictly increasing from zero")
		return b
	}

	b.data = contents
	b.restartsOffset = restartsOffset
	b.numRestarts = numRestarts
	return b
}

// validRestarts checks that the restart array starts at offset 0, is
// strictly increasing, and that every restart point leaves room for at
// least a minimal 3-byte entry header before limit.
func validRestarts(restarts []byte, limit uint32, n uint32) bool {
	start := endian.Uint32(restarts[0:4])
	if start != 0 {
		return false
	}
	for i := uint32(1); i < n; i++ {
		next := endian.Uint32(restarts[i*4 : i*4+4])
		if next < start+3 {
			return false
		}
		start = next
	}
	return limit >= start+3
}

// NumRestarts returns the block's restart count, 0 for an error-marker
// block.
func (b *Block) NumRestarts() uint32 {
	return b.numRestarts
}

// Len returns the number of bytes in the block's entry region plus trailer,
// 0 for an error-marker block.
func (b *Block) Len() int {
	return len(b.data)
}

// NewIterator returns a cursor over the block's entries ordered by cmp. A
// block in error-marker state yields an iterator reporting Status() ==
// corruption; a block with zero restarts yields a permanently-invalid,
// error-free iterator.
func (b *Block) NewIterator(cmp keys.Comparator) Iterator {
	switch {
	case b.err != nil:
		return newErrorIterator(b.err)
	case b.numRestarts == 0:
		return newEmptyIterator()
	default:
		return newIterator(b.data, b.restartsOffset, b.numRestarts, cmp)
	}
}

// NewMetricsIterator is NewIterator plus a freshly zeroed BlockMetrics that
// the returned iterator notifies after every successful positioning
// operation. The returned metrics is nil in the error-marker and
// zero-restart cases, where the returned error or empty iterator never
// holds a position to record.
func (b *Block) NewMetricsIterator(cmp keys.Comparator, fileNumber, blockOffset uint64, bytesPerRestart uint32) (Iterator, *metrics.BlockMetrics) {
	switch {
	case b.err != nil:
		return newErrorIterator(b.err), nil
	case b.numRestarts == 0:
		return newEmptyIterator(), nil
	default:
		if bytesPerRestart == 0 {
			bytesPerRestart = DefaultBytesPerRestart
		}
		m := metrics.New(fileNumber, blockOffset, b.numRestarts, bytesPerRestart)
		it := newIterator(b.data, b.restartsOffset, b.numRestarts, cmp)
		return newMetricsIterator(it, m), m
	}
}

// IsHot reports whether the metrics bit for iter's current position is set
// in m. iter must be a valid iterator produced by this same Block (via
// either NewIterator or NewMetricsIterator). IsHot returns false when m is
// nil, iter is not valid, or m.NumRestarts() differs from this block's
// restart count; it does not detect an iterator from another block.
func (b *Block) IsHot(iter Iterator, m *metrics.BlockMetrics) bool {
	if m == nil || !iter.Valid() || m.NumRestarts() != b.numRestarts {
		return false
	}
	p, ok := iter.(restartPositioner)
	if !ok {
		return false
	}
	restartIndex, restartOffset := p.restartPosition()
	return m.IsHot(restartIndex, restartOffset)
}
