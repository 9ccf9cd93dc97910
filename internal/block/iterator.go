package block

import (
	"github.com/ivanmarcin/sstblock/internal/endian"
	lberrors "github.com/ivanmarcin/sstblock/internal/errors"
	"github.com/ivanmarcin/sstblock/internal/keys"
)

func corruptSharedPrefix(offset uint32) error {
	return lberrors.NewCorruption(offset, "shared prefix length exceeds current key")
}

func corruptNonZeroSharedAtRestart(offset uint32) error {
	return lberrors.NewCorruption(offset, "restart point entry has non-zero shared prefix")
}

// Iterator is a bidirectional, seekable cursor over one block's entries.
// It is not safe for concurrent use: a single Iterator must not be driven
// by more than one goroutine at a time.
type Iterator interface {
	// Valid reports whether the iterator is positioned on an entry.
	Valid() bool

	// Status returns any corruption encountered so far. Once set, it is
	// sticky: the iterator never recovers from corruption.
	Status() error

	// Key returns the current entry's key. Only valid when Valid().
	Key() []byte

	// Value returns the current entry's value. Only valid when Valid().
	Value() []byte

	// Next moves to the following entry. Requires Valid().
	Next() bool

	// Prev moves to the preceding entry. Requires Valid().
	Prev() bool

	// Seek positions on the first entry with key >= target.
	Seek(target []byte) bool

	// SeekToFirst positions on the block's first entry.
	SeekToFirst() bool

	// SeekToLast positions on the block's last entry.
	SeekToLast() bool
}

// restartPositioner is implemented by iterators that track their restart
// coordinates, letting Block.IsHot read them regardless of whether the
// iterator is metrics-decorated.
type restartPositioner interface {
	restartPosition() (restartIndex, restartOffset uint32)
}

// iterator is the plain Block cursor: binary-search seek over the restart
// array, linear scan within a restart region, and prefix-delta key
// reconstruction. Ported from table/block.cc's Block::Iter.
type iterator struct {
	data           []byte
	restartsOffset uint32
	numRestarts    uint32
	cmp            keys.Comparator

	currentOffset uint32
	restartIndex  uint32
	restartOffset uint32

	keyBuf     []byte
	valueStart uint32
	valueEnd   uint32

	status error
}

func newIterator(data []byte, restartsOffset, numRestarts uint32, cmp keys.Comparator) *iterator {
	it := &iterator{
		data:           data,
		restartsOffset: restartsOffset,
		numRestarts:    numRestarts,
		cmp:            cmp,
	}
	it.invalidate()
	return it
}

func (it *iterator) getRestartPoint(i uint32) uint32 {
	if i == it.numRestarts {
		return it.restartsOffset
	}
	offset := it.restartsOffset + 4*i
	return endian.Uint32(it.data[offset : offset+4])
}

func (it *iterator) Valid() bool {
	return it.currentOffset < it.restartsOffset
}

func (it *iterator) Status() error {
	return it.status
}

func (it *iterator) Key() []byte {
	return it.keyBuf
}

func (it *iterator) Value() []byte {
	return it.data[it.valueStart:it.valueEnd]
}

func (it *iterator) restartPosition() (uint32, uint32) {
	return it.restartIndex, it.restartOffset
}

// invalidate marks the iterator past the last entry: not an error, just
// end-of-block.
func (it *iterator) invalidate() {
	it.currentOffset = it.restartsOffset
	it.restartIndex = it.numRestarts
	it.restartOffset = 0
}

// corrupt marks the iterator permanently invalid with a sticky corruption
// status.
func (it *iterator) corrupt(err error) {
	it.status = err
	it.invalidate()
	it.keyBuf = it.keyBuf[:0]
}

// seekToRestartPoint positions the cursor at the start of restart region i,
// priming state so that the next parseNext call decodes its first entry
// and reports restartOffset == 0.
func (it *iterator) seekToRestartPoint(i uint32) {
	it.keyBuf = it.keyBuf[:0]
	it.restartIndex = i
	it.restartOffset = ^uint32(0) // parseNext increments this to 0
	offset := it.getRestartPoint(i)
	it.valueStart = offset
	it.valueEnd = offset
}

// parseNext is the shared primitive behind First/Next/Seek/Prev: it
// advances to the entry starting at the end of the current value and
// reconstructs its key from the current key buffer plus the entry's
// prefix-compressed delta.
func (it *iterator) parseNext() bool {
	if it.status != nil {
		it.invalidate()
		return false
	}

	p := it.valueEnd
	it.restartOffset++

	if p >= it.restartsOffset {
		it.invalidate()
		return false
	}

	hdr, err := decodeEntry(it.data[p:], it.restartsOffset-p, p)
	if err != nil {
		it.corrupt(err)
		return false
	}
	if hdr.Shared > uint32(len(it.keyBuf)) {
		it.corrupt(corruptSharedPrefix(p))
		return false
	}

	it.currentOffset = p
	keyStart := p + hdr.HeaderSize
	keyEnd := keyStart + hdr.NonShared
	it.keyBuf = append(it.keyBuf[:hdr.Shared], it.data[keyStart:keyEnd]...)
	it.valueStart = keyEnd
	it.valueEnd = keyEnd + hdr.ValueLength

	for it.restartIndex+1 < it.numRestarts && it.getRestartPoint(it.restartIndex+1) < it.currentOffset {
		it.restartIndex++
		it.restartOffset = 0
	}
	return true
}

func (it *iterator) Next() bool {
	return it.parseNext()
}

func (it *iterator) Prev() bool {
	original := it.currentOffset
	for it.getRestartPoint(it.restartIndex) >= original {
		if it.restartIndex == 0 {
			it.invalidate()
			return false
		}
		it.restartIndex--
	}
	it.seekToRestartPoint(it.restartIndex)
	for it.parseNext() && it.valueEnd < original {
	}
	return it.Valid()
}

func (it *iterator) Seek(target []byte) bool {
	left, right := uint32(0), it.numRestarts-1
	for left < right {
		mid := left + (right-left+1)/2
		offset := it.getRestartPoint(mid)
		hdr, err := decodeEntry(it.data[offset:], it.restartsOffset-offset, offset)
		if err != nil {
			it.corrupt(err)
			return false
		}
		if hdr.Shared != 0 {
			it.corrupt(corruptNonZeroSharedAtRestart(offset))
			return false
		}
		keyStart := offset + hdr.HeaderSize
		midKey := it.data[keyStart : keyStart+hdr.NonShared]
		if it.cmp.Compare(midKey, target) < 0 {
			left = mid
		} else {
			right = mid - 1
		}
	}

	it.seekToRestartPoint(left)
	for it.parseNext() {
		if it.cmp.Compare(it.keyBuf, target) >= 0 {
			break
		}
	}
	return it.Valid()
}

func (it *iterator) SeekToFirst() bool {
	it.seekToRestartPoint(0)
	return it.parseNext()
}

func (it *iterator) SeekToLast() bool {
	it.seekToRestartPoint(it.numRestarts - 1)
	for it.parseNext() && it.valueEnd < it.restartsOffset {
	}
	return it.Valid()
}
