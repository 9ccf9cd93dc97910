// Package metrics implements the access-frequency bitmap recorded
// alongside a block: one bit per (restart region, intra-region slot)
// indicating whether that entry was ever visited by an iterator.
package metrics

import (
	"encoding/binary"

	"github.com/ivanmarcin/sstblock/internal/endian"
)

// BlockMetrics is a bit-packed per-(restart, slot) access table for one
// block. Fields identify which block it was built against, so a
// BlockMetrics can only be merged with or matched back against a
// compatible instance of the same block. BlockMetrics does no locking:
// callers must serialize concurrent RecordAccess, Join and IsHot calls.
type BlockMetrics struct {
	fileNumber      uint64
	blockOffset     uint64
	numRestarts     uint32
	bytesPerRestart uint32
	bitmap          []byte
}

// New returns a zeroed BlockMetrics sized for numRestarts restart regions
// of bytesPerRestart bytes (bytesPerRestart*8 slots) each.
func New(fileNumber, blockOffset uint64, numRestarts, bytesPerRestart uint32) *BlockMetrics {
	return &BlockMetrics{
		fileNumber:      fileNumber,
		blockOffset:     blockOffset,
		numRestarts:     numRestarts,
		bytesPerRestart: bytesPerRestart,
		bitmap:          make([]byte, uint64(numRestarts)*uint64(bytesPerRestart)),
	}
}

func (m *BlockMetrics) FileNumber() uint64      { return m.fileNumber }
func (m *BlockMetrics) BlockOffset() uint64     { return m.blockOffset }
func (m *BlockMetrics) NumRestarts() uint32     { return m.numRestarts }
func (m *BlockMetrics) BytesPerRestart() uint32 { return m.bytesPerRestart }

func (m *BlockMetrics) windowBits() uint32 {
	return m.bytesPerRestart * 8
}

// RecordAccess sets the bit for (restartIndex, restartOffset mod window
// size), folding intra-region slots beyond the window onto earlier ones.
func (m *BlockMetrics) RecordAccess(restartIndex, restartOffset uint32) {
	bit := restartOffset % m.windowBits()
	byteIdx := restartIndex*m.bytesPerRestart + bit/8
	m.bitmap[byteIdx] |= 1 << (bit % 8)
}

// IsHot reports whether the bit for (restartIndex, restartOffset mod
// window size) is set.
func (m *BlockMetrics) IsHot(restartIndex, restartOffset uint32) bool {
	bit := restartOffset % m.windowBits()
	byteIdx := restartIndex*m.bytesPerRestart + bit/8
	return m.bitmap[byteIdx]&(1<<(bit%8)) != 0
}

// IsCompatible reports whether other can be Join'd into m: same block
// identity, same geometry.
func (m *BlockMetrics) IsCompatible(other *BlockMetrics) bool {
	return other != nil &&
		other.fileNumber == m.fileNumber &&
		other.blockOffset == m.blockOffset &&
		other.numRestarts == m.numRestarts &&
		other.bytesPerRestart == m.bytesPerRestart
}

// Join bitwise-ORs other's bitmap into m. Panics if !m.IsCompatible(other);
// callers are expected to check compatibility when combining metrics from
// untrusted or independently-persisted sources.
func (m *BlockMetrics) Join(other *BlockMetrics) {
	if !m.IsCompatible(other) {
		panic("metrics: Join: incompatible BlockMetrics")
	}
	for i, b := range other.bitmap {
		m.bitmap[i] |= b
	}
}

// GetDBKey returns the 16-byte storage key this metrics instance persists
// under: file_number and block_offset as 8-byte little-endian integers.
//
// The original C++ this was ported from emits file_number followed by
// bytes_per_restart here, which create_from_kv's own parser does not
// agree with; this is almost certainly a bug introduced during editing of
// the original, since the mismatch would make every round-trip fail. This
// implementation adopts the parser's interpretation.
func (m *BlockMetrics) GetDBKey() []byte {
	key := make([]byte, 16)
	endian.PutUint64(key[0:8], m.fileNumber)
	endian.PutUint64(key[8:16], m.blockOffset)
	return key
}

// GetDBValue returns the storage value this metrics instance persists:
// varint32(num_restarts), varint32(bytes_per_restart), raw bitmap.
func (m *BlockMetrics) GetDBValue() []byte {
	var scratch [2 * binary.MaxVarintLen32]byte
	n := binary.PutUvarint(scratch[:], uint64(m.numRestarts))
	n += binary.PutUvarint(scratch[n:], uint64(m.bytesPerRestart))
	value := make([]byte, 0, n+len(m.bitmap))
	value = append(value, scratch[:n]...)
	value = append(value, m.bitmap...)
	return value
}

// CreateFromValue parses dbValue (the GetDBValue encoding) for a metrics
// instance already known to belong to (fileNumber, blockOffset). It returns
// nil if dbValue is malformed or its bitmap length does not match the
// encoded geometry.
func CreateFromValue(fileNumber, blockOffset uint64, dbValue []byte) *BlockMetrics {
	numRestarts, n0 := binary.Uvarint(dbValue)
	if n0 <= 0 {
		return nil
	}
	bytesPerRestart, n1 := binary.Uvarint(dbValue[n0:])
	if n1 <= 0 {
		return nil
	}
	bitmap := dbValue[n0+n1:]
	want := numRestarts * bytesPerRestart
	if uint64(len(bitmap)) != want {
		return nil
	}
	return &BlockMetrics{
		fileNumber:      fileNumber,
		blockOffset:     blockOffset,
		numRestarts:     uint32(numRestarts),
		bytesPerRestart: uint32(bytesPerRestart),
		bitmap:          append([]byte(nil), bitmap...),
	}
}

// CreateFromKV parses a (dbKey, dbValue) pair as persisted by GetDBKey and
// GetDBValue. It returns nil if dbKey is not 16 bytes or dbValue is
// malformed.
func CreateFromKV(dbKey, dbValue []byte) *BlockMetrics {
	if len(dbKey) != 16 {
		return nil
	}
	fileNumber := endian.Uint64(dbKey[0:8])
	blockOffset := endian.Uint64(dbKey[8:16])
	return CreateFromValue(fileNumber, blockOffset, dbValue)
}
