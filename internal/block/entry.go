package block

import (
	"encoding/binary"

	lberrors "github.com/ivanmarcin/sstblock/internal/errors"
)

// entryHeader is the decoded (shared, non_shared, value_length) header of
// one block entry. The key delta and value bytes follow immediately after
// the header, at buf[HeaderSize:HeaderSize+NonShared] and
// buf[HeaderSize+NonShared:HeaderSize+NonShared+ValueLength] respectively.
type entryHeader struct {
	HeaderSize  uint32
	Shared      uint32
	NonShared   uint32
	ValueLength uint32
}

// decodeEntry decodes the header of the entry starting at buf[0]. limit is
// the number of bytes available in buf for this entry; decodeEntry never
// reads past buf[:limit]. offset is the absolute position of buf[0] within
// the block, used only to anchor corruption errors.
func decodeEntry(buf []byte, limit uint32, offset uint32) (entryHeader, error) {
	if limit < 3 {
		return entryHeader{}, lberrors.NewCorruption(offset, "entry header truncated")
	}
	b := buf[:limit]

	var h entryHeader
	if b[0] < 128 && b[1] < 128 && b[2] < 128 {
		h.Shared = uint32(b[0])
		h.NonShared = uint32(b[1])
		h.ValueLength = uint32(b[2])
		h.HeaderSize = 3
	} else {
		shared, n0 := binary.Uvarint(b)
		if n0 <= 0 {
			return entryHeader{}, lberrors.NewCorruption(offset, "malformed shared varint")
		}
		nonShared, n1 := binary.Uvarint(b[n0:])
		if n1 <= 0 {
			return entryHeader{}, lberrors.NewCorruption(offset, "malformed non_shared varint")
		}
		valueLength, n2 := binary.Uvarint(b[n0+n1:])
		if n2 <= 0 {
			return entryHeader{}, lberrors.NewCorruption(offset, "malformed value_length varint")
		}
		h.Shared = uint32(shared)
		h.NonShared = uint32(nonShared)
		h.ValueLength = uint32(valueLength)
		h.HeaderSize = uint32(n0 + n1 + n2)
	}

	need := uint64(h.NonShared) + uint64(h.ValueLength)
	if uint64(limit-h.HeaderSize) < need {
		return entryHeader{}, lberrors.NewCorruption(offset, "entry body exceeds block limit")
	}
	return h, nil
}
