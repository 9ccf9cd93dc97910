package endian

import (
	"encoding/binary"
)

// Endian is the byte order used for all fixed-width fields in the block
// format: the restart array and its num_restarts trailer, and the
// file_number/block_offset pair persisted by BlockMetrics.
var Endian = binary.LittleEndian

func Uint32(b []byte) uint32 {
	return Endian.Uint32(b)
}

func Uint64(b []byte) uint64 {
	return Endian.Uint64(b)
}

func PutUint32(b []byte, u uint32) {
	Endian.PutUint32(b, u)
}

func PutUint64(b []byte, u uint64) {
	Endian.PutUint64(b, u)
}
