package block_test

import (
	"bytes"
	"encoding/binary"

	"github.com/ivanmarcin/sstblock/internal/endian"
)

// testEntry is one (key, value) pair fed to buildBlock.
type testEntry struct {
	key   string
	value string
}

// buildBlock assembles raw block bytes from entries, inserting a restart
// point every restartInterval entries (matching the reference writer's
// BlockRestartInterval behavior). It is a minimal, test-only stand-in for
// the out-of-scope block writer.
func buildBlock(entries []testEntry, restartInterval int) []byte {
	var buf bytes.Buffer
	var scratch [3 * binary.MaxVarintLen64]byte
	var restarts []uint32
	var lastKey []byte
	counter := 0

	for _, e := range entries {
		key := []byte(e.key)
		value := []byte(e.value)

		shared := 0
		if counter < restartInterval {
			n := len(lastKey)
			if len(key) < n {
				n = len(key)
			}
			for shared < n && lastKey[shared] == key[shared] {
				shared++
			}
		} else {
			counter = 0
		}
		if counter == 0 {
			restarts = append(restarts, uint32(buf.Len()))
		}

		n := binary.PutUvarint(scratch[:], uint64(shared))
		n += binary.PutUvarint(scratch[n:], uint64(len(key)-shared))
		n += binary.PutUvarint(scratch[n:], uint64(len(value)))
		buf.Write(scratch[:n])
		buf.Write(key[shared:])
		buf.Write(value)

		lastKey = append(lastKey[:0], key...)
		counter++
	}

	tmp4 := make([]byte, 4)
	for _, r := range restarts {
		endian.PutUint32(tmp4, r)
		buf.Write(tmp4)
	}
	endian.PutUint32(tmp4, uint32(len(restarts)))
	buf.Write(tmp4)
	return buf.Bytes()
}

// buildBlockWithRestarts builds a block like buildBlock but lets the
// caller specify exact restart-point entry indices, for tests that need
// restarts not aligned to a fixed interval.
func buildBlockWithRestarts(entries []testEntry, restartAt map[int]bool) []byte {
	var buf bytes.Buffer
	var scratch [3 * binary.MaxVarintLen64]byte
	var restarts []uint32
	var lastKey []byte

	for i, e := range entries {
		key := []byte(e.key)
		value := []byte(e.value)

		shared := 0
		isRestart := i == 0 || restartAt[i]
		if !isRestart {
			n := len(lastKey)
			if len(key) < n {
				n = len(key)
			}
			for shared < n && lastKey[shared] == key[shared] {
				shared++
			}
		}
		if isRestart {
			restarts = append(restarts, uint32(buf.Len()))
		}

		n := binary.PutUvarint(scratch[:], uint64(shared))
		n += binary.PutUvarint(scratch[n:], uint64(len(key)-shared))
		n += binary.PutUvarint(scratch[n:], uint64(len(value)))
		buf.Write(scratch[:n])
		buf.Write(key[shared:])
		buf.Write(value)

		lastKey = append(lastKey[:0], key...)
	}

	tmp4 := make([]byte, 4)
	for _, r := range restarts {
		endian.PutUint32(tmp4, r)
		buf.Write(tmp4)
	}
	endian.PutUint32(tmp4, uint32(len(restarts)))
	buf.Write(tmp4)
	return buf.Bytes()
}
