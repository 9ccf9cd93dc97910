package block_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/ivanmarcin/sstblock/internal/block"
	lberrors "github.com/ivanmarcin/sstblock/internal/errors"
	"github.com/ivanmarcin/sstblock/internal/keys"
)

// IteratorTestSuite exercises the forward/backward/seek scenarios from the
// spec: S1 single-restart forward scan, S2 seek at restart boundaries, S3
// reverse iteration across restarts, S4 corruption on a bad shared length.
type IteratorTestSuite struct {
	suite.Suite
}

func TestIteratorTestSuite(t *testing.T) {
	suite.Run(t, new(IteratorTestSuite))
}

// S1 — single-restart forward scan.
func (s *IteratorTestSuite) TestForwardScanSingleRestart() {
	data := buildBlock([]testEntry{
		{"a", "1"}, {"ab", "2"}, {"abc", "3"},
	}, 16)
	b := block.Open(data, nil)
	it := b.NewIterator(keys.BytewiseComparator)

	s.Require().True(it.SeekToFirst())
	s.Equal("a", string(it.Key()))
	s.Equal("1", string(it.Value()))

	s.Require().True(it.Next())
	s.Equal("ab", string(it.Key()))
	s.Equal("2", string(it.Value()))

	s.Require().True(it.Next())
	s.Equal("abc", string(it.Key()))
	s.Equal("3", string(it.Value()))

	s.False(it.Next())
	s.False(it.Valid())
	s.NoError(it.Status())
}

// S2 — seek hits restart boundary.
func (s *IteratorTestSuite) TestSeekAtRestartBoundary() {
	entries := []testEntry{
		{"k01", "v01"}, {"k02", "v02"}, {"k03", "v03"},
		{"k10", "v10"}, {"k11", "v11"},
	}
	data := buildBlockWithRestarts(entries, map[int]bool{3: true})
	b := block.Open(data, nil)
	require.Equal(s.T(), uint32(2), b.NumRestarts())

	it := b.NewIterator(keys.BytewiseComparator)
	s.Require().True(it.Seek([]byte("k10")))
	s.Equal("k10", string(it.Key()))

	s.Require().True(it.Seek([]byte("k09")))
	s.Equal("k10", string(it.Key()))

	s.False(it.Seek([]byte("k99")))
	s.False(it.Valid())
}

// S3 — reverse iteration across restarts.
func (s *IteratorTestSuite) TestReverseIterationAcrossRestarts() {
	entries := []testEntry{
		{"k01", "v01"}, {"k02", "v02"}, {"k03", "v03"},
		{"k10", "v10"}, {"k11", "v11"},
	}
	data := buildBlockWithRestarts(entries, map[int]bool{3: true})
	b := block.Open(data, nil)
	it := b.NewIterator(keys.BytewiseComparator)

	s.Require().True(it.SeekToLast())
	var got []string
	got = append(got, string(it.Key()))
	for it.Prev() {
		got = append(got, string(it.Key()))
	}
	s.False(it.Valid())
	s.Equal([]string{"k11", "k10", "k03", "k02", "k01"}, got)
}

// S4 — corruption on bad shared.
func (s *IteratorTestSuite) TestCorruptionOnBadSharedLength() {
	data := buildBlock([]testEntry{{"abc", "1"}}, 16)
	// Splice a second entry claiming shared=99 into the entry region, right
	// after the first (3-byte key) entry and before the restart array.
	const numRestarts = 1
	entryRegionLen := len(data) - 4*numRestarts - 4
	corrupt := []byte{99, 1, 1, 'x', '2'} // shared=99, non_shared=1, value_len=1
	var spliced []byte
	spliced = append(spliced, data[:entryRegionLen]...)
	spliced = append(spliced, corrupt...)
	spliced = append(spliced, data[entryRegionLen:]...)

	b := block.Open(spliced, nil)
	it := b.NewIterator(keys.BytewiseComparator)

	s.Require().True(it.SeekToFirst())
	s.Equal("abc", string(it.Key()))

	s.False(it.Next())
	s.False(it.Valid())
	s.True(lberrors.IsCorrupt(it.Status()))

	// Iterator remains invalid and corrupt after further misuse.
	s.False(it.Next())
	s.True(lberrors.IsCorrupt(it.Status()))
}

// Property 6: Next followed by Prev returns to the same entry.
func (s *IteratorTestSuite) TestNextThenPrevReturnsToSameEntry() {
	entries := []testEntry{
		{"k01", "v01"}, {"k02", "v02"}, {"k03", "v03"}, {"k04", "v04"},
	}
	data := buildBlock(entries, 2)
	b := block.Open(data, nil)
	it := b.NewIterator(keys.BytewiseComparator)

	s.Require().True(it.SeekToFirst())
	s.Require().True(it.Next())
	key := append([]byte(nil), it.Key()...)
	s.Require().True(it.Next())
	s.Require().True(it.Prev())
	s.Equal(string(key), string(it.Key()))
}
