package sstblock

import "github.com/ivanmarcin/sstblock/internal/keys"

// Comparator defines a total order over the byte-string keys stored in a
// block. Methods of a comparator may be called by concurrent goroutines;
// the interface itself carries no mutable state.
type Comparator interface {
	// Name identifies this comparator; see keys.Comparator.Name.
	Name() string

	// Compare returns a value less than, equal to, or greater than 0
	// depending on whether a is less than, equal to, or greater than b.
	Compare(a, b []byte) int

	// AppendSuccessor appends a possibly-shortest byte sequence in range
	// [start, limit) to dst. An empty limit acts as infinitely large.
	AppendSuccessor(dst, start, limit []byte) []byte

	// MakePrefixSuccessor returns a byte sequence limit such that every
	// byte sequence in [prefix, limit) has prefix as a prefix. A
	// zero-length result acts as infinitely large.
	MakePrefixSuccessor(prefix []byte) []byte
}

// BytewiseComparator orders keys the same way bytes.Compare does. Block
// iterators apply no default comparator; callers pass this one explicitly.
var BytewiseComparator Comparator = keys.BytewiseComparator

// Ensure Comparator and keys.UserComparator stay structurally identical,
// so any keys.UserComparator implementation plugs in here unmodified.
var _ Comparator = (keys.UserComparator)(nil)
var _ keys.UserComparator = (Comparator)(nil)
