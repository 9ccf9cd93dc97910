package sstblock

// Iterator is a bidirectional, seekable cursor over one block's entries.
// A single Iterator must not be driven by more than one goroutine at a
// time; distinct iterators over the same Block are independent.
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
