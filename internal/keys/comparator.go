package keys

// Comparator defines a total order over keys in the block's byte
// sequences. Methods of a comparator may be called by concurrent
// goroutines.
type Comparator interface {
	// Name identifies this comparator. A block written under one comparator
	// must not be read back with a differently-named one, since restart
	// points and seek results depend on the ordering staying fixed.
	//
	// Names starting with "leveldb." are reserved for comparators whose
	// ordering matches the reference LevelDB implementations.
	Name() string

	// Compare returns a value 'less than', 'equal to' or 'greater than' 0 depending
	// on whether a is 'less than', 'equal to' or 'greater than' b.
	Compare(a, b []byte) int

	// AppendSuccessor appends a possibly shortest byte sequence in range [start, limit)
	// to dst. Empty limit acts as infinite large. In particularly, if limit equals to
	// start, it returns append(dst, start).
	AppendSuccessor(dst, start, limit []byte) []byte
}

// UserComparator is the comparator interface exposed to callers of this
// module, extending Comparator with the prefix-successor helper used to
// build key-range scans.
type UserComparator interface {
	Comparator

	// MakePrefixSuccessor returns a byte sequence 'limit' such that all byte sequences
	// falling in [prefix, limit) have 'prefix' as prefix. Zero length 'limit' acts as
	// infinite large.
	MakePrefixSuccessor(start []byte) []byte
}
