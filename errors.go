package sstblock

import lberrors "github.com/ivanmarcin/sstblock/internal/errors"

// CorruptionError reports a malformed entry: a bad entry header, a
// shared-prefix length exceeding the current key, or a restart point whose
// entry has a non-zero shared-prefix length. A bad trailer is reported by a
// separate sentinel error instead; IsCorrupt recognises both.
type CorruptionError = lberrors.CorruptionError

// IsCorrupt reports whether err (or an error it wraps) denotes block
// corruption as opposed to ordinary end-of-block.
func IsCorrupt(err error) bool {
	return lberrors.IsCorrupt(err)
}
