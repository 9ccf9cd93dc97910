package sstblock

import (
	"io"

	"github.com/ivanmarcin/sstblock/internal/logger"
)

// Logger is the ambient logging sink a Block reports trailer-validation
// failures through, so a caller deciding whether to reread from disk or
// discard the block has something to act on besides a returned error.
// Corruption found while iterating is not logged; it surfaces only through
// the iterator's Status.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// DiscardLogger drops everything written to it; it is the default Logger
// when none is supplied.
var DiscardLogger Logger = logger.Discard

// WriterLogger returns a Logger that writes line-prefixed messages to w.
func WriterLogger(w io.Writer) Logger {
	return logger.WriterLogger(w)
}

var _ Logger = (logger.Logger)(nil)
var _ logger.Logger = (Logger)(nil)
