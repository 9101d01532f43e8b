package util

import "golang.org/x/xerrors"

// Errors shared by the collection packages. Package-level errors wrap these
// so callers can match with errors.Is regardless of which package failed.
var (
	ErrEmptyCollection    = xerrors.New("collection is empty")
	ErrCollectionModified = xerrors.New("collection was modified during enumeration")
	ErrNotSupported       = xerrors.New("operation not supported")
	ErrIteratorImmutable  = xerrors.New("iterator view is immutable")
	ErrIndexOutOfRange    = xerrors.New("index out of range")
)

// IndexError returns an error wrapping ErrIndexOutOfRange that reports the
// offending index and the valid length.
func IndexError(index, length int) error {
	return xerrors.Errorf("index %d with length %d: %w", index, length, ErrIndexOutOfRange)
}

// InRange reports whether 0 <= index < length using a single unsigned
// comparison.
func InRange(index, length int) bool {
	return uint(index) < uint(length)
}
