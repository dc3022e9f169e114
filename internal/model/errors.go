package model

import "errors"

// Error conditions shared by the codec, record, object and metafile packages.
// Callers match them with errors.Is; the wrapping error carries the detail.
var (
	// ErrTruncated means the stream ended inside a record
	ErrTruncated = errors.New("truncated stream")

	// ErrWriteFailed means the underlying writer rejected or shortened a write
	ErrWriteFailed = errors.New("write failed")

	// ErrInvalidRecord means a record's declared lengths, counts or offsets are inconsistent
	ErrInvalidRecord = errors.New("invalid record")

	// ErrUnknownRecord means no decoder is registered for a record type
	ErrUnknownRecord = errors.New("unknown record type")

	// ErrNotFound means a handle does not refer to a live object
	ErrNotFound = errors.New("handle not found")

	// ErrClosed means a metafile context no longer accepts drawing calls
	ErrClosed = errors.New("metafile closed")

	ErrInvalidArgument = errors.New("invalid argument")
)
