package document

import "errors"

// Errors returned by Field operations.
var (
	// ErrOffsetOutOfRange indicates an offset is outside the content.
	ErrOffsetOutOfRange = errors.New("offset out of range")

	// ErrForeignRange indicates a range created by another field.
	ErrForeignRange = errors.New("range belongs to another field")
)
