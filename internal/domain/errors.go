package domain

import "errors"

var (
	// ErrRecordNotFound signals a well-formed identifier with no matching record.
	ErrRecordNotFound = errors.New("record not found")
	// ErrInvalidIdentifier signals a structurally invalid record identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")
	// ErrStoreUnavailable signals that the record collection could not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)
