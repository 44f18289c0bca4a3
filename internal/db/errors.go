package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound = errors.New("db: key not found")
	ErrInvalidID   = errors.New("db: invalid id")
)

// Op constants name store commands for error context.
const (
	OpFind             = "find"
	OpFindOne          = "findOne"
	OpFindOneAndDelete = "findOneAndDelete"
	OpInsertMany       = "insertMany"
	OpDel              = "DEL"
	OpScan             = "SCAN"
	OpJSONGet          = "JSON.GET"
	OpJSONSet          = "JSON.SET"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
