package recdex

import "github.com/kailas-cloud/recdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound         = domain.ErrRecordNotFound
	ErrInvalidID        = domain.ErrInvalidIdentifier
	ErrStoreUnavailable = domain.ErrStoreUnavailable
)
