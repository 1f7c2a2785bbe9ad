package strindex

import "github.com/kailas-cloud/strindex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound            = domain.ErrNotFound
	ErrAlreadyExists       = domain.ErrAlreadyExists
	ErrInvalidInput        = domain.ErrInvalidInput
	ErrInvalidFilter       = domain.ErrInvalidFilter
	ErrConflictingFilters  = domain.ErrConflictingFilters
	ErrUpstreamEmpty       = domain.ErrUpstreamEmpty
	ErrUpstreamUnparseable = domain.ErrUpstreamUnparseable
)
