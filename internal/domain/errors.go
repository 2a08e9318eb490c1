package domain

import "errors"

var (
	// ErrValidation missing required field, non-positive duration, end not after start
	ErrValidation = errors.New("validation error")

	// ErrUnresolvedReference service or professional name not found in the live catalog
	ErrUnresolvedReference = errors.New("unresolved reference")

	// ErrStaleConflict target span became busy between computation and commit; the caller may override
	ErrStaleConflict = errors.New("stale conflict")
)
