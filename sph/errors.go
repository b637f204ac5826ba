package sph

import "errors"

var (
	// ErrBadGeometry reports a non-positive pixel count or half-extent.
	ErrBadGeometry = errors.New("sph: invalid grid geometry")

	// ErrLengthMismatch reports input slices of inconsistent lengths.
	ErrLengthMismatch = errors.New("sph: input length mismatch")
)
