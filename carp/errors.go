package carp

import "errors"

// Precondition errors. They are returned before any numerical work is done
// and can be matched with errors.Is.
var (
	ErrNoRoots          = errors.New("carp: empty root set")
	ErrNonStationary    = errors.New("carp: root with non-negative real part")
	ErrDuplicateRoots   = errors.New("carp: roots are not distinct")
	ErrMalformedRoots   = errors.New("carp: roots are not closed under conjugation")
	ErrShape            = errors.New("carp: inconsistent parameter counts")
	ErrInvalidParameter = errors.New("carp: invalid parameter value")
	ErrLengthMismatch   = errors.New("carp: input lengths differ")
	ErrUnsortedTime     = errors.New("carp: time values must be strictly increasing")
	ErrEmptySeries      = errors.New("carp: empty time series")
)
