package cellset

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned for negative coordinates or
	// dimensions, duplicate cells, and mutations of frozen sets.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrReadOnly is returned when a frozen Set is mutated.
	// It wraps ErrInvalidArgument.
	ErrReadOnly = fmt.Errorf("%w: set is read-only", ErrInvalidArgument)

	// ErrIndexOutOfRange is returned by positional access
	// with an index outside of [0, Count()).
	ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrInvalidArgument)

	// ErrUnsupported is returned for positional insertion or replacement.
	// Cells are ordered by region, not by position,
	// so there is no stable index to insert at.
	ErrUnsupported = errors.ErrUnsupported
)
