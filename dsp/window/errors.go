package window

import (
	"errors"
	"fmt"
)

var (
	errMismatchedLength = errors.New("samples and coefficients must have same length")

	// ErrUnknownType is returned by ParseType for an unrecognised name.
	ErrUnknownType = errors.New("unknown window type")
)

func errUnknownType(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownType, name)
}
