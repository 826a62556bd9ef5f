package pixelmap

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrInvalidGeometry reports dimensions that are inconsistent with the
	// address-line and lane arithmetic.
	ErrInvalidGeometry = errors.New("invalid geometry")
	// ErrGeometryMismatch reports a lane strip height that does not evenly
	// divide the frame, or a buffer whose size does not match the geometry.
	ErrGeometryMismatch = errors.New("geometry mismatch")
	// ErrIndexOutOfRange reports a computed pixel that falls outside the
	// frame on a physically wired lane.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// GeometryError describes a rejected geometry. Kind is one of the
// package's sentinel errors and is returned by Unwrap, so callers match
// it with errors.Is.
type GeometryError struct {
	Op     string
	Kind   error
	Detail string
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("pixelmap: %s: %v: %s", e.Op, e.Kind, e.Detail)
}

func (e *GeometryError) Unwrap() error {
	return e.Kind
}

func newError(op string, kind error, format string, args ...interface{}) error {
	return &GeometryError{
		Op:     op,
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}
