package vector

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when two vectors of different length are compared.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrZeroNorm is returned when cosine similarity is undefined because a vector has zero magnitude.
	ErrZeroNorm = errors.New("cosine similarity undefined for zero-magnitude vector")
	// ErrUndefined is returned when cosine similarity cannot be represented as a finite number.
	ErrUndefined = errors.New("cosine similarity undefined for non-finite vector")
	// ErrNonFinite is returned by Load for a NaN or infinite component.
	ErrNonFinite = errors.New("non-finite vector component")
)

// NotFoundError reports an identifier that has no stored vector.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("KeyError: '%s' not found", e.ID)
}

// IsNotFound reports whether err is or wraps a *NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// LoadError reports a vector file that could not be read or parsed.
type LoadError struct {
	Path  string
	Line  int
	Field int // 0 when the error is not tied to a field
	Err   error
}

func (e *LoadError) Error() string {
	msg := "load vectors"
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(": line %d", e.Line)
	}
	if e.Field > 0 {
		msg += fmt.Sprintf(" field %d", e.Field)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
