package fold

import "github.com/pkg/errors"

var (
	// ErrNoCandidate signals that no crease is left to fold along. It is how the
	// fold loop learns that it has converged, not a failure.
	ErrNoCandidate = errors.New("no candidate crease")

	ErrNotAnchored      = errors.New("fold vertex is not on the polygon boundary")
	ErrDegenerateCrease = errors.New("crease has zero length")
	ErrSingularMatrix   = errors.New("matrix is singular")
	ErrAmbiguousSplit   = errors.New("crease does not split the polygon cleanly")
	ErrAmbiguousChord   = errors.New("line crosses the polygon at more than two points")
	ErrAnchorOnCrease   = errors.New("anchor lies on the crease")
	ErrFoldLimit        = errors.New("fold limit exceeded")
	ErrNoCorner         = errors.New("lines do not form a corner")
	ErrEmptyShape       = errors.New("shape has no outer polygon")
	ErrDivisionByZero   = errors.New("division by zero")
)

// Arithmetic methods on Number have no error return, so an exact division by
// zero panics with a NumericError. Geometry code checks its denominators
// before dividing; the public entry points recover anything that slips
// through and hand it back as an error.
type NumericError struct {
	error
}

func (e NumericError) Unwrap() error { return e.error }

// Panic with a NumericError wrapping ErrDivisionByZero.
func throwf(format string, args ...interface{}) {
	panic(NumericError{errors.Wrapf(ErrDivisionByZero, format, args...)})
}

func HandleFoldPanicRecover(r interface{}) error {
	if r != nil {
		if numericError, ok := r.(NumericError); ok {
			return numericError
		}
		panic(r)
	}
	return nil
}
