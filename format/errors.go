package format

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrBadPoint   = errors.New("bad point")
	ErrBadLine    = errors.New("bad line")
	ErrBadCount   = errors.New("bad count")
	ErrBadIndex   = errors.New("facet index out of range")
	ErrTruncated  = errors.New("unexpected end of input")
	ErrNoPolygons = errors.New("no polygons found")
)

// ParseError carries the 1-based line number where parsing failed.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
func (e *ParseError) Cause() error  { return e.Err }
